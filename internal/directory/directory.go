// Package directory loads the roster of eligible reviewers and resolves the
// routing rules that govern assignment and approval. The directory is a
// plain value rebuilt from its backing source at the start of every pipeline
// run; nothing in this package caches or mutates shared state.
package directory

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/glosskit/glossflow/internal/log"
	"github.com/glosskit/glossflow/internal/model"
)

// Directory maps reviewer login to profile.
type Directory map[string]model.ReviewerProfile

// Profiles returns every profile sorted by login for deterministic
// iteration.
func (d Directory) Profiles() []model.ReviewerProfile {
	logins := make([]string, 0, len(d))
	for login := range d {
		logins = append(logins, login)
	}
	sort.Strings(logins)

	profiles := make([]model.ReviewerProfile, 0, len(d))
	for _, login := range logins {
		profiles = append(profiles, d[login])
	}
	return profiles
}

// adminEntry is one identity in the governance config admins mapping.
type adminEntry struct {
	Role            string   `json:"role"`
	Name            string   `json:"name"`
	Specializations []string `json:"specializations"`
	Permissions     []string `json:"permissions"`
	Active          *bool    `json:"active"`
}

// approvalRule is the per-category quorum configuration.
type approvalRule struct {
	MinApprovals        int      `json:"min_approvals"`
	RequiredRoles       []string `json:"required_roles"`
	SpecializationMatch bool     `json:"specialization_match"`
}

// autoAssignment configures reviewer selection.
type autoAssignment struct {
	MaxAssignees         int    `json:"max_assignees"`
	AssignmentStrategy   string `json:"assignment_strategy"`
	PreferSpecialization *bool  `json:"prefer_specialization"`
}

// GovernanceConfig is the JSON configuration resource stored in the
// glossary repository. Read-only to the pipeline.
type GovernanceConfig struct {
	Admins                map[string]adminEntry   `json:"admins"`
	ApprovalRules         map[string]approvalRule `json:"approval_rules"`
	SpecializationMapping map[string]string       `json:"specialization_mapping"`
	AutoAssignment        *autoAssignment         `json:"auto_assignment"`
}

// ParseGovernanceConfig decodes the governance configuration resource.
func ParseGovernanceConfig(data []byte) (*GovernanceConfig, error) {
	var cfg GovernanceConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse governance config: %w", err)
	}
	return &cfg, nil
}

// Directory builds the reviewer roster from the config's admins mapping.
// Entries without an explicit active flag default to active.
func (c *GovernanceConfig) Directory() Directory {
	dir := make(Directory, len(c.Admins))
	for login, entry := range c.Admins {
		active := true
		if entry.Active != nil {
			active = *entry.Active
		}
		dir[login] = model.ReviewerProfile{
			Login:           login,
			Name:            entry.Name,
			Role:            model.Role(entry.Role),
			Specializations: entry.Specializations,
			Active:          active,
		}
	}
	return dir
}

// FromPermissions derives a reviewer roster from platform-granted
// repository permissions: admin collaborators become owners, maintain
// becomes maintainer, push becomes reviewer, everything else is excluded.
// Implicit reviewers cover all domains.
func FromPermissions(permissions map[string]string) Directory {
	dir := make(Directory)
	for login, permission := range permissions {
		var role model.Role
		switch permission {
		case "admin":
			role = model.RoleOwner
		case "maintain":
			role = model.RoleMaintainer
		case "push", "write":
			role = model.RoleReviewer
		default:
			continue
		}
		dir[login] = model.ReviewerProfile{
			Login:           login,
			Role:            role,
			Specializations: []string{model.SpecializationAll},
			Active:          true,
		}
	}
	if len(dir) == 0 {
		log.Warn("no elevated collaborators found; reviewer directory is empty")
	}
	return dir
}
