package directory

import (
	"github.com/glosskit/glossflow/internal/constants"
	"github.com/glosskit/glossflow/internal/model"
)

// SelectionStrategy names a reviewer selection policy.
type SelectionStrategy string

const (
	// StrategyRolePriority sorts candidates by role authority descending
	// with lexical login order as the tie-break, then takes the first N.
	StrategyRolePriority SelectionStrategy = "role_priority"

	// StrategyRandom samples N candidates uniformly without replacement.
	// Seeded explicitly so tests stay deterministic.
	StrategyRandom SelectionStrategy = "random"
)

// RoutingRule collects everything assignment and approval need to know for
// one contribution category. Static per category; read-only to the pipeline.
type RoutingRule struct {
	Category             string
	MinApprovals         int
	RequiredRoles        []model.Role
	SpecializationMatch  bool
	MaxAssignees         int
	Strategy             SelectionStrategy
	PreferSpecialization bool
}

// AllowsRole reports whether the role satisfies the rule's requirements.
func (r RoutingRule) AllowsRole(role model.Role) bool {
	for _, required := range r.RequiredRoles {
		if role == required {
			return true
		}
	}
	return false
}

// defaultRequiredRoles admits every role when a category has no explicit
// rule.
var defaultRequiredRoles = []model.Role{
	model.RoleOwner,
	model.RoleMaintainer,
	model.RoleReviewer,
}

// RuleFor resolves the routing rule for a category, filling gaps with
// defaults. Unknown categories get the full default rule.
func (c *GovernanceConfig) RuleFor(category string) RoutingRule {
	rule := RoutingRule{
		Category:             category,
		MinApprovals:         constants.DefaultMinApprovals,
		RequiredRoles:        defaultRequiredRoles,
		MaxAssignees:         constants.DefaultMaxAssignees,
		Strategy:             StrategyRolePriority,
		PreferSpecialization: true,
	}

	if raw, ok := c.ApprovalRules[category]; ok {
		if raw.MinApprovals > 0 {
			rule.MinApprovals = raw.MinApprovals
		}
		if len(raw.RequiredRoles) > 0 {
			roles := make([]model.Role, 0, len(raw.RequiredRoles))
			for _, r := range raw.RequiredRoles {
				roles = append(roles, model.Role(r))
			}
			rule.RequiredRoles = roles
		}
		rule.SpecializationMatch = raw.SpecializationMatch
	}

	if aa := c.AutoAssignment; aa != nil {
		if aa.MaxAssignees > 0 {
			rule.MaxAssignees = aa.MaxAssignees
		}
		if aa.AssignmentStrategy == string(StrategyRandom) {
			rule.Strategy = StrategyRandom
		}
		if aa.PreferSpecialization != nil {
			rule.PreferSpecialization = *aa.PreferSpecialization
		}
	}

	return rule
}

// defaultSpecializationMapping maps the category dropdown labels used by
// the issue template to short domain tags.
var defaultSpecializationMapping = map[string]string{
	"ML (Machine Learning)":             "ML",
	"DL (Deep Learning)":                "DL",
	"NLP (Natural Language Processing)": "NLP",
	"CV (Computer Vision)":              "CV",
	"RL (Reinforcement Learning)":       "RL",
	"GAI (Generative AI)":               "GAI",
}

// DomainFor resolves a free-text category field value to a short domain
// tag, preferring the config's mapping over the built-in one. Returns ""
// for unknown categories.
func (c *GovernanceConfig) DomainFor(categoryLabel string) string {
	if c != nil {
		if tag, ok := c.SpecializationMapping[categoryLabel]; ok {
			return tag
		}
	}
	return defaultSpecializationMapping[categoryLabel]
}
