package model

// Role is a reviewer's authority level, strictly ordered
// owner > maintainer > reviewer.
type Role string

const (
	RoleOwner      Role = "owner"
	RoleMaintainer Role = "maintainer"
	RoleReviewer   Role = "reviewer"
)

// Priority returns the role's authority rank for sorting. Unknown roles
// rank below reviewer.
func (r Role) Priority() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleMaintainer:
		return 2
	case RoleReviewer:
		return 1
	default:
		return 0
	}
}

// SpecializationAll is the wildcard specialization marker covering every
// domain. The literal matches the governance config used by the glossary
// maintainers.
const SpecializationAll = "전체 영역"

// ReviewerProfile describes one eligible reviewer, loaded fresh from the
// governance config or platform permissions at the start of each run.
type ReviewerProfile struct {
	Login           string
	Name            string
	Role            Role
	Specializations []string
	Active          bool
}

// CoversDomain reports whether the reviewer's declared specializations
// include the domain, either explicitly or via the wildcard marker.
func (p ReviewerProfile) CoversDomain(domain string) bool {
	for _, s := range p.Specializations {
		if s == domain || s == SpecializationAll {
			return true
		}
	}
	return false
}
