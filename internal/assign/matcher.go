// Package assign selects a bounded set of reviewers for a contribution,
// preferring specialization matches and falling back to role-priority
// ordering.
package assign

import (
	"math/rand"
	"sort"

	"github.com/glosskit/glossflow/internal/directory"
	"github.com/glosskit/glossflow/internal/log"
	"github.com/glosskit/glossflow/internal/model"
)

// Matcher selects reviewers. The random source is injected so the random
// strategy stays reproducible under test; a nil source falls back to the
// deterministic strategy.
type Matcher struct {
	rng *rand.Rand
}

// New creates a Matcher. rng may be nil when only the deterministic
// strategy is in use.
func New(rng *rand.Rand) *Matcher {
	return &Matcher{rng: rng}
}

// Select returns up to rule.MaxAssignees reviewer logins for the domain.
// An empty result means assignment failed, not that zero reviewers are
// needed; callers must halt for manual intervention.
func (m *Matcher) Select(domain string, dir directory.Directory, rule directory.RoutingRule) []string {
	candidates := eligible(domain, dir, rule)
	if len(candidates) == 0 {
		return nil
	}

	// Exclusive preference for explicit specialization matches. The
	// wildcard marker keeps a reviewer eligible but does not make them
	// preferred over an exact match.
	if rule.PreferSpecialization && domain != "" {
		var specialized []model.ReviewerProfile
		for _, p := range candidates {
			if hasExplicitDomain(p, domain) {
				specialized = append(specialized, p)
			}
		}
		if len(specialized) > 0 {
			candidates = specialized
		}
	}

	selected := m.pick(candidates, rule)

	logins := make([]string, len(selected))
	for i, p := range selected {
		logins[i] = p.Login
	}
	log.Debug("reviewers selected", "domain", domain, "strategy", string(rule.Strategy), "logins", logins)
	return logins
}

// eligible filters the directory to active profiles with an allowed role,
// further restricted to domain coverage when the rule demands it.
func eligible(domain string, dir directory.Directory, rule directory.RoutingRule) []model.ReviewerProfile {
	var out []model.ReviewerProfile
	for _, p := range dir.Profiles() {
		if !p.Active || !rule.AllowsRole(p.Role) {
			continue
		}
		if rule.SpecializationMatch && domain != "" && !p.CoversDomain(domain) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func hasExplicitDomain(p model.ReviewerProfile, domain string) bool {
	for _, s := range p.Specializations {
		if s == domain {
			return true
		}
	}
	return false
}

// pick applies the configured selection strategy, bounded by MaxAssignees.
func (m *Matcher) pick(candidates []model.ReviewerProfile, rule directory.RoutingRule) []model.ReviewerProfile {
	n := rule.MaxAssignees
	if n <= 0 || n > len(candidates) {
		n = len(candidates)
	}

	if rule.Strategy == directory.StrategyRandom && m.rng != nil {
		shuffled := make([]model.ReviewerProfile, len(candidates))
		copy(shuffled, candidates)
		m.rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		return shuffled[:n]
	}

	// Deterministic: role authority descending, then lexical login order.
	// The secondary key keeps repeated runs reproducible.
	ordered := make([]model.ReviewerProfile, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Role.Priority() != ordered[j].Role.Priority() {
			return ordered[i].Role.Priority() > ordered[j].Role.Priority()
		}
		return ordered[i].Login < ordered[j].Login
	})
	return ordered[:n]
}
