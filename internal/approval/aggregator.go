// Package approval classifies reviewer comments as approvals or rejections
// and decides whether a contribution has reached quorum. Aggregation always
// re-reads the full comment history so repeated or out-of-order event
// delivery cannot corrupt the tally.
package approval

import (
	"regexp"
	"time"

	"github.com/glosskit/glossflow/internal/directory"
	"github.com/glosskit/glossflow/internal/log"
	"github.com/glosskit/glossflow/internal/model"
)

// Whole-comment vote patterns, matched case-insensitively against the
// trimmed comment body. The two sets are disjoint; a comment matching
// neither is ignored.
var approvalPatterns = compileVotePatterns(
	`승인`,
	`approve`,
	`approved`,
	`lgtm`,
	`looks good to me`,
	`✅\s*승인`,
	`/approve`,
	`👍\s*승인`,
)

var rejectionPatterns = compileVotePatterns(
	`거부`,
	`reject`,
	`rejected`,
	`반려`,
	`❌\s*반려`,
	`/reject`,
	`needs?\s+work`,
	`변경\s*요청`,
)

func compileVotePatterns(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(`(?i)^\s*` + p + `\s*$`)
	}
	return res
}

func matchesAny(patterns []*regexp.Regexp, body string) bool {
	for _, re := range patterns {
		if re.MatchString(body) {
			return true
		}
	}
	return false
}

// IsApproval reports whether the comment body is a qualifying approval.
func IsApproval(body string) bool {
	return matchesAny(approvalPatterns, body)
}

// IsRejection reports whether the comment body is a qualifying rejection.
func IsRejection(body string) bool {
	return matchesAny(rejectionPatterns, body)
}

// Vote is one counted reviewer vote.
type Vote struct {
	Login string
	Role  model.Role
	At    time.Time
}

// Tally is the aggregated approval state for one contribution.
type Tally struct {
	Approvals  []Vote
	Rejections []Vote

	// QuorumMet is true when approvals reach the rule's minimum and no
	// qualifying rejection exists. A single rejection vetoes quorum
	// regardless of approval count and is not cleared by later approvals;
	// withdrawal happens outside this algorithm.
	QuorumMet bool
}

// HasVoted reports whether the login already holds a counted vote.
func (t *Tally) HasVoted(login string) bool {
	for _, v := range t.Approvals {
		if v.Login == login {
			return true
		}
	}
	for _, v := range t.Rejections {
		if v.Login == login {
			return true
		}
	}
	return false
}

// Aggregate scans the comment history in order, classifies each qualifying
// comment and applies set semantics per author: a second vote from the same
// identity is a no-op, not an error.
func Aggregate(comments []model.Comment, dir directory.Directory, rule directory.RoutingRule, domain string) Tally {
	var tally Tally

	approved := make(map[string]bool)
	rejected := make(map[string]bool)

	for _, comment := range comments {
		profile, ok := dir[comment.Author]
		if !ok || !profile.Active {
			continue
		}
		if !rule.AllowsRole(profile.Role) {
			continue
		}
		if rule.SpecializationMatch && domain != "" && !profile.CoversDomain(domain) {
			continue
		}

		switch {
		case IsApproval(comment.Body):
			if !approved[comment.Author] {
				approved[comment.Author] = true
				tally.Approvals = append(tally.Approvals, Vote{
					Login: comment.Author,
					Role:  profile.Role,
					At:    comment.CreatedAt,
				})
			}
		case IsRejection(comment.Body):
			if !rejected[comment.Author] {
				rejected[comment.Author] = true
				tally.Rejections = append(tally.Rejections, Vote{
					Login: comment.Author,
					Role:  profile.Role,
					At:    comment.CreatedAt,
				})
			}
		}
	}

	tally.QuorumMet = len(tally.Approvals) >= rule.MinApprovals && len(tally.Rejections) == 0

	log.Debug("approval tally",
		"approvals", len(tally.Approvals),
		"rejections", len(tally.Rejections),
		"min_approvals", rule.MinApprovals,
		"quorum_met", tally.QuorumMet)

	return tally
}
