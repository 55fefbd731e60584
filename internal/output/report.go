// Package output renders human-facing summaries of pipeline results.
// Comments posted back to the platform are built elsewhere; this package
// only serves operators running the CLI by hand.
package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/glosskit/glossflow/internal/approval"
	"github.com/glosskit/glossflow/internal/directory"
	"github.com/glosskit/glossflow/internal/validate"
)

// ValidationResult prints a validation outcome.
func ValidationResult(w io.Writer, result validate.Result) {
	if result.Eligible() {
		fmt.Fprintf(w, "%s validation passed\n", color.GreenString("✓"))
	} else {
		fmt.Fprintf(w, "%s validation failed\n", color.RedString("✗"))
	}

	for _, field := range result.MissingFields {
		fmt.Fprintf(w, "  %s missing: %s\n", color.RedString("●"), field)
	}
	for _, msg := range result.FormatErrors {
		fmt.Fprintf(w, "  %s format: %s\n", color.RedString("●"), msg)
	}
	for _, agreement := range result.MissingAgreements {
		fmt.Fprintf(w, "  %s agreement: %s\n", color.RedString("●"), agreement)
	}
	if result.Duplicate != nil {
		fmt.Fprintf(w, "  %s duplicate: %s\n", color.RedString("●"), result.Duplicate.Message)
	}
	for _, msg := range result.QualityIssues {
		fmt.Fprintf(w, "  %s suggestion: %s\n", color.YellowString("○"), msg)
	}
}

// Tally prints an approval tally against its quorum rule.
func Tally(w io.Writer, tally approval.Tally, rule directory.RoutingRule) {
	switch {
	case tally.QuorumMet:
		fmt.Fprintf(w, "%s quorum met (%d/%d approvals)\n",
			color.GreenString("✓"), len(tally.Approvals), rule.MinApprovals)
	case len(tally.Rejections) > 0:
		fmt.Fprintf(w, "%s rejected (%d rejection(s))\n",
			color.RedString("✗"), len(tally.Rejections))
	default:
		fmt.Fprintf(w, "%s pending (%d/%d approvals)\n",
			color.CyanString("○"), len(tally.Approvals), rule.MinApprovals)
	}

	for _, v := range tally.Approvals {
		fmt.Fprintf(w, "  %s @%s (%s)\n", color.GreenString("+"), v.Login, v.Role)
	}
	for _, v := range tally.Rejections {
		fmt.Fprintf(w, "  %s @%s (%s)\n", color.RedString("-"), v.Login, v.Role)
	}
}

// IntegrityFindings prints dataset integrity findings, one per line.
func IntegrityFindings(w io.Writer, findings []string) {
	if len(findings) == 0 {
		fmt.Fprintf(w, "%s dataset is consistent\n", color.GreenString("✓"))
		return
	}
	fmt.Fprintf(w, "%s %d integrity finding(s)\n", color.RedString("✗"), len(findings))
	for _, finding := range findings {
		fmt.Fprintf(w, "  %s %s\n", color.RedString("●"), finding)
	}
}

// Reviewers prints the selected reviewer logins with their roles.
func Reviewers(w io.Writer, logins []string, dir directory.Directory) {
	for _, login := range logins {
		profile, ok := dir[login]
		if !ok {
			fmt.Fprintf(w, "  @%s\n", login)
			continue
		}
		fmt.Fprintf(w, "  @%s (%s)\n", login, profile.Role)
	}
}
