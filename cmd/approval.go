package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/glosskit/glossflow/internal/output"
)

// NewCmdApproval creates the approval command.
func NewCmdApproval(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approval",
		Short: "Re-evaluate approval state from the comment history",
		Long: `Aggregates approval and rejection votes from the issue's full comment
history and applies the resulting state transition. Any rejection from
an authorized reviewer vetoes the quorum until it is withdrawn.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			p, err := buildPipeline(ctx, opts)
			if err != nil {
				return err
			}

			tally, rule, err := p.orch.EvaluateApproval(ctx, opts.Issue)
			if err != nil {
				return err
			}
			if tally != nil {
				output.Tally(os.Stdout, *tally, rule)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Issue, "issue", "i", 0, "Issue number to operate on")
	_ = cmd.MarkFlagRequired("issue")

	cmd.Flags().IntVar(&opts.MinApprovals, "min-approvals", 0, "Override the approval quorum")

	return cmd
}
