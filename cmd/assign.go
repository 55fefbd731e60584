package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glosskit/glossflow/internal/output"
)

// NewCmdAssign creates the assign command.
func NewCmdAssign(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign reviewers to a validated contribution",
		Long: `Selects reviewers for a contribution carrying the ready-for-review
label, preferring reviewers whose specializations match the
contribution's domain.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts.SeedSet = cmd.Flags().Changed("seed")

			p, err := buildPipeline(ctx, opts)
			if err != nil {
				return err
			}

			assignees, dir, err := p.orch.Assign(ctx, opts.Issue)
			if err != nil {
				return err
			}

			fmt.Printf("Assigned %d reviewer(s):\n", len(assignees))
			output.Reviewers(os.Stdout, assignees, dir)
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Issue, "issue", "i", 0, "Issue number to operate on")
	_ = cmd.MarkFlagRequired("issue")

	cmd.Flags().StringVar(&opts.Strategy, "strategy", "", "Reviewer selection strategy (role_priority, random)")
	cmd.Flags().IntVar(&opts.MaxAssignees, "max-assignees", 0, "Override the assignee cap")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "Fix the random selection seed")

	return cmd
}
