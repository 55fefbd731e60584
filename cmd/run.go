package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glosskit/glossflow/internal/model"
)

// NewCmdRun creates the run command, the entrypoint CI calls on issue
// events.
func NewCmdRun(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline for one issue event",
		Long: `Runs the stages appropriate for an issue event:

  created  label, validate and assign a new submission
  edited   re-run the full pipeline after a submission edit
  comment  re-evaluate approval state after a comment

Every stage re-derives its state from the platform, so re-running an
event is always safe.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Issue, "issue", "i", 0, "Issue number to operate on")
	cmd.Flags().StringVarP(&opts.Event, "event", "e", "created", "Event type (created, edited, comment)")
	_ = cmd.MarkFlagRequired("issue")

	cmd.Flags().StringVar(&opts.Strategy, "strategy", "", "Reviewer selection strategy (role_priority, random)")
	cmd.Flags().IntVar(&opts.MinApprovals, "min-approvals", 0, "Override the approval quorum")
	cmd.Flags().IntVar(&opts.MaxAssignees, "max-assignees", 0, "Override the assignee cap")

	return cmd
}

func runRun(cmd *cobra.Command, opts *Options) error {
	ctx := cmd.Context()

	p, err := buildPipeline(ctx, opts)
	if err != nil {
		return err
	}

	switch opts.Event {
	case "created":
		return p.orch.HandleCreated(ctx, model.ContributionCreated{ID: opts.Issue})
	case "edited":
		return p.orch.HandleEdited(ctx, model.ContributionEdited{ID: opts.Issue})
	case "comment":
		_, _, err := p.orch.EvaluateApproval(ctx, opts.Issue)
		return err
	default:
		return fmt.Errorf("unknown event type: %s (must be created, edited or comment)", opts.Event)
	}
}
