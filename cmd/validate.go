package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/glosskit/glossflow/internal/output"
)

// NewCmdValidate creates the validate command.
func NewCmdValidate(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a contribution and update its labels",
		Long: `Runs field extraction and every validation tier against the issue,
then updates labels and posts the outcome comment. Quality suggestions
never block; only missing fields, format violations, unchecked
agreements and duplicates do.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			p, err := buildPipeline(ctx, opts)
			if err != nil {
				return err
			}

			result, err := p.orch.Validate(ctx, opts.Issue)
			if err != nil {
				return err
			}
			if result != nil {
				output.ValidationResult(os.Stdout, *result)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Issue, "issue", "i", 0, "Issue number to operate on")
	_ = cmd.MarkFlagRequired("issue")

	return cmd
}
