package cmd

import (
	"github.com/spf13/cobra"
)

// NewCmdLabel creates the label command.
func NewCmdLabel(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Detect the contribution kind and apply type labels",
		Long: `Extracts structured fields from the issue body, detects the
contribution kind and replaces the type labels accordingly. Issues that
are not glossary contributions get a single fallback label.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			p, err := buildPipeline(ctx, opts)
			if err != nil {
				return err
			}
			return p.orch.Label(ctx, opts.Issue)
		},
	}

	cmd.Flags().IntVarP(&opts.Issue, "issue", "i", 0, "Issue number to operate on")
	_ = cmd.MarkFlagRequired("issue")

	return cmd
}
