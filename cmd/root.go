package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/glosskit/glossflow/internal/log"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := NewOptions()

	rootCmd := &cobra.Command{
		Use:   "glossflow",
		Short: "Glossary contribution workflow automation",
		Long: `Automates the review lifecycle of glossary contributions submitted
as issues: field extraction, validation, reviewer assignment and
approval tracking. Designed to run from CI on issue events, but every
stage can also be run by hand.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Initialize(opts.Verbosity, os.Stderr)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
	rootCmd.PersistentFlags().StringVar(&opts.Repository, "repo", "", "Target repository (owner/name, overrides config)")

	// Register subcommands
	rootCmd.AddCommand(NewCmdRun(opts))
	rootCmd.AddCommand(NewCmdLabel(opts))
	rootCmd.AddCommand(NewCmdValidate(opts))
	rootCmd.AddCommand(NewCmdAssign(opts))
	rootCmd.AddCommand(NewCmdApproval(opts))
	rootCmd.AddCommand(NewCmdMaterialize(opts))
	rootCmd.AddCommand(NewCmdSitemap(opts))
	rootCmd.AddCommand(NewCmdRateLimit(opts))
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}
