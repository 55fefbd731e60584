package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/glosskit/glossflow/internal/dataset"
	"github.com/glosskit/glossflow/internal/sitemap"
)

// NewCmdSitemap creates the sitemap command.
func NewCmdSitemap(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Generate a sitemap from the term dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSitemap(opts)
		},
	}

	cmd.Flags().StringVar(&opts.BaseURL, "base-url", "", "Public site root (overrides config)")
	cmd.Flags().StringVar(&opts.DatasetRoot, "dataset-root", "", "Local dataset checkout directory")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "-", "Output file, - for stdout")

	return cmd
}

func runSitemap(opts *Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if cfg.BaseURL == "" {
		return fmt.Errorf("base URL not configured: set base_url in config or pass --base-url")
	}

	store := dataset.NewStore(cfg.GetDatasetRoot())
	terms, err := store.LoadTerms()
	if err != nil {
		return err
	}

	xml := sitemap.Generate(cfg.BaseURL, terms, time.Now().UTC())

	if opts.Output == "-" || opts.Output == "" {
		fmt.Print(xml)
		return nil
	}
	if err := os.WriteFile(opts.Output, []byte(xml), 0644); err != nil {
		return fmt.Errorf("failed to write sitemap: %w", err)
	}
	fmt.Printf("Wrote sitemap with %d terms to %s\n", len(terms), opts.Output)
	return nil
}
