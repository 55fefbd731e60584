package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/glosskit/glossflow/config"
	"github.com/glosskit/glossflow/internal/assign"
	"github.com/glosskit/glossflow/internal/directory"
	"github.com/glosskit/glossflow/internal/ghclient"
	"github.com/glosskit/glossflow/internal/workflow"
)

// pipeline bundles the resolved config, the platform client and the
// orchestrator for one command invocation.
type pipeline struct {
	cfg    *config.Config
	client *ghclient.Client
	orch   *workflow.Orchestrator
}

// buildPipeline loads config, applies command-line overrides and connects
// to the platform.
func buildPipeline(ctx context.Context, opts *Options) (*pipeline, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	owner, repo := cfg.Owner(), cfg.Repo()
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("repository not configured: set repository in config, --repo, or GITHUB_REPOSITORY")
	}

	client, err := ghclient.NewClient(ctx, owner, repo, cfg.GetGitHubToken())
	if err != nil {
		return nil, err
	}

	overrides, seed, seedSet := resolveReviewOverrides(cfg, opts)

	source := time.Now().UnixNano()
	if seedSet {
		source = seed
	}
	matcher := assign.New(rand.New(rand.NewSource(source)))

	orch := workflow.New(client, matcher,
		workflow.WithRuleOverrides(overrides),
		workflow.WithGovernancePath(cfg.GetGovernancePath()))
	return &pipeline{cfg: cfg, client: client, orch: orch}, nil
}

// loadConfig loads the merged config and applies command-line overrides.
func loadConfig(opts *Options) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Repository != "" {
		cfg.Repository = opts.Repository
	}
	if opts.DatasetRoot != "" {
		cfg.DatasetRoot = opts.DatasetRoot
	}
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	return cfg, nil
}

// resolveReviewOverrides folds config-file and command-line review
// overrides. Only explicitly set values carry; governance config rules
// win for everything left unset.
func resolveReviewOverrides(cfg *config.Config, opts *Options) (workflow.RuleOverrides, int64, bool) {
	var overrides workflow.RuleOverrides
	var seed int64
	var seedSet bool

	if r := cfg.Review; r != nil {
		if r.MinApprovals != nil {
			overrides.MinApprovals = *r.MinApprovals
		}
		if r.MaxAssignees != nil {
			overrides.MaxAssignees = *r.MaxAssignees
		}
		if r.Strategy != "" {
			overrides.Strategy = directory.SelectionStrategy(r.Strategy)
		}
		if r.Seed != nil {
			seed, seedSet = *r.Seed, true
		}
	}

	if opts.MinApprovals > 0 {
		overrides.MinApprovals = opts.MinApprovals
	}
	if opts.MaxAssignees > 0 {
		overrides.MaxAssignees = opts.MaxAssignees
	}
	if opts.Strategy != "" {
		overrides.Strategy = directory.SelectionStrategy(opts.Strategy)
	}
	if opts.SeedSet {
		seed, seedSet = opts.Seed, true
	}

	return overrides, seed, seedSet
}
