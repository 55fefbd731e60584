package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestOwnerRepo(t *testing.T) {
	cfg := &Config{Repository: "glosskit/glossary"}
	if cfg.Owner() != "glosskit" || cfg.Repo() != "glossary" {
		t.Errorf("Owner/Repo = %q/%q", cfg.Owner(), cfg.Repo())
	}
}

func TestOwnerRepoEnvFallback(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "env-owner/env-repo")
	cfg := &Config{}
	if cfg.Owner() != "env-owner" || cfg.Repo() != "env-repo" {
		t.Errorf("Owner/Repo = %q/%q", cfg.Owner(), cfg.Repo())
	}
}

func TestOwnerRepoMalformed(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "")
	cfg := &Config{Repository: "no-slash"}
	if cfg.Owner() != "" || cfg.Repo() != "" {
		t.Errorf("malformed repository should yield empty owner/repo, got %q/%q", cfg.Owner(), cfg.Repo())
	}
}

func TestGetDefaults(t *testing.T) {
	cfg := &Config{}
	if cfg.GetGovernancePath() != ".github/config/admins.json" {
		t.Errorf("GetGovernancePath = %q", cfg.GetGovernancePath())
	}
	if cfg.GetDatasetRoot() != "." {
		t.Errorf("GetDatasetRoot = %q", cfg.GetDatasetRoot())
	}
	cfg = &Config{GovernancePath: "custom/admins.json", DatasetRoot: "/srv/glossary"}
	if cfg.GetGovernancePath() != "custom/admins.json" || cfg.GetDatasetRoot() != "/srv/glossary" {
		t.Error("configured paths not honored")
	}
}

func TestMergeConfigLocalWins(t *testing.T) {
	global := &Config{
		Repository:  "glosskit/glossary",
		BaseURL:     "https://glossary.example.org",
		DatasetRoot: "/global/checkout",
	}
	local := &Config{Repository: "glosskit/fork"}

	merged := mergeConfig(global, local)
	if merged.Repository != "glosskit/fork" {
		t.Errorf("Repository = %q, local should win", merged.Repository)
	}
	if merged.BaseURL != "https://glossary.example.org" {
		t.Errorf("BaseURL = %q, unset local should preserve global", merged.BaseURL)
	}
	if merged.DatasetRoot != "/global/checkout" {
		t.Errorf("DatasetRoot = %q", merged.DatasetRoot)
	}
}

func TestMergeReviewOverrides(t *testing.T) {
	global := &ReviewOverrides{MinApprovals: intPtr(2), Strategy: "role_priority"}
	local := &ReviewOverrides{MinApprovals: intPtr(3)}

	merged := mergeReviewOverrides(global, local)
	if merged == nil || *merged.MinApprovals != 3 {
		t.Fatalf("merged = %+v, want local min_approvals 3", merged)
	}
	if merged.Strategy != "role_priority" {
		t.Errorf("Strategy = %q, global value should survive", merged.Strategy)
	}

	if got := mergeReviewOverrides(nil, nil); got != nil {
		t.Errorf("both nil should merge to nil, got %+v", got)
	}
	if got := mergeReviewOverrides(&ReviewOverrides{}, &ReviewOverrides{}); got != nil {
		t.Errorf("all-unset should merge to nil, got %+v", got)
	}
}

func TestLoadMergesGlobalAndLocal(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("HOME", configHome)

	globalDir := filepath.Join(configHome, "glossflow")
	if err := os.MkdirAll(globalDir, 0o700); err != nil {
		t.Fatal(err)
	}
	globalYAML := "repository: glosskit/glossary\nbase_url: https://glossary.example.org\n"
	if err := os.WriteFile(filepath.Join(globalDir, "config.yaml"), []byte(globalYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	workDir := t.TempDir()
	localYAML := "dataset_root: /srv/checkout\nreview:\n  min_approvals: 2\n"
	if err := os.WriteFile(filepath.Join(workDir, ".glossflow.yaml"), []byte(localYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(workDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Repository != "glosskit/glossary" {
		t.Errorf("Repository = %q", cfg.Repository)
	}
	if cfg.DatasetRoot != "/srv/checkout" {
		t.Errorf("DatasetRoot = %q", cfg.DatasetRoot)
	}
	if cfg.Review == nil || cfg.Review.MinApprovals == nil || *cfg.Review.MinApprovals != 2 {
		t.Errorf("Review = %+v", cfg.Review)
	}
}

func TestLoadMissingFiles(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with no config files: %v", err)
	}
	if cfg.Repository != "" || cfg.Review != nil {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestDefaultConfigYAML(t *testing.T) {
	out, err := DefaultConfig().ToYAML()
	if err != nil {
		t.Fatalf("ToYAML: %v", err)
	}
	for _, want := range []string{"dataset_root: .", "min_approvals: 1", "max_assignees: 3", "strategy: role_priority"} {
		if !strings.Contains(out, want) {
			t.Errorf("defaults YAML missing %q:\n%s", want, out)
		}
	}
}

func TestMinimalConfigParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".glossflow.yaml")
	if err := SaveTo(path, MinimalConfig()); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "# glossflow configuration file") {
		t.Error("template header missing")
	}
}
