package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/glosskit/glossflow/internal/constants"
)

// Config represents the application configuration
type Config struct {
	// Repository is the target repository in owner/name form. Falls back
	// to the GITHUB_REPOSITORY environment variable when unset.
	Repository string `yaml:"repository,omitempty"`

	// BaseURL is the public site root used for sitemap generation.
	BaseURL string `yaml:"base_url,omitempty"`

	// DatasetRoot is the local checkout directory holding the dataset
	// files. Defaults to the current directory.
	DatasetRoot string `yaml:"dataset_root,omitempty"`

	// GovernancePath overrides the in-repo path of the governance config.
	GovernancePath string `yaml:"governance_path,omitempty"`

	// Top-level config sections
	Review *ReviewOverrides `yaml:"review,omitempty"`
}

// ReviewOverrides allows customizing reviewer selection and quorum behavior
type ReviewOverrides struct {
	MinApprovals *int   `yaml:"min_approvals,omitempty"`
	MaxAssignees *int   `yaml:"max_assignees,omitempty"`
	Strategy     string `yaml:"strategy,omitempty"`
	Seed         *int64 `yaml:"seed,omitempty"`
}

// Owner returns the repository owner, preferring the config value over
// the GITHUB_REPOSITORY environment variable.
func (c *Config) Owner() string {
	owner, _ := c.splitRepository()
	return owner
}

// Repo returns the repository name.
func (c *Config) Repo() string {
	_, repo := c.splitRepository()
	return repo
}

func (c *Config) splitRepository() (string, string) {
	full := c.Repository
	if full == "" {
		full = os.Getenv("GITHUB_REPOSITORY")
	}
	owner, repo, ok := strings.Cut(full, "/")
	if !ok {
		return "", ""
	}
	return owner, repo
}

// GetGovernancePath returns the in-repo governance config path,
// using the default when not configured.
func (c *Config) GetGovernancePath() string {
	if c.GovernancePath != "" {
		return c.GovernancePath
	}
	return constants.GovernanceConfigPath
}

// GetDatasetRoot returns the dataset checkout directory,
// using the current directory when not configured.
func (c *Config) GetDatasetRoot() string {
	if c.DatasetRoot != "" {
		return c.DatasetRoot
	}
	return "."
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".glossflow"
	}
	return filepath.Join(configDir, "glossflow")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current directory
func LocalConfigPath() string {
	return ".glossflow.yaml"
}

// Load loads the configuration from disk.
// It first loads the global config from XDG config directory, then merges
// any local .glossflow.yaml config on top (local values take precedence).
func Load() (*Config, error) {
	cfg := &Config{}

	// Load global config if it exists
	globalPath := ConfigPath()
	if _, err := os.Stat(globalPath); err == nil {
		data, err := os.ReadFile(globalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read global config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse global config file: %w", err)
		}
	}

	// Load local config if it exists and merge on top
	localPath := LocalConfigPath()
	if _, err := os.Stat(localPath); err == nil {
		data, err := os.ReadFile(localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read local config file: %w", err)
		}

		var localCfg Config
		if err := yaml.Unmarshal(data, &localCfg); err != nil {
			return nil, fmt.Errorf("failed to parse local config file: %w", err)
		}

		cfg = mergeConfig(cfg, &localCfg)
	}

	return cfg, nil
}

// mergeConfig merges local config on top of global config.
// Local values take precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	result := &Config{}

	if local.Repository != "" {
		result.Repository = local.Repository
	} else {
		result.Repository = global.Repository
	}

	if local.BaseURL != "" {
		result.BaseURL = local.BaseURL
	} else {
		result.BaseURL = global.BaseURL
	}

	if local.DatasetRoot != "" {
		result.DatasetRoot = local.DatasetRoot
	} else {
		result.DatasetRoot = global.DatasetRoot
	}

	if local.GovernancePath != "" {
		result.GovernancePath = local.GovernancePath
	} else {
		result.GovernancePath = global.GovernancePath
	}

	result.Review = mergeReviewOverrides(global.Review, local.Review)

	return result
}

func mergeReviewOverrides(global, local *ReviewOverrides) *ReviewOverrides {
	if global == nil && local == nil {
		return nil
	}
	result := &ReviewOverrides{}

	if global != nil {
		result.MinApprovals = global.MinApprovals
		result.MaxAssignees = global.MaxAssignees
		result.Strategy = global.Strategy
		result.Seed = global.Seed
	}

	if local != nil {
		if local.MinApprovals != nil {
			result.MinApprovals = local.MinApprovals
		}
		if local.MaxAssignees != nil {
			result.MaxAssignees = local.MaxAssignees
		}
		if local.Strategy != "" {
			result.Strategy = local.Strategy
		}
		if local.Seed != nil {
			result.Seed = local.Seed
		}
	}

	// Return nil if all fields are unset
	if result.MinApprovals == nil && result.MaxAssignees == nil &&
		result.Strategy == "" && result.Seed == nil {
		return nil
	}

	return result
}

// SaveTo writes content to a specific path, creating directories as needed
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}

// GetGitHubToken returns the GitHub token from the GITHUB_TOKEN environment variable.
// Following 12-factor app best practices, tokens are only read from the environment.
func (c *Config) GetGitHubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}

// DefaultConfig returns a fully populated config with all default values.
// This is useful for generating a complete config file template.
func DefaultConfig() *Config {
	minApprovals := constants.DefaultMinApprovals
	maxAssignees := constants.DefaultMaxAssignees

	return &Config{
		DatasetRoot:    ".",
		GovernancePath: constants.GovernanceConfigPath,
		Review: &ReviewOverrides{
			MinApprovals: &minApprovals,
			MaxAssignees: &maxAssignees,
			Strategy:     "role_priority",
		},
	}
}

// ToYAML returns the config as a YAML string
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// ConfigPathInfo contains information about config file paths
type ConfigPathInfo struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths returns path info for both global and local configs
func GetConfigPaths() ConfigPathInfo {
	globalPath := ConfigPath()
	localPath := LocalConfigPath()

	absLocalPath, err := filepath.Abs(localPath)
	if err != nil {
		absLocalPath = localPath
	}

	_, globalErr := os.Stat(globalPath)
	_, localErr := os.Stat(localPath)

	return ConfigPathInfo{
		GlobalPath:   globalPath,
		GlobalExists: globalErr == nil,
		LocalPath:    absLocalPath,
		LocalExists:  localErr == nil,
	}
}

// MinimalConfig returns a minimal config template with comments
func MinimalConfig() string {
	return `# glossflow configuration file
# See: glossflow config defaults  (for all available options)

# Target repository (falls back to GITHUB_REPOSITORY)
# repository: owner/glossary-repo

# Public site root for sitemap generation
# base_url: https://glossary.example.org

# Local dataset checkout directory
# dataset_root: .

# Reviewer selection (optional)
# review:
#   min_approvals: 1
#   max_assignees: 3
#   strategy: role_priority
`
}
