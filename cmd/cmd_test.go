package cmd

import "testing"

func TestNew(t *testing.T) {
	cmd := New()
	if cmd == nil {
		t.Fatal("New() returned nil")
	}
	if cmd.Use != "glossflow" {
		t.Errorf("expected Use to be 'glossflow', got %q", cmd.Use)
	}
	if cmd.PersistentFlags().Lookup("verbose") == nil {
		t.Error("missing persistent --verbose flag")
	}
	if cmd.PersistentFlags().Lookup("repo") == nil {
		t.Error("missing persistent --repo flag")
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	cmd := New()
	want := []string{"run", "label", "validate", "assign", "approval", "materialize", "sitemap", "config", "version"}
	have := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		have[sub.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestNewCmdRun(t *testing.T) {
	opts := NewOptions()
	cmd := NewCmdRun(opts)
	if cmd.Use != "run" {
		t.Errorf("expected Use to be 'run', got %q", cmd.Use)
	}
	for _, flag := range []string{"issue", "event"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("run missing --%s flag", flag)
		}
	}
}

func TestNewCmdAssignFlags(t *testing.T) {
	cmd := NewCmdAssign(NewOptions())
	for _, flag := range []string{"issue", "strategy", "max-assignees", "seed"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("assign missing --%s flag", flag)
		}
	}
}

func TestNewCmdConfig(t *testing.T) {
	cmd := NewCmdConfig()
	if cmd.Use != "config" {
		t.Errorf("expected Use to be 'config', got %q", cmd.Use)
	}
	want := []string{"init", "path", "defaults", "show"}
	have := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		have[sub.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("config subcommand %q not registered", name)
		}
	}
}

func TestNewCmdVersion(t *testing.T) {
	cmd := NewCmdVersion()
	if cmd.Use != "version" {
		t.Errorf("expected Use to be 'version', got %q", cmd.Use)
	}
}

func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("1.0.0", "abc123", "2024-01-01")
	// Just verify it doesn't panic - version info is in package vars
}

func TestOptionsDefaults(t *testing.T) {
	opts := NewOptions()
	if opts.Event != "created" {
		t.Errorf("expected default Event 'created', got %q", opts.Event)
	}
	if opts.Output != "-" {
		t.Errorf("expected default Output '-', got %q", opts.Output)
	}
	if opts.SeedSet {
		t.Error("SeedSet should default to false")
	}
}

func TestWithSeedMarksExplicit(t *testing.T) {
	opts := NewOptions(WithSeed(7))
	if !opts.SeedSet || opts.Seed != 7 {
		t.Errorf("WithSeed(7) = %+v", opts)
	}
}
