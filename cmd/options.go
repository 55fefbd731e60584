package cmd

// Options holds the shared command-line options for the glossflow CLI.
type Options struct {
	Repository string // owner/name, overrides config and GITHUB_REPOSITORY
	Issue      int    // issue number the command operates on
	Event      string // created, edited, comment

	// Reviewer selection overrides
	Strategy     string
	Seed         int64
	SeedSet      bool
	MinApprovals int
	MaxAssignees int

	// Dataset and site options
	DatasetRoot string
	BaseURL     string
	Output      string // sitemap output path, "-" for stdout
	Check       bool   // integrity check only
	Force       bool   // materialize without the approved label

	Verbosity int
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options with defaults and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{
		Event:  "created",
		Output: "-",
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithRepository sets the target repository in owner/name form.
func WithRepository(repo string) Option {
	return func(o *Options) {
		o.Repository = repo
	}
}

// WithIssue sets the issue number to operate on.
func WithIssue(issue int) Option {
	return func(o *Options) {
		o.Issue = issue
	}
}

// WithEvent sets the event type (created, edited, comment).
func WithEvent(event string) Option {
	return func(o *Options) {
		o.Event = event
	}
}

// WithStrategy sets the reviewer selection strategy.
func WithStrategy(strategy string) Option {
	return func(o *Options) {
		o.Strategy = strategy
	}
}

// WithSeed fixes the random selection seed.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
		o.SeedSet = true
	}
}

// WithDatasetRoot sets the local dataset checkout directory.
func WithDatasetRoot(root string) Option {
	return func(o *Options) {
		o.DatasetRoot = root
	}
}

// WithBaseURL sets the public site root for sitemap generation.
func WithBaseURL(baseURL string) Option {
	return func(o *Options) {
		o.BaseURL = baseURL
	}
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}
