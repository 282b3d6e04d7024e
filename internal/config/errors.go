package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoPages is returned when the source or goal page is missing.
	ErrNoPages = errors.New("source and goal pages are required")

	// ErrNoCorpus is returned when no page source is configured.
	ErrNoCorpus = errors.New("no corpus specified: use --corpus-dir, --corpus-db or --base-url")

	// ErrConflictingCorpora is returned when more than one page source is configured.
	ErrConflictingCorpora = errors.New("conflicting corpora: --corpus-dir, --corpus-db and --base-url are mutually exclusive")

	// ErrUnknownStrategy is returned for a strategy name the racer does not know.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrInvalidTimeBudget is returned when the depth-first time budget is not positive.
	ErrInvalidTimeBudget = errors.New("invalid time budget: must be positive")

	// ErrInvalidRateLimit is returned when the request rate is negative.
	// Use 0 to disable rate limiting.
	ErrInvalidRateLimit = errors.New("invalid rate limit: must be non-negative")

	// ErrInvalidCacheSize is returned when the page cache size is negative.
	// Use 0 to disable the cache.
	ErrInvalidCacheSize = errors.New("invalid cache size: must be non-negative")

	// ErrInvalidConcurrency is returned when the comparison concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidRequestTimeout is returned when the HTTP timeout is not positive.
	ErrInvalidRequestTimeout = errors.New("invalid request timeout: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidEnv is returned when a WIKIRACER_* variable cannot be parsed.
	ErrInvalidEnv = errors.New("invalid environment variable")
)
