package config

import (
	"path/filepath"
	"slices"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/wikiracer/internal/corpus"
	"github.com/nao1215/wikiracer/internal/model"
	"github.com/nao1215/wikiracer/internal/racer"
	"github.com/nao1215/wikiracer/internal/search"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "wikiracer"

	// DefaultStrategy is the best-first racer.
	DefaultStrategy = racer.StrategyRacer

	// DefaultTimeBudget bounds a depth-first search.
	DefaultTimeBudget = search.DefaultTimeBudget

	// DefaultRateLimit is the number of HTTP page requests per second.
	// Only applies to --base-url corpora.
	DefaultRateLimit = corpus.DefaultRequestsPerSecond

	// DefaultRateBurst is the token bucket size of the HTTP rate limiter.
	DefaultRateBurst = 1

	// DefaultCacheSize is the number of pages kept in memory in front of
	// a directory, database or HTTP corpus.
	DefaultCacheSize = corpus.DefaultCacheSize

	// DefaultConcurrency is the number of strategies compare runs at once.
	DefaultConcurrency = racer.DefaultConcurrency

	// DefaultRequestTimeout is the timeout of a single HTTP page request.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultUserAgent identifies wikiracer in HTTP requests.
	DefaultUserAgent = corpus.DefaultUserAgent

	// DefaultMaxBodySize limits the size of a fetched page.
	DefaultMaxBodySize = corpus.DefaultMaxBodySize
)

// Config holds all configuration options for wikiracer.
// It is populated from the config file, the environment and CLI flags, then
// passed down explicitly.
type Config struct {
	// Strategy is the search strategy: racer, bfs, dfs, ucs or best.
	Strategy string

	// Source is the page the race starts from.
	Source model.PageID

	// Goal is the page the race looks for.
	Goal model.PageID

	// CorpusDir is a directory of <token>.html pages.
	CorpusDir string

	// CorpusDB selects the pages imported into the SQLite database.
	CorpusDB bool

	// BaseURL is an HTTP server that serves pages at <BaseURL>/wiki/<token>.
	BaseURL string

	// DisallowedChars are the characters that disqualify a link.
	DisallowedChars string

	// TimeBudget is the wall-clock budget of a depth-first search.
	TimeBudget time.Duration

	// RateLimit is the number of HTTP requests per second. 0 disables limiting.
	RateLimit float64

	// RateBurst is the burst size of the HTTP rate limiter.
	RateBurst int

	// CacheSize is the number of cached pages. 0 disables the cache.
	CacheSize int

	// Concurrency is the number of strategies compare runs at once.
	Concurrency int

	// RequestTimeout is the timeout of a single HTTP request.
	RequestTimeout time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// Headers are extra HTTP headers sent with every request.
	Headers map[string]string

	// MaxBodySize is the maximum page size in bytes read over HTTP.
	MaxBodySize int64

	// Verbose enables debug logging and the fetch log in text reports.
	Verbose bool

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path. Empty means stdout.
	ReportFile string

	// DBDir is the directory of the SQLite database.
	DBDir string

	// SaveToDB stores race reports in the database.
	SaveToDB bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, .wikiracer is searched in the current and home directories.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Strategy:        DefaultStrategy,
		DisallowedChars: corpus.DefaultDisallowed,
		TimeBudget:      DefaultTimeBudget,
		RateLimit:       DefaultRateLimit,
		RateBurst:       DefaultRateBurst,
		CacheSize:       DefaultCacheSize,
		Concurrency:     DefaultConcurrency,
		RequestTimeout:  DefaultRequestTimeout,
		UserAgent:       DefaultUserAgent,
		MaxBodySize:     DefaultMaxBodySize,
		DBDir:           XDGDataDir(),
		SaveToDB:        true,
	}
}

// XDGDataDir returns the XDG data directory for wikiracer.
// On Linux: ~/.local/share/wikiracer
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for wikiracer.
// On Linux: ~/.config/wikiracer
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration of a race and returns the first problem found.
func (c *Config) Validate() error {
	if c.Source == "" || c.Goal == "" {
		return ErrNoPages
	}
	if err := c.ValidateCorpus(); err != nil {
		return err
	}
	if !slices.Contains(racer.StrategyNames(), c.Strategy) {
		return ErrUnknownStrategy
	}
	if c.TimeBudget <= 0 {
		return ErrInvalidTimeBudget
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

// ValidateCorpus checks that exactly one page source is configured and that
// its settings are usable.
func (c *Config) ValidateCorpus() error {
	n := 0
	for _, set := range []bool{c.CorpusDir != "", c.CorpusDB, c.BaseURL != ""} {
		if set {
			n++
		}
	}
	switch {
	case n == 0:
		return ErrNoCorpus
	case n > 1:
		return ErrConflictingCorpora
	}

	if c.RateLimit < 0 {
		return ErrInvalidRateLimit
	}
	if c.CacheSize < 0 {
		return ErrInvalidCacheSize
	}
	if c.RequestTimeout <= 0 {
		return ErrInvalidRequestTimeout
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	return nil
}
