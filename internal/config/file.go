package config

import "time"

// File represents the structure of the .wikiracer configuration file.
// Zero values leave the corresponding setting untouched.
type File struct {
	// Strategy is the default search strategy.
	Strategy string `yaml:"strategy,omitempty"`

	// Corpus selects and configures the page source.
	Corpus CorpusFile `yaml:"corpus,omitempty"`

	// HTTP configures requests made to a --base-url corpus.
	HTTP HTTPFile `yaml:"http,omitempty"`

	// Search configures the strategies.
	Search SearchFile `yaml:"search,omitempty"`

	// Database configures where races and imported pages are stored.
	Database DatabaseFile `yaml:"database,omitempty"`
}

// CorpusFile is the corpus section of the configuration file.
type CorpusFile struct {
	// Dir is a directory of <token>.html pages.
	Dir string `yaml:"dir,omitempty"`

	// DB selects the pages imported into the database.
	DB bool `yaml:"db,omitempty"`

	// BaseURL is a page server.
	BaseURL string `yaml:"baseURL,omitempty"`

	// Disallowed overrides the characters that disqualify a link.
	Disallowed string `yaml:"disallowed,omitempty"`

	// CacheSize is the number of cached pages.
	CacheSize int `yaml:"cacheSize,omitempty"`
}

// HTTPFile is the http section of the configuration file.
type HTTPFile struct {
	// RateLimit is the number of requests per second.
	RateLimit float64 `yaml:"rateLimit,omitempty"`

	// Burst is the rate limiter burst size.
	Burst int `yaml:"burst,omitempty"`

	// Timeout is the per-request timeout, e.g. "30s".
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Cookie is sent as the Cookie header.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are extra request headers.
	Headers map[string]string `yaml:"headers,omitempty"`

	// MaxBodySize is the maximum page size in bytes.
	MaxBodySize int64 `yaml:"maxBodySize,omitempty"`
}

// SearchFile is the search section of the configuration file.
type SearchFile struct {
	// TimeBudget bounds a depth-first search, e.g. "100s".
	TimeBudget time.Duration `yaml:"timeBudget,omitempty"`

	// Concurrency is the number of strategies compare runs at once.
	Concurrency int `yaml:"concurrency,omitempty"`
}

// DatabaseFile is the database section of the configuration file.
type DatabaseFile struct {
	// Dir is the database directory.
	Dir string `yaml:"dir,omitempty"`

	// Disabled turns off saving race reports.
	Disabled bool `yaml:"disabled,omitempty"`
}

// Apply copies the values set in the file onto c.
func (f *File) Apply(c *Config) {
	if f.Strategy != "" {
		c.Strategy = f.Strategy
	}

	if f.Corpus.Dir != "" {
		c.CorpusDir = f.Corpus.Dir
	}
	if f.Corpus.DB {
		c.CorpusDB = true
	}
	if f.Corpus.BaseURL != "" {
		c.BaseURL = f.Corpus.BaseURL
	}
	if f.Corpus.Disallowed != "" {
		c.DisallowedChars = f.Corpus.Disallowed
	}
	if f.Corpus.CacheSize != 0 {
		c.CacheSize = f.Corpus.CacheSize
	}

	if f.HTTP.RateLimit != 0 {
		c.RateLimit = f.HTTP.RateLimit
	}
	if f.HTTP.Burst != 0 {
		c.RateBurst = f.HTTP.Burst
	}
	if f.HTTP.Timeout != 0 {
		c.RequestTimeout = f.HTTP.Timeout
	}
	if f.HTTP.UserAgent != "" {
		c.UserAgent = f.HTTP.UserAgent
	}
	if f.HTTP.MaxBodySize != 0 {
		c.MaxBodySize = f.HTTP.MaxBodySize
	}
	if len(f.HTTP.Headers) > 0 || f.HTTP.Cookie != "" {
		if c.Headers == nil {
			c.Headers = make(map[string]string)
		}
		for k, v := range f.HTTP.Headers {
			c.Headers[k] = v
		}
		if f.HTTP.Cookie != "" {
			c.Headers["Cookie"] = f.HTTP.Cookie
		}
	}

	if f.Search.TimeBudget != 0 {
		c.TimeBudget = f.Search.TimeBudget
	}
	if f.Search.Concurrency != 0 {
		c.Concurrency = f.Search.Concurrency
	}

	if f.Database.Dir != "" {
		c.DBDir = f.Database.Dir
	}
	if f.Database.Disabled {
		c.SaveToDB = false
	}
}
