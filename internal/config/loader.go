package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".wikiracer"

// DefaultEnvFile is the dotenv file read from the current directory.
const DefaultEnvFile = ".env"

// EnvPrefix is the prefix of every environment variable wikiracer reads.
const EnvPrefix = "WIKIRACER_"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfigFile loads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .wikiracer in the current directory
// 3. Look for .wikiracer in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// EnvLookup returns a LookupFunc over the process environment, falling back
// to the variables of the dotenv files. Missing files are skipped; the
// process environment is never modified.
func EnvLookup(envFiles ...string) (LookupFunc, error) {
	fileVars := make(map[string]string)
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		vars, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		for k, v := range vars {
			fileVars[k] = v
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}, nil
}

// ApplyEnv copies WIKIRACER_* variables onto c.
//
// Recognized variables: WIKIRACER_STRATEGY, WIKIRACER_CORPUS_DIR,
// WIKIRACER_CORPUS_DB, WIKIRACER_BASE_URL, WIKIRACER_DISALLOWED,
// WIKIRACER_TIME_BUDGET, WIKIRACER_RATE_LIMIT, WIKIRACER_CACHE_SIZE,
// WIKIRACER_USER_AGENT, WIKIRACER_COOKIE, WIKIRACER_DB_DIR.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	str("STRATEGY", &c.Strategy)
	str("CORPUS_DIR", &c.CorpusDir)
	str("BASE_URL", &c.BaseURL)
	str("DISALLOWED", &c.DisallowedChars)
	str("USER_AGENT", &c.UserAgent)
	str("DB_DIR", &c.DBDir)

	if v, ok := lookup(EnvPrefix + "COOKIE"); ok && v != "" {
		if c.Headers == nil {
			c.Headers = make(map[string]string)
		}
		c.Headers["Cookie"] = v
	}

	if v, ok := lookup(EnvPrefix + "CORPUS_DB"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError("CORPUS_DB", err)
		}
		c.CorpusDB = b
	}
	if v, ok := lookup(EnvPrefix + "TIME_BUDGET"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return envError("TIME_BUDGET", err)
		}
		c.TimeBudget = d
	}
	if v, ok := lookup(EnvPrefix + "RATE_LIMIT"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envError("RATE_LIMIT", err)
		}
		c.RateLimit = f
	}
	if v, ok := lookup(EnvPrefix + "CACHE_SIZE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError("CACHE_SIZE", err)
		}
		c.CacheSize = n
	}

	return nil
}

func envError(name string, err error) error {
	return fmt.Errorf("%w: %s%s: %w", ErrInvalidEnv, EnvPrefix, name, err)
}
