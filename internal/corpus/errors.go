package corpus

import "errors"

var (
	// ErrUnexpectedStatus is returned by HTTPSource for non-2xx, non-404 responses.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrInvalidBaseURL is returned when an HTTPSource base URL cannot be used.
	ErrInvalidBaseURL = errors.New("invalid base URL")

	// ErrInvalidCacheSize is returned when a CachedSource is created with a non-positive size.
	ErrInvalidCacheSize = errors.New("cache size must be positive")
)
