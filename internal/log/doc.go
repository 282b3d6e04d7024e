// Package log builds the slog loggers used by wikiracer.
//
// Loggers write text or JSON at Warn level, or Debug in verbose mode, and
// pass every record through RedactHandler, which masks request headers and
// credentials such as cookies and bearer tokens that come from the
// configuration file or the environment.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("http corpus", log.Headers(cfg.Headers))
//	// level=DEBUG msg="http corpus" headers.Cookie=***REDACTED***
package log
