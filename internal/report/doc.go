// Package report renders race results.
//
// This package contains writers for different output formats:
//   - SimpleWriter: human-readable text for terminal display
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: tables and alerts for sharing
//
// Writers implement the Writer interface, so they can be used
// interchangeably and composed with MultiWriter.
package report
