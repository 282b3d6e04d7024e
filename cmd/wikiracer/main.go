// Package main provides the entry point for the wikiracer CLI.
//
// wikiracer finds a chain of links between two wiki pages while fetching as
// few pages as possible. Pages come from a directory of HTML files, from pages
// imported into the local database, or from an HTTP page server.
//
// Usage:
//
//	wikiracer race Calvin_Li Wikipedia --corpus-dir ./pages
//	wikiracer compare Calvin_Li Wikipedia --base-url http://127.0.0.1:8000
//
// See --help for all available options.
package main

// main is the entry point for wikiracer.
func main() {
	Execute()
}
