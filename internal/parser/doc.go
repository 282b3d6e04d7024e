// Package parser extracts outgoing page links from raw page content.
//
// # Components
//
//   - Extractor: finds `<a href="/wiki/...">` anchors, drops identifiers that
//     contain a disallowed character, and deduplicates the rest while keeping
//     the order in which they first appear on the page
//   - Title: returns the text of the page's <title> element
//
// Link order matters: depth-first search explores the links nearest the end
// of a page first, so the extractor must never reorder its output.
//
// # Usage
//
//	ex := parser.NewExtractor(source.Disallowed())
//	links := ex.ExtractLinks(content)
package parser
