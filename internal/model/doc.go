// Package model defines the value types shared across wikiracer.
//
// The package has no dependencies on the rest of the module so that every
// other package (parser, corpus, search, report, database) can import it.
//
// # Types
//
//   - PageID: identifier of a page in the link graph ("/wiki/Foo")
//   - Path: ordered sequence of PageIDs from a source to a goal
//   - RaceReport: the outcome of one search run, including its fetch log
package model
