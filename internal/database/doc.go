// Package database provides SQLite-based storage for wikiracer.
//
// The Store keeps two kinds of data:
//   - Corpus pages imported from a directory snapshot, served back to the
//     searches through corpus.DBSource
//   - Race reports, one row per search run, for the history command
//
// SQLite is accessed through modernc.org/sqlite, a CGO-free driver, so the
// database is a single file under the XDG data directory.
package database
