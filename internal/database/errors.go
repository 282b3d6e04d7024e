package database

import "errors"

var (
	// ErrDatabaseNotFound is returned by Open when CreateIfNotExists is unset
	// and the database file does not exist.
	ErrDatabaseNotFound = errors.New("database not found")

	// ErrEmptyPageID is returned when storing a page without an identifier.
	ErrEmptyPageID = errors.New("page id must not be empty")
)
