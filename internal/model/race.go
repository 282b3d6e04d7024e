package model

import (
	"time"

	"github.com/google/uuid"
)

// RaceReport is the outcome of a single search run.
// It is what the CLI prints, what compare aggregates, and what the database stores.
type RaceReport struct {
	// ID uniquely identifies the run.
	ID string `json:"id"`

	// Strategy is the name of the search strategy that produced the report.
	Strategy string `json:"strategy"`

	// Source is the page the search started from.
	Source PageID `json:"source"`

	// Goal is the page the search was looking for.
	Goal PageID `json:"goal"`

	// Found reports whether a path was found.
	Found bool `json:"found"`

	// Path is the discovered path, empty when Found is false.
	Path Path `json:"path,omitempty"`

	// Requests is the ordered log of every page fetched during the run.
	Requests []PageID `json:"requests"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the wall-clock time of the run.
	Duration time.Duration `json:"duration"`

	// Error describes why no path was returned.
	Error string `json:"error,omitempty"`
}

// NewRaceReport creates a report for a run that is about to start.
func NewRaceReport(strategy string, source, goal PageID) *RaceReport {
	return &RaceReport{
		ID:        uuid.NewString(),
		Strategy:  strategy,
		Source:    source,
		Goal:      goal,
		Requests:  make([]PageID, 0),
		StartedAt: time.Now(),
	}
}

// Finish records the result of the run.
func (r *RaceReport) Finish(path Path, requests []PageID, err error) {
	r.Duration = time.Since(r.StartedAt)
	r.Requests = append(r.Requests[:0], requests...)
	if err != nil {
		r.Found = false
		r.Path = nil
		r.Error = err.Error()
		return
	}
	r.Found = path != nil
	r.Path = path
}

// FetchCount returns the number of fetches performed.
func (r *RaceReport) FetchCount() int {
	return len(r.Requests)
}
