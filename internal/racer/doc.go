// Package racer runs searches against fresh page sources and turns their
// outcomes into reports.
//
// Racer.FindPath is the wikiracer entry point: a best-first search over a
// source produced by the configured corpus.Factory. Race runs any named
// strategy and returns a model.RaceReport carrying the fetch log, and Compare
// runs several strategies concurrently, each against its own Recorder, so
// fetch counts stay comparable.
package racer
