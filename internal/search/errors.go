package search

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPath is returned when the frontier is exhausted without reaching the goal.
	ErrNoPath = errors.New("no path found")

	// ErrTimeBudgetExceeded is returned by DFS when its wall-clock budget runs out.
	// It also matches ErrNoPath.
	ErrTimeBudgetExceeded = fmt.Errorf("%w: time budget exceeded", ErrNoPath)

	// ErrUnknownStrategy is returned by New for an unrecognized strategy name.
	ErrUnknownStrategy = errors.New("unknown search strategy")
)
