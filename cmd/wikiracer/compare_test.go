package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/wikiracer/internal/report"
	"github.com/nao1215/wikiracer/internal/search"
)

// TestNewCompareCmd tests the compare command creation.
func TestNewCompareCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCompareCmd()
	if cmd.Name() != "compare" {
		t.Errorf("expected name 'compare', got %q", cmd.Name())
	}

	flag := cmd.Flags().Lookup("strategies")
	if flag == nil {
		t.Fatal("expected strategies flag")
	}
	if flag.DefValue != "["+strings.Join(search.Names(), ",")+"]" {
		t.Errorf("expected every search strategy by default, got %s", flag.DefValue)
	}
	if cmd.Flags().Lookup("concurrency") == nil {
		t.Error("expected concurrency flag")
	}
	if cmd.Flags().Lookup("strategy") != nil {
		t.Error("compare must not have a strategy flag")
	}
}

// TestRunCompareCmd tests comparisons run through the root command.
func TestRunCompareCmd(t *testing.T) {
	t.Parallel()

	dir := writeCorpus(t, raceGraph)

	t.Run("every strategy in order", func(t *testing.T) {
		t.Parallel()
		out, err := runCLI(t, "compare", "Start", "Goal",
			"-c", emptyConfigFile(t), "-d", dir, "--no-save", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var doc report.Comparison
		if err := json.Unmarshal([]byte(out), &doc); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, out)
		}
		if doc.Source != "/wiki/Start" || doc.Goal != "/wiki/Goal" {
			t.Errorf("unexpected pages %s -> %s", doc.Source, doc.Goal)
		}

		names := search.Names()
		if len(doc.Reports) != len(names) {
			t.Fatalf("expected %d reports, got %d", len(names), len(doc.Reports))
		}
		for i, r := range doc.Reports {
			if r.Strategy != names[i] {
				t.Errorf("report %d: expected strategy %s, got %s", i, names[i], r.Strategy)
			}
			if !r.Found {
				t.Errorf("%s: expected a path, got error %q", r.Strategy, r.Error)
			}
			if r.Path.Edges() != 2 {
				t.Errorf("%s: expected a two-link path, got %s", r.Strategy, r.Path)
			}
		}
	})

	t.Run("selected strategies text report", func(t *testing.T) {
		t.Parallel()
		out, err := runCLI(t, "compare", "Start", "Goal",
			"-c", emptyConfigFile(t), "-d", dir, "--no-save",
			"--strategies", "bfs,racer", "--concurrency", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"STRATEGY COMPARISON", "bfs", "racer"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, out)
			}
		}
	})

	t.Run("unknown strategy", func(t *testing.T) {
		t.Parallel()
		_, err := runCLI(t, "compare", "Start", "Goal",
			"-c", emptyConfigFile(t), "-d", dir, "--no-save", "--strategies", "bfs,astar")
		if !errors.Is(err, search.ErrUnknownStrategy) {
			t.Errorf("expected ErrUnknownStrategy, got %v", err)
		}
	})
}
