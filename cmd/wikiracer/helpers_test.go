package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/wikiracer/internal/corpus"
	"github.com/nao1215/wikiracer/internal/model"
)

// writeCorpus writes one <page>.html file per entry of links into a new
// temporary directory and returns the directory.
func writeCorpus(t *testing.T, links map[string][]string) string {
	t.Helper()

	dir := t.TempDir()
	for page, targets := range links {
		var body strings.Builder
		fmt.Fprintf(&body, "<html><head><title>%s</title></head><body>\n", page)
		for _, target := range targets {
			fmt.Fprintf(&body, `<a href="/wiki/%s" title="%s">%s</a>`+"\n", target, target, target)
		}
		body.WriteString("</body></html>\n")

		name, ok := corpus.FileName(model.NormalizePageID(page))
		if !ok {
			t.Fatalf("no file name for page %q", page)
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body.String()), 0600); err != nil {
			t.Fatalf("failed to write page: %v", err)
		}
	}
	return dir
}

// emptyConfigFile writes a configuration file without settings so that tests
// never pick up a .wikiracer from the working or home directory.
func emptyConfigFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "wikiracer.yaml")
	if err := os.WriteFile(path, []byte("# test configuration\n"), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

// runCLI executes the root command with args and returns its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// raceGraph is a small corpus where the goal is two links away from the start.
var raceGraph = map[string][]string{
	"Start":  {"Middle", "Other"},
	"Middle": {"Goal", "Start"},
	"Other":  {"Start"},
	"Goal":   {},
}
