// Package main provides the entry point for the wikiracer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for wikiracer.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wikiracer",
		Short: "Find link paths between wiki pages with as few fetches as possible",
		Long: `wikiracer searches the link graph of a wiki for a path from a source page
to a goal page. The graph is discovered lazily: every page a search looks at
costs one fetch, and the strategies differ in how many fetches they need.

Available strategies: racer (default, best-first), bfs, dfs, ucs, best.

Pages are read from exactly one corpus: a directory of <page>.html files
(--corpus-dir), pages imported with 'wikiracer import' (--corpus-db), or an
HTTP server serving /wiki/<page> (--base-url).`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewRaceCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewImportCmd())
	cmd.AddCommand(NewSnapshotCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
