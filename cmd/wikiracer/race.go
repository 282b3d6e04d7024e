package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/wikiracer/internal/config"
	"github.com/nao1215/wikiracer/internal/corpus"
	"github.com/nao1215/wikiracer/internal/database"
	"github.com/nao1215/wikiracer/internal/log"
	"github.com/nao1215/wikiracer/internal/model"
	"github.com/nao1215/wikiracer/internal/racer"
	"github.com/nao1215/wikiracer/internal/search"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// NewRaceCmd creates the race command.
func NewRaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "race <source> <goal>",
		Short: "Find a path of links from one page to another",
		Long: `Race searches for a chain of links from the source page to the goal page.

Pages may be given as "/wiki/Calvin_Li", "Calvin_Li", "Calvin Li" or a full
wiki URL. The report lists the path and every page fetched on the way.
Races are saved to the local database unless --no-save is given.

Examples:
  # Race with the default best-first racer over a directory of pages
  wikiracer race Calvin_Li Wikipedia --corpus-dir ./pages

  # Use breadth-first search against a page server
  wikiracer race -s bfs Calvin_Li Wikipedia --base-url http://127.0.0.1:8000

  # Race over pages imported with 'wikiracer import'
  wikiracer race --corpus-db Calvin_Li Wikipedia

  # Give depth-first search 10 seconds and write a JSON report
  wikiracer race -s dfs -t 10s --json -o race.json Calvin_Li Wikipedia -d ./pages`,
		Args: cobra.ExactArgs(2),
		RunE: runRaceCmd,
	}

	cmd.Flags().StringP("strategy", "s", config.DefaultStrategy,
		fmt.Sprintf("Search strategy %v", racer.StrategyNames()))
	addSearchFlags(cmd)
	addCorpusFlags(cmd)
	addReportFlags(cmd)
	cmd.Flags().Bool("no-save", false, "Do not save the race to the database")

	return cmd
}

// runRaceCmd executes the race command.
func runRaceCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(cmd.Context(), logger)
	defer cancel()

	return runRace(ctx, cfg, logger, cmd.OutOrStdout())
}

// runRace runs one race and outputs its report.
func runRace(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	src, err := openCorpus(ctx, cfg, store, logger)
	if err != nil {
		return err
	}

	r := newRacer(cfg, src, logger)
	raceReport, raceErr := r.Race(ctx, cfg.Strategy, cfg.Source, cfg.Goal)
	if raceReport == nil {
		return raceErr
	}

	if err := saveRaces(ctx, cfg, store, logger, raceReport); err != nil {
		return err
	}

	if err := outputReport(cfg, stdout, func(w reportWriter) error {
		_, err := w.Write(raceReport)
		return err
	}); err != nil {
		return err
	}

	return raceErr
}

// newRacer creates a Racer whose searches fetch through src.
func newRacer(cfg *config.Config, src corpus.Source, logger *slog.Logger) *racer.Racer {
	return racer.New(corpus.NewFactory(src),
		racer.WithLogger(logger),
		racer.WithConcurrency(cfg.Concurrency),
		racer.WithSearchOptions(search.WithTimeBudget(cfg.TimeBudget)),
	)
}

// saveRaces stores race reports in the database if enabled.
// If store is nil, this function is a no-op.
func saveRaces(ctx context.Context, cfg *config.Config, store *database.Store, logger *slog.Logger, reports ...*model.RaceReport) error {
	if store == nil || !cfg.SaveToDB {
		return nil
	}

	for _, r := range reports {
		if r == nil {
			continue
		}
		// Save even when ctx was cancelled so that partial comparisons are kept.
		if err := store.SaveRace(context.WithoutCancel(ctx), r); err != nil {
			return fmt.Errorf("failed to save race report: %w", err)
		}
		logger.Info("race report saved to database", "id", r.ID, "strategy", r.Strategy)
	}
	return nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger on stderr based on verbosity.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewLogger(os.Stderr, verbose)
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context, logger *slog.Logger) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			logger.Warn("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// addSearchFlags registers the flags shared by race and compare that tune
// the searches.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().DurationP("time-budget", "t", config.DefaultTimeBudget,
		"Wall-clock budget of a depth-first search")
}

// addCorpusFlags registers the flags that select and configure the corpus.
func addCorpusFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("corpus-dir", "d", "",
		"Directory of <page>.html files to race over")
	cmd.Flags().Bool("corpus-db", false,
		"Race over pages imported with 'wikiracer import'")
	cmd.Flags().StringP("base-url", "u", "",
		"Page server serving /wiki/<page> (e.g., http://127.0.0.1:8000)")
	cmd.Flags().String("disallowed", corpus.DefaultDisallowed,
		"Characters that disqualify a link")
	cmd.Flags().Int("cache-size", config.DefaultCacheSize,
		"Number of pages cached in memory (0 disables the cache)")

	cmd.Flags().Float64("rate-limit", config.DefaultRateLimit,
		"HTTP requests per second against --base-url (0 disables limiting)")
	cmd.Flags().Int("rate-burst", config.DefaultRateBurst,
		"Burst size of the HTTP rate limiter")
	cmd.Flags().Duration("request-timeout", config.DefaultRequestTimeout,
		"Timeout of a single HTTP request")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent to --base-url")
	cmd.Flags().String("cookie", "",
		"Cookie header sent to --base-url")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum page size in bytes read over HTTP")

	addStoreFlags(cmd)
}

// addStoreFlags registers the flags that locate the configuration file and
// the database.
func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .wikiracer in current or home directory)")
	cmd.Flags().String("db-dir", "",
		"Database directory (default: XDG data directory)")
}

// addReportFlags registers the output format flags.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
}

// buildConfig creates a Config from, in order, defaults, the configuration
// file, the environment and the command-line flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	if flags.Lookup("config") != nil {
		cfg.ConfigFilePath, err = flags.GetString("config")
		if err != nil {
			return nil, err
		}
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use defaults if no file found.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	lookup, err := config.EnvLookup(config.DefaultEnvFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}

	if err := applyFlags(cfg, flags); err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	if len(args) >= 2 {
		cfg.Source = model.NormalizePageID(args[0])
		cfg.Goal = model.NormalizePageID(args[1])
	}

	return cfg, nil
}

// applyFlags copies explicitly set flags onto cfg.
// Flags left at their defaults never override the file or the environment.
func applyFlags(cfg *config.Config, flags *pflag.FlagSet) error {
	// A corpus chosen on the command line replaces the configured one.
	if flags.Changed("corpus-dir") || flags.Changed("corpus-db") || flags.Changed("base-url") {
		cfg.CorpusDir = ""
		cfg.CorpusDB = false
		cfg.BaseURL = ""
	}

	var cookie string
	var noSave bool
	steps := []error{
		changed(flags, "strategy", flags.GetString, &cfg.Strategy),
		changed(flags, "time-budget", flags.GetDuration, &cfg.TimeBudget),
		changed(flags, "concurrency", flags.GetInt, &cfg.Concurrency),
		changed(flags, "corpus-dir", flags.GetString, &cfg.CorpusDir),
		changed(flags, "corpus-db", flags.GetBool, &cfg.CorpusDB),
		changed(flags, "base-url", flags.GetString, &cfg.BaseURL),
		changed(flags, "disallowed", flags.GetString, &cfg.DisallowedChars),
		changed(flags, "cache-size", flags.GetInt, &cfg.CacheSize),
		changed(flags, "rate-limit", flags.GetFloat64, &cfg.RateLimit),
		changed(flags, "rate-burst", flags.GetInt, &cfg.RateBurst),
		changed(flags, "request-timeout", flags.GetDuration, &cfg.RequestTimeout),
		changed(flags, "user-agent", flags.GetString, &cfg.UserAgent),
		changed(flags, "cookie", flags.GetString, &cookie),
		changed(flags, "max-body-size", flags.GetInt64, &cfg.MaxBodySize),
		changed(flags, "db-dir", flags.GetString, &cfg.DBDir),
		changed(flags, "json", flags.GetBool, &cfg.JSONReport),
		changed(flags, "markdown", flags.GetBool, &cfg.MarkdownReport),
		changed(flags, "output", flags.GetString, &cfg.ReportFile),
		changed(flags, "no-save", flags.GetBool, &noSave),
	}
	for _, err := range steps {
		if err != nil {
			return err
		}
	}

	if cookie != "" {
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string)
		}
		cfg.Headers["Cookie"] = cookie
	}
	if noSave {
		cfg.SaveToDB = false
	}
	return nil
}

// changed stores the value of the named flag in dst when it was set on the
// command line.
func changed[T any](flags *pflag.FlagSet, name string, get func(string) (T, error), dst *T) error {
	if !flags.Changed(name) {
		return nil
	}
	v, err := get(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
