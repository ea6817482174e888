// Package cli implements the frontier command-line interface.
//
// # Commands
//
// The main commands are:
//   - degrees: Shortest chain of co-stars between two people
//   - dataset: Inspect, export and draw a dataset
//   - tictactoe: Best moves, self-play and an interactive game
//   - serve: HTTP API over a loaded dataset
//   - cache, config: Manage the snapshot cache and the config file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/frontier/pkg/cache"
	"github.com/matzehuels/frontier/pkg/config"
	"github.com/matzehuels/frontier/pkg/dataset"
	"github.com/matzehuels/frontier/pkg/errors"
	"github.com/matzehuels/frontier/pkg/pipeline"
	"github.com/matzehuels/frontier/pkg/search"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// ErrReported means the command already told the user what went wrong;
// main should exit non-zero without printing again.
var ErrReported = stderrors.New("reported")

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Interactive enables terminal UIs (pickers, spinners). New sets it
	// when stdin and stderr are terminals.
	Interactive bool

	cfg   config.Config
	flags globalFlags
}

type globalFlags struct {
	configPath string
	verbose    bool
	dataset    string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:      newLogger(w, level),
		Interactive: isTerminal(os.Stdin) && isTerminal(os.Stderr),
		cfg:         config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
// An unreachable cache is logged and replaced by a NullCache.
func (c *CLI) newRunner(ctx context.Context) *pipeline.Runner {
	cc, keyer := c.newCache(ctx)
	r := pipeline.NewRunner(cc, keyer, c.Logger)
	r.DatasetTTL = c.cfg.Cache.TTL.Duration
	return r
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, cache.Keyer) {
	if c.flags.noCache {
		return cache.NewNullCache(), nil
	}
	cc := c.cfg.Cache
	opened, err := cache.Open(ctx, c.cacheOptions())
	if err != nil {
		c.Logger.Warn("cache disabled", "backend", cc.Backend, "err", err)
		return cache.NewNullCache(), nil
	}
	// Redis namespaces keys itself; file caches that share a directory
	// are kept apart by the keyer.
	if cc.Backend != cache.BackendRedis && cc.Prefix != "" {
		return opened, cache.NewScopedKeyer(nil, cc.Prefix)
	}
	return opened, nil
}

// loadDataset loads the dataset named by --dataset or the config file.
func (c *CLI) loadDataset(ctx context.Context, r *pipeline.Runner, refresh bool) (*dataset.Dataset, pipeline.Stats, error) {
	if c.flags.dataset == "" {
		return nil, pipeline.Stats{}, errors.New(errors.ErrCodeInvalidInput,
			"no dataset given: pass --dataset or set dataset in %s", config.Path())
	}
	opts := pipeline.Options{Dataset: c.flags.dataset, Refresh: refresh}

	p := newProgress(c.Logger)
	var spin *Spinner
	if c.Interactive && !c.flags.verbose {
		spin = newSpinnerWithContext(ctx, "Loading "+filepath.Base(c.flags.dataset))
		spin.Start()
	}
	ds, stats, err := r.LoadDatasetWithCacheInfo(ctx, opts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return nil, stats, err
	}
	p.done("dataset ready", "people", ds.NumPeople(), "productions", ds.NumProductions(), "cached", stats.CacheHit)
	return ds, stats, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// searchOptions merges the --frontier and --timeout flags over the config
// file.
func (c *CLI) searchOptions(cmd *cobra.Command, frontier string, timeout time.Duration) pipeline.Options {
	opts := pipeline.Options{
		Frontier: search.Kind(c.cfg.Search.Frontier),
		Timeout:  c.cfg.Search.Timeout.Duration,
		Logger:   c.Logger,
	}
	if cmd.Flags().Changed("frontier") {
		opts.Frontier = search.Kind(frontier)
	}
	if cmd.Flags().Changed("timeout") {
		opts.Timeout = timeout
	}
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// writeOutputs writes rendered artifacts next to base, one file per format.
func writeOutputs(base string, artifacts map[string][]byte) ([]string, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	var paths []string
	for _, format := range []string{pipeline.FormatDOT, pipeline.FormatSVG} {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := stem + "." + format
		if len(artifacts) == 1 && ext != "" {
			path = base
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// FormatError renders err for the terminal: the message and its cause,
// without the machine-readable code.
func FormatError(err error) string {
	var e *errors.Error
	if !stderrors.As(err, &e) {
		return err.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}
