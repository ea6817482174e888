package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/frontier/pkg/cache"
	"github.com/matzehuels/frontier/pkg/dataset"
	"github.com/matzehuels/frontier/pkg/degrees"
	"github.com/matzehuels/frontier/pkg/errors"
	"github.com/matzehuels/frontier/pkg/game/minimax"
	"github.com/matzehuels/frontier/pkg/game/tictactoe"
	"github.com/matzehuels/frontier/pkg/observability"
	"github.com/matzehuels/frontier/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// DatasetTTL is the snapshot lifetime. Zero means [cache.TTLDataset].
	DatasetTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// =============================================================================
// Load
// =============================================================================

// LoadDatasetWithCacheInfo loads opts.Dataset and reports whether the
// snapshot cache served it. Sources without a fingerprint are never cached.
// With opts.Refresh the cache is not read but is still updated.
func (r *Runner) LoadDatasetWithCacheInfo(ctx context.Context, opts Options) (*dataset.Dataset, Stats, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, Stats{}, err
	}
	logger := r.logger(opts)
	start := time.Now()

	src, err := dataset.Open(opts.Dataset)
	if err != nil {
		return nil, Stats{}, err
	}
	observability.Dataset().OnLoadStart(ctx, src.String())

	ds, hit, err := r.loadDataset(ctx, src, opts, logger)
	stats := Stats{CacheHit: hit, Duration: time.Since(start)}
	if err != nil {
		observability.Dataset().OnLoadComplete(ctx, src.String(), 0, 0, hit, stats.Duration, err)
		return nil, stats, err
	}
	observability.Dataset().OnLoadComplete(ctx, src.String(), ds.NumPeople(), ds.NumProductions(), hit, stats.Duration, nil)

	ls := ds.Stats()
	logger.Info("loaded dataset",
		"source", src,
		"people", ls.People,
		"productions", ls.Productions,
		"cached", hit,
		"duration", stats.Duration.Round(time.Millisecond))
	if ls.Skipped > 0 || ls.Dropped > 0 {
		logger.Warn("ignored malformed records", "skipped", ls.Skipped, "dropped", ls.Dropped)
	}
	return ds, stats, nil
}

// LoadDataset is a convenience wrapper that calls LoadDatasetWithCacheInfo
// and discards the cache info.
func (r *Runner) LoadDataset(ctx context.Context, opts Options) (*dataset.Dataset, error) {
	ds, _, err := r.LoadDatasetWithCacheInfo(ctx, opts)
	return ds, err
}

func (r *Runner) loadDataset(ctx context.Context, src dataset.Source, opts Options, logger *log.Logger) (*dataset.Dataset, bool, error) {
	fp, err := src.Fingerprint(ctx)
	if err != nil {
		logger.Warn("cannot fingerprint dataset, caching disabled", "source", src, "err", err)
		fp = ""
	}
	key := ""
	if fp != "" {
		key = r.Keyer.DatasetKey(fp, cache.DatasetKeyOpts{Schema: SnapshotSchema})
	}

	if key != "" && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			ds, err := dataset.Unmarshal(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "dataset")
				return ds, true, nil
			}
			logger.Debug("discarding unreadable snapshot", "err", err)
		} else if err != nil {
			logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "dataset")
	}

	ds, err := src.Load(ctx)
	if err != nil {
		return nil, false, err
	}

	if key != "" {
		if data, err := dataset.Marshal(ds); err == nil {
			ttl := r.DatasetTTL
			if ttl == 0 {
				ttl = cache.TTLDataset
			}
			if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
				logger.Warn("cache write failed", "err", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "dataset", len(data))
			}
		}
	}
	return ds, false, nil
}

// =============================================================================
// Search
// =============================================================================

// ShortestPath runs a degrees search under opts.Timeout. A search that runs
// out of time fails with [errors.ErrCodeTimeout].
func (r *Runner) ShortestPath(ctx context.Context, g degrees.Graph, source, target string, opts Options) (degrees.Result, error) {
	if err := opts.ValidateForSearch(); err != nil {
		return degrees.Result{}, err
	}
	logger := r.logger(opts).With("search", uuid.NewString()[:8])
	ctx, cancel := withTimeout(ctx, opts.Timeout)
	defer cancel()

	observability.Search().OnSearchStart(ctx, observability.EngineDegrees)
	start := time.Now()
	res, err := degrees.ShortestPath(ctx, g, source, target, degrees.WithFrontier(opts.Frontier))
	elapsed := time.Since(start)
	err = timeoutError(err, opts.Timeout)
	observability.Search().OnSearchComplete(ctx, observability.EngineDegrees, res.Explored, elapsed, err)
	if err != nil {
		return degrees.Result{}, err
	}

	logger.Debug("path search finished",
		"source", source,
		"target", target,
		"frontier", opts.Frontier,
		"connected", res.Connected,
		"explored", res.Explored,
		"duration", elapsed.Round(time.Microsecond))
	return res, nil
}

// BestMove runs a tic-tac-toe search under opts.Timeout.
func (r *Runner) BestMove(ctx context.Context, board tictactoe.Board, opts Options) (minimax.Result[tictactoe.Move], error) {
	ctx, cancel := withTimeout(ctx, opts.Timeout)
	defer cancel()

	observability.Search().OnSearchStart(ctx, observability.EngineMinimax)
	start := time.Now()
	res, err := minimax.BestMove(ctx, tictactoe.Rules{}, board)
	elapsed := time.Since(start)
	err = timeoutError(err, opts.Timeout)
	observability.Search().OnSearchComplete(ctx, observability.EngineMinimax, res.Stats.Nodes, elapsed, err)
	if err != nil {
		return res, err
	}

	r.logger(opts).Debug("game search finished",
		"board", board,
		"move", res.Move,
		"value", res.Value,
		"nodes", res.Stats.Nodes,
		"cutoffs", res.Stats.Cutoffs,
		"duration", elapsed.Round(time.Microsecond))
	return res, nil
}

// SelfPlay plays a game of tic-tac-toe from board with the engine on both
// sides.
func (r *Runner) SelfPlay(ctx context.Context, board tictactoe.Board, opts Options) (minimax.Game[tictactoe.Board, tictactoe.Move], error) {
	ctx, cancel := withTimeout(ctx, opts.Timeout)
	defer cancel()

	observability.Search().OnSearchStart(ctx, observability.EngineMinimax)
	start := time.Now()
	g, err := minimax.SelfPlay(ctx, tictactoe.Rules{}, board)
	err = timeoutError(err, opts.Timeout)
	observability.Search().OnSearchComplete(ctx, observability.EngineMinimax, g.Stats.Nodes, time.Since(start), err)
	return g, err
}

// =============================================================================
// Draw
// =============================================================================

// DrawChain renders the chain from source along path in every requested
// format.
func (r *Runner) DrawChain(ctx context.Context, c degrees.Catalog, source string, path degrees.Path, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForDraw(); err != nil {
		return nil, err
	}
	dot := render.ChainDOT(c, source, path, render.Options{Detailed: opts.Detailed})
	return r.draw(ctx, dot, opts)
}

// DrawDataset renders a whole dataset, highlighting path from source when
// path is not empty.
func (r *Runner) DrawDataset(ctx context.Context, ds *dataset.Dataset, source string, path degrees.Path, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForDraw(); err != nil {
		return nil, err
	}
	dot, err := render.DatasetDOT(ds, render.Options{
		Detailed:     opts.Detailed,
		HideIsolated: true,
		Source:       source,
		Path:         path,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "draw dataset")
	}
	return r.draw(ctx, dot, opts)
}

func (r *Runner) draw(ctx context.Context, dot string, opts Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatDOT:
			out[format] = []byte(dot)
		case FormatSVG:
			start := time.Now()
			svg, err := render.RenderSVG(ctx, dot)
			if err != nil {
				return nil, fmt.Errorf("render svg: %w", err)
			}
			r.logger(opts).Debug("rendered svg", "bytes", len(svg), "duration", time.Since(start).Round(time.Millisecond))
			out[format] = svg
		}
	}
	return out, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// timeoutError turns a deadline hit into a coded error.
func timeoutError(err error, d time.Duration) error {
	if !stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if d <= 0 {
		return errors.Wrap(errors.ErrCodeTimeout, err, "search deadline exceeded")
	}
	return errors.Wrap(errors.ErrCodeTimeout, err, "search did not finish within %s", d)
}
