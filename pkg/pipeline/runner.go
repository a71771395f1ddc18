package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/motifscan/pkg/cache"
	"github.com/matzehuels/motifscan/pkg/errors"
	"github.com/matzehuels/motifscan/pkg/graph"
	mio "github.com/matzehuels/motifscan/pkg/io"
	"github.com/matzehuels/motifscan/pkg/motif"
	"github.com/matzehuels/motifscan/pkg/network"
	"github.com/matzehuels/motifscan/pkg/observability"
	"github.com/matzehuels/motifscan/pkg/search"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options; every search gets its own Finder.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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

// Execute runs the load → search pipeline with caching.
//
// A search cut short by the timeout, by ctx or by MaxInstances is not an
// error: the partial result is returned with Occurrences.Cancelled set and
// is not cached.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{ID: uuid.NewString()}

	// Stage 1: Load
	loadStart := time.Now()
	g, m, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Network = g
	result.Motif = m
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	if result.NetworkHash, err = NetworkHash(g); err != nil {
		return nil, err
	}
	result.MotifHash = MotifHash(m)

	opts.Logger.Info("loaded network",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"motif", m.Name(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Search
	cacheKey := r.Keyer.ResultKey(result.NetworkHash, result.MotifHash, opts.ResultKeyOpts())
	if !opts.Refresh {
		if occ, ok := r.cachedOccurrences(ctx, cacheKey); ok {
			occ.ID = result.ID
			occ.Motif = m.Name()
			result.Occurrences = occ
			result.CacheInfo.ResultHit = true
			opts.Logger.Info("using cached result", "instances", occ.Count())
			return result, nil
		}
	}

	searchStart := time.Now()
	res, err := r.Search(ctx, g, m, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.SearchTime = time.Since(searchStart)
	result.Occurrences = graph.FromResult(m, res)

	opts.Logger.Info("searched network",
		"instances", res.Len(),
		"group_order", res.Stats.GroupOrder,
		"cancelled", res.Cancelled,
		"duration", result.Stats.SearchTime)

	if !res.Cancelled {
		r.storeOccurrences(ctx, cacheKey, result.Occurrences)
	}
	result.Occurrences.ID = result.ID
	return result, nil
}

// Load resolves the network and the motif named by opts.
func (r *Runner) Load(ctx context.Context, opts Options) (*network.Network, *motif.Motif, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}

	g := opts.Network
	if g == nil {
		start := time.Now()
		var err error
		g, err = mio.ImportNetwork(opts.NetworkPath)
		nodes, edges := 0, 0
		if g != nil {
			nodes, edges = g.NodeCount(), g.EdgeCount()
		}
		observability.Search().OnLoadComplete(ctx, opts.NetworkPath, nodes, edges, time.Since(start), err)
		if err != nil {
			return nil, nil, err
		}
	}

	m, err := LoadMotif(opts)
	if err != nil {
		return nil, nil, err
	}
	return g, m, nil
}

// LoadMotif resolves the motif named by opts without loading a network.
func LoadMotif(opts Options) (*motif.Motif, error) {
	switch {
	case opts.Motif != nil:
		if err := opts.Motif.Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMotif, err, "motif %q", opts.Motif.Name())
		}
		return opts.Motif, nil
	case opts.MotifPath != "":
		return mio.ImportMotif(opts.MotifPath)
	default:
		name := opts.MotifName
		if name == "" {
			name = DefaultMotifName
		}
		return mio.ParseMotif(name, opts.Pattern)
	}
}

// Search runs the motif search, applying opts.Timeout.
func (r *Runner) Search(ctx context.Context, g *network.Network, m *motif.Motif, opts Options) (*search.Result, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	hooks := observability.Search()
	hooks.OnSearchStart(ctx, m.Name(), g.NodeCount())
	start := time.Now()

	res, err := search.NewFinder(g).Find(ctx, m, opts.SearchOptions())

	instances, cancelled := 0, false
	if res != nil {
		instances, cancelled = res.Len(), res.Cancelled
	}
	hooks.OnSearchComplete(ctx, m.Name(), instances, cancelled, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return res, nil
}

// Symmetry returns the symmetry analysis of m, served from the cache when
// possible. The boolean reports a cache hit.
func (r *Runner) Symmetry(ctx context.Context, m *motif.Motif) (graph.Symmetry, bool, error) {
	if err := m.Validate(); err != nil {
		return graph.Symmetry{}, false, errors.Wrap(errors.ErrCodeInvalidMotif, err, "motif %q", m.Name())
	}
	key := r.Keyer.SymmetryKey(MotifHash(m))
	hooks := observability.Cache()

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		if sym, err := graph.UnmarshalSymmetry(data); err == nil {
			hooks.OnCacheHit(ctx, "symmetry")
			sym.Motif = m.Name()
			return sym, true, nil
		}
	}
	hooks.OnCacheMiss(ctx, "symmetry")

	sym := graph.FromSymmetry(m, m.Symmetry())
	if data, err := graph.MarshalSymmetry(sym); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLSymmetry); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "err", err)
		} else {
			hooks.OnCacheSet(ctx, "symmetry", len(data))
		}
	}
	return sym, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// NetworkHash returns the content hash of a network.
func NetworkHash(g *network.Network) (string, error) {
	data, err := graph.MarshalNetwork(g)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "serialize network")
	}
	return cache.Hash(data), nil
}

// MotifHash returns the content hash of a motif's structure. Names do not
// contribute, so renamed motifs share cache entries.
func MotifHash(m *motif.Motif) string {
	return cache.Hash(fmt.Appendf(nil, "%d|%s", m.Size(), m.String()))
}

func (r *Runner) cachedOccurrences(ctx context.Context, key string) (graph.Occurrences, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
	}
	if err == nil && hit {
		if occ, err := graph.UnmarshalOccurrences(data); err == nil {
			hooks.OnCacheHit(ctx, "result")
			return occ, true
		}
	}
	hooks.OnCacheMiss(ctx, "result")
	return graph.Occurrences{}, false
}

func (r *Runner) storeOccurrences(ctx context.Context, key string, occ graph.Occurrences) {
	occ.ID = ""
	data, err := graph.MarshalOccurrences(occ)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLResult); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "result", len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
