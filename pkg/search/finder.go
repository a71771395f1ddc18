package search

import (
	"context"
	"slices"
	"sync/atomic"
	"time"

	"github.com/matzehuels/motifscan/pkg/errors"
	"github.com/matzehuels/motifscan/pkg/motif"
	"github.com/matzehuels/motifscan/pkg/network"
)

// ErrSearchInProgress is returned by [Finder.Find] when the finder is
// already running a search.
var ErrSearchInProgress = errors.New(errors.ErrCodeSearchBusy, "a search is already running on this finder")

// Network is the read-only view of the target graph the search needs.
// [*network.Network] implements it.
type Network interface {
	// NodeCount bounds the node indices.
	NodeCount() int
	// NodesWithEdgeType returns all nodes touching an edge of type t,
	// ordered by Index.
	NodesWithEdgeType(t network.EdgeType) []*network.Node
	// Neighbors returns the nodes joined to n by an edge of type t, ordered
	// by Index.
	Neighbors(n *network.Node, t network.EdgeType) []*network.Node
	// AreConnected reports whether an edge of type t joins a and b.
	AreConnected(a, b *network.Node, t network.EdgeType) bool
}

// Options control a single search.
type Options struct {
	// TrackLinks records the node pairs used by reported instances in
	// Result.Links.
	TrackLinks bool
	// DisableSymmetry reports every automorphic variant of an occurrence
	// instead of one per occurrence.
	DisableSymmetry bool
	// MaxInstances stops the search once this many instances are found.
	// Zero means no limit.
	MaxInstances int
}

// Finder enumerates motif occurrences in one network.
//
// A Finder runs one search at a time. [Finder.Cancel] may be called from any
// goroutine; it stops the running search and every later one, so a cancelled
// Finder only ever returns empty, cancelled results.
type Finder struct {
	net       Network
	cancelled atomic.Bool
	running   atomic.Bool
}

// NewFinder returns a Finder over net. The network must not be modified
// while a search is running.
func NewFinder(net Network) *Finder {
	return &Finder{net: net}
}

// Cancel stops the running search, if any, and all future ones. It is safe
// to call more than once and from any goroutine.
func (f *Finder) Cancel() { f.cancelled.Store(true) }

// Cancelled reports whether Cancel has been called.
func (f *Finder) Cancelled() bool { return f.cancelled.Load() }

// Find returns every occurrence of m in the network.
//
// A node of the network may occur at most once per instance, and every motif
// edge must be matched by a network edge of the same type. Extra network
// edges between matched nodes are allowed. Unless opts.DisableSymmetry is
// set, occurrences that differ only by an automorphism of m are reported
// once.
//
// Cancellation through ctx, [Finder.Cancel] or opts.MaxInstances is not an
// error: Find returns the instances found so far with Result.Cancelled set.
// An invalid motif yields an INVALID_MOTIF error and a concurrent call
// yields [ErrSearchInProgress].
func (f *Finder) Find(ctx context.Context, m *motif.Motif, opts Options) (*Result, error) {
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidMotif, "motif is nil")
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMotif, err, "motif %q", m.Name())
	}
	if !f.running.CompareAndSwap(false, true) {
		return nil, ErrSearchInProgress
	}
	defer f.running.Store(false)

	start := time.Now()
	s := newSearch(f, m, opts)
	if ctx.Err() != nil {
		s.stop.Store(true)
	}
	stop := context.AfterFunc(ctx, func() { s.stop.Store(true) })
	defer stop()

	if s.stopped() {
		s.result.Cancelled = true
	} else {
		s.expand(s.result.Stats.Root, 0)
	}
	s.result.Stats.Duration = time.Since(start)
	return s.result, nil
}

// search is the state of one Find call.
type search struct {
	finder *Finder
	h      *symmetryHandler
	size   int
	edges  []motif.Edge
	opts   Options
	result *Result
	stop   atomic.Bool
}

func newSearch(f *Finder, m *motif.Motif, opts Options) *search {
	n := m.Size()
	iters := make([]*candidateIterator, n)
	root := 0
	for pos := range n {
		iters[pos] = seedCandidates(f.net, pos, m.EdgeTypes(pos))
		if iters[pos].size() < iters[root].size() {
			root = pos
		}
	}

	groupOrder := 1
	var constraints []motif.OrderConstraint
	if !opts.DisableSymmetry {
		sym := m.Symmetry()
		groupOrder = sym.GroupOrder
		constraints = sym.Constraints
	}

	s := &search{
		finder: f,
		h:      newSymmetryHandler(f.net, m, iters, constraints),
		size:   n,
		edges:  m.Edges(),
		opts:   opts,
		result: &Result{Stats: Stats{Root: root, GroupOrder: groupOrder}},
	}
	if opts.TrackLinks {
		s.result.Links = newLinkSet()
	}
	return s
}

func (s *search) stopped() bool {
	return s.stop.Load() || s.finder.cancelled.Load()
}

// expand tries every candidate of pos at the given depth, recursing into
// the most constrained unmapped position after each successful commit.
func (s *search) expand(pos, depth int) {
	for _, node := range s.h.iters[pos].candidates() {
		if s.stopped() {
			s.result.Cancelled = true
			return
		}
		s.result.Stats.Attempts++
		if !s.h.mapNode(pos, node) {
			continue
		}
		s.result.Stats.Commits++
		if depth == s.size-1 {
			s.emit()
		} else if next, ok := s.h.nextBestPosition(); ok {
			s.expand(next, depth+1)
		}
		s.h.unmapNode(pos, node)
	}
}

func (s *search) emit() {
	mapping := slices.Clone(s.h.mapping)
	s.result.Instances = append(s.result.Instances, Instance{nodes: mapping})
	if s.result.Links != nil {
		for _, e := range s.edges {
			s.result.Links.add(mapping[e.A], mapping[e.B])
		}
	}
	if s.opts.MaxInstances > 0 && len(s.result.Instances) >= s.opts.MaxInstances {
		s.stop.Store(true)
	}
}
