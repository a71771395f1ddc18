package search

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/motifscan/pkg/network"
)

// Instance is one occurrence of a motif: the network node assigned to each
// position. Instances own their mapping and stay valid after the search that
// produced them returns.
type Instance struct {
	nodes []*network.Node
}

// NewInstance builds an instance from a position-ordered node list.
func NewInstance(nodes []*network.Node) Instance {
	return Instance{nodes: slices.Clone(nodes)}
}

// Len returns the number of positions.
func (in Instance) Len() int { return len(in.nodes) }

// At returns the node assigned to pos.
func (in Instance) At(pos int) *network.Node { return in.nodes[pos] }

// Nodes returns a copy of the mapping in position order.
func (in Instance) Nodes() []*network.Node { return slices.Clone(in.nodes) }

// IDs returns the node ids in position order.
func (in Instance) IDs() []string {
	ids := make([]string, len(in.nodes))
	for i, n := range in.nodes {
		ids[i] = n.ID
	}
	return ids
}

// Key returns a content key for the instance, suitable as a map key. Two
// instances have the same key exactly when they assign the same nodes to the
// same positions.
func (in Instance) Key() string {
	var b strings.Builder
	for i, n := range in.nodes {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(n.Index))
	}
	return b.String()
}

// Equal reports whether both instances assign the same nodes to the same
// positions.
func (in Instance) Equal(other Instance) bool {
	return slices.EqualFunc(in.nodes, other.nodes, func(a, b *network.Node) bool {
		return a.Index == b.Index
	})
}

// String returns the node ids in position order, e.g. "[A B C]".
func (in Instance) String() string { return "[" + strings.Join(in.IDs(), " ") + "]" }

// NodePair is an unordered pair of network nodes with A.Index < B.Index.
type NodePair struct {
	A, B *network.Node
}

// LinkSet is the set of node pairs joined by a motif edge in at least one
// reported instance.
type LinkSet struct {
	pairs map[[2]int]NodePair
}

func newLinkSet() *LinkSet {
	return &LinkSet{pairs: make(map[[2]int]NodePair)}
}

func (s *LinkSet) add(a, b *network.Node) {
	if a.Index > b.Index {
		a, b = b, a
	}
	s.pairs[[2]int{a.Index, b.Index}] = NodePair{A: a, B: b}
}

// Contains reports whether the pair {a, b} is in the set, in either order.
func (s *LinkSet) Contains(a, b *network.Node) bool {
	if s == nil || a == nil || b == nil {
		return false
	}
	_, ok := s.pairs[[2]int{min(a.Index, b.Index), max(a.Index, b.Index)}]
	return ok
}

// Len returns the number of pairs.
func (s *LinkSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.pairs)
}

// Pairs returns all pairs ordered by (A.Index, B.Index).
func (s *LinkSet) Pairs() []NodePair {
	if s == nil {
		return nil
	}
	out := make([]NodePair, 0, len(s.pairs))
	for _, p := range s.pairs {
		out = append(out, p)
	}
	slices.SortFunc(out, func(x, y NodePair) int {
		return cmp.Or(cmp.Compare(x.A.Index, y.A.Index), cmp.Compare(x.B.Index, y.B.Index))
	})
	return out
}

// Stats describes the work done by one search.
type Stats struct {
	Root       int           // position the search started from
	GroupOrder int           // automorphism group order used for pruning (1 if disabled)
	Attempts   int           // mapNode calls
	Commits    int           // successful mapNode calls
	Duration   time.Duration // wall time of the search
}

// Result is the outcome of a search.
type Result struct {
	// Instances holds one entry per physical occurrence, in discovery order.
	Instances []Instance
	// Links is non-nil only when link tracking was requested.
	Links *LinkSet
	// Cancelled is set when a stop request (ctx, Finder.Cancel or
	// MaxInstances) was seen while candidates were still untried. The
	// instances found so far are valid, though the untried candidates may
	// have held none. A stop request that lands after the last candidate
	// leaves Cancelled false and the result complete.
	Cancelled bool
	Stats     Stats
}

// Len returns the number of instances.
func (r *Result) Len() int { return len(r.Instances) }
