package search

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/matzehuels/motifscan/pkg/network"
)

// candidateIterator holds the admissible network nodes for one motif
// position at one point of the search.
//
// Iterators are immutable. Refining produces a child that keeps a pointer to
// its parent, so undoing a refinement is a pointer swap and never recomputes
// a candidate set.
type candidateIterator struct {
	net    Network
	pos    int
	nodes  []*network.Node // sorted by Index
	parent *candidateIterator
	chain  int
}

// seedCandidates builds the root iterator for pos: the nodes that touch at
// least one edge of every type in types. Seeding ignores neighbors; they are
// applied later through refine.
func seedCandidates(net Network, pos int, types []network.EdgeType) *candidateIterator {
	if len(types) == 0 {
		panic(fmt.Sprintf("search: position %d has no required edge types", pos))
	}
	nodes := net.NodesWithEdgeType(types[0])
	for _, t := range types[1:] {
		if len(nodes) == 0 {
			break
		}
		nodes = intersect(nodes, net.NodesWithEdgeType(t))
	}
	return &candidateIterator{net: net, pos: pos, nodes: nodes}
}

// refine returns a child iterator restricted to the neighbors of fixed under
// edge type t.
func (it *candidateIterator) refine(fixed *network.Node, t network.EdgeType) *candidateIterator {
	return &candidateIterator{
		net:    it.net,
		pos:    it.pos,
		nodes:  intersect(it.nodes, it.net.Neighbors(fixed, t)),
		parent: it,
		chain:  it.chain + 1,
	}
}

// candidates returns the live candidate set ordered by node Index. The slice
// is shared and must not be modified.
func (it *candidateIterator) candidates() []*network.Node { return it.nodes }

func (it *candidateIterator) size() int { return len(it.nodes) }

// unrefine returns the iterator this one was refined from.
func (it *candidateIterator) unrefine() *candidateIterator {
	if it.parent == nil {
		panic(fmt.Sprintf("search: unrefine of seed iterator for position %d", it.pos))
	}
	return it.parent
}

// depth is the number of refinements between this iterator and its seed.
func (it *candidateIterator) depth() int { return it.chain }

// intersect returns the nodes present in both a and b, which must be sorted
// by Index. It walks the shorter list and binary-searches the longer one.
func intersect(a, b []*network.Node) []*network.Node {
	if len(a) > len(b) {
		a, b = b, a
	}
	out := make([]*network.Node, 0, len(a))
	for _, n := range a {
		if _, ok := slices.BinarySearchFunc(b, n.Index, byIndex); ok {
			out = append(out, n)
		}
	}
	return out
}

func byIndex(n *network.Node, index int) int { return cmp.Compare(n.Index, index) }
