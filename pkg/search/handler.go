package search

import (
	"fmt"
	"slices"

	"github.com/emirpasic/gods/sets/treeset"

	"github.com/matzehuels/motifscan/pkg/motif"
	"github.com/matzehuels/motifscan/pkg/network"
)

// commit records one successful mapNode so that unmapNode can undo it.
type commit struct {
	pos     int
	node    *network.Node
	refined []int // positions whose iterator was refined, in refinement order
}

// symmetryHandler owns the mutable state of one search call: the iterator
// array, the partial mapping, the used-node set and the commit stack. It
// enforces adjacency, injectivity and the motif's symmetry-breaking order
// constraints whenever a node is committed.
type symmetryHandler struct {
	net   Network
	motif *motif.Motif

	iters   []*candidateIterator
	mapping []*network.Node
	used    bitset

	unmapped *treeset.Set // ascending position ids
	commits  []commit     // in commit order

	// below[p] lists positions whose node must have a smaller Index than the
	// node at p; above[p] lists positions whose node must have a larger one.
	below [][]int
	above [][]int
}

func newSymmetryHandler(net Network, m *motif.Motif, iters []*candidateIterator, constraints []motif.OrderConstraint) *symmetryHandler {
	n := m.Size()
	h := &symmetryHandler{
		net:      net,
		motif:    m,
		iters:    iters,
		mapping:  make([]*network.Node, n),
		used:     newBitset(net.NodeCount()),
		unmapped: treeset.NewWithIntComparator(),
		below:    make([][]int, n),
		above:    make([][]int, n),
	}
	for pos := range n {
		h.unmapped.Add(pos)
	}
	for _, c := range constraints {
		h.above[c.Lower] = append(h.above[c.Lower], c.Higher)
		h.below[c.Higher] = append(h.below[c.Higher], c.Lower)
	}
	return h
}

// mapNode commits node to pos. It returns false and leaves the state
// untouched if the node is already used, if a committed neighbor lacks a
// required edge to it, or if an order constraint against a committed
// position is violated. On success the iterator of every unmapped neighbor
// of pos is refined once per link joining them.
func (h *symmetryHandler) mapNode(pos int, node *network.Node) bool {
	if h.mapping[pos] != nil {
		panic(fmt.Sprintf("search: position %d is already mapped", pos))
	}
	if h.used.has(node.Index) {
		return false
	}
	for _, l := range h.motif.RequiredEdges(pos) {
		if other := h.mapping[l.Neighbor]; other != nil && !h.net.AreConnected(node, other, l.Type) {
			return false
		}
	}
	for _, q := range h.below[pos] {
		if other := h.mapping[q]; other != nil && other.Index >= node.Index {
			return false
		}
	}
	for _, q := range h.above[pos] {
		if other := h.mapping[q]; other != nil && other.Index <= node.Index {
			return false
		}
	}

	h.mapping[pos] = node
	h.used.set(node.Index)
	h.unmapped.Remove(pos)

	c := commit{pos: pos, node: node}
	for _, l := range h.motif.RequiredEdges(pos) {
		if h.mapping[l.Neighbor] != nil {
			continue
		}
		h.iters[l.Neighbor] = h.iters[l.Neighbor].refine(node, l.Type)
		c.refined = append(c.refined, l.Neighbor)
	}
	h.commits = append(h.commits, c)
	return true
}

// unmapNode undoes the most recent successful mapNode, which must have been
// for the same pos and node.
func (h *symmetryHandler) unmapNode(pos int, node *network.Node) {
	if len(h.commits) == 0 {
		panic(fmt.Sprintf("search: unmap of position %d with nothing mapped", pos))
	}
	c := h.commits[len(h.commits)-1]
	if c.pos != pos || c.node != node {
		panic(fmt.Sprintf("search: unmap of position %d out of order (last mapped %d)", pos, c.pos))
	}
	for _, q := range slices.Backward(c.refined) {
		h.iters[q] = h.iters[q].unrefine()
	}
	h.commits = h.commits[:len(h.commits)-1]
	h.mapping[pos] = nil
	h.used.clear(node.Index)
	h.unmapped.Add(pos)
}

// nextBestPosition returns the unmapped position with the fewest current
// candidates, ties going to the lowest position id. It reports false when
// every position is mapped.
func (h *symmetryHandler) nextBestPosition() (int, bool) {
	best, bestSize := -1, 0
	it := h.unmapped.Iterator()
	for it.Next() {
		pos := it.Value().(int)
		if size := h.iters[pos].size(); best < 0 || size < bestSize {
			best, bestSize = pos, size
		}
	}
	return best, best >= 0
}

// bitset is a fixed-size set of node indices.
type bitset []uint64

func newBitset(n int) bitset { return make(bitset, (n+63)/64) }

func (b bitset) has(i int) bool { return b[i/64]&(1<<(uint(i)%64)) != 0 }
func (b bitset) set(i int)      { b[i/64] |= 1 << (uint(i) % 64) }
func (b bitset) clear(i int)    { b[i/64] &^= 1 << (uint(i) % 64) }
