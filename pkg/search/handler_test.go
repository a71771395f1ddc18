package search

import (
	"fmt"
	"slices"
	"testing"

	"github.com/matzehuels/motifscan/pkg/motif"
	"github.com/matzehuels/motifscan/pkg/network"
)

func newHandler(t *testing.T, g *network.Network, m *motif.Motif, symmetric bool) *symmetryHandler {
	t.Helper()
	iters := make([]*candidateIterator, m.Size())
	for pos := range iters {
		iters[pos] = seedCandidates(g, pos, m.EdgeTypes(pos))
	}
	var constraints []motif.OrderConstraint
	if symmetric {
		constraints = m.Symmetry().Constraints
	}
	return newSymmetryHandler(g, m, iters, constraints)
}

func TestMapNodeRejects(t *testing.T) {
	g := buildNetwork(t, "A-B:E,B-C:E,C-D:E,D-A:E,A-C:F")
	path := motif.MustParse("path", "0-1:E,1-2:E")
	a, b, c, d := mustNode(t, g, "A"), mustNode(t, g, "B"), mustNode(t, g, "C"), mustNode(t, g, "D")

	t.Run("UsedNode", func(t *testing.T) {
		h := newHandler(t, g, path, false)
		if !h.mapNode(1, a) {
			t.Fatal("mapNode(1, A) failed")
		}
		if h.mapNode(0, a) {
			t.Error("mapNode should reject a node already in use")
		}
	})

	t.Run("MissingEdge", func(t *testing.T) {
		h := newHandler(t, g, path, false)
		if !h.mapNode(1, a) {
			t.Fatal("mapNode(1, A) failed")
		}
		if h.mapNode(0, c) {
			t.Error("mapNode should reject C: A and C share no E edge")
		}
		if !h.mapNode(0, b) {
			t.Error("mapNode(0, B) should succeed")
		}
	})

	t.Run("OrderConstraint", func(t *testing.T) {
		// path symmetry: 0<2
		h := newHandler(t, g, path, true)
		if !h.mapNode(0, d) || !h.mapNode(1, c) {
			t.Fatal("setup mapNode failed")
		}
		if h.mapNode(2, b) {
			t.Error("mapNode(2, B) violates 0<2 with D at 0")
		}
	})

	t.Run("NoStateChangeOnFailure", func(t *testing.T) {
		h := newHandler(t, g, path, false)
		if !h.mapNode(1, a) {
			t.Fatal("mapNode(1, A) failed")
		}
		before := slices.Clone(h.iters)
		if h.mapNode(0, c) {
			t.Fatal("mapNode(0, C) should fail")
		}
		if !slices.Equal(before, h.iters) || h.mapping[0] != nil || h.used.has(c.Index) || len(h.commits) != 1 {
			t.Error("failed mapNode changed handler state")
		}
	})
}

func TestMapUnmapRestoresState(t *testing.T) {
	g := buildNetwork(t, "A-B:E,B-C:E,C-D:E,D-A:E,A-C:F")
	m := motif.MustParse("m", "0-1:E,1-2:E,0-2:F")
	a, b, c := mustNode(t, g, "A"), mustNode(t, g, "B"), mustNode(t, g, "C")
	h := newHandler(t, g, m, false)
	seeds := slices.Clone(h.iters)

	if !h.mapNode(0, a) {
		t.Fatal("mapNode(0, A) failed")
	}
	if h.iters[1].depth() != 1 || h.iters[2].depth() != 1 {
		t.Errorf("depths after first commit = %d, %d; want 1, 1", h.iters[1].depth(), h.iters[2].depth())
	}
	if got := fmt.Sprint(nodeIDs(h.iters[2].candidates())); got != "[C]" {
		t.Errorf("candidates(2) = %s, want [C]", got)
	}
	if !h.mapNode(2, c) {
		t.Fatal("mapNode(2, C) failed")
	}
	if h.iters[1].depth() != 2 {
		t.Errorf("depth(1) = %d, want 2", h.iters[1].depth())
	}
	if got := fmt.Sprint(nodeIDs(h.iters[1].candidates())); got != "[B D]" {
		t.Errorf("candidates(1) = %s, want [B D]", got)
	}
	if !h.mapNode(1, b) {
		t.Fatal("mapNode(1, B) failed")
	}
	if got := committedPositions(h); !slices.Equal(got, []int{0, 2, 1}) {
		t.Errorf("committed positions = %v, want [0 2 1]", got)
	}

	h.unmapNode(1, b)
	h.unmapNode(2, c)
	h.unmapNode(0, a)

	if !slices.Equal(seeds, h.iters) {
		t.Error("iterators not restored to their seeds")
	}
	for i := range g.NodeCount() {
		if h.used.has(i) {
			t.Errorf("node %d still marked used", i)
		}
	}
	if len(committedPositions(h)) != 0 || h.unmapped.Size() != 3 || len(h.commits) != 0 {
		t.Error("position sets or commit stack not restored")
	}
}

func committedPositions(h *symmetryHandler) []int {
	out := make([]int, len(h.commits))
	for i, c := range h.commits {
		out[i] = c.pos
	}
	return out
}

func TestUnmapOutOfOrderPanics(t *testing.T) {
	g := buildNetwork(t, "A-B:E,B-C:E")
	m := motif.MustParse("path", "0-1:E,1-2:E")
	h := newHandler(t, g, m, false)
	a, b := mustNode(t, g, "A"), mustNode(t, g, "B")
	if !h.mapNode(1, b) || !h.mapNode(0, a) {
		t.Fatal("setup mapNode failed")
	}
	defer func() {
		if recover() == nil {
			t.Error("unmapNode out of order should panic")
		}
	}()
	h.unmapNode(1, b)
}

func TestNextBestPosition(t *testing.T) {
	// Hub H has E edges to A, B, C and an F edge to X.
	g := buildNetwork(t, "H-A:E,H-B:E,H-C:E,H-X:F,A-B:E")
	m := motif.MustParse("m", "0-1:E,0-2:E,0-3:F")
	h := newHandler(t, g, m, false)

	// Seeds: 0 -> {H}, 1 -> E nodes (4), 2 -> E nodes (4), 3 -> F nodes (2).
	if pos, ok := h.nextBestPosition(); !ok || pos != 0 {
		t.Errorf("nextBestPosition = %d, %v; want 0, true", pos, ok)
	}

	hub := mustNode(t, g, "H")
	if !h.mapNode(0, hub) {
		t.Fatal("mapNode(0, H) failed")
	}
	// 1 and 2 now have {A B C}, 3 has {X}.
	if pos, ok := h.nextBestPosition(); !ok || pos != 3 {
		t.Errorf("nextBestPosition = %d, %v; want 3, true", pos, ok)
	}
	if !h.mapNode(3, mustNode(t, g, "X")) {
		t.Fatal("mapNode(3, X) failed")
	}
	// Tie between 1 and 2 goes to the lower id.
	if pos, ok := h.nextBestPosition(); !ok || pos != 1 {
		t.Errorf("nextBestPosition = %d, %v; want 1, true", pos, ok)
	}
	if !h.mapNode(1, mustNode(t, g, "A")) || !h.mapNode(2, mustNode(t, g, "B")) {
		t.Fatal("mapNode failed")
	}
	if _, ok := h.nextBestPosition(); ok {
		t.Error("nextBestPosition should report false when every position is mapped")
	}
}

func TestBitset(t *testing.T) {
	b := newBitset(130)
	for _, i := range []int{0, 63, 64, 129} {
		b.set(i)
	}
	for i := range 130 {
		want := i == 0 || i == 63 || i == 64 || i == 129
		if b.has(i) != want {
			t.Errorf("has(%d) = %v, want %v", i, b.has(i), want)
		}
	}
	b.clear(64)
	if b.has(64) || !b.has(63) {
		t.Error("clear(64) affected the wrong bit")
	}
}
