package motif

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/motifscan/pkg/network"
)

var (
	// ErrPositionOutOfRange is returned by [Motif.AddEdge] when an endpoint is
	// not in [0, Size), and by [Parse] for ids outside [0, MaxPositions).
	ErrPositionOutOfRange = errors.New("position out of range")

	// ErrSelfLoop is returned by [Motif.AddEdge] when both endpoints are the
	// same position.
	ErrSelfLoop = errors.New("self-loops are not allowed")

	// ErrInvalidEdgeType is returned by [Motif.AddEdge] for an empty edge type.
	ErrInvalidEdgeType = errors.New("edge type must not be empty")

	// ErrDuplicateEdge is returned by [Motif.AddEdge] when an edge of the same
	// type already joins the two positions.
	ErrDuplicateEdge = errors.New("duplicate motif edge")

	// ErrEmptyMotif is returned by [Motif.Validate] for motifs with fewer
	// than two positions.
	ErrEmptyMotif = errors.New("motif needs at least two positions")

	// ErrIsolatedPosition is returned by [Motif.Validate] when a position has
	// no required edges. Such a position cannot be seeded from edge types.
	ErrIsolatedPosition = errors.New("position has no required edges")

	// ErrDisconnected is returned by [Motif.Validate] when the motif's
	// positions do not form a single connected component.
	ErrDisconnected = errors.New("motif is not connected")
)

// Link is one required constraint of a position: the position must be joined
// to Neighbor by an edge of type Type.
type Link struct {
	Neighbor int
	Type     network.EdgeType
}

// Edge is an undirected motif edge with A < B.
type Edge struct {
	A, B int
	Type network.EdgeType
}

// Motif is a small pattern graph over positions 0..Size()-1.
//
// The zero value is not usable - use New or Parse. A Motif must not be
// modified while a search over it is running.
type Motif struct {
	name  string
	links [][]Link
	edges []Edge
}

// MaxPositions bounds the number of positions of a motif.
const MaxPositions = 64

// New creates a motif with the given number of positions and no edges.
// It panics if size exceeds MaxPositions; callers building motifs from
// external input check the bound first, as Parse does.
func New(name string, size int) *Motif {
	if size > MaxPositions {
		panic(fmt.Sprintf("motif: %d positions exceeds the limit of %d", size, MaxPositions))
	}
	if size < 0 {
		size = 0
	}
	return &Motif{name: name, links: make([][]Link, size)}
}

// Name returns the motif's display name.
func (m *Motif) Name() string { return m.name }

// Size returns the number of positions.
func (m *Motif) Size() int { return len(m.links) }

// AddEdge adds an undirected edge of type t between positions a and b.
// Both positions receive a Link to each other.
func (m *Motif) AddEdge(a, b int, t network.EdgeType) error {
	if a < 0 || a >= m.Size() || b < 0 || b >= m.Size() {
		return fmt.Errorf("%w: %d-%d (size %d)", ErrPositionOutOfRange, a, b, m.Size())
	}
	if a == b {
		return ErrSelfLoop
	}
	if t == "" {
		return ErrInvalidEdgeType
	}
	if slices.Contains(m.links[a], Link{Neighbor: b, Type: t}) {
		return ErrDuplicateEdge
	}
	m.links[a] = append(m.links[a], Link{Neighbor: b, Type: t})
	m.links[b] = append(m.links[b], Link{Neighbor: a, Type: t})
	m.edges = append(m.edges, Edge{A: min(a, b), B: max(a, b), Type: t})
	return nil
}

// RequiredEdges returns the constraints of position pos in insertion order.
// The returned slice must not be modified.
func (m *Motif) RequiredEdges(pos int) []Link { return m.links[pos] }

// Neighbors returns the distinct positions adjacent to pos, sorted ascending.
func (m *Motif) Neighbors(pos int) []int {
	var out []int
	for _, l := range m.links[pos] {
		if !slices.Contains(out, l.Neighbor) {
			out = append(out, l.Neighbor)
		}
	}
	slices.Sort(out)
	return out
}

// EdgeTypes returns the distinct edge types required at pos, in order of
// first appearance.
func (m *Motif) EdgeTypes(pos int) []network.EdgeType {
	var out []network.EdgeType
	for _, l := range m.links[pos] {
		if !slices.Contains(out, l.Type) {
			out = append(out, l.Type)
		}
	}
	return out
}

// Edges returns a copy of all motif edges in insertion order.
func (m *Motif) Edges() []Edge { return slices.Clone(m.edges) }

// Validate checks the structural preconditions of the search: at least two
// positions, no isolated position and a single connected component.
func (m *Motif) Validate() error {
	if m.Size() < 2 {
		return ErrEmptyMotif
	}
	for pos, links := range m.links {
		if len(links) == 0 {
			return fmt.Errorf("%w: %d", ErrIsolatedPosition, pos)
		}
	}

	seen := make([]bool, m.Size())
	queue := []int{0}
	seen[0] = true
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, l := range m.links[p] {
			if !seen[l.Neighbor] {
				seen[l.Neighbor] = true
				queue = append(queue, l.Neighbor)
			}
		}
	}
	if i := slices.Index(seen, false); i >= 0 {
		return fmt.Errorf("%w: position %d unreachable from 0", ErrDisconnected, i)
	}
	return nil
}

// String returns the compact textual form accepted by Parse,
// e.g. "0-1:E,1-2:E".
func (m *Motif) String() string {
	parts := make([]string, len(m.edges))
	for i, e := range m.edges {
		parts[i] = fmt.Sprintf("%d-%d:%s", e.A, e.B, e.Type)
	}
	return strings.Join(parts, ",")
}
