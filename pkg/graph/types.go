package graph

import (
	"fmt"
	"maps"

	"github.com/matzehuels/motifscan/pkg/motif"
	"github.com/matzehuels/motifscan/pkg/network"
	"github.com/matzehuels/motifscan/pkg/search"
)

// =============================================================================
// Network - Target Graph Serialization
// =============================================================================

// Network is the canonical serialization format for target networks.
//
// Nodes are listed in insertion order. The order matters: it fixes each
// node's Index, and symmetry breaking reports the occurrence whose lowest
// positions hold the lowest indices.
type Network struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is a network node.
type Node struct {
	ID   string         `json:"id" bson:"id"`
	Meta map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// Edge is an undirected typed edge.
type Edge struct {
	From string         `json:"from" bson:"from"`
	To   string         `json:"to" bson:"to"`
	Type string         `json:"type" bson:"type"`
	Meta map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// FromNetwork converts a network to its serialization format.
func FromNetwork(g *network.Network) Network {
	nodes := g.Nodes()
	edges := g.Edges()
	out := Network{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, len(edges)),
	}
	for i, n := range nodes {
		out.Nodes[i] = Node{ID: n.ID, Meta: copyMeta(n.Meta)}
	}
	for i, e := range edges {
		out.Edges[i] = Edge{From: e.From, To: e.To, Type: string(e.Type), Meta: copyMeta(e.Meta)}
	}
	return out
}

// ToNetwork builds a network. Edge endpoints missing from Nodes are added in
// order of first appearance, so a bare edge list is a valid Network.
func ToNetwork(gj Network) (*network.Network, error) {
	g := network.New(nil)
	for _, nj := range gj.Nodes {
		if err := g.AddNode(network.Node{ID: nj.ID, Meta: copyMeta(nj.Meta)}); err != nil {
			return nil, fmt.Errorf("add node %q: %w", nj.ID, err)
		}
	}
	for _, ej := range gj.Edges {
		for _, id := range []string{ej.From, ej.To} {
			if _, err := g.EnsureNode(id); err != nil {
				return nil, fmt.Errorf("add node %q: %w", id, err)
			}
		}
		e := network.Edge{From: ej.From, To: ej.To, Type: network.EdgeType(ej.Type), Meta: copyMeta(ej.Meta)}
		if err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("add edge %s-%s:%s: %w", ej.From, ej.To, ej.Type, err)
		}
	}
	return g, nil
}

// =============================================================================
// Motif - Pattern Serialization
// =============================================================================

// Motif is the serialization format for motifs. It carries TOML tags so
// motif files can be written by hand:
//
//	name = "feed-forward loop"
//	edges = [
//	  { a = 0, b = 1, type = "reg" },
//	  { a = 1, b = 2, type = "reg" },
//	  { a = 0, b = 2, type = "reg" },
//	]
type Motif struct {
	Name  string      `json:"name" toml:"name" bson:"name"`
	Size  int         `json:"size,omitempty" toml:"size,omitempty" bson:"size,omitempty"`
	Edges []MotifEdge `json:"edges" toml:"edges" bson:"edges"`
}

// MotifEdge is one undirected motif edge between positions A and B.
type MotifEdge struct {
	A    int    `json:"a" toml:"a" bson:"a"`
	B    int    `json:"b" toml:"b" bson:"b"`
	Type string `json:"type" toml:"type" bson:"type"`
}

// FromMotif converts a motif to its serialization format.
func FromMotif(m *motif.Motif) Motif {
	edges := m.Edges()
	out := Motif{Name: m.Name(), Size: m.Size(), Edges: make([]MotifEdge, len(edges))}
	for i, e := range edges {
		out.Edges[i] = MotifEdge{A: e.A, B: e.B, Type: string(e.Type)}
	}
	return out
}

// ToMotif builds a motif. A zero Size is inferred from the largest
// position mentioned. Sizes and positions must stay below
// [motif.MaxPositions].
func ToMotif(mj Motif) (*motif.Motif, error) {
	if mj.Size < 0 || mj.Size > motif.MaxPositions {
		return nil, fmt.Errorf("size %d: %w", mj.Size, motif.ErrPositionOutOfRange)
	}
	for _, e := range mj.Edges {
		if e.A < 0 || e.B < 0 || e.A >= motif.MaxPositions || e.B >= motif.MaxPositions {
			return nil, fmt.Errorf("edge %d-%d:%s: %w", e.A, e.B, e.Type, motif.ErrPositionOutOfRange)
		}
	}
	size := mj.Size
	if size == 0 {
		for _, e := range mj.Edges {
			size = max(size, e.A+1, e.B+1)
		}
	}
	m := motif.New(mj.Name, size)
	for _, e := range mj.Edges {
		if err := m.AddEdge(e.A, e.B, network.EdgeType(e.Type)); err != nil {
			return nil, fmt.Errorf("edge %d-%d:%s: %w", e.A, e.B, e.Type, err)
		}
	}
	return m, nil
}

// =============================================================================
// Occurrences - Search Result Serialization
// =============================================================================

// Occurrences is the serialization format for a search result.
type Occurrences struct {
	ID         string      `json:"id,omitempty" bson:"_id,omitempty"`
	Motif      string      `json:"motif" bson:"motif"`
	Pattern    string      `json:"pattern" bson:"pattern"`
	Positions  int         `json:"positions" bson:"positions"`
	GroupOrder int         `json:"group_order" bson:"group_order"`
	Instances  [][]string  `json:"instances" bson:"instances"`
	Links      [][2]string `json:"links,omitempty" bson:"links,omitempty"`
	Cancelled  bool        `json:"cancelled,omitempty" bson:"cancelled,omitempty"`
	Stats      Stats       `json:"stats" bson:"stats"`
}

// Stats mirrors search.Stats with durations in milliseconds.
type Stats struct {
	Root       int     `json:"root" bson:"root"`
	Attempts   int     `json:"attempts" bson:"attempts"`
	Commits    int     `json:"commits" bson:"commits"`
	DurationMS float64 `json:"duration_ms" bson:"duration_ms"`
}

// FromResult converts a search result to its serialization format.
// Instances are written as node ids in position order.
func FromResult(m *motif.Motif, res *search.Result) Occurrences {
	out := Occurrences{
		Motif:      m.Name(),
		Pattern:    m.String(),
		Positions:  m.Size(),
		GroupOrder: res.Stats.GroupOrder,
		Instances:  make([][]string, len(res.Instances)),
		Cancelled:  res.Cancelled,
		Stats: Stats{
			Root:       res.Stats.Root,
			Attempts:   res.Stats.Attempts,
			Commits:    res.Stats.Commits,
			DurationMS: float64(res.Stats.Duration.Microseconds()) / 1000,
		},
	}
	for i, in := range res.Instances {
		out.Instances[i] = in.IDs()
	}
	for _, p := range res.Links.Pairs() {
		out.Links = append(out.Links, [2]string{p.A.ID, p.B.ID})
	}
	return out
}

// Count returns the number of instances.
func (o Occurrences) Count() int { return len(o.Instances) }

// =============================================================================
// Symmetry - Motif Analysis Serialization
// =============================================================================

// Symmetry is the serialization format for a motif's symmetry analysis.
type Symmetry struct {
	Motif       string   `json:"motif"`
	Pattern     string   `json:"pattern"`
	Positions   int      `json:"positions"`
	GroupOrder  int      `json:"group_order"`
	Orbits      [][]int  `json:"orbits"`
	Base        []int    `json:"base"`
	Constraints []string `json:"constraints"`
}

// FromSymmetry converts a motif's symmetry analysis to its serialization
// format. Constraints are written as "lower<higher".
func FromSymmetry(m *motif.Motif, sym *motif.Symmetry) Symmetry {
	out := Symmetry{
		Motif:       m.Name(),
		Pattern:     m.String(),
		Positions:   m.Size(),
		GroupOrder:  sym.GroupOrder,
		Orbits:      sym.Orbits,
		Base:        sym.Base,
		Constraints: make([]string, len(sym.Constraints)),
	}
	if out.Base == nil {
		out.Base = []int{}
	}
	for i, c := range sym.Constraints {
		out.Constraints[i] = c.String()
	}
	return out
}

// copyMeta creates a shallow copy of metadata to avoid mutation.
func copyMeta(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}
