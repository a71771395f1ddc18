package network

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Network.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Network.AddNode] when a node with the
	// same ID already exists in the network.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Network.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Network.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidEdgeType is returned by [Network.AddEdge] when the edge type
	// is empty. Every edge must carry a type.
	ErrInvalidEdgeType = errors.New("edge type must not be empty")

	// ErrSelfLoop is returned by [Network.AddEdge] when both endpoints are the
	// same node. Matching is injective, so loops can never be part of an
	// occurrence.
	ErrSelfLoop = errors.New("self-loops are not allowed")

	// ErrDuplicateEdge is returned by [Network.AddEdge] when an edge of the same
	// type already joins the two endpoints (in either direction).
	ErrDuplicateEdge = errors.New("duplicate edge")
)

// Metadata stores arbitrary key-value pairs attached to nodes, edges or the
// network itself. Metadata maps are never nil after insertion.
type Metadata map[string]any

// EdgeType labels an edge. Motif edges match network edges only when their
// types are equal.
type EdgeType string

// Node is a vertex of the target network.
//
// Index is assigned by [Network.AddNode] and is dense: the n-th inserted node
// has Index n-1. It is the node's identity for bitsets and the canonical order
// used when suppressing symmetric occurrences.
type Node struct {
	ID    string   // Unique identifier
	Index int      // Dense insertion index, assigned by AddNode
	Meta  Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// Edge is an undirected, typed connection between two nodes.
// From and To are interchangeable for matching purposes.
type Edge struct {
	From string   // First endpoint ID
	To   string   // Second endpoint ID
	Type EdgeType // Edge label
	Meta Metadata // Arbitrary key-value metadata (never nil after AddEdge)
}

// typeIndex holds the per-type lookup structures. Both slices are kept sorted
// by node Index so the search can intersect them with binary searches.
type typeIndex struct {
	nodes []*Node         // nodes touching at least one edge of this type
	adj   map[int][]*Node // node index -> neighbors under this type
}

// Network is an undirected graph whose edges carry types.
//
// The zero value is not usable - use New to create a valid Network instance.
// Network is not safe for concurrent mutation; once built it may be read from
// any number of goroutines.
type Network struct {
	nodes []*Node
	byID  map[string]*Node
	edges []Edge
	types map[EdgeType]*typeIndex
	meta  Metadata
}

// New creates an empty Network with optional network-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
func New(meta Metadata) *Network {
	if meta == nil {
		meta = Metadata{}
	}
	return &Network{
		byID:  make(map[string]*Node),
		types: make(map[EdgeType]*typeIndex),
		meta:  meta,
	}
}

// Meta returns the network-level metadata map.
func (g *Network) Meta() Metadata { return g.meta }

// AddNode adds a node and assigns its Index. Any Index set by the caller is
// overwritten. Returns ErrInvalidNodeID if the ID is empty, or
// ErrDuplicateNodeID if a node with the same ID already exists.
func (g *Network) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.byID[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	n.Index = len(g.nodes)
	node := &n
	g.nodes = append(g.nodes, node)
	g.byID[node.ID] = node
	return nil
}

// EnsureNode returns the node with the given ID, adding it first if it does
// not exist yet. It is the usual entry point for edge-list loaders.
func (g *Network) EnsureNode(id string) (*Node, error) {
	if n, ok := g.byID[id]; ok {
		return n, nil
	}
	if err := g.AddNode(Node{ID: id}); err != nil {
		return nil, err
	}
	return g.byID[id], nil
}

// AddEdge adds an undirected typed edge between two existing nodes.
//
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode for missing endpoints,
// ErrInvalidEdgeType for an empty type, ErrSelfLoop when both endpoints are
// the same node and ErrDuplicateEdge when an edge of the same type already
// joins the pair.
func (g *Network) AddEdge(e Edge) error {
	from, ok := g.byID[e.From]
	if !ok {
		return ErrUnknownSourceNode
	}
	to, ok := g.byID[e.To]
	if !ok {
		return ErrUnknownTargetNode
	}
	if e.Type == "" {
		return ErrInvalidEdgeType
	}
	if from == to {
		return ErrSelfLoop
	}
	if g.AreConnected(from, to, e.Type) {
		return ErrDuplicateEdge
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}

	idx, ok := g.types[e.Type]
	if !ok {
		idx = &typeIndex{adj: make(map[int][]*Node)}
		g.types[e.Type] = idx
	}
	idx.nodes = insertSorted(idx.nodes, from)
	idx.nodes = insertSorted(idx.nodes, to)
	idx.adj[from.Index] = insertSorted(idx.adj[from.Index], to)
	idx.adj[to.Index] = insertSorted(idx.adj[to.Index], from)

	g.edges = append(g.edges, e)
	return nil
}

// insertSorted inserts n into s keeping Index order. Existing entries are
// left untouched.
func insertSorted(s []*Node, n *Node) []*Node {
	i, found := slices.BinarySearchFunc(s, n.Index, compareIndex)
	if found {
		return s
	}
	return slices.Insert(s, i, n)
}

func compareIndex(n *Node, index int) int { return n.Index - index }

// Node returns the node with the given ID and true, or nil and false if not found.
func (g *Network) Node(id string) (*Node, bool) {
	n, ok := g.byID[id]
	return n, ok
}

// NodeAt returns the node with the given Index, or nil if out of range.
func (g *Network) NodeAt(index int) *Node {
	if index < 0 || index >= len(g.nodes) {
		return nil
	}
	return g.nodes[index]
}

// Nodes returns all nodes ordered by Index. The slice is a copy; the node
// pointers refer to the network's own nodes.
func (g *Network) Nodes() []*Node { return slices.Clone(g.nodes) }

// Edges returns a copy of all edges in insertion order.
func (g *Network) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the network.
func (g *Network) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the network.
func (g *Network) EdgeCount() int { return len(g.edges) }

// EdgeTypes returns the distinct edge types present, sorted ascending.
func (g *Network) EdgeTypes() []EdgeType {
	return slices.Sorted(maps.Keys(g.types))
}

// NodesWithEdgeType returns every node touching at least one edge of type t,
// ordered by Index. Returns nil for unknown types. The returned slice is a
// read-only view and must not be modified.
func (g *Network) NodesWithEdgeType(t EdgeType) []*Node {
	if idx, ok := g.types[t]; ok {
		return idx.nodes
	}
	return nil
}

// Neighbors returns the nodes joined to n by an edge of type t, ordered by
// Index. The returned slice is a read-only view and must not be modified.
func (g *Network) Neighbors(n *Node, t EdgeType) []*Node {
	if idx, ok := g.types[t]; ok && n != nil {
		return idx.adj[n.Index]
	}
	return nil
}

// Degree returns the number of edges of type t incident to n.
func (g *Network) Degree(n *Node, t EdgeType) int { return len(g.Neighbors(n, t)) }

// AreConnected reports whether an edge of type t joins a and b.
// The lookup binary-searches the shorter of the two adjacency lists.
func (g *Network) AreConnected(a, b *Node, t EdgeType) bool {
	if a == nil || b == nil {
		return false
	}
	na, nb := g.Neighbors(a, t), g.Neighbors(b, t)
	if len(nb) < len(na) {
		na, b = nb, a
	}
	_, found := slices.BinarySearchFunc(na, b.Index, compareIndex)
	return found
}
