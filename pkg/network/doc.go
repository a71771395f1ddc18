// Package network provides the typed, undirected target graph searched for
// motif occurrences.
//
// # Overview
//
// A [Network] holds nodes and typed edges. Besides the usual node and edge
// accessors it maintains two per-type indexes that the motif search relies on:
//
//   - [Network.NodesWithEdgeType]: every node touching at least one edge of a
//     type, used to seed the candidate sets of motif positions.
//   - [Network.Neighbors] and [Network.AreConnected]: exact adjacency lookups
//     used while refining candidates and committing assignments.
//
// Both indexes are kept sorted by [Node.Index], a dense identity assigned on
// insertion. Sorted lists let the search intersect candidate sets with binary
// searches instead of hashing.
//
// # Edge Model
//
// Edges are undirected: an edge a–b of type T satisfies a motif requirement
// in either direction. Two nodes may be joined by several edges as long as
// their types differ. Self-loops are rejected.
//
// # Usage
//
//	g := network.New(nil)
//	_ = g.AddNode(network.Node{ID: "a"})
//	_ = g.AddNode(network.Node{ID: "b"})
//	_ = g.AddEdge(network.Edge{From: "a", To: "b", Type: "ppi"})
//
//	a, _ := g.Node("a")
//	fmt.Println(len(g.Neighbors(a, "ppi"))) // 1
package network
