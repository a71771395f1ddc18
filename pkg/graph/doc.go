// Package graph provides the serialization types of motifscan.
//
// This package defines the canonical wire format for networks, motifs and
// search results, used for JSON files, API requests and responses, and the
// result cache.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Network], [Motif], [Occurrences], [Symmetry]: serialization types
//   - network.Network, motif.Motif, search.Result: internal representations
//
// Use [FromNetwork]/[ToNetwork], [FromMotif]/[ToMotif], [FromResult] and
// [FromSymmetry] to convert between them.
//
// # Network Serialization
//
// Networks use a node-link JSON format with typed, undirected edges:
//
//	{
//	  "nodes": [{"id": "A"}, {"id": "B"}],
//	  "edges": [{"from": "A", "to": "B", "type": "ppi"}]
//	}
//
// The nodes array may be omitted; edge endpoints are then added in order of
// first appearance.
//
// # Occurrences
//
// A search result lists each instance as node ids in position order, and the
// used links as id pairs when link tracking was requested:
//
//	{
//	  "motif": "square",
//	  "pattern": "0-1:E,1-2:E,2-3:E,0-3:E",
//	  "positions": 4,
//	  "group_order": 8,
//	  "instances": [["A", "B", "C", "D"]]
//	}
//
// # Concurrency
//
// All functions are safe for concurrent use.
package graph
