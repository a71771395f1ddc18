// Package motif provides the pattern graphs searched for in a network and the
// analysis of their symmetry.
//
// # Positions and Links
//
// A [Motif] has positions 0..Size()-1. Each position carries an ordered list
// of [Link] constraints: the network node placed at the position must be
// joined by an edge of the link's type to the node placed at the link's
// neighbor. Edges are undirected, so [Motif.AddEdge] records a link on both
// endpoints.
//
// Motifs are usually written in the compact textual form understood by
// [Parse]:
//
//	square := motif.MustParse("square", "0-1:E,1-2:E,2-3:E,3-0:E")
//
// # Symmetry
//
// An automorphism is a permutation of positions that preserves the edge
// types between every pair of positions. Without care, a search reports each
// physical occurrence once per automorphism: the square above has eight.
//
// [Motif.Symmetry] builds a stabilizer chain of the automorphism group and
// turns it into [OrderConstraint] values on network node indices. Enforcing
// the constraints keeps exactly one assignment per physical occurrence:
//
//	sym := square.Symmetry()
//	fmt.Println(sym.GroupOrder)  // 8
//	fmt.Println(sym.Constraints) // [0<1 0<2 0<3 1<3]
//
// [Motif.Orbits] and [Motif.Automorphisms] expose the underlying group for
// inspection and testing.
package motif
