// Package search enumerates the occurrences of a motif in a network.
//
// # Matching Model
//
// An occurrence assigns a distinct network node to every motif position such
// that each motif edge is matched by a network edge of the same type between
// the assigned nodes. Extra network edges are ignored, so this is subgraph
// monomorphism rather than induced subgraph isomorphism.
//
// # Algorithm
//
// [Finder.Find] is a backtracking search over three pieces of state:
//
//   - A candidate iterator per position. Seeding intersects the global
//     per-type node lists for every type the position requires. Committing a
//     node refines the iterators of the position's unmapped neighbors to the
//     node's actual neighbors, and backtracking restores each parent iterator.
//   - A symmetry handler that commits and rolls back assignments. It checks
//     injectivity against a per-call bitset, adjacency against the committed
//     neighbors, and the order constraints derived from the motif's
//     automorphism group (see [motif.Motif.Symmetry]).
//   - The driver, which always expands the unmapped position with the fewest
//     remaining candidates next.
//
// The order constraints admit exactly one assignment per class of
// automorphic assignments, so each physical occurrence is reported once and
// the search never explores the symmetric branches at all:
//
//	f := search.NewFinder(net)
//	res, err := f.Find(ctx, motif.MustParse("square", "0-1:E,1-2:E,2-3:E,3-0:E"), search.Options{})
//
// # Cancellation
//
// Cancelling ctx, calling [Finder.Cancel] or reaching [Options.MaxInstances]
// stops the search at the next candidate boundary. The result then holds the
// instances found so far and has Cancelled set; cancellation is never an
// error.
//
// # Concurrency
//
// A search runs on the calling goroutine and never blocks. A [Finder] runs
// one search at a time; use one Finder per goroutine to search the same
// network concurrently.
package search
