// Package nodelink renders networks as node-link diagrams.
//
// # Overview
//
// This package produces undirected graph drawings using Graphviz, with the
// links used by motif occurrences drawn thick and red and the nodes they
// touch filled. It is how motifscan shows where a motif sits in a network.
//
// # Usage
//
// Convert a network to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Links: occ.Links})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// PNG output goes through the same Graphviz instance:
//
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels include the index and metadata, edges their type
//   - Links, Nodes: what to highlight
//   - OnlyHighlighted: drop everything not highlighted
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG] or [RenderPNG]
//   - Saved and processed with external Graphviz tools
//
// The generated DOT uses the neato spring layout, which suits networks
// without a natural direction.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process
// rendering.
package nodelink
