// Package io reads and writes the files motifscan works with.
//
// # Networks
//
// Networks are read from JSON (the graph.Network schema) or from
// tab-separated edge lists:
//
//	# comment
//	A	B	ppi
//	B	C	ppi
//	C	A	phos
//	lonely
//
// A line with one column declares a node, a line with three columns an
// undirected typed edge. Repeated edges are ignored. Node indices follow the
// order of first appearance. Use [ImportNetwork] for files and
// [ReadNetwork] or [ReadTSV] for readers.
//
// # Motifs
//
// Motifs are read from JSON, TOML or the compact text form:
//
//	# square.motif
//	0-1:E, 1-2:E
//	2-3:E, 3-0:E
//
// TOML motifs list their edges explicitly:
//
//	name = "square"
//	edges = [
//	  { a = 0, b = 1, type = "E" },
//	  { a = 1, b = 2, type = "E" },
//	  { a = 2, b = 3, type = "E" },
//	  { a = 3, b = 0, type = "E" },
//	]
//
// Every loaded motif is validated. Errors carry the INVALID_MOTIF code.
//
// # Results
//
// Search results are written as JSON (graph.Occurrences) or as a TSV table
// with one instance per line.
//
// # Formats
//
// [DetectFormat] maps extensions to formats: .json, .tsv/.txt/.edges,
// .toml and .motif.
package io
