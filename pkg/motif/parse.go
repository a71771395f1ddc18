package motif

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/motifscan/pkg/network"
)

// Parse builds a motif from its compact textual form: a comma-separated list
// of edges "a-b:type", where a and b are position ids. The motif size is one
// more than the largest position mentioned, and ids must be below
// [MaxPositions]. Whitespace around tokens is ignored.
//
//	m, err := motif.Parse("triangle", "0-1:E, 1-2:E, 2-0:E")
func Parse(name, text string) (*Motif, error) {
	type edge struct {
		a, b int
		t    network.EdgeType
	}

	var edges []edge
	size := 0
	for _, tok := range strings.Split(text, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		pair, typ, ok := strings.Cut(tok, ":")
		if !ok {
			return nil, fmt.Errorf("edge %q: missing \":type\"", tok)
		}
		from, to, ok := strings.Cut(pair, "-")
		if !ok {
			return nil, fmt.Errorf("edge %q: expected \"a-b\"", tok)
		}
		a, err := strconv.Atoi(strings.TrimSpace(from))
		if err != nil {
			return nil, fmt.Errorf("edge %q: %w", tok, err)
		}
		b, err := strconv.Atoi(strings.TrimSpace(to))
		if err != nil {
			return nil, fmt.Errorf("edge %q: %w", tok, err)
		}
		if a < 0 || b < 0 || a >= MaxPositions || b >= MaxPositions {
			return nil, fmt.Errorf("edge %q: %w", tok, ErrPositionOutOfRange)
		}
		edges = append(edges, edge{a, b, network.EdgeType(strings.TrimSpace(typ))})
		size = max(size, a+1, b+1)
	}

	m := New(name, size)
	for _, e := range edges {
		if err := m.AddEdge(e.a, e.b, e.t); err != nil {
			return nil, fmt.Errorf("edge %d-%d:%s: %w", e.a, e.b, e.t, err)
		}
	}
	return m, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level motif definitions.
func MustParse(name, text string) *Motif {
	m, err := Parse(name, text)
	if err != nil {
		panic(err)
	}
	return m
}
