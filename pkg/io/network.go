package io

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/motifscan/pkg/errors"
	"github.com/matzehuels/motifscan/pkg/graph"
	"github.com/matzehuels/motifscan/pkg/network"
)

// maxLineSize bounds a single edge-list line.
const maxLineSize = 1 << 20

// ReadTSV reads a tab-separated edge list.
//
// Each non-empty line that does not start with '#' is either a single node
// id or an edge "a<TAB>b<TAB>type". Lines without tabs are split on
// whitespace. Repeated edges are ignored, so lists that name every edge in
// both directions load cleanly. Nodes are indexed in order of first
// appearance.
func ReadTSV(r io.Reader) (*network.Network, error) {
	g := network.New(nil)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var fields []string
		if strings.Contains(text, "\t") {
			fields = strings.Split(text, "\t")
			for i := range fields {
				fields[i] = strings.TrimSpace(fields[i])
			}
		} else {
			fields = strings.Fields(text)
		}

		switch len(fields) {
		case 1:
			if _, err := g.EnsureNode(fields[0]); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidNetwork, err, "line %d", line)
			}
		case 3:
			if err := errors.ValidateEdgeType(fields[2]); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidNetwork, err, "line %d", line)
			}
			for _, id := range fields[:2] {
				if _, err := g.EnsureNode(id); err != nil {
					return nil, errors.Wrap(errors.ErrCodeInvalidNetwork, err, "line %d", line)
				}
			}
			err := g.AddEdge(network.Edge{From: fields[0], To: fields[1], Type: network.EdgeType(fields[2])})
			if err != nil && !stderrors.Is(err, network.ErrDuplicateEdge) {
				return nil, errors.Wrap(errors.ErrCodeInvalidNetwork, err, "line %d", line)
			}
		default:
			return nil, errors.New(errors.ErrCodeInvalidNetwork, "line %d: expected 1 or 3 columns, got %d", line, len(fields))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidNetwork, err, "read edge list")
	}
	return g, nil
}

// WriteTSV writes g as an edge list readable by ReadTSV. Nodes without
// edges are written as single-column lines first, so the node order
// survives a round trip only when every node has an edge or is listed.
func WriteTSV(g *network.Network, w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d nodes, %d edges\n", g.NodeCount(), g.EdgeCount())
	for _, n := range g.Nodes() {
		fmt.Fprintln(bw, n.ID)
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "%s\t%s\t%s\n", e.From, e.To, e.Type)
	}
	return bw.Flush()
}

// ReadNetwork reads a network in the given format.
func ReadNetwork(r io.Reader, format string) (*network.Network, error) {
	switch format {
	case FormatTSV:
		return ReadTSV(r)
	case FormatJSON:
		g, err := graph.ReadNetwork(r)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidNetwork, err, "read network")
		}
		return g, nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "networks cannot be read as %q", format)
	}
}

// ImportNetwork reads a network file, choosing the format from its
// extension.
func ImportNetwork(path string) (*network.Network, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := ReadNetwork(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// ExportNetwork writes a network file, choosing the format from its
// extension.
func ExportNetwork(g *network.Network, path string) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	switch format {
	case FormatTSV:
		return WriteTSV(g, f)
	case FormatJSON:
		return graph.WriteNetwork(g, f)
	default:
		return errors.New(errors.ErrCodeUnsupported, "networks cannot be written as %q", format)
	}
}

// open validates path and opens it, mapping a missing file to
// FILE_NOT_FOUND.
func open(path string) (*os.File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
