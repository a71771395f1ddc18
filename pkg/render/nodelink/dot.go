package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/motifscan/pkg/network"
)

// Highlight colors.
const (
	linkColor = "#d62728"
	nodeFill  = "#ffe4c4"
	dimColor  = "#b0b0b0"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds node indices and metadata to node labels and edge types
	// to edges. When false, nodes show only their ID.
	Detailed bool

	// Links are drawn emphasized. Each pair is unordered.
	Links [][2]string

	// Nodes are filled with the highlight color. Endpoints of Links are
	// highlighted too.
	Nodes []string

	// OnlyHighlighted restricts the diagram to highlighted nodes and the
	// edges among them, which keeps large networks legible.
	OnlyHighlighted bool
}

// ToDOT converts a network to Graphviz DOT format for node-link
// visualization. The resulting DOT string can be rendered using
// [RenderSVG] or [RenderPNG].
//
// Edges named in opts.Links are drawn thick and red; other edges are grey
// when anything is highlighted. Parallel edges of different types are drawn
// separately.
func ToDOT(g *network.Network, opts Options) string {
	links := make(map[[2]string]bool, len(opts.Links))
	marked := make(map[string]bool, len(opts.Nodes))
	for _, id := range opts.Nodes {
		marked[id] = true
	}
	for _, l := range opts.Links {
		links[pairKey(l[0], l[1])] = true
		marked[l[0]] = true
		marked[l[1]] = true
	}
	highlighting := len(marked) > 0

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [penwidth=1.2];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		if opts.OnlyHighlighted && !marked[n.ID] {
			continue
		}
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed))}
		if marked[n.ID] {
			attrs = append(attrs, "fillcolor=\""+nodeFill+"\"", "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if opts.OnlyHighlighted && (!marked[e.From] || !marked[e.To]) {
			continue
		}
		var attrs []string
		if opts.Detailed {
			attrs = append(attrs, fmt.Sprintf("label=%q", string(e.Type)))
		}
		switch {
		case links[pairKey(e.From, e.To)]:
			attrs = append(attrs, "color=\""+linkColor+"\"", "penwidth=3")
		case highlighting:
			attrs = append(attrs, "color=\""+dimColor+"\"")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -- %q;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func pairKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

func fmtLabel(n *network.Node, detailed bool) string {
	if !detailed {
		return n.ID
	}

	parts := []string{fmt.Sprintf("index: %d", n.Index)}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}

	return n.ID + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	data, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(data), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
