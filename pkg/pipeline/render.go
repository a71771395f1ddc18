package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/motifscan/pkg/cache"
	"github.com/matzehuels/motifscan/pkg/errors"
	"github.com/matzehuels/motifscan/pkg/observability"
	"github.com/matzehuels/motifscan/pkg/render/nodelink"
)

// RenderOptions configures drawing a result.
type RenderOptions struct {
	Format          string `json:"format"`
	Highlight       bool   `json:"highlight,omitempty"`        // Emphasize occurrence nodes and used links
	Detailed        bool   `json:"detailed,omitempty"`         // Label nodes with index and metadata, edges with type
	OnlyHighlighted bool   `json:"only_highlighted,omitempty"` // Draw only occurrence nodes
}

// ArtifactKeyOpts returns cache key options for rendering.
func (o RenderOptions) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:          o.Format,
		Highlight:       o.Highlight,
		Detailed:        o.Detailed,
		OnlyHighlighted: o.OnlyHighlighted,
	}
}

// Render draws the result's network in the requested format, with the
// occurrences highlighted if requested.
func (r *Runner) Render(ctx context.Context, res *Result, opts RenderOptions) ([]byte, error) {
	data, _, err := r.RenderWithCacheInfo(ctx, res, opts)
	return data, err
}

// RenderWithCacheInfo renders with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *Result, opts RenderOptions) ([]byte, bool, error) {
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, false, err
	}
	if opts.OnlyHighlighted {
		opts.Highlight = true
	}

	key := r.Keyer.ArtifactKey(resultHash(res), opts.ArtifactKeyOpts())
	hooks := observability.Cache()
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		hooks.OnCacheHit(ctx, "artifact")
		return data, true, nil
	}
	hooks.OnCacheMiss(ctx, "artifact")

	observability.Search().OnRenderStart(ctx, opts.Format)
	start := time.Now()
	data, err := renderNodelink(ctx, res, opts)
	observability.Search().OnRenderComplete(ctx, opts.Format, time.Since(start), err)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "render %s", opts.Format)
	}

	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

func renderNodelink(ctx context.Context, res *Result, opts RenderOptions) ([]byte, error) {
	dotOpts := nodelink.Options{
		Detailed:        opts.Detailed,
		OnlyHighlighted: opts.OnlyHighlighted,
	}
	if opts.Highlight {
		dotOpts.Links = res.Occurrences.Links
		for _, in := range res.Occurrences.Instances {
			dotOpts.Nodes = append(dotOpts.Nodes, in...)
		}
	}
	dot := nodelink.ToDOT(res.Network, dotOpts)

	switch opts.Format {
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot)
	default:
		return []byte(dot), nil
	}
}

// resultHash identifies what a rendering depends on: the network and the
// highlighted occurrences.
func resultHash(res *Result) string {
	var b strings.Builder
	b.WriteString(res.NetworkHash)
	for _, l := range res.Occurrences.Links {
		b.WriteString("|" + l[0] + "\x00" + l[1])
	}
	b.WriteString("|instances")
	for _, in := range res.Occurrences.Instances {
		b.WriteString("|" + strings.Join(in, "\x00"))
	}
	return cache.Hash([]byte(b.String()))
}
