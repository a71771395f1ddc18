// Package pipeline provides the load → search → render pipeline shared by
// the CLI and the HTTP API.
//
// This package implements the complete workflow around a motif search so
// every entry point loads inputs, caches results and reports events the same
// way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the network and the motif from files, inline text or
//     already-built values
//  2. Search: Run a [search.Finder] with an optional timeout
//  3. Render: Draw the network with the occurrences highlighted (optional)
//
// Search results and symmetry analyses are cached under content hashes of
// the network, the motif and the options that change the outcome. Results
// of cancelled or truncated searches are never cached.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    NetworkPath: "ppi.tsv",
//	    Pattern:     "0-1:ppi,1-2:ppi,2-0:ppi",
//	    TrackLinks:  true,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Occurrences.Count())
//
// Render the result:
//
//	svg, err := runner.Render(ctx, result, pipeline.RenderOptions{Format: "svg", Highlight: true})
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/motifscan/pkg/cache"
	"github.com/matzehuels/motifscan/pkg/errors"
	"github.com/matzehuels/motifscan/pkg/graph"
	"github.com/matzehuels/motifscan/pkg/motif"
	"github.com/matzehuels/motifscan/pkg/network"
	"github.com/matzehuels/motifscan/pkg/search"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultMotifName names motifs given as inline patterns without a name.
const DefaultMotifName = "motif"

// Format constants for rendered outputs.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats is the set of supported render formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. A network comes from Network or NetworkPath, a motif
	// from Motif, MotifPath or Pattern, in that order of preference.
	NetworkPath string `json:"network_path,omitempty"`
	MotifPath   string `json:"motif_path,omitempty"`
	Pattern     string `json:"pattern,omitempty"`
	MotifName   string `json:"motif_name,omitempty"`

	// Search options
	TrackLinks      bool          `json:"track_links,omitempty"`
	DisableSymmetry bool          `json:"disable_symmetry,omitempty"`
	MaxInstances    int           `json:"max_instances,omitempty"`
	Timeout         time.Duration `json:"-"`
	Refresh         bool          `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Network *network.Network `json:"-"`
	Motif   *motif.Motif     `json:"-"`
	Logger  *log.Logger      `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies this run. It is fresh even when the occurrences come
	// from the cache.
	ID string

	// Network and Motif are the loaded inputs.
	Network *network.Network
	Motif   *motif.Motif

	// NetworkHash and MotifHash are content hashes of the inputs.
	NetworkHash string
	MotifHash   string

	// Occurrences is the serialized search result.
	Occurrences graph.Occurrences

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the result came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	SearchTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ResultHit bool // Whether the occurrences came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a render format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: dot, svg, png)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Network == nil && o.NetworkPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "network or network_path is required")
	}
	if o.Motif == nil && o.MotifPath == "" && o.Pattern == "" {
		return errors.New(errors.ErrCodeInvalidInput, "motif, motif_path or pattern is required")
	}
	if o.MaxInstances < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_instances cannot be negative")
	}
	if o.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "timeout cannot be negative")
	}
	if o.MotifName == "" {
		o.MotifName = DefaultMotifName
	}
	if err := errors.ValidateMotifName(o.MotifName); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// SearchOptions returns the options passed to the search engine.
func (o *Options) SearchOptions() search.Options {
	return search.Options{
		TrackLinks:      o.TrackLinks,
		DisableSymmetry: o.DisableSymmetry,
		MaxInstances:    o.MaxInstances,
	}
}

// ResultKeyOpts returns cache key options for search results.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		TrackLinks:      o.TrackLinks,
		DisableSymmetry: o.DisableSymmetry,
		MaxInstances:    o.MaxInstances,
	}
}
