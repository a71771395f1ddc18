package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/motifscan/pkg/errors"
)

// File formats.
const (
	FormatJSON = "json" // graph.Network, graph.Motif or graph.Occurrences
	FormatTSV  = "tsv"  // edge lists and occurrence tables
	FormatTOML = "toml" // hand-written motif definitions
	FormatText = "text" // compact motif form "0-1:E,1-2:E"
)

var extFormats = map[string]string{
	".json":  FormatJSON,
	".tsv":   FormatTSV,
	".txt":   FormatTSV,
	".edges": FormatTSV,
	".toml":  FormatTOML,
	".motif": FormatText,
}

// DetectFormat returns the format implied by a path's extension.
func DetectFormat(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extFormats[ext]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unrecognized file extension %q", ext)
}
