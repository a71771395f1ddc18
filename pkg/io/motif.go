package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/motifscan/pkg/errors"
	"github.com/matzehuels/motifscan/pkg/graph"
	"github.com/matzehuels/motifscan/pkg/motif"
)

// ReadMotif reads a motif in the given format and validates it.
//
// JSON and TOML use the graph.Motif schema; a name in the file overrides
// name. The text format is the compact edge list accepted by motif.Parse,
// which may span several lines and carry '#' comments.
func ReadMotif(r io.Reader, format, name string) (*motif.Motif, error) {
	var m *motif.Motif
	var err error
	switch format {
	case FormatJSON:
		var mj graph.Motif
		if err := json.NewDecoder(r).Decode(&mj); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMotif, err, "decode motif")
		}
		m, err = toMotif(mj, name)
	case FormatTOML:
		var mj graph.Motif
		if _, err := toml.NewDecoder(r).Decode(&mj); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMotif, err, "decode motif")
		}
		m, err = toMotif(mj, name)
	case FormatText:
		var text string
		text, err = readMotifText(r)
		if err == nil {
			m, err = motif.Parse(name, text)
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "motifs cannot be read as %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMotif, err, "motif %q", name)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMotif, err, "motif %q", m.Name())
	}
	return m, nil
}

func toMotif(mj graph.Motif, name string) (*motif.Motif, error) {
	if mj.Name == "" {
		mj.Name = name
	}
	if err := errors.ValidateMotifName(mj.Name); err != nil {
		return nil, err
	}
	return graph.ToMotif(mj)
}

func readMotifText(r io.Reader) (string, error) {
	var parts []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line, _, _ := strings.Cut(sc.Text(), "#")
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, ","), sc.Err()
}

// ImportMotif reads a motif file, choosing the format from its extension.
// The motif is named after the file unless the file names it.
func ImportMotif(path string) (*motif.Motif, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if format == FormatTSV {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "%s: edge lists are networks, not motifs", path)
	}
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m, err := ReadMotif(f, format, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseMotif parses the compact textual form and validates the result.
func ParseMotif(name, text string) (*motif.Motif, error) {
	return ReadMotif(strings.NewReader(text), FormatText, name)
}

// WriteMotifTOML writes m in the TOML motif format.
func WriteMotifTOML(m *motif.Motif, w io.Writer) error {
	return toml.NewEncoder(w).Encode(graph.FromMotif(m))
}
