package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/motifscan/pkg/errors"
	"github.com/matzehuels/motifscan/pkg/motif"
)

const squareTOML = `
name = "square"
edges = [
  { a = 0, b = 1, type = "E" },
  { a = 1, b = 2, type = "E" },
  { a = 2, b = 3, type = "E" },
  { a = 3, b = 0, type = "E" },
]
`

func TestReadMotif(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		input    string
		wantName string
		wantSize int
	}{
		{"TOML", FormatTOML, squareTOML, "square", 4},
		{"JSON", FormatJSON, `{"edges":[{"a":0,"b":1,"type":"E"},{"a":1,"b":2,"type":"E"}]}`, "fallback", 3},
		{"Text", FormatText, "# square\n0-1:E, 1-2:E\n2-3:E, 3-0:E # closing edge\n", "fallback", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ReadMotif(strings.NewReader(tt.input), tt.format, "fallback")
			if err != nil {
				t.Fatalf("ReadMotif: %v", err)
			}
			if m.Name() != tt.wantName || m.Size() != tt.wantSize {
				t.Errorf("got %s/%d, want %s/%d", m.Name(), m.Size(), tt.wantName, tt.wantSize)
			}
		})
	}
}

func TestReadMotifInvalid(t *testing.T) {
	tests := []struct {
		name   string
		format string
		input  string
	}{
		{"Disconnected", FormatText, "0-1:E,2-3:E"},
		{"Syntax", FormatText, "0:1-E"},
		{"BadJSON", FormatJSON, `{"edges":`},
		{"BadTOML", FormatTOML, "edges = ["},
		{"SelfLoopTOML", FormatTOML, "edges = [{ a = 0, b = 0, type = \"E\" }]"},
		{"SinglePosition", FormatJSON, `{"size":1,"edges":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadMotif(strings.NewReader(tt.input), tt.format, "m")
			if !errors.Is(err, errors.ErrCodeInvalidMotif) {
				t.Errorf("ReadMotif(%q) = %v, want INVALID_MOTIF", tt.input, err)
			}
		})
	}

	if _, err := ReadMotif(strings.NewReader(""), FormatTSV, "m"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("TSV motif = %v, want UNSUPPORTED", err)
	}
}

func TestImportMotif(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "triangle.motif")
	if err := os.WriteFile(path, []byte("0-1:E,1-2:E,2-0:E\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := ImportMotif(path)
	if err != nil {
		t.Fatalf("ImportMotif: %v", err)
	}
	if m.Name() != "triangle" || m.Symmetry().GroupOrder != 6 {
		t.Errorf("got %s with group order %d", m.Name(), m.Symmetry().GroupOrder)
	}

	if _, err := ImportMotif(filepath.Join(dir, "edges.tsv")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ImportMotif(tsv) = %v, want INVALID_FORMAT", err)
	}
}

func TestMotifTOMLRoundTrip(t *testing.T) {
	m := motif.MustParse("ffl", "0-1:reg,1-2:reg,0-2:reg")
	var buf bytes.Buffer
	if err := WriteMotifTOML(m, &buf); err != nil {
		t.Fatalf("WriteMotifTOML: %v", err)
	}
	back, err := ReadMotif(&buf, FormatTOML, "")
	if err != nil {
		t.Fatalf("ReadMotif: %v", err)
	}
	if back.Name() != "ffl" || back.String() != m.String() {
		t.Errorf("round trip gave %s %s, want ffl %s", back.Name(), back, m)
	}
}

func TestParseMotif(t *testing.T) {
	if _, err := ParseMotif("path", "0-1:E,1-2:E"); err != nil {
		t.Errorf("ParseMotif: %v", err)
	}
	if _, err := ParseMotif("bad", "0-1:E,2-3:E"); !errors.Is(err, errors.ErrCodeInvalidMotif) {
		t.Errorf("ParseMotif(disconnected) = %v, want INVALID_MOTIF", err)
	}
}
