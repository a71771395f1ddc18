package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/motifscan/pkg/network"
)

// =============================================================================
// Serialization API
// =============================================================================

// MarshalNetwork converts a network to indented JSON bytes.
func MarshalNetwork(g *network.Network) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteNetwork(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteNetwork writes a network as JSON to an io.Writer.
func WriteNetwork(g *network.Network, w io.Writer) error {
	return encode(w, FromNetwork(g))
}

// ReadNetwork decodes a JSON network from an io.Reader.
func ReadNetwork(r io.Reader) (*network.Network, error) {
	var data Network
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToNetwork(data)
}

// MarshalOccurrences converts a search result to compact JSON bytes, the
// form stored in caches.
func MarshalOccurrences(o Occurrences) ([]byte, error) {
	return json.Marshal(o)
}

// UnmarshalOccurrences deserializes JSON bytes to Occurrences.
func UnmarshalOccurrences(data []byte) (Occurrences, error) {
	var o Occurrences
	if err := json.Unmarshal(data, &o); err != nil {
		return Occurrences{}, err
	}
	return o, nil
}

// WriteOccurrences writes a search result as indented JSON.
func WriteOccurrences(o Occurrences, w io.Writer) error {
	return encode(w, o)
}

// MarshalSymmetry converts a symmetry analysis to compact JSON bytes.
func MarshalSymmetry(s Symmetry) ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalSymmetry deserializes JSON bytes to a Symmetry.
func UnmarshalSymmetry(data []byte) (Symmetry, error) {
	var s Symmetry
	if err := json.Unmarshal(data, &s); err != nil {
		return Symmetry{}, err
	}
	return s, nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
