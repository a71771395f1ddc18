// Package cache stores search results and rendered artifacts between runs.
//
// All backends implement [Cache], a byte-oriented key/value store with
// per-entry expiry:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [BadgerCache]: an embedded Badger key/value store
//   - [RedisCache]: a shared Redis server
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: stores nothing
//
// Keys are produced by a [Keyer]. Keys are derived from content hashes of
// the network and motif plus every option that changes the result, so
// editing an input file never serves a stale result.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Default entry lifetimes.
const (
	// TTLResult is the lifetime of cached search results.
	TTLResult = 7 * 24 * time.Hour
	// TTLSymmetry is the lifetime of cached motif symmetry analyses.
	TTLSymmetry = 30 * 24 * time.Hour
	// TTLArtifact is the lifetime of rendered images.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a key/value store for serialized results.
type Cache interface {
	// Get returns the value stored under key. A missing or expired entry is
	// reported as a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// ResultKeyOpts are the search options that change a result.
type ResultKeyOpts struct {
	TrackLinks      bool `json:"track_links"`
	DisableSymmetry bool `json:"disable_symmetry"`
	MaxInstances    int  `json:"max_instances"`
}

// ArtifactKeyOpts are the rendering options that change an artifact.
type ArtifactKeyOpts struct {
	Format          string `json:"format"`
	Highlight       bool   `json:"highlight"`
	Detailed        bool   `json:"detailed"`
	OnlyHighlighted bool   `json:"only_highlighted"`
}

// Keyer generates cache keys.
type Keyer interface {
	// ResultKey identifies the search result of a motif in a network.
	ResultKey(networkHash, motifHash string, opts ResultKeyOpts) string
	// SymmetryKey identifies the symmetry analysis of a motif.
	SymmetryKey(motifHash string) string
	// ArtifactKey identifies a rendering of a search result.
	ArtifactKey(resultHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unscoped keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ResultKey implements Keyer.
func (DefaultKeyer) ResultKey(networkHash, motifHash string, opts ResultKeyOpts) string {
	return hashKey("result", networkHash, motifHash, opts)
}

// SymmetryKey implements Keyer.
func (DefaultKeyer) SymmetryKey(motifHash string) string {
	return fmt.Sprintf("symmetry:%s", motifHash)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", resultHash, opts)
}
