package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/matzehuels/motifscan/pkg/buildinfo"
	"github.com/matzehuels/motifscan/pkg/errors"
	"github.com/matzehuels/motifscan/pkg/graph"
	"github.com/matzehuels/motifscan/pkg/motif"
	"github.com/matzehuels/motifscan/pkg/pipeline"
)

// =============================================================================
// Request and Response Types
// =============================================================================

// MotifSpec names a motif either structurally or by pattern.
type MotifSpec struct {
	Motif   *graph.Motif `json:"motif,omitempty"`
	Pattern string       `json:"pattern,omitempty"`
	Name    string       `json:"name,omitempty"`
}

// SearchRequest is the body of POST /v1/search.
type SearchRequest struct {
	MotifSpec
	Network         graph.Network `json:"network"`
	TrackLinks      bool          `json:"track_links,omitempty"`
	DisableSymmetry bool          `json:"disable_symmetry,omitempty"`
	MaxInstances    int           `json:"max_instances,omitempty"`
	TimeoutMS       int           `json:"timeout_ms,omitempty"`
	Refresh         bool          `json:"refresh,omitempty"`
}

// SearchResponse is the body returned by POST /v1/search.
type SearchResponse struct {
	graph.Occurrences
	Cached      bool   `json:"cached"`
	NetworkHash string `json:"network_hash"`
	MotifHash   string `json:"motif_hash"`
}

// SymmetryRequest is the body of POST /v1/motifs/symmetry.
type SymmetryRequest struct {
	MotifSpec
}

// SymmetryResponse is the body returned by POST /v1/motifs/symmetry.
type SymmetryResponse struct {
	graph.Symmetry
	Cached bool `json:"cached"`
}

// HealthResponse is the body returned by GET /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Build: buildinfo.Current()})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	g, err := graph.ToNetwork(req.Network)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidNetwork, err, "network"))
		return
	}
	m, err := req.motif()
	if err != nil {
		writeError(w, err)
		return
	}
	if req.MaxInstances < 0 || req.TimeoutMS < 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "max_instances and timeout_ms cannot be negative"))
		return
	}

	timeout := s.cfg.SearchTimeout
	if t := time.Duration(req.TimeoutMS) * time.Millisecond; t > 0 && t < timeout {
		timeout = t
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Network:         g,
		Motif:           m,
		TrackLinks:      req.TrackLinks,
		DisableSymmetry: req.DisableSymmetry,
		MaxInstances:    req.MaxInstances,
		Timeout:         timeout,
		Refresh:         req.Refresh,
		Logger:          s.logger,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Occurrences: res.Occurrences,
		Cached:      res.CacheInfo.ResultHit,
		NetworkHash: res.NetworkHash,
		MotifHash:   res.MotifHash,
	})
}

func (s *Server) handleSymmetry(w http.ResponseWriter, r *http.Request) {
	var req SymmetryRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	m, err := req.motif()
	if err != nil {
		writeError(w, err)
		return
	}
	sym, hit, err := s.runner.Symmetry(r.Context(), m)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SymmetryResponse{Symmetry: sym, Cached: hit})
}

// =============================================================================
// Helpers
// =============================================================================

// motif builds and validates the motif a request names.
func (spec MotifSpec) motif() (*motif.Motif, error) {
	switch {
	case spec.Motif != nil:
		mj := *spec.Motif
		if mj.Name == "" {
			mj.Name = spec.Name
		}
		if mj.Name == "" {
			mj.Name = pipeline.DefaultMotifName
		}
		m, err := graph.ToMotif(mj)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMotif, err, "motif %q", mj.Name)
		}
		return pipeline.LoadMotif(pipeline.Options{Motif: m})
	case spec.Pattern != "":
		return pipeline.LoadMotif(pipeline.Options{Pattern: spec.Pattern, MotifName: spec.Name})
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "motif or pattern is required")
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
