// Package server exposes bar generation over HTTP.
//
// Routes:
//
//	GET  /healthz           liveness probe
//	GET  /api/v1/profiles   catalog listing
//	POST /api/v1/generate   build a bar, returning a JSON report or SVG
//
// Each request builds against its own sandbox document, so requests are
// independent and safe to serve concurrently. Successful responses are
// cached by the full option set.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/slotforge/slotforge/pkg/builder"
	"github.com/slotforge/slotforge/pkg/cache"
	"github.com/slotforge/slotforge/pkg/geom/sandbox"
	"github.com/slotforge/slotforge/pkg/observability"
	"github.com/slotforge/slotforge/pkg/pipeline"
	"github.com/slotforge/slotforge/pkg/profile"
	"github.com/slotforge/slotforge/pkg/render"
	"github.com/slotforge/slotforge/pkg/session"
	"github.com/slotforge/slotforge/pkg/units"
)

// cacheTTL bounds how long a generated report or artifact stays cached.
const cacheTTL = 24 * time.Hour

// Server handles the HTTP API.
type Server struct {
	runner *pipeline.Runner
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
}

// NewHandler builds the HTTP handler. A nil cache disables caching; a
// nil keyer gets the default scheme.
func NewHandler(runner *pipeline.Runner, c cache.Cache, keyer cache.Keyer, logger *log.Logger) http.Handler {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, cache: c, keyer: keyer, logger: logger}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Get("/api/v1/profiles", s.handleProfiles)
	r.Post("/api/v1/generate", s.handleGenerate)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.runner.Catalog.Specs())
}

// generateRequest is the POST /api/v1/generate body.
type generateRequest struct {
	Profile      string `json:"profile"`
	Length       string `json:"length"` // e.g. "500mm", "19.5in"
	CenterBore   bool   `json:"center_bore"`
	EndTaps      bool   `json:"end_taps"`
	Construction bool   `json:"construction"`
	Strategy     string `json:"strategy"` // "direct" (default) or "toolbody"
	Format       string `json:"format"`   // "json" (default) or "svg"
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	format := req.Format
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "svg" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format: %q", format))
		return
	}

	strategy, err := builder.ParseStrategy(req.Strategy)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	length := units.Length{Value: pipeline.DefaultLengthMM, Unit: units.Millimeter}
	if req.Length != "" {
		length, err = units.ParseLength(req.Length, units.Millimeter)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	opts := pipeline.Options{
		Profile:      req.Profile,
		Length:       length,
		CenterBore:   req.CenterBore,
		EndTaps:      req.EndTaps,
		Construction: req.Construction,
		Strategy:     strategy,
		Logger:       s.logger,
	}

	buildKey := s.keyer.BuildKey(req.Profile, cache.BuildKeyOpts{
		Length:       length.String(),
		CenterBore:   req.CenterBore,
		EndTaps:      req.EndTaps,
		Construction: req.Construction,
		Strategy:     strategy.String(),
		WorkingUnit:  string(pipeline.DefaultWorkingUnit),
	})
	cacheKey := buildKey
	keyType := "build"
	contentType := "application/json"
	if format == "svg" {
		cacheKey = s.keyer.ArtifactKey(buildKey, format)
		keyType = "artifact"
		contentType = "image/svg+xml"
	}

	if data, hit, err := s.cache.Get(r.Context(), cacheKey); err == nil && hit {
		observability.Cache().OnCacheHit(r.Context(), keyType)
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}
	observability.Cache().OnCacheMiss(r.Context(), keyType)

	sess := session.Open(sandbox.NewDocument(), s.logger)
	defer sess.Close()

	result, err := s.runner.Execute(r.Context(), sess, opts)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	var payload []byte
	switch format {
	case "svg":
		sec := render.Section{
			Width:              result.Resolved.Width,
			Height:             result.Resolved.Height,
			SlotDepth:          result.Resolved.SlotDepth,
			SlotNeck:           result.Resolved.SlotNeck,
			SlotOpen:           result.Resolved.SlotOpen,
			SlotCenterFromFace: result.Resolved.SlotCenterFromFace,
			Construction:       req.Construction,
		}
		if req.CenterBore {
			sec.BoreDiameter = result.Resolved.CenterBoreDiameter
		}
		payload = render.SectionSVG(sec)
	default:
		payload, err = json.Marshal(result.Report)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}

	if err := s.cache.Set(r.Context(), cacheKey, payload, cacheTTL); err != nil {
		s.logger.Warn("cache set failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(r.Context(), keyType, len(payload))
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

// statusFor maps pipeline errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, profile.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, profile.ErrInvalidSpec),
		errors.Is(err, pipeline.ErrInvalidOptions),
		errors.Is(err, units.ErrUnknownUnit):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
