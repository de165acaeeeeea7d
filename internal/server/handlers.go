package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/orbital/pkg/buildinfo"
	apperrors "github.com/matzehuels/orbital/pkg/errors"
	"github.com/matzehuels/orbital/pkg/graph"
	"github.com/matzehuels/orbital/pkg/orbit"
	"github.com/matzehuels/orbital/pkg/pipeline"
	"github.com/matzehuels/orbital/pkg/store"
)

// =============================================================================
// Request / Response Types
// =============================================================================

// layoutResponse is the envelope for computed layouts. Artifacts are
// base64-encoded by encoding/json.
type layoutResponse struct {
	DocumentHash string            `json:"document_hash"`
	Layout       graph.Layout      `json:"layout"`
	Artifacts    map[string][]byte `json:"artifacts,omitempty"`
	Stats        layoutStats       `json:"stats"`
	Cache        cacheStatus       `json:"cache"`
}

type layoutStats struct {
	Nodes      int     `json:"nodes"`
	Bodies     int     `json:"bodies"`
	Edges      int     `json:"edges"`
	Components int     `json:"components"`
	DecodeMS   float64 `json:"decode_ms"`
	LayoutMS   float64 `json:"layout_ms"`
	RenderMS   float64 `json:"render_ms"`
}

type cacheStatus struct {
	LayoutHit bool `json:"layout_hit"`
	RenderHit bool `json:"render_hit"`
}

// listResponse summarizes saved layouts without their bodies; clients
// fetch individual records for the full layout.
type listResponse struct {
	Layouts []layoutSummary `json:"layouts"`
	Count   int             `json:"count"`
}

type layoutSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Bodies    int       `json:"bodies"`
	Edges     int       `json:"edges"`
	CreatedAt time.Time `json:"created_at"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: buildinfo.Version,
	})
}

// handleComputeLayout runs the full pipeline for an inline document and
// returns the layout without persisting it.
func (s *Server) handleComputeLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.error(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.error(w, r, err)
		return
	}

	s.respond(w, r, http.StatusOK, computeResponse(result))
}

// handleSaveLayout computes a layout and saves it under a fresh id.
func (s *Server) handleSaveLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.error(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.error(w, r, err)
		return
	}

	rec, err := s.store.Save(r.Context(), result.Layout.Name, result.Layout)
	if err != nil {
		s.error(w, r, apperrors.Wrap(apperrors.ErrCodeStore, err, "save layout"))
		return
	}

	s.logger.Info("saved layout", "id", rec.ID, "name", rec.Name, "bodies", len(rec.Layout.Bodies))
	s.respond(w, r, http.StatusCreated, rec)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := apperrors.ValidateLayoutID(id); err != nil {
		s.error(w, r, err)
		return
	}

	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.error(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, rec)
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.error(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid limit: %q", raw))
			return
		}
		limit = n
	}

	records, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.error(w, r, apperrors.Wrap(apperrors.ErrCodeStore, err, "list layouts"))
		return
	}

	resp := listResponse{Layouts: make([]layoutSummary, 0, len(records)), Count: len(records)}
	for _, rec := range records {
		resp.Layouts = append(resp.Layouts, layoutSummary{
			ID:        rec.ID,
			Name:      rec.Name,
			Bodies:    len(rec.Layout.Bodies),
			Edges:     len(rec.Layout.Edges),
			CreatedAt: rec.CreatedAt,
		})
	}
	s.respond(w, r, http.StatusOK, resp)
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := apperrors.ValidateLayoutID(id); err != nil {
		s.error(w, r, err)
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.error(w, r, err)
		return
	}
	s.logger.Info("deleted layout", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Helpers
// =============================================================================

// decodeOptions parses the request body into pipeline options. Documents
// must be inline: the server never reads its own filesystem on behalf of
// a client.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&opts); err != nil {
		return opts, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "parse request body")
	}

	if opts.DocumentPath != "" {
		return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "document_path is not accepted over HTTP; send the document inline")
	}
	if opts.Document == "" {
		return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "document is required")
	}
	if opts.DocumentFilename == "" {
		return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "document_filename is required to select the decoder")
	}

	opts.Logger = s.logger
	return opts, nil
}

func computeResponse(res *pipeline.Result) layoutResponse {
	return layoutResponse{
		DocumentHash: res.DocumentHash,
		Layout:       res.Layout,
		Artifacts:    res.Artifacts,
		Stats: layoutStats{
			Nodes:      res.Stats.NodeCount,
			Bodies:     res.Stats.BodyCount,
			Edges:      res.Stats.EdgeCount,
			Components: res.Stats.Components,
			DecodeMS:   durationMS(res.Stats.DecodeTime),
			LayoutMS:   durationMS(res.Stats.LayoutTime),
			RenderMS:   durationMS(res.Stats.RenderTime),
		},
		Cache: cacheStatus{
			LayoutHit: res.CacheInfo.LayoutHit,
			RenderHit: res.CacheInfo.RenderHit,
		},
	}
}

func durationMS(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1e3
}

// respond writes a JSON body with the given status.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	writeJSON(w, s.logger, status, body)
}

func writeJSON(w http.ResponseWriter, logger *log.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("encode response", "error", err)
	}
}

// error writes the JSON error envelope for err.
func (s *Server) error(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
			"error", err)
	}
	s.respond(w, r, status, errorResponse{Error: errorDetail{
		Code:      code,
		Message:   message,
		RequestID: RequestIDFromContext(r.Context()),
	}})
}

// classify maps an error chain onto an HTTP status, a stable lowercase
// error code, and a client-facing message.
//
// Parse failures are 400s; documents that parse but cannot be laid out
// (dangling references, degenerate radii) are 422s.
func classify(err error) (status int, code, message string) {
	var dangling *orbit.DanglingReferenceError
	if errors.As(err, &dangling) {
		return http.StatusUnprocessableEntity, codeString(apperrors.ErrCodeDanglingReference), dangling.Error()
	}
	var invalid *orbit.InvalidConfigurationError
	if errors.As(err, &invalid) {
		return http.StatusUnprocessableEntity, codeString(apperrors.ErrCodeInvalidDocument), invalid.Error()
	}
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound, codeString(apperrors.ErrCodeLayoutNotFound), store.ErrNotFound.Error()
	}

	var ae *apperrors.Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError, codeString(apperrors.ErrCodeInternal), "internal server error"
	}

	message = ae.Message
	if ae.Cause != nil {
		message += ": " + ae.Cause.Error()
	}

	switch ae.Code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidTheme, apperrors.ErrCodeInvalidEngine,
		apperrors.ErrCodeInvalidDocument, apperrors.ErrCodeInvalidNode:
		return http.StatusBadRequest, codeString(ae.Code), message
	case apperrors.ErrCodeDanglingReference:
		return http.StatusUnprocessableEntity, codeString(ae.Code), message
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeLayoutNotFound, apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound, codeString(ae.Code), message
	default:
		return http.StatusInternalServerError, codeString(ae.Code), message
	}
}

// codeString lowercases a structured error code for the wire.
func codeString(code apperrors.Code) string {
	return strings.ToLower(string(code))
}
