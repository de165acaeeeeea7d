// Package server exposes the layout pipeline over HTTP.
//
// The API is a thin veneer over [pipeline.Runner] and [store.Store]:
//
//	POST   /v1/layout        compute a layout for an inline document
//	POST   /v1/layouts       compute a layout and save it
//	GET    /v1/layouts       list saved layouts
//	GET    /v1/layouts/{id}  fetch a saved layout
//	DELETE /v1/layouts/{id}  delete a saved layout
//	GET    /healthz          liveness probe
//
// All responses are JSON. Errors use a stable envelope with lowercase
// machine-readable codes:
//
//	{"error": {"code": "dangling_reference", "message": "...", "request_id": "..."}}
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/orbital/pkg/pipeline"
	"github.com/matzehuels/orbital/pkg/store"
)

const (
	// DefaultAddr is the listen address when none is configured.
	DefaultAddr = ":8080"

	// shutdownTimeout bounds how long in-flight requests may drain.
	shutdownTimeout = 10 * time.Second

	// maxBodyBytes caps request bodies. Graph documents are small; a
	// larger body is a client bug or abuse.
	maxBodyBytes = 1 << 20
)

// Server routes layout requests to a pipeline runner and a layout store.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	http   *http.Server
}

// Config carries the server's collaborators. Zero values get safe
// defaults: an uncached runner, an in-memory store, and the default
// logger.
type Config struct {
	Addr   string
	Runner *pipeline.Runner
	Store  store.Store
	Logger *log.Logger
}

// New assembles a server from cfg.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}

	s := &Server{
		runner: cfg.Runner,
		store:  cfg.Store,
		logger: cfg.Logger,
	}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler builds the route tree. It is exposed separately from
// ListenAndServe so tests can drive the server through httptest.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogger(s.logger))
	r.Use(recoverPanics(s.logger))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleComputeLayout)
		r.Route("/layouts", func(r chi.Router) {
			r.Post("/", s.handleSaveLayout)
			r.Get("/", s.handleListLayouts)
			r.Get("/{id}", s.handleGetLayout)
			r.Delete("/{id}", s.handleDeleteLayout)
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is canceled, then drains
// in-flight requests before returning.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
			return
		}
		errc <- nil
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errc
}

// Close releases the server's collaborators.
func (s *Server) Close(ctx context.Context) error {
	runnerErr := s.runner.Close()
	storeErr := s.store.Close(ctx)
	if runnerErr != nil {
		return runnerErr
	}
	return storeErr
}
