// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the browsing engine over HTTP: session-scoped
// filter/search/pagination state, the facet sidebar, and dataset status.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/pdiddy/paperscope/internal/dataset"
	"github.com/pdiddy/paperscope/pkg/types"
)

// Load states reported by the status endpoint. The server starts serving
// before the dataset arrives; interaction endpoints answer 503 until the
// state is ready.
const (
	StateLoading = "loading"
	StateReady   = "ready"
	StateFailed  = "failed"
)

type loadStatus struct {
	State   string `json:"state"`
	Message string `json:"message,omitempty"`
}

// Server is the HTTP server for the paperscope browsing API.
type Server struct {
	cfg      types.ServeConfig
	logger   *zap.Logger
	sessions *sessionStore

	current atomic.Pointer[dataset.Dataset]
	status  atomic.Pointer[loadStatus]

	server *http.Server
}

// NewServer creates a server in the loading state; nothing is served from
// the dataset until SetDataset or LoadInitial succeeds.
func NewServer(cfg types.ServeConfig, logger *zap.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		sessions: newSessionStore(),
	}
	s.status.Store(&loadStatus{State: StateLoading})
	return s
}

// LoadInitial performs the one-time dataset fetch. On failure the server
// stays uninitialized and the failure is surfaced through the status
// endpoint as a banner, never as a crash.
func (s *Server) LoadInitial() error {
	ds, err := dataset.LoadFromFiles(s.cfg.PapersPath, s.cfg.CountsPath, s.logger)
	if err != nil {
		s.status.Store(&loadStatus{State: StateFailed, Message: err.Error()})
		s.logger.Error("initial dataset load failed", zap.Error(err))
		return err
	}
	s.SetDataset(ds)
	return nil
}

// SetDataset atomically swaps in a new snapshot. Sessions created earlier
// keep browsing the snapshot they were created against.
func (s *Server) SetDataset(ds *dataset.Dataset) {
	s.current.Store(ds)
	s.status.Store(&loadStatus{State: StateReady})
	s.logger.Info("dataset active", zap.Int("papers", len(ds.Papers)))
}

// Dataset returns the current snapshot, or nil while uninitialized.
func (s *Server) Dataset() *dataset.Dataset {
	return s.current.Load()
}

// Router builds the API handler. Split out from Start so handler tests can
// exercise routes without binding a listener.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/sessions", s.handleCreateSession)
	r.Get("/api/v1/sessions/{id}", s.handleSessionView)
	r.Post("/api/v1/sessions/{id}/tags/toggle", s.handleToggleTag)
	r.Post("/api/v1/sessions/{id}/search", s.handleSetSearchTerm)
	r.Post("/api/v1/sessions/{id}/page", s.handleAdvancePage)
	r.Get("/api/v1/facets", s.handleFacets)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
