// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pdiddy/paperscope/internal/browse"
	"github.com/pdiddy/paperscope/internal/dataset"
)

type createSessionResponse struct {
	SessionID string             `json:"session_id"`
	View      browse.SessionView `json:"view"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	ds := s.Dataset()
	if ds == nil {
		s.respondUninitialized(w)
		return
	}
	engine := browse.NewSession(ds.Papers, ds.Facets, s.cfg.PageSize)
	id := s.sessions.create(engine)
	s.logger.Debug("session created", zap.String("session_id", id))
	s.respondJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: id,
		View:      engine.View(),
	})
}

func (s *Server) handleSessionView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, sess.do(nil))
}

func (s *Server) handleToggleTag(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Tag string `json:"tag"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Tag == "" {
		s.respondError(w, http.StatusBadRequest, "tag is required")
		return
	}
	view := sess.do(func(e *browse.Session) { e.ToggleTag(req.Tag) })
	s.respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleSetSearchTerm(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Term string `json:"term"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	view := sess.do(func(e *browse.Session) { e.SetSearchTerm(req.Term) })
	s.respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleAdvancePage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Delta == 0 {
		s.respondError(w, http.StatusBadRequest, "delta must be non-zero")
		return
	}
	// Out-of-range advancement is a no-op; the returned view's is_first/
	// is_last flags tell the surface which controls to disable.
	view := sess.do(func(e *browse.Session) { e.AdvancePage(req.Delta) })
	s.respondJSON(w, http.StatusOK, view)
}

type facetsResponse struct {
	Facets     []dataset.Facet `json:"facets"`
	ScrapeDate string          `json:"scrape_date,omitempty"`
	NewPapers  int             `json:"new_papers"`
}

func (s *Server) handleFacets(w http.ResponseWriter, r *http.Request) {
	ds := s.Dataset()
	if ds == nil {
		s.respondUninitialized(w)
		return
	}
	s.respondJSON(w, http.StatusOK, facetsResponse{
		Facets:     ds.Facets.Facets(),
		ScrapeDate: ds.Facets.ScrapeDate(),
		NewPapers:  ds.Facets.NewPapers(),
	})
}

type statusResponse struct {
	State   string `json:"state"`
	Message string `json:"message,omitempty"`
	Papers  int    `json:"papers"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.status.Load()
	resp := statusResponse{State: st.State, Message: st.Message}
	if ds := s.Dataset(); ds != nil {
		resp.Papers = len(ds.Papers)
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// session resolves the {id} route parameter, writing the error response
// itself when the session is unknown.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session, bool) {
	id := chi.URLParam(r, "id")
	sess, ok := s.sessions.get(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "unknown session")
		return nil, false
	}
	return sess, true
}

func (s *Server) respondUninitialized(w http.ResponseWriter) {
	st := s.status.Load()
	msg := "dataset not loaded yet"
	if st.State == StateFailed {
		msg = st.Message
	}
	s.respondError(w, http.StatusServiceUnavailable, msg)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
