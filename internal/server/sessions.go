// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/pdiddy/paperscope/internal/browse"
)

// session pairs a browsing state machine with a mutex so the one-event-at-
// a-time contract holds even when a client fires overlapping requests.
type session struct {
	mu     sync.Mutex
	engine *browse.Session
}

// do runs fn with the session locked and returns the resulting view.
func (s *session) do(fn func(*browse.Session)) browse.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn != nil {
		fn(s.engine)
	}
	return s.engine.View()
}

// sessionStore holds the live browsing sessions keyed by id.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*session)}
}

// create registers a new session and returns its id.
func (st *sessionStore) create(engine *browse.Session) string {
	id := uuid.NewString()
	st.mu.Lock()
	st.sessions[id] = &session{engine: engine}
	st.mu.Unlock()
	return id
}

// get looks up a session by id.
func (st *sessionStore) get(id string) (*session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}
