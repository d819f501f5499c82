package ui

import (
	"net/http"
	"sync"

	"penguinlab/app"
	"penguinlab/domain/core"
)

const sessionCookie = "penguinlab_session"

// SessionState remembers the selections a browser last made so that page
// reloads and download links reproduce the same snapshot.
type SessionState struct {
	Explorer app.ExplorerParams
	Model    app.ModelParams
	HasModel bool
}

// SessionStore is an in-memory map of per-browser UI state keyed by a
// session cookie. Nothing is persisted; restarting the server starts
// every browser from the defaults.
type SessionStore struct {
	mu     sync.RWMutex
	states map[core.SessionID]*SessionState
}

func NewSessionStore() *SessionStore {
	return &SessionStore{states: make(map[core.SessionID]*SessionState)}
}

// Get returns a snapshot of the session state. Handlers read the copy
// freely; all mutation goes through Update under the store lock.
func (s *SessionStore) Get(id core.SessionID) SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.states[id]; ok {
		return *state
	}
	return SessionState{}
}

// Update applies fn to the session state under the store lock, creating
// the state on first use.
func (s *SessionStore) Update(id core.SessionID, fn func(*SessionState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[id]
	if !ok {
		state = &SessionState{}
		s.states[id] = state
	}
	fn(state)
}

// session resolves the request's session, issuing the cookie on first
// contact, and returns a snapshot of its state. Safe to call more than
// once per request: a cookie already queued on the response is reused.
func (a *App) session(w http.ResponseWriter, r *http.Request) (core.SessionID, SessionState) {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		id := core.SessionID(cookie.Value)
		return id, a.sessions.Get(id)
	}

	issued := http.Response{Header: w.Header()}
	for _, cookie := range issued.Cookies() {
		if cookie.Name == sessionCookie && cookie.Value != "" {
			id := core.SessionID(cookie.Value)
			return id, a.sessions.Get(id)
		}
	}

	id := core.SessionID(core.NewID())
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    string(id),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, a.sessions.Get(id)
}
