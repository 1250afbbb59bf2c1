package api

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/faisaal99/mipssim/internal/loader"
	"github.com/faisaal99/mipssim/internal/vm"
)

// ErrSessionNotFound is returned when a session ID does not exist.
var ErrSessionNotFound = errors.New("session not found")

// Session wraps exactly one Interpreter. A mutex serializes access so the
// simulator's single-threaded-per-run invariant holds even though the
// HTTP server may field concurrent requests for the same session.
type Session struct {
	ID        string
	Interp    *vm.Interpreter
	CreatedAt time.Time

	mu sync.Mutex
}

// Step executes one instruction under the session's lock.
func (s *Session) Step() (done bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Interp.Step()
}

// Run steps the session to completion (or maxSteps) under its lock.
func (s *Session) Run(maxSteps int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Interp.Run(maxSteps)
}

// SessionManager owns every active session, keyed by ID.
type SessionManager struct {
	sessions    map[string]*Session
	broadcaster *Broadcaster
	mu          sync.RWMutex
}

// NewSessionManager creates an empty session manager.
func NewSessionManager(broadcaster *Broadcaster) *SessionManager {
	return &SessionManager{
		sessions:    make(map[string]*Session),
		broadcaster: broadcaster,
	}
}

// CreateSession loads source and starts a fresh session over it.
func (sm *SessionManager) CreateSession(source []string) (*Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	prog, err := loader.Load(source)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:        id,
		Interp:    vm.New(prog),
		CreatedAt: time.Now(),
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions[id] = session
	return session, nil
}

// GetSession retrieves a session by ID.
func (sm *SessionManager) GetSession(id string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	session, ok := sm.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// DestroySession removes a session by ID.
func (sm *SessionManager) DestroySession(id string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, ok := sm.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(sm.sessions, id)
	return nil
}

// ListSessions returns every active session ID.
func (sm *SessionManager) ListSessions() []string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	ids := make([]string, 0, len(sm.sessions))
	for id := range sm.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Count returns the number of active sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

func generateSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
