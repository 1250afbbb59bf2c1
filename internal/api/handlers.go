package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/faisaal99/mipssim/internal/display"
)

// loadRequest is the body of POST /api/v1/session.
type loadRequest struct {
	Source []string `json:"source"`
}

// sessionResponse describes a session's identity and lifecycle state.
type sessionResponse struct {
	ID       string `json:"id"`
	Line     int    `json:"line"`
	Halted   bool   `json:"halted"`
	LastStop string `json:"lastStop,omitempty"`
}

// stateResponse is a full register/stack/data snapshot.
type stateResponse struct {
	Line      int      `json:"line"`
	Halted    bool     `json:"halted"`
	Registers []string `json:"registers"`
	Stack     []string `json:"stack"`
	Data      []string `json:"data"`
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createSession(w, r)
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"sessions": s.sessions.ListSessions()})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	session, err := s.sessions.CreateSession(req.Source)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.broadcaster.BroadcastExecutionEvent(session.ID, "loaded", nil)
	writeJSON(w, http.StatusCreated, sessionResponse{
		ID:     session.ID,
		Line:   session.Interp.CurrentLine(),
		Halted: session.Interp.Halted,
	})
}

// handleSessionRoute dispatches /api/v1/session/{id}[/action].
func (s *Server) handleSessionRoute(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/session/")
	parts := strings.SplitN(path, "/", 2)
	id := parts[0]
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing session id")
		return
	}

	session, err := s.sessions.GetSession(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	action := ""
	if len(parts) > 1 {
		action = parts[1]
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, sessionResponse{ID: session.ID, Line: session.Interp.CurrentLine(), Halted: session.Interp.Halted})
	case action == "" && r.Method == http.MethodDelete:
		if err := s.sessions.DestroySession(id); err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case action == "step" && r.Method == http.MethodPost:
		s.handleStep(w, session)
	case action == "run" && r.Method == http.MethodPost:
		s.handleRun(w, session)
	case action == "state" && r.Method == http.MethodGet:
		s.handleState(w, session)
	default:
		writeError(w, http.StatusNotFound, "unknown session action")
	}
}

func (s *Server) handleStep(w http.ResponseWriter, session *Session) {
	done, err := session.Step()
	if err != nil {
		s.broadcaster.BroadcastExecutionEvent(session.ID, "error", map[string]any{"message": err.Error()})
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if done {
		s.broadcaster.BroadcastExecutionEvent(session.ID, "halted", nil)
	}
	s.broadcaster.BroadcastState(session.ID, map[string]any{"line": session.Interp.CurrentLine()})
	writeJSON(w, http.StatusOK, sessionResponse{ID: session.ID, Line: session.Interp.CurrentLine(), Halted: session.Interp.Halted})
}

func (s *Server) handleRun(w http.ResponseWriter, session *Session) {
	err := session.Run(0)
	if err != nil {
		s.broadcaster.BroadcastExecutionEvent(session.ID, "error", map[string]any{"message": err.Error()})
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.broadcaster.BroadcastExecutionEvent(session.ID, "halted", nil)
	writeJSON(w, http.StatusOK, sessionResponse{ID: session.ID, Line: session.Interp.CurrentLine(), Halted: session.Interp.Halted})
}

func (s *Server) handleState(w http.ResponseWriter, session *Session) {
	writeJSON(w, http.StatusOK, stateResponse{
		Line:      session.Interp.CurrentLine(),
		Halted:    session.Interp.Halted,
		Registers: strings.Split(strings.TrimRight(display.Registers(session.Interp), "\n"), "\n"),
		Stack:     strings.Split(strings.TrimRight(display.Stack(session.Interp), "\n"), "\n"),
		Data:      strings.Split(strings.TrimRight(display.DataMemory(session.Interp), "\n"), "\n"),
	})
}
