package api

import (
	"net/http"

	"github.com/mesh-intelligence/qatrack/internal/auth"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type accountResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if !parseBody(w, r, &creds) {
		return
	}

	if _, err := s.gate.Register(r.Context(), creds.Username, creds.Password); err != nil {
		status, msg := s.errorMessage(r, err)
		writeJSON(w, status, accountResponse{Success: false, Message: msg})
		return
	}

	s.logger.Info("user registered", "username", creds.Username)
	writeJSON(w, http.StatusOK, accountResponse{Success: true, Message: "User registered successfully"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if !parseBody(w, r, &creds) {
		return
	}

	ok, err := s.gate.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		status, msg := s.errorMessage(r, err)
		if status == http.StatusBadRequest {
			msg = "Invalid username or password"
		}
		writeJSON(w, status, accountResponse{Success: false, Message: msg})
		return
	}
	if !ok {
		writeJSON(w, http.StatusBadRequest, accountResponse{Success: false, Message: "Invalid username or password"})
		return
	}

	token, err := s.tokens.Issue(creds.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accountResponse{Success: true, Message: "Login successful", Token: token})
}

type sessionResponse struct {
	Username string `json:"username"`
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) {
	username, err := auth.UsernameFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Username: username})
}
