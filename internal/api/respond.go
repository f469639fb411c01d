package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mesh-intelligence/qatrack/pkg/types"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func parseBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		slog.Debug("error parsing request body", "error", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)})
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("error parsing request body: %v", err)})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("error serializing response body", "error", err)
	}
}

// statusFor maps the tracker's sentinel errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrValidation),
		errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrTableNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage returns what the client may see for err. Server-side
// failures and conflicts carry driver text, so they are logged and masked
// unless ExposeErrors is set.
func (s *Server) errorMessage(r *http.Request, err error) (int, string) {
	status := statusFor(err)
	conflict := errors.Is(err, types.ErrConflict)
	if status < http.StatusInternalServerError && !conflict {
		return status, err.Error()
	}
	if conflict {
		s.logger.Warn("request conflicted", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	if s.opts.ExposeErrors {
		return status, err.Error()
	}
	if conflict {
		return status, types.ErrConflict.Error()
	}
	return status, http.StatusText(status)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := s.errorMessage(r, err)
	writeJSON(w, status, errorResponse{Error: msg})
}
