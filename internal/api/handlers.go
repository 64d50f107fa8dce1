package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/pawsitive/mathcat/internal/practice"
)

// maxBodyBytes bounds request bodies. Homework photos arrive as data URLs,
// so this is well above what the JSON endpoints need.
const maxBodyBytes = 12 << 20

// Response helpers

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("failed to encode error response", "error", err)
	}
}

// decodeJSON reads the request body into v. An empty body leaves v
// untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// respondPracticeError maps practice service errors to responses.
func (s *Server) respondPracticeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, practice.ErrNoProblem):
		s.respondError(w, http.StatusBadRequest, "invalid_request", "problem is required")
	case errors.Is(err, practice.ErrSessionNotFound):
		s.respondError(w, http.StatusNotFound, "not_found", "study session not found")
	case errors.Is(err, practice.ErrSessionEnded):
		s.respondError(w, http.StatusConflict, "session_ended", "study session already ended")
	case errors.Is(err, practice.ErrStoreRead):
		s.log.Error("store read failed", "error", err)
		s.respondError(w, http.StatusServiceUnavailable, "store_unavailable", "progress could not be loaded")
	case errors.Is(err, practice.ErrStoreWrite):
		s.log.Error("store write failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "store_error", "progress could not be saved")
	default:
		s.log.Error("request failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.log.Warn("store ping failed", "error", err)
		s.respondError(w, http.StatusServiceUnavailable, "not_ready", "service not ready")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
