package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pawsitive/mathcat/internal/homework"
	"github.com/pawsitive/mathcat/internal/tutor"
)

// Tutor and homework handlers

type tutorRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

func (s *Server) handleTutor(w http.ResponseWriter, r *http.Request) {
	var req tutorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	ex, err := s.chat.Send(r.Context(), s.userOrDefault(req.UserID), req.Message)
	if errors.Is(err, tutor.ErrEmptyMessage) {
		s.respondError(w, http.StatusBadRequest, "invalid_request", "message is required")
		return
	}
	if err != nil {
		s.log.Error("tutor chat failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	s.respondJSON(w, http.StatusOK, ex)
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.chat.History(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		s.log.Error("load chat failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"messages": msgs,
		"total":    len(msgs),
	})
}

func (s *Server) handleClearChat(w http.ResponseWriter, r *http.Request) {
	if err := s.chat.Clear(r.Context(), chi.URLParam(r, "userId")); err != nil {
		s.log.Error("clear chat failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHomework(w http.ResponseWriter, r *http.Request) {
	if s.homework == nil {
		s.respondError(w, http.StatusServiceUnavailable, string(homework.KindUnavailable), homework.MsgUnavailable)
		return
	}

	var req homework.Request
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, string(homework.KindBadRequest), "invalid request body")
		return
	}
	req.UserID = s.userOrDefault(req.UserID)

	answer, err := s.homework.Analyze(r.Context(), req)
	if err != nil {
		he := homework.Classify(err)
		if he.Status >= http.StatusInternalServerError {
			s.log.Error("homework request failed", "kind", he.Kind, "error", err)
		}
		s.respondError(w, he.Status, string(he.Kind), he.Message)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"response": answer})
}
