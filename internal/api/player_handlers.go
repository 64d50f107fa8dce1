package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pawsitive/mathcat/internal/practice"
	"github.com/pawsitive/mathcat/internal/problemgen"
)

const (
	defaultAttemptLimit = 20
	maxAttemptLimit     = 200
)

// Practice handlers

type problemRequest struct {
	UserID     string `json:"userId"`
	StandardID string `json:"standardId"`
	WeakArea   bool   `json:"weakArea"`
}

type answerRequest struct {
	UserID  string              `json:"userId"`
	Problem *problemgen.Problem `json:"problem"`
	Answer  string              `json:"answer"`
}

type endSessionRequest struct {
	StandardsWorkedOn []string `json:"standardsWorkedOn"`
}

func (s *Server) userOrDefault(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return s.defaultUser
}

func (s *Server) handleNextProblem(w http.ResponseWriter, r *http.Request) {
	var req problemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	p, err := s.practice.NextProblem(r.Context(), s.userOrDefault(req.UserID), req.StandardID, req.WeakArea)
	if err != nil {
		s.respondPracticeError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	out, err := s.practice.Submit(r.Context(), practice.Submission{
		UserID:  s.userOrDefault(req.UserID),
		Problem: req.Problem,
		Answer:  req.Answer,
	})
	if err != nil {
		s.respondPracticeError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, out)
}

// Player handlers

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	prof, err := s.practice.Profile(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		s.respondPracticeError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"player":     prof.Player,
		"level":      prof.Level,
		"xpProgress": prof.XP,
		"dailyGoals": prof.Goals,
		"badges":     prof.Badges,
	})
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	prof, err := s.practice.Profile(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		s.respondPracticeError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"standards": prof.Standards,
		"domains":   prof.Domains,
		"stats":     prof.Stats,
	})
}

func (s *Server) handleListAttempts(w http.ResponseWriter, r *http.Request) {
	limit := defaultAttemptLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.respondError(w, http.StatusBadRequest, "invalid_request", "limit must be a positive integer")
			return
		}
		limit = min(n, maxAttemptLimit)
	}

	attempts, err := s.practice.RecentAttempts(r.Context(), chi.URLParam(r, "userId"), limit)
	if err != nil {
		s.respondPracticeError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"attempts": attempts,
		"total":    len(attempts),
	})
}

func (s *Server) handleResetPlayer(w http.ResponseWriter, r *http.Request) {
	if err := s.practice.Reset(r.Context(), chi.URLParam(r, "userId")); err != nil {
		s.respondPracticeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Study session handlers

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.practice.StartSession(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		s.respondPracticeError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	var req endSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	sess, rec, err := s.practice.EndSession(r.Context(), chi.URLParam(r, "id"), req.StandardsWorkedOn)
	if err != nil {
		s.respondPracticeError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"session": sess,
		"player":  rec,
	})
}
