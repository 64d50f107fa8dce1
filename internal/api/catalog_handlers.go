package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pawsitive/mathcat/internal/rewards"
	"github.com/pawsitive/mathcat/internal/standards"
)

// Catalog handlers: standards, domains, levels and badges are static.

func (s *Server) handleListStandards(w http.ResponseWriter, r *http.Request) {
	list := standards.All()
	if domain := r.URL.Query().Get("domain"); domain != "" {
		list = standards.ByDomain(standards.DomainCode(strings.ToUpper(domain)))
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"standards": list,
		"total":     len(list),
	})
}

func (s *Server) handleGetStandard(w http.ResponseWriter, r *http.Request) {
	std, err := standards.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusNotFound, "not_found", "standard not found")
		return
	}
	s.respondJSON(w, http.StatusOK, std)
}

func (s *Server) handleListDomains(w http.ResponseWriter, r *http.Request) {
	domains := standards.Domains()
	s.respondJSON(w, http.StatusOK, map[string]any{
		"domains": domains,
		"total":   len(domains),
	})
}

func (s *Server) handleListLevels(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"levels": rewards.Levels,
		"total":  len(rewards.Levels),
	})
}

func (s *Server) handleListBadges(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"badges": rewards.Badges,
		"total":  len(rewards.Badges),
	})
}
