package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aretw0/autoplan/pkg/domain"
	"github.com/aretw0/autoplan/pkg/templates"
	"github.com/go-chi/chi/v5"
)

// SearchTemplates handles the GET /templates request.
func (s *Server) SearchTemplates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := intParam(q, "page")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pageSize, err := intParam(q, "pageSize")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res := s.Service.Templates().Search(r.Context(), templates.SearchOptions{
		Query:       q.Get("q"),
		Category:    q.Get("category"),
		Complexity:  q.Get("complexity"),
		TriggerType: q.Get("trigger"),
		Service:     q.Get("service"),
		Page:        page,
		PageSize:    pageSize,
	})
	writeJSON(w, s.logger, http.StatusOK, res)
}

// FeaturedTemplates handles the GET /templates/featured request.
func (s *Server) FeaturedTemplates(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r.URL.Query(), "limit")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, s.Service.Templates().Featured(r.Context(), limit))
}

// GetTemplate handles the GET /templates/{id} request.
func (s *Server) GetTemplate(w http.ResponseWriter, r *http.Request) {
	t, ok := s.findTemplate(w, r)
	if !ok {
		return
	}
	writeJSON(w, s.logger, http.StatusOK, t)
}

// RelatedTemplates handles the GET /templates/{id}/related request.
func (s *Server) RelatedTemplates(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r.URL.Query(), "limit")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	t, ok := s.findTemplate(w, r)
	if !ok {
		return
	}
	writeJSON(w, s.logger, http.StatusOK, s.Service.Templates().Related(r.Context(), t, limit))
}

// ImportTemplate handles the POST /templates/{id}/import request.
func (s *Server) ImportTemplate(w http.ResponseWriter, r *http.Request) {
	t, ok := s.findTemplate(w, r)
	if !ok {
		return
	}
	g, err := s.Service.Templates().Import(t)
	if errors.Is(err, domain.ErrTemplatePayloadMissing) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		s.logger.Warn("ImportTemplate: no payload", "template", t.ID)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Import error: %v", err), http.StatusInternalServerError)
		s.logger.Error("ImportTemplate failed", "template", t.ID, "error", err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, g)
}

func (s *Server) findTemplate(w http.ResponseWriter, r *http.Request) (domain.TemplateEntry, bool) {
	id := chi.URLParam(r, "id")
	t, err := s.Service.Templates().FindByID(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return domain.TemplateEntry{}, false
	}
	return t, true
}

// intParam reads a non-negative integer query parameter; absent means 0.
func intParam(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return n, nil
}
