package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/autoplan/pkg/domain"
	"github.com/go-chi/chi/v5"
)

// MemoryWrite is the body of PUT /agents/{agentID}/memory/{scope}/{key}.
type MemoryWrite struct {
	Value      any `json:"value"`
	TTLSeconds int `json:"ttlSeconds,omitempty"`
}

type memoryPath struct {
	agentID, scope, key string
}

func pathOf(r *http.Request) memoryPath {
	return memoryPath{
		agentID: chi.URLParam(r, "agentID"),
		scope:   chi.URLParam(r, "scope"),
		key:     chi.URLParam(r, "key"),
	}
}

// WriteMemory handles PUT /agents/{agentID}/memory/{scope}/{key}.
func (s *Server) WriteMemory(w http.ResponseWriter, r *http.Request) {
	var body MemoryWrite
	if !decodeBody(w, r, s.logger, "WriteMemory", &body) {
		return
	}
	ttl, err := domain.TTLFromSeconds(body.TTLSeconds)
	if err != nil {
		http.Error(w, fmt.Sprintf("ttlSeconds: %v", err), http.StatusBadRequest)
		return
	}

	p := pathOf(r)
	if err := s.Service.Memory().Write(r.Context(), p.agentID, p.scope, p.key, body.Value, ttl); err != nil {
		http.Error(w, fmt.Sprintf("Write error: %v", err), http.StatusInternalServerError)
		s.logger.Error("WriteMemory failed", "agent", p.agentID, "scope", p.scope, "error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReadMemory handles GET /agents/{agentID}/memory/{scope}/{key}.
func (s *Server) ReadMemory(w http.ResponseWriter, r *http.Request) {
	p := pathOf(r)
	v, err := s.Service.Memory().Read(r.Context(), p.agentID, p.scope, p.key)
	if errors.Is(err, domain.ErrMemoryNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Read error: %v", err), http.StatusInternalServerError)
		s.logger.Error("ReadMemory failed", "agent", p.agentID, "scope", p.scope, "error", err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]any{"value": v})
}

// SearchMemory handles GET /agents/{agentID}/memory/{scope}?q=.
func (s *Server) SearchMemory(w http.ResponseWriter, r *http.Request) {
	p := pathOf(r)
	entries, err := s.Service.Memory().Search(r.Context(), p.agentID, p.scope, r.URL.Query().Get("q"))
	if err != nil {
		http.Error(w, fmt.Sprintf("Search error: %v", err), http.StatusInternalServerError)
		s.logger.Error("SearchMemory failed", "agent", p.agentID, "scope", p.scope, "error", err)
		return
	}
	if entries == nil {
		entries = []domain.MemoryEntry{}
	}
	writeJSON(w, s.logger, http.StatusOK, entries)
}

// DeleteMemory handles DELETE /agents/{agentID}/memory/{scope}/{key}.
func (s *Server) DeleteMemory(w http.ResponseWriter, r *http.Request) {
	p := pathOf(r)
	if err := s.Service.Memory().Delete(r.Context(), p.agentID, p.scope, p.key); err != nil {
		http.Error(w, fmt.Sprintf("Delete error: %v", err), http.StatusInternalServerError)
		s.logger.Error("DeleteMemory failed", "agent", p.agentID, "scope", p.scope, "error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
