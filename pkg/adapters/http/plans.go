package http

import (
	"net/http"

	"github.com/aretw0/autoplan/internal/presentation/graph"
	"github.com/aretw0/autoplan/pkg/domain"
	"github.com/aretw0/autoplan/pkg/intent"
)

// GenerateRequest is the body of POST /plans.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// CompileRequest is the body of POST /plans/compile.
type CompileRequest struct {
	Plan   domain.Plan    `json:"plan"`
	Inputs map[string]any `json:"inputs,omitempty"`
}

// ExportRequest is the body of POST /external/export.
type ExportRequest struct {
	Graph domain.Graph `json:"graph"`
	Name  string       `json:"name,omitempty"`
}

// ValidationReport is the response of POST /graphs/validate.
type ValidationReport struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// GeneratePlan handles the POST /plans request.
func (s *Server) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	var body GenerateRequest
	if !decodeBody(w, r, s.logger, "GeneratePlan", &body) {
		return
	}
	prompt, err := intent.SanitizePrompt(body.Prompt)
	if err != nil {
		s.logger.Warn("GeneratePlan: rejected prompt", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	plan := s.Service.Generate(prompt)
	s.logger.Debug("plan generated", "category", plan.Category, "steps", len(plan.Steps))
	writeJSON(w, s.logger, http.StatusOK, plan)
}

// CompilePlan handles the POST /plans/compile request.
func (s *Server) CompilePlan(w http.ResponseWriter, r *http.Request) {
	var body CompileRequest
	if !decodeBody(w, r, s.logger, "CompilePlan", &body) {
		return
	}
	writeJSON(w, s.logger, http.StatusOK, s.Service.Compile(body.Plan, body.Inputs))
}

// ValidateGraph handles the POST /graphs/validate request.
// Structural problems are reported in the body, not as an error status.
func (s *Server) ValidateGraph(w http.ResponseWriter, r *http.Request) {
	var g domain.Graph
	if !decodeBody(w, r, s.logger, "ValidateGraph", &g) {
		return
	}
	report := ValidationReport{Valid: true}
	if err := s.Service.Validate(g); err != nil {
		report = ValidationReport{Error: err.Error()}
	}
	writeJSON(w, s.logger, http.StatusOK, report)
}

// RenderMermaid handles the POST /graphs/mermaid request.
func (s *Server) RenderMermaid(w http.ResponseWriter, r *http.Request) {
	var g domain.Graph
	if !decodeBody(w, r, s.logger, "RenderMermaid", &g) {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(graph.GenerateMermaid(g, nil)))
}

// ImportExternal handles the POST /external/import request.
func (s *Server) ImportExternal(w http.ResponseWriter, r *http.Request) {
	var doc domain.ExternalDocument
	if !decodeBody(w, r, s.logger, "ImportExternal", &doc) {
		return
	}
	writeJSON(w, s.logger, http.StatusOK, s.Service.ImportExternal(doc))
}

// ExportExternal handles the POST /external/export request.
func (s *Server) ExportExternal(w http.ResponseWriter, r *http.Request) {
	var body ExportRequest
	if !decodeBody(w, r, s.logger, "ExportExternal", &body) {
		return
	}
	writeJSON(w, s.logger, http.StatusOK, s.Service.ExportExternal(body.Graph, body.Name))
}
