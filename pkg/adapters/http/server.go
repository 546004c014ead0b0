package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/autoplan"
	"github.com/aretw0/autoplan/internal/logging"
	"github.com/aretw0/autoplan/pkg/domain"
	"github.com/aretw0/autoplan/pkg/ports"
	"github.com/aretw0/autoplan/pkg/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service is the set of operations exposed over HTTP. *autoplan.Studio
// satisfies it.
type Service interface {
	Generate(prompt string) domain.Plan
	Compile(plan domain.Plan, inputs map[string]any) domain.Graph
	Validate(g domain.Graph) error
	ImportExternal(doc domain.ExternalDocument) domain.Graph
	ExportExternal(g domain.Graph, name string) domain.ExternalDocument
	Templates() *templates.Library
	Memory() ports.MemoryStore
}

var _ Service = (*autoplan.Studio)(nil)

// Server holds the handlers of the API.
type Server struct {
	Service Service

	logger    *slog.Logger
	registry  *prometheus.Registry
	rateLimit float64
	rateBurst int
}

// Option configures the handler built by NewHandler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegistry sets the registry metrics are recorded in and served from.
// By default each handler gets its own registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithRateLimit caps requests per second across all clients.
// A limit of zero or less disables limiting.
func WithRateLimit(limit float64, burst int) Option {
	return func(s *Server) {
		s.rateLimit = limit
		s.rateBurst = burst
	}
}

// NewHandler creates the HTTP handler for svc.
func NewHandler(svc Service, opts ...Option) http.Handler {
	return enableCORS(newServer(svc, opts...).routes())
}

func newServer(svc Service, opts ...Option) *Server {
	s := &Server{
		Service: svc,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	return s
}

func (s *Server) routes() *chi.Mux {
	metrics := newMetrics(s.registry)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metrics.instrument)
	if s.rateLimit > 0 {
		r.Use(rateLimit(s.rateLimit, s.rateBurst, s.logger))
	}

	r.Get("/health", s.GetHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.Post("/plans", s.GeneratePlan)
	r.Post("/plans/compile", s.CompilePlan)
	r.Post("/graphs/validate", s.ValidateGraph)
	r.Post("/graphs/mermaid", s.RenderMermaid)
	r.Post("/external/import", s.ImportExternal)
	r.Post("/external/export", s.ExportExternal)

	r.Route("/templates", func(r chi.Router) {
		r.Get("/", s.SearchTemplates)
		r.Get("/featured", s.FeaturedTemplates)
		r.Get("/{id}", s.GetTemplate)
		r.Get("/{id}/related", s.RelatedTemplates)
		r.Post("/{id}/import", s.ImportTemplate)
	})

	r.Route("/agents/{agentID}/memory/{scope}", func(r chi.Router) {
		r.Get("/", s.SearchMemory)
		r.Get("/{key}", s.ReadMemory)
		r.Put("/{key}", s.WriteMemory)
		r.Delete("/{key}", s.DeleteMemory)
	})

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>autoplan API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": strings.TrimSpace(autoplan.Version),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, logger *slog.Logger, op string, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		logger.Warn(op+": Invalid request body", "error", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
