package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/autoplan"
	"github.com/aretw0/autoplan/internal/logging"
	"github.com/aretw0/autoplan/pkg/domain"
	"github.com/aretw0/autoplan/pkg/ports"
	"github.com/aretw0/autoplan/pkg/templates"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Studio defines the operations the MCP server exposes as tools.
type Studio interface {
	Generate(prompt string) domain.Plan
	Compile(plan domain.Plan, inputs map[string]any) domain.Graph
	Validate(g domain.Graph) error
	ImportExternal(doc domain.ExternalDocument) domain.Graph
	ExportExternal(g domain.Graph, name string) domain.ExternalDocument
	Templates() *templates.Library
	Memory() ports.MemoryStore
}

// Server wraps a Studio and exposes it as an MCP Server.
type Server struct {
	studio    Studio
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for tool failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(studio Studio, opts ...Option) *Server {
	s := &Server{
		studio:    studio,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("autoplan-mcp", strings.TrimSpace(autoplan.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, Baggage, Sentry-Trace")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// unmarshalArg decodes a JSON-encoded string argument. Missing optional
// arguments leave dst untouched.
func unmarshalArg(raw, name string, required bool, dst any) error {
	if raw == "" {
		if required {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("%s is not valid JSON: %w", name, err)
	}
	return nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("autoplan://templates/categories", "Template Categories",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		idx := s.studio.Templates().LoadIndex(ctx)
		jsonBytes, err := json.Marshal(idx.Categories)
		if err != nil {
			return nil, fmt.Errorf("failed to encode categories: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "autoplan://templates/categories",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
