package convert

import (
	"log/slog"

	"github.com/aretw0/autoplan/internal/logging"
	"github.com/aretw0/autoplan/pkg/domain"
)

// Converter translates between Graphs and external documents.
// It holds no state and is safe for concurrent use.
type Converter struct {
	logger *slog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger used for dropped connections, duplicate names and
// partially decoded parameters.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultConverter = New()

// Import converts an external document with a silent Converter.
func Import(doc domain.ExternalDocument) domain.Graph {
	return defaultConverter.Import(doc)
}

// Export converts a Graph with a silent Converter.
func Export(graph domain.Graph, name string) domain.ExternalDocument {
	return defaultConverter.Export(graph, name)
}
