package autoplan

import (
	"context"
	_ "embed"
	"log/slog"

	"github.com/aretw0/autoplan/internal/logging"
	"github.com/aretw0/autoplan/internal/validator"
	"github.com/aretw0/autoplan/pkg/adapters/memory"
	"github.com/aretw0/autoplan/pkg/compiler"
	"github.com/aretw0/autoplan/pkg/convert"
	"github.com/aretw0/autoplan/pkg/domain"
	"github.com/aretw0/autoplan/pkg/intent"
	"github.com/aretw0/autoplan/pkg/ports"
	"github.com/aretw0/autoplan/pkg/templates"
)

// Version is the release version of autoplan.
//
//go:embed VERSION
var Version string

// Studio is the high-level entry point for the autoplan library.
// It wires the parser, compiler, converter, template library and agent
// memory behind one value that is safe for concurrent use.
type Studio struct {
	parser    *intent.Parser
	converter *convert.Converter
	library   *templates.Library
	memory    ports.MemoryStore
	source    ports.TemplateSource
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Studio.
type Option func(*Studio)

// WithLogger sets a custom structured logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Studio) {
		s.logger = logger
	}
}

// WithTemplateSource sets where the template index is loaded from.
// Without one the template library is empty.
func WithTemplateSource(source ports.TemplateSource) Option {
	return func(s *Studio) {
		s.source = source
	}
}

// WithMemoryStore injects the agent memory store (default: in-process).
func WithMemoryStore(store ports.MemoryStore) Option {
	return func(s *Studio) {
		s.memory = store
	}
}

// New initializes a Studio.
func New(opts ...Option) *Studio {
	s := &Studio{}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.memory == nil {
		s.memory = memory.NewStore()
	}

	s.parser = intent.New(intent.WithLogger(s.logger))
	s.converter = convert.New(convert.WithLogger(s.logger))
	s.library = templates.New(s.source,
		templates.WithLogger(s.logger),
		templates.WithConverter(s.converter),
	)
	return s
}

// Generate turns a natural-language request into a reviewable plan.
func (s *Studio) Generate(prompt string) domain.Plan {
	return s.parser.Generate(prompt)
}

// Compile lowers a plan into an executable graph. inputs fill the config of
// steps that declare a matching input field.
func (s *Studio) Compile(plan domain.Plan, inputs map[string]any) domain.Graph {
	return compiler.Compile(plan, inputs)
}

// Build generates a plan for prompt and compiles it straight away.
func (s *Studio) Build(prompt string, inputs map[string]any) (domain.Plan, domain.Graph) {
	plan := s.Generate(prompt)
	return plan, s.Compile(plan, inputs)
}

// Validate checks the structural integrity of a graph.
func (s *Studio) Validate(g domain.Graph) error {
	return validator.ValidateGraph(g)
}

// ImportExternal converts an external workflow document into a graph.
func (s *Studio) ImportExternal(doc domain.ExternalDocument) domain.Graph {
	return s.converter.Import(doc)
}

// ExportExternal converts a graph into an external workflow document.
func (s *Studio) ExportExternal(g domain.Graph, name string) domain.ExternalDocument {
	return s.converter.Export(g, name)
}

// SearchTemplates filters the template corpus.
func (s *Studio) SearchTemplates(ctx context.Context, opts templates.SearchOptions) templates.SearchResult {
	return s.library.Search(ctx, opts)
}

// ImportTemplate converts the embedded document of template id into a graph.
func (s *Studio) ImportTemplate(ctx context.Context, id string) (domain.Graph, error) {
	t, err := s.library.FindByID(ctx, id)
	if err != nil {
		return domain.Graph{}, err
	}
	return s.library.Import(t)
}

// Templates returns the template library.
func (s *Studio) Templates() *templates.Library {
	return s.library
}

// Memory returns the agent memory store.
func (s *Studio) Memory() ports.MemoryStore {
	return s.memory
}
