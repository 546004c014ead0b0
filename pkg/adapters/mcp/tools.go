package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/autoplan/pkg/domain"
	"github.com/aretw0/autoplan/pkg/intent"
	"github.com/aretw0/autoplan/pkg/templates"
	"github.com/mark3labs/mcp-go/mcp"
)

// ValidationResult reports whether a graph is structurally sound.
type ValidationResult struct {
	Valid bool   `json:"valid" jsonschema_description:"True when the graph has no structural problems"`
	Error string `json:"error,omitempty" jsonschema_description:"Aggregated list of problems"`
}

// MemoryValue is the result of memory_read.
type MemoryValue struct {
	Found bool `json:"found"`
	Value any  `json:"value,omitempty"`
}

// MemoryEntries is the result of memory_search.
type MemoryEntries struct {
	Entries []domain.MemoryEntry `json:"entries"`
}

type generateArgs struct {
	Prompt string `json:"prompt"`
}

type compileArgs struct {
	Plan   string `json:"plan"`
	Inputs string `json:"inputs"`
}

type documentArgs struct {
	Document string `json:"document"`
}

type exportArgs struct {
	Graph string `json:"graph"`
	Name  string `json:"name"`
}

type graphArgs struct {
	Graph string `json:"graph"`
}

type searchArgs struct {
	Query       string `json:"query"`
	Category    string `json:"category"`
	Complexity  string `json:"complexity"`
	TriggerType string `json:"trigger_type"`
	Service     string `json:"service"`
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
}

type templateArgs struct {
	ID string `json:"id"`
}

type memoryArgs struct {
	AgentID    string `json:"agent_id"`
	Scope      string `json:"scope"`
	Key        string `json:"key"`
	Value      string `json:"value"`
	TTLSeconds int    `json:"ttl_seconds"`
	Query      string `json:"query"`
}

func (s *Server) registerTools() {
	// TOOL: generate_plan
	s.mcpServer.AddTool(mcp.NewTool("generate_plan",
		mcp.WithDescription("Turn a natural-language automation request into an editable, risk-annotated plan."),
		mcp.WithString("prompt", mcp.Required(), mcp.Description("What the automation should do")),
		mcp.WithOutputSchema[domain.Plan](),
	), mcp.NewStructuredToolHandler(s.handleGeneratePlan))

	// TOOL: compile_plan
	s.mcpServer.AddTool(mcp.NewTool("compile_plan",
		mcp.WithDescription("Compile a plan into an executable node graph with a single trigger."),
		mcp.WithString("plan", mcp.Required(), mcp.Description("JSON plan as returned by generate_plan")),
		mcp.WithString("inputs", mcp.Description("JSON object of values for the plan's input fields, keyed by field key (optional)")),
		mcp.WithOutputSchema[domain.Graph](),
	), mcp.NewStructuredToolHandler(s.handleCompilePlan))

	// TOOL: validate_graph
	s.mcpServer.AddTool(mcp.NewTool("validate_graph",
		mcp.WithDescription("Check a graph for structural problems."),
		mcp.WithString("graph", mcp.Required(), mcp.Description("JSON graph")),
		mcp.WithOutputSchema[ValidationResult](),
	), mcp.NewStructuredToolHandler(s.handleValidateGraph))

	// TOOL: import_external
	s.mcpServer.AddTool(mcp.NewTool("import_external",
		mcp.WithDescription("Convert an external workflow document (n8n JSON) into a graph."),
		mcp.WithString("document", mcp.Required(), mcp.Description("JSON workflow document")),
		mcp.WithOutputSchema[domain.Graph](),
	), mcp.NewStructuredToolHandler(s.handleImportExternal))

	// TOOL: export_graph
	s.mcpServer.AddTool(mcp.NewTool("export_graph",
		mcp.WithDescription("Convert a graph into an external workflow document (n8n JSON)."),
		mcp.WithString("graph", mcp.Required(), mcp.Description("JSON graph")),
		mcp.WithString("name", mcp.Description("Workflow name (optional)")),
		mcp.WithOutputSchema[domain.ExternalDocument](),
	), mcp.NewStructuredToolHandler(s.handleExportGraph))

	// TOOL: search_templates
	s.mcpServer.AddTool(mcp.NewTool("search_templates",
		mcp.WithDescription("Search the template library. All filters are optional."),
		mcp.WithString("query", mcp.Description("Free-text terms, all of which must match")),
		mcp.WithString("category", mcp.Description("Exact category")),
		mcp.WithString("complexity", mcp.Description("low, medium or high")),
		mcp.WithString("trigger_type", mcp.Description("Trigger subtype such as webhook or schedule")),
		mcp.WithString("service", mcp.Description("Service name, case-insensitive substring")),
		mcp.WithNumber("page", mcp.Description("1-based page number")),
		mcp.WithNumber("page_size", mcp.Description("Results per page")),
		mcp.WithOutputSchema[templates.SearchResult](),
	), mcp.NewStructuredToolHandler(s.handleSearchTemplates))

	// TOOL: import_template
	s.mcpServer.AddTool(mcp.NewTool("import_template",
		mcp.WithDescription("Import a library template as a graph."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Template ID")),
		mcp.WithOutputSchema[domain.Graph](),
	), mcp.NewStructuredToolHandler(s.handleImportTemplate))

	// TOOL: memory_write
	s.mcpServer.AddTool(mcp.NewTool("memory_write",
		mcp.WithDescription("Remember a value for an agent."),
		mcp.WithString("agent_id", mcp.Required()),
		mcp.WithString("scope", mcp.Required()),
		mcp.WithString("key", mcp.Required()),
		mcp.WithString("value", mcp.Required(), mcp.Description("JSON value to store")),
		mcp.WithNumber("ttl_seconds", mcp.Description("Lifetime in seconds; 0 keeps it forever")),
	), s.handleMemoryWrite)

	// TOOL: memory_read
	s.mcpServer.AddTool(mcp.NewTool("memory_read",
		mcp.WithDescription("Recall a value previously remembered for an agent."),
		mcp.WithString("agent_id", mcp.Required()),
		mcp.WithString("scope", mcp.Required()),
		mcp.WithString("key", mcp.Required()),
		mcp.WithOutputSchema[MemoryValue](),
	), mcp.NewStructuredToolHandler(s.handleMemoryRead))

	// TOOL: memory_search
	s.mcpServer.AddTool(mcp.NewTool("memory_search",
		mcp.WithDescription("List an agent's live memories whose key or value contains the query."),
		mcp.WithString("agent_id", mcp.Required()),
		mcp.WithString("scope", mcp.Required()),
		mcp.WithString("query", mcp.Description("Case-insensitive substring; empty lists everything")),
		mcp.WithOutputSchema[MemoryEntries](),
	), mcp.NewStructuredToolHandler(s.handleMemorySearch))
}

func (s *Server) handleGeneratePlan(ctx context.Context, request mcp.CallToolRequest, args generateArgs) (domain.Plan, error) {
	prompt, err := intent.SanitizePrompt(args.Prompt)
	if err != nil {
		return domain.Plan{}, err
	}
	return s.studio.Generate(prompt), nil
}

func (s *Server) handleCompilePlan(ctx context.Context, request mcp.CallToolRequest, args compileArgs) (domain.Graph, error) {
	var plan domain.Plan
	if err := unmarshalArg(args.Plan, "plan", true, &plan); err != nil {
		return domain.Graph{}, err
	}
	var inputs map[string]any
	if err := unmarshalArg(args.Inputs, "inputs", false, &inputs); err != nil {
		return domain.Graph{}, err
	}
	return s.studio.Compile(plan, inputs), nil
}

func (s *Server) handleValidateGraph(ctx context.Context, request mcp.CallToolRequest, args graphArgs) (ValidationResult, error) {
	var g domain.Graph
	if err := unmarshalArg(args.Graph, "graph", true, &g); err != nil {
		return ValidationResult{}, err
	}
	if err := s.studio.Validate(g); err != nil {
		return ValidationResult{Error: err.Error()}, nil
	}
	return ValidationResult{Valid: true}, nil
}

func (s *Server) handleImportExternal(ctx context.Context, request mcp.CallToolRequest, args documentArgs) (domain.Graph, error) {
	var doc domain.ExternalDocument
	if err := unmarshalArg(args.Document, "document", true, &doc); err != nil {
		return domain.Graph{}, err
	}
	return s.studio.ImportExternal(doc), nil
}

func (s *Server) handleExportGraph(ctx context.Context, request mcp.CallToolRequest, args exportArgs) (domain.ExternalDocument, error) {
	var g domain.Graph
	if err := unmarshalArg(args.Graph, "graph", true, &g); err != nil {
		return domain.ExternalDocument{}, err
	}
	return s.studio.ExportExternal(g, args.Name), nil
}

func (s *Server) handleSearchTemplates(ctx context.Context, request mcp.CallToolRequest, args searchArgs) (templates.SearchResult, error) {
	return s.studio.Templates().Search(ctx, templates.SearchOptions{
		Query:       args.Query,
		Category:    args.Category,
		Complexity:  args.Complexity,
		TriggerType: args.TriggerType,
		Service:     args.Service,
		Page:        args.Page,
		PageSize:    args.PageSize,
	}), nil
}

func (s *Server) handleImportTemplate(ctx context.Context, request mcp.CallToolRequest, args templateArgs) (domain.Graph, error) {
	lib := s.studio.Templates()
	t, err := lib.FindByID(ctx, args.ID)
	if err != nil {
		return domain.Graph{}, err
	}
	g, err := lib.Import(t)
	if err != nil {
		s.logger.Warn("MCP import_template failed", "template", args.ID, "error", err)
		return domain.Graph{}, err
	}
	return g, nil
}

func (s *Server) handleMemoryWrite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args memoryArgs
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	var value any
	if err := unmarshalArg(args.Value, "value", true, &value); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ttl, err := domain.TTLFromSeconds(args.TTLSeconds)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ttl_seconds: %v", err)), nil
	}

	if err := s.studio.Memory().Write(ctx, args.AgentID, args.Scope, args.Key, value, ttl); err != nil {
		s.logger.Error("MCP memory_write failed", "agent", args.AgentID, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("write failed: %v", err)), nil
	}
	return mcp.NewToolResultText("stored"), nil
}

func (s *Server) handleMemoryRead(ctx context.Context, request mcp.CallToolRequest, args memoryArgs) (MemoryValue, error) {
	v, err := s.studio.Memory().Read(ctx, args.AgentID, args.Scope, args.Key)
	if errors.Is(err, domain.ErrMemoryNotFound) {
		return MemoryValue{}, nil
	}
	if err != nil {
		return MemoryValue{}, fmt.Errorf("read failed: %w", err)
	}
	return MemoryValue{Found: true, Value: v}, nil
}

func (s *Server) handleMemorySearch(ctx context.Context, request mcp.CallToolRequest, args memoryArgs) (MemoryEntries, error) {
	entries, err := s.studio.Memory().Search(ctx, args.AgentID, args.Scope, args.Query)
	if err != nil {
		return MemoryEntries{}, fmt.Errorf("search failed: %w", err)
	}
	if entries == nil {
		entries = []domain.MemoryEntry{}
	}
	return MemoryEntries{Entries: entries}, nil
}
