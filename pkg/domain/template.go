package domain

// Complexity grades of a template.
const (
	ComplexityLow    = "low"
	ComplexityMedium = "medium"
	ComplexityHigh   = "high"
)

// TemplateEntry is a searchable wrapper around an external workflow document.
type TemplateEntry struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Category         string            `json:"category"`
	IntegrationGroup string            `json:"integration"`
	NodeCount        int               `json:"nodeCount"`
	Complexity       string            `json:"complexity"`
	TriggerType      string            `json:"triggerType"`
	Services         []string          `json:"services"`
	Tags             []string          `json:"tags"`
	WorkflowData     *ExternalDocument `json:"workflowData,omitempty"`
}

// CategoryCount is a facet bucket.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TemplateIndex is the corpus file the template library loads.
type TemplateIndex struct {
	Version        string          `json:"version"`
	GeneratedAt    string          `json:"generatedAt"`
	TotalWorkflows int             `json:"totalWorkflows"`
	Categories     []CategoryCount `json:"categories"`
	Integrations   []string        `json:"integrations"`
	Workflows      []TemplateEntry `json:"workflows"`
}

// EmptyTemplateIndex returns a valid index with zero entries.
func EmptyTemplateIndex() *TemplateIndex {
	return &TemplateIndex{
		Categories:   []CategoryCount{},
		Integrations: []string{},
		Workflows:    []TemplateEntry{},
	}
}
