package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/autoplan/internal/presentation/graph"
	"github.com/aretw0/autoplan/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		graph    domain.Graph
		overlay  *graph.GraphOverlay
		contains []string
	}{
		{
			name: "Node Shapes",
			graph: domain.Graph{Nodes: []domain.GraphNode{
				{ID: "t", Type: domain.NodeTrigger, Label: "Start"},
				{ID: "c", Type: domain.NodeCondition, Label: "Check"},
				{ID: "ai", Type: domain.NodeAI, Label: "Summarize"},
				{ID: "app", Type: domain.NodeApp, Label: "Send"},
				{ID: "m", Type: domain.NodeMemory, Label: "Remember"},
				{ID: "b", Type: domain.NodeBrowserTask, Label: "Browse"},
				{ID: "x", Type: domain.NodeAction},
			}},
			contains: []string{
				`t(("Start"))`,
				`c{"Check"}`,
				`ai[["Summarize"]]`,
				`app[/"Send"/]`,
				`m[("Remember")]`,
				`b(["Browse"])`,
				`x["x"]`,
			},
		},
		{
			name: "ID Sanitization",
			graph: domain.Graph{Nodes: []domain.GraphNode{
				{ID: "step-1-ab12cd34", Label: "Navigate"},
				{ID: "path/to.node"},
			}},
			contains: []string{
				`step_1_ab12cd34["Navigate"]`,
				`path_to_node["path/to.node"]`,
			},
		},
		{
			name: "Colliding IDs Stay Distinct",
			graph: domain.Graph{
				Nodes: []domain.GraphNode{
					{ID: "a-b", Label: "Dash"},
					{ID: "a_b", Label: "Underscore"},
					{ID: "a.b", Label: "Dot"},
				},
				Edges: []domain.GraphEdge{
					{Source: "a-b", Target: "a_b"},
					{Source: "a_b", Target: "a.b"},
				},
			},
			overlay: &graph.GraphOverlay{Highlighted: []string{"a.b"}},
			contains: []string{
				`a_b["Dash"]`,
				`a_b_2["Underscore"]`,
				`a_b_3["Dot"]`,
				"a_b --> a_b_2",
				"a_b_2 --> a_b_3",
				"class a_b_3 highlight;",
			},
		},
		{
			name: "Delay Annotation",
			graph: domain.Graph{Nodes: []domain.GraphNode{
				{ID: "d", Type: domain.NodeDelay, Label: "Wait", Config: map[string]any{"amount": 5, "unit": "minutes"}},
			}},
			contains: []string{`d["Wait <br/> ⏱️ 5 minutes"]`},
		},
		{
			name: "Edge Labels And Ports",
			graph: domain.Graph{
				Nodes: []domain.GraphNode{{ID: "a"}, {ID: "b"}, {ID: "m"}},
				Edges: []domain.GraphEdge{
					{Source: "a", Target: "b", SourceHandle: "true", Condition: "true"},
					{Source: "m", Target: "a", SourceHandle: "ai_languageModel"},
					{Source: "b", Target: "a", Label: `say "hi"`},
				},
			},
			contains: []string{
				`a -- "true" --> b`,
				`m -.-> a`,
				`b -- "say 'hi'" --> a`,
			},
		},
		{
			name:    "Overlay",
			graph:   domain.Graph{Nodes: []domain.GraphNode{{ID: "a-1"}}},
			overlay: &graph.GraphOverlay{Highlighted: []string{"a-1", "a-1"}},
			contains: []string{
				"classDef highlight",
				"class a_1 highlight;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.graph, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			if !strings.HasPrefix(got, "graph TD\n") {
				t.Errorf("expected graph TD header, got %q", got)
			}
		})
	}
}

func TestGenerateMermaid_OneLinePerNode(t *testing.T) {
	g := domain.Graph{Nodes: []domain.GraphNode{
		{ID: "send-email"}, {ID: "send_email"}, {ID: "send email"}, {ID: "send_email_2"},
	}}

	got := graph.GenerateMermaid(g, nil)

	seen := make(map[string]bool)
	for _, line := range strings.Split(strings.TrimSpace(got), "\n")[1:] {
		id, _, _ := strings.Cut(strings.TrimSpace(line), "[")
		if seen[id] {
			t.Errorf("mermaid id %q declared twice in\n%s", id, got)
		}
		seen[id] = true
	}
	if len(seen) != len(g.Nodes) {
		t.Errorf("expected %d node declarations, got %d:\n%s", len(g.Nodes), len(seen), got)
	}
}
