package compiler

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/autoplan/pkg/domain"
)

// ParsePlan decodes a JSON plan, e.g. one edited by the user, and restores
// contiguous step orders.
func ParsePlan(data []byte) (domain.Plan, error) {
	var plan domain.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return domain.Plan{}, fmt.Errorf("failed to parse plan: %w", err)
	}
	plan.Renumber()
	return plan, nil
}

// ParseGraph decodes a JSON graph.
func ParseGraph(data []byte) (domain.Graph, error) {
	var graph domain.Graph
	if err := json.Unmarshal(data, &graph); err != nil {
		return domain.Graph{}, fmt.Errorf("failed to parse graph: %w", err)
	}
	if graph.Nodes == nil {
		graph.Nodes = []domain.GraphNode{}
	}
	if graph.Edges == nil {
		graph.Edges = []domain.GraphEdge{}
	}
	return graph, nil
}
