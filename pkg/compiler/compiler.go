// Package compiler turns a reviewed Plan into an executable Graph.
package compiler

import (
	"fmt"
	"maps"

	"github.com/aretw0/autoplan/pkg/domain"
)

// Grid used to lay out compiled nodes, one row per node.
const (
	GridX       = 250.0
	GridTop     = 100.0
	GridSpacing = 150.0
)

// Compile builds a linear graph from plan, overlaying inputs onto the config
// of every step that declares a matching InputField.
//
// The result always starts with exactly one trigger node: the first trigger
// step is hoisted to the front, later trigger steps compile as actions, and a
// manual trigger is synthesized when the plan has none.
func Compile(plan domain.Plan, inputs map[string]any) domain.Graph {
	nodes := make([]domain.GraphNode, 0, len(plan.Steps)+1)
	triggerAt := -1

	for i, step := range plan.Steps {
		node := compileStep(step, i, inputs)
		if node.Type == domain.NodeTrigger {
			if triggerAt >= 0 {
				node.Type = domain.NodeAction
			} else {
				triggerAt = len(nodes)
			}
		}
		nodes = append(nodes, node)
	}

	switch {
	case triggerAt < 0:
		nodes = append([]domain.GraphNode{manualTrigger()}, nodes...)
	case triggerAt > 0:
		trigger := nodes[triggerAt]
		copy(nodes[1:triggerAt+1], nodes[:triggerAt])
		nodes[0] = trigger
	}

	layout(nodes)

	return domain.Graph{
		Nodes: nodes,
		Edges: chain(nodes),
	}
}

func compileStep(step domain.PlanStep, index int, inputs map[string]any) domain.GraphNode {
	id := step.ID
	if id == "" {
		id = fmt.Sprintf("node-%d", index+1)
	}

	config := make(map[string]any, len(step.Details)+len(step.InputFields))
	maps.Copy(config, step.Details)
	for _, field := range step.InputFields {
		if v, ok := inputs[field.Key]; ok {
			config[field.Key] = v
		}
	}

	label := step.Description
	if label == "" {
		label = step.Action
	}

	return domain.GraphNode{
		ID:          id,
		Type:        domain.ParseNodeKind(string(step.Kind)),
		Label:       label,
		Description: step.Description,
		Config:      config,
	}
}

func manualTrigger() domain.GraphNode {
	return domain.GraphNode{
		ID:          "trigger-manual",
		Type:        domain.NodeTrigger,
		Label:       "Manual trigger",
		Description: "Start manually",
		Config:      map[string]any{domain.KeyTriggerType: domain.TriggerManual},
	}
}

func layout(nodes []domain.GraphNode) {
	for i := range nodes {
		nodes[i].Position = domain.Position{X: GridX, Y: GridTop + float64(i)*GridSpacing}
	}
}

func chain(nodes []domain.GraphNode) []domain.GraphEdge {
	edges := make([]domain.GraphEdge, 0, len(nodes))
	for i := 0; i+1 < len(nodes); i++ {
		source, target := nodes[i].ID, nodes[i+1].ID
		edges = append(edges, domain.GraphEdge{
			ID:     fmt.Sprintf("edge-%s-%s", source, target),
			Source: source,
			Target: target,
		})
	}
	return edges
}
