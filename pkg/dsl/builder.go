package dsl

import (
	"fmt"

	"github.com/aretw0/autoplan/internal/validator"
	"github.com/aretw0/autoplan/pkg/compiler"
	"github.com/aretw0/autoplan/pkg/domain"
)

// Builder manages the graph construction.
type Builder struct {
	order     []string
	nodes     map[string]*NodeBuilder
	variables map[string]any
}

// New creates a new graph builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[string]*NodeBuilder),
	}
}

// Add creates a new node in the graph.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node: domain.GraphNode{
			ID:     id,
			Type:   domain.NodeAction,
			Label:  id,
			Config: map[string]any{},
		},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Variable sets a graph-level variable.
func (b *Builder) Variable(key string, value any) *Builder {
	if b.variables == nil {
		b.variables = make(map[string]any)
	}
	b.variables[key] = value
	return b
}

// Build assembles the nodes in insertion order, lays out those without an
// explicit position and validates the result.
func (b *Builder) Build() (domain.Graph, error) {
	g := domain.Graph{
		Nodes:     make([]domain.GraphNode, 0, len(b.order)),
		Edges:     []domain.GraphEdge{},
		Variables: b.variables,
	}

	for i, id := range b.order {
		nb := b.nodes[id]
		node := nb.node
		if !nb.placed {
			node.Position = domain.Position{X: compiler.GridX, Y: compiler.GridTop + float64(i)*compiler.GridSpacing}
		}
		g.Nodes = append(g.Nodes, node)
		for _, e := range nb.edges {
			e.Source = id
			e.ID = fmt.Sprintf("edge-%s-%s", id, e.Target)
			g.Edges = append(g.Edges, e)
		}
	}

	if err := validator.ValidateGraph(g); err != nil {
		return domain.Graph{}, fmt.Errorf("failed to build graph: %w", err)
	}
	return g, nil
}
