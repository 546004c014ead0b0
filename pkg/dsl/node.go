package dsl

import "github.com/aretw0/autoplan/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.GraphNode
	edges   []domain.GraphEdge
	placed  bool
	builder *Builder
}

// Trigger marks the node as a trigger of the given subtype.
func (n *NodeBuilder) Trigger(triggerType string) *NodeBuilder {
	n.node.Type = domain.NodeTrigger
	n.node.Config[domain.KeyTriggerType] = triggerType
	return n
}

// AI marks the node as an AI step with the given prompt.
func (n *NodeBuilder) AI(prompt string) *NodeBuilder {
	n.node.Type = domain.NodeAI
	n.node.Config["prompt"] = prompt
	return n
}

// App marks the node as an integration call.
func (n *NodeBuilder) App(integration, provider string) *NodeBuilder {
	n.node.Type = domain.NodeApp
	n.node.Config[domain.KeyIntegration] = integration
	if provider != "" {
		n.node.Config[domain.KeyProvider] = provider
	}
	return n
}

// Kind sets the node type directly.
func (n *NodeBuilder) Kind(kind domain.NodeKind) *NodeBuilder {
	n.node.Type = kind
	return n
}

// Label sets the display label.
func (n *NodeBuilder) Label(label string) *NodeBuilder {
	n.node.Label = label
	return n
}

// Describe sets the node description.
func (n *NodeBuilder) Describe(description string) *NodeBuilder {
	n.node.Description = description
	return n
}

// Config adds a config value to the node.
func (n *NodeBuilder) Config(key string, value any) *NodeBuilder {
	n.node.Config[key] = value
	return n
}

// At pins the node to a canvas position.
func (n *NodeBuilder) At(x, y float64) *NodeBuilder {
	n.node.Position = domain.Position{X: x, Y: y}
	n.placed = true
	return n
}

// Go adds an unconditional edge to the target node.
func (n *NodeBuilder) Go(target string) *NodeBuilder {
	n.edges = append(n.edges, domain.GraphEdge{Target: target})
	return n
}

// Branch adds a conditional edge to the target node.
func (n *NodeBuilder) Branch(condition string, target string) *NodeBuilder {
	n.edges = append(n.edges, domain.GraphEdge{
		Target:    target,
		Condition: condition,
		Label:     condition,
	})
	return n
}

// Terminal drops every outgoing edge.
func (n *NodeBuilder) Terminal() *NodeBuilder {
	n.edges = nil
	return n
}

// Build returns the underlying node without its edges.
func (n *NodeBuilder) Build() domain.GraphNode {
	return n.node
}
