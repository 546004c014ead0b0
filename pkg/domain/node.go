package domain

// NodeKind is the finite category of a graph node.
type NodeKind string

const (
	NodeTrigger     NodeKind = "trigger"
	NodeAction      NodeKind = "action"
	NodeAI          NodeKind = "ai"
	NodeApp         NodeKind = "app"
	NodeBrowserTask NodeKind = "browser-task"
	NodeMemory      NodeKind = "memory"
	NodeCondition   NodeKind = "condition"
	NodeDelay       NodeKind = "delay"
	NodeFilter      NodeKind = "filter"
)

// ParseNodeKind maps a raw kind string to a NodeKind.
// Anything outside the known set becomes NodeAction.
func ParseNodeKind(s string) NodeKind {
	switch NodeKind(s) {
	case NodeTrigger:
		return NodeTrigger
	case NodeAction:
		return NodeAction
	case NodeAI:
		return NodeAI
	case NodeApp:
		return NodeApp
	case NodeBrowserTask:
		return NodeBrowserTask
	case NodeMemory:
		return NodeMemory
	case NodeCondition:
		return NodeCondition
	case NodeDelay:
		return NodeDelay
	case NodeFilter:
		return NodeFilter
	default:
		return NodeAction
	}
}

// Position is a 2D canvas coordinate.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// GraphNode is a single executable unit in a Graph.
type GraphNode struct {
	ID          string         `json:"id" yaml:"id"`
	Type        NodeKind       `json:"type" yaml:"type"`
	Label       string         `json:"label" yaml:"label"`
	Description string         `json:"description" yaml:"description"`
	Config      map[string]any `json:"config" yaml:"config"`
	Position    Position       `json:"position" yaml:"position"`
}

// GraphEdge connects two nodes by ID.
type GraphEdge struct {
	ID           string `json:"id" yaml:"id"`
	Source       string `json:"source" yaml:"source"`
	Target       string `json:"target" yaml:"target"`
	SourceHandle string `json:"sourceHandle,omitempty" yaml:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty" yaml:"targetHandle,omitempty"`
	Label        string `json:"label,omitempty" yaml:"label,omitempty"`
	Condition    string `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// Graph is the internal node/edge representation consumed by the execution engine.
type Graph struct {
	Nodes     []GraphNode    `json:"nodes" yaml:"nodes"`
	Edges     []GraphEdge    `json:"edges" yaml:"edges"`
	Variables map[string]any `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// Node returns the node with the given ID.
func (g Graph) Node(id string) (GraphNode, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return GraphNode{}, false
}

// Outgoing returns the edges leaving the given node, in graph order.
func (g Graph) Outgoing(id string) []GraphEdge {
	var out []GraphEdge
	for _, e := range g.Edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	return out
}
