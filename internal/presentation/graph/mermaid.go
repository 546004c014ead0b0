package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/autoplan/pkg/domain"
)

// GraphOverlay marks nodes to emphasise on the diagram.
type GraphOverlay struct {
	Highlighted []string
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a Graph.
// It applies semantic styling:
// - Trigger: ((Circle))
// - Condition: {Rhombus}
// - Filter: {{Hexagon}}
// - AI: [[Subroutine]]
// - App: [/Parallelogram/]
// - Memory: [(Cylinder)]
// - Browser task: ([Stadium])
// - Default: [Rectangle]
// Edges leaving a non-main port (AI sub-nodes) are dotted.
func GenerateMermaid(g domain.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	ids := newIDMap()

	for _, node := range g.Nodes {
		safeID := ids.get(node.ID)

		opener, closer := "[", "]"
		switch node.Type {
		case domain.NodeTrigger:
			opener, closer = "((", "))"
		case domain.NodeCondition:
			opener, closer = "{", "}"
		case domain.NodeFilter:
			opener, closer = "{{", "}}"
		case domain.NodeAI:
			opener, closer = "[[", "]]"
		case domain.NodeApp:
			opener, closer = "[/", "/]"
		case domain.NodeMemory:
			opener, closer = "[(", ")]"
		case domain.NodeBrowserTask:
			opener, closer = "([", "])"
		}

		text := escape(nodeLabel(node))
		if wait := delayLabel(node); wait != "" {
			text += " <br/> ⏱️ " + wait
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, text, closer))
	}

	for _, e := range g.Edges {
		arrow := "-->"
		dotted := e.SourceHandle != "" && !isBranchHandle(e.SourceHandle)
		if dotted {
			arrow = "-.->"
		}
		label := e.Label
		if label == "" {
			label = e.Condition
		}
		if label != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", escape(label))
			if dotted {
				arrow = fmt.Sprintf("-. \"%s\" .->", escape(label))
			}
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", ids.get(e.Source), arrow, ids.get(e.Target)))
	}

	if overlay != nil && len(overlay.Highlighted) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on both themes.
		sb.WriteString("    classDef highlight fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		seen := make(map[string]bool)
		for _, id := range overlay.Highlighted {
			if id == "" {
				continue
			}
			safeID := ids.get(id)
			if !seen[safeID] {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s highlight;\n", safeID))
			}
		}
	}

	return sb.String()
}

func nodeLabel(n domain.GraphNode) string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

func delayLabel(n domain.GraphNode) string {
	if n.Type != domain.NodeDelay {
		return ""
	}
	amount, ok := n.Config["amount"]
	if !ok {
		return ""
	}
	unit, _ := n.Config["unit"].(string)
	return strings.TrimSpace(fmt.Sprintf("%v %s", amount, unit))
}

// isBranchHandle reports whether a source handle names a branch of the main
// port rather than a separate port kind.
func isBranchHandle(handle string) bool {
	return handle == "true" || handle == "false" || strings.HasPrefix(handle, "output-")
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

// idMap hands out one Mermaid identifier per node ID. Distinct IDs that
// sanitize to the same text get a numeric suffix in first-seen order.
type idMap struct {
	byID  map[string]string
	taken map[string]bool
}

func newIDMap() *idMap {
	return &idMap{byID: make(map[string]string), taken: make(map[string]bool)}
}

func (m *idMap) get(id string) string {
	if safe, ok := m.byID[id]; ok {
		return safe
	}
	base := sanitizeMermaidID(id)
	safe := base
	for n := 2; m.taken[safe]; n++ {
		safe = fmt.Sprintf("%s_%d", base, n)
	}
	m.byID[id] = safe
	m.taken[safe] = true
	return safe
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
