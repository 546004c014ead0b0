package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/autoplan/pkg/domain"
)

// ValidateGraph checks the structural invariants any graph must hold,
// compiled or imported: unique node IDs, at least one trigger, edges between
// existing nodes, and every node connected to some trigger. Imported
// documents may list triggers anywhere and carry several of them. Edge
// direction is ignored for connectivity so that sub-nodes feeding an agent
// still count. All problems are reported together.
func ValidateGraph(g domain.Graph) error {
	return validate(g, false)
}

// ValidateCompiled adds the compiler's guarantee to ValidateGraph: exactly
// one trigger, placed first.
func ValidateCompiled(g domain.Graph) error {
	return validate(g, true)
}

func validate(g domain.Graph, compiled bool) error {
	if len(g.Nodes) == 0 {
		return fmt.Errorf("found 1 errors:\n- graph has no nodes")
	}

	var errors []string

	ids := make(map[string]bool, len(g.Nodes))
	var triggers []int
	for i, n := range g.Nodes {
		switch {
		case n.ID == "":
			errors = append(errors, fmt.Sprintf("Node at index %d has no id", i))
		case ids[n.ID]:
			errors = append(errors, fmt.Sprintf("Duplicate node id: '%s'", n.ID))
		}
		ids[n.ID] = true
		if n.Type == domain.NodeTrigger {
			triggers = append(triggers, i)
		}
	}

	switch {
	case len(triggers) == 0:
		errors = append(errors, "Graph has no trigger node")
	case !compiled:
	case len(triggers) > 1:
		errors = append(errors, fmt.Sprintf("Graph has %d trigger nodes, expected exactly 1", len(triggers)))
	case triggers[0] != 0:
		errors = append(errors, fmt.Sprintf("Trigger node '%s' must be the first node", g.Nodes[triggers[0]].ID))
	}

	adjacency := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		broken := false
		if !ids[e.Source] {
			errors = append(errors, fmt.Sprintf("Edge '%s' has unknown source: '%s'", e.ID, e.Source))
			broken = true
		}
		if !ids[e.Target] {
			errors = append(errors, fmt.Sprintf("Edge '%s' has unknown target: '%s'", e.ID, e.Target))
			broken = true
		}
		if broken {
			continue
		}
		if e.Source == e.Target {
			errors = append(errors, fmt.Sprintf("Edge '%s' loops on node '%s'", e.ID, e.Source))
		}
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
		adjacency[e.Target] = append(adjacency[e.Target], e.Source)
	}

	if len(triggers) > 0 {
		visited := make(map[string]bool, len(g.Nodes))
		queue := make([]string, 0, len(g.Nodes))
		for _, i := range triggers {
			if id := g.Nodes[i].ID; id != "" && !visited[id] {
				visited[id] = true
				queue = append(queue, id)
			}
		}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			for _, next := range adjacency[current] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
		for _, n := range g.Nodes {
			if n.ID != "" && !visited[n.ID] {
				errors = append(errors, fmt.Sprintf("Unreachable node: '%s'", n.ID))
			}
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}
	return nil
}
