package convert

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/autoplan/pkg/domain"
)

// Import converts an external document into a Graph. Cosmetic nodes are
// skipped. When a display name repeats, the first node keeps it and later
// ones cannot be reached by connections.
func (c *Converter) Import(doc domain.ExternalDocument) domain.Graph {
	graph := domain.Graph{
		Nodes: []domain.GraphNode{},
		Edges: []domain.GraphEdge{},
	}

	nameToID := make(map[string]string, len(doc.Nodes))
	usedIDs := make(map[string]bool, len(doc.Nodes))
	for i, ext := range doc.Nodes {
		if isCosmetic(ext.Type) {
			continue
		}
		node := c.importNode(ext)
		node.ID = uniqueID(ext.ID, i, usedIDs)
		usedIDs[node.ID] = true

		if ext.Name != "" {
			if _, taken := nameToID[ext.Name]; taken {
				c.logger.Warn("duplicate node name; connections resolve to the first node",
					"name", ext.Name, "node_id", node.ID)
			} else {
				nameToID[ext.Name] = node.ID
			}
		}
		graph.Nodes = append(graph.Nodes, node)
	}

	graph.Edges = c.importConnections(doc, nameToID, graph)
	if len(graph.Edges) == 0 && len(graph.Nodes) >= 2 {
		graph.Edges = chainByPosition(graph.Nodes)
	}
	return graph
}

func uniqueID(id string, index int, used map[string]bool) string {
	if id != "" && !used[id] {
		return id
	}
	base := fmt.Sprintf("node-%d", index+1)
	candidate := base
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
	return candidate
}

func (c *Converter) importNode(ext domain.ExternalNode) domain.GraphNode {
	params := ext.Parameters
	if params == nil {
		params = map[string]any{}
	}

	var kind domain.NodeKind
	var config map[string]any
	if k, ok := kindTable[ext.Type]; ok {
		kind = k
	} else if fc, ok := firstClassIntegrations[ext.Type]; ok {
		kind = domain.NodeApp
		config = c.shapeFirstClass(fc, ext.Name, params)
	} else if label, ok := genericIntegrations[ext.Type]; ok {
		kind = domain.NodeApp
		config = shapeGeneric(label, params)
	} else {
		kind = fallbackKind(ext.Type)
		c.logger.Debug("unknown node type", "type", ext.Type, "kind", kind)
	}
	if config == nil {
		config = map[string]any{}
	}
	if kind == domain.NodeTrigger {
		subtype := TriggerSubtype(ext.Type)
		config[domain.KeyTriggerType] = subtype
		triggerDetails(subtype, params, config)
	}

	config[domain.KeyExternalType] = ext.Type
	config[domain.KeyParameters] = cloneMap(params)
	if len(ext.Credentials) > 0 {
		config["credentials"] = cloneMap(ext.Credentials)
	}
	if ext.WebhookID != "" {
		config["webhookId"] = ext.WebhookID
	}
	if ext.Disabled {
		config["disabled"] = true
	}

	label := ext.Name
	if label == "" {
		label = typeLabel(ext.Type)
	}

	node := domain.GraphNode{
		Type:        kind,
		Label:       label,
		Description: ext.Notes,
		Config:      config,
	}
	if len(ext.Position) >= 2 {
		node.Position = domain.Position{X: ext.Position[0], Y: ext.Position[1]}
	}
	return node
}

// typeLabel derives a readable label from an identifier such as
// "n8n-nodes-base.httpRequest".
func typeLabel(identifier string) string {
	if i := strings.LastIndex(identifier, "."); i >= 0 {
		identifier = identifier[i+1:]
	}
	if identifier == "" {
		return "Node"
	}
	return strings.ToUpper(identifier[:1]) + identifier[1:]
}

// triggerDetails copies the subtype-specific settings the execution engine needs.
func triggerDetails(subtype string, params, config map[string]any) {
	switch subtype {
	case domain.TriggerSchedule:
		if cron, ok := cronExpression(params); ok {
			config["cron"] = cron
		}
	case domain.TriggerWebhook:
		path, _ := stringParam(params, "path")
		method, ok := stringParam(params, "httpMethod")
		if !ok {
			method = "GET"
		}
		config["path"] = path
		config["httpMethod"] = method
	case domain.TriggerEmail:
		mailbox, ok := stringParam(params, "mailbox")
		if !ok {
			mailbox = "INBOX"
		}
		config["mailbox"] = mailbox
	case domain.TriggerForm:
		if title, ok := stringParam(params, "formTitle"); ok {
			config["formTitle"] = title
		}
	}
}

// cronExpression reads the schedule rule of a schedule trigger:
// rule.interval[].expression for cron intervals, or the legacy cron node's
// triggerTimes.item[] hour/minute pairs.
func cronExpression(params map[string]any) (string, bool) {
	var p struct {
		Rule struct {
			Interval []struct {
				Field      string `mapstructure:"field"`
				Expression string `mapstructure:"expression"`
			} `mapstructure:"interval"`
		} `mapstructure:"rule"`
		TriggerTimes struct {
			Item []struct {
				Mode   string `mapstructure:"mode"`
				Hour   int    `mapstructure:"hour"`
				Minute int    `mapstructure:"minute"`
			} `mapstructure:"item"`
		} `mapstructure:"triggerTimes"`
	}
	_ = decodeParams(params, &p)

	for _, iv := range p.Rule.Interval {
		if iv.Expression != "" {
			return iv.Expression, true
		}
	}
	for _, item := range p.TriggerTimes.Item {
		if item.Mode == "" || item.Mode == "everyDay" {
			return fmt.Sprintf("%d %d * * *", item.Minute, item.Hour), true
		}
	}
	return "", false
}

// importConnections turns external connections into edges. Sources are
// visited in document order and port kinds with "main" first, so the output
// is deterministic.
func (c *Converter) importConnections(doc domain.ExternalDocument, nameToID map[string]string, graph domain.Graph) []domain.GraphEdge {
	edges := []domain.GraphEdge{}
	seen := make(map[string]bool)
	visited := make(map[string]bool)

	for _, ext := range doc.Nodes {
		if visited[ext.Name] {
			continue
		}
		visited[ext.Name] = true

		sourceID, ok := nameToID[ext.Name]
		if !ok {
			continue
		}
		outputs, ok := doc.Connections[ext.Name]
		if !ok {
			continue
		}
		source, _ := graph.Node(sourceID)

		for _, portKind := range sortedPortKinds(outputs) {
			for slot, conns := range outputs[portKind] {
				for _, conn := range conns {
					targetID, ok := nameToID[conn.Node]
					if !ok {
						c.logger.Debug("dropping connection to unknown node",
							"source", ext.Name, "target", conn.Node)
						continue
					}
					edge := domain.GraphEdge{
						Source: sourceID,
						Target: targetID,
					}
					applyHandles(&edge, source, portKind, slot, conn)

					key := strings.Join([]string{edge.Source, edge.SourceHandle, edge.Target, edge.TargetHandle}, "\x00")
					if seen[key] {
						continue
					}
					seen[key] = true
					edge.ID = fmt.Sprintf("edge-%d", len(edges)+1)
					edges = append(edges, edge)
				}
			}
		}
	}

	// Connections keyed by names that never appear among the nodes.
	for name := range doc.Connections {
		if _, ok := nameToID[name]; !ok && !visited[name] {
			c.logger.Debug("dropping connections from unknown node", "source", name)
		}
	}
	return edges
}

func sortedPortKinds(outputs domain.NodeOutputs) []string {
	kinds := make([]string, 0, len(outputs))
	for k := range outputs {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if kinds[i] == domain.PortMain || kinds[j] == domain.PortMain {
			return kinds[i] == domain.PortMain && kinds[j] != domain.PortMain
		}
		return kinds[i] < kinds[j]
	})
	return kinds
}

// applyHandles encodes the output slot and port kind on the edge. Condition
// nodes label their first two slots true and false.
func applyHandles(edge *domain.GraphEdge, source domain.GraphNode, portKind string, slot int, conn domain.ExternalConnection) {
	switch {
	case portKind != domain.PortMain:
		edge.SourceHandle = portKind
	case source.Type == domain.NodeCondition && isIfNode(source) && slot < 2:
		branch := "true"
		if slot == 1 {
			branch = "false"
		}
		edge.SourceHandle = branch
		edge.Condition = branch
		edge.Label = branch
	case slot > 0 || source.Type == domain.NodeCondition:
		edge.SourceHandle = fmt.Sprintf("output-%d", slot)
	}
	if conn.Index > 0 {
		edge.TargetHandle = fmt.Sprintf("input-%d", conn.Index)
	}
}

func isIfNode(n domain.GraphNode) bool {
	t, _ := n.Config[domain.KeyExternalType].(string)
	return t == basePrefix+"if"
}
