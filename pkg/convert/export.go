package convert

import (
	"fmt"
	"strings"

	"github.com/aretw0/autoplan/pkg/domain"
)

// DefaultDocumentName names exported documents when the caller gives none.
const DefaultDocumentName = "Untitled workflow"

var triggerIdentifiers = map[string]string{
	domain.TriggerManual:   basePrefix + "manualTrigger",
	domain.TriggerSchedule: basePrefix + "scheduleTrigger",
	domain.TriggerWebhook:  basePrefix + "webhook",
	domain.TriggerEmail:    basePrefix + "emailReadImap",
	domain.TriggerForm:     basePrefix + "formTrigger",
	domain.TriggerEvent:    basePrefix + "n8nTrigger",
}

var kindIdentifiers = map[domain.NodeKind]string{
	domain.NodeAI:          langchainPrefix + "agent",
	domain.NodeCondition:   basePrefix + "if",
	domain.NodeFilter:      basePrefix + "filter",
	domain.NodeDelay:       basePrefix + "wait",
	domain.NodeMemory:      langchainPrefix + "memoryBufferWindow",
	domain.NodeBrowserTask: "n8n-nodes-puppeteer.puppeteer",
	domain.NodeAction:      basePrefix + "noOp",
}

var providerIdentifiers = map[string]string{
	"gmail":       basePrefix + "gmail",
	"outlook":     basePrefix + "microsoftOutlook",
	"smtp":        basePrefix + "emailSend",
	"email":       basePrefix + "emailSend",
	"sendgrid":    basePrefix + "sendGrid",
	"mailgun":     basePrefix + "mailgun",
	"slack":       basePrefix + "slack",
	"discord":     basePrefix + "discord",
	"telegram":    basePrefix + "telegram",
	"mattermost":  basePrefix + "mattermost",
	"teams":       basePrefix + "microsoftTeams",
	"whatsapp":    basePrefix + "whatsApp",
	"rocketchat":  basePrefix + "rocketchat",
	"google-chat": basePrefix + "googleChat",
	"notion":      basePrefix + "notion",
	"google docs": basePrefix + "googleDocs",
	"http":        basePrefix + "httpRequest",
}

var integrationIdentifiers = map[string]string{
	IntegrationEmail: basePrefix + "emailSend",
	IntegrationChat:  basePrefix + "slack",
	IntegrationNotes: basePrefix + "notion",
	IntegrationHTTP:  basePrefix + "httpRequest",
}

// serviceIdentifiers inverts genericIntegrations.
var serviceIdentifiers = func() map[string]string {
	out := make(map[string]string, len(genericIntegrations))
	for id, label := range genericIntegrations {
		out[label] = id
	}
	return out
}()

// ExternalType returns the identifier a node exports as: the original one
// when the node came from an import, otherwise one derived from its kind.
func ExternalType(node domain.GraphNode) string {
	if t, ok := node.Config[domain.KeyExternalType].(string); ok && t != "" {
		return t
	}
	switch node.Type {
	case domain.NodeTrigger:
		subtype, _ := node.Config[domain.KeyTriggerType].(string)
		if id, ok := triggerIdentifiers[subtype]; ok {
			return id
		}
		return triggerIdentifiers[domain.TriggerManual]
	case domain.NodeApp:
		return appIdentifier(node.Config)
	default:
		if id, ok := kindIdentifiers[node.Type]; ok {
			return id
		}
		return kindIdentifiers[domain.NodeAction]
	}
}

func appIdentifier(config map[string]any) string {
	if service, ok := config[domain.KeyService].(string); ok {
		if id, ok := serviceIdentifiers[service]; ok {
			return id
		}
	}
	if provider, ok := config[domain.KeyProvider].(string); ok {
		if id, ok := providerIdentifiers[strings.ToLower(provider)]; ok {
			return id
		}
	}
	if integration, ok := config[domain.KeyIntegration].(string); ok {
		if id, ok := integrationIdentifiers[integration]; ok {
			return id
		}
	}
	return integrationIdentifiers[IntegrationHTTP]
}

// internalKeys are config entries that describe the node rather than
// parameterise it.
var internalKeys = map[string]bool{
	domain.KeyExternalType: true,
	domain.KeyParameters:   true,
	"credentials":          true,
	"webhookId":            true,
	"disabled":             true,
}

// exportParameters returns the raw imported parameters when present and the
// remaining config otherwise. Schedule triggers also carry a cron rule.
func exportParameters(node domain.GraphNode) map[string]any {
	if raw, ok := node.Config[domain.KeyParameters].(map[string]any); ok {
		return cloneMap(raw)
	}
	params := make(map[string]any, len(node.Config))
	for k, v := range node.Config {
		if !internalKeys[k] {
			params[k] = cloneValue(v)
		}
	}
	if cron, ok := node.Config["cron"].(string); ok && node.Type == domain.NodeTrigger {
		params["rule"] = map[string]any{
			"interval": []any{
				map[string]any{"field": "cronExpression", "expression": cron},
			},
		}
	}
	return params
}

// Export converts a Graph into an external document named name. Every edge
// leaving a node lands in output slot 0 of the main port.
func (c *Converter) Export(graph domain.Graph, name string) domain.ExternalDocument {
	if name == "" {
		name = DefaultDocumentName
	}
	doc := domain.ExternalDocument{
		Name:        name,
		Nodes:       make([]domain.ExternalNode, 0, len(graph.Nodes)),
		Connections: domain.ExternalConnections{},
		Settings:    map[string]any{"executionOrder": "v1"},
	}

	idToName := make(map[string]string, len(graph.Nodes))
	taken := make(map[string]bool, len(graph.Nodes))
	for _, node := range graph.Nodes {
		display := uniqueName(displayName(node), taken)
		taken[display] = true
		idToName[node.ID] = display

		ext := domain.ExternalNode{
			ID:          node.ID,
			Name:        display,
			Type:        ExternalType(node),
			TypeVersion: 1,
			Position:    []float64{node.Position.X, node.Position.Y},
			Parameters:  exportParameters(node),
			Notes:       node.Description,
		}
		if creds, ok := node.Config["credentials"].(map[string]any); ok {
			ext.Credentials = cloneMap(creds)
		}
		if hook, ok := node.Config["webhookId"].(string); ok {
			ext.WebhookID = hook
		}
		if disabled, ok := node.Config["disabled"].(bool); ok {
			ext.Disabled = disabled
		}
		doc.Nodes = append(doc.Nodes, ext)
	}

	for _, edge := range graph.Edges {
		source, okSource := idToName[edge.Source]
		target, okTarget := idToName[edge.Target]
		if !okSource || !okTarget {
			c.logger.Debug("skipping edge with unknown endpoint", "edge", edge.ID)
			continue
		}
		outputs, ok := doc.Connections[source]
		if !ok {
			outputs = domain.NodeOutputs{domain.PortMain: [][]domain.ExternalConnection{{}}}
			doc.Connections[source] = outputs
		}
		outputs[domain.PortMain][0] = append(outputs[domain.PortMain][0], domain.ExternalConnection{
			Node:  target,
			Type:  domain.PortMain,
			Index: 0,
		})
	}
	return doc
}

func displayName(node domain.GraphNode) string {
	if node.Label != "" {
		return node.Label
	}
	if node.ID != "" {
		return node.ID
	}
	return string(node.Type)
}

func uniqueName(name string, taken map[string]bool) string {
	if !taken[name] {
		return name
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s %d", name, n)
		if !taken[candidate] {
			return candidate
		}
	}
}
