package domain

// PortMain is the only output/input port kind emitted on export.
const PortMain = "main"

// ExternalNode is a node in the external platform's workflow document.
// Name is the identity key used by connections.
type ExternalNode struct {
	ID          string         `json:"id,omitempty"`
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	TypeVersion float64        `json:"typeVersion,omitempty"`
	Position    []float64      `json:"position"`
	Parameters  map[string]any `json:"parameters"`
	Credentials map[string]any `json:"credentials,omitempty"`
	WebhookID   string         `json:"webhookId,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	Disabled    bool           `json:"disabled,omitempty"`
}

// ExternalConnection points at an input of a target node.
type ExternalConnection struct {
	Node  string `json:"node"`
	Type  string `json:"type"`
	Index int    `json:"index"`
}

// NodeOutputs maps a port kind ("main", "ai_languageModel", ...) to its output
// slots; each slot lists the connections leaving it.
type NodeOutputs map[string][][]ExternalConnection

// ExternalConnections maps a source display name to its outputs.
type ExternalConnections map[string]NodeOutputs

// ExternalDocument is the interchange JSON format of the external platform.
type ExternalDocument struct {
	ID          string              `json:"id,omitempty"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Nodes       []ExternalNode      `json:"nodes"`
	Connections ExternalConnections `json:"connections"`
	Active      bool                `json:"active,omitempty"`
	Settings    map[string]any      `json:"settings,omitempty"`
	Tags        []any               `json:"tags,omitempty"`
}
