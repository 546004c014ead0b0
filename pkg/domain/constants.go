package domain

// Config keys shared between the compiler, the converter and the execution engine.
const (
	// KeyTriggerType holds the trigger subtype (manual, schedule, webhook, ...) on trigger nodes.
	KeyTriggerType = "triggerType"

	// KeyExternalType keeps the original external type identifier for round-trip export.
	KeyExternalType = "externalType"

	// KeyParameters keeps the raw external parameters of an imported node.
	KeyParameters = "parameters"

	// KeyIntegration names the integration family of an app node (email, chat, http, ...).
	KeyIntegration = "integration"

	// KeyProvider names the concrete service behind an integration (gmail, slack, ...).
	KeyProvider = "provider"

	// KeyService is the human-readable label of a generic integration.
	KeyService = "service"
)

// Trigger subtypes.
const (
	TriggerManual   = "manual"
	TriggerSchedule = "schedule"
	TriggerEmail    = "email"
	TriggerWebhook  = "webhook"
	TriggerForm     = "form"
	TriggerEvent    = "event"
)

// Plan categories assigned by the intent parser.
const (
	CategoryShopping = "shopping"
	CategoryScraping = "scraping"
	CategoryForm     = "form"
	CategoryBrowser  = "browser"
	CategoryWorkflow = "workflow"
)
