package convert

import (
	"strings"

	"github.com/aretw0/autoplan/pkg/domain"
)

const (
	basePrefix      = "n8n-nodes-base."
	langchainPrefix = "@n8n/n8n-nodes-langchain."
)

// cosmeticTypes are canvas annotations with no runtime meaning.
var cosmeticTypes = map[string]bool{
	basePrefix + "stickyNote": true,
}

func isCosmetic(identifier string) bool {
	return cosmeticTypes[identifier] || strings.Contains(strings.ToLower(identifier), "stickynote")
}

// kindTable holds the identifiers with an explicit kind.
var kindTable = buildKindTable()

func buildKindTable() map[string]domain.NodeKind {
	t := make(map[string]domain.NodeKind)
	add := func(kind domain.NodeKind, prefix string, names ...string) {
		for _, n := range names {
			t[prefix+n] = kind
		}
	}

	add(domain.NodeTrigger, basePrefix,
		"manualTrigger", "start", "webhook", "cron", "interval", "scheduleTrigger",
		"emailReadImap", "formTrigger", "errorTrigger", "executeWorkflowTrigger",
		"n8nTrigger", "workflowTrigger", "localFileTrigger", "rssFeedReadTrigger",
		"sseTrigger", "mqttTrigger", "amqpTrigger", "kafkaTrigger", "redisTrigger",
		"postgresTrigger", "gmailTrigger", "googleSheetsTrigger", "googleDriveTrigger",
		"slackTrigger", "telegramTrigger", "githubTrigger", "microsoftOutlookTrigger",
	)
	add(domain.NodeTrigger, langchainPrefix, "chatTrigger", "manualChatTrigger", "mcpTrigger")

	add(domain.NodeAI, langchainPrefix,
		"agent", "openAi", "chainLlm", "chainSummarization", "chainRetrievalQa",
		"lmChatOpenAi", "lmOpenAi", "lmChatAnthropic", "lmChatGoogleGemini",
		"lmChatMistralCloud", "lmChatOllama", "lmOllama", "lmChatGroq",
		"lmChatAzureOpenAi", "lmChatDeepSeek", "lmChatOpenRouter",
		"textClassifier", "informationExtractor", "sentimentAnalysis",
	)
	add(domain.NodeAI, basePrefix, "openAi", "mistralAi", "perplexity")

	add(domain.NodeMemory, langchainPrefix,
		"memoryBufferWindow", "memoryPostgresChat", "memoryRedisChat", "memoryMongoDbChat",
	)

	add(domain.NodeCondition, basePrefix, "if", "switch")
	add(domain.NodeFilter, basePrefix, "filter", "removeDuplicates")
	add(domain.NodeDelay, basePrefix, "wait")

	add(domain.NodeBrowserTask, "", "n8n-nodes-puppeteer.puppeteer")

	add(domain.NodeAction, basePrefix,
		"code", "function", "functionItem", "set", "itemLists", "merge",
		"splitInBatches", "splitOut", "aggregate", "sort", "limit", "summarize",
		"dateTime", "crypto", "xml", "html", "htmlExtract", "markdown",
		"convertToFile", "extractFromFile", "readBinaryFile", "readBinaryFiles",
		"writeBinaryFile", "readWriteFile", "compression", "spreadsheetFile",
		"moveBinaryData", "editImage", "noOp", "executeWorkflow",
		"respondToWebhook", "executeCommand", "stopAndError", "renameKeys",
		"compareDatasets", "debugHelper", "totp", "jwt",
	)
	return t
}

// ResolveKind maps an external type identifier to a node kind using the kind
// table. Unlisted identifiers resolve to trigger when they contain "trigger"
// (any case) and to action otherwise.
func ResolveKind(identifier string) domain.NodeKind {
	if kind, ok := kindTable[identifier]; ok {
		return kind
	}
	return fallbackKind(identifier)
}

func fallbackKind(identifier string) domain.NodeKind {
	if strings.Contains(strings.ToLower(identifier), "trigger") {
		return domain.NodeTrigger
	}
	return domain.NodeAction
}

// triggerRule maps identifier substrings to a trigger subtype.
type triggerRule struct {
	subtype  string
	keywords []string
	except   []string
}

// triggerRules are evaluated in order; the first hit wins.
var triggerRules = []triggerRule{
	{subtype: domain.TriggerWebhook, keywords: []string{"webhook"}},
	{subtype: domain.TriggerSchedule, keywords: []string{"schedule", "cron", "interval"}},
	{subtype: domain.TriggerEmail, keywords: []string{"email", "imap", "gmail", "outlook", "mail"}},
	{subtype: domain.TriggerForm, keywords: []string{"form"}},
	{subtype: domain.TriggerEvent, keywords: []string{"trigger", "event"}, except: []string{"manual"}},
}

// TriggerSubtype infers the trigger subtype of an external identifier.
// Identifiers matching no rule are manual triggers.
func TriggerSubtype(identifier string) string {
	lower := strings.ToLower(identifier)
	for _, rule := range triggerRules {
		if containsAny(lower, rule.except) {
			continue
		}
		if containsAny(lower, rule.keywords) {
			return rule.subtype
		}
	}
	return domain.TriggerManual
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
