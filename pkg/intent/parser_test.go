package intent

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/aretw0/autoplan/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findStep(plan domain.Plan, action string) (domain.PlanStep, bool) {
	for _, s := range plan.Steps {
		if s.Action == action {
			return s, true
		}
	}
	return domain.PlanStep{}, false
}

func kinds(plan domain.Plan) []domain.StepKind {
	out := make([]domain.StepKind, len(plan.Steps))
	for i, s := range plan.Steps {
		out[i] = s.Kind
	}
	return out
}

func TestGenerate_ShoppingOnAmazon(t *testing.T) {
	plan := Generate("Order noise-cancelling headphones on Amazon")

	assert.True(t, plan.RequiresBrowser)
	assert.Equal(t, domain.CategoryShopping, plan.Category)
	assert.Equal(t, domain.RiskHigh, plan.RiskAssessment)

	require.NotEmpty(t, plan.Steps)
	first := plan.Steps[0]
	assert.Equal(t, "navigate", first.Action)
	assert.Contains(t, first.Details["url"], "amazon.com")

	login, ok := findStep(plan, "login")
	require.True(t, ok, "expected a login step")
	assert.True(t, login.RequiresInput)
	keys := []string{}
	for _, f := range login.InputFields {
		keys = append(keys, f.Key)
	}
	assert.ElementsMatch(t, []string{"username", "password"}, keys)

	search, ok := findStep(plan, "search")
	require.True(t, ok)
	assert.Equal(t, "noise-cancelling headphones", search.Details["query"])

	checkout, ok := findStep(plan, "checkout")
	require.True(t, ok, "expected a checkout step")
	assert.True(t, checkout.RequiresConfirmation)
	assert.Equal(t, domain.RiskHigh, checkout.RiskLevel)

	last := plan.Steps[len(plan.Steps)-1]
	assert.Equal(t, domain.StepMemory, last.Kind)
	assert.NotEmpty(t, plan.Warnings)
}

func TestGenerate_ScheduledDigest(t *testing.T) {
	plan := Generate("Every morning, check Gmail and summarize unread emails to Slack")

	assert.False(t, plan.RequiresBrowser)
	assert.Equal(t, domain.CategoryWorkflow, plan.Category)

	require.GreaterOrEqual(t, len(plan.Steps), 4)
	trigger := plan.Steps[0]
	assert.Equal(t, domain.StepTrigger, trigger.Kind)
	assert.Equal(t, domain.TriggerSchedule, trigger.Details[domain.KeyTriggerType])
	assert.Equal(t, "0 9 * * *", trigger.Details["cron"])

	aiSteps := 0
	for _, s := range plan.Steps[1:] {
		if s.Kind == domain.StepAI {
			aiSteps++
		}
	}
	assert.Equal(t, 1, aiSteps)

	mail, ok := findStep(plan, "send_email")
	require.True(t, ok, "expected a mail send step")
	assert.Equal(t, domain.StepApp, mail.Kind)
	assert.Equal(t, "gmail", mail.Details[domain.KeyProvider])

	chat, ok := findStep(plan, "send_message")
	require.True(t, ok, "expected a chat send step")
	assert.Equal(t, "slack", chat.Details[domain.KeyProvider])
}

func TestGenerate_OrdersAreContiguous(t *testing.T) {
	prompts := []string{
		"",
		"   ",
		"hello",
		"Order noise-cancelling headphones on Amazon",
		"Every morning, check Gmail and summarize unread emails to Slack",
		"Scrape prices from https://example.com/deals",
		"Fill out the contact form on acme.io",
		"Visit the company website and take a look around",
		"When I receive a new email, translate it and save it to Notion",
		"Wait 10 minutes then remember the result",
		strings.Repeat("lorem ipsum ", 40),
		"🤖💥 \"quoted\" ünïcödé",
	}

	for _, prompt := range prompts {
		plan := Generate(prompt)
		require.NotEmpty(t, plan.Steps, "prompt %q", prompt)
		for i, s := range plan.Steps {
			assert.Equal(t, i+1, s.Order, "prompt %q step %d", prompt, i)
			assert.NotEmpty(t, s.ID)
		}
	}
}

func TestGenerate_EmptyPromptFallsBackToWorkflow(t *testing.T) {
	plan := Generate("")

	assert.False(t, plan.RequiresBrowser)
	assert.Equal(t, []domain.StepKind{domain.StepTrigger, domain.StepAction}, kinds(plan))
	assert.Equal(t, domain.TriggerManual, plan.Steps[0].Details[domain.KeyTriggerType])
	assert.Equal(t, "custom_action", plan.Steps[1].Action)
	assert.Equal(t, "New Automation", plan.Title)
}

func TestGenerate_GenericActionTruncatesPrompt(t *testing.T) {
	prompt := strings.Repeat("ä", 150)
	plan := Generate(prompt)

	require.Len(t, plan.Steps, 2)
	action := plan.Steps[1]
	assert.Equal(t, domain.StepAction, action.Kind)
	assert.Equal(t, 100, utf8.RuneCountInString(action.Description))
	assert.Equal(t, prompt, action.Details["instruction"])
}

func TestGenerate_FormRequiredInputs(t *testing.T) {
	plan := Generate("Fill out the contact form on acme.io")

	assert.Equal(t, domain.CategoryForm, plan.Category)
	assert.Equal(t, domain.RiskMedium, plan.RiskAssessment)

	keys := []string{}
	for _, f := range plan.RequiredInputs {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"username", "password", "full_name", "email"}, keys)

	submit, ok := findStep(plan, "submit_form")
	require.True(t, ok)
	assert.True(t, submit.RequiresConfirmation)

	nav := plan.Steps[0]
	assert.Equal(t, "https://acme.io", nav.Details["url"])
	assert.Equal(t, "acme.io", nav.Details["site"])
}

func TestGenerate_QuotedSearchTermWins(t *testing.T) {
	plan := Generate(`Buy "Sony WH-1000XM5" on eBay`)

	search, ok := findStep(plan, "search")
	require.True(t, ok)
	assert.Equal(t, "Sony WH-1000XM5", search.Details["query"])
	assert.Equal(t, "https://www.ebay.com", plan.Steps[0].Details["url"])
}

func TestGenerate_ScrapingUsesURL(t *testing.T) {
	plan := Generate("Scrape prices from https://example.com/deals.")

	assert.Equal(t, domain.CategoryScraping, plan.Category)
	assert.Equal(t, "https://example.com/deals", plan.Steps[0].Details["url"])
	_, ok := findStep(plan, "extract_data")
	assert.True(t, ok)
	_, hasLogin := findStep(plan, "login")
	assert.False(t, hasLogin)
}

func TestGenerate_EmailTrigger(t *testing.T) {
	plan := Generate("When I receive a new email, translate it and post it to Discord")

	trigger := plan.Steps[0]
	assert.Equal(t, domain.StepTrigger, trigger.Kind)
	assert.Equal(t, domain.TriggerEmail, trigger.Details[domain.KeyTriggerType])

	ai, ok := findStep(plan, "translate")
	require.True(t, ok)
	assert.Equal(t, domain.StepAI, ai.Kind)

	chat, ok := findStep(plan, "send_message")
	require.True(t, ok)
	assert.Equal(t, "discord", chat.Details[domain.KeyProvider])
}

func TestGenerate_ScheduleCron(t *testing.T) {
	tests := []struct {
		prompt string
		cron   string
	}{
		{"Every Friday at 5pm, post a summary to Discord", "0 17 * * 5"},
		{"Every evening send me a digest email", "0 18 * * *"},
		{"Hourly, check the status and notify Slack", "0 * * * *"},
		{"Each weekday at 8:30 am summarize my notes", "30 8 * * 1-5"},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			plan := Generate(tt.prompt)
			require.Equal(t, domain.StepTrigger, plan.Steps[0].Kind)
			assert.Equal(t, tt.cron, plan.Steps[0].Details["cron"])
		})
	}
}

func TestGenerate_RiskIsCategoryLiteral(t *testing.T) {
	// The send steps are medium risk but the workflow category reports low.
	plan := Generate("Every morning, check Gmail and summarize unread emails to Slack")
	assert.Equal(t, domain.RiskLow, plan.RiskAssessment)
	assert.Equal(t, "Under 1 minute", plan.EstimatedTotalDuration)
}

func TestGenerate_DelayAndMemory(t *testing.T) {
	plan := Generate("Wait 10 minutes then remember the result")

	assert.Equal(t, []domain.StepKind{domain.StepTrigger, domain.StepDelay, domain.StepMemory}, kinds(plan))
	delay := plan.Steps[1]
	assert.Equal(t, 10, delay.Details["amount"])
	assert.Equal(t, "minute", delay.Details["unit"])
}

func TestGenerate_IsDeterministicApartFromIDs(t *testing.T) {
	prompt := "Every morning, check Gmail and summarize unread emails to Slack"
	a, b := Generate(prompt), Generate(prompt)

	require.Equal(t, len(a.Steps), len(b.Steps))
	for i := range a.Steps {
		a.Steps[i].ID, b.Steps[i].ID = "", ""
	}
	assert.Equal(t, a, b)
}
