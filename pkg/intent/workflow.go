package intent

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/autoplan/pkg/domain"
)

func buildWorkflowPlan(text string) domain.Plan {
	var steps stepList

	trigger := triggerStep(text)
	steps.add(trigger)

	if d, ok := delayStep(text); ok {
		steps.add(d)
	}
	if ai, ok := analysisStep(text); ok {
		steps.add(ai)
	}
	apps := appSteps(text)
	for _, app := range apps {
		steps.add(app)
	}
	if memoryWords.match(text) {
		steps.add(memoryWriteStep("workflow_result", "Remember the result for later runs"))
	}

	if steps.len() == 1 {
		steps.add(domain.PlanStep{
			Kind:              domain.StepAction,
			Action:            "custom_action",
			Description:       truncate(text, maxEchoLength),
			Details:           map[string]any{"instruction": text},
			EstimatedDuration: "Varies",
			RiskLevel:         domain.RiskLow,
		})
	}

	plan := domain.Plan{Steps: steps.steps}
	applyProfile(&plan, domain.CategoryWorkflow)
	if trigger.Details[domain.KeyTriggerType] == domain.TriggerSchedule {
		plan.Warnings = append(plan.Warnings, "Scheduled workflows run unattended; review the plan before activating it.")
	}
	if len(apps) > 0 {
		plan.Warnings = append(plan.Warnings, "Connect the required app accounts before running this workflow.")
	}
	return plan
}

// triggerStep picks schedule, then email, then manual.
func triggerStep(text string) domain.PlanStep {
	switch {
	case scheduleWords.match(text) || clockPattern.MatchString(text):
		cron, label := scheduleFor(text)
		return domain.PlanStep{
			Kind:        domain.StepTrigger,
			Action:      "schedule",
			Description: fmt.Sprintf("Run %s", label),
			Details: map[string]any{
				domain.KeyTriggerType: domain.TriggerSchedule,
				"cron":                cron,
				"timezone":            "UTC",
			},
			EstimatedDuration: "Instant",
		}
	case emailTriggerWords.match(text):
		provider := mailProvider(text)
		return domain.PlanStep{
			Kind:        domain.StepTrigger,
			Action:      "email",
			Description: "Start when a new email arrives",
			Details: map[string]any{
				domain.KeyTriggerType: domain.TriggerEmail,
				domain.KeyProvider:    provider,
				"mailbox":             "INBOX",
			},
			EstimatedDuration: "Instant",
		}
	default:
		return domain.PlanStep{
			Kind:              domain.StepTrigger,
			Action:            "manual",
			Description:       "Start manually",
			Details:           map[string]any{domain.KeyTriggerType: domain.TriggerManual},
			EstimatedDuration: "Instant",
		}
	}
}

// scheduleFor derives a cron expression and a human label from temporal words.
func scheduleFor(text string) (string, string) {
	lower := strings.ToLower(text)

	hour, minute := 9, 0
	explicit := false
	if m := clockPattern.FindStringSubmatch(lower); m != nil {
		h, _ := strconv.Atoi(m[1])
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if m[3] == "pm" && h < 12 {
			h += 12
		}
		if m[3] == "am" && h == 12 {
			h = 0
		}
		hour, explicit = h%24, true
	}

	if !explicit {
		switch {
		case eveningWords.match(lower):
			hour = 18
		case nightWords.match(lower):
			hour = 22
		}
	}
	at := fmt.Sprintf("%02d:%02d", hour, minute)

	switch {
	case hourlyWords.match(lower):
		return "0 * * * *", "every hour"
	case monthlyWords.match(lower):
		return fmt.Sprintf("%d %d 1 * *", minute, hour), "on the first day of every month at " + at
	case workdayWords.match(lower):
		return fmt.Sprintf("%d %d * * 1-5", minute, hour), "every weekday at " + at
	}
	if day, ok := dayWords.first(lower); ok {
		for i, name := range weekdays {
			if name == day {
				return fmt.Sprintf("%d %d * * %d", minute, hour, i), fmt.Sprintf("every %s at %s", capitalize(day), at)
			}
		}
	}
	if weeklyWords.match(lower) {
		return fmt.Sprintf("%d %d * * 1", minute, hour), "every Monday at " + at
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), "every day at " + at
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func delayStep(text string) (domain.PlanStep, bool) {
	amount, unit := 5, "minute"
	if m := delayPattern.FindStringSubmatch(text); m != nil {
		amount, _ = strconv.Atoi(m[1])
		unit = strings.ToLower(m[2])
	} else if !delayWords.match(text) {
		return domain.PlanStep{}, false
	}

	label := fmt.Sprintf("%d %s", amount, unit)
	if amount != 1 {
		label += "s"
	}
	return domain.PlanStep{
		Kind:              domain.StepDelay,
		Action:            "wait",
		Description:       "Wait " + label,
		Details:           map[string]any{"amount": amount, "unit": unit},
		EstimatedDuration: label,
		RiskLevel:         domain.RiskLow,
	}, true
}

var analysisDescriptions = map[string]string{
	"summarize": "Summarize the content with AI",
	"translate": "Translate the content with AI",
	"classify":  "Classify the content with AI",
	"sentiment": "Score the sentiment with AI",
	"extract":   "Extract the key fields with AI",
	"generate":  "Draft a response with AI",
	"analyze":   "Analyze the content with AI",
}

func analysisStep(text string) (domain.PlanStep, bool) {
	for _, op := range analysisOps {
		if !op.words.match(text) {
			continue
		}
		return domain.PlanStep{
			Kind:        domain.StepAI,
			Action:      op.operation,
			Description: analysisDescriptions[op.operation],
			Details: map[string]any{
				"operation": op.operation,
				"model":     "default",
				"prompt":    truncate(text, maxEchoLength),
			},
			EstimatedDuration: "10-20 seconds",
			RiskLevel:         domain.RiskLow,
		}, true
	}
	return domain.PlanStep{}, false
}

func mailProvider(text string) string {
	switch w, _ := mailWords.first(text); w {
	case "gmail", "outlook":
		return w
	default:
		return "email"
	}
}

var providerNames = map[string]string{
	"gmail":           "Gmail",
	"outlook":         "Outlook",
	"email":           "email",
	"slack":           "Slack",
	"discord":         "Discord",
	"microsoft teams": "Microsoft Teams",
	"teams":           "Microsoft Teams",
	"telegram":        "Telegram",
	"mattermost":      "Mattermost",
	"whatsapp":        "WhatsApp",
	"chat":            "chat",
	"notion":          "Notion",
	"evernote":        "Evernote",
	"obsidian":        "Obsidian",
	"onenote":         "OneNote",
	"google docs":     "Google Docs",
	"notes":           "your notes",
	"note":            "your notes",
}

// appSteps returns one step per matching integration family: mail, chat, notes.
func appSteps(text string) []domain.PlanStep {
	var steps []domain.PlanStep

	if mailWords.match(text) {
		provider := mailProvider(text)
		steps = append(steps, domain.PlanStep{
			Kind:        domain.StepApp,
			Action:      "send_email",
			Description: "Send the result by email via " + providerNames[provider],
			Details: map[string]any{
				domain.KeyIntegration: "email",
				domain.KeyProvider:    provider,
				"operation":           "send",
				"subject":             "Automation update",
			},
			InputFields: []domain.InputField{
				{Key: "recipient", Label: "Recipient email", Type: domain.InputEmail, Placeholder: "name@example.com", Required: true},
			},
			EstimatedDuration: "5 seconds",
			RiskLevel:         domain.RiskMedium,
		})
	}

	if w, ok := chatWords.first(text); ok {
		provider := w
		if provider == "microsoft teams" {
			provider = "teams"
		}
		steps = append(steps, domain.PlanStep{
			Kind:        domain.StepApp,
			Action:      "send_message",
			Description: "Post a message to " + providerNames[w],
			Details: map[string]any{
				domain.KeyIntegration: "chat",
				domain.KeyProvider:    provider,
				"operation":           "post",
			},
			InputFields: []domain.InputField{
				{Key: "channel", Label: "Channel", Type: domain.InputText, Placeholder: "#general", Required: true},
			},
			EstimatedDuration: "5 seconds",
			RiskLevel:         domain.RiskMedium,
		})
	}

	if w, ok := notesWords.first(text); ok {
		provider := w
		if provider == "notes" || provider == "note" {
			provider = "notion"
		}
		steps = append(steps, domain.PlanStep{
			Kind:        domain.StepApp,
			Action:      "create_note",
			Description: "Save a note in " + providerNames[w],
			Details: map[string]any{
				domain.KeyIntegration: "notes",
				domain.KeyProvider:    provider,
				"operation":           "create",
			},
			InputFields: []domain.InputField{
				{Key: "notes_destination", Label: "Page or database", Type: domain.InputText, Placeholder: "Team wiki"},
			},
			EstimatedDuration: "5 seconds",
			RiskLevel:         domain.RiskLow,
		})
	}

	return steps
}
