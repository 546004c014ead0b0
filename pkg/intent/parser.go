package intent

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/autoplan/internal/logging"
	"github.com/aretw0/autoplan/pkg/domain"
)

const (
	maxEchoLength  = 100
	maxTitleLength = 60
)

// Parser generates plans from prompts.
// It is stateless apart from its logger and safe for concurrent use.
type Parser struct {
	logger *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used to report classification decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = New()

// Generate builds a plan for prompt using a parser with no logging.
func Generate(prompt string) domain.Plan {
	return defaultParser.Generate(prompt)
}

// Generate builds a plan for prompt. It never fails.
func (p *Parser) Generate(prompt string) domain.Plan {
	text := strings.TrimSpace(prompt)

	var plan domain.Plan
	if isBrowserPrompt(text) {
		plan = buildBrowserPlan(text)
	} else {
		plan = buildWorkflowPlan(text)
	}

	plan.Title = titleFor(text)
	plan.Description = text
	if plan.Description == "" {
		plan.Description = "Automation created from an empty request"
	}
	plan.Renumber()

	p.logger.Debug("plan generated",
		"category", plan.Category,
		"steps", len(plan.Steps),
		"browser", plan.RequiresBrowser,
		"risk", plan.RiskAssessment,
	)
	return plan
}

func isBrowserPrompt(text string) bool {
	if text == "" {
		return false
	}
	return navigationWords.match(text) ||
		commerceWords.match(text) ||
		formWords.match(text) ||
		crawlWords.match(text) ||
		siteWords.match(text) ||
		urlPattern.MatchString(text) ||
		domainPattern.MatchString(text)
}

// categoryProfile holds the literals reported for a whole category.
// They are not derived from the steps.
type categoryProfile struct {
	risk     domain.RiskLevel
	duration string
	warnings []string
}

var profiles = map[string]categoryProfile{
	domain.CategoryShopping: {
		risk:     domain.RiskHigh,
		duration: "3-5 minutes",
		warnings: []string{
			"This plan completes a purchase with the payment method stored on your account.",
			"You will be asked to confirm before the order is placed.",
			"Your credentials are used only for this run and are not saved in the plan.",
		},
	},
	domain.CategoryScraping: {
		risk:     domain.RiskLow,
		duration: "1-2 minutes",
		warnings: []string{
			"Check the site's terms of service before extracting data; aggressive scraping may get you blocked.",
		},
	},
	domain.CategoryForm: {
		risk:     domain.RiskMedium,
		duration: "2-4 minutes",
		warnings: []string{
			"The automation pauses for your review before the form is submitted.",
			"Your credentials are used only for this run and are not saved in the plan.",
		},
	},
	domain.CategoryBrowser: {
		risk:     domain.RiskMedium,
		duration: "1-3 minutes",
		warnings: []string{
			"Browser automations can break when the target site changes its layout.",
		},
	},
	domain.CategoryWorkflow: {
		risk:     domain.RiskLow,
		duration: "Under 1 minute",
	},
}

func applyProfile(plan *domain.Plan, category string) {
	profile := profiles[category]
	plan.Category = category
	plan.RiskAssessment = profile.risk
	plan.EstimatedTotalDuration = profile.duration
	plan.Warnings = append(plan.Warnings, profile.warnings...)
}

// stepList accumulates steps in order.
type stepList struct {
	steps []domain.PlanStep
}

func (l *stepList) add(step domain.PlanStep) {
	step.Order = len(l.steps) + 1
	step.ID = domain.NewStepID(step.Order)
	if step.Details == nil {
		step.Details = map[string]any{}
	}
	if step.RiskLevel == "" {
		step.RiskLevel = domain.RiskLow
	}
	for _, f := range step.InputFields {
		if f.Required {
			step.RequiresInput = true
			break
		}
	}
	l.steps = append(l.steps, step)
}

func (l *stepList) len() int {
	return len(l.steps)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func titleFor(text string) string {
	if text == "" {
		return "New Automation"
	}
	title := truncate(text, maxTitleLength)
	if title != text {
		title = strings.TrimSpace(title) + "..."
	}
	r, size := utf8.DecodeRuneInString(title)
	return string(unicode.ToUpper(r)) + title[size:]
}
