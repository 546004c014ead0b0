package intent

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aretw0/autoplan/pkg/domain"
)

// browserTarget is what a browser skeleton is parameterised by.
type browserTarget struct {
	url   string
	site  string
	query string
}

func resolveTarget(text string) browserTarget {
	t := browserTarget{url: defaultSite.url, site: defaultSite.name}

	if key, ok := siteWords.first(text); ok {
		for _, s := range knownSites {
			if s.key == key {
				t.url, t.site = s.url, s.name
				break
			}
		}
	}

	if raw := firstURL(text); raw != "" {
		t.url = raw
		if t.site == defaultSite.name {
			if u, err := url.Parse(raw); err == nil && u.Host != "" {
				t.site = strings.TrimPrefix(u.Host, "www.")
			}
		}
	}

	t.query = searchTerm(text)
	return t
}

func firstURL(text string) string {
	match := urlPattern.FindString(text)
	if match == "" {
		match = domainPattern.FindString(text)
		if match == "" {
			return ""
		}
		match = "https://" + match
	}
	return strings.TrimRight(match, ".,;:!?)")
}

// searchTerm returns the first quoted phrase, or the object of the first
// commerce/extraction verb with any trailing "on <site>" removed.
func searchTerm(text string) string {
	if m := quotePattern.FindStringSubmatch(text); m != nil {
		for _, group := range m[1:] {
			if group != "" {
				return strings.TrimSpace(group)
			}
		}
	}

	subject := text
	if m := subjectPattern.FindStringSubmatch(text); m != nil {
		subject = m[1]
	}
	subject = clauseBreak.ReplaceAllString(subject, "")
	subject = trailingSite.ReplaceAllString(subject, "")
	subject = strings.Trim(subject, " .!?")
	if subject == "" {
		return text
	}
	return subject
}

func buildBrowserPlan(text string) domain.Plan {
	target := resolveTarget(text)

	var (
		steps    stepList
		category string
	)
	switch {
	case shoppingWords.match(text):
		category = domain.CategoryShopping
		shoppingSteps(&steps, target)
	case crawlWords.match(text) || scrapeWords.match(text):
		category = domain.CategoryScraping
		scrapingSteps(&steps, target)
	case formWords.match(text):
		category = domain.CategoryForm
		formSteps(&steps, target)
	default:
		category = domain.CategoryBrowser
		genericBrowserSteps(&steps, target, text)
	}

	plan := domain.Plan{
		Steps:           steps.steps,
		RequiresBrowser: true,
	}
	applyProfile(&plan, category)
	return plan
}

func navigateStep(t browserTarget) domain.PlanStep {
	return domain.PlanStep{
		Kind:              domain.StepBrowserTask,
		Action:            "navigate",
		Description:       fmt.Sprintf("Open %s", t.site),
		Details:           map[string]any{"url": t.url, "site": t.site},
		EstimatedDuration: "5 seconds",
		RiskLevel:         domain.RiskLow,
	}
}

func loginStep(t browserTarget) domain.PlanStep {
	return domain.PlanStep{
		Kind:        domain.StepBrowserTask,
		Action:      "login",
		Description: fmt.Sprintf("Sign in to your %s account", t.site),
		Details:     map[string]any{"site": t.site, "url": t.url},
		InputFields: []domain.InputField{
			{Key: "username", Label: "Username or email", Type: domain.InputText, Placeholder: "you@example.com", Required: true},
			{Key: "password", Label: "Password", Type: domain.InputPassword, Required: true},
		},
		EstimatedDuration: "10 seconds",
		RiskLevel:         domain.RiskMedium,
	}
}

func screenshotStep(description string) domain.PlanStep {
	return domain.PlanStep{
		Kind:              domain.StepBrowserTask,
		Action:            "screenshot",
		Description:       description,
		Details:           map[string]any{"fullPage": true},
		EstimatedDuration: "2 seconds",
		RiskLevel:         domain.RiskLow,
	}
}

func memoryWriteStep(key, description string) domain.PlanStep {
	return domain.PlanStep{
		Kind:        domain.StepMemory,
		Action:      "write",
		Description: description,
		Details: map[string]any{
			"operation": "write",
			"scope":     "agent",
			"key":       key,
			"value":     "{{previous.output}}",
		},
		EstimatedDuration: "1 second",
		RiskLevel:         domain.RiskLow,
	}
}

func shoppingSteps(steps *stepList, t browserTarget) {
	steps.add(navigateStep(t))
	steps.add(loginStep(t))
	steps.add(domain.PlanStep{
		Kind:              domain.StepBrowserTask,
		Action:            "search",
		Description:       fmt.Sprintf("Search for %q", t.query),
		Details:           map[string]any{"query": t.query, "site": t.site},
		EstimatedDuration: "10 seconds",
	})
	steps.add(domain.PlanStep{
		Kind:        domain.StepBrowserTask,
		Action:      "select_product",
		Description: "Pick the best-matching result",
		Details:     map[string]any{"query": t.query, "criteria": "best rating and price"},
		InputFields: []domain.InputField{
			{Key: "max_price", Label: "Maximum price", Type: domain.InputNumber, Placeholder: "100"},
		},
		EstimatedDuration: "15 seconds",
	})
	steps.add(domain.PlanStep{
		Kind:              domain.StepBrowserTask,
		Action:            "add_to_cart",
		Description:       "Add the selected item to the cart",
		Details:           map[string]any{"quantity": 1},
		EstimatedDuration: "5 seconds",
		RiskLevel:         domain.RiskMedium,
	})
	steps.add(domain.PlanStep{
		Kind:                 domain.StepBrowserTask,
		Action:               "checkout",
		Description:          "Place the order with your saved payment method",
		Details:              map[string]any{"paymentMethod": "saved", "site": t.site},
		RequiresConfirmation: true,
		EstimatedDuration:    "30 seconds",
		RiskLevel:            domain.RiskHigh,
	})
	steps.add(screenshotStep("Capture the order confirmation"))
	steps.add(memoryWriteStep("last_order", "Save the order details to memory"))
}

func scrapingSteps(steps *stepList, t browserTarget) {
	steps.add(navigateStep(t))
	steps.add(domain.PlanStep{
		Kind:        domain.StepBrowserTask,
		Action:      "extract_data",
		Description: fmt.Sprintf("Extract %s", t.query),
		Details: map[string]any{
			"target":    t.query,
			"selectors": "auto",
			"format":    "json",
		},
		EstimatedDuration: "20 seconds",
	})
	steps.add(screenshotStep("Capture the page for reference"))
	steps.add(memoryWriteStep("scraped_data", "Save the extracted data to memory"))
}

func formSteps(steps *stepList, t browserTarget) {
	steps.add(navigateStep(t))
	steps.add(loginStep(t))
	steps.add(domain.PlanStep{
		Kind:        domain.StepBrowserTask,
		Action:      "fill_form",
		Description: "Fill in the form fields",
		Details:     map[string]any{"site": t.site},
		InputFields: []domain.InputField{
			{Key: "full_name", Label: "Full name", Type: domain.InputText, Placeholder: "Jane Doe", Required: true},
			{Key: "email", Label: "Email address", Type: domain.InputEmail, Placeholder: "you@example.com", Required: true},
			{Key: "message", Label: "Additional notes", Type: domain.InputTextarea},
		},
		EstimatedDuration: "30 seconds",
	})
	steps.add(domain.PlanStep{
		Kind:                 domain.StepBrowserTask,
		Action:               "submit_form",
		Description:          "Submit the form after your review",
		Details:              map[string]any{"site": t.site},
		RequiresConfirmation: true,
		EstimatedDuration:    "5 seconds",
		RiskLevel:            domain.RiskMedium,
	})
	steps.add(screenshotStep("Capture the submission result"))
	steps.add(memoryWriteStep("form_submission", "Save the submission details to memory"))
}

func genericBrowserSteps(steps *stepList, t browserTarget, text string) {
	steps.add(navigateStep(t))
	steps.add(domain.PlanStep{
		Kind:              domain.StepBrowserTask,
		Action:            "perform_task",
		Description:       truncate(text, maxEchoLength),
		Details:           map[string]any{"instruction": text, "site": t.site},
		EstimatedDuration: "30 seconds",
		RiskLevel:         domain.RiskMedium,
	})
	steps.add(screenshotStep("Capture the final page"))
	steps.add(memoryWriteStep("browser_session", "Save the session outcome to memory"))
}
