package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/autoplan/pkg/domain"
)

var riskBadge = map[domain.RiskLevel]string{
	domain.RiskLow:    "🟢 low",
	domain.RiskMedium: "🟡 medium",
	domain.RiskHigh:   "🔴 high",
}

// PlanMarkdown formats a plan for review: header, steps with their risk and
// confirmation markers, required inputs, then warnings.
func PlanMarkdown(plan domain.Plan) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", plan.Title)
	if plan.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", plan.Description)
	}
	fmt.Fprintf(&sb, "**Category:** %s · **Risk:** %s · **Estimated time:** %s",
		plan.Category, badge(plan.RiskAssessment), plan.EstimatedTotalDuration)
	if plan.RequiresBrowser {
		sb.WriteString(" · 🌐 browser")
	}
	sb.WriteString("\n\n## Steps\n\n")

	for _, s := range plan.Steps {
		fmt.Fprintf(&sb, "%d. **%s** `%s` %s", s.Order, s.Action, s.Kind, s.Description)
		if s.RiskLevel != "" && s.RiskLevel != domain.RiskLow {
			fmt.Fprintf(&sb, " (%s)", badge(s.RiskLevel))
		}
		if s.RequiresConfirmation {
			sb.WriteString(" ✋ needs confirmation")
		}
		sb.WriteString("\n")
	}

	if len(plan.RequiredInputs) > 0 {
		sb.WriteString("\n## Required inputs\n\n| Key | Label | Type |\n|---|---|---|\n")
		for _, in := range plan.RequiredInputs {
			fmt.Fprintf(&sb, "| `%s` | %s | %s |\n", in.Key, in.Label, in.Type)
		}
	}

	if len(plan.Warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		for _, w := range plan.Warnings {
			fmt.Fprintf(&sb, "> ⚠️ %s\n>\n", w)
		}
	}
	return sb.String()
}

func badge(r domain.RiskLevel) string {
	if b, ok := riskBadge[r]; ok {
		return b
	}
	return string(r)
}
