package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// StepKind classifies a plan step. It mirrors NodeKind minus filter.
type StepKind string

const (
	StepBrowserTask StepKind = "browser-task"
	StepAI          StepKind = "ai"
	StepApp         StepKind = "app"
	StepAction      StepKind = "action"
	StepTrigger     StepKind = "trigger"
	StepMemory      StepKind = "memory"
	StepCondition   StepKind = "condition"
	StepDelay       StepKind = "delay"
)

// RiskLevel grades how much damage a step (or plan) can do if it goes wrong.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// InputType is the widget a host should render for an InputField.
type InputType string

const (
	InputText     InputType = "text"
	InputEmail    InputType = "email"
	InputPassword InputType = "password"
	InputURL      InputType = "url"
	InputNumber   InputType = "number"
	InputSelect   InputType = "select"
	InputTextarea InputType = "textarea"
)

// InputField declares a value the user must (or may) provide before a step can run.
type InputField struct {
	Key         string    `json:"key" yaml:"key"`
	Label       string    `json:"label" yaml:"label"`
	Type        InputType `json:"type" yaml:"type"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    bool      `json:"required" yaml:"required"`
	Options     []string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// PlanStep is one typed unit of work within a Plan.
type PlanStep struct {
	ID                   string         `json:"id" yaml:"id"`
	Order                int            `json:"order" yaml:"order"`
	Kind                 StepKind       `json:"type" yaml:"type"`
	Action               string         `json:"action" yaml:"action"`
	Description          string         `json:"description" yaml:"description"`
	Details              map[string]any `json:"details" yaml:"details"`
	RequiresConfirmation bool           `json:"requiresConfirmation" yaml:"requiresConfirmation"`
	RequiresInput        bool           `json:"requiresInput" yaml:"requiresInput"`
	InputFields          []InputField   `json:"inputFields,omitempty" yaml:"inputFields,omitempty"`
	EstimatedDuration    string         `json:"estimatedDuration" yaml:"estimatedDuration"`
	RiskLevel            RiskLevel      `json:"riskLevel" yaml:"riskLevel"`
}

// Plan is the ordered, user-editable list of steps synthesized from a prompt.
type Plan struct {
	Title                  string       `json:"title" yaml:"title"`
	Description            string       `json:"description" yaml:"description"`
	Category               string       `json:"category" yaml:"category"`
	Steps                  []PlanStep   `json:"steps" yaml:"steps"`
	RequiredInputs         []InputField `json:"requiredInputs" yaml:"requiredInputs"`
	Warnings               []string     `json:"warnings" yaml:"warnings"`
	EstimatedTotalDuration string       `json:"estimatedTotalDuration" yaml:"estimatedTotalDuration"`
	RequiresBrowser        bool         `json:"requiresBrowser" yaml:"requiresBrowser"`
	RiskAssessment         RiskLevel    `json:"riskAssessment" yaml:"riskAssessment"`
}

// NewStepID returns a fresh step identifier. The suffix is random.
func NewStepID(order int) string {
	return fmt.Sprintf("step-%d-%s", order, uuid.NewString()[:8])
}

// CollectRequiredInputs gathers the required InputFields of every step,
// deduplicated by key in first-seen order.
func CollectRequiredInputs(steps []PlanStep) []InputField {
	seen := make(map[string]bool)
	inputs := make([]InputField, 0)
	for _, step := range steps {
		for _, field := range step.InputFields {
			if !field.Required || seen[field.Key] {
				continue
			}
			seen[field.Key] = true
			inputs = append(inputs, field)
		}
	}
	return inputs
}

// HasTrigger reports whether any step is a trigger.
func (p *Plan) HasTrigger() bool {
	for _, s := range p.Steps {
		if s.Kind == StepTrigger {
			return true
		}
	}
	return false
}
