package domain

import "fmt"

// The review operations below keep Order contiguous (1..N) and RequiredInputs
// in sync with the step list. RiskAssessment and EstimatedTotalDuration are
// category literals and are left untouched.

func (p *Plan) indexOf(id string) int {
	for i, s := range p.Steps {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (p *Plan) reindex() {
	for i := range p.Steps {
		p.Steps[i].Order = i + 1
	}
	p.RequiredInputs = CollectRequiredInputs(p.Steps)
}

// Renumber restores contiguous step orders and recomputes RequiredInputs.
func (p *Plan) Renumber() {
	p.reindex()
}

// UpdateStep applies fn to the step with the given ID.
// ID and Order changes made by fn are discarded.
func (p *Plan) UpdateStep(id string, fn func(*PlanStep)) error {
	i := p.indexOf(id)
	if i < 0 {
		return fmt.Errorf("update %s: %w", id, ErrStepNotFound)
	}
	step := p.Steps[i]
	fn(&step)
	step.ID = id
	p.Steps[i] = step
	p.reindex()
	return nil
}

// AddStep inserts step after the step identified by afterID.
// An empty or unknown afterID appends to the end. A missing ID is generated.
func (p *Plan) AddStep(step PlanStep, afterID string) PlanStep {
	pos := len(p.Steps)
	if i := p.indexOf(afterID); afterID != "" && i >= 0 {
		pos = i + 1
	}
	if step.ID == "" {
		step.ID = NewStepID(pos + 1)
	}
	if step.RiskLevel == "" {
		step.RiskLevel = RiskLow
	}

	p.Steps = append(p.Steps, PlanStep{})
	copy(p.Steps[pos+1:], p.Steps[pos:])
	p.Steps[pos] = step
	p.reindex()
	return p.Steps[pos]
}

// DeleteStep removes the step with the given ID.
func (p *Plan) DeleteStep(id string) error {
	i := p.indexOf(id)
	if i < 0 {
		return fmt.Errorf("delete %s: %w", id, ErrStepNotFound)
	}
	p.Steps = append(p.Steps[:i], p.Steps[i+1:]...)
	p.reindex()
	return nil
}

// MoveStep moves the step with the given ID to a zero-based position.
// Positions past either end are clamped.
func (p *Plan) MoveStep(id string, to int) error {
	from := p.indexOf(id)
	if from < 0 {
		return fmt.Errorf("move %s: %w", id, ErrStepNotFound)
	}
	if to < 0 {
		to = 0
	}
	if to >= len(p.Steps) {
		to = len(p.Steps) - 1
	}

	step := p.Steps[from]
	p.Steps = append(p.Steps[:from], p.Steps[from+1:]...)
	p.Steps = append(p.Steps, PlanStep{})
	copy(p.Steps[to+1:], p.Steps[to:])
	p.Steps[to] = step
	p.reindex()
	return nil
}

// ToggleConfirmation flips the RequiresConfirmation flag of a step.
func (p *Plan) ToggleConfirmation(id string) error {
	i := p.indexOf(id)
	if i < 0 {
		return fmt.Errorf("toggle %s: %w", id, ErrStepNotFound)
	}
	p.Steps[i].RequiresConfirmation = !p.Steps[i].RequiresConfirmation
	return nil
}
