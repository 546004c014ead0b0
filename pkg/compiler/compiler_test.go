package compiler

import (
	"testing"

	"github.com/aretw0/autoplan/pkg/domain"
	"github.com/aretw0/autoplan/pkg/intent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actionStep(id string) domain.PlanStep {
	return domain.PlanStep{ID: id, Kind: domain.StepAction, Action: "do_" + id, Description: "Do " + id}
}

func triggerCount(g domain.Graph) int {
	n := 0
	for _, node := range g.Nodes {
		if node.Type == domain.NodeTrigger {
			n++
		}
	}
	return n
}

func TestCompile_SynthesizesTriggerAndChains(t *testing.T) {
	plan := domain.Plan{Steps: []domain.PlanStep{actionStep("a"), actionStep("b"), actionStep("c")}}

	g := Compile(plan, nil)

	require.Len(t, g.Nodes, 4)
	require.Len(t, g.Edges, 3)
	assert.Equal(t, domain.NodeTrigger, g.Nodes[0].Type)
	assert.Equal(t, domain.TriggerManual, g.Nodes[0].Config[domain.KeyTriggerType])

	for i, e := range g.Edges {
		assert.Equal(t, g.Nodes[i].ID, e.Source)
		assert.Equal(t, g.Nodes[i+1].ID, e.Target)
	}

	for i, n := range g.Nodes {
		assert.Equal(t, GridX, n.Position.X)
		assert.Equal(t, GridTop+float64(i)*GridSpacing, n.Position.Y)
	}
}

func TestCompile_ZeroSteps(t *testing.T) {
	g := Compile(domain.Plan{}, nil)

	require.Len(t, g.Nodes, 1)
	assert.Equal(t, domain.NodeTrigger, g.Nodes[0].Type)
	assert.Empty(t, g.Edges)
}

func TestCompile_HoistsFirstTrigger(t *testing.T) {
	plan := domain.Plan{Steps: []domain.PlanStep{
		actionStep("a"),
		{ID: "t1", Kind: domain.StepTrigger, Action: "schedule", Details: map[string]any{domain.KeyTriggerType: "schedule"}},
		actionStep("b"),
		{ID: "t2", Kind: domain.StepTrigger, Action: "manual"},
	}}

	g := Compile(plan, nil)

	ids := []string{}
	for _, n := range g.Nodes {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"t1", "a", "b", "t2"}, ids)
	assert.Equal(t, 1, triggerCount(g))
	assert.Equal(t, domain.NodeAction, g.Nodes[3].Type)
	assert.Len(t, g.Edges, 3)
}

func TestCompile_OverlaysDeclaredInputsOnly(t *testing.T) {
	plan := domain.Plan{Steps: []domain.PlanStep{{
		ID:      "mail",
		Kind:    domain.StepApp,
		Action:  "send_email",
		Details: map[string]any{"subject": "hi", "recipient": "default@example.com"},
		InputFields: []domain.InputField{
			{Key: "recipient", Required: true},
		},
	}}}
	inputs := map[string]any{"recipient": "me@example.com", "password": "secret"}

	g := Compile(plan, inputs)

	require.Len(t, g.Nodes, 2)
	cfg := g.Nodes[1].Config
	assert.Equal(t, "me@example.com", cfg["recipient"])
	assert.Equal(t, "hi", cfg["subject"])
	assert.NotContains(t, cfg, "password")

	// Details are copied, not aliased.
	assert.Equal(t, "default@example.com", plan.Steps[0].Details["recipient"])
}

func TestCompile_UnknownKindBecomesAction(t *testing.T) {
	plan := domain.Plan{Steps: []domain.PlanStep{{ID: "x", Kind: "teleport", Action: "beam"}}}

	g := Compile(plan, nil)

	require.Len(t, g.Nodes, 2)
	assert.Equal(t, domain.NodeAction, g.Nodes[1].Type)
	assert.Equal(t, "beam", g.Nodes[1].Label)
}

func TestCompile_MissingStepIDs(t *testing.T) {
	plan := domain.Plan{Steps: []domain.PlanStep{{Kind: domain.StepAction}, {Kind: domain.StepAI}}}

	g := Compile(plan, nil)

	require.Len(t, g.Nodes, 3)
	assert.Equal(t, "node-1", g.Nodes[1].ID)
	assert.Equal(t, "node-2", g.Nodes[2].ID)
}

func TestCompile_GeneratedPlansHaveOneLeadingTrigger(t *testing.T) {
	prompts := []string{
		"",
		"Order noise-cancelling headphones on Amazon",
		"Every morning, check Gmail and summarize unread emails to Slack",
		"Fill out the contact form on acme.io",
		"do something useful",
	}
	for _, prompt := range prompts {
		plan := intent.Generate(prompt)
		g := Compile(plan, map[string]any{})

		assert.Equal(t, 1, triggerCount(g), "prompt %q", prompt)
		assert.Equal(t, domain.NodeTrigger, g.Nodes[0].Type, "prompt %q", prompt)
		assert.Len(t, g.Edges, len(g.Nodes)-1, "prompt %q", prompt)
	}
}

func TestParsePlan(t *testing.T) {
	data := []byte(`{
		"title": "edited",
		"steps": [
			{"id": "a", "order": 7, "type": "action", "action": "x"},
			{"id": "b", "order": 2, "type": "app", "action": "y",
			 "inputFields": [{"key": "channel", "required": true}]}
		]
	}`)

	plan, err := ParsePlan(data)
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Steps[0].Order)
	assert.Equal(t, 2, plan.Steps[1].Order)
	require.Len(t, plan.RequiredInputs, 1)
	assert.Equal(t, "channel", plan.RequiredInputs[0].Key)

	_, err = ParsePlan([]byte("{"))
	assert.Error(t, err)
}

func TestParseGraph_DefaultsSlices(t *testing.T) {
	g, err := ParseGraph([]byte(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, g.Nodes)
	assert.NotNil(t, g.Edges)
}
