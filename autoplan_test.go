package autoplan

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/autoplan/pkg/domain"
	"github.com/aretw0/autoplan/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(Version))
}

func TestStudio_RoundTripThroughExternalDocument(t *testing.T) {
	s := New()

	_, graph := s.Build("When a webhook arrives, analyse it with AI and send an email", map[string]any{"team": "ops"})
	require.NoError(t, s.Validate(graph))

	doc := s.ExportExternal(graph, "")
	assert.Equal(t, "Untitled workflow", doc.Name)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	var decoded domain.ExternalDocument
	require.NoError(t, json.Unmarshal(raw, &decoded))

	back := s.ImportExternal(decoded)
	require.Len(t, back.Nodes, len(graph.Nodes))
	assert.Len(t, back.Edges, len(graph.Edges))
	assert.Equal(t, domain.NodeTrigger, back.Nodes[0].Type)
	assert.NoError(t, s.Validate(back))
}

func TestStudio_TemplatesFromSource(t *testing.T) {
	s := New(WithTemplateSource(templates.FileSource{Path: "pkg/templates/testdata/index.json"}))

	res := s.SearchTemplates(context.Background(), templates.SearchOptions{})
	assert.Equal(t, 6, res.Total)

	g, err := s.ImportTemplate(context.Background(), "wf-1")
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 3)
}

func TestStudio_DefaultMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Memory().Write(ctx, "agent", "notes", "k", "v", time.Hour))
	v, err := s.Memory().Read(ctx, "agent", "notes", "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}
