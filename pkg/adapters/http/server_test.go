package http

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/autoplan"
	"github.com/aretw0/autoplan/pkg/domain"
	"github.com/aretw0/autoplan/pkg/intent"
	"github.com/aretw0/autoplan/pkg/templates"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	studio := autoplan.New(
		autoplan.WithTemplateSource(templates.FileSource{Path: "../../templates/testdata/index.json"}),
	)
	return NewHandler(studio, opts...)
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]string](t, w)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, strings.TrimSpace(autoplan.Version), resp["version"])
}

func TestGeneratePlan(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "POST", "/plans", GenerateRequest{Prompt: "Order noise-cancelling headphones on Amazon"})
	require.Equal(t, http.StatusOK, w.Code)
	plan := decode[domain.Plan](t, w)
	assert.Equal(t, domain.CategoryShopping, plan.Category)
	assert.True(t, plan.RequiresBrowser)

	w = do(t, h, "POST", "/plans", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	t.Setenv(intent.EnvMaxPromptSize, "16")
	w = do(t, h, "POST", "/plans", GenerateRequest{Prompt: strings.Repeat("slack ", 10)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "maximum allowed size")
}

func TestCompileAndValidate(t *testing.T) {
	h := newTestHandler(t)

	plan := decode[domain.Plan](t, do(t, h, "POST", "/plans", GenerateRequest{Prompt: "Every morning summarise my unread emails and post to Slack"}))

	w := do(t, h, "POST", "/plans/compile", CompileRequest{Plan: plan, Inputs: map[string]any{"team": "ops"}})
	require.Equal(t, http.StatusOK, w.Code)
	g := decode[domain.Graph](t, w)
	require.Len(t, g.Nodes, len(plan.Steps))
	assert.Equal(t, domain.NodeTrigger, g.Nodes[0].Type)

	report := decode[ValidationReport](t, do(t, h, "POST", "/graphs/validate", g))
	assert.True(t, report.Valid)
	assert.Empty(t, report.Error)

	g.Edges = nil
	report = decode[ValidationReport](t, do(t, h, "POST", "/graphs/validate", g))
	assert.False(t, report.Valid)
	assert.Contains(t, report.Error, "Unreachable node")

	w = do(t, h, "POST", "/graphs/mermaid", g)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph TD"))
}

func TestExternalRoundTrip(t *testing.T) {
	h := newTestHandler(t)

	plan := decode[domain.Plan](t, do(t, h, "POST", "/plans", GenerateRequest{Prompt: "When a webhook arrives, analyse it with AI and send an email"}))
	g := decode[domain.Graph](t, do(t, h, "POST", "/plans/compile", CompileRequest{Plan: plan}))

	w := do(t, h, "POST", "/external/export", ExportRequest{Graph: g, Name: "Webhook triage"})
	require.Equal(t, http.StatusOK, w.Code)
	doc := decode[domain.ExternalDocument](t, w)
	assert.Equal(t, "Webhook triage", doc.Name)
	require.Len(t, doc.Nodes, len(g.Nodes))

	w = do(t, h, "POST", "/external/import", doc)
	require.Equal(t, http.StatusOK, w.Code)
	back := decode[domain.Graph](t, w)
	assert.Len(t, back.Nodes, len(g.Nodes))
	assert.Len(t, back.Edges, len(g.Edges))
}

func TestTemplates(t *testing.T) {
	h := newTestHandler(t)

	t.Run("Search", func(t *testing.T) {
		w := do(t, h, "GET", "/templates?category=devops", nil)
		require.Equal(t, http.StatusOK, w.Code)
		res := decode[templates.SearchResult](t, w)
		assert.Equal(t, 2, res.Total)
		for _, tpl := range res.Templates {
			assert.Equal(t, "devops", tpl.Category)
		}
	})

	t.Run("Search Bad Page", func(t *testing.T) {
		w := do(t, h, "GET", "/templates?page=zero", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Featured", func(t *testing.T) {
		w := do(t, h, "GET", "/templates/featured?limit=2", nil)
		require.Equal(t, http.StatusOK, w.Code)
		res := decode[[]domain.TemplateEntry](t, w)
		require.Len(t, res, 2)
		assert.Equal(t, "wf-4", res[0].ID)
		assert.Equal(t, "wf-2", res[1].ID)
	})

	t.Run("Get", func(t *testing.T) {
		w := do(t, h, "GET", "/templates/wf-3", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "wf-3", decode[domain.TemplateEntry](t, w).ID)

		w = do(t, h, "GET", "/templates/missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Related", func(t *testing.T) {
		w := do(t, h, "GET", "/templates/wf-1/related", nil)
		require.Equal(t, http.StatusOK, w.Code)
		ids := []string{}
		for _, tpl := range decode[[]domain.TemplateEntry](t, w) {
			ids = append(ids, tpl.ID)
		}
		assert.Equal(t, []string{"wf-2", "wf-4", "wf-5", "wf-3"}, ids)
	})

	t.Run("Import", func(t *testing.T) {
		w := do(t, h, "POST", "/templates/wf-1/import", nil)
		require.Equal(t, http.StatusOK, w.Code)
		g := decode[domain.Graph](t, w)
		assert.Len(t, g.Nodes, 3)
		assert.Len(t, g.Edges, 2)
	})

	t.Run("Import Without Payload", func(t *testing.T) {
		w := do(t, h, "POST", "/templates/wf-2/import", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), domain.ErrTemplatePayloadMissing.Error())
	})
}

func TestMemory(t *testing.T) {
	h := newTestHandler(t)
	base := "/agents/agent-1/memory/notes"

	w := do(t, h, "PUT", base+"/design", MemoryWrite{Value: map[string]any{"topic": "Design review"}})
	require.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, h, "PUT", base+"/lunch", MemoryWrite{Value: "sandwich", TTLSeconds: 60})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, "GET", base+"/design", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[map[string]any](t, w)
	assert.Equal(t, map[string]any{"topic": "Design review"}, got["value"])

	w = do(t, h, "GET", base+"?q=design", nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := decode[[]domain.MemoryEntry](t, w)
	require.Len(t, entries, 1)
	assert.Equal(t, "design", entries[0].Key)

	w = do(t, h, "GET", base, nil)
	assert.Len(t, decode[[]domain.MemoryEntry](t, w), 2)

	w = do(t, h, "DELETE", base+"/design", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, h, "GET", base+"/design", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, "GET", "/agents/other/memory/notes?q=", nil)
	assert.Equal(t, "[]\n", w.Body.String())

	w = do(t, h, "PUT", base+"/bad", MemoryWrite{Value: 1, TTLSeconds: -5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMemory_TTLBeyondDurationRange(t *testing.T) {
	h := newTestHandler(t)
	base := "/agents/agent-1/memory/notes"

	w := do(t, h, "PUT", base+"/forever", MemoryWrite{Value: "x", TTLSeconds: math.MaxInt})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ttlSeconds")
	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", base+"/forever", nil).Code)

	w = do(t, h, "PUT", base+"/longest", MemoryWrite{Value: "x", TTLSeconds: int(domain.MaxTTLSeconds)})
	require.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, h, "GET", base+"/longest", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := newTestHandler(t, WithRegistry(reg))

	do(t, h, "GET", "/health", nil)
	do(t, h, "GET", "/templates/missing", nil)
	do(t, h, "GET", "/templates/also-missing", nil)

	n, err := testutil.GatherAndCount(reg, "autoplan_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "one series per route and status")

	w := do(t, h, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `autoplan_http_requests_total{method="GET",route="/templates/{id}",status="404"} 2`)
}

func TestRateLimit(t *testing.T) {
	h := newTestHandler(t, WithRateLimit(0.001, 1))

	assert.Equal(t, http.StatusOK, do(t, h, "GET", "/health", nil).Code)
	w := do(t, h, "GET", "/health", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestCORSPreflight(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "OPTIONS", "/plans", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestOpenAPIDocumentMatchesRoutes(t *testing.T) {
	doc, err := Spec(context.Background())
	require.NoError(t, err)

	router := newServer(autoplan.New()).routes()
	undocumented := map[string]bool{"/metrics": true, "/openapi.yaml": true, "/swagger": true}

	routed := 0
	err = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		route = strings.TrimSuffix(route, "/")
		if undocumented[route] {
			return nil
		}
		routed++
		item := doc.Paths.Find(route)
		if assert.NotNil(t, item, "route %s is not documented", route) {
			assert.NotNil(t, item.GetOperation(method), "%s %s is not documented", method, route)
		}
		return nil
	})
	require.NoError(t, err)

	documented := 0
	for path, item := range doc.Paths.Map() {
		for method := range item.Operations() {
			documented++
			assert.True(t, router.Match(chi.NewRouteContext(), method, path), "%s %s has no handler", method, path)
		}
	}
	assert.Equal(t, documented, routed)
}

func TestOpenAPIServed(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "GET", "/openapi.yaml", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")
}
