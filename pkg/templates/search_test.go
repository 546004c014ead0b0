package templates

import (
	"math"
	"testing"

	"github.com/aretw0/autoplan/pkg/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_EmptyOptionsReturnsCorpus(t *testing.T) {
	corpus := loadFixture(t).Workflows

	res := Search(corpus, SearchOptions{})

	assert.Equal(t, len(corpus), res.Total)
	sum := 0
	for _, c := range res.Categories {
		sum += c.Count
	}
	assert.Equal(t, res.Total, sum)
	assert.Equal(t, "marketing", res.Categories[0].Name)
	assert.Equal(t, 3, res.Categories[0].Count)
}

func TestSearch_Filters(t *testing.T) {
	corpus := loadFixture(t).Workflows

	tests := []struct {
		name string
		opts SearchOptions
		want []string
	}{
		{"category", SearchOptions{Category: "marketing"}, []string{"wf-1", "wf-2", "wf-5"}},
		{"terms are ANDed", SearchOptions{Query: "Slack summarize"}, []string{"wf-1"}},
		{"terms match services", SearchOptions{Query: "pagerduty"}, []string{"wf-4"}},
		{"service substring", SearchOptions{Service: "git"}, []string{"wf-3", "wf-4"}},
		{"query then complexity", SearchOptions{Query: "email", Complexity: "low"}, []string{"wf-5"}},
		{"trigger type", SearchOptions{TriggerType: "webhook"}, []string{"wf-3", "wf-4"}},
		{"no match", SearchOptions{Query: "kubernetes"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Search(corpus, tt.opts)
			assert.Equal(t, tt.want, ids(res.Templates))
			assert.Equal(t, len(tt.want), res.Total)
		})
	}
}

func TestSearch_CategoryFilterOnlyReturnsCategory(t *testing.T) {
	corpus := loadFixture(t).Workflows
	for _, cat := range []string{"marketing", "devops", "sales", "unknown"} {
		res := Search(corpus, SearchOptions{Category: cat, PageSize: 100})
		for _, tpl := range res.Templates {
			assert.Equal(t, cat, tpl.Category)
		}
	}
}

func TestSearch_UncategorizedIsOnlyAFacet(t *testing.T) {
	corpus := []domain.TemplateEntry{{ID: "a", Category: ""}, {ID: "b", Category: Uncategorized}}

	res := Search(corpus, SearchOptions{Category: Uncategorized})
	assert.Equal(t, []string{"b"}, ids(res.Templates))

	all := Search(corpus, SearchOptions{})
	assert.Equal(t, []domain.CategoryCount{{Name: Uncategorized, Count: 2}}, all.Categories)
}

func TestSearch_Facets(t *testing.T) {
	res := Search(loadFixture(t).Workflows, SearchOptions{Query: "slack"})

	require.Equal(t, 3, res.Total)
	assert.Equal(t, "marketing", res.Categories[0].Name)
	assert.Equal(t, 2, res.Categories[0].Count)
	assert.Equal(t, "devops", res.Categories[1].Name)
	assert.Equal(t, 1, res.Categories[1].Count)
}

func TestSearch_Pagination(t *testing.T) {
	corpus := loadFixture(t).Workflows

	first := Search(corpus, SearchOptions{PageSize: 4})
	assert.Len(t, first.Templates, 4)
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, 2, first.TotalPages)

	second := Search(corpus, SearchOptions{Page: 2, PageSize: 4})
	assert.Equal(t, []string{"wf-5", "wf-6"}, ids(second.Templates))

	past := Search(corpus, SearchOptions{Page: 3, PageSize: 4})
	assert.NotNil(t, past.Templates)
	assert.Empty(t, past.Templates)
	assert.Equal(t, 6, past.Total)

	huge := Search(corpus, SearchOptions{Page: math.MaxInt})
	assert.NotNil(t, huge.Templates)
	assert.Empty(t, huge.Templates)
	assert.Equal(t, math.MaxInt, huge.Page)

	wide := Search(corpus, SearchOptions{Page: 1, PageSize: math.MaxInt})
	assert.Len(t, wide.Templates, 6)
	assert.Equal(t, 1, wide.TotalPages)

	wideSecond := Search(corpus, SearchOptions{Page: 2, PageSize: math.MaxInt})
	assert.Empty(t, wideSecond.Templates)

	none := Search(corpus, SearchOptions{Query: "kubernetes", Page: 1})
	assert.Equal(t, 0, none.TotalPages)
	assert.Empty(t, none.Templates)

	defaults := Search(corpus, SearchOptions{Page: -1})
	assert.Equal(t, DefaultPageSize, defaults.PageSize)
	assert.Equal(t, 1, defaults.Page)
}
