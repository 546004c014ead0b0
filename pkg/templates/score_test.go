package templates

import (
	"testing"

	"github.com/aretw0/autoplan/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestRelated_ScoresAndOrders(t *testing.T) {
	corpus := loadFixture(t).Workflows

	got := Related(corpus, corpus[0], 0)

	assert.Equal(t, []string{"wf-2", "wf-4", "wf-5", "wf-3"}, ids(got))
	assert.Equal(t, []string{"wf-2", "wf-4"}, ids(Related(corpus, corpus[0], 2)))
}

func TestRelated_NeverSelfAndAlwaysShares(t *testing.T) {
	corpus := loadFixture(t).Workflows

	for _, tpl := range corpus {
		for _, r := range Related(corpus, tpl, 0) {
			assert.NotEqual(t, tpl.ID, r.ID)
			assert.True(t, sharesSomething(tpl, r), "%s and %s share nothing", tpl.ID, r.ID)
		}
	}
}

func sharesSomething(a, b domain.TemplateEntry) bool {
	if a.Category == b.Category || a.IntegrationGroup == b.IntegrationGroup {
		return true
	}
	for _, s := range a.Services {
		for _, o := range b.Services {
			if s == o {
				return true
			}
		}
	}
	return false
}

func TestRelated_NoOverlap(t *testing.T) {
	corpus := loadFixture(t).Workflows
	loner := domain.TemplateEntry{ID: "x", Category: "finance", Services: []string{"Xero"}}

	assert.Empty(t, Related(corpus, loner, 5))
}

func TestFeatured(t *testing.T) {
	corpus := loadFixture(t).Workflows

	assert.Equal(t, []string{"wf-4", "wf-2", "wf-6", "wf-3", "wf-1", "wf-5"}, ids(Featured(corpus, 0)))
	assert.Equal(t, []string{"wf-4", "wf-2", "wf-6"}, ids(Featured(corpus, 3)))
	assert.Equal(t, "wf-1", corpus[0].ID, "corpus order must not change")
}
