package templates

import (
	"sort"

	"github.com/aretw0/autoplan/pkg/domain"
)

// Relatedness weights.
const (
	sameCategoryScore    = 3
	sameIntegrationScore = 2
	sharedServiceScore   = 1
)

// Related ranks the other templates of the corpus by similarity to t:
// +3 for the same category, +2 for the same integration group and +1 per
// shared service. Only positive scores are kept; ties keep corpus order.
// A non-positive limit returns every match.
func Related(corpus []domain.TemplateEntry, t domain.TemplateEntry, limit int) []domain.TemplateEntry {
	type scored struct {
		entry domain.TemplateEntry
		score int
	}

	services := make(map[string]bool, len(t.Services))
	for _, s := range t.Services {
		services[s] = true
	}

	var candidates []scored
	for _, c := range corpus {
		if c.ID == t.ID {
			continue
		}
		score := 0
		if t.Category != "" && c.Category == t.Category {
			score += sameCategoryScore
		}
		if t.IntegrationGroup != "" && c.IntegrationGroup == t.IntegrationGroup {
			score += sameIntegrationScore
		}
		seen := make(map[string]bool, len(c.Services))
		for _, s := range c.Services {
			if services[s] && !seen[s] {
				seen[s] = true
				score += sharedServiceScore
			}
		}
		if score > 0 {
			candidates = append(candidates, scored{entry: c, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]domain.TemplateEntry, len(candidates))
	for i, c := range candidates {
		out[i] = c.entry
	}
	return out
}

var complexityWeight = map[string]int{
	domain.ComplexityMedium: 3,
	domain.ComplexityHigh:   2,
	domain.ComplexityLow:    1,
}

// Featured orders the corpus by complexity (medium, high, low) and then by
// service count, largest first, and returns the first limit entries.
// A non-positive limit returns the whole ordering.
func Featured(corpus []domain.TemplateEntry, limit int) []domain.TemplateEntry {
	out := make([]domain.TemplateEntry, len(corpus))
	copy(out, corpus)
	sort.SliceStable(out, func(i, j int) bool {
		wi, wj := complexityWeight[out[i].Complexity], complexityWeight[out[j].Complexity]
		if wi != wj {
			return wi > wj
		}
		return len(out[i].Services) > len(out[j].Services)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
