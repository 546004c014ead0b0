package templates

import (
	"sort"
	"strings"

	"github.com/aretw0/autoplan/pkg/domain"
)

// DefaultPageSize is used when SearchOptions.PageSize is not positive.
const DefaultPageSize = 20

// Uncategorized is the facet name of entries without a category.
const Uncategorized = "uncategorized"

// SearchOptions filters and paginates a search. Zero values disable a filter.
type SearchOptions struct {
	Query       string `json:"query,omitempty"`
	Category    string `json:"category,omitempty"`
	Complexity  string `json:"complexity,omitempty"`
	TriggerType string `json:"triggerType,omitempty"`
	Service     string `json:"service,omitempty"`
	Page        int    `json:"page,omitempty"`
	PageSize    int    `json:"pageSize,omitempty"`
}

// SearchResult is one page of matches plus facets over all matches.
type SearchResult struct {
	Templates  []domain.TemplateEntry `json:"templates"`
	Total      int                    `json:"total"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"pageSize"`
	TotalPages int                    `json:"totalPages"`
	Categories []domain.CategoryCount `json:"categories"`
}

// Search filters the corpus in this order: free-text terms (all must match
// name, description, services or integration group), category, complexity,
// trigger type, then service substring. The category filter compares the
// stored category exactly; Uncategorized only names a facet. Pages are
// 1-based; a page past the end is empty.
func Search(corpus []domain.TemplateEntry, opts SearchOptions) SearchResult {
	terms := strings.Fields(strings.ToLower(opts.Query))
	service := strings.ToLower(opts.Service)

	matched := make([]domain.TemplateEntry, 0, len(corpus))
	for _, t := range corpus {
		if len(terms) > 0 && !matchesTerms(t, terms) {
			continue
		}
		if opts.Category != "" && t.Category != opts.Category {
			continue
		}
		if opts.Complexity != "" && t.Complexity != opts.Complexity {
			continue
		}
		if opts.TriggerType != "" && t.TriggerType != opts.TriggerType {
			continue
		}
		if service != "" && !usesService(t, service) {
			continue
		}
		matched = append(matched, t)
	}

	page, size := opts.Page, opts.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}

	result := SearchResult{
		Templates:  []domain.TemplateEntry{},
		Total:      len(matched),
		Page:       page,
		PageSize:   size,
		TotalPages: pageCount(len(matched), size),
		Categories: categoryFacets(matched),
	}
	// Compare in page units so huge page numbers or sizes cannot overflow.
	if page > result.TotalPages {
		return result
	}
	start := (page - 1) * size
	end := len(matched)
	if size < end-start {
		end = start + size
	}
	result.Templates = matched[start:end]
	return result
}

func pageCount(total, size int) int {
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return pages
}

func matchesTerms(t domain.TemplateEntry, terms []string) bool {
	haystack := strings.ToLower(strings.Join([]string{
		t.Name, t.Description, strings.Join(t.Services, " "), t.IntegrationGroup,
	}, " "))
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

func usesService(t domain.TemplateEntry, service string) bool {
	if strings.Contains(strings.ToLower(t.IntegrationGroup), service) {
		return true
	}
	for _, s := range t.Services {
		if strings.Contains(strings.ToLower(s), service) {
			return true
		}
	}
	return false
}

func categoryOf(t domain.TemplateEntry) string {
	if t.Category == "" {
		return Uncategorized
	}
	return t.Category
}

// categoryFacets counts entries per category, largest first, ties by name.
func categoryFacets(entries []domain.TemplateEntry) []domain.CategoryCount {
	counts := make(map[string]int)
	for _, t := range entries {
		counts[categoryOf(t)]++
	}
	facets := make([]domain.CategoryCount, 0, len(counts))
	for name, n := range counts {
		facets = append(facets, domain.CategoryCount{Name: name, Count: n})
	}
	sort.Slice(facets, func(i, j int) bool {
		if facets[i].Count != facets[j].Count {
			return facets[i].Count > facets[j].Count
		}
		return facets[i].Name < facets[j].Name
	})
	return facets
}
