package middleware

import (
	"context"
	"regexp"
	"time"

	"github.com/aretw0/autoplan/pkg/domain"
	"github.com/aretw0/autoplan/pkg/ports"
)

// Mask replaces values whose key matches a PII pattern.
const Mask = "***"

type piiMiddleware struct {
	next     ports.MemoryStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks values of keys matching
// the patterns, both the memory key itself and keys nested in the value.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.MemoryStore) ports.MemoryStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Write(ctx context.Context, agentID, scope, key string, value any, ttl time.Duration) error {
	if m.sensitive(key) {
		return m.next.Write(ctx, agentID, scope, key, Mask, ttl)
	}
	// Mask a copy so the caller's value is left untouched.
	return m.next.Write(ctx, agentID, scope, key, m.mask(value), ttl)
}

func (m *piiMiddleware) Read(ctx context.Context, agentID, scope, key string) (any, error) {
	return m.next.Read(ctx, agentID, scope, key)
}

func (m *piiMiddleware) Search(ctx context.Context, agentID, scope, query string) ([]domain.MemoryEntry, error) {
	return m.next.Search(ctx, agentID, scope, query)
}

func (m *piiMiddleware) Delete(ctx context.Context, agentID, scope, key string) error {
	return m.next.Delete(ctx, agentID, scope, key)
}

// Helpers

func (m *piiMiddleware) sensitive(key string) bool {
	for _, p := range m.patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}

// mask returns a deep copy of v with sensitive map entries replaced.
func (m *piiMiddleware) mask(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			if m.sensitive(k) {
				out[k] = Mask
				continue
			}
			out[k] = m.mask(inner)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = m.mask(inner)
		}
		return out
	default:
		return v
	}
}
