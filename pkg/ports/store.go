package ports

import (
	"context"
	"time"

	"github.com/aretw0/autoplan/pkg/domain"
)

// MemoryStore persists values for agents, namespaced by scope.
type MemoryStore interface {
	// Write stores value under (agentID, scope, key). A ttl of zero keeps the
	// entry until it is overwritten or deleted.
	Write(ctx context.Context, agentID, scope, key string, value any, ttl time.Duration) error

	// Read returns the value under (agentID, scope, key).
	// Returns domain.ErrMemoryNotFound if the entry is missing or expired.
	Read(ctx context.Context, agentID, scope, key string) (any, error)

	// Search returns the live entries of a scope whose key or JSON-encoded
	// value contains query, case-insensitively, sorted by key. An empty query
	// matches everything.
	Search(ctx context.Context, agentID, scope, query string) ([]domain.MemoryEntry, error)

	// Delete removes an entry. Deleting a missing entry is not an error.
	Delete(ctx context.Context, agentID, scope, key string) error
}
