package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/autoplan/pkg/domain"
)

// Store implements ports.MemoryStore in process memory.
// Safe for concurrent use. Expired entries are evicted lazily on access.
type Store struct {
	data map[string]map[string]domain.MemoryEntry
	now  func() time.Time
	mu   sync.RWMutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a new in-memory store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		data: make(map[string]map[string]domain.MemoryEntry),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func scopeKey(agentID, scope string) string {
	return agentID + "\x00" + scope
}

// Write stores the value, replacing any previous entry.
func (s *Store) Write(ctx context.Context, agentID, scope, key string, value any, ttl time.Duration) error {
	now := s.now()
	entry := domain.MemoryEntry{
		AgentID:   agentID,
		Scope:     scope,
		Key:       key,
		Value:     value,
		CreatedAt: now,
	}
	if ttl > 0 {
		deadline := now.Add(ttl)
		entry.ExpiresAt = &deadline
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.data[scopeKey(agentID, scope)]
	if !ok {
		bucket = make(map[string]domain.MemoryEntry)
		s.data[scopeKey(agentID, scope)] = bucket
	}
	bucket[key] = entry
	return nil
}

// Read returns the stored value.
func (s *Store) Read(ctx context.Context, agentID, scope, key string) (any, error) {
	s.mu.RLock()
	entry, ok := s.data[scopeKey(agentID, scope)][key]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrMemoryNotFound
	}
	if entry.Expired(s.now()) {
		s.evict(agentID, scope, key, entry.CreatedAt)
		return nil, domain.ErrMemoryNotFound
	}
	return entry.Value, nil
}

// evict removes an expired entry unless it was rewritten meanwhile.
func (s *Store) evict(agentID, scope, key string, createdAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket := s.data[scopeKey(agentID, scope)]
	if current, ok := bucket[key]; ok && current.CreatedAt.Equal(createdAt) {
		delete(bucket, key)
	}
}

// Search lists live entries matching query.
func (s *Store) Search(ctx context.Context, agentID, scope, query string) ([]domain.MemoryEntry, error) {
	now := s.now()

	s.mu.RLock()
	bucket := s.data[scopeKey(agentID, scope)]
	entries := make([]domain.MemoryEntry, 0, len(bucket))
	var expired []domain.MemoryEntry
	for _, entry := range bucket {
		if entry.Expired(now) {
			expired = append(expired, entry)
			continue
		}
		if entry.Matches(query) {
			entries = append(entries, entry)
		}
	}
	s.mu.RUnlock()

	for _, entry := range expired {
		s.evict(agentID, scope, entry.Key, entry.CreatedAt)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// Delete removes an entry.
func (s *Store) Delete(ctx context.Context, agentID, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[scopeKey(agentID, scope)], key)
	return nil
}
