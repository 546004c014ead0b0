package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/aretw0/autoplan/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "autoplan:memory:"

// Store implements ports.MemoryStore using Redis.
// Each entry is a JSON string with a native Redis TTL; a set per agent and
// scope indexes the keys and is pruned lazily when entries expire.
type Store struct {
	client *backend.Client
	prefix string
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// record is the stored JSON envelope.
type record struct {
	Value     any        `json:"value"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Key parts are query-escaped so a ':' inside an agent, scope or key cannot
// collide with the separator.
func (s *Store) entryKey(agentID, scope, key string) string {
	return fmt.Sprintf("%sentry:%s:%s:%s", s.prefix, url.QueryEscape(agentID), url.QueryEscape(scope), url.QueryEscape(key))
}

func (s *Store) indexKey(agentID, scope string) string {
	return fmt.Sprintf("%sindex:%s:%s", s.prefix, url.QueryEscape(agentID), url.QueryEscape(scope))
}

// Write stores the value with an optional TTL.
func (s *Store) Write(ctx context.Context, agentID, scope, key string, value any, ttl time.Duration) error {
	now := time.Now().UTC()
	rec := record{Value: value, CreatedAt: now}
	if ttl > 0 {
		deadline := now.Add(ttl)
		rec.ExpiresAt = &deadline
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal memory value: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.entryKey(agentID, scope, key), data, ttl)
	pipe.SAdd(ctx, s.indexKey(agentID, scope), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write to redis: %w", err)
	}
	return nil
}

// Read retrieves the value.
func (s *Store) Read(ctx context.Context, agentID, scope, key string) (any, error) {
	val, err := s.client.Get(ctx, s.entryKey(agentID, scope, key)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrMemoryNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var rec record
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal memory value: %w", err)
	}
	return rec.Value, nil
}

// Search loads every indexed entry of the scope and filters it in process.
func (s *Store) Search(ctx context.Context, agentID, scope, query string) ([]domain.MemoryEntry, error) {
	keys, err := s.client.SMembers(ctx, s.indexKey(agentID, scope)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list memory keys: %w", err)
	}
	entries := []domain.MemoryEntry{}
	if len(keys) == 0 {
		return entries, nil
	}

	entryKeys := make([]string, len(keys))
	for i, k := range keys {
		entryKeys[i] = s.entryKey(agentID, scope, k)
	}
	values, err := s.client.MGet(ctx, entryKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read memory entries: %w", err)
	}

	// Lazy cleanup: drop index members whose entry has expired.
	var stale []any
	for i, raw := range values {
		str, ok := raw.(string)
		if !ok {
			stale = append(stale, keys[i])
			continue
		}
		var rec record
		if err := json.Unmarshal([]byte(str), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal memory entry %q: %w", keys[i], err)
		}
		entry := domain.MemoryEntry{
			AgentID:   agentID,
			Scope:     scope,
			Key:       keys[i],
			Value:     rec.Value,
			CreatedAt: rec.CreatedAt,
			ExpiresAt: rec.ExpiresAt,
		}
		if entry.Matches(query) {
			entries = append(entries, entry)
		}
	}
	if len(stale) > 0 {
		if err := s.client.SRem(ctx, s.indexKey(agentID, scope), stale...).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune expired memory keys: %w", err)
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// Delete removes the entry and its index member.
func (s *Store) Delete(ctx context.Context, agentID, scope, key string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.entryKey(agentID, scope, key))
	pipe.SRem(ctx, s.indexKey(agentID, scope), key)
	_, err := pipe.Exec(ctx)
	return err
}

// Ping checks that the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
