// Package file persists agent memory as JSON files on the local filesystem,
// one file per agent scope.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/autoplan/pkg/domain"
)

// DefaultDir is used when New is given an empty path.
var DefaultDir = filepath.Join(".autoplan", "memory")

// Store implements ports.MemoryStore using the local filesystem.
// Every write rewrites the scope file atomically.
type Store struct {
	BasePath string

	now func() time.Time
	mu  sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a new Store rooted at basePath.
func New(basePath string, opts ...Option) *Store {
	if basePath == "" {
		basePath = DefaultDir
	}
	s := &Store{BasePath: basePath, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Write stores the value, replacing any previous entry.
func (s *Store) Write(ctx context.Context, agentID, scope, key string, value any, ttl time.Duration) error {
	now := s.now().UTC()
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
	bucket, err := s.load(agentID, scope)
	if err != nil {
		return err
	}
	bucket[key] = entry
	return s.save(agentID, scope, bucket)
}

// Read returns the value of a live entry.
func (s *Store) Read(ctx context.Context, agentID, scope, key string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, err := s.load(agentID, scope)
	if err != nil {
		return nil, err
	}
	entry, ok := bucket[key]
	if !ok || entry.Expired(s.now()) {
		return nil, domain.ErrMemoryNotFound
	}
	return entry.Value, nil
}

// Search lists live entries matching query, dropping expired ones from disk.
func (s *Store) Search(ctx context.Context, agentID, scope, query string) ([]domain.MemoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, err := s.load(agentID, scope)
	if err != nil {
		return nil, err
	}

	now := s.now()
	entries := make([]domain.MemoryEntry, 0, len(bucket))
	pruned := false
	for key, entry := range bucket {
		if entry.Expired(now) {
			delete(bucket, key)
			pruned = true
			continue
		}
		if entry.Matches(query) {
			entries = append(entries, entry)
		}
	}
	if pruned {
		if err := s.save(agentID, scope, bucket); err != nil {
			return nil, err
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// Delete removes an entry.
func (s *Store) Delete(ctx context.Context, agentID, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, err := s.load(agentID, scope)
	if err != nil {
		return err
	}
	if _, ok := bucket[key]; !ok {
		return nil
	}
	delete(bucket, key)
	return s.save(agentID, scope, bucket)
}

func (s *Store) path(agentID, scope string) string {
	return filepath.Join(s.BasePath, segment(agentID), segment(scope)+".json")
}

// segment escapes a user-supplied name into a single safe path element.
func segment(name string) string {
	escaped := url.PathEscape(name)
	if strings.HasPrefix(escaped, ".") {
		escaped = "%2E" + escaped[1:]
	}
	if escaped == "" {
		escaped = "_"
	}
	return escaped
}

func (s *Store) load(agentID, scope string) (map[string]domain.MemoryEntry, error) {
	bucket := make(map[string]domain.MemoryEntry)
	data, err := os.ReadFile(s.path(agentID, scope))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return bucket, nil
		}
		return nil, fmt.Errorf("failed to read memory file: %w", err)
	}
	if err := json.Unmarshal(data, &bucket); err != nil {
		return nil, fmt.Errorf("failed to unmarshal memory file: %w", err)
	}
	return bucket, nil
}

// save writes to a temp file in the same directory, fsyncs it and renames it
// over the destination.
func (s *Store) save(agentID, scope string, bucket map[string]domain.MemoryEntry) error {
	destPath := s.path(agentID, scope)
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to ensure memory directory: %w", err)
	}

	data, err := json.MarshalIndent(bucket, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal memory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "tmp-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
