package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// MaxTTLSeconds is the longest lifetime, in seconds, a time.Duration can hold.
const MaxTTLSeconds = math.MaxInt64 / int64(time.Second)

// TTLFromSeconds converts a lifetime in whole seconds into a duration. Zero
// means the entry never expires.
func TTLFromSeconds(seconds int) (time.Duration, error) {
	if seconds < 0 || int64(seconds) > MaxTTLSeconds {
		return 0, fmt.Errorf("%w: %d (allowed 0..%d)", ErrInvalidTTL, seconds, MaxTTLSeconds)
	}
	return time.Duration(seconds) * time.Second, nil
}

// MemoryEntry is a value stored for an agent under a scope and key.
type MemoryEntry struct {
	AgentID   string     `json:"agentId"`
	Scope     string     `json:"scope"`
	Key       string     `json:"key"`
	Value     any        `json:"value"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Expired reports whether the entry has a deadline at or before now.
func (e MemoryEntry) Expired(now time.Time) bool {
	return e.ExpiresAt != nil && !now.Before(*e.ExpiresAt)
}

// Matches reports whether query occurs, case-insensitively, in the key or in
// the JSON encoding of the value. An empty query matches every entry.
func (e MemoryEntry) Matches(query string) bool {
	needle := strings.ToLower(query)
	if needle == "" || strings.Contains(strings.ToLower(e.Key), needle) {
		return true
	}
	raw, err := json.Marshal(e.Value)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(raw)), needle)
}
