package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/autoplan/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunMemoryStoreContract runs a suite of tests to verify that a MemoryStore
// implementation adheres to the defined interface contract. advance must move
// the store's notion of time forward.
func RunMemoryStoreContract(t *testing.T, store MemoryStore, advance func(time.Duration)) {
	ctx := context.Background()
	agent := "contract-agent-" + time.Now().Format("20060102150405")

	t.Run("Write and Read", func(t *testing.T) {
		err := store.Write(ctx, agent, "prefs", "language", "pt-BR", 0)
		require.NoError(t, err, "Write should not return error")

		value, err := store.Read(ctx, agent, "prefs", "language")
		require.NoError(t, err, "Read should not return error")
		assert.Equal(t, "pt-BR", value)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, agent, "prefs", "theme", "light", 0))
		require.NoError(t, store.Write(ctx, agent, "prefs", "theme", "dark", 0))

		value, err := store.Read(ctx, agent, "prefs", "theme")
		require.NoError(t, err)
		assert.Equal(t, "dark", value)
	})

	t.Run("Structured Values", func(t *testing.T) {
		order := map[string]any{"item": "headphones", "status": "placed"}
		require.NoError(t, store.Write(ctx, agent, "orders", "last_order", order, 0))

		value, err := store.Read(ctx, agent, "orders", "last_order")
		require.NoError(t, err)
		assert.Equal(t, order, value)
	})

	t.Run("Read Non-Existent", func(t *testing.T) {
		_, err := store.Read(ctx, agent, "prefs", "missing")
		assert.ErrorIs(t, err, domain.ErrMemoryNotFound)

		_, err = store.Read(ctx, "other-"+agent, "prefs", "language")
		assert.ErrorIs(t, err, domain.ErrMemoryNotFound, "agents must not share memory")
	})

	t.Run("TTL Expiry", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, agent, "session", "token", "abc", time.Minute))
		require.NoError(t, store.Write(ctx, agent, "session", "user", "ana", 0))

		_, err := store.Read(ctx, agent, "session", "token")
		require.NoError(t, err, "entry must be readable before its ttl")

		advance(2 * time.Minute)

		_, err = store.Read(ctx, agent, "session", "token")
		assert.ErrorIs(t, err, domain.ErrMemoryNotFound, "Read after ttl should return ErrMemoryNotFound")

		entries, err := store.Search(ctx, agent, "session", "")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "user", entries[0].Key)
	})

	t.Run("Search", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, agent, "notes", "b-meeting", "Sync with the DESIGN team", 0))
		require.NoError(t, store.Write(ctx, agent, "notes", "a-design", "mockups", 0))
		require.NoError(t, store.Write(ctx, agent, "notes", "c-lunch", "pizza", 0))

		entries, err := store.Search(ctx, agent, "notes", "design")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "a-design", entries[0].Key)
		assert.Equal(t, "b-meeting", entries[1].Key)
		assert.Equal(t, agent, entries[0].AgentID)
		assert.Equal(t, "notes", entries[0].Scope)

		all, err := store.Search(ctx, agent, "notes", "")
		require.NoError(t, err)
		assert.Len(t, all, 3)

		none, err := store.Search(ctx, agent, "empty-scope", "")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, agent, "tmp", "k", "v", 0))
		require.NoError(t, store.Delete(ctx, agent, "tmp", "k"))

		_, err := store.Read(ctx, agent, "tmp", "k")
		assert.ErrorIs(t, err, domain.ErrMemoryNotFound, "Read after Delete should return ErrMemoryNotFound")

		assert.NoError(t, store.Delete(ctx, agent, "tmp", "k"))
	})
}
