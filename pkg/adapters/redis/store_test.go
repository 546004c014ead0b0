package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/autoplan/pkg/adapters/redis"
	"github.com/aretw0/autoplan/pkg/domain"
	"github.com/aretw0/autoplan/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redis.NewFromClient(client, opts...), mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, mr := newStore(t)

	ports.RunMemoryStoreContract(t, store, mr.FastForward)
}

func TestRedisStore_PrunesExpiredIndexMembers(t *testing.T) {
	store, mr := newStore(t, redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "agent", "cache", "short", "x", time.Second))
	require.NoError(t, store.Write(ctx, "agent", "cache", "long", "y", 0))

	members, err := mr.Members("test:index:agent:cache")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"short", "long"}, members)

	mr.FastForward(2 * time.Second)

	entries, err := store.Search(ctx, "agent", "cache", "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "long", entries[0].Key)

	members, err = mr.Members("test:index:agent:cache")
	require.NoError(t, err)
	assert.Equal(t, []string{"long"}, members)
}

func TestRedisStore_SetsNativeTTL(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "agent", "s", "k", 42, time.Minute))

	assert.Equal(t, time.Minute, mr.TTL(redis.DefaultPrefix+"entry:agent:s:k"))

	v, err := store.Read(ctx, "agent", "s", "k")
	require.NoError(t, err)
	assert.Equal(t, float64(42), v, "numbers come back as JSON numbers")
}

func TestRedisStore_SeparatorsDoNotCollide(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "alice:private", "notes", "secret", "alice-data", 0))

	_, err := store.Read(ctx, "alice", "private:notes", "secret")
	assert.ErrorIs(t, err, domain.ErrMemoryNotFound)

	entries, err := store.Search(ctx, "alice", "private:notes", "")
	require.NoError(t, err)
	assert.Empty(t, entries)

	v, err := store.Read(ctx, "alice:private", "notes", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice-data", v)
	assert.True(t, mr.Exists(redis.DefaultPrefix+"entry:alice%3Aprivate:notes:secret"))
}

func TestRedisStore_ConnectionError(t *testing.T) {
	store, mr := newStore(t)
	mr.Close()

	_, err := store.Read(context.Background(), "agent", "s", "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrMemoryNotFound)
}
