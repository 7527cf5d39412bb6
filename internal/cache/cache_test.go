package cache_test

import (
	"context"
	"testing"
	"time"

	"kanboard/internal/cache"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCache_StoreThenLoad(t *testing.T) {
	mr, client := newRedis(t)
	c := cache.New(client, time.Minute)
	ctx := context.Background()
	key := cache.CardsKey("list-1")

	var miss []entry
	assert.False(t, c.Load(ctx, key, &miss))

	c.Store(ctx, key, c.Version(ctx, key), []entry{{ID: "card-1", Position: 0}, {ID: "card-2", Position: 1}})

	var got []entry
	require.True(t, c.Load(ctx, key, &got))
	assert.Equal(t, []entry{{ID: "card-1", Position: 0}, {ID: "card-2", Position: 1}}, got)

	ttl := mr.TTL(key)
	assert.True(t, ttl > 0 && ttl <= time.Minute, "unexpected TTL %v", ttl)
}

func TestCache_Evict(t *testing.T) {
	mr, client := newRedis(t)
	c := cache.New(client, time.Minute)
	ctx := context.Background()

	c.Store(ctx, cache.ListsKey("board-1"), "0", []entry{{ID: "list-1"}})
	c.Store(ctx, cache.CardsKey("list-1"), "0", []entry{{ID: "card-1"}})
	require.True(t, mr.Exists(cache.ListsKey("board-1")))

	c.Evict(ctx, append([]string{cache.ListsKey("board-1")}, cache.CardsKeys([]string{"list-1"})...)...)

	assert.False(t, mr.Exists(cache.ListsKey("board-1")))
	assert.False(t, mr.Exists(cache.CardsKey("list-1")))
}

func TestCache_StoreAfterEvictIsDiscarded(t *testing.T) {
	mr, client := newRedis(t)
	c := cache.New(client, time.Minute)
	ctx := context.Background()
	key := cache.CardsKey("list-1")

	// A reader takes the version, then a writer evicts before the reader stores.
	stale := c.Version(ctx, key)
	assert.Equal(t, "0", stale)
	c.Evict(ctx, key)
	c.Store(ctx, key, stale, []entry{{ID: "card-old"}})

	assert.False(t, mr.Exists(key))

	fresh := c.Version(ctx, key)
	assert.Equal(t, "1", fresh)
	c.Store(ctx, key, fresh, []entry{{ID: "card-new"}})

	var got []entry
	require.True(t, c.Load(ctx, key, &got))
	assert.Equal(t, []entry{{ID: "card-new"}}, got)
}

func TestCache_StoreWithoutVersionIsSkipped(t *testing.T) {
	mr, client := newRedis(t)
	c := cache.New(client, time.Minute)

	c.Store(context.Background(), cache.BoardsKey(), "", []entry{{ID: "board-1"}})

	assert.False(t, mr.Exists(cache.BoardsKey()))
}

func TestCache_CorruptEntryIsDropped(t *testing.T) {
	mr, client := newRedis(t)
	c := cache.New(client, time.Minute)
	key := cache.BoardsKey()
	require.NoError(t, mr.Set(key, "{not json"))

	var got []entry
	assert.False(t, c.Load(context.Background(), key, &got))
	assert.False(t, mr.Exists(key))
}

func TestCache_ZeroTTLStoresNothing(t *testing.T) {
	mr, client := newRedis(t)
	c := cache.New(client, 0)

	c.Store(context.Background(), cache.BoardsKey(), "0", []entry{{ID: "board-1"}})

	assert.False(t, mr.Exists(cache.BoardsKey()))
}

func TestCache_NilIsDisabled(t *testing.T) {
	var c *cache.Cache
	ctx := context.Background()

	c.Store(ctx, cache.BoardsKey(), "0", []entry{{ID: "board-1"}})
	assert.Empty(t, c.Version(ctx, cache.BoardsKey()))
	c.Evict(ctx, cache.BoardsKey())

	var got []entry
	assert.False(t, c.Load(ctx, cache.BoardsKey(), &got))
	assert.False(t, cache.New(nil, time.Minute).Load(ctx, cache.BoardsKey(), &got))
}

func TestDeduper_AddRemove(t *testing.T) {
	_, client := newRedis(t)
	d := cache.NewDeduper(client, time.Hour)
	ctx := context.Background()

	added, err := d.Add(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = d.Add(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, added)

	require.NoError(t, d.Remove(ctx, "abc"))
	added, err = d.Add(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, added)
}
