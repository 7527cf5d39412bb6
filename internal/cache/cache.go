// Package cache keeps read-through copies of scope listings in Redis.
// A nil *Cache, or one built without a client, caches nothing.
package cache

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "kanboard:"

// genTTL bounds how long an idle generation counter lingers.
const genTTL = 24 * time.Hour

// Cache stores JSON-encoded values under scope keys.
type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

// New creates a cache using the provided Redis client and TTL.
func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{redis: client, ttl: ttl}
}

func (c *Cache) enabled() bool {
	return c != nil && c.redis != nil
}

// Load decodes the value stored under key into dest. It reports false on a
// miss; broken entries are dropped so the next read goes to the store.
func (c *Cache) Load(ctx context.Context, key string, dest any) bool {
	if !c.enabled() {
		return false
	}
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			_ = c.redis.Del(ctx, key).Err()
		}
		return false
	}
	if err := sonic.Unmarshal(data, dest); err != nil {
		_ = c.redis.Del(ctx, key).Err()
		return false
	}
	return true
}

// Version returns the generation of key, taken before reading the store.
// An empty version means the generation is unknown and Store will skip.
func (c *Cache) Version(ctx context.Context, key string) string {
	if !c.enabled() {
		return ""
	}
	gen, err := c.redis.Get(ctx, genKey(key)).Result()
	if err == redis.Nil {
		return "0"
	}
	if err != nil {
		return ""
	}
	return gen
}

// storeIfCurrent sets KEYS[1] only while the generation in KEYS[2] still
// matches ARGV[1]; an absent generation counts as "0".
var storeIfCurrent = redis.NewScript(`
local cur = redis.call('GET', KEYS[2])
if cur == false then cur = '0' end
if cur ~= ARGV[1] then return 0 end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// Store saves value under key for the configured TTL, unless key was
// evicted after version was read.
func (c *Cache) Store(ctx context.Context, key, version string, value any) {
	if !c.enabled() || c.ttl == 0 || version == "" {
		return
	}
	data, err := sonic.Marshal(value)
	if err != nil {
		return
	}
	_ = storeIfCurrent.Run(ctx, c.redis, []string{key, genKey(key)},
		version, data, c.ttl.Milliseconds()).Err()
}

// Evict drops the given keys and bumps their generations so that reads
// already in flight cannot store what they loaded.
func (c *Cache) Evict(ctx context.Context, keys ...string) {
	if !c.enabled() || len(keys) == 0 {
		return
	}
	pipe := c.redis.TxPipeline()
	for _, key := range keys {
		pipe.Incr(ctx, genKey(key))
		pipe.Expire(ctx, genKey(key), genTTL)
	}
	pipe.Del(ctx, keys...)
	_, _ = pipe.Exec(ctx)
}

func genKey(key string) string {
	return key + ":gen"
}

// BoardsKey holds the listing of all boards.
func BoardsKey() string {
	return keyPrefix + "boards"
}

// ListsKey holds the lists of one board.
func ListsKey(boardID string) string {
	return keyPrefix + "lists:" + boardID
}

// CardsKey holds the cards of one list.
func CardsKey(listID string) string {
	return keyPrefix + "cards:" + listID
}

// CardsKeys returns CardsKey for each list id.
func CardsKeys(listIDs []string) []string {
	keys := make([]string, len(listIDs))
	for i, id := range listIDs {
		keys[i] = CardsKey(id)
	}
	return keys
}
