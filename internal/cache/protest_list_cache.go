package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"protest-tracker/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "protests:list"
	versionKey = keyPrefix + ":version"
)

// Listing is the outcome of a lookup. Version is the generation the lookup saw
// and must be handed back to Set.
type Listing struct {
	Protests []*model.Protest
	Hit      bool
	Version  int64
}

type ProtestListCache interface {
	Get(ctx context.Context, upcoming bool) (Listing, error)
	// Set stores protests only if no Invalidate happened since the Get that returned version,
	// so a listing read from the database before a write cannot outlive that write.
	// stored is false when the listing was discarded as stale.
	Set(ctx context.Context, upcoming bool, version int64, protests []*model.Protest) (stored bool, err error)
	// Invalidate drops every cached listing. Called after any write that changes a listed row.
	Invalidate(ctx context.Context) error
}

type RedisProtestListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProtestListCache returns a Redis-backed cache, or a no-op cache when client is nil.
func NewProtestListCache(client *redis.Client, ttl time.Duration) ProtestListCache {
	if client == nil {
		return NoopProtestListCache{}
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisProtestListCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisProtestListCache) key(upcoming bool) string {
	if upcoming {
		return fmt.Sprintf("%s:upcoming", keyPrefix)
	}
	return fmt.Sprintf("%s:all", keyPrefix)
}

func (c *RedisProtestListCache) Get(ctx context.Context, upcoming bool) (Listing, error) {
	values, err := c.client.MGet(ctx, versionKey, c.key(upcoming)).Result()
	if err != nil {
		return Listing{}, err
	}

	var listing Listing
	if s, ok := values[0].(string); ok {
		if listing.Version, err = strconv.ParseInt(s, 10, 64); err != nil {
			return Listing{}, fmt.Errorf("decode cache version: %w", err)
		}
	}

	raw, ok := values[1].(string)
	if !ok {
		return listing, nil
	}
	if err := json.Unmarshal([]byte(raw), &listing.Protests); err != nil {
		return Listing{}, fmt.Errorf("decode cached protests: %w", err)
	}
	listing.Hit = true
	return listing, nil
}

func (c *RedisProtestListCache) Set(ctx context.Context, upcoming bool, version int64, protests []*model.Protest) (bool, error) {
	raw, err := json.Marshal(protests)
	if err != nil {
		return false, fmt.Errorf("encode protests: %w", err)
	}

	script := `
		local version_key = KEYS[1]
		local list_key = KEYS[2]

		-- 讀取後若已失效則丟棄
		local current = redis.call('GET', version_key) or '0'
		if current ~= ARGV[1] then
			return 0
		end

		redis.call('SET', list_key, ARGV[2], 'PX', ARGV[3])
		return 1
	`

	result, err := c.client.Eval(ctx, script, []string{versionKey, c.key(upcoming)},
		strconv.FormatInt(version, 10), raw, c.ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return result == 1, nil
}

func (c *RedisProtestListCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey)
		pipe.Del(ctx, c.key(false), c.key(true))
		return nil
	})
	return err
}

type NoopProtestListCache struct{}

func (NoopProtestListCache) Get(context.Context, bool) (Listing, error) {
	return Listing{}, nil
}

func (NoopProtestListCache) Set(context.Context, bool, int64, []*model.Protest) (bool, error) {
	return false, nil
}

func (NoopProtestListCache) Invalidate(context.Context) error { return nil }
