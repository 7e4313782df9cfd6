package enrich

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKV is the slice of the redis client the cache needs; *redis.Client
// satisfies it.
type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// TipsCache stores generated tips in Redis keyed by a hash of the prompt, so
// an unchanged analysis never pays for a second generation call.
type TipsCache struct {
	client redisKV
	ttl    time.Duration
	prefix string
}

func NewTipsCache(client redisKV, ttl time.Duration) *TipsCache {
	if client == nil {
		return nil
	}
	return &TipsCache{client: client, ttl: ttl, prefix: "enrich:tips:"}
}

// Get returns the cached tips for key. A miss is (nil, false, nil).
func (c *TipsCache) Get(ctx context.Context, key string) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var tips []string
	if err := json.Unmarshal([]byte(raw), &tips); err != nil {
		return nil, false, fmt.Errorf("decode cached tips: %w", err)
	}
	return tips, true, nil
}

// Put stores tips under key for the cache TTL.
func (c *TipsCache) Put(ctx context.Context, key string, tips []string) error {
	raw, err := json.Marshal(tips)
	if err != nil {
		return fmt.Errorf("encode tips: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// cacheKey hashes the domain and prompt.
func cacheKey(domain Domain, prompt string) string {
	sum := sha256.Sum256([]byte(string(domain) + "\n" + prompt))
	return hex.EncodeToString(sum[:])
}
