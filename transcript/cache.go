package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"postcraft/config"
	"postcraft/types"

	"github.com/redis/go-redis/v9"
)

// CacheConfig configures the Redis snippet cache
type CacheConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	TTL      time.Duration
}

// CachedSource keeps successful snippet lookups in Redis for a while.
// Failures are never cached and cache faults fall through to the inner source.
type CachedSource struct {
	inner  Source
	client *redis.Client
	ttl    time.Duration
}

// NewCachedSource connects to Redis and verifies connectivity
func NewCachedSource(inner Source, cfg CacheConfig) (*CachedSource, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return NewCachedSourceWithClient(inner, client, cfg.TTL), nil
}

// NewCachedSourceWithClient wraps inner using an existing Redis client
func NewCachedSourceWithClient(inner Source, client *redis.Client, ttl time.Duration) *CachedSource {
	if ttl <= 0 {
		ttl = config.TranscriptCacheTTL
	}
	return &CachedSource{inner: inner, client: client, ttl: ttl}
}

// Snippets implements Source
func (c *CachedSource) Snippets(ctx context.Context, videoID string, languages []string) ([]Snippet, error) {
	key := cacheKey(videoID, languages)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached []Snippet
		if jerr := json.Unmarshal(data, &cached); jerr == nil {
			log.Printf("💾 Transcript cache hit: %s", videoID)
			return cached, nil
		}
		log.Printf("⚠️  Discarding corrupt cache entry %s", key)
	case !errors.Is(err, redis.Nil):
		log.Printf("⚠️  Transcript cache read failed: %v", err)
	}

	snippets, err := c.inner.Snippets(ctx, videoID, languages)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(snippets); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			log.Printf("⚠️  Transcript cache write failed: %v", err)
		}
	}
	return snippets, nil
}

// Close closes the underlying Redis client
func (c *CachedSource) Close() error {
	return c.client.Close()
}

func cacheKey(videoID string, languages []string) string {
	return config.TranscriptCachePrefix + types.GenerateID(videoID, strings.Join(languages, ","))
}
