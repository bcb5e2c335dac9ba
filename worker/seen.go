package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"postcraft/config"
)

// SeenStore remembers processed job ids so a redelivered job is not run twice
type SeenStore interface {
	Seen(ctx context.Context, jobID string) (bool, error)
	Remember(ctx context.Context, jobID string) error
}

// RedisSeen keeps processed job ids in Redis with a TTL
type RedisSeen struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSeen connects to Redis and verifies connectivity
func NewRedisSeen(addr, password string, ttl time.Duration) (*RedisSeen, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return NewRedisSeenWithClient(client, ttl), nil
}

// NewRedisSeenWithClient wraps an existing Redis client
func NewRedisSeenWithClient(client *redis.Client, ttl time.Duration) *RedisSeen {
	if ttl <= 0 {
		ttl = config.JobSeenTTL
	}
	return &RedisSeen{client: client, ttl: ttl}
}

// Seen reports whether jobID was already processed
func (r *RedisSeen) Seen(ctx context.Context, jobID string) (bool, error) {
	n, err := r.client.Exists(ctx, config.JobSeenPrefix+jobID).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Remember records jobID as processed
func (r *RedisSeen) Remember(ctx context.Context, jobID string) error {
	return r.client.Set(ctx, config.JobSeenPrefix+jobID, time.Now().UTC().Format(time.RFC3339), r.ttl).Err()
}

// Close closes the underlying Redis client
func (r *RedisSeen) Close() error {
	return r.client.Close()
}
