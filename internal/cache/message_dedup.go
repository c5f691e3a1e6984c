package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// MessageDeduplicator suppresses duplicate pub/sub deliveries. The push
// source is at-least-once, so the same message id can arrive more than once.
type MessageDeduplicator interface {
	// FirstDelivery marks messageID as seen and reports whether this is the
	// first time it was delivered.
	FirstDelivery(ctx context.Context, messageID string) (bool, error)
	// Forget clears the mark so a failed message can be retried.
	Forget(ctx context.Context, messageID string) error
}

type RedisMessageDeduplicatorImpl struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisMessageDeduplicator(client *redis.Client, ttl time.Duration) MessageDeduplicator {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisMessageDeduplicatorImpl{
		client: client,
		ttl:    ttl,
	}
}

func (d *RedisMessageDeduplicatorImpl) key(messageID string) string {
	return fmt.Sprintf("pubsub:msg:%s", messageID)
}

func (d *RedisMessageDeduplicatorImpl) FirstDelivery(ctx context.Context, messageID string) (bool, error) {
	// SET NX gives an atomic first-writer-wins mark
	ok, err := d.client.SetNX(ctx, d.key(messageID), 1, d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("setnx: %w", err)
	}
	return ok, nil
}

func (d *RedisMessageDeduplicatorImpl) Forget(ctx context.Context, messageID string) error {
	return d.client.Del(ctx, d.key(messageID)).Err()
}
