package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

// GetSessionDetails returns nil without error on a miss.
func (c *Cache) GetSessionDetails(ctx context.Context, id uuid.UUID) ([]byte, error) {
	logger.Debugf(ctx, "getting entry in cache for session #%s...", id)

	val, err := c.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) GetEtagSessionDetails(ctx context.Context, id uuid.UUID) (string, error) {
	val, err := c.client.Get(ctx, etagKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

// SetSessionDetails stores the rendered JSON until validUntil. Errors are only logged.
func (c *Cache) SetSessionDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time) {
	logger.Debugf(ctx, "creating entry in cache for session #%s, valid until %s...", id, validUntil.Format(time.RFC1123))

	if err := c.client.Set(ctx, sessionKey(id), data, time.Until(validUntil)).Err(); err != nil {
		logger.Warnf(ctx, "⚠️ redis set failed for session #%s: %v", id, err)
	}
}

func (c *Cache) SetEtagSessionDetails(ctx context.Context, id uuid.UUID, etag string, validUntil time.Time) {
	if err := c.client.Set(ctx, etagKey(id), etag, time.Until(validUntil)).Err(); err != nil {
		logger.Warnf(ctx, "⚠️ redis set failed for etag of session #%s: %v", id, err)
	}
}

func (c *Cache) DeleteSessionDetails(ctx context.Context, id uuid.UUID) error {
	logger.Debugf(ctx, "deleting entry in cache for session #%s...", id)

	if err := c.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (c *Cache) DeleteEtagSessionDetails(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, etagKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func sessionKey(id uuid.UUID) string {
	return "session:" + id.String()
}

func etagKey(id uuid.UUID) string {
	return "etag:" + sessionKey(id)
}
