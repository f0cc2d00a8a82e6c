package testutil

import (
	"context"

	"github.com/ory/dockertest/v3"
	"github.com/redis/go-redis/v9"
)

// RedisContainerInfo backs both the session cache and the asynq queue.
type RedisContainerInfo struct {
	Addr    string
	Cleanup func()
}

func StartRedisContainer() (*RedisContainerInfo, error) {
	c, err := runContainer("redis", "6379/tcp",
		&dockertest.RunOptions{Repository: "redis", Tag: "7"},
		func(ctx context.Context, addr string) error {
			rdb := redis.NewClient(&redis.Options{Addr: addr})
			defer func() { _ = rdb.Close() }()
			return rdb.Ping(ctx).Err()
		})
	if err != nil {
		return nil, err
	}
	return &RedisContainerInfo{Addr: c.addr, Cleanup: c.purge}, nil
}
