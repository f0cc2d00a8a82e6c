package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const readyTimeout = 2 * time.Second

// container is a throwaway docker service published on one host port.
type container struct {
	name string
	pool *dockertest.Pool
	res  *dockertest.Resource
	addr string
}

// runContainer starts opts and retries ready against the published
// localhost:port until it succeeds. The container is purged on failure.
func runContainer(name, port string, opts *dockertest.RunOptions, ready func(ctx context.Context, addr string) error) (*container, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("docker unavailable: %w", err)
	}

	res, err := pool.RunWithOptions(opts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", name, err)
	}

	c := &container{name: name, pool: pool, res: res, addr: "localhost:" + res.GetPort(port)}
	err = pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), readyTimeout)
		defer cancel()
		return ready(ctx, c.addr)
	})
	if err != nil {
		c.purge()
		return nil, fmt.Errorf("%s not ready: %w", name, err)
	}
	return c, nil
}

func (c *container) purge() {
	if err := c.pool.Purge(c.res); err != nil {
		logger.Warnf(context.Background(), "⚠️  could not purge %s container: %v", c.name, err)
	}
}
