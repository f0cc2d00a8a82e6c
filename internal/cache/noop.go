package cache

import (
	"context"
	"time"

	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

// NoopCache is used when no Redis address is configured: every read misses.
type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetSessionDetails(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return nil, nil
}

func (n *NoopCache) GetEtagSessionDetails(ctx context.Context, id uuid.UUID) (string, error) {
	return "", nil
}

func (n *NoopCache) SetSessionDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time) {
}

func (n *NoopCache) SetEtagSessionDetails(ctx context.Context, id uuid.UUID, etag string, validUntil time.Time) {
}

func (n *NoopCache) DeleteSessionDetails(ctx context.Context, id uuid.UUID) error { return nil }

func (n *NoopCache) DeleteEtagSessionDetails(ctx context.Context, id uuid.UUID) error {
	return nil
}
