package port

import (
	"context"
	"time"

	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

// Cache keeps the rendered session JSON and its ETag.
type Cache interface {
	GetSessionDetails(ctx context.Context, id uuid.UUID) ([]byte, error)
	GetEtagSessionDetails(ctx context.Context, id uuid.UUID) (string, error)
	SetSessionDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time)
	SetEtagSessionDetails(ctx context.Context, id uuid.UUID, etag string, validUntil time.Time)
	DeleteSessionDetails(ctx context.Context, id uuid.UUID) error
	DeleteEtagSessionDetails(ctx context.Context, id uuid.UUID) error
}
