package mock

import (
	"context"
	"time"

	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

// Cache implements cache behaviour for tests.
type Cache struct {
	// stored values
	SessionOut []byte

	// etag values
	EtagSession string

	// errors
	GetSessionErr     error
	GetEtagSessionErr error
	DelSessionErr     error
	DelEtagSessionErr error

	// call flags
	GetSessionCalled     bool
	GetEtagSessionCalled bool
	SetSessionCalled     bool
	SetEtagSessionCalled bool
	DelSessionCalled     bool
	DelEtagSessionCalled bool

	// captured inputs
	DeletedIDs []uuid.UUID
}

func (c *Cache) GetSessionDetails(ctx context.Context, id uuid.UUID) ([]byte, error) {
	c.GetSessionCalled = true
	if c.GetSessionErr != nil {
		return nil, c.GetSessionErr
	}
	return c.SessionOut, nil
}

func (c *Cache) GetEtagSessionDetails(ctx context.Context, id uuid.UUID) (string, error) {
	c.GetEtagSessionCalled = true
	if c.GetEtagSessionErr != nil {
		return "", c.GetEtagSessionErr
	}
	return c.EtagSession, nil
}

func (c *Cache) SetSessionDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time) {
	c.SetSessionCalled = true
	c.SessionOut = data
}

func (c *Cache) SetEtagSessionDetails(ctx context.Context, id uuid.UUID, etag string, validUntil time.Time) {
	c.SetEtagSessionCalled = true
	c.EtagSession = etag
}

func (c *Cache) DeleteSessionDetails(ctx context.Context, id uuid.UUID) error {
	c.DelSessionCalled = true
	c.DeletedIDs = append(c.DeletedIDs, id)
	return c.DelSessionErr
}

func (c *Cache) DeleteEtagSessionDetails(ctx context.Context, id uuid.UUID) error {
	c.DelEtagSessionCalled = true
	return c.DelEtagSessionErr
}
