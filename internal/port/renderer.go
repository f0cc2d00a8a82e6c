package port

import (
	"context"

	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

// HTTPRenderer sits between the HTTP handlers and the session getter. It
// returns the JSON body and its ETag, from cache when possible.
type HTTPRenderer interface {
	RenderGetSession(ctx context.Context, getter SessionGetter, id uuid.UUID) ([]byte, string, error)
}
