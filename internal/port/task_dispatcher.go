package port

import (
	"context"

	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

// TaskDispatcher enqueues background session work.
type TaskDispatcher interface {
	EnqueuePurgeSession(ctx context.Context, id uuid.UUID) error
}
