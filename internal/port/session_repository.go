package port

import (
	"context"
	"time"

	"github.com/fhuszti/resizer-ms-go/internal/model"
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

// SessionRepository defines persistence operations for resize sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *model.Session) error
	Update(ctx context.Context, s *model.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListIDsUpdatedBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error)
}
