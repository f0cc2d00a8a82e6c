package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/fhuszti/resizer-ms-go/internal/model"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

func loadSession(ctx context.Context, repo port.SessionRepository, id uuid.UUID) (*model.Session, error) {
	s, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session #%s: %w", id, err)
	}
	return s, nil
}

// invalidate drops the rendered session and its ETag from cache.
func invalidate(ctx context.Context, cache port.Cache, id uuid.UUID) {
	if err := cache.DeleteSessionDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "failed deleting cache for session #%s: %v", id, err)
	}
	if err := cache.DeleteEtagSessionDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "failed deleting etag cache for session #%s: %v", id, err)
	}
}
