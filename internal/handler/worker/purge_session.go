package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/fhuszti/resizer-ms-go/internal/task"
	"github.com/fhuszti/resizer-ms-go/internal/usecase/session"
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
	"github.com/hibiken/asynq"
)

// PurgeSessionHandler handles a purge-session task by deleting the session
// with its stored objects. A session that is already gone counts as done.
func PurgeSessionHandler(ctx context.Context, p task.PurgeSessionPayload, svc port.SessionDeleter) error {
	if p.SessionID == uuid.Nil {
		logger.Error(ctx, "❌  Purge task without session ID")
		return fmt.Errorf("empty session id: %w", asynq.SkipRetry)
	}

	err := svc.DeleteSession(ctx, p.SessionID)
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		logger.Infof(ctx, "✅  Session #%s already purged", p.SessionID)
		return nil
	case err != nil:
		logger.Errorf(ctx, "❌  Failed to purge session #%s: %v", p.SessionID, err)
		return err
	}

	logger.Infof(ctx, "✅  Successfully purged session #%s", p.SessionID)
	return nil
}
