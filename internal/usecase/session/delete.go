package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

type deleterSrv struct {
	repo  port.SessionRepository
	strg  port.Storage
	cache port.Cache
	locks *KeyedLocker
}

// compile-time check: *deleterSrv must satisfy port.SessionDeleter
var _ port.SessionDeleter = (*deleterSrv)(nil)

func NewDeleter(repo port.SessionRepository, strg port.Storage, cache port.Cache, locks *KeyedLocker) port.SessionDeleter {
	return &deleterSrv{repo, strg, cache, locks}
}

// DeleteSession removes the stored objects, deletes the record and clears cache.
func (s *deleterSrv) DeleteSession(ctx context.Context, id uuid.UUID) error {
	unlock := s.locks.Lock(id.String())
	defer unlock()

	sess, err := loadSession(ctx, s.repo, id)
	if err != nil {
		return err
	}

	if sess.Output != nil {
		if err := s.strg.RemoveFile(ctx, sess.Bucket, sess.Output.ObjectKey); err != nil {
			logger.Warnf(ctx, "failed to remove output %q: %v", sess.Output.ObjectKey, err)
		}
	}

	if err := s.strg.RemoveFile(ctx, sess.Bucket, sess.SourceKey); err != nil && !errors.Is(err, ErrObjectNotFound) {
		return fmt.Errorf("failed to remove source %q: %w", sess.SourceKey, err)
	}

	if err := s.repo.Delete(ctx, sess.ID); err != nil {
		return fmt.Errorf("failed deleting session #%s: %w", sess.ID, err)
	}

	invalidate(ctx, s.cache, sess.ID)
	logger.Infof(ctx, "deleted session #%s", sess.ID)
	return nil
}
