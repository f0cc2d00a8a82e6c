package session

import (
	"context"
	"time"

	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/fhuszti/resizer-ms-go/internal/port"
)

const DefaultSessionTTL = 24 * time.Hour

type backlogPurgerSrv struct {
	repo  port.SessionRepository
	tasks port.TaskDispatcher
	ttl   time.Duration
}

// compile-time check: *backlogPurgerSrv must satisfy port.BacklogPurger
var _ port.BacklogPurger = (*backlogPurgerSrv)(nil)

// NewBacklogPurger constructs a BacklogPurger implementation.
func NewBacklogPurger(repo port.SessionRepository, tasks port.TaskDispatcher, ttl time.Duration) port.BacklogPurger {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &backlogPurgerSrv{repo, tasks, ttl}
}

// PurgeBacklog enqueues a purge task for every session left untouched for longer than the TTL.
func (s *backlogPurgerSrv) PurgeBacklog(ctx context.Context) error {
	cutoff := time.Now().Add(-s.ttl)
	ids, err := s.repo.ListIDsUpdatedBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		logger.Info(ctx, "no stale sessions found to purge")
	}

	for _, id := range ids {
		logger.Infof(ctx, "scheduling purge for session #%s", id)
		if err := s.tasks.EnqueuePurgeSession(ctx, id); err != nil {
			logger.Warnf(ctx, "failed to enqueue purge task for session #%s: %v", id, err)
		}
	}
	return nil
}
