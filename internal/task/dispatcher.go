package task

import (
	"context"
	"errors"

	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
	"github.com/hibiken/asynq"
)

const purgeMaxRetry = 3

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

type Dispatcher struct {
	client enqueuer
}

// compile-time check: *Dispatcher must satisfy port.TaskDispatcher
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c}
}

// EnqueuePurgeSession schedules one purge per session. A purge already
// waiting in the queue is not duplicated.
func (d *Dispatcher) EnqueuePurgeSession(ctx context.Context, id uuid.UUID) error {
	t, err := NewPurgeSessionTask(id)
	if err != nil {
		return err
	}
	_, err = d.client.EnqueueContext(ctx, t,
		asynq.TaskID(TypePurgeSession+":"+id.String()),
		asynq.MaxRetry(purgeMaxRetry),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		logger.Debugf(ctx, "purge of session #%s already queued", id)
		return nil
	}
	return err
}

func (d *Dispatcher) Close() error {
	return d.client.Close()
}
