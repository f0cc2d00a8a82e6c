package testutil

import (
	"context"

	"github.com/fhuszti/resizer-ms-go/internal/cache"
	workerHandler "github.com/fhuszti/resizer-ms-go/internal/handler/worker"
	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/fhuszti/resizer-ms-go/internal/task"
	sessionSvc "github.com/fhuszti/resizer-ms-go/internal/usecase/session"
	"github.com/hibiken/asynq"
)

// StartPurgeWorker runs an asynq worker handling purge tasks and returns a
// function that shuts it down.
func StartPurgeWorker(repo port.SessionRepository, strg port.Storage, redisAddr string) func() {
	deleteSvc := sessionSvc.NewDeleter(repo, strg, cache.NewNoop(), sessionSvc.NewKeyedLocker())

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypePurgeSession, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParsePurgeSessionPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.PurgeSessionHandler(ctx, p, deleteSvc)
	})

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{Concurrency: 2})
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "worker stopped: %v", err)
		}
	}()

	return srv.Shutdown
}
