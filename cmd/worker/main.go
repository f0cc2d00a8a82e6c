package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fhuszti/resizer-ms-go/internal/cache"
	"github.com/fhuszti/resizer-ms-go/internal/config"
	"github.com/fhuszti/resizer-ms-go/internal/db"
	workerHandler "github.com/fhuszti/resizer-ms-go/internal/handler/worker"
	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/fhuszti/resizer-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/resizer-ms-go/internal/storage"
	"github.com/fhuszti/resizer-ms-go/internal/task"
	sessionSvc "github.com/fhuszti/resizer-ms-go/internal/usecase/session"
	"github.com/hibiken/asynq"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	database := initDb(cfg)

	strg := initStorage(cfg)

	repo := mariadb.NewSessionRepository(database.DB)
	ca := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
	deleteSvc := sessionSvc.NewDeleter(repo, strg, ca, sessionSvc.NewKeyedLocker())

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypePurgeSession, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParsePurgeSessionPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.PurgeSessionHandler(ctx, p, deleteSvc)
	})

	runWorker(ctx, mux, cfg, database)
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDB)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initStorage(cfg *config.Settings) port.Storage {
	strg, err := storage.NewMinioStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(context.Background(), "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}
	if err := strg.InitBucket(cfg.SessionsBucket); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to initialize bucket %q: %v", cfg.SessionsBucket, err)
		os.Exit(1)
	}

	return strg
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{
		Concurrency:     10,
		ShutdownTimeout: 30 * time.Second,
	})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// stop accepting new tasks, wait for in-flight ones up to ShutdownTimeout
	srv.Shutdown()

	if err := database.Close(); err != nil {
		logger.Warnf(ctx, "DB close error: %v", err)
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
