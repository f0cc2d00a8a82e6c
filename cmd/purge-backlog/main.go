package main

import (
	"context"
	"os"

	"github.com/fhuszti/resizer-ms-go/internal/config"
	"github.com/fhuszti/resizer-ms-go/internal/db"
	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/fhuszti/resizer-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/resizer-ms-go/internal/task"
	sessionSvc "github.com/fhuszti/resizer-ms-go/internal/usecase/session"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "❌  Redis not configured: this command requires a running Redis instance")
		os.Exit(1)
	}

	logger.Init()

	database, err := db.New(cfg.MariaDB)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	dispatcher := task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
	repo := mariadb.NewSessionRepository(database.DB)

	purger := sessionSvc.NewBacklogPurger(repo, dispatcher, cfg.SessionTTL)
	err = purger.PurgeBacklog(ctx)

	if cErr := dispatcher.Close(); cErr != nil {
		logger.Warnf(ctx, "dispatcher close error: %v", cErr)
	}
	if cErr := database.Close(); cErr != nil {
		logger.Warnf(ctx, "DB close error: %v", cErr)
	}
	if err != nil {
		logger.Errorf(ctx, "❌  Backlog purge failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Backlog purge completed")
}
