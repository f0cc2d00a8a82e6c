package main

import (
	"context"
	"os"
	"strings"

	"github.com/fhuszti/resizer-ms-go/internal/config"
	"github.com/fhuszti/resizer-ms-go/internal/db"
	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/fhuszti/resizer-ms-go/internal/migration"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database, err := initDb(cfg)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	if err := migration.MigrateUp(database.DB); err != nil {
		logger.Errorf(ctx, "❌  Migration up failed: %v", err)
		os.Exit(1)
	}

	logger.Info(ctx, "✅  Migrations applied successfully")
}

func initDb(cfg *config.Settings) (*db.Database, error) {
	dbCfg := cfg.MariaDB
	sep := "?"
	if strings.Contains(dbCfg.DSN, "?") {
		sep = "&"
	}
	dbCfg.DSN += sep + "multiStatements=true"
	return db.New(dbCfg)
}
