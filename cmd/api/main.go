package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fhuszti/resizer-ms-go/internal/cache"
	"github.com/fhuszti/resizer-ms-go/internal/config"
	"github.com/fhuszti/resizer-ms-go/internal/db"
	"github.com/fhuszti/resizer-ms-go/internal/handler"
	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/fhuszti/resizer-ms-go/internal/optimiser"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/fhuszti/resizer-ms-go/internal/renderer"
	"github.com/fhuszti/resizer-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/resizer-ms-go/internal/storage"
	sessionSvc "github.com/fhuszti/resizer-ms-go/internal/usecase/session"
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
	"github.com/go-chi/chi/v5"
	"golang.org/x/net/netutil"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)
	strg := initStorage(ctx, cfg)
	opt := initOptimiser(ctx, cfg)

	repo := mariadb.NewSessionRepository(database.DB)
	var ca port.Cache
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		logger.Warn(ctx, "⚠️  Redis not configured, caching is disabled")
	}

	locks := sessionSvc.NewKeyedLocker()
	r, err := handler.NewRouter(handler.Services{
		Uploader:      sessionSvc.NewUploader(repo, strg, opt, ca, locks, uuid.NewUUID, cfg.SessionsBucket, cfg.MaxUploadSize),
		Editor:        sessionSvc.NewFormEditor(repo, ca, locks),
		Transformer:   sessionSvc.NewTransformer(repo, strg, opt, ca, locks),
		Getter:        sessionSvc.NewGetter(repo, strg, cfg.URLTTL),
		Deleter:       sessionSvc.NewDeleter(repo, strg, ca, locks),
		Renderer:      renderer.NewHTTPRenderer(ca, locks),
		MaxUploadSize: cfg.MaxUploadSize,
		JWTPublicKey:  cfg.JWTPublicKey,
	})
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to build router: %v", err)
		os.Exit(1)
	}

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDB)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewMinioStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}
	if err := strg.InitBucket(cfg.SessionsBucket); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.SessionsBucket, err)
		os.Exit(1)
	}

	return strg
}

func initOptimiser(ctx context.Context, cfg *config.Settings) port.ImageOptimiser {
	lossy, err := optimiser.NewLossyEncoder(cfg.LossyFormat)
	if err != nil {
		logger.Errorf(ctx, "❌  LOSSY_FORMAT: %v", err)
		os.Exit(1)
	}
	lossless, err := optimiser.NewLosslessEncoder(cfg.LosslessFormat)
	if err != nil {
		logger.Errorf(ctx, "❌  LOSSLESS_FORMAT: %v", err)
		os.Exit(1)
	}
	estimate, err := optimiser.NewSizeEstimator(cfg.SizeEstimator)
	if err != nil {
		logger.Errorf(ctx, "❌  SIZE_ESTIMATOR: %v", err)
		os.Exit(1)
	}

	logger.Infof(ctx, "image pipeline: lossy=%s lossless=%s estimator=%s", lossy.MimeType(), lossless.MimeType(), cfg.SizeEstimator)
	return optimiser.NewOptimiser(lossy, lossless, estimate, cfg.MaxDimension)
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		logger.Errorf(ctx, "❌  Listen error: %v", err)
		os.Exit(1)
	}
	if cfg.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, cfg.MaxConnections)
		logger.Infof(ctx, "connections capped at %d", cfg.MaxConnections)
	}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Serve error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
