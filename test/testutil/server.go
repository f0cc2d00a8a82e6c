package testutil

import (
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/fhuszti/resizer-ms-go/internal/cache"
	"github.com/fhuszti/resizer-ms-go/internal/handler"
	"github.com/fhuszti/resizer-ms-go/internal/optimiser"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/fhuszti/resizer-ms-go/internal/renderer"
	"github.com/fhuszti/resizer-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/resizer-ms-go/internal/storage"
	sessionSvc "github.com/fhuszti/resizer-ms-go/internal/usecase/session"
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

// NewAPIServer serves the full router over real MariaDB and MinIO. An empty
// redisAddr runs without cache.
func NewAPIServer(t *testing.T, db *sql.DB, minioCfg MinIOConfig, bucket, redisAddr string) *httptest.Server {
	t.Helper()

	strg, err := storage.NewMinioStorage(minioCfg.Endpoint, minioCfg.AccessKey, minioCfg.SecretKey, minioCfg.UseSSL)
	if err != nil {
		t.Fatalf("storage: %v", err)
	}

	var ca port.Cache = cache.NewNoop()
	if redisAddr != "" {
		ca = cache.NewCache(redisAddr, "")
	}

	opt := optimiser.NewOptimiser(optimiser.NewJPEGEncoder(), optimiser.NewPNGEncoder(), optimiser.EstimateDataURLSize, 0)
	repo := mariadb.NewSessionRepository(db)
	locks := sessionSvc.NewKeyedLocker()

	r, err := handler.NewRouter(handler.Services{
		Uploader:    sessionSvc.NewUploader(repo, strg, opt, ca, locks, uuid.NewUUID, bucket, 0),
		Editor:      sessionSvc.NewFormEditor(repo, ca, locks),
		Transformer: sessionSvc.NewTransformer(repo, strg, opt, ca, locks),
		Getter:      sessionSvc.NewGetter(repo, strg, 0),
		Deleter:     sessionSvc.NewDeleter(repo, strg, ca, locks),
		Renderer:    renderer.NewHTTPRenderer(ca, locks),
	})
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}
