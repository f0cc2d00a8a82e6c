package integration

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/fhuszti/resizer-ms-go/internal/model"
	"github.com/fhuszti/resizer-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
	"github.com/fhuszti/resizer-ms-go/test/testutil"
)

func newSession(updatedAt time.Time) *model.Session {
	s := &model.Session{
		ID:        uuid.NewUUID(),
		Bucket:    "sessions",
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
	s.SetSource("sessions/"+s.ID.String()+"/source.jpg", "image/jpeg", "photo.jpg", 1000, 800)
	return s
}

func TestSessionRepositoryIntegration(t *testing.T) {
	ctx := context.Background()
	testDB, err := testutil.SetupMigratedDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	defer func() { _ = testDB.Cleanup() }()
	repo := mariadb.NewSessionRepository(testDB.DB)

	now := time.Now().UTC().Truncate(time.Millisecond)
	sess := newSession(now)
	if err := repo.Create(ctx, sess); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ID != sess.ID || got.SourceWidth != 1000 || got.AspectRatio != 1.25 || got.Output != nil {
		t.Fatalf("unexpected session: %+v", got)
	}

	got.SetLock(true)
	got.ApplyPreset(model.Presets[1])
	got.Output = &model.Output{
		ObjectKey:     "sessions/" + sess.ID.String() + "/output.png",
		MimeType:      "image/png",
		Operation:     model.OperationResize,
		Width:         300,
		Height:        400,
		SizeBytes:     1234,
		TargetReached: true,
	}
	got.UpdatedAt = now.Add(time.Second)
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}

	again, err := repo.GetByID(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if !again.LockRatio || again.TargetWidth != 300 || again.TargetHeight != 400 {
		t.Errorf("form not persisted: %+v", again)
	}
	if again.Output == nil || again.Output.MimeType != "image/png" || again.Output.Width != 300 {
		t.Errorf("output not persisted: %+v", again.Output)
	}

	if err := repo.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, sess.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows after delete, got %v", err)
	}
}

func TestListIDsUpdatedBeforeIntegration(t *testing.T) {
	ctx := context.Background()
	testDB, err := testutil.SetupMigratedDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	defer func() { _ = testDB.Cleanup() }()
	repo := mariadb.NewSessionRepository(testDB.DB)

	now := time.Now().UTC()
	stale := newSession(now.Add(-48 * time.Hour))
	fresh := newSession(now.Add(-time.Minute))
	for _, s := range []*model.Session{stale, fresh} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	ids, err := repo.ListIDsUpdatedBefore(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("ListIDsUpdatedBefore: %v", err)
	}
	if len(ids) != 1 || ids[0] != stale.ID {
		t.Fatalf("got %v; want only %s", ids, stale.ID)
	}
}
