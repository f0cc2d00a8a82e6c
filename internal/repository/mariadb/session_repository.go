package mariadb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/fhuszti/resizer-ms-go/internal/model"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

type SessionRepository struct {
	db *sql.DB
}

// compile-time check: *SessionRepository must satisfy port.SessionRepository
var _ port.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *model.Session) error {
	logger.Debugf(ctx, "creating database record for session #%s...", s.ID)

	const query = `
      INSERT INTO sessions
        (id, original_filename, bucket, source_key, source_mime_type, source_width, source_height, aspect_ratio, target_width, target_height, lock_ratio, output, created_at, updated_at)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.OriginalFilename, s.Bucket,
		s.SourceKey, s.SourceMimeType,
		s.SourceWidth, s.SourceHeight, s.AspectRatio,
		s.TargetWidth, s.TargetHeight, s.LockRatio,
		s.Output, s.CreatedAt, s.UpdatedAt,
	)
	return err
}

func (r *SessionRepository) Update(ctx context.Context, s *model.Session) error {
	logger.Debugf(ctx, "updating database record for session #%s...", s.ID)

	const query = `
      UPDATE sessions
      SET
        original_filename = ?,
        source_key        = ?,
        source_mime_type  = ?,
        source_width      = ?,
        source_height     = ?,
        aspect_ratio      = ?,
        target_width      = ?,
        target_height     = ?,
        lock_ratio        = ?,
        output            = ?,
        updated_at        = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		s.OriginalFilename,
		s.SourceKey,
		s.SourceMimeType,
		s.SourceWidth,
		s.SourceHeight,
		s.AspectRatio,
		s.TargetWidth,
		s.TargetHeight,
		s.LockRatio,
		s.Output,
		s.UpdatedAt,
		s.ID, // WHERE clause
	)
	return err
}

// GetByID returns sql.ErrNoRows when the session does not exist.
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	logger.Debugf(ctx, "fetching session #%s from the database...", id)

	const query = `
      SELECT id, original_filename, bucket, source_key, source_mime_type, source_width, source_height, aspect_ratio, target_width, target_height, lock_ratio, output, created_at, updated_at
      FROM sessions
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, id)
	var s model.Session
	var output []byte
	if err := row.Scan(
		&s.ID, &s.OriginalFilename, &s.Bucket,
		&s.SourceKey, &s.SourceMimeType,
		&s.SourceWidth, &s.SourceHeight, &s.AspectRatio,
		&s.TargetWidth, &s.TargetHeight, &s.LockRatio,
		&output, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if output != nil {
		s.Output = &model.Output{}
		if err := s.Output.Scan(output); err != nil {
			return nil, fmt.Errorf("session #%s: %w", id, err)
		}
	}
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logger.Debugf(ctx, "deleting session #%s from the database...", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

func (r *SessionRepository) ListIDsUpdatedBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	const query = `
      SELECT id
      FROM sessions
      WHERE updated_at < ?
      ORDER BY updated_at
    `
	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
