package session

import (
	"context"
	"fmt"
	"time"

	"github.com/fhuszti/resizer-ms-go/internal/model"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

const DefaultURLTTL = 15 * time.Minute

type getterSrv struct {
	repo   port.SessionRepository
	strg   port.Storage
	urlTTL time.Duration
}

// compile-time check: *getterSrv must satisfy port.SessionGetter
var _ port.SessionGetter = (*getterSrv)(nil)

func NewGetter(repo port.SessionRepository, strg port.Storage, urlTTL time.Duration) port.SessionGetter {
	if urlTTL <= 0 {
		urlTTL = DefaultURLTTL
	}
	return &getterSrv{repo, strg, urlTTL}
}

// GetSession returns the session state. The preview shows the latest output,
// or the untouched source until an action has run.
func (s *getterSrv) GetSession(ctx context.Context, id uuid.UUID) (*port.GetSessionOutput, error) {
	sess, err := loadSession(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	out := NewSessionView(sess)
	out.ValidUntil = time.Now().Add(s.urlTTL).UTC()

	previewKey := sess.SourceKey
	if sess.Output != nil {
		previewKey = sess.Output.ObjectKey
	}
	out.PreviewURL, err = s.strg.GeneratePresignedDownloadURL(ctx, sess.Bucket, previewKey, s.urlTTL, "", true)
	if err != nil {
		return nil, fmt.Errorf("failed to sign preview for session #%s: %w", id, err)
	}

	if sess.Output != nil {
		out.DownloadURL, err = s.signDownload(ctx, sess)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DownloadLink signs the latest output as an attachment named after its type.
func (s *getterSrv) DownloadLink(ctx context.Context, id uuid.UUID) (string, error) {
	sess, err := loadSession(ctx, s.repo, id)
	if err != nil {
		return "", err
	}
	if sess.Output == nil {
		return "", ErrNoOutput
	}
	return s.signDownload(ctx, sess)
}

func (s *getterSrv) signDownload(ctx context.Context, sess *model.Session) (string, error) {
	url, err := s.strg.GeneratePresignedDownloadURL(
		ctx,
		sess.Bucket,
		sess.Output.ObjectKey,
		s.urlTTL,
		DownloadFilename(sess.Output.MimeType),
		false,
	)
	if err != nil {
		return "", fmt.Errorf("failed to sign download for session #%s: %w", sess.ID, err)
	}
	return url, nil
}

// NewSessionView builds the public representation of a session, without links.
func NewSessionView(sess *model.Session) *port.GetSessionOutput {
	out := &port.GetSessionOutput{
		ID:               sess.ID,
		OriginalFilename: sess.OriginalFilename,
		Source: port.SourceOutput{
			Width:       sess.SourceWidth,
			Height:      sess.SourceHeight,
			MimeType:    sess.SourceMimeType,
			AspectRatio: sess.AspectRatio,
		},
		Form: port.FormOutput{
			Width:     optionalInt(sess.TargetWidth),
			Height:    optionalInt(sess.TargetHeight),
			LockRatio: sess.LockRatio,
		},
		HasOutput: sess.Output != nil,
	}
	if sess.Output != nil {
		out.Output = NewResultView(*sess.Output)
	}
	return out
}

// NewResultView describes a stored output for display.
func NewResultView(o model.Output) *port.ResultOutput {
	return &port.ResultOutput{
		Operation:       o.Operation,
		MimeType:        o.MimeType,
		Width:           o.Width,
		Height:          o.Height,
		Quality:         o.Quality,
		SizeBytes:       o.SizeBytes,
		EstimatedSizeMB: model.RoundMB(o.EstimatedBytes),
		TargetSizeMB:    o.TargetSizeMB,
		TargetReached:   o.TargetReached,
		Filename:        DownloadFilename(o.MimeType),
	}
}

func optionalInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
