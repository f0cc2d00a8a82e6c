package session

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/fhuszti/resizer-ms-go/internal/model"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/gabriel-vasile/mimetype"
)

type uploaderSrv struct {
	repo    port.SessionRepository
	strg    port.Storage
	opt     port.ImageOptimiser
	cache   port.Cache
	locks   *KeyedLocker
	genUUID port.UUIDGen
	bucket  string
	maxSize int64
}

// compile-time check: *uploaderSrv must satisfy port.SessionUploader
var _ port.SessionUploader = (*uploaderSrv)(nil)

func NewUploader(
	repo port.SessionRepository,
	strg port.Storage,
	opt port.ImageOptimiser,
	cache port.Cache,
	locks *KeyedLocker,
	genUUID port.UUIDGen,
	bucket string,
	maxSize int64,
) port.SessionUploader {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	return &uploaderSrv{repo, strg, opt, cache, locks, genUUID, bucket, maxSize}
}

type upload struct {
	data     []byte
	mimeType string
	ext      string
	src      model.SourceImage
}

// CreateSession validates the upload, stores it untouched and opens a session
// with empty form fields, lock off and no output.
func (s *uploaderSrv) CreateSession(ctx context.Context, in port.CreateSessionInput) (*model.Session, error) {
	up, err := s.read(in.Reader)
	if err != nil {
		return nil, err
	}

	id := s.genUUID()
	key := sourceKey(id, up.ext)
	if err := s.save(ctx, s.bucket, key, up); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sess := &model.Session{
		ID:        id,
		Bucket:    s.bucket,
		CreatedAt: now,
		UpdatedAt: now,
	}
	sess.SetSource(key, up.mimeType, in.Filename, up.src.Width, up.src.Height)

	if err := s.repo.Create(ctx, sess); err != nil {
		if rmErr := s.strg.RemoveFile(ctx, s.bucket, key); rmErr != nil {
			logger.Warnf(ctx, "failed to clean up source %q: %v", key, rmErr)
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	logger.Infof(ctx, "created session #%s from %q (%dx%d %s)", id, in.Filename, up.src.Width, up.src.Height, up.mimeType)
	return sess, nil
}

// ReplaceSource swaps the uploaded image. Form fields and lock are kept, the
// aspect ratio is re-captured and the previous output is dropped.
func (s *uploaderSrv) ReplaceSource(ctx context.Context, in port.ReplaceSourceInput) (*model.Session, error) {
	up, err := s.read(in.Reader)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(in.ID.String())
	defer unlock()

	sess, err := loadSession(ctx, s.repo, in.ID)
	if err != nil {
		return nil, err
	}

	// the live source stays untouched until the record points elsewhere
	key := replacementKey(sess.ID, s.genUUID(), up.ext)
	if err := s.save(ctx, sess.Bucket, key, up); err != nil {
		return nil, err
	}

	stale := []string{sess.SourceKey}
	if sess.Output != nil {
		stale = append(stale, sess.Output.ObjectKey)
	}

	sess.SetSource(key, up.mimeType, in.Filename, up.src.Width, up.src.Height)
	sess.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, sess); err != nil {
		if rmErr := s.strg.RemoveFile(ctx, sess.Bucket, key); rmErr != nil {
			logger.Warnf(ctx, "failed to clean up replacement %q: %v", key, rmErr)
		}
		return nil, fmt.Errorf("failed updating session #%s: %w", sess.ID, err)
	}
	invalidate(ctx, s.cache, sess.ID)

	for _, k := range stale {
		if err := s.strg.RemoveFile(ctx, sess.Bucket, k); err != nil {
			logger.Warnf(ctx, "failed to remove stale object %q: %v", k, err)
		}
	}

	logger.Infof(ctx, "replaced source of session #%s with %q", sess.ID, in.Filename)
	return sess, nil
}

func (s *uploaderSrv) read(r io.Reader) (upload, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return upload{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return upload{}, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, s.maxSize)
	}

	mimeType := mimetype.Detect(data).String()
	if !IsImage(mimeType) {
		return upload{}, fmt.Errorf("%w: detected %q", ErrDecodeFailure, mimeType)
	}
	ext, err := MimeTypeToExtension(mimeType)
	if err != nil {
		return upload{}, fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}

	src, err := s.opt.Decode(bytes.NewReader(data))
	if err != nil {
		return upload{}, err
	}
	return upload{data: data, mimeType: mimeType, ext: ext, src: src}, nil
}

func (s *uploaderSrv) save(ctx context.Context, bucket, key string, up upload) error {
	if err := s.strg.SaveFile(
		ctx,
		bucket,
		key,
		bytes.NewReader(up.data),
		int64(len(up.data)),
		map[string]string{
			"Content-Type": up.mimeType,
		},
	); err != nil {
		return fmt.Errorf("failed to store source %q: %w", key, err)
	}
	return nil
}
