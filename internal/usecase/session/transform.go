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
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

type transformerSrv struct {
	repo  port.SessionRepository
	strg  port.Storage
	opt   port.ImageOptimiser
	cache port.Cache
	locks *KeyedLocker
}

// compile-time check: *transformerSrv must satisfy port.SessionTransformer
var _ port.SessionTransformer = (*transformerSrv)(nil)

func NewTransformer(repo port.SessionRepository, strg port.Storage, opt port.ImageOptimiser, cache port.Cache, locks *KeyedLocker) port.SessionTransformer {
	return &transformerSrv{repo, strg, opt, cache, locks}
}

// Resize renders the source at the form dimensions without loss.
func (s *transformerSrv) Resize(ctx context.Context, id uuid.UUID) (port.TransformOutput, error) {
	return s.run(ctx, id, model.OperationResize, 0, func(src model.SourceImage, target model.Dimensions) (model.EncodedImage, error) {
		return s.opt.Resize(src, target)
	})
}

// Compress renders the source at the form dimensions and lowers the quality
// until the result fits TargetSizeMB. Missing the target is reported as a
// warning, the output is still stored.
func (s *transformerSrv) Compress(ctx context.Context, in port.CompressInput) (port.TransformOutput, error) {
	return s.run(ctx, in.ID, model.OperationCompress, in.TargetSizeMB, func(src model.SourceImage, target model.Dimensions) (model.EncodedImage, error) {
		return s.opt.Compress(src, target, in.TargetSizeMB)
	})
}

type transformFunc func(src model.SourceImage, target model.Dimensions) (model.EncodedImage, error)

func (s *transformerSrv) run(ctx context.Context, id uuid.UUID, operation string, targetSizeMB float64, transform transformFunc) (port.TransformOutput, error) {
	unlock := s.locks.Lock(id.String())
	defer unlock()

	sess, err := loadSession(ctx, s.repo, id)
	if err != nil {
		return port.TransformOutput{}, err
	}

	src, err := s.loadSource(ctx, sess)
	if err != nil {
		return port.TransformOutput{}, err
	}

	img, err := transform(src, sess.Targets())
	if err != nil {
		return port.TransformOutput{}, err
	}

	ext, err := MimeTypeToExtension(img.MimeType)
	if err != nil {
		return port.TransformOutput{}, err
	}
	key := outputKey(sess.ID, ext)
	if err := s.strg.SaveFile(
		ctx,
		sess.Bucket,
		key,
		bytes.NewReader(img.Data),
		int64(len(img.Data)),
		map[string]string{
			"Content-Type": img.MimeType,
		},
	); err != nil {
		return port.TransformOutput{}, fmt.Errorf("failed to store output %q: %w", key, err)
	}

	var previous string
	if sess.Output != nil && sess.Output.ObjectKey != key {
		previous = sess.Output.ObjectKey
	}

	sess.Output = &model.Output{
		ObjectKey:      key,
		MimeType:       img.MimeType,
		Operation:      operation,
		Width:          img.Width,
		Height:         img.Height,
		Quality:        img.Quality,
		SizeBytes:      img.SizeBytes,
		EstimatedBytes: img.EstimatedBytes,
		TargetSizeMB:   targetSizeMB,
		TargetReached:  img.TargetReached,
	}
	sess.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, sess); err != nil {
		return port.TransformOutput{}, fmt.Errorf("failed updating session #%s: %w", sess.ID, err)
	}
	invalidate(ctx, s.cache, sess.ID)

	if previous != "" {
		if err := s.strg.RemoveFile(ctx, sess.Bucket, previous); err != nil {
			logger.Warnf(ctx, "failed to remove previous output %q: %v", previous, err)
		}
	}

	warning := img.Err()
	if warning != nil {
		logger.Warnf(ctx, "session #%s: %v (estimated %.2f MB at quality %.2f)", sess.ID, warning, img.EstimatedMB(), img.Quality)
	}
	logger.Infof(ctx, "%s of session #%s done: %dx%d %s, %d bytes", operation, sess.ID, img.Width, img.Height, img.MimeType, img.SizeBytes)

	return port.TransformOutput{Session: sess, Image: img, Warning: warning}, nil
}

func (s *transformerSrv) loadSource(ctx context.Context, sess *model.Session) (model.SourceImage, error) {
	file, err := s.strg.GetFile(ctx, sess.Bucket, sess.SourceKey)
	if err != nil {
		return model.SourceImage{}, fmt.Errorf("failed to fetch source %q: %w", sess.SourceKey, err)
	}
	defer func(file io.ReadCloser) {
		if err := file.Close(); err != nil {
			logger.Warnf(ctx, "failed to close source reader: %v", err)
		}
	}(file)

	return s.opt.Decode(file)
}
