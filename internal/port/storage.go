package port

import (
	"context"
	"io"
	"time"
)

// Storage defines object storage operations.
type Storage interface {
	InitBucket(bucket string) error
	// GeneratePresignedDownloadURL signs a GET. A non-empty downloadName sets
	// the response Content-Disposition, inline or as an attachment.
	GeneratePresignedDownloadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration, downloadName string, inline bool) (string, error)
	GetFile(ctx context.Context, bucket, fileKey string) (io.ReadCloser, error)
	SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error
	RemoveFile(ctx context.Context, bucket, fileKey string) error
}
