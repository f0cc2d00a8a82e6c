package mock

import (
	"bytes"
	"context"
	"io"
	"time"
)

// Storage implements the storage interface for tests. Saved objects can be
// read back through GetFile.
type Storage struct {
	// stored values
	Files map[string][]byte

	// captured inputs
	ObjectKey    string
	TTL          time.Duration
	DownloadName string
	Inline       bool
	SaveOpts     map[string]string
	SavedKeys    []string
	RemovedKeys  []string

	// errors
	InitBucketErr           error
	GenerateDownloadLinkErr error
	RemoveErr               error
	GetErr                  error
	SaveErr                 error

	// call flags
	InitBucketCalled           bool
	GenerateDownloadLinkCalled bool
	RemoveCalled               bool
	GetCalled                  bool
	SaveCalled                 bool
}

func (m *Storage) InitBucket(bucket string) error {
	m.InitBucketCalled = true
	return m.InitBucketErr
}

func (m *Storage) GeneratePresignedDownloadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration, downloadName string, inline bool) (string, error) {
	m.GenerateDownloadLinkCalled = true
	m.ObjectKey = fileKey
	m.TTL = expiry
	m.DownloadName = downloadName
	m.Inline = inline
	if m.GenerateDownloadLinkErr != nil {
		return "", m.GenerateDownloadLinkErr
	}
	return "https://example.com/" + bucket + "/" + fileKey, nil
}

func (m *Storage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	m.RemoveCalled = true
	m.RemovedKeys = append(m.RemovedKeys, fileKey)
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	delete(m.Files, fileKey)
	return nil
}

func (m *Storage) GetFile(ctx context.Context, bucket, fileKey string) (io.ReadCloser, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if data, ok := m.Files[fileKey]; ok {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	return io.NopCloser(bytes.NewReader([]byte("dummy"))), nil
}

func (m *Storage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	m.SaveCalled = true
	m.SavedKeys = append(m.SavedKeys, fileKey)
	m.SaveOpts = opts
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if m.Files == nil {
		m.Files = map[string][]byte{}
	}
	m.Files[fileKey] = data
	return nil
}
