package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
)

type TestBucket struct {
	Name    string
	Client  *minio.Client
	Cleanup func() error
}

// SetupTestBucket creates an empty, uniquely named bucket. Cleanup empties
// and removes it.
func SetupTestBucket(cfg MinIOConfig) (*TestBucket, error) {
	ctx := context.Background()
	client, err := cfg.Client()
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	name := fmt.Sprintf("sessions-%d", time.Now().UnixNano())
	if err := client.MakeBucket(ctx, name, minio.MakeBucketOptions{}); err != nil {
		return nil, fmt.Errorf("could not create bucket %q: %w", name, err)
	}

	cleanup := func() error {
		for obj := range client.ListObjects(ctx, name, minio.ListObjectsOptions{Recursive: true}) {
			if obj.Err != nil {
				continue
			}
			_ = client.RemoveObject(ctx, name, obj.Key, minio.RemoveObjectOptions{})
		}
		if err := client.RemoveBucket(ctx, name); err != nil {
			return fmt.Errorf("could not remove bucket %q: %w", name, err)
		}
		return nil
	}

	return &TestBucket{Name: name, Client: client, Cleanup: cleanup}, nil
}

// ObjectKeys lists every key in the bucket.
func (b *TestBucket) ObjectKeys(ctx context.Context) ([]string, error) {
	var keys []string
	for obj := range b.Client.ListObjects(ctx, b.Name, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}
