package testutil

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/ory/dockertest/v3"
)

// MinIOConfig is what a storage client needs to reach a MinIO server.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

type MinIOContainerInfo struct {
	Config  MinIOConfig
	Cleanup func()
}

func StartMinIOContainer() (*MinIOContainerInfo, error) {
	cfg := MinIOConfig{AccessKey: "minioadmin", SecretKey: "minioadmin"}
	c, err := runContainer("minio", "9000/tcp",
		&dockertest.RunOptions{
			Repository: "minio/minio",
			Tag:        "latest",
			Env: []string{
				"MINIO_ROOT_USER=" + cfg.AccessKey,
				"MINIO_ROOT_PASSWORD=" + cfg.SecretKey,
			},
			Cmd: []string{"server", "/data"},
		},
		func(ctx context.Context, addr string) error {
			check := cfg
			check.Endpoint = addr
			client, err := check.Client()
			if err != nil {
				return err
			}
			_, err = client.ListBuckets(ctx)
			return err
		})
	if err != nil {
		return nil, err
	}
	cfg.Endpoint = c.addr
	return &MinIOContainerInfo{Config: cfg, Cleanup: c.purge}, nil
}

// Client opens a raw MinIO client, for setup and assertions that bypass the
// storage layer under test.
func (c MinIOConfig) Client() (*minio.Client, error) {
	return minio.New(c.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
		Secure: c.UseSSL,
	})
}
