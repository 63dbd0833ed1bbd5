package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/config"
)

// MinioArchive implements ObjectArchive against any S3-compatible endpoint.
type MinioArchive struct {
	client *minio.Client
	bucket string
}

// NewMinioArchive builds the archive client and ensures the bucket exists.
func NewMinioArchive(ctx context.Context, cfg config.ArchiveConfig) (*MinioArchive, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("archive endpoint must be provided")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("archive credentials must be provided")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("archive bucket must be provided")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build archive client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check archive bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create archive bucket: %w", err)
		}
	}

	return &MinioArchive{client: client, bucket: cfg.Bucket}, nil
}

func (a *MinioArchive) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("archive put %s failed: %w", key, err)
	}
	return nil
}

func (a *MinioArchive) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	results := make([]ObjectInfo, 0)
	for object := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, fmt.Errorf("archive list failed: %w", object.Err)
		}
		results = append(results, ObjectInfo{Key: object.Key, Size: object.Size})
	}
	return results, nil
}

func (a *MinioArchive) Download(ctx context.Context, key string) ([]byte, error) {
	object, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("archive get %s failed: %w", key, err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("archive read %s failed: %w", key, err)
	}
	return data, nil
}

var _ ObjectArchive = (*MinioArchive)(nil)

// NoopArchive discards everything. Used when archiving is disabled.
type NoopArchive struct{}

func (NoopArchive) Put(ctx context.Context, key string, data []byte, contentType string) error {
	return nil
}

func (NoopArchive) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	return nil, nil
}

func (NoopArchive) Download(ctx context.Context, key string) ([]byte, error) {
	return nil, fmt.Errorf("archive disabled")
}

var _ ObjectArchive = NoopArchive{}
