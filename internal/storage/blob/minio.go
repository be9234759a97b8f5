// Package blob stores uploaded voice recordings in S3-compatible object
// storage and hands out presigned URLs so audio bytes never pass through
// the API server.
package blob

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/mindhaven/backend/internal/config"
)

// Store is a minio-backed blob store scoped to a single bucket.
type Store struct {
	client         *minio.Client
	bucket         string
	uploadExpiry   time.Duration
	downloadExpiry time.Duration
}

// New creates a blob store and ensures the configured bucket exists.
func New(ctx context.Context, cfg config.StorageConfig) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &Store{
		client:         client,
		bucket:         cfg.Bucket,
		uploadExpiry:   cfg.UploadExpiry,
		downloadExpiry: cfg.DownloadExpiry,
	}, nil
}

// PresignedUpload returns a presigned PUT URL for the given object key.
// The client uploads recording bytes directly against this URL.
func (s *Store) PresignedUpload(ctx context.Context, object string) (string, error) {
	u, err := s.client.PresignedPutObject(ctx, s.bucket, object, s.uploadExpiry)
	if err != nil {
		return "", fmt.Errorf("presign upload: %w", err)
	}
	return u.String(), nil
}

// PresignedDownload returns a presigned GET URL for the given object key.
// Clients stream recording bytes for playback directly against this URL.
func (s *Store) PresignedDownload(ctx context.Context, object string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, object, s.downloadExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return u.String(), nil
}
