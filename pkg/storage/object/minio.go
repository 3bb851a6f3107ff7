package object

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/config"
)

// Bucket stores objects in MinIO or S3 through the MinIO client.
type Bucket struct {
	client      *minio.Client
	bucket      string
	region      string
	storageType string
}

// NewBucket builds the client for the configured provider and makes sure the
// bucket exists.
func NewBucket(ctx context.Context, cfg config.Config) (*Bucket, error) {
	var client *minio.Client
	var err error
	switch cfg.StorageType {
	case "minio":
		client, err = minio.New(cfg.BucketEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.BucketAccessID, cfg.BucketAccessKey, ""),
			Secure: cfg.BucketUseSSL,
		})
	case "s3":
		client, err = minio.New("s3.amazonaws.com", &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.BucketAccessID, cfg.BucketAccessKey, ""),
			Secure: cfg.BucketUseSSL,
			Region: cfg.BucketRegion,
		})
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.StorageType)
	}
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	b := &Bucket{
		client:      client,
		bucket:      cfg.BucketName,
		region:      cfg.BucketRegion,
		storageType: cfg.StorageType,
	}
	if err := b.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bucket) ensureBucket(ctx context.Context) error {
	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if exists {
		return nil
	}
	err = b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{Region: b.region})
	if err != nil {
		// On S3 the bucket may already exist or creation may be forbidden;
		// Put will surface any real problem.
		if b.storageType == "s3" {
			return nil
		}
		return fmt.Errorf("create bucket: %w", err)
	}
	return nil
}

func (b *Bucket) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := b.client.PutObject(ctx, b.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (b *Bucket) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return b.client.GetObject(ctx, b.bucket, key, minio.GetObjectOptions{})
}

func (b *Bucket) Remove(ctx context.Context, key string) error {
	return b.client.RemoveObject(ctx, b.bucket, key, minio.RemoveObjectOptions{})
}
