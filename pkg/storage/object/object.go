// Package object stores uploaded document files. Uploads go to a local
// directory by default, or to a MinIO/S3 bucket when configured.
package object

import (
	"context"
	"io"
)

type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}
