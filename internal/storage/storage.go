package storage

import (
	"context"
	"io"
	"time"
)

// Service stores user avatars in remote object storage.
type Service interface {
	// PutObject uploads a single object and returns its s3://bucket/key location.
	PutObject(ctx context.Context, bucket, key string, body io.Reader, contentType string) (string, error)
	GetObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
	DeleteObject(ctx context.Context, bucket, key string) error
}
