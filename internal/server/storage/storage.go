// Package storage abstracts blob persistence for request attachments. The
// dispatch service stores file content under opaque keys; metadata stays in
// the database.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// BlobStore persists attachment content under opaque keys.
type BlobStore interface {
	Put(ctx context.Context, key string, content io.Reader) (int64, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// RandomStorageKey produces a date-partitioned key for a new blob.
func RandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("requests/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}
