// Package storage reads graph inputs and writes reports through a small
// blob interface backed by the local filesystem or S3.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a key does not exist in the backend.
var ErrNotFound = errors.New("storage: object not found")

// BlobStore defines the interface for abstract storage backends.
type BlobStore interface {
	// Open streams the object stored under key. The caller closes it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Put(ctx context.Context, key string, data []byte) error
}
