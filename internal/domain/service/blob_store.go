package service

import (
	"context"
	"io"
)

// BlobStore persists file contents under opaque keys.
type BlobStore interface {
	// Put writes the content read from r under key.
	Put(ctx context.Context, key, contentType string, r io.Reader) error

	// Open returns a reader over the content stored under key. Callers must close it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether key is already stored.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes the content stored under key.
	Delete(ctx context.Context, key string) error
}
