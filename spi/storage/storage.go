// Package storage declares provider contracts for blob and key-value
// backends. Implementations live in provider repositories; this package
// carries signatures only.
package storage

import (
	"context"
	"io"
)

// BlobInfo describes a stored object.
type BlobInfo struct {
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
	ETag        string `json:"etag,omitempty"`
}

// BlobReader reads objects from a blob backend.
type BlobReader interface {
	// Get opens the object at key for reading. The caller must close the
	// returned reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Stat returns metadata for the object at key without reading it.
	Stat(ctx context.Context, key string) (BlobInfo, error)
}

// BlobWriter writes objects to a blob backend.
type BlobWriter interface {
	// Delete removes the object at key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// Put stores the contents of r at key, replacing any existing object.
	Put(ctx context.Context, key string, r io.Reader) (BlobInfo, error)
}

// BlobLister enumerates objects under a key prefix.
type BlobLister interface {
	// List returns metadata for every object whose key starts with prefix,
	// in lexicographic key order.
	List(ctx context.Context, prefix string) ([]BlobInfo, error)
}

// KV is a minimal key-value provider contract.
type KV interface {
	// Del removes a key. Removing a missing key is not an error.
	Del(ctx context.Context, key string) error

	// Load returns the value stored at key.
	Load(ctx context.Context, key string) ([]byte, error)

	// Store sets key to value.
	Store(ctx context.Context, key string, value []byte) error
}

// Lease is a coarse mutual-exclusion contract for providers that support
// leased ownership of a resource.
type Lease interface {
	// Acquire takes the lease, blocking until it is held or ctx is done.
	Acquire(ctx context.Context) error

	// Release gives the lease up. Releasing an unheld lease is an error.
	Release(ctx context.Context) error
}
