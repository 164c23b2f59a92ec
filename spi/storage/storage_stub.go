package storage

import (
	"context"
	"io"
)

// StubKV is a placeholder KV for wiring tests. Every method panics.
type StubKV struct{}

var _ KV = StubKV{}

func (StubKV) Del(ctx context.Context, key string) error {
	panic("spiguard: not implemented")
}

func (StubKV) Load(ctx context.Context, key string) ([]byte, error) {
	panic("spiguard: not implemented")
}

func (StubKV) Store(ctx context.Context, key string, value []byte) error {
	panic("spiguard: not implemented")
}

// StubBlobReader is a placeholder BlobReader for wiring tests.
type StubBlobReader struct{}

var _ BlobReader = StubBlobReader{}

func (StubBlobReader) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	panic("spiguard: not implemented")
}

func (StubBlobReader) Stat(ctx context.Context, key string) (BlobInfo, error) {
	panic("spiguard: not implemented")
}
