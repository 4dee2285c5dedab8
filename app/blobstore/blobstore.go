// Package blobstore abstracts where JSON config and newsletter files
// live: the local filesystem in development, Cloud Storage in
// production. The implementation is picked once at startup.
package blobstore

import (
	"context"
	"errors"
)

// ErrNotExist is returned when the requested object is absent.
var ErrNotExist = errors.New("blobstore: object doesn't exist")

type Store interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}
