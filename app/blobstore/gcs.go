package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"cloud.google.com/go/storage"
	"github.com/codeGROOVE-dev/retry"
	"google.golang.org/api/iterator"
)

// GCS stores objects in a Cloud Storage bucket. Reads and writes are
// retried; "not found" is unrecoverable and surfaces as ErrNotExist.
type GCS struct {
	client *storage.Client
	bucket string
}

var _ Store = (*GCS)(nil)

// UseEmulator points subsequently created storage clients at an
// emulator endpoint. The client library reads the env var when dialing,
// so this must run before NewGCS.
func UseEmulator(host string) error {
	if host == "" {
		return nil
	}
	if err := os.Setenv("STORAGE_EMULATOR_HOST", host); err != nil {
		return fmt.Errorf("set storage emulator host: %w", err)
	}
	slog.Info("Using Cloud Storage emulator", "host", host)
	return nil
}

func NewGCS(ctx context.Context, bucket string) (*GCS, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCS{client: client, bucket: bucket}, nil
}

func (g *GCS) Read(ctx context.Context, key string) ([]byte, error) {
	var data []byte

	err := retry.Do(
		func() error {
			r, openErr := g.client.Bucket(g.bucket).Object(key).NewReader(ctx)
			if openErr != nil {
				if errors.Is(openErr, storage.ErrObjectNotExist) {
					return retry.Unrecoverable(ErrNotExist)
				}
				return fmt.Errorf("open storage reader: %w", openErr)
			}
			defer func() {
				if closeErr := r.Close(); closeErr != nil {
					slog.Warn("Failed to close storage reader", "key", key, "error", closeErr)
				}
			}()

			var readErr error
			data, readErr = io.ReadAll(r)
			if readErr != nil {
				return fmt.Errorf("read from storage: %w", readErr)
			}
			return nil
		},
		g.retryOptions(ctx, "read", key)...,
	)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("read after retries: %w", err)
	}

	return data, nil
}

func (g *GCS) Write(ctx context.Context, key string, data []byte) error {
	err := retry.Do(
		func() error {
			w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
			if _, writeErr := w.Write(data); writeErr != nil {
				if closeErr := w.Close(); closeErr != nil {
					slog.Warn("Failed to close writer after error", "key", key, "error", closeErr)
				}
				return fmt.Errorf("write to storage: %w", writeErr)
			}
			if closeErr := w.Close(); closeErr != nil {
				return fmt.Errorf("close storage writer: %w", closeErr)
			}
			return nil
		},
		g.retryOptions(ctx, "write", key)...,
	)
	if err != nil {
		return fmt.Errorf("write after retries: %w", err)
	}
	return nil
}

func (g *GCS) Delete(ctx context.Context, key string) error {
	err := retry.Do(
		func() error {
			if deleteErr := g.client.Bucket(g.bucket).Object(key).Delete(ctx); deleteErr != nil {
				if errors.Is(deleteErr, storage.ErrObjectNotExist) {
					return retry.Unrecoverable(ErrNotExist)
				}
				return fmt.Errorf("delete from storage: %w", deleteErr)
			}
			return nil
		},
		g.retryOptions(ctx, "delete", key)...,
	)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return ErrNotExist
		}
		return fmt.Errorf("delete after retries: %w", err)
	}
	return nil
}

func (g *GCS) List(ctx context.Context, prefix string) ([]string, error) {
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{Prefix: prefix})

	var keys []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate storage: %w", err)
		}
		keys = append(keys, attrs.Name)
	}

	return keys, nil
}

func (g *GCS) retryOptions(ctx context.Context, op, key string) []retry.Option {
	return []retry.Option{
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.MaxDelay(time.Minute),
		retry.MaxJitter(5 * time.Second),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, retryErr error) {
			slog.Info("Retrying storage operation", "op", op, "attempt", n, "key", key, "error", retryErr)
		}),
	}
}
