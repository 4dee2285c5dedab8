// Package newsletter serves issue metadata from a JSON manifest and
// the per-issue HTML bodies, both read through the blob store.
package newsletter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"github.com/techpulse/blog-api/app/blobstore"
)

const (
	manifestKey = "newsletters/manifest.json"
	htmlPrefix  = "newsletters/html"
)

// Entry is one newsletter issue as described by the manifest.
type Entry struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	URL          string `json:"url"`
	SentDate     string `json:"sentDate"`
	HTMLFilePath string `json:"htmlFilePath"`
	PublicURL    string `json:"publicUrl"`
	Filename     string `json:"filename"`
}

type Service struct {
	store blobstore.Store
}

func NewService(store blobstore.Store) *Service {
	return &Service{store: store}
}

// List returns all manifest entries. A missing manifest is an empty
// list, not an error.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	data, err := s.store.Read(ctx, manifestKey)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("read newsletter manifest: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse newsletter manifest: %w", err)
	}

	return entries, nil
}

// Get returns the manifest entry for a filename, or nil when absent.
func (s *Service) Get(ctx context.Context, filename string) (*Entry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		if entries[i].Filename == filename {
			return &entries[i], nil
		}
	}
	return nil, nil
}

// HTML returns the raw HTML body for an issue. The manifest's
// htmlFilePath wins; issues without one fall back to the conventional
// location under the html prefix.
func (s *Service) HTML(ctx context.Context, filename string) ([]byte, error) {
	entry, err := s.Get(ctx, filename)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, blobstore.ErrNotExist
	}

	key := entry.HTMLFilePath
	if key == "" {
		key = path.Join(htmlPrefix, filename)
	}

	data, err := s.store.Read(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read newsletter body: %w", err)
	}
	return data, nil
}
