// Package configstore keeps the two small JSON-backed configuration
// lists (feed sources and the keyword vocabulary) in the blob store.
package configstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/techpulse/blog-api/app/blobstore"
	"github.com/techpulse/blog-api/app/feed"
)

const (
	feedsKey    = "config/feeds.json"
	keywordsKey = "config/keywords.json"
)

// ErrExists is returned when adding an entry whose key is taken.
var ErrExists = errors.New("configstore: entry already exists")

// ErrMissing is returned when updating or deleting an absent entry.
var ErrMissing = errors.New("configstore: entry not found")

type Store struct {
	blobs blobstore.Store
}

func NewStore(blobs blobstore.Store) *Store {
	return &Store{blobs: blobs}
}

func (s *Store) FeedSources(ctx context.Context) ([]feed.Source, error) {
	var sources []feed.Source
	if err := s.readList(ctx, feedsKey, &sources); err != nil {
		return nil, err
	}
	if sources == nil {
		sources = []feed.Source{}
	}
	return sources, nil
}

func (s *Store) SaveFeedSources(ctx context.Context, sources []feed.Source) error {
	return s.writeList(ctx, feedsKey, sources)
}

func (s *Store) AddFeedSource(ctx context.Context, source feed.Source) error {
	sources, err := s.FeedSources(ctx)
	if err != nil {
		return err
	}

	for _, existing := range sources {
		if existing.Name == source.Name {
			return ErrExists
		}
	}

	return s.SaveFeedSources(ctx, append(sources, source))
}

func (s *Store) UpdateFeedSource(ctx context.Context, source feed.Source) error {
	sources, err := s.FeedSources(ctx)
	if err != nil {
		return err
	}

	for i, existing := range sources {
		if existing.Name == source.Name {
			sources[i] = source
			return s.SaveFeedSources(ctx, sources)
		}
	}
	return ErrMissing
}

func (s *Store) DeleteFeedSource(ctx context.Context, name string) error {
	sources, err := s.FeedSources(ctx)
	if err != nil {
		return err
	}

	for i, existing := range sources {
		if existing.Name == name {
			return s.SaveFeedSources(ctx, append(sources[:i], sources[i+1:]...))
		}
	}
	return ErrMissing
}

func (s *Store) Keywords(ctx context.Context) ([]string, error) {
	var keywords []string
	if err := s.readList(ctx, keywordsKey, &keywords); err != nil {
		return nil, err
	}
	if keywords == nil {
		keywords = []string{}
	}
	return keywords, nil
}

func (s *Store) SaveKeywords(ctx context.Context, keywords []string) error {
	return s.writeList(ctx, keywordsKey, keywords)
}

func (s *Store) AddKeyword(ctx context.Context, keyword string) error {
	keywords, err := s.Keywords(ctx)
	if err != nil {
		return err
	}

	for _, existing := range keywords {
		if existing == keyword {
			return ErrExists
		}
	}

	return s.SaveKeywords(ctx, append(keywords, keyword))
}

// UpdateKeyword renames a vocabulary entry in place, preserving its
// position in the list.
func (s *Store) UpdateKeyword(ctx context.Context, keyword, replacement string) error {
	keywords, err := s.Keywords(ctx)
	if err != nil {
		return err
	}

	if replacement != keyword {
		for _, existing := range keywords {
			if existing == replacement {
				return ErrExists
			}
		}
	}

	for i, existing := range keywords {
		if existing == keyword {
			keywords[i] = replacement
			return s.SaveKeywords(ctx, keywords)
		}
	}
	return ErrMissing
}

func (s *Store) DeleteKeyword(ctx context.Context, keyword string) error {
	keywords, err := s.Keywords(ctx)
	if err != nil {
		return err
	}

	for i, existing := range keywords {
		if existing == keyword {
			return s.SaveKeywords(ctx, append(keywords[:i], keywords[i+1:]...))
		}
	}
	return ErrMissing
}

func (s *Store) readList(ctx context.Context, key string, out any) error {
	data, err := s.blobs.Read(ctx, key)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", key, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	return nil
}

func (s *Store) writeList(ctx context.Context, key string, list any) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.blobs.Write(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
