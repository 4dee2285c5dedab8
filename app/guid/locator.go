package guid

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/techpulse/blog-api/app/database"
)

// ErrEmptyGUID is returned when the GUID is blank after trimming.
var ErrEmptyGUID = errors.New("guid is empty")

// Store is the subset of the post repository the locator needs.
type Store interface {
	GetByDocID(ctx context.Context, docID string) (*database.Post, error)
	FindByGUID(ctx context.Context, guid string) (*database.Post, error)
}

type strategy struct {
	name   string
	key    string
	lookup func(ctx context.Context, key string) (*database.Post, error)
}

type Locator struct {
	store Store
}

func NewLocator(store Store) *Locator {
	return &Locator{store: store}
}

// Resolve maps a GUID to its stored document, trying each strategy in
// order and short-circuiting on the first hit. Returns
// database.ErrNotFound when no strategy yields a document.
func (l *Locator) Resolve(ctx context.Context, guid string) (*database.Post, error) {
	trimmed := strings.TrimSpace(guid)
	if trimmed == "" {
		return nil, ErrEmptyGUID
	}

	for _, s := range l.strategies(trimmed) {
		slog.Debug("Trying document lookup", "strategy", s.name, "key", s.key)

		post, err := s.lookup(ctx, s.key)
		if err != nil {
			return nil, fmt.Errorf("%s lookup failed: %w", s.name, err)
		}
		if post != nil {
			slog.Debug("Document resolved", "strategy", s.name, "doc_id", post.ID)
			return post, nil
		}
	}

	return nil, database.ErrNotFound
}

func (l *Locator) strategies(trimmed string) []strategy {
	strategies := []strategy{
		{name: "encoded_id", key: Encode(trimmed), lookup: l.store.GetByDocID},
	}

	// Legacy rows were stored under the raw GUID, but never for
	// URL-shaped GUIDs; the path separator check keeps those two
	// populations from colliding.
	if !strings.Contains(trimmed, "/") {
		strategies = append(strategies, strategy{
			name: "raw_id", key: trimmed, lookup: l.store.GetByDocID,
		})
	}

	return append(strategies, strategy{
		name: "guid_field", key: trimmed, lookup: l.store.FindByGUID,
	})
}
