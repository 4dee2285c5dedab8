package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/techpulse/blog-api/app/configstore"
	"github.com/techpulse/blog-api/app/feed"
)

// SeedSources populates the feed config store from a YAML file when the
// store is empty. A missing file is not an error.
func SeedSources(ctx context.Context, store *configstore.Store, path string) error {
	existing, err := store.FeedSources(ctx)
	if err != nil {
		return fmt.Errorf("check existing feed sources: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("No seed file found", "path", path)
			return nil
		}
		return fmt.Errorf("read seed file: %w", err)
	}

	var sources []feed.Source
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	if len(sources) == 0 {
		return nil
	}

	if err := store.SaveFeedSources(ctx, sources); err != nil {
		return fmt.Errorf("save seeded feed sources: %w", err)
	}

	slog.Info("Feed sources seeded", "path", path, "count", len(sources))
	return nil
}
