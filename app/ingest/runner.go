// Package ingest runs the feed ingestion pipeline: fetch, filter
// against stored titles, and write the delta with throttled writes.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/techpulse/blog-api/app/database"
	"github.com/techpulse/blog-api/app/feed"
	"github.com/techpulse/blog-api/app/guid"
)

// SourceProvider supplies the configured feed sources.
type SourceProvider interface {
	FeedSources(ctx context.Context) ([]feed.Source, error)
}

// SourceResult reports one source's ingestion outcome.
type SourceResult struct {
	BlogName string `json:"blogName"`
	Fetched  int    `json:"fetched"`
	New      int    `json:"new"`
	Written  int    `json:"written"`
	Error    string `json:"error,omitempty"`
}

// Result tallies a whole run. Attempted counts items that survived
// deduplication; Written counts successful inserts.
type Result struct {
	Sources   []SourceResult `json:"sources"`
	Attempted int            `json:"attempted"`
	Written   int            `json:"written"`
}

type Runner struct {
	fetcher    *feed.Fetcher
	deduper    *feed.Deduper
	posts      database.PostRepository
	sources    SourceProvider
	writeDelay time.Duration
}

func NewRunner(fetcher *feed.Fetcher, posts database.PostRepository,
	sources SourceProvider, writeDelay time.Duration) *Runner {
	return &Runner{
		fetcher:    fetcher,
		deduper:    feed.NewDeduper(),
		posts:      posts,
		sources:    sources,
		writeDelay: writeDelay,
	}
}

// Run ingests every configured source. Per-source and per-item failures
// are logged and tallied but never abort the run; re-running against an
// unchanged feed and store writes nothing.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	sources, err := r.sources.FeedSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("load feed sources: %w", err)
	}

	runDate := time.Now().Format("20060102")
	result := &Result{Sources: make([]SourceResult, 0, len(sources))}

	for _, source := range sources {
		sourceResult := r.ingestSource(ctx, source, runDate)
		result.Attempted += sourceResult.New
		result.Written += sourceResult.Written
		result.Sources = append(result.Sources, sourceResult)
	}

	slog.Info("Ingestion run completed",
		"sources", len(sources),
		"attempted", result.Attempted,
		"written", result.Written)

	return result, nil
}

func (r *Runner) ingestSource(ctx context.Context, source feed.Source, runDate string) SourceResult {
	sourceResult := SourceResult{BlogName: source.Name}

	items, err := r.fetcher.Run(ctx, source)
	if err != nil {
		slog.Error("Feed fetch failed", "blog", source.Name, "error", err)
		sourceResult.Error = err.Error()
		return sourceResult
	}
	sourceResult.Fetched = len(items)

	storedTitles, err := r.posts.GetTitles(ctx, source.Name)
	if err != nil {
		slog.Error("Failed to load stored titles", "blog", source.Name, "error", err)
		sourceResult.Error = err.Error()
		return sourceResult
	}

	fresh := r.deduper.Run(items, storedTitles)
	sourceResult.New = len(fresh)

	for i, item := range fresh {
		if err := r.posts.InsertPost(ctx, buildPost(item, source, runDate)); err != nil {
			slog.Error("Failed to write item", "blog", source.Name, "title", item.Title, "error", err)
			continue
		}
		sourceResult.Written++

		if i < len(fresh)-1 {
			time.Sleep(r.writeDelay)
		}
	}

	slog.Info("Source ingested",
		"blog", source.Name,
		"fetched", sourceResult.Fetched,
		"new", sourceResult.New,
		"written", sourceResult.Written)

	return sourceResult
}

func buildPost(item feed.Item, source feed.Source, runDate string) database.Post {
	feedType := source.FeedType
	if feedType == "" {
		feedType = database.FeedTypeCompetitor
	}

	now := time.Now().UTC()
	return database.Post{
		ID:              guid.Encode(item.GUID),
		GUID:            item.GUID,
		Title:           item.Title,
		Link:            item.Link,
		Description:     item.Description,
		PubDate:         item.PubDate,
		IsoDate:         item.IsoDate,
		BlogName:        source.Name,
		FeedType:        feedType,
		MatchedKeywords: []string{},
		CollectedDate:   runDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
