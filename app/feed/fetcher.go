package feed

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Fetcher retrieves paginated RSS/Atom feeds and normalizes entries.
// Page fetches are sequential with a fixed inter-request delay to stay
// polite toward the source.
type Fetcher struct {
	httpClient *http.Client
	parser     *gofeed.Parser
	userAgent  string
	pageDelay  time.Duration
	maxPages   int
}

func NewFetcher(httpClient *http.Client, userAgent string, pageDelay time.Duration, maxPages int) *Fetcher {
	if maxPages <= 0 {
		maxPages = 10
	}
	return &Fetcher{
		httpClient: httpClient,
		parser:     gofeed.NewParser(),
		userAgent:  userAgent,
		pageDelay:  pageDelay,
		maxPages:   maxPages,
	}
}

// Run fetches all pages for one source and returns the entries
// deduplicated by title, first occurrence winning. Pagination stops at
// the first empty page or the first page error; items collected before
// a later-page error are kept. A first-page error fails the whole
// source.
func (f *Fetcher) Run(ctx context.Context, source Source) ([]Item, error) {
	pages := f.maxPages
	if !source.Paginated {
		pages = 1
	}

	var items []Item
	seenTitles := make(map[string]struct{})

	for page := 1; page <= pages; page++ {
		pageItems, err := f.fetchPage(ctx, source, page)
		if err != nil {
			if page == 1 {
				return nil, fmt.Errorf("failed to fetch first page: %w", err)
			}
			slog.Warn("Page fetch failed, keeping collected items",
				"blog", source.Name, "page", page, "error", err)
			break
		}

		if len(pageItems) == 0 {
			break
		}

		for _, item := range pageItems {
			if _, seen := seenTitles[item.Title]; seen {
				continue
			}
			seenTitles[item.Title] = struct{}{}
			items = append(items, item)
		}

		if page < pages {
			if err := sleepCtx(ctx, f.pageDelay); err != nil {
				return items, err
			}
		}
	}

	slog.Debug("Feed fetched", "blog", source.Name, "items", len(items))
	return items, nil
}

func (f *Fetcher) fetchPage(ctx context.Context, source Source, page int) ([]Item, error) {
	data, err := f.fetch(ctx, pageURL(source.URL, page))
	if err != nil {
		return nil, err
	}

	parsed, err := f.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		items = append(items, normalizeItem(entry))
	}

	return items, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

func normalizeItem(entry *gofeed.Item) Item {
	item := Item{
		GUID:    cmp.Or(entry.GUID, entry.Link),
		Title:   strings.TrimSpace(entry.Title),
		Link:    entry.Link,
		PubDate: entry.Published,
	}

	if entry.PublishedParsed != nil {
		item.IsoDate = entry.PublishedParsed.UTC().Format(time.RFC3339)
	} else {
		item.IsoDate = entry.Published
	}

	switch {
	case entry.Description != "":
		item.Description = Truncate(StripHTML(entry.Description), MaxDescriptionLength)
	case entry.Content != "":
		item.Description = DescriptionFromContent(entry.Content)
	}

	return item
}

func pageURL(base string, page int) string {
	if page == 1 {
		return base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%spaged=%d", base, sep, page)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
