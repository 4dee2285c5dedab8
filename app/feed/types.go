package feed

// Source is one configured external blog feed.
type Source struct {
	Name      string `json:"name" yaml:"name"`
	URL       string `json:"url" yaml:"url"`
	FeedType  string `json:"feedType" yaml:"feed_type"`
	Paginated bool   `json:"paginated" yaml:"paginated"`
}

// Item is a fetched feed entry normalized into the canonical shape.
type Item struct {
	GUID        string
	Title       string
	Link        string
	Description string
	PubDate     string
	IsoDate     string
}
