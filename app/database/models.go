package database

import (
	"time"
)

const (
	FeedTypeCompetitor    = "competitor"
	FeedTypeNonCompetitor = "noncompetitor"

	SubscriberActive   = "active"
	SubscriberInactive = "inactive"
)

// Post is a stored feed item. ID is the document identifier: base64url
// of the GUID for new writes, a raw GUID on legacy rows.
type Post struct {
	ID                 string    `json:"id"`
	GUID               string    `json:"guid"`
	Title              string    `json:"title"`
	Link               string    `json:"link"`
	Description        string    `json:"description"`
	PubDate            string    `json:"pubDate"`
	IsoDate            string    `json:"isoDate"`
	BlogName           string    `json:"blogName"`
	FeedType           string    `json:"feedType"`
	MatchedKeywords    []string  `json:"matchedKeywords"`
	CollectedDate      string    `json:"collectedDate"`
	NewsletterSentDate string    `json:"news_letter_sent_date,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type Subscriber struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Company   string    `json:"company,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListQuery describes a filtered, paginated post listing. Page > 0
// selects offset pagination; otherwise StartAfterIsoDate is used as an
// exclusive cursor over the iso_date descending order.
type ListQuery struct {
	BlogName          string
	FeedType          string
	SearchText        string
	PageSize          int
	Page              int
	StartAfterIsoDate string
}

// ListResult carries a page of posts plus the counts the listing API
// reports: total rows in the store and rows matching the filters.
type ListResult struct {
	Posts         []Post
	TotalCount    int
	FilteredCount int
}
