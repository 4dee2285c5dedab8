package database

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a lookup targets a row that does not exist.
var ErrNotFound = errors.New("database: not found")

type PostRepository interface {
	InsertPost(ctx context.Context, post Post) error
	GetTitles(ctx context.Context, blogName string) (map[string]struct{}, error)

	GetByDocID(ctx context.Context, docID string) (*Post, error)
	FindByGUID(ctx context.Context, guid string) (*Post, error)

	UpdateKeywords(ctx context.Context, docID string, keywords []string) error
	UpdateNewsletterSentDate(ctx context.Context, docID string, sentDate string) error

	List(ctx context.Context, query ListQuery) (*ListResult, error)
	GetPostCount(ctx context.Context) (int, error)

	ListByCollectedDate(ctx context.Context, date string) ([]Post, error)
	DeleteByCollectedDate(ctx context.Context, date string) (int, error)
}

type SubscriberRepository interface {
	UpsertSubscriber(ctx context.Context, sub Subscriber) (*Subscriber, error)
	GetSubscriberByEmail(ctx context.Context, email string) (*Subscriber, error)
	GetSubscriberByID(ctx context.Context, id string) (*Subscriber, error)
	UpdateSubscriberStatus(ctx context.Context, id string, status string) error
	DeleteSubscriberByID(ctx context.Context, id string) error
}
