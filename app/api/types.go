package api

import (
	"context"

	"github.com/techpulse/blog-api/app/configstore"
	"github.com/techpulse/blog-api/app/database"
	"github.com/techpulse/blog-api/app/ingest"
	"github.com/techpulse/blog-api/app/newsletter"
	"github.com/techpulse/blog-api/app/slack"
	"github.com/techpulse/blog-api/app/token"
)

// DocumentLocator resolves an external GUID to a stored document.
type DocumentLocator interface {
	Resolve(ctx context.Context, guid string) (*database.Post, error)
}

// IngestRunner triggers a full ingestion run.
type IngestRunner interface {
	Run(ctx context.Context) (*ingest.Result, error)
}

// InquirySender forwards inquiries to the notification webhook.
type InquirySender interface {
	SendInquiry(ctx context.Context, inquiry slack.Inquiry) error
}

type Handler struct {
	posts       database.PostRepository
	subscribers database.SubscriberRepository
	locator     DocumentLocator
	runner      IngestRunner
	configs     *configstore.Store
	newsletters *newsletter.Service
	inquiries   InquirySender
	tokens      *token.Codec
}

func NewHandler(posts database.PostRepository, subscribers database.SubscriberRepository,
	locator DocumentLocator, runner IngestRunner, configs *configstore.Store,
	newsletters *newsletter.Service, inquiries InquirySender, tokens *token.Codec) *Handler {
	return &Handler{
		posts:       posts,
		subscribers: subscribers,
		locator:     locator,
		runner:      runner,
		configs:     configs,
		newsletters: newsletters,
		inquiries:   inquiries,
		tokens:      tokens,
	}
}
