package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/techpulse/blog-api/app/blobstore"
	"github.com/techpulse/blog-api/app/configstore"
	"github.com/techpulse/blog-api/app/database"
	"github.com/techpulse/blog-api/app/ingest"
	"github.com/techpulse/blog-api/app/newsletter"
	"github.com/techpulse/blog-api/app/slack"
	"github.com/techpulse/blog-api/app/token"
)

type fakePosts struct {
	posts        map[string]*database.Post
	listResult   *database.ListResult
	todayPosts   []database.Post
	deletedToday int
	count        int

	keywordUpdates  map[string][]string
	sentDateUpdates map[string]string
}

func newFakePosts() *fakePosts {
	return &fakePosts{
		posts:           make(map[string]*database.Post),
		keywordUpdates:  make(map[string][]string),
		sentDateUpdates: make(map[string]string),
	}
}

func (f *fakePosts) InsertPost(ctx context.Context, post database.Post) error {
	f.posts[post.ID] = &post
	return nil
}

func (f *fakePosts) GetTitles(ctx context.Context, blogName string) (map[string]struct{}, error) {
	return map[string]struct{}{}, nil
}

func (f *fakePosts) GetByDocID(ctx context.Context, docID string) (*database.Post, error) {
	return f.posts[docID], nil
}

func (f *fakePosts) FindByGUID(ctx context.Context, guid string) (*database.Post, error) {
	for _, post := range f.posts {
		if post.GUID == guid {
			return post, nil
		}
	}
	return nil, nil
}

func (f *fakePosts) UpdateKeywords(ctx context.Context, docID string, keywords []string) error {
	if _, exists := f.posts[docID]; !exists {
		return database.ErrNotFound
	}
	f.keywordUpdates[docID] = keywords
	return nil
}

func (f *fakePosts) UpdateNewsletterSentDate(ctx context.Context, docID string, sentDate string) error {
	if _, exists := f.posts[docID]; !exists {
		return database.ErrNotFound
	}
	f.sentDateUpdates[docID] = sentDate
	return nil
}

func (f *fakePosts) List(ctx context.Context, query database.ListQuery) (*database.ListResult, error) {
	if f.listResult != nil {
		return f.listResult, nil
	}
	return &database.ListResult{Posts: []database.Post{}}, nil
}

func (f *fakePosts) GetPostCount(ctx context.Context) (int, error) {
	return f.count, nil
}

func (f *fakePosts) ListByCollectedDate(ctx context.Context, date string) ([]database.Post, error) {
	return f.todayPosts, nil
}

func (f *fakePosts) DeleteByCollectedDate(ctx context.Context, date string) (int, error) {
	return f.deletedToday, nil
}

type fakeSubscribers struct {
	byID          map[string]*database.Subscriber
	byEmail       map[string]*database.Subscriber
	statusUpdates map[string]string
	deleted       []string
}

func newFakeSubscribers() *fakeSubscribers {
	return &fakeSubscribers{
		byID:          make(map[string]*database.Subscriber),
		byEmail:       make(map[string]*database.Subscriber),
		statusUpdates: make(map[string]string),
	}
}

func (f *fakeSubscribers) add(sub database.Subscriber) {
	f.byID[sub.ID] = &sub
	f.byEmail[sub.Email] = &sub
}

func (f *fakeSubscribers) UpsertSubscriber(ctx context.Context, sub database.Subscriber) (*database.Subscriber, error) {
	if existing, exists := f.byEmail[sub.Email]; exists {
		return existing, nil
	}
	sub.ID = "sub-" + sub.Email
	sub.Status = database.SubscriberActive
	f.add(sub)
	return f.byID[sub.ID], nil
}

func (f *fakeSubscribers) GetSubscriberByEmail(ctx context.Context, email string) (*database.Subscriber, error) {
	return f.byEmail[email], nil
}

func (f *fakeSubscribers) GetSubscriberByID(ctx context.Context, id string) (*database.Subscriber, error) {
	return f.byID[id], nil
}

func (f *fakeSubscribers) UpdateSubscriberStatus(ctx context.Context, id string, status string) error {
	if _, exists := f.byID[id]; !exists {
		return database.ErrNotFound
	}
	f.statusUpdates[id] = status
	return nil
}

func (f *fakeSubscribers) DeleteSubscriberByID(ctx context.Context, id string) error {
	if _, exists := f.byID[id]; !exists {
		return database.ErrNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeLocator struct {
	post *database.Post
	err  error
}

func (f *fakeLocator) Resolve(ctx context.Context, guid string) (*database.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.post == nil {
		return nil, database.ErrNotFound
	}
	return f.post, nil
}

type fakeRunner struct {
	result *ingest.Result
	err    error
}

func (f *fakeRunner) Run(ctx context.Context) (*ingest.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &ingest.Result{Sources: []ingest.SourceResult{}}, nil
}

type fakeSender struct {
	err  error
	sent []slack.Inquiry
}

func (f *fakeSender) SendInquiry(ctx context.Context, inquiry slack.Inquiry) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, inquiry)
	return nil
}

type testEnv struct {
	router      *gin.Engine
	posts       *fakePosts
	subscribers *fakeSubscribers
	locator     *fakeLocator
	runner      *fakeRunner
	sender      *fakeSender
	blobs       blobstore.Store
	tokens      *token.Codec
}

func newTestEnv(t *testing.T, apiAccessKey string) *testEnv {
	t.Helper()

	env := &testEnv{
		posts:       newFakePosts(),
		subscribers: newFakeSubscribers(),
		locator:     &fakeLocator{},
		runner:      &fakeRunner{},
		sender:      &fakeSender{},
		blobs:       blobstore.NewLocal(t.TempDir()),
		tokens:      token.NewCodec("test-secret"),
	}

	handler := NewHandler(env.posts, env.subscribers, env.locator, env.runner,
		configstore.NewStore(env.blobs), newsletter.NewService(env.blobs),
		env.sender, env.tokens)
	env.router = NewServer(handler, apiAccessKey)

	return env
}

func (e *testEnv) request(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}
