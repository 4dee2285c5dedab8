package guid

import (
	"context"
	"errors"
	"testing"

	"github.com/techpulse/blog-api/app/database"
)

// fakeStore records lookup calls so tests can assert which strategies
// ran and in what order.
type fakeStore struct {
	docs        map[string]*database.Post
	guids       map[string]*database.Post
	docIDCalls  []string
	guidCalls   []string
	docIDErr    error
	guidErr     error
}

func (f *fakeStore) GetByDocID(ctx context.Context, docID string) (*database.Post, error) {
	f.docIDCalls = append(f.docIDCalls, docID)
	if f.docIDErr != nil {
		return nil, f.docIDErr
	}
	return f.docs[docID], nil
}

func (f *fakeStore) FindByGUID(ctx context.Context, guid string) (*database.Post, error) {
	f.guidCalls = append(f.guidCalls, guid)
	if f.guidErr != nil {
		return nil, f.guidErr
	}
	return f.guids[guid], nil
}

func TestResolve_EncodedIDShortCircuits(t *testing.T) {
	g := "https://example.com/post-1"
	store := &fakeStore{
		docs: map[string]*database.Post{
			Encode(g): {ID: Encode(g), GUID: g},
		},
	}
	locator := NewLocator(store)

	post, err := locator.Resolve(context.Background(), g)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if post.ID != Encode(g) {
		t.Errorf("Expected document %s, got %s", Encode(g), post.ID)
	}

	if len(store.docIDCalls) != 1 {
		t.Errorf("Expected 1 identifier lookup, got %d: %v", len(store.docIDCalls), store.docIDCalls)
	}
	if len(store.guidCalls) != 0 {
		t.Errorf("Expected no field lookups, got %v", store.guidCalls)
	}
}

func TestResolve_RawIDForNonURLGuids(t *testing.T) {
	g := "plain-guid-123"
	store := &fakeStore{
		docs: map[string]*database.Post{
			g: {ID: g, GUID: g},
		},
	}
	locator := NewLocator(store)

	post, err := locator.Resolve(context.Background(), g)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if post.ID != g {
		t.Errorf("Expected legacy raw-id document, got %s", post.ID)
	}

	// Encoded miss first, then raw hit.
	if len(store.docIDCalls) != 2 {
		t.Fatalf("Expected 2 identifier lookups, got %v", store.docIDCalls)
	}
	if store.docIDCalls[0] != Encode(g) || store.docIDCalls[1] != g {
		t.Errorf("Unexpected lookup order: %v", store.docIDCalls)
	}
}

func TestResolve_SkipsRawIDForURLGuids(t *testing.T) {
	g := "https://example.com/post-2"
	store := &fakeStore{
		guids: map[string]*database.Post{
			g: {ID: "legacy-doc", GUID: g},
		},
	}
	locator := NewLocator(store)

	post, err := locator.Resolve(context.Background(), g)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if post.ID != "legacy-doc" {
		t.Errorf("Expected field-query document, got %s", post.ID)
	}

	// URL-shaped GUIDs must not be tried as raw identifiers.
	if len(store.docIDCalls) != 1 {
		t.Errorf("Expected only the encoded identifier lookup, got %v", store.docIDCalls)
	}
	if len(store.guidCalls) != 1 {
		t.Errorf("Expected 1 field lookup, got %v", store.guidCalls)
	}
}

func TestResolve_FieldFallbackRunsLast(t *testing.T) {
	g := "plain-guid-456"
	store := &fakeStore{
		guids: map[string]*database.Post{
			g: {ID: "migrated-doc", GUID: g},
		},
	}
	locator := NewLocator(store)

	post, err := locator.Resolve(context.Background(), g)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if post.ID != "migrated-doc" {
		t.Errorf("Expected field-query document, got %s", post.ID)
	}

	if len(store.docIDCalls) != 2 {
		t.Errorf("Expected both identifier lookups to run first, got %v", store.docIDCalls)
	}
}

func TestResolve_NotFound(t *testing.T) {
	store := &fakeStore{}
	locator := NewLocator(store)

	_, err := locator.Resolve(context.Background(), "missing-guid")
	if !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestResolve_EmptyGUID(t *testing.T) {
	store := &fakeStore{}
	locator := NewLocator(store)

	_, err := locator.Resolve(context.Background(), "   ")
	if !errors.Is(err, ErrEmptyGUID) {
		t.Errorf("Expected ErrEmptyGUID, got %v", err)
	}
	if len(store.docIDCalls) != 0 || len(store.guidCalls) != 0 {
		t.Error("Expected no lookups for a blank GUID")
	}
}

func TestResolve_PropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("connection lost")
	store := &fakeStore{docIDErr: storeErr}
	locator := NewLocator(store)

	_, err := locator.Resolve(context.Background(), "some-guid")
	if !errors.Is(err, storeErr) {
		t.Errorf("Expected wrapped store error, got %v", err)
	}
}
