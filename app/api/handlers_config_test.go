package api

import (
	"net/http"
	"testing"
)

func TestFeedSourceCRUD(t *testing.T) {
	env := newTestEnv(t, "")

	source := map[string]any{
		"name":     "Acme Blog",
		"url":      "https://acme.example.com/feed",
		"feedType": "competitor",
	}

	w := env.request(t, http.MethodPost, "/feeds", source, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on add, got %d: %s", w.Code, w.Body.String())
	}

	w = env.request(t, http.MethodPost, "/feeds", source, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 on duplicate add, got %d", w.Code)
	}

	w = env.request(t, http.MethodGet, "/feeds", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on list, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["count"] != float64(1) {
		t.Errorf("Expected 1 source, got %v", body["count"])
	}

	source["url"] = "https://new.example.com/feed"
	w = env.request(t, http.MethodPut, "/feeds", source, nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 on update, got %d: %s", w.Code, w.Body.String())
	}

	w = env.request(t, http.MethodPut, "/feeds", map[string]any{
		"name": "Unknown Blog",
		"url":  "https://example.com",
	}, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on updating unknown source, got %d", w.Code)
	}

	w = env.request(t, http.MethodDelete, "/feeds?name=Acme+Blog", nil, nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 on delete, got %d: %s", w.Code, w.Body.String())
	}

	w = env.request(t, http.MethodDelete, "/feeds", map[string]any{"name": "Acme Blog"}, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on deleting a gone source, got %d", w.Code)
	}
}

func TestAddFeedSource_Validation(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.request(t, http.MethodPost, "/feeds", map[string]any{"name": "No URL"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing url, got %d", w.Code)
	}

	w = env.request(t, http.MethodPost, "/feeds", map[string]any{"url": "https://example.com"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing name, got %d", w.Code)
	}
}

func TestKeywordCRUD(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.request(t, http.MethodPost, "/keywords", map[string]any{"keyword": "kubernetes"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on add, got %d: %s", w.Code, w.Body.String())
	}

	w = env.request(t, http.MethodPost, "/keywords", map[string]any{"keyword": "kubernetes"}, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 on duplicate keyword, got %d", w.Code)
	}

	w = env.request(t, http.MethodPost, "/keywords", map[string]any{"keyword": "  "}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 on blank keyword, got %d", w.Code)
	}

	w = env.request(t, http.MethodGet, "/keywords", nil, nil)
	body := decodeBody(t, w)
	if body["count"] != float64(1) {
		t.Errorf("Expected 1 keyword, got %v", body["count"])
	}

	w = env.request(t, http.MethodDelete, "/keywords?keyword=kubernetes", nil, nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 on delete, got %d: %s", w.Code, w.Body.String())
	}

	w = env.request(t, http.MethodDelete, "/keywords?keyword=kubernetes", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on deleting a gone keyword, got %d", w.Code)
	}
}

func TestUpdateKeywordEndpoint(t *testing.T) {
	env := newTestEnv(t, "")

	for _, kw := range []string{"pricing", "analytics"} {
		w := env.request(t, http.MethodPost, "/keywords", map[string]any{"keyword": kw}, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200 on add, got %d: %s", w.Code, w.Body.String())
		}
	}

	w := env.request(t, http.MethodPut, "/keywords", map[string]any{
		"keyword":    "pricing",
		"newKeyword": "billing",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on rename, got %d: %s", w.Code, w.Body.String())
	}

	w = env.request(t, http.MethodGet, "/keywords", nil, nil)
	body := decodeBody(t, w)
	data, _ := body["data"].([]any)
	if len(data) != 2 || data[0] != "billing" {
		t.Errorf("Expected renamed keyword list, got %v", data)
	}

	w = env.request(t, http.MethodPut, "/keywords", map[string]any{
		"keyword":    "gone",
		"newKeyword": "anything",
	}, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown keyword, got %d", w.Code)
	}

	w = env.request(t, http.MethodPut, "/keywords", map[string]any{
		"keyword":    "billing",
		"newKeyword": "analytics",
	}, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 when renaming onto a taken keyword, got %d", w.Code)
	}

	w = env.request(t, http.MethodPut, "/keywords", map[string]any{"keyword": "billing"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without newKeyword, got %d", w.Code)
	}
}
