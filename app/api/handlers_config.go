package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/techpulse/blog-api/app/configstore"
	"github.com/techpulse/blog-api/app/feed"
)

func (h *Handler) ListFeedSources(c *gin.Context) {
	sources, err := h.configs.FeedSources(c.Request.Context())
	if err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, gin.H{"data": sources, "count": len(sources)})
}

func (h *Handler) AddFeedSource(c *gin.Context) {
	source, valid := bindFeedSource(c)
	if !valid {
		return
	}

	if err := h.configs.AddFeedSource(c.Request.Context(), source); err != nil {
		if errors.Is(err, configstore.ErrExists) {
			fail(c, http.StatusConflict, "feed source already exists")
			return
		}
		failFromErr(c, err)
		return
	}

	ok(c, gin.H{"name": source.Name})
}

func (h *Handler) UpdateFeedSource(c *gin.Context) {
	source, valid := bindFeedSource(c)
	if !valid {
		return
	}

	if err := h.configs.UpdateFeedSource(c.Request.Context(), source); err != nil {
		if errors.Is(err, configstore.ErrMissing) {
			fail(c, http.StatusNotFound, "feed source not found")
			return
		}
		failFromErr(c, err)
		return
	}

	ok(c, gin.H{"name": source.Name})
}

func (h *Handler) DeleteFeedSource(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		var req struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			name = req.Name
		}
	}
	if strings.TrimSpace(name) == "" {
		fail(c, http.StatusBadRequest, "name is required")
		return
	}

	if err := h.configs.DeleteFeedSource(c.Request.Context(), name); err != nil {
		if errors.Is(err, configstore.ErrMissing) {
			fail(c, http.StatusNotFound, "feed source not found")
			return
		}
		failFromErr(c, err)
		return
	}

	ok(c, gin.H{"name": name})
}

func (h *Handler) ListKeywords(c *gin.Context) {
	keywords, err := h.configs.Keywords(c.Request.Context())
	if err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, gin.H{"data": keywords, "count": len(keywords)})
}

func (h *Handler) AddKeyword(c *gin.Context) {
	keyword, valid := bindKeyword(c)
	if !valid {
		return
	}

	if err := h.configs.AddKeyword(c.Request.Context(), keyword); err != nil {
		if errors.Is(err, configstore.ErrExists) {
			fail(c, http.StatusConflict, "keyword already exists")
			return
		}
		failFromErr(c, err)
		return
	}

	ok(c, gin.H{"keyword": keyword})
}

func (h *Handler) UpdateKeyword(c *gin.Context) {
	var req struct {
		Keyword    string `json:"keyword"`
		NewKeyword string `json:"newKeyword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	keyword := strings.TrimSpace(req.Keyword)
	replacement := strings.TrimSpace(req.NewKeyword)
	if keyword == "" || replacement == "" {
		fail(c, http.StatusBadRequest, "keyword and newKeyword are required")
		return
	}

	if err := h.configs.UpdateKeyword(c.Request.Context(), keyword, replacement); err != nil {
		if errors.Is(err, configstore.ErrExists) {
			fail(c, http.StatusConflict, "keyword already exists")
			return
		}
		if errors.Is(err, configstore.ErrMissing) {
			fail(c, http.StatusNotFound, "keyword not found")
			return
		}
		failFromErr(c, err)
		return
	}

	ok(c, gin.H{"keyword": replacement})
}

func (h *Handler) DeleteKeyword(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		var req struct {
			Keyword string `json:"keyword"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			keyword = req.Keyword
		}
	}
	if strings.TrimSpace(keyword) == "" {
		fail(c, http.StatusBadRequest, "keyword is required")
		return
	}

	if err := h.configs.DeleteKeyword(c.Request.Context(), keyword); err != nil {
		if errors.Is(err, configstore.ErrMissing) {
			fail(c, http.StatusNotFound, "keyword not found")
			return
		}
		failFromErr(c, err)
		return
	}

	ok(c, gin.H{"keyword": keyword})
}

func bindFeedSource(c *gin.Context) (feed.Source, bool) {
	var source feed.Source
	if err := c.ShouldBindJSON(&source); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return source, false
	}
	if strings.TrimSpace(source.Name) == "" || strings.TrimSpace(source.URL) == "" {
		fail(c, http.StatusBadRequest, "name and url are required")
		return source, false
	}
	return source, true
}

func bindKeyword(c *gin.Context) (string, bool) {
	var req struct {
		Keyword string `json:"keyword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return "", false
	}
	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		fail(c, http.StatusBadRequest, "keyword is required")
		return "", false
	}
	return keyword, true
}
