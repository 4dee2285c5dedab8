package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/techpulse/blog-api/app/database"
)

// RunIngestion triggers a full ingestion run across all configured
// sources. Safe to re-run: unchanged feeds write nothing.
func (h *Handler) RunIngestion(c *gin.Context) {
	result, err := h.runner.Run(c.Request.Context())
	if err != nil {
		failFromErr(c, err)
		return
	}

	ok(c, gin.H{
		"attempted": result.Attempted,
		"written":   result.Written,
		"sources":   result.Sources,
	})
}

func (h *Handler) ListPosts(c *gin.Context) {
	pageSize, err := intQuery(c, "pageSize", 10)
	if err != nil {
		fail(c, http.StatusBadRequest, "pageSize must be a number")
		return
	}
	page, err := intQuery(c, "page", 0)
	if err != nil {
		fail(c, http.StatusBadRequest, "page must be a number")
		return
	}
	// The repository applies the same floor; clamping here keeps
	// totalPages consistent with the page actually returned.
	if pageSize <= 0 {
		pageSize = 10
	}

	query := database.ListQuery{
		BlogName:          c.Query("blogName"),
		FeedType:          c.Query("feedType"),
		SearchText:        c.Query("searchText"),
		PageSize:          pageSize,
		Page:              page,
		StartAfterIsoDate: c.Query("startAfterIsoDate"),
	}

	result, err := h.posts.List(c.Request.Context(), query)
	if err != nil {
		failFromErr(c, err)
		return
	}

	posts := result.Posts
	if posts == nil {
		posts = []database.Post{}
	}

	totalPages := (result.FilteredCount + pageSize - 1) / pageSize

	lastIsoDate := ""
	if len(posts) > 0 {
		lastIsoDate = posts[len(posts)-1].IsoDate
	}

	response := gin.H{
		"data":          posts,
		"count":         len(posts),
		"totalCount":    result.TotalCount,
		"filteredCount": result.FilteredCount,
		"totalPages":    totalPages,
		"lastIsoDate":   lastIsoDate,
	}
	if page > 0 {
		response["page"] = page
	}

	ok(c, response)
}

func (h *Handler) UpdateKeywords(c *gin.Context) {
	var req struct {
		GUID            string    `json:"guid"`
		MatchedKeywords *[]string `json:"matchedKeywords"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.GUID) == "" {
		fail(c, http.StatusBadRequest, "guid is required")
		return
	}
	if req.MatchedKeywords == nil {
		fail(c, http.StatusBadRequest, "matchedKeywords is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), operationTimeout)
	defer cancel()

	post, err := h.locator.Resolve(ctx, req.GUID)
	if err != nil {
		failFromErr(c, err)
		return
	}

	if err := h.posts.UpdateKeywords(ctx, post.ID, *req.MatchedKeywords); err != nil {
		failFromErr(c, err)
		return
	}

	ok(c, gin.H{"id": post.ID})
}

func (h *Handler) UpdateNewsletterDate(c *gin.Context) {
	var req struct {
		GUID     string `json:"guid"`
		SentDate string `json:"news_letter_sent_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.GUID) == "" {
		fail(c, http.StatusBadRequest, "guid is required")
		return
	}
	if strings.TrimSpace(req.SentDate) == "" {
		fail(c, http.StatusBadRequest, "news_letter_sent_date is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), operationTimeout)
	defer cancel()

	post, err := h.locator.Resolve(ctx, req.GUID)
	if err != nil {
		failFromErr(c, err)
		return
	}

	if err := h.posts.UpdateNewsletterSentDate(ctx, post.ID, req.SentDate); err != nil {
		failFromErr(c, err)
		return
	}

	ok(c, gin.H{"id": post.ID})
}

// CheckToday reports the items collected today.
func (h *Handler) CheckToday(c *gin.Context) {
	date := time.Now().Format("20060102")

	posts, err := h.posts.ListByCollectedDate(c.Request.Context(), date)
	if err != nil {
		failFromErr(c, err)
		return
	}
	if posts == nil {
		posts = []database.Post{}
	}

	ok(c, gin.H{"collectedDate": date, "count": len(posts), "data": posts})
}

// DeleteToday bulk-deletes the items collected today.
func (h *Handler) DeleteToday(c *gin.Context) {
	date := time.Now().Format("20060102")

	deleted, err := h.posts.DeleteByCollectedDate(c.Request.Context(), date)
	if err != nil {
		failFromErr(c, err)
		return
	}

	ok(c, gin.H{"collectedDate": date, "deleted": deleted})
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return value, nil
}
