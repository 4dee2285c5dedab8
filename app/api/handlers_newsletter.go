package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techpulse/blog-api/app/blobstore"
)

func (h *Handler) ListNewsletters(c *gin.Context) {
	entries, err := h.newsletters.List(c.Request.Context())
	if err != nil {
		failFromErr(c, err)
		return
	}
	ok(c, gin.H{"data": entries, "count": len(entries)})
}

func (h *Handler) GetNewsletter(c *gin.Context) {
	filename := c.Param("filename")

	entry, err := h.newsletters.Get(c.Request.Context(), filename)
	if err != nil {
		failFromErr(c, err)
		return
	}
	if entry == nil {
		fail(c, http.StatusNotFound, "newsletter not found")
		return
	}

	ok(c, gin.H{"data": entry})
}

// PreviewNewsletter serves the raw HTML body of an issue.
func (h *Handler) PreviewNewsletter(c *gin.Context) {
	filename := c.Param("filename")

	body, err := h.newsletters.HTML(c.Request.Context(), filename)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotExist) {
			fail(c, http.StatusNotFound, "newsletter not found")
			return
		}
		failFromErr(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}
