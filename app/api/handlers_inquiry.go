package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/techpulse/blog-api/app/slack"
)

// InquiryToSlack forwards a contact-form inquiry to the notification
// webhook. A webhook failure is an upstream error, not an internal one.
func (h *Handler) InquiryToSlack(c *gin.Context) {
	var inquiry slack.Inquiry
	if err := c.ShouldBindJSON(&inquiry); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(inquiry.Content) == "" {
		fail(c, http.StatusBadRequest, "content is required")
		return
	}
	if strings.TrimSpace(inquiry.Name) == "" {
		fail(c, http.StatusBadRequest, "name is required")
		return
	}
	if !isValidEmail(inquiry.Email) {
		fail(c, http.StatusBadRequest, "a valid email is required")
		return
	}

	if err := h.inquiries.SendInquiry(c.Request.Context(), inquiry); err != nil {
		if errors.Is(err, slack.ErrNotConfigured) {
			failFromErr(c, err)
			return
		}
		slog.Error("Inquiry webhook failed", "error", err)
		fail(c, http.StatusBadGateway, "failed to deliver inquiry")
		return
	}

	ok(c, gin.H{})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	health := gin.H{}

	if count, err := h.posts.GetPostCount(c.Request.Context()); err == nil {
		health["posts"] = count
	}

	ok(c, health)
}
