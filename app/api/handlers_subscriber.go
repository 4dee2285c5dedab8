package api

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/techpulse/blog-api/app/database"
)

func (h *Handler) Subscribe(c *gin.Context) {
	var req struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Company string `json:"company"`
		Phone   string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if !isValidEmail(req.Email) {
		fail(c, http.StatusBadRequest, "a valid email is required")
		return
	}

	sub, err := h.subscribers.UpsertSubscriber(c.Request.Context(), database.Subscriber{
		Email:   req.Email,
		Name:    req.Name,
		Company: req.Company,
		Phone:   req.Phone,
	})
	if err != nil {
		failFromErr(c, err)
		return
	}

	ok(c, gin.H{"data": sub})
}

// DeleteSubscriber handles both shapes: {id} is an admin hard delete,
// {email, token} is a self-service unsubscribe that only flips the
// status to inactive.
func (h *Handler) DeleteSubscriber(c *gin.Context) {
	var req struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	switch {
	case req.ID != "":
		if err := h.subscribers.DeleteSubscriberByID(c.Request.Context(), req.ID); err != nil {
			failFromErr(c, err)
			return
		}
		ok(c, gin.H{"id": req.ID})

	case req.Email != "" && req.Token != "":
		if !h.tokens.Verify(req.Email, req.Token) {
			fail(c, http.StatusForbidden, "invalid token")
			return
		}

		sub, err := h.subscribers.GetSubscriberByEmail(c.Request.Context(), req.Email)
		if err != nil {
			failFromErr(c, err)
			return
		}
		if sub == nil {
			fail(c, http.StatusNotFound, "subscriber not found")
			return
		}

		if err := h.subscribers.UpdateSubscriberStatus(c.Request.Context(),
			sub.ID, database.SubscriberInactive); err != nil {
			failFromErr(c, err)
			return
		}
		ok(c, gin.H{"email": sub.Email, "status": database.SubscriberInactive})

	default:
		fail(c, http.StatusBadRequest, "either id or email and token are required")
	}
}

func (h *Handler) UpdateSubscriber(c *gin.Context) {
	var req struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		fail(c, http.StatusBadRequest, "id is required")
		return
	}
	if req.Status != database.SubscriberActive && req.Status != database.SubscriberInactive {
		fail(c, http.StatusBadRequest, "status must be active or inactive")
		return
	}

	if err := h.subscribers.UpdateSubscriberStatus(c.Request.Context(), req.ID, req.Status); err != nil {
		failFromErr(c, err)
		return
	}

	ok(c, gin.H{"id": req.ID, "status": req.Status})
}

// SubscriberInfo is the token-gated self-service profile lookup.
func (h *Handler) SubscriberInfo(c *gin.Context) {
	email := c.Query("email")
	suppliedToken := c.Query("token")

	if email == "" || suppliedToken == "" {
		fail(c, http.StatusBadRequest, "email and token are required")
		return
	}
	if !h.tokens.Verify(email, suppliedToken) {
		fail(c, http.StatusForbidden, "invalid token")
		return
	}

	sub, err := h.subscribers.GetSubscriberByEmail(c.Request.Context(), email)
	if err != nil {
		failFromErr(c, err)
		return
	}
	if sub == nil {
		fail(c, http.StatusNotFound, "subscriber not found")
		return
	}

	ok(c, gin.H{"data": sub})
}

func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}
