// Package slack forwards contact-form inquiries to an incoming webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

// ErrNotConfigured is returned when no webhook URL is set.
var ErrNotConfigured = errors.New("slack: webhook URL not configured")

type Inquiry struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

type Client struct {
	httpClient *http.Client
	webhookURL string
}

func NewClient(httpClient *http.Client, webhookURL string) *Client {
	return &Client{httpClient: httpClient, webhookURL: webhookURL}
}

// SendInquiry posts a formatted inquiry message to the webhook.
func (c *Client) SendInquiry(ctx context.Context, inquiry Inquiry) error {
	if c.webhookURL == "" {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(map[string]string{"text": formatMessage(inquiry)})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	err = retry.Do(
		func() error {
			req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost,
				c.webhookURL, bytes.NewReader(payload))
			if reqErr != nil {
				return retry.Unrecoverable(fmt.Errorf("create webhook request: %w", reqErr))
			}
			req.Header.Set("Content-Type", "application/json")

			resp, doErr := c.httpClient.Do(req)
			if doErr != nil {
				return fmt.Errorf("post to webhook: %w", doErr)
			}
			defer resp.Body.Close()

			if resp.StatusCode < 200 || resp.StatusCode > 299 {
				return fmt.Errorf("webhook returned %d", resp.StatusCode)
			}
			return nil
		},
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.MaxDelay(10*time.Second),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, retryErr error) {
			slog.Info("Retrying Slack webhook", "attempt", n, "error", retryErr)
		}),
	)
	if err != nil {
		return fmt.Errorf("send inquiry after retries: %w", err)
	}

	return nil
}

func formatMessage(inquiry Inquiry) string {
	var b strings.Builder

	title := inquiry.Title
	if title == "" {
		title = "New inquiry"
	}
	fmt.Fprintf(&b, "*%s*\n", title)
	fmt.Fprintf(&b, "Name: %s\n", inquiry.Name)
	fmt.Fprintf(&b, "Email: %s\n", inquiry.Email)
	if inquiry.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", inquiry.Phone)
	}
	fmt.Fprintf(&b, "\n%s", inquiry.Content)

	return b.String()
}
