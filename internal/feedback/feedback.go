// Package feedback relays user feedback text to a remote collector over
// HTTP. No retries, no queueing: a failed submission is reported to the
// caller synchronously.
package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrEmptyFeedback rejects submissions with no content before any network
// activity.
var ErrEmptyFeedback = errors.New("feedback: empty message")

// Client posts feedback to a configured collector endpoint.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type submission struct {
	Text string `json:"text"`
}

// Submit sends text to the collector. Whitespace-only text is rejected
// locally with ErrEmptyFeedback.
func (c *Client) Submit(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyFeedback
	}

	body, err := json.Marshal(submission{Text: text})
	if err != nil {
		return fmt.Errorf("feedback marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("feedback request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("feedback post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("feedback collector returned %s", resp.Status)
	}
	return nil
}
