package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const userAgent = "storyreel/0.1.0"

// Payload is the completion callback body delivered to the caller's webhook.
type Payload struct {
	TaskID   string `json:"task_id"`
	Status   string `json:"status"`
	VideoURL string `json:"video_url"`
}

// Notifier delivers completion callbacks. Delivery is best-effort: a single
// POST, no retries, no delivery confirmation beyond the returned error.
type Notifier interface {
	Notify(ctx context.Context, webhookURL string, payload Payload) error
}

// WebhookNotifier posts JSON payloads to caller-supplied URLs.
type WebhookNotifier struct {
	client *http.Client
}

// NewWebhookNotifier builds a notifier with the given request timeout.
func NewWebhookNotifier(timeout time.Duration) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookNotifier{client: &http.Client{Timeout: timeout}}
}

// Notify fires one POST to webhookURL. The caller decides what to do with
// the error; job state never depends on it.
func (n *WebhookNotifier) Notify(ctx context.Context, webhookURL string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
