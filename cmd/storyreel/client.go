package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// apiClient talks to the storyreel daemon's HTTP API.
type apiClient struct {
	base *url.URL
	http *http.Client
}

type submitRequest struct {
	TaskID     string   `json:"task_id"`
	StoryName  string   `json:"story_name"`
	Chapter    string   `json:"chapter"`
	ImagePath  string   `json:"image_path"`
	AudioURLs  []string `json:"audio_urls"`
	WebhookURL string   `json:"webhook_url,omitempty"`
}

type submitResponse struct {
	VideoID string `json:"video_id"`
	Status  string `json:"status"`
	TaskID  string `json:"task_id"`
}

type jobView struct {
	VideoID    string    `json:"video_id"`
	TaskID     string    `json:"task_id"`
	Status     string    `json:"status"`
	URL        string    `json:"url"`
	WebhookURL string    `json:"webhook_url"`
	Error      string    `json:"error"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type jobListResponse struct {
	Jobs []jobView `json:"jobs"`
}

type apiErrorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
}

func newAPIClient(addr string) (*apiClient, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("daemon address is empty")
	}
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	base, err := url.Parse(addr)
	if err != nil {
		return nil, err
	}
	base.Path = ""
	base.RawQuery = ""
	base.Fragment = ""

	return &apiClient{
		base: base,
		http: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (c *apiClient) Submit(ctx context.Context, req submitRequest) (submitResponse, error) {
	var out submitResponse
	err := c.do(ctx, http.MethodPost, "/create_video", req, &out)
	return out, err
}

func (c *apiClient) Status(ctx context.Context, videoID string) (jobView, error) {
	var out jobView
	err := c.do(ctx, http.MethodGet, "/video_status/"+url.PathEscape(videoID), nil, &out)
	return out, err
}

func (c *apiClient) Jobs(ctx context.Context) ([]jobView, error) {
	var out jobListResponse
	if err := c.do(ctx, http.MethodGet, "/jobs", nil, &out); err != nil {
		return nil, err
	}
	return out.Jobs, nil
}

func (c *apiClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *apiClient) do(ctx context.Context, method, path string, body, out any) error {
	var payload *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(encoded)
	} else {
		payload = bytes.NewReader(nil)
	}

	endpoint := c.base.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), payload)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("daemon request failed (is storyreeld running?): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope apiErrorEnvelope
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil && envelope.Error.Message != "" {
			if len(envelope.Error.Details) > 0 {
				parts := make([]string, 0, len(envelope.Error.Details))
				for _, d := range envelope.Error.Details {
					parts = append(parts, fmt.Sprintf("%s: %s", d.Field, d.Message))
				}
				return fmt.Errorf("%s (%s)", envelope.Error.Message, strings.Join(parts, "; "))
			}
			return fmt.Errorf("%s", envelope.Error.Message)
		}
		return fmt.Errorf("daemon returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
