package testsupport

import (
	"context"
	"errors"
	"os"
	"sync"

	"storyreel/internal/notify"
	"storyreel/internal/services/render"
)

// StubFetcher writes placeholder bytes to the destination, or fails for a
// designated URL.
type StubFetcher struct {
	FailURL string
	Err     error

	mu      sync.Mutex
	fetched []string
}

func (f *StubFetcher) Fetch(ctx context.Context, url, dest string) error {
	if f.FailURL != "" && url == f.FailURL {
		if f.Err != nil {
			return f.Err
		}
		return errors.New("fetch failed for " + url)
	}
	f.mu.Lock()
	f.fetched = append(f.fetched, url)
	f.mu.Unlock()
	return os.WriteFile(dest, []byte("audio:"+url), 0o644)
}

// Fetched returns the successfully fetched URLs in call order.
func (f *StubFetcher) Fetched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fetched...)
}

// StubComposer writes a placeholder video file. When Gate is non-nil the
// call blocks until the channel is closed, which lets tests hold jobs inside
// the compose stage.
type StubComposer struct {
	Err  error
	Gate chan struct{}

	mu       sync.Mutex
	requests []render.Request
}

func (c *StubComposer) Compose(ctx context.Context, req render.Request) (render.Result, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()

	if c.Gate != nil {
		select {
		case <-c.Gate:
		case <-ctx.Done():
			return render.Result{}, ctx.Err()
		}
	}
	if c.Err != nil {
		return render.Result{}, c.Err
	}
	if err := os.WriteFile(req.OutputPath, []byte("video"), 0o644); err != nil {
		return render.Result{}, err
	}
	return render.Result{VideoPath: req.OutputPath}, nil
}

// Requests returns the compose requests observed so far.
func (c *StubComposer) Requests() []render.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]render.Request(nil), c.requests...)
}

// StubPublisher returns a fixed URL or a fixed error.
type StubPublisher struct {
	URL string
	Err error

	mu        sync.Mutex
	published []string
}

func (p *StubPublisher) Publish(ctx context.Context, filePath string) (string, error) {
	if p.Err != nil {
		return "", p.Err
	}
	p.mu.Lock()
	p.published = append(p.published, filePath)
	p.mu.Unlock()
	return p.URL, nil
}

// Published returns the artifact paths handed to the publisher.
func (p *StubPublisher) Published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.published...)
}

// NotifierCall records one webhook delivery attempt.
type NotifierCall struct {
	URL     string
	Payload notify.Payload
}

// RecordingNotifier captures webhook calls and optionally fails them.
type RecordingNotifier struct {
	Err error

	mu    sync.Mutex
	calls []NotifierCall
}

func (n *RecordingNotifier) Notify(ctx context.Context, webhookURL string, payload notify.Payload) error {
	n.mu.Lock()
	n.calls = append(n.calls, NotifierCall{URL: webhookURL, Payload: payload})
	n.mu.Unlock()
	return n.Err
}

// Calls returns the recorded webhook deliveries.
func (n *RecordingNotifier) Calls() []NotifierCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]NotifierCall(nil), n.calls...)
}
