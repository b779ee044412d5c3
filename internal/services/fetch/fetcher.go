package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"storyreel/internal/services"
)

const userAgent = "storyreel/0.1.0"

// Fetcher downloads remote assets to local paths.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

// HTTPFetcher streams assets over HTTP(S) to disk.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher builds a fetcher with the given request timeout. A zero
// timeout disables the client deadline; callers may still bound requests via
// the context.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch downloads url to dest. A partially written file is removed on error
// so cleanup never has to reason about truncated segments.
func (f *HTTPFetcher) Fetch(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return services.Wrap(services.ErrValidation, "fetch", "build request", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrTransient, "fetch", "download", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return services.Wrap(services.ErrTransient, "fetch", "download", fmt.Sprintf("%s returned status %d", url, resp.StatusCode), nil)
	}

	out, err := os.Create(dest)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "fetch", "create file", dest, err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		_ = os.Remove(dest)
		return services.Wrap(services.ErrTransient, "fetch", "write file", url, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dest)
		return services.Wrap(services.ErrTransient, "fetch", "close file", dest, err)
	}
	return nil
}
