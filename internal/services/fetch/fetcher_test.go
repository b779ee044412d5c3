package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"storyreel/internal/services/fetch"
)

func TestFetchWritesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("audio-bytes"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "segment_0.mp3")
	fetcher := fetch.NewHTTPFetcher(5 * time.Second)
	if err := fetcher.Fetch(context.Background(), server.URL, dest); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(data) != "audio-bytes" {
		t.Fatalf("unexpected contents %q", data)
	}
}

func TestFetchNonOKStatusNamesURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "segment_0.mp3")
	fetcher := fetch.NewHTTPFetcher(5 * time.Second)
	err := fetcher.Fetch(context.Background(), server.URL+"/missing.mp3", dest)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !strings.Contains(err.Error(), server.URL+"/missing.mp3") {
		t.Fatalf("error should name the failing url, got %v", err)
	}
	if _, statErr := os.Stat(dest); statErr == nil {
		t.Fatal("no file should be written for a failed fetch")
	}
}

func TestFetchUnreachableHost(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "segment_0.mp3")
	fetcher := fetch.NewHTTPFetcher(500 * time.Millisecond)
	if err := fetcher.Fetch(context.Background(), "http://127.0.0.1:1/audio.mp3", dest); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestFetchHonorsContextCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	dest := filepath.Join(t.TempDir(), "segment_0.mp3")
	fetcher := fetch.NewHTTPFetcher(0)
	if err := fetcher.Fetch(ctx, server.URL, dest); err == nil {
		t.Fatal("expected context deadline error")
	}
}
