package publish_test

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storyreel/internal/config"
	"storyreel/internal/services/publish"
)

func writeArtifact(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "video_abc.mp4")
	if err := os.WriteFile(path, []byte("mp4-bytes"), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

func TestLocalPublisherCopiesAndLinks(t *testing.T) {
	artifact := writeArtifact(t)
	dir := t.TempDir()
	publisher := publish.NewLocalPublisher(dir, "http://media.example.com/artifacts/")

	url, err := publisher.Publish(context.Background(), artifact)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if url != "http://media.example.com/artifacts/video_abc.mp4" {
		t.Fatalf("unexpected url %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "video_abc.mp4"))
	if err != nil {
		t.Fatalf("published file missing: %v", err)
	}
	if string(data) != "mp4-bytes" {
		t.Fatalf("published file corrupted: %q", data)
	}
}

func TestLocalPublisherMissingArtifact(t *testing.T) {
	publisher := publish.NewLocalPublisher(t.TempDir(), "http://media.example.com")
	if _, err := publisher.Publish(context.Background(), filepath.Join(t.TempDir(), "absent.mp4")); err == nil {
		t.Fatal("expected error for missing artifact")
	}
}

func TestDrivePublisherUploadsAndGrantsAccess(t *testing.T) {
	var uploadSeen, permissionSeen bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/upload/files"):
			uploadSeen = true
			mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil || mediaType != "multipart/related" || params["boundary"] == "" {
				t.Errorf("unexpected upload content type %q", r.Header.Get("Content-Type"))
			}
			body, _ := io.ReadAll(r.Body)
			if !strings.Contains(string(body), `"name":"video_abc.mp4"`) {
				t.Errorf("upload metadata missing file name")
			}
			if !strings.Contains(string(body), `"folder-1"`) {
				t.Errorf("upload metadata missing parent folder")
			}
			if !strings.Contains(string(body), "mp4-bytes") {
				t.Errorf("upload body missing media bytes")
			}
			json.NewEncoder(w).Encode(map[string]string{"id": "file-123"})
		case strings.HasSuffix(r.URL.Path, "/files/file-123/permissions"):
			permissionSeen = true
			var grant map[string]string
			if err := json.NewDecoder(r.Body).Decode(&grant); err != nil {
				t.Errorf("decode permission body: %v", err)
			}
			if grant["type"] != "anyone" || grant["role"] != "reader" {
				t.Errorf("unexpected permission grant %v", grant)
			}
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	publisher, err := publish.NewDrivePublisher(publish.DriveOptions{
		FolderID:      "folder-1",
		UploadBaseURL: server.URL + "/upload",
		APIBaseURL:    server.URL + "/api",
		HTTPClient:    server.Client(),
	})
	if err != nil {
		t.Fatalf("NewDrivePublisher: %v", err)
	}

	url, err := publisher.Publish(context.Background(), writeArtifact(t))
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if url != "https://drive.google.com/file/d/file-123/view?usp=sharing" {
		t.Fatalf("unexpected share url %q", url)
	}
	if !uploadSeen || !permissionSeen {
		t.Fatalf("expected both upload and permission calls (upload=%v permission=%v)", uploadSeen, permissionSeen)
	}
}

func TestDrivePublisherUploadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "quota exceeded"}`, http.StatusForbidden)
	}))
	defer server.Close()

	publisher, err := publish.NewDrivePublisher(publish.DriveOptions{
		UploadBaseURL: server.URL,
		APIBaseURL:    server.URL,
		HTTPClient:    server.Client(),
	})
	if err != nil {
		t.Fatalf("NewDrivePublisher: %v", err)
	}

	_, err = publisher.Publish(context.Background(), writeArtifact(t))
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected upload failure naming the status, got %v", err)
	}
}

func TestDrivePublisherRequiresCredentialsWithoutClient(t *testing.T) {
	if _, err := publish.NewDrivePublisher(publish.DriveOptions{CredentialsFile: filepath.Join(t.TempDir(), "absent.json")}); err == nil {
		t.Fatal("expected error for missing credentials file")
	}
}

func TestNewFromConfigSelectsBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Normalize()
	cfg.Publisher.Backend = "local"
	publisher, err := publish.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if _, ok := publisher.(*publish.LocalPublisher); !ok {
		t.Fatalf("expected local publisher, got %T", publisher)
	}

	cfg.Publisher.Backend = "carrier-pigeon"
	if _, err := publish.NewFromConfig(&cfg); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
