package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storyreel/internal/config"
)

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := config.Default()
	if cfg.Pipeline.MaxConcurrent != 2 {
		t.Fatalf("expected default max_concurrent 2, got %d", cfg.Pipeline.MaxConcurrent)
	}
	if cfg.Publisher.Backend != "local" {
		t.Fatalf("expected default publisher backend local, got %q", cfg.Publisher.Backend)
	}
	if cfg.Media.TitleFontSize != 30 || cfg.Media.ChapterFontSize != 20 {
		t.Fatalf("unexpected default font sizes %d/%d", cfg.Media.TitleFontSize, cfg.Media.ChapterFontSize)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[paths]
workspace_dir = "` + dir + `/work"
bind = "127.0.0.1:9900"

[pipeline]
max_concurrent = 4
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if resolved != path {
		t.Fatalf("expected resolved path %s, got %s", path, resolved)
	}
	if cfg.Pipeline.MaxConcurrent != 4 {
		t.Fatalf("expected max_concurrent 4, got %d", cfg.Pipeline.MaxConcurrent)
	}
	if cfg.Paths.Bind != "127.0.0.1:9900" {
		t.Fatalf("unexpected bind %q", cfg.Paths.Bind)
	}
	// Unset keys retain defaults.
	if cfg.Webhook.RequestTimeout != 10 {
		t.Fatalf("expected default webhook timeout, got %d", cfg.Webhook.RequestTimeout)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	if _, _, err := config.Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for explicitly named missing file")
	}
}

func TestValidateRejectsBadConcurrency(t *testing.T) {
	cfg := config.Default()
	cfg.Normalize()
	cfg.Pipeline.MaxConcurrent = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for max_concurrent 0")
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Normalize()
	cfg.Publisher.Backend = "ftp"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "publisher.backend") {
		t.Fatalf("expected backend validation error, got %v", err)
	}
}

func TestValidateDriveRequiresCredentials(t *testing.T) {
	cfg := config.Default()
	cfg.Normalize()
	cfg.Publisher.Backend = "drive"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for drive backend without credentials")
	}
	cfg.Publisher.Drive.CredentialsFile = "/tmp/creds.json"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for drive backend without folder id")
	}
	cfg.Publisher.Drive.FolderID = "folder"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("drive backend with credentials and folder should validate: %v", err)
	}
}

func TestNormalizeExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	cfg := config.Default()
	cfg.Paths.WorkspaceDir = "~/work"
	cfg.Normalize()
	if cfg.Paths.WorkspaceDir != filepath.Join(home, "work") {
		t.Fatalf("expected home expansion, got %q", cfg.Paths.WorkspaceDir)
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if err := config.WriteSample(path); err == nil {
		t.Fatal("expected error when target exists")
	}

	cfg, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if cfg.Pipeline.MaxConcurrent != 2 {
		t.Fatalf("sample config altered defaults: %d", cfg.Pipeline.MaxConcurrent)
	}
}
