package testsupport

import (
	"path/filepath"
	"testing"

	"storyreel/internal/config"
)

// NewConfig returns a validated configuration rooted in a per-test temp
// directory.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()

	cfg := config.Default()
	cfg.Paths.WorkspaceDir = filepath.Join(base, "workspace")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Publisher.Local.Dir = filepath.Join(base, "published")
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}
