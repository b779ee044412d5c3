package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"storyreel/internal/fileutil"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	if err := fileutil.CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("unexpected destination contents %q", data)
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := fileutil.CopyFile(filepath.Join(dir, "absent"), filepath.Join(dir, "dst")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestRemoveIfExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "victim")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if err := fileutil.RemoveIfExists(path); err != nil {
		t.Fatalf("remove existing: %v", err)
	}
	if err := fileutil.RemoveIfExists(path); err != nil {
		t.Fatalf("remove absent should succeed: %v", err)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present")
	if fileutil.FileExists(path) {
		t.Fatal("missing file reported as existing")
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if !fileutil.FileExists(path) {
		t.Fatal("existing file not detected")
	}
	if fileutil.FileExists(dir) {
		t.Fatal("directory reported as regular file")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")
	if err := fileutil.EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	info, err := os.Stat(nested)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %s (err=%v)", nested, err)
	}
}
