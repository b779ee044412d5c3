package services_test

import (
	"errors"
	"testing"

	"storyreel/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := errors.New("connection refused")
	err := services.Wrap(services.ErrExternalTool, "fetch", "download", "https://example.com/a.mp3", cause)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker in %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause chain preserved in %v", err)
	}
}

func TestWrapNilMarkerDefaultsTransient(t *testing.T) {
	err := services.Wrap(nil, "publish", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestReasonStripsMarkerPrefix(t *testing.T) {
	err := services.Wrap(services.ErrValidation, "fetch", "download", "bad url", nil)
	reason := services.Reason(err)
	if reason != "fetch: download: bad url" {
		t.Fatalf("unexpected reason %q", reason)
	}
}

func TestReasonNil(t *testing.T) {
	if got := services.Reason(nil); got != "" {
		t.Fatalf("expected empty reason for nil error, got %q", got)
	}
}
