package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"storyreel/internal/logging"
)

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("hello", logging.String("component", "test"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "hello" {
		t.Fatalf("unexpected msg %v", record["msg"])
	}
	if record["component"] != "test" {
		t.Fatalf("unexpected component %v", record["component"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info record leaked past warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("dropped", logging.Error(nil))
}

func TestWithComponentNilBase(t *testing.T) {
	logger := logging.WithComponent(nil, "pipeline")
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
	logger.Info("no-op")
}
