package daemon

import (
	"context"
	"strings"
	"testing"

	"storyreel/internal/logging"
	"storyreel/internal/testsupport"
)

func TestNewRequiresConfig(t *testing.T) {
	if _, err := New(nil, logging.NewNop()); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestStartStopLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Paths.Bind = "127.0.0.1:0"

	d, err := New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer d.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := d.Start(ctx); err == nil {
		t.Fatal("expected error starting an already running daemon")
	}

	d.Stop()
	d.Stop()
}

func TestSecondInstanceRejected(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Paths.Bind = "127.0.0.1:0"

	first, err := New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer first.Close()

	ctx := context.Background()
	if err := first.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	second, err := New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("New second instance: %v", err)
	}
	defer second.Close()

	err = second.Start(ctx)
	if err == nil {
		t.Fatal("expected second instance to be rejected")
	}
	if !strings.Contains(err.Error(), "already running") {
		t.Fatalf("unexpected error: %v", err)
	}
}
