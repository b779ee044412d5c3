package main

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"storyreel/internal/logging"
	"storyreel/internal/pipeline"
	"storyreel/internal/registry"
	"storyreel/internal/server"
)

type noopScheduler struct{}

func (noopScheduler) Launch(registry.Job, pipeline.Request) {}

type cliTestEnv struct {
	registry *registry.Registry
	server   *httptest.Server
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	reg := registry.New()
	srv, err := server.New("127.0.0.1:0", reg, noopScheduler{}, logging.NewNop())
	if err != nil {
		t.Fatalf("server.New: %v", err)
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &cliTestEnv{registry: reg, server: ts}
}

func runCLI(t *testing.T, args []string, serverAddr string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if serverAddr != "" {
		args = append([]string{"--server", serverAddr}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
