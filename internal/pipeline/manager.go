package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"storyreel/internal/logging"
	"storyreel/internal/notify"
	"storyreel/internal/registry"
	"storyreel/internal/services/fetch"
	"storyreel/internal/services/publish"
	"storyreel/internal/services/render"
)

// ShutdownReason is the failure reason recorded on jobs that never acquired
// a slot before the daemon stopped.
const ShutdownReason = "daemon stopped before processing started"

// Request carries the composition inputs for one job. The job's identity and
// callback live in the registry record.
type Request struct {
	StoryName string
	Chapter   string
	ImagePath string
	AudioURLs []string
}

// Options configures a pipeline manager.
type Options struct {
	Registry  *registry.Registry
	Fetcher   fetch.Fetcher
	Composer  render.Composer
	Publisher publish.Publisher
	Notifier  notify.Notifier
	Logger    *slog.Logger

	WorkspaceDir  string
	MaxConcurrent int

	// Per-stage timeouts. Zero disables the bound for that stage.
	FetchTimeout   time.Duration
	RenderTimeout  time.Duration
	PublishTimeout time.Duration
}

// Manager schedules pipeline executions, bounding how many run at once.
// Each accepted job runs as its own goroutine; the semaphore caps the number
// past the acquisition point, and a slot is held until the job's temporary
// files are gone.
type Manager struct {
	opts   Options
	logger *slog.Logger
	sem    *semaphore.Weighted

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	stopped bool
}

// NewManager validates dependencies and constructs a manager ready to accept
// jobs.
func NewManager(opts Options) (*Manager, error) {
	if opts.Registry == nil {
		return nil, errors.New("pipeline manager requires a registry")
	}
	if opts.Fetcher == nil || opts.Composer == nil || opts.Publisher == nil {
		return nil, errors.New("pipeline manager requires fetcher, composer, and publisher")
	}
	if opts.WorkspaceDir == "" {
		return nil, errors.New("pipeline manager requires a workspace directory")
	}
	if opts.MaxConcurrent < 1 {
		opts.MaxConcurrent = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		opts:   opts,
		logger: logging.WithComponent(opts.Logger, "pipeline"),
		sem:    semaphore.NewWeighted(int64(opts.MaxConcurrent)),
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Launch schedules the pipeline execution for an admitted job. It never
// blocks the caller; the execution waits for a concurrency slot on its own
// goroutine.
func (m *Manager) Launch(job registry.Job, req Request) {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		m.opts.Registry.MarkFailed(job.ID, ShutdownReason)
		return
	}
	m.wg.Add(1)
	m.mu.Unlock()

	go m.run(job, req)
}

// Stop refuses new work, aborts executions still waiting for a slot, and
// waits for in-flight jobs to finish. Jobs past slot acquisition run to
// completion; there is no cancellation path for them.
func (m *Manager) Stop() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	m.mu.Unlock()

	m.cancel()
	m.wg.Wait()
}
