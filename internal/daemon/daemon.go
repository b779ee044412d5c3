package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"storyreel/internal/config"
	"storyreel/internal/fileutil"
	"storyreel/internal/logging"
	"storyreel/internal/notify"
	"storyreel/internal/pipeline"
	"storyreel/internal/preflight"
	"storyreel/internal/registry"
	"storyreel/internal/server"
	"storyreel/internal/services/fetch"
	"storyreel/internal/services/publish"
	"storyreel/internal/services/render"
)

// Daemon wires the registry, pipeline, and HTTP surface together and
// enforces single-instance execution.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *registry.Registry
	manager  *pipeline.Manager
	server   *server.Server

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires configuration")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := fileutil.EnsureDir(cfg.Paths.WorkspaceDir); err != nil {
		return nil, fmt.Errorf("create workspace directory: %w", err)
	}
	if err := fileutil.EnsureDir(cfg.Paths.LogDir); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	reg := registry.New()

	publisher, err := publish.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("build publisher: %w", err)
	}

	composer := render.NewFFmpegComposer(render.Options{
		FFmpegBinary:    cfg.Media.FFmpegBinary,
		FFprobeBinary:   cfg.Media.FFprobeBinary,
		FontPath:        cfg.Media.FontPath,
		TitleFontSize:   cfg.Media.TitleFontSize,
		ChapterFontSize: cfg.Media.ChapterFontSize,
		CaptionMargin:   cfg.Media.CaptionMargin,
	})

	manager, err := pipeline.NewManager(pipeline.Options{
		Registry:       reg,
		Fetcher:        fetch.NewHTTPFetcher(time.Duration(cfg.Pipeline.FetchTimeout) * time.Second),
		Composer:       composer,
		Publisher:      publisher,
		Notifier:       notify.NewWebhookNotifier(time.Duration(cfg.Webhook.RequestTimeout) * time.Second),
		Logger:         logger,
		WorkspaceDir:   cfg.Paths.WorkspaceDir,
		MaxConcurrent:  cfg.Pipeline.MaxConcurrent,
		FetchTimeout:   time.Duration(cfg.Pipeline.FetchTimeout) * time.Second,
		RenderTimeout:  time.Duration(cfg.Pipeline.RenderTimeout) * time.Second,
		PublishTimeout: time.Duration(cfg.Pipeline.PublishTimeout) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("build pipeline manager: %w", err)
	}

	apiServer, err := server.New(cfg.Paths.Bind, reg, manager, logger)
	if err != nil {
		return nil, fmt.Errorf("build api server: %w", err)
	}
	if cfg.Publisher.Backend == "local" {
		apiServer.ServeArtifacts(cfg.Publisher.Local.Dir)
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "storyreeld.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.WithComponent(logger, "daemon"),
		registry: reg,
		manager:  manager,
		server:   apiServer,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Registry exposes the job registry, primarily for tests.
func (d *Daemon) Registry() *registry.Registry { return d.registry }

// Start acquires the instance lock, runs preflight checks, and begins
// serving the HTTP API.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another storyreel daemon instance is already running")
	}

	for _, result := range preflight.Check(d.cfg) {
		if result.Passed {
			d.logger.Debug("preflight check passed", logging.String("check", result.Name), logging.String("detail", result.Detail))
			continue
		}
		d.logger.Warn("preflight check failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail),
		)
	}

	if err := d.server.Start(ctx); err != nil {
		_ = d.lock.Unlock()
		return err
	}

	d.running.Store(true)
	d.logger.Info("storyreel daemon started",
		logging.String("bind", d.cfg.Paths.Bind),
		logging.String("lock", d.lockPath),
		logging.Int("max_concurrent", d.cfg.Pipeline.MaxConcurrent),
	)
	return nil
}

// Stop shuts down the HTTP surface, waits for in-flight pipeline runs, and
// releases the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	d.server.Stop()
	d.manager.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("storyreel daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}
