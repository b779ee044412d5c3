package pipeline

import (
	"context"
	"log/slog"
	"time"

	"storyreel/internal/logging"
	"storyreel/internal/notify"
	"storyreel/internal/registry"
	"storyreel/internal/services"
	"storyreel/internal/services/render"
)

// run executes the full pipeline for one job: acquire a slot, fetch the
// audio segments, compose the video, publish it, and notify the caller.
// Temporary files are removed on every path before the slot is released.
func (m *Manager) run(job registry.Job, req Request) {
	defer m.wg.Done()

	logger := m.logger.With(
		logging.String(logging.FieldJobID, job.ID),
		logging.String(logging.FieldTaskID, job.TaskID),
	)

	if err := m.sem.Acquire(m.ctx, 1); err != nil {
		m.opts.Registry.MarkFailed(job.ID, ShutdownReason)
		logger.Warn("job aborted before acquiring a slot", logging.Error(err))
		return
	}
	defer m.sem.Release(1)

	// Holding a slot means processing, even if setup fails a moment later;
	// the status machine never jumps straight from queued to a terminal state.
	m.opts.Registry.MarkProcessing(job.ID)

	ws, err := createWorkspace(m.opts.WorkspaceDir, job.ID)
	if err != nil {
		m.opts.Registry.MarkFailed(job.ID, services.Reason(err))
		logger.Error("workspace setup failed", logging.Error(err))
		return
	}
	// Registered after the semaphore release so teardown finishes while the
	// slot is still held.
	defer ws.Cleanup(logger)

	start := time.Now()
	logger.Info("pipeline started",
		logging.String(logging.FieldEventType, "pipeline_start"),
		logging.Int("audio_segments", len(req.AudioURLs)),
	)

	artifactURL, err := m.execute(logger, job, req, ws)
	if err != nil {
		reason := services.Reason(err)
		m.opts.Registry.MarkFailed(job.ID, reason)
		logger.Error("pipeline failed",
			logging.String(logging.FieldEventType, "pipeline_failure"),
			logging.String("reason", reason),
			logging.Error(err),
		)
		return
	}

	m.opts.Registry.MarkCompleted(job.ID, artifactURL)
	logger.Info("pipeline completed",
		logging.String(logging.FieldEventType, "pipeline_complete"),
		logging.String("artifact_url", artifactURL),
		logging.Duration("pipeline_duration", time.Since(start)),
	)

	m.notifyCompletion(logger, job, artifactURL)
}

// execute runs the fetch, compose, and publish stages in order. The first
// failing stage short-circuits the rest.
func (m *Manager) execute(logger *slog.Logger, job registry.Job, req Request, ws *workspace) (string, error) {
	audioPaths := make([]string, 0, len(req.AudioURLs))
	for idx, url := range req.AudioURLs {
		dest := ws.AudioPath(idx)
		if err := m.fetchOne(url, dest); err != nil {
			return "", err
		}
		audioPaths = append(audioPaths, dest)
	}
	logger.Debug("assets fetched", logging.String(logging.FieldStage, "fetch"), logging.Int("count", len(audioPaths)))

	renderCtx, cancel := stageContext(m.opts.RenderTimeout)
	result, err := m.opts.Composer.Compose(renderCtx, render.Request{
		AudioPaths: audioPaths,
		ImagePath:  req.ImagePath,
		Title:      req.StoryName,
		Chapter:    req.Chapter,
		WorkDir:    ws.Dir(),
		OutputPath: ws.VideoPath(),
	})
	cancel()
	if err != nil {
		return "", err
	}
	logger.Debug("video composed",
		logging.String(logging.FieldStage, "compose"),
		logging.Duration("video_duration", result.Duration),
	)

	publishCtx, cancel := stageContext(m.opts.PublishTimeout)
	defer cancel()
	artifactURL, err := m.opts.Publisher.Publish(publishCtx, result.VideoPath)
	if err != nil {
		return "", err
	}
	return artifactURL, nil
}

func (m *Manager) fetchOne(url, dest string) error {
	ctx, cancel := stageContext(m.opts.FetchTimeout)
	defer cancel()
	return m.opts.Fetcher.Fetch(ctx, url, dest)
}

// notifyCompletion fires the caller's webhook once. The outcome is logged
// and never alters job state; only finished jobs trigger a callback.
func (m *Manager) notifyCompletion(logger *slog.Logger, job registry.Job, artifactURL string) {
	if job.WebhookURL == "" || m.opts.Notifier == nil {
		return
	}

	payload := notify.Payload{
		TaskID:   job.TaskID,
		Status:   string(registry.StatusCompleted),
		VideoURL: artifactURL,
	}
	if err := m.opts.Notifier.Notify(context.Background(), job.WebhookURL, payload); err != nil {
		logger.Warn("webhook delivery failed",
			logging.String(logging.FieldEventType, "webhook_failure"),
			logging.String("webhook_url", job.WebhookURL),
			logging.Error(err),
		)
		return
	}
	logger.Info("webhook delivered", logging.String("webhook_url", job.WebhookURL))
}

// stageContext bounds a stage with a timeout. In-flight jobs survive daemon
// shutdown, so stage contexts derive from the background context rather than
// the manager's.
func stageContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}
