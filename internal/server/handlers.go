package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"storyreel/internal/logging"
	"storyreel/internal/pipeline"
	"storyreel/internal/registry"
)

type createVideoRequest struct {
	TaskID     string   `json:"task_id" validate:"required"`
	StoryName  string   `json:"story_name" validate:"required"`
	Chapter    string   `json:"chapter" validate:"required"`
	ImagePath  string   `json:"image_path" validate:"required"`
	AudioURLs  []string `json:"audio_urls" validate:"required,min=1,dive,required,url"`
	WebhookURL string   `json:"webhook_url" validate:"omitempty,url"`
}

type createVideoResponse struct {
	VideoID string `json:"video_id"`
	Status  string `json:"status"`
	TaskID  string `json:"task_id"`
}

type jobResponse struct {
	VideoID    string    `json:"video_id"`
	TaskID     string    `json:"task_id"`
	Status     string    `json:"status"`
	URL        string    `json:"url,omitempty"`
	WebhookURL string    `json:"webhook_url,omitempty"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toJobResponse(job registry.Job) jobResponse {
	return jobResponse{
		VideoID:    job.ID,
		TaskID:     job.TaskID,
		Status:     string(job.Status),
		URL:        job.ArtifactURL,
		WebhookURL: job.WebhookURL,
		Error:      job.ErrorReason,
		CreatedAt:  job.CreatedAt,
		UpdatedAt:  job.UpdatedAt,
	}
}

// handleCreateVideo admits a job and schedules its pipeline run. The call
// returns as soon as the job record exists; rendering happens in the
// background.
func (s *Server) handleCreateVideo(c echo.Context) error {
	var req createVideoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	job := s.registry.Create(req.TaskID, req.WebhookURL)
	s.scheduler.Launch(job, pipeline.Request{
		StoryName: req.StoryName,
		Chapter:   req.Chapter,
		ImagePath: req.ImagePath,
		AudioURLs: req.AudioURLs,
	})

	s.logger.Info("job admitted",
		logging.String(logging.FieldJobID, job.ID),
		logging.String(logging.FieldTaskID, job.TaskID),
		logging.Int("audio_segments", len(req.AudioURLs)),
	)

	return c.JSON(http.StatusAccepted, createVideoResponse{
		VideoID: job.ID,
		Status:  string(job.Status),
		TaskID:  job.TaskID,
	})
}

func (s *Server) handleVideoStatus(c echo.Context) error {
	id := c.Param("video_id")
	job, ok := s.registry.Get(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "video not found")
	}
	return c.JSON(http.StatusOK, toJobResponse(job))
}

func (s *Server) handleListJobs(c echo.Context) error {
	jobs := s.registry.List()
	out := make([]jobResponse, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, toJobResponse(job))
	}
	return c.JSON(http.StatusOK, map[string]any{"jobs": out})
}

func (s *Server) handleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
