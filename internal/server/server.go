package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"storyreel/internal/logging"
	"storyreel/internal/pipeline"
	"storyreel/internal/registry"
)

// Scheduler hands an admitted job to the pipeline without blocking.
type Scheduler interface {
	Launch(job registry.Job, req pipeline.Request)
}

// Server exposes the admission and status HTTP surface.
type Server struct {
	bind      string
	logger    *slog.Logger
	registry  *registry.Registry
	scheduler Scheduler

	echo     *echo.Echo
	server   *http.Server
	listener net.Listener
}

// New builds the HTTP server. It does not start listening.
func New(bind string, reg *registry.Registry, scheduler Scheduler, logger *slog.Logger) (*Server, error) {
	if reg == nil || scheduler == nil {
		return nil, errors.New("server requires a registry and a scheduler")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = httpErrorHandler(logger)
	e.Use(middleware.Recover())

	srv := &Server{
		bind:      bind,
		logger:    logging.WithComponent(logger, "api-server"),
		registry:  reg,
		scheduler: scheduler,
		echo:      e,
	}

	e.POST("/create_video", srv.handleCreateVideo)
	e.GET("/video_status/:video_id", srv.handleVideoStatus)
	e.GET("/jobs", srv.handleListJobs)
	e.GET("/healthz", srv.handleHealthz)

	srv.server = &http.Server{
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

// Handler exposes the routing tree for tests.
func (s *Server) Handler() http.Handler { return s.echo }

// ServeArtifacts serves published files from dir under /artifacts, which the
// local publisher's URLs point at.
func (s *Server) ServeArtifacts(dir string) {
	s.echo.Static("/artifacts", dir)
}

// Start begins serving and arranges shutdown when ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down, allowing in-flight requests a short grace
// period.
func (s *Server) Stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}
