package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"storyreel/internal/config"
	"storyreel/internal/daemon"
	"storyreel/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, path, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	d, err := daemon.New(cfg, logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		return
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start", logging.Error(err))
		return
	}
	logger.Info("storyreeld running", logging.String("config", path))

	<-ctx.Done()
	logger.Info("storyreeld shutting down")
	d.Stop()
}
