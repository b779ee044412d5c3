package publish

import (
	"context"
	"fmt"

	"storyreel/internal/config"
)

// Publisher uploads a finished video and returns its durable public URL.
type Publisher interface {
	Publish(ctx context.Context, filePath string) (string, error)
}

// NewFromConfig selects the publisher backend named in the configuration.
func NewFromConfig(cfg *config.Config) (Publisher, error) {
	switch cfg.Publisher.Backend {
	case "local":
		return NewLocalPublisher(cfg.Publisher.Local.Dir, cfg.Publisher.Local.BaseURL), nil
	case "drive":
		return NewDrivePublisher(DriveOptions{
			CredentialsFile: cfg.Publisher.Drive.CredentialsFile,
			FolderID:        cfg.Publisher.Drive.FolderID,
		})
	default:
		return nil, fmt.Errorf("unknown publisher backend %q", cfg.Publisher.Backend)
	}
}
