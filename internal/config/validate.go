package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validatePipeline(); err != nil {
		return err
	}
	if err := c.validateMedia(); err != nil {
		return err
	}
	if err := c.validatePublisher(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.WorkspaceDir == "" {
		return errors.New("paths.workspace_dir must be set")
	}
	if c.Paths.Bind == "" {
		return errors.New("paths.bind must be set")
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if c.Pipeline.MaxConcurrent < 1 {
		return errors.New("pipeline.max_concurrent must be at least 1")
	}
	if c.Pipeline.FetchTimeout < 0 || c.Pipeline.RenderTimeout < 0 || c.Pipeline.PublishTimeout < 0 {
		return errors.New("pipeline timeouts must not be negative")
	}
	return nil
}

func (c *Config) validateMedia() error {
	if c.Media.FontPath == "" {
		return errors.New("media.font_path must be set")
	}
	if c.Media.TitleFontSize < 1 || c.Media.ChapterFontSize < 1 {
		return errors.New("media font sizes must be positive")
	}
	if c.Media.CaptionMargin < 0 {
		return errors.New("media.caption_margin must not be negative")
	}
	return nil
}

func (c *Config) validatePublisher() error {
	switch c.Publisher.Backend {
	case "local":
		if c.Publisher.Local.Dir == "" {
			return errors.New("publisher.local.dir must be set for the local backend")
		}
		if c.Publisher.Local.BaseURL == "" {
			return errors.New("publisher.local.base_url must be set for the local backend")
		}
	case "drive":
		if c.Publisher.Drive.CredentialsFile == "" {
			defaultPath, err := DefaultConfigPath()
			if err != nil {
				defaultPath = "~/.config/storyreel/config.toml"
			}
			return fmt.Errorf("publisher.drive.credentials_file is required for the drive backend. Edit %s (create with 'storyreel config init')", defaultPath)
		}
		if c.Publisher.Drive.FolderID == "" {
			return errors.New("publisher.drive.folder_id must be set for the drive backend")
		}
	default:
		return fmt.Errorf("publisher.backend must be \"local\" or \"drive\", got %q", c.Publisher.Backend)
	}
	return nil
}
