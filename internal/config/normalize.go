package config

import (
	"strings"

	"storyreel/internal/fileutil"
)

// Normalize expands home-relative paths and backfills zero values with
// defaults so later components can rely on fully populated settings.
func (c *Config) Normalize() {
	defaults := Default()

	c.Paths.WorkspaceDir = normalizePath(c.Paths.WorkspaceDir, defaults.Paths.WorkspaceDir)
	c.Paths.LogDir = normalizePath(c.Paths.LogDir, defaults.Paths.LogDir)
	if strings.TrimSpace(c.Paths.Bind) == "" {
		c.Paths.Bind = defaults.Paths.Bind
	}

	if c.Pipeline.MaxConcurrent == 0 {
		c.Pipeline.MaxConcurrent = defaults.Pipeline.MaxConcurrent
	}
	if c.Pipeline.FetchTimeout == 0 {
		c.Pipeline.FetchTimeout = defaults.Pipeline.FetchTimeout
	}
	if c.Pipeline.RenderTimeout == 0 {
		c.Pipeline.RenderTimeout = defaults.Pipeline.RenderTimeout
	}
	if c.Pipeline.PublishTimeout == 0 {
		c.Pipeline.PublishTimeout = defaults.Pipeline.PublishTimeout
	}

	if strings.TrimSpace(c.Media.FFmpegBinary) == "" {
		c.Media.FFmpegBinary = defaults.Media.FFmpegBinary
	}
	if strings.TrimSpace(c.Media.FFprobeBinary) == "" {
		c.Media.FFprobeBinary = defaults.Media.FFprobeBinary
	}
	c.Media.FontPath = normalizePath(c.Media.FontPath, defaults.Media.FontPath)
	if c.Media.TitleFontSize == 0 {
		c.Media.TitleFontSize = defaults.Media.TitleFontSize
	}
	if c.Media.ChapterFontSize == 0 {
		c.Media.ChapterFontSize = defaults.Media.ChapterFontSize
	}
	if c.Media.CaptionMargin == 0 {
		c.Media.CaptionMargin = defaults.Media.CaptionMargin
	}

	c.Publisher.Backend = strings.ToLower(strings.TrimSpace(c.Publisher.Backend))
	if c.Publisher.Backend == "" {
		c.Publisher.Backend = defaults.Publisher.Backend
	}
	c.Publisher.Drive.CredentialsFile = fileutil.ExpandHome(strings.TrimSpace(c.Publisher.Drive.CredentialsFile))
	c.Publisher.Local.Dir = normalizePath(c.Publisher.Local.Dir, defaults.Publisher.Local.Dir)
	if strings.TrimSpace(c.Publisher.Local.BaseURL) == "" {
		c.Publisher.Local.BaseURL = defaults.Publisher.Local.BaseURL
	}
	c.Publisher.Local.BaseURL = strings.TrimRight(c.Publisher.Local.BaseURL, "/")

	if c.Webhook.RequestTimeout == 0 {
		c.Webhook.RequestTimeout = defaults.Webhook.RequestTimeout
	}

	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaults.Logging.Level
	}
}

func normalizePath(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		value = fallback
	}
	return fileutil.ExpandHome(value)
}
