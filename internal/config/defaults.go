package config

const (
	defaultWorkspaceDir      = "~/.local/share/storyreel/workspace"
	defaultLogDir            = "~/.local/share/storyreel/logs"
	defaultBind              = "127.0.0.1:7487"
	defaultMaxConcurrent     = 2
	defaultFetchTimeout      = 120
	defaultRenderTimeout     = 600
	defaultPublishTimeout    = 300
	defaultFFmpegBinary      = "ffmpeg"
	defaultFFprobeBinary     = "ffprobe"
	defaultFontPath          = "fonts/Roboto-Regular.ttf"
	defaultTitleFontSize     = 30
	defaultChapterFontSize   = 20
	defaultCaptionMargin     = 10
	defaultPublisherBackend  = "local"
	defaultLocalPublisherDir = "~/.local/share/storyreel/published"
	defaultLocalBaseURL      = "http://127.0.0.1:7487/artifacts"
	defaultWebhookTimeout    = 10
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkspaceDir: defaultWorkspaceDir,
			LogDir:       defaultLogDir,
			Bind:         defaultBind,
		},
		Pipeline: Pipeline{
			MaxConcurrent:  defaultMaxConcurrent,
			FetchTimeout:   defaultFetchTimeout,
			RenderTimeout:  defaultRenderTimeout,
			PublishTimeout: defaultPublishTimeout,
		},
		Media: Media{
			FFmpegBinary:    defaultFFmpegBinary,
			FFprobeBinary:   defaultFFprobeBinary,
			FontPath:        defaultFontPath,
			TitleFontSize:   defaultTitleFontSize,
			ChapterFontSize: defaultChapterFontSize,
			CaptionMargin:   defaultCaptionMargin,
		},
		Publisher: Publisher{
			Backend: defaultPublisherBackend,
			Local: Local{
				Dir:     defaultLocalPublisherDir,
				BaseURL: defaultLocalBaseURL,
			},
		},
		Webhook: Webhook{
			RequestTimeout: defaultWebhookTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
