package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"storyreel/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	WorkspaceDir string `toml:"workspace_dir"`
	LogDir       string `toml:"log_dir"`
	Bind         string `toml:"bind"`
}

// Pipeline contains bounds and timeouts for job execution.
type Pipeline struct {
	MaxConcurrent  int `toml:"max_concurrent"`
	FetchTimeout   int `toml:"fetch_timeout"`
	RenderTimeout  int `toml:"render_timeout"`
	PublishTimeout int `toml:"publish_timeout"`
}

// Media contains rendering engine configuration.
type Media struct {
	FFmpegBinary    string `toml:"ffmpeg_binary"`
	FFprobeBinary   string `toml:"ffprobe_binary"`
	FontPath        string `toml:"font_path"`
	TitleFontSize   int    `toml:"title_font_size"`
	ChapterFontSize int    `toml:"chapter_font_size"`
	CaptionMargin   int    `toml:"caption_margin"`
}

// Drive contains Google Drive publisher settings.
type Drive struct {
	CredentialsFile string `toml:"credentials_file"`
	FolderID        string `toml:"folder_id"`
}

// Local contains directory publisher settings.
type Local struct {
	Dir     string `toml:"dir"`
	BaseURL string `toml:"base_url"`
}

// Publisher selects and configures the artifact publisher backend.
type Publisher struct {
	Backend string `toml:"backend"`
	Drive   Drive  `toml:"drive"`
	Local   Local  `toml:"local"`
}

// Webhook contains outbound completion callback settings.
type Webhook struct {
	RequestTimeout int `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config is the full storyreel configuration.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Pipeline  Pipeline  `toml:"pipeline"`
	Media     Media     `toml:"media"`
	Publisher Publisher `toml:"publisher"`
	Webhook   Webhook   `toml:"webhook"`
	Logging   Logging   `toml:"logging"`
}

// LogDirectory implements logging.Config.
func (c *Config) LogDirectory() string { return c.Paths.LogDir }

// LogLevel implements logging.Config.
func (c *Config) LogLevel() string { return c.Logging.Level }

// LogFormat implements logging.Config.
func (c *Config) LogFormat() string { return c.Logging.Format }

// DefaultConfigPath returns the canonical config file location.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "storyreel", "config.toml"), nil
}

// Load reads configuration from path, falling back to the default location
// when path is empty. A missing file yields the defaults. The returned string
// is the path that was consulted.
func Load(path string) (*Config, string, error) {
	resolved := path
	if resolved == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return nil, "", err
		}
		resolved = defaultPath
	}
	resolved = fileutil.ExpandHome(resolved)

	cfg := Default()
	data, err := os.ReadFile(resolved)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, resolved, fmt.Errorf("parse %s: %w", resolved, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if path != "" {
			return nil, resolved, fmt.Errorf("config file %s does not exist", resolved)
		}
	default:
		return nil, resolved, fmt.Errorf("read %s: %w", resolved, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, resolved, err
	}
	return &cfg, resolved, nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	path = fileutil.ExpandHome(path)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}
