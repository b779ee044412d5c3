package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"storyreel/internal/services"
)

// The composed video always renders at 24 frames per second.
const frameRate = 24

var commandContext = exec.CommandContext

// Request describes one composition: the ordered narration segments, the
// still image, and the two caption lines.
type Request struct {
	AudioPaths []string
	ImagePath  string
	Title      string
	Chapter    string
	WorkDir    string
	OutputPath string
}

// Result is the finished video and its duration, which equals the duration
// of the concatenated narration.
type Result struct {
	VideoPath string
	Duration  time.Duration
}

// Composer produces a finished video from staged assets.
type Composer interface {
	Compose(ctx context.Context, req Request) (Result, error)
}

// Options configures the ffmpeg-backed composer.
type Options struct {
	FFmpegBinary    string
	FFprobeBinary   string
	FontPath        string
	TitleFontSize   int
	ChapterFontSize int
	CaptionMargin   int
}

// FFmpegComposer shells out to ffmpeg and ffprobe.
type FFmpegComposer struct {
	opts Options
}

// NewFFmpegComposer builds a composer from options.
func NewFFmpegComposer(opts Options) *FFmpegComposer {
	if opts.FFmpegBinary == "" {
		opts.FFmpegBinary = "ffmpeg"
	}
	if opts.FFprobeBinary == "" {
		opts.FFprobeBinary = "ffprobe"
	}
	return &FFmpegComposer{opts: opts}
}

// Compose concatenates the audio segments, measures the resulting duration,
// and renders the captioned still-image video. Intermediates are written to
// req.WorkDir and are the caller's to clean up along with the output.
func (c *FFmpegComposer) Compose(ctx context.Context, req Request) (Result, error) {
	if len(req.AudioPaths) == 0 {
		return Result{}, services.Wrap(services.ErrValidation, "compose", "", "no audio segments", nil)
	}

	narrationPath := filepath.Join(req.WorkDir, "narration.mp3")
	if err := c.concatAudio(ctx, req.AudioPaths, narrationPath); err != nil {
		return Result{}, err
	}

	duration, err := c.probeDuration(ctx, narrationPath)
	if err != nil {
		return Result{}, err
	}

	args := c.renderArgs(req.ImagePath, narrationPath, req.Title, req.Chapter, duration, req.OutputPath)
	cmd := commandContext(ctx, c.opts.FFmpegBinary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "compose", "render video", strings.TrimSpace(string(output)), err)
	}

	return Result{VideoPath: req.OutputPath, Duration: duration}, nil
}

func (c *FFmpegComposer) concatAudio(ctx context.Context, paths []string, dest string) error {
	listPath := filepath.Join(filepath.Dir(dest), "concat.txt")
	var list strings.Builder
	for _, p := range paths {
		fmt.Fprintf(&list, "file '%s'\n", strings.ReplaceAll(p, "'", `'\''`))
	}
	if err := os.WriteFile(listPath, []byte(list.String()), 0o644); err != nil {
		return services.Wrap(services.ErrConfiguration, "compose", "write concat list", listPath, err)
	}

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c:a", "libmp3lame",
		"-q:a", "2",
		dest,
	}
	cmd := commandContext(ctx, c.opts.FFmpegBinary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return services.Wrap(services.ErrExternalTool, "compose", "concatenate audio", strings.TrimSpace(string(output)), err)
	}
	return nil
}

func (c *FFmpegComposer) probeDuration(ctx context.Context, path string) (time.Duration, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
	cmd := commandContext(ctx, c.opts.FFprobeBinary, args...)
	output, err := cmd.Output()
	if err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "compose", "probe duration", path, err)
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "compose", "probe duration", fmt.Sprintf("unparseable ffprobe output %q", strings.TrimSpace(string(output))), err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

func (c *FFmpegComposer) renderArgs(imagePath, audioPath, title, chapter string, duration time.Duration, outputPath string) []string {
	// Approximate line heights with the configured font sizes; the layout
	// keeps the title line stacked above the chapter line at the bottom-left.
	titleOffset, chapterOffset := BottomOffsets(c.opts.TitleFontSize, c.opts.ChapterFontSize, c.opts.CaptionMargin)

	filter := fmt.Sprintf(
		"drawtext=fontfile=%s:text='%s':fontsize=%d:fontcolor=white:x=%d:y=h-%d,drawtext=fontfile=%s:text='%s':fontsize=%d:fontcolor=white:x=%d:y=h-%d",
		escapeFilterValue(c.opts.FontPath), escapeDrawtext(title), c.opts.TitleFontSize, c.opts.CaptionMargin, titleOffset,
		escapeFilterValue(c.opts.FontPath), escapeDrawtext(chapter), c.opts.ChapterFontSize, c.opts.CaptionMargin, chapterOffset,
	)

	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-loop", "1",
		"-framerate", strconv.Itoa(frameRate),
		"-i", imagePath,
		"-i", audioPath,
		"-vf", filter,
		"-t", fmt.Sprintf("%.3f", duration.Seconds()),
		"-r", strconv.Itoa(frameRate),
		"-c:v", "libx264",
		"-tune", "stillimage",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", "192k",
		"-shortest",
		outputPath,
	}
}

// escapeDrawtext quotes characters that terminate or alter a drawtext text
// value inside a single-quoted filter argument.
func escapeDrawtext(text string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\\\'`,
		`:`, `\:`,
		`%`, `\%`,
	)
	return replacer.Replace(text)
}

// escapeFilterValue escapes filtergraph separators in paths.
func escapeFilterValue(value string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`:`, `\:`,
		`,`, `\,`,
	)
	return replacer.Replace(value)
}
