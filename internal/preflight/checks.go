package preflight

import (
	"fmt"
	"os/exec"

	"storyreel/internal/config"
	"storyreel/internal/fileutil"
)

// Result is the outcome of one startup check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Check verifies the external tools and directories the pipeline depends on.
// Failures are reported, not fatal; the daemon decides what to do with them.
func Check(cfg *config.Config) []Result {
	results := []Result{
		checkBinary("ffmpeg", cfg.Media.FFmpegBinary),
		checkBinary("ffprobe", cfg.Media.FFprobeBinary),
		checkWorkspace(cfg.Paths.WorkspaceDir),
	}
	if cfg.Publisher.Backend == "drive" {
		results = append(results, checkCredentials(cfg.Publisher.Drive.CredentialsFile))
	}
	return results
}

func checkBinary(name, binary string) Result {
	path, err := exec.LookPath(binary)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s not found in PATH", binary)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

func checkWorkspace(dir string) Result {
	if err := fileutil.EnsureDir(dir); err != nil {
		return Result{Name: "workspace", Detail: err.Error()}
	}
	return Result{Name: "workspace", Passed: true, Detail: dir}
}

func checkCredentials(path string) Result {
	if !fileutil.FileExists(path) {
		return Result{Name: "drive credentials", Detail: fmt.Sprintf("credentials file %s missing", path)}
	}
	return Result{Name: "drive credentials", Passed: true, Detail: path}
}
