package pipeline

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"storyreel/internal/fileutil"
	"storyreel/internal/logging"
)

// workspace is the per-job scratch directory. Paths are derived from the job
// id so concurrently running jobs never collide, and the whole directory is
// removed when the execution ends.
type workspace struct {
	jobID string
	dir   string
}

var createWorkspace = newWorkspace

func newWorkspace(root, jobID string) (*workspace, error) {
	dir := filepath.Join(root, jobID)
	if err := fileutil.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create job workspace %s: %w", dir, err)
	}
	return &workspace{jobID: jobID, dir: dir}, nil
}

func (w *workspace) Dir() string { return w.dir }

// AudioPath names the staged copy of the idx-th narration segment.
func (w *workspace) AudioPath(idx int) string {
	return filepath.Join(w.dir, fmt.Sprintf("audio_%s_%d.mp3", w.jobID, idx))
}

// VideoPath names the composed video before publication.
func (w *workspace) VideoPath() string {
	return filepath.Join(w.dir, fmt.Sprintf("video_%s.mp4", w.jobID))
}

// Cleanup removes every temporary file the job created. Removal failures
// are logged at debug level and otherwise tolerated; an already-absent tree
// is success.
func (w *workspace) Cleanup(logger *slog.Logger) {
	if err := fileutil.RemoveAllIfExists(w.dir); err != nil {
		if logger != nil {
			logger.Debug("workspace cleanup failed", logging.String("dir", w.dir), logging.Error(err))
		}
	}
}
