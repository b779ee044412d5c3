package publish

import (
	"context"
	"path/filepath"
	"strings"

	"storyreel/internal/fileutil"
	"storyreel/internal/services"
)

// LocalPublisher copies artifacts into a directory and derives the public
// URL from a configured base. The daemon serves the directory under
// /artifacts; a reverse proxy or object-store sync works just as well.
type LocalPublisher struct {
	dir     string
	baseURL string
}

// NewLocalPublisher builds a directory-backed publisher.
func NewLocalPublisher(dir, baseURL string) *LocalPublisher {
	return &LocalPublisher{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Publish copies filePath into the publish directory and returns its URL.
func (p *LocalPublisher) Publish(ctx context.Context, filePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := fileutil.EnsureDir(p.dir); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "publish", "create directory", p.dir, err)
	}
	name := filepath.Base(filePath)
	target := filepath.Join(p.dir, name)
	if err := fileutil.CopyFile(filePath, target); err != nil {
		return "", services.Wrap(services.ErrTransient, "publish", "copy artifact", target, err)
	}
	return p.baseURL + "/" + name, nil
}
