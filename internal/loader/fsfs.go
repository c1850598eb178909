package loader

import (
	"context"
	"io/fs"
	"path"
	"strings"
)

func loadFromFS(ctx context.Context, files fs.FS, name string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	// fs.FS paths are unrooted and slash separated.
	clean := path.Clean(strings.TrimPrefix(name, "/"))
	return fs.ReadFile(files, clean)
}
