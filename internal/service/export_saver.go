package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSaver persists an export the way a browser download would.
type FileSaver interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
}

type directorySaver struct {
	dir string
}

// NewDirectorySaver writes exports into dir, creating it on first use.
func NewDirectorySaver(dir string) FileSaver {
	return &directorySaver{dir: dir}
}

func (s *directorySaver) Save(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(s.dir, filepath.Base(filename))
	tmp := path + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}
