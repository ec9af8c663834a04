package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

const blobExt = ".blob"

// FS stores each key as a file in a directory. Writes go through a
// temporary file and a rename so a crash never leaves a partial blob.
type FS struct {
	dir string
}

func NewFS(dir string) (*FS, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return &FS{dir: dir}, nil
}

func (s *FS) path(key string) string {
	return filepath.Join(s.dir, filepath.Base(key)+blobExt)
}

func (s *FS) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	blob, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return blob, nil
}

func (s *FS) Set(ctx context.Context, key string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(key)+".*.tmp")
	if err != nil {
		return classifyFSError(key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return classifyFSError(key, err)
	}
	if err := tmp.Close(); err != nil {
		return classifyFSError(key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return classifyFSError(key, err)
	}

	repoLogger.Debug().Str("key", key).Int("bytes", len(blob)).Msg("Blob written")
	return nil
}

func (s *FS) Close() error { return nil }

func classifyFSError(key string, err error) error {
	if errors.Is(err, syscall.ENOSPC) {
		return fmt.Errorf("failed to write %s: %w: %v", key, ErrCapacityExceeded, err)
	}
	return fmt.Errorf("failed to write %s: %w", key, err)
}
