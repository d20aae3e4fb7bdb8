package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

var ErrBadPattern = errors.New("bad discovery pattern")

// Source is a read-only tree of content files addressed by slash-separated
// paths relative to its root.
type Source interface {
	Glob(ctx context.Context, pattern string) ([]string, error)
	ReadFile(ctx context.Context, name string) ([]byte, error)
}

// FSSource serves content from an fs.FS.
type FSSource struct {
	FS fs.FS
}

// NewDirSource roots a Source at a directory on disk.
func NewDirSource(dir string) (*FSSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content root %s is not a directory", dir)
	}
	return &FSSource{FS: os.DirFS(dir)}, nil
}

func (s *FSSource) Glob(ctx context.Context, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
	}
	matches, err := doublestar.Glob(s.FS, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	return matches, nil
}

func (s *FSSource) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(s.FS, name)
}
