package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-drift/exoclock/pkg/errors"
)

// File rewrites one image file per frame. Each frame is written to a
// temporary file in the same directory and renamed over the target, so
// readers never see a partially written image.
type File struct {
	path   string
	format Format
}

// NewFile returns a file sink. An empty format is inferred from the path.
func NewFile(path string, format Format) (*File, error) {
	if path == "" {
		return nil, errors.Config("sink.NewFile", "output path is required")
	}
	if format == "" {
		format = FormatFromPath(path)
	}
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, errors.New("sink.NewFile", errors.KindConfig, err)
	}
	return &File{path: path, format: format}, nil
}

// Path returns the target file path.
func (s *File) Path() string { return s.path }

// Publish encodes f and atomically replaces the target file.
func (s *File) Publish(ctx context.Context, f Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.write(f); err != nil {
		return errors.New("sink.File.Publish", errors.KindSink, err)
	}
	return nil
}

func (s *File) write(f Frame) (err error) {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := Encode(tmp, f.Image, s.format); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode frame %d: %w", f.Seq, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op; the last frame stays on disk.
func (s *File) Close() error { return nil }
