package fsutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for newly created files.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic writes content to a temp file beside path, syncs it and
// renames it over path. On error the temp file is removed and path is
// left untouched. A zero mode uses the mode of the existing file, or
// DefaultFileMode.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}

	if mode == 0 {
		mode = DefaultFileMode
		if info, err := os.Stat(path); err == nil {
			mode = info.Mode().Perm()
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	committed = true
	return nil
}

// WriteAtomicIfChanged writes content unless path already holds it.
// It reports whether the file was written.
func WriteAtomicIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, content):
		return false, nil
	case err != nil && !os.IsNotExist(err):
		return false, fmt.Errorf("read existing: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}

// Output is a destination for command output. Writes are buffered and
// reach the file only on Close.
type Output struct {
	ctx  context.Context
	path string
	buf  bytes.Buffer
	w    io.Writer
}

// OpenOutput returns an Output for path. An empty path or "-" writes
// straight through to stdout.
func OpenOutput(ctx context.Context, path string, stdout io.Writer) *Output {
	o := &Output{ctx: ctx, path: path}
	if path == "" || path == "-" {
		o.path = ""
		o.w = stdout
	} else {
		o.w = &o.buf
	}
	return o
}

// Write implements io.Writer.
func (o *Output) Write(p []byte) (int, error) {
	return o.w.Write(p)
}

// Path returns the output file, or "" for stdout.
func (o *Output) Path() string {
	return o.path
}

// Close commits buffered output to the file atomically.
func (o *Output) Close() error {
	if o.path == "" {
		return nil
	}
	return WriteAtomic(o.ctx, o.path, o.buf.Bytes(), 0)
}
