// Package filesystem provides a file system backing store for text2kv.
// Every object is one flat file under a sandboxed root, named by FileName;
// writes are atomic using a temp file and rename.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sagarc03/text2kv"
)

// Store provides file system storage operations.
type Store struct {
	root *os.Root
}

// NewFileStorage creates a new Store with the given root directory.
// The root provides sandboxed file operations preventing path traversal.
func NewFileStorage(root *os.Root) *Store {
	return &Store{root: root}
}

// FileName maps an object name to the file holding it. The whole name is
// path-escaped, so "/" never nests and names such as "a" and "a/b" live side
// by side. A leading "." is escaped too, which keeps "." and ".." out and
// leaves the ".t" prefix to temp files.
func FileName(name string) string {
	escaped := url.PathEscape(name)
	if strings.HasPrefix(escaped, ".") {
		escaped = "%2E" + escaped[1:]
	}
	return escaped
}

// ObjectName reverses FileName.
func ObjectName(fileName string) (string, error) {
	name, err := url.PathUnescape(fileName)
	if err != nil {
		return "", fmt.Errorf("invalid object file name %q: %w", fileName, err)
	}
	return name, nil
}

// Get reads the file stored under name. The file system is authoritative, so
// the freshness hint is ignored. Returns text2kv.ErrNotFound if the file does
// not exist.
func (s *Store) Get(ctx context.Context, name string, _ time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if name == "" {
		return "", fmt.Errorf("get object: %w: name cannot be empty", text2kv.ErrInvalidInput)
	}

	f, err := s.root.Open(FileName(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", text2kv.ErrNotFound
		}
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close file", "name", name, "err", closeErr)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return string(data), nil
}

// Put atomically writes value under name using a temp file and rename.
func (s *Store) Put(ctx context.Context, name, value string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if name == "" {
		return fmt.Errorf("put object: %w: name cannot be empty", text2kv.ErrInvalidInput)
	}

	tmpFile := tmpFileName()
	t, createErr := s.root.Create(tmpFile)
	if createErr != nil {
		return fmt.Errorf("could not open temp file: %w", createErr)
	}

	success := false
	defer func() {
		if closeErr := t.Close(); closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
			slog.Warn("failed to close tmp file", "err", closeErr)
		}
		if !success {
			if rmErr := s.root.Remove(tmpFile); rmErr != nil {
				slog.Warn("failed to remove tmp file", "err", rmErr)
			}
		}
	}()

	if _, err := io.WriteString(t, value); err != nil {
		return fmt.Errorf("could not write file contents: %w", err)
	}

	if err := t.Sync(); err != nil {
		return fmt.Errorf("could not sync written file: %w", err)
	}

	if err := t.Close(); err != nil {
		return fmt.Errorf("could not close written file: %w", err)
	}

	if renameErr := s.root.Rename(tmpFile, FileName(name)); renameErr != nil {
		return fmt.Errorf("failed to rename file: %w", renameErr)
	}

	success = true
	return nil
}

func tmpFileName() string {
	return fmt.Sprintf(".t%s", uuid.New().String())
}
