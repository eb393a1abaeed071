// Package storage keeps attachment bytes on an afero filesystem.
package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	domainRepo "github.com/wekeepgrowing/gov-budget-request-form/internal/domain/repository"
)

type aferoFileStore struct {
	fs afero.Fs
}

// NewFileStore wraps fs.
func NewFileStore(fs afero.Fs) domainRepo.FileStore {
	return &aferoFileStore{fs: fs}
}

// NewLocalFileStore roots a store at dir on the OS filesystem, creating the
// directory if needed.
func NewLocalFileStore(dir string) (domainRepo.FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return NewFileStore(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

func (s *aferoFileStore) Exists(p string) (bool, error) {
	clean, err := cleanPath(p)
	if err != nil {
		return false, err
	}
	ok, err := afero.Exists(s.fs, clean)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", clean, err)
	}
	return ok, nil
}

func (s *aferoFileStore) Remove(p string) error {
	clean, err := cleanPath(p)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(clean); err != nil {
		return fmt.Errorf("failed to remove %s: %w", clean, err)
	}
	return nil
}

// Save writes r to path, creating parent directories. It returns the number
// of bytes written.
func (s *aferoFileStore) Save(p string, r io.Reader) (int64, error) {
	clean, err := cleanPath(p)
	if err != nil {
		return 0, err
	}
	if err := s.fs.MkdirAll(filepath.Dir(clean), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create directory for %s: %w", clean, err)
	}

	f, err := s.fs.Create(clean)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", clean, err)
	}
	n, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fs.Remove(clean)
		return 0, fmt.Errorf("failed to write %s: %w", clean, err)
	}
	return n, nil
}

// cleanPath rejects paths that escape the store root.
func cleanPath(p string) (string, error) {
	clean := path.Clean("/" + filepath.ToSlash(p))
	if clean == "/" || strings.Contains(p, "..") {
		return "", fmt.Errorf("invalid file path %q", p)
	}
	return strings.TrimPrefix(clean, "/"), nil
}
