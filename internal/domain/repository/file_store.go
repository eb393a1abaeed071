package repository

import "io"

// FileStore holds the physical bytes of attachments. Paths are relative to
// the store root.
type FileStore interface {
	Exists(path string) (bool, error)
	Remove(path string) error
	Save(path string, r io.Reader) (int64, error)
}
