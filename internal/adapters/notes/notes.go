// Package notes reads and writes the local note file.
package notes

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

var _ ports.NoteStore = (*Store)(nil)

// Store implements ports.NoteStore over the local filesystem.
type Store struct{}

// New creates a new note store.
func New() *Store {
	return &Store{}
}

// Read returns the note text. A missing note yields an empty string so the
// first sync into an empty vault produces a fresh note.
func (s *Store) Read(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from config
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", zerr.With(zerr.Wrap(err, domain.ErrNoteReadFailed.Error()), "path", path)
	}
	return string(data), nil
}

// Write replaces the note text, creating the vault directory if needed. The
// file handle is flushed and closed on all exit paths.
func (s *Store) Write(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrNoteWriteFailed.Error()), "path", path)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm) //nolint:gosec // Path comes from config
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrNoteWriteFailed.Error()), "path", path)
	}

	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrNoteWriteFailed.Error()), "path", path)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrNoteWriteFailed.Error()), "path", path)
	}
	if err := f.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrNoteWriteFailed.Error()), "path", path)
	}
	return nil
}
