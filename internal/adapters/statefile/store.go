// Package statefile persists the sync snapshot as a single JSON file.
package statefile

import (
	"encoding/json"
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

var _ ports.SnapshotStore = (*Store)(nil)

// Store implements ports.SnapshotStore with an atomic-replace file strategy.
type Store struct {
	path string
	log  ports.Logger
}

// New creates a snapshot store backed by the file at path.
func New(path string, log ports.Logger) *Store {
	return &Store{path: path, log: log}
}

// Load reads the stored snapshot. A missing file yields an empty snapshot
// (first run). An unreadable or corrupt file also yields an empty snapshot:
// state corruption degrades to a full reconciliation instead of failing the
// run, since reconciliation is idempotent over a lost snapshot.
func (s *Store) Load() (domain.Snapshot, error) {
	data, err := os.ReadFile(s.path) //nolint:gosec // Path comes from config
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Snapshot{}, nil
		}
		s.log.Warn("sync snapshot unreadable, forcing full reconciliation: " + err.Error())
		return domain.Snapshot{}, nil
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.Warn("sync snapshot corrupt, forcing full reconciliation: " + err.Error())
		return domain.Snapshot{}, nil
	}
	if snap == nil {
		snap = domain.Snapshot{}
	}
	return snap, nil
}

// Save atomically replaces the snapshot file. The data is written to a
// temporary file in the same directory and renamed into place, so a crash
// mid-write never corrupts the previous valid snapshot.
func (s *Store) Save(snap domain.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrSnapshotMarshalFailed.Error())
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error())
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error())
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error())
	}

	if err := os.Chmod(tmpName, filePerm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error())
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error())
	}
	return nil
}
