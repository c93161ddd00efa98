package ports

import "go.trai.ch/stitch/internal/core/domain"

// SnapshotStore persists the last-known-synced snapshot between runs.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type SnapshotStore interface {
	// Load returns the stored snapshot. Returns an empty snapshot when no
	// prior state exists; the first run is always a full reconciliation.
	Load() (domain.Snapshot, error)

	// Save atomically replaces the stored snapshot. A crash mid-write must
	// never corrupt the previous valid snapshot.
	Save(snap domain.Snapshot) error
}
