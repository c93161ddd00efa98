package ports

import (
	"context"

	"go.trai.ch/stitch/internal/core/domain"
)

// TaskFields is the update payload for a remote task. Completion is handled
// separately via CloseTask because the remote service models it as a
// distinct operation.
type TaskFields struct {
	Title string
	Due   string
}

// RemoteClient defines the interface to the hosted task service.
//
// All methods are fallible; a failure degrades the one action that needed
// the call, never the whole batch.
//
//go:generate mockgen -source=remote.go -destination=mocks/mock_remote.go -package=mocks
type RemoteClient interface {
	// ListTasks returns the currently open tasks on the remote side.
	ListTasks(ctx context.Context) ([]domain.Task, error)

	// CreateTask creates a task and returns its stable ID.
	CreateTask(ctx context.Context, title, due string) (string, error)

	// UpdateTask updates the mutable fields of an existing task.
	UpdateTask(ctx context.Context, stableID string, fields TaskFields) error

	// CloseTask marks a task complete. Closing an already-closed task must
	// succeed so interrupted runs can be safely replayed.
	CloseTask(ctx context.Context, stableID string) error
}
