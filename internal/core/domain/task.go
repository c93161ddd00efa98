package domain

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// Task is the canonical representation of a task, independent of whether it
// came from the remote service or from a local note line.
type Task struct {
	// StableID is the identifier assigned by the remote service on creation.
	// Empty for tasks authored locally that have not been synced yet.
	StableID string
	// Title is the task text. Never empty after parsing; an empty title
	// degrades to "(untitled)".
	Title string
	// Done is the completion flag. Completion is a one-way ratchet across
	// sync passes.
	Done bool
	// Due is an optional due date in YYYY-MM-DD form. No time-of-day.
	Due string
}

// Synced reports whether the task has been assigned a remote stable ID.
func (t Task) Synced() bool {
	return t.StableID != ""
}

// Fingerprint returns a summary of the task's mutable fields, used to detect
// change without comparing full records. The stable ID is deliberately
// excluded so that assigning an ID to a freshly created task does not read
// as a content change.
func (t Task) Fingerprint() string {
	h := xxhash.New()

	_, _ = h.WriteString(t.Title)
	_, _ = h.Write([]byte{0})

	if t.Done {
		_, _ = h.Write([]byte{1})
	} else {
		_, _ = h.Write([]byte{0})
	}
	_, _ = h.Write([]byte{0})

	_, _ = h.WriteString(t.Due)
	_, _ = h.Write([]byte{0})

	return fmt.Sprintf("%016x", h.Sum64())
}

// IndexByID builds a stable-ID index over the given tasks. Tasks without a
// stable ID are skipped. Returns an error wrapping ErrDuplicateStableID if
// the same ID appears twice, which would make reconciliation ambiguous.
func IndexByID(tasks []Task) (map[string]Task, error) {
	index := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		if !t.Synced() {
			continue
		}
		if _, exists := index[t.StableID]; exists {
			return nil, zerr.With(ErrDuplicateStableID, "stable_id", t.StableID)
		}
		index[t.StableID] = t
	}
	return index, nil
}
