// Package apply executes a reconciled action list against the external
// collaborators. It owns all external mutation and the only write to the
// sync snapshot.
package apply

import (
	"context"
	"fmt"

	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/stitch/internal/markdown"
	"go.trai.ch/zerr"
)

// Outcome records the result of one applied action.
type Outcome struct {
	Action domain.Action
	Err    error
}

// Failed reports whether the action failed to apply.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Result is the aggregate of one apply pass.
type Result struct {
	// Local is the updated local task set, in render order.
	Local []domain.Task
	// Outcomes has one entry per action, in action order.
	Outcomes []Outcome
	// Snapshot is the new last-synced state, built only from actions that
	// succeeded.
	Snapshot domain.Snapshot
}

// FailedCount returns the number of failed actions.
func (r Result) FailedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Failed() {
			n++
		}
	}
	return n
}

// Applier executes action lists. Actions are applied one at a time; the
// failure of one never aborts the others.
type Applier struct {
	remote ports.RemoteClient
	notes  ports.NoteStore
	store  ports.SnapshotStore
	log    ports.Logger
}

// New creates an Applier over the external collaborators.
func New(remote ports.RemoteClient, notes ports.NoteStore, store ports.SnapshotStore, log ports.Logger) *Applier {
	return &Applier{remote: remote, notes: notes, store: store, log: log}
}

// Apply executes the action list, rewrites the note, and persists the new
// snapshot. remoteTasks is the remote set the actions were reconciled
// against; it backs the check-before-create that makes interrupted runs
// safely re-appliable. prevSnap is the snapshot the actions were derived
// from. doc is the parsed note, or nil when no note exists yet.
//
// Apply always returns a Result with per-action outcomes; the error is
// non-nil only when the note or snapshot itself could not be written.
func (a *Applier) Apply(ctx context.Context, actions []domain.Action, remoteTasks []domain.Task, prevSnap domain.Snapshot, doc *markdown.Document, notePath string) (Result, error) {
	res := Result{
		Outcomes: make([]Outcome, 0, len(actions)),
		Snapshot: make(domain.Snapshot, len(actions)),
	}

	// Stable IDs already owned by a record in this pass. The create recovery
	// below must never hand one of these to a second note line.
	claimed := make(map[string]struct{}, len(actions))
	for _, action := range actions {
		if action.Task.Synced() {
			claimed[action.Task.StableID] = struct{}{}
		}
	}

	for _, action := range actions {
		if action.Conflict {
			a.log.Warn(fmt.Sprintf("conflicting edits on %q resolved remote-wins (id %s)", action.Task.Title, action.Task.StableID))
		}

		task, err := a.applyOne(ctx, action, remoteTasks, prevSnap, claimed)
		res.Outcomes = append(res.Outcomes, Outcome{Action: action, Err: err})

		if keepsLocalRecord(action) {
			res.Local = append(res.Local, task)
		}

		switch {
		case err == nil && recordsSnapshot(action) && task.Synced():
			res.Snapshot[task.StableID] = task.Fingerprint()
		case err != nil && task.Synced():
			// A failed action carries its previous snapshot entry forward
			// so the next run re-derives the same action instead of
			// mistaking the divergence for fresh remote edits.
			if fp, ok := prevSnap[task.StableID]; ok {
				res.Snapshot[task.StableID] = fp
			}
		}
	}

	if err := a.writeNote(doc, notePath, res.Local); err != nil {
		return res, err
	}

	// Write-after-success: the snapshot is replaced only once the whole
	// batch has been attempted and the note is on disk.
	if err := a.store.Save(res.Snapshot); err != nil {
		return res, err
	}

	return res, nil
}

// applyOne executes a single action and returns the task record the local
// set should carry for it.
func (a *Applier) applyOne(ctx context.Context, action domain.Action, remoteTasks []domain.Task, prevSnap domain.Snapshot, claimed map[string]struct{}) (domain.Task, error) {
	task := action.Task

	switch action.Kind {
	case domain.ActionCreateRemote:
		// Interrupted-run recovery: a previous pass may have created the
		// task and crashed before recording it. Reuse the existing remote
		// task instead of duplicating it. A task bound in the previous
		// snapshot or claimed by another record in this pass belongs to a
		// different note line and is never adopted; two lines sharing a
		// stable ID would wedge every following reconciliation.
		for _, rt := range remoteTasks {
			if !rt.Synced() || rt.Title != task.Title {
				continue
			}
			if _, bound := prevSnap[rt.StableID]; bound {
				continue
			}
			if _, taken := claimed[rt.StableID]; taken {
				continue
			}
			claimed[rt.StableID] = struct{}{}
			task.StableID = rt.StableID
			return task, nil
		}
		id, err := a.remote.CreateTask(ctx, task.Title, task.Due)
		if err != nil {
			// The record keeps no stable ID, so the next run re-emits
			// CreateRemote rather than dropping it.
			return task, zerr.Wrap(err, "create remote task")
		}
		claimed[id] = struct{}{}
		task.StableID = id
		return task, nil

	case domain.ActionUpdateRemote:
		if err := a.remote.UpdateTask(ctx, task.StableID, ports.TaskFields{Title: task.Title, Due: task.Due}); err != nil {
			return task, zerr.Wrap(err, "update remote task")
		}
		if task.Done {
			if err := a.remote.CloseTask(ctx, task.StableID); err != nil {
				return task, zerr.Wrap(err, "close remote task")
			}
		}
		return task, nil

	case domain.ActionCloseRemote:
		a.log.Warn(fmt.Sprintf("note line for %q was deleted; closing remote task %s", task.Title, task.StableID))
		if err := a.remote.CloseTask(ctx, task.StableID); err != nil {
			return task, zerr.Wrap(err, "close remote task")
		}
		return task, nil

	case domain.ActionCreateLocal, domain.ActionUpdateLocal, domain.ActionCloseLocal, domain.ActionNoOp:
		// Local-side actions materialize through the note rewrite below.
		return task, nil

	default:
		return task, zerr.New(fmt.Sprintf("unknown action kind %d", action.Kind))
	}
}

// keepsLocalRecord reports whether the action's task belongs in the updated
// local set. Closing a remote task after its line was deleted must not
// resurrect the line, and a record gone from both sides has no line either.
func keepsLocalRecord(action domain.Action) bool {
	if action.Kind == domain.ActionCloseRemote {
		return false
	}
	if action.Kind == domain.ActionNoOp && action.Task.Title == "" {
		return false
	}
	return true
}

// recordsSnapshot reports whether a succeeded action contributes a snapshot
// entry. A closed remote task with no local line is finished on both sides
// and drops out of the snapshot entirely.
func recordsSnapshot(action domain.Action) bool {
	if action.Kind == domain.ActionCloseRemote {
		return false
	}
	if action.Kind == domain.ActionNoOp && action.Task.Title == "" {
		return false
	}
	return true
}

// writeNote renders the updated local set back into the note and writes it.
func (a *Applier) writeNote(doc *markdown.Document, notePath string, local []domain.Task) error {
	var text string
	if doc == nil {
		text = markdown.RenderNew(local)
	} else {
		text = doc.Render(local)
	}
	return a.notes.Write(notePath, text)
}
