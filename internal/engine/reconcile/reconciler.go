// Package reconcile computes the three-way diff between the last-synced
// snapshot, the current remote state, and the current local state.
//
// Reconcile is pure: it performs no I/O, never mutates its inputs, and is
// deterministic given the same three inputs. All side effects live in the
// applier.
package reconcile

import (
	"sort"

	"go.trai.ch/stitch/internal/core/domain"
)

// Reconcile produces the ordered action list that brings both sides back
// into agreement. Ordering is stable: actions for synced records sorted by
// stable ID first, then local-only records sorted by title.
func Reconcile(remote, local []domain.Task, snap domain.Snapshot) ([]domain.Action, error) {
	remoteByID, err := domain.IndexByID(remote)
	if err != nil {
		return nil, err
	}
	localByID, err := domain.IndexByID(local)
	if err != nil {
		return nil, err
	}

	ids := unionIDs(remoteByID, localByID, snap)

	actions := make([]domain.Action, 0, len(ids)+len(local))
	for _, id := range ids {
		actions = append(actions, decide(id, remoteByID, localByID, snap))
	}

	// Local-only records without a stable ID are necessarily unsynced and
	// become remote creates, ordered last. An unsynced line whose title
	// matches a remote task the snapshot never saw is the leftover of an
	// interrupted create: the CreateLocal action emitted above re-binds
	// that line, so a second create would duplicate the task.
	orphans := make(map[string]int, len(remoteByID))
	for id, t := range remoteByID {
		_, inSnap := snap[id]
		_, inLocal := localByID[id]
		if !inSnap && !inLocal {
			orphans[t.Title]++
		}
	}

	unsynced := make([]domain.Task, 0)
	for _, t := range local {
		if !t.Synced() {
			unsynced = append(unsynced, t)
		}
	}
	sort.Slice(unsynced, func(i, j int) bool { return unsynced[i].Title < unsynced[j].Title })
	for _, t := range unsynced {
		if orphans[t.Title] > 0 {
			orphans[t.Title]--
			continue
		}
		actions = append(actions, domain.Action{Kind: domain.ActionCreateRemote, Task: t})
	}

	return actions, nil
}

// decide applies the per-ID reconciliation rules. The returned action's Task
// is the merged desired end state for the record; the applier adopts it into
// the local set regardless of which side the action mutates.
func decide(id string, remote, local map[string]domain.Task, snap domain.Snapshot) domain.Action {
	r, inRemote := remote[id]
	l, inLocal := local[id]
	lastFP, inSnap := snap[id]

	switch {
	case inRemote && inLocal:
		return decideBoth(r, l, lastFP, inSnap)

	case inRemote:
		// Missing from local. If the snapshot knew the record, the user
		// deleted the line; that reads as "done", never as data loss.
		if inSnap {
			return domain.Action{Kind: domain.ActionCloseRemote, Task: r}
		}
		return domain.Action{Kind: domain.ActionCreateLocal, Task: r}

	case inLocal:
		// Missing from remote: the remote side closed or deleted it. Once
		// the local line is already checked off there is nothing left to
		// converge, which keeps repeat runs at NoOp.
		if l.Done {
			return domain.Action{Kind: domain.ActionNoOp, Task: l}
		}
		// Applies both when the snapshot saw the record and when a local
		// line carries a stable ID the remote never listed: the remote is
		// authoritative for its own ID space, so the line closes.
		closed := l
		closed.Done = true
		return domain.Action{Kind: domain.ActionCloseLocal, Task: closed}

	default:
		// Only in the snapshot: both sides dropped it, nothing to do.
		return domain.Action{Kind: domain.ActionNoOp, Task: domain.Task{StableID: id}}
	}
}

// decideBoth handles a record present on both sides.
func decideBoth(r, l domain.Task, lastFP string, inSnap bool) domain.Action {
	rfp := r.Fingerprint()
	lfp := l.Fingerprint()

	// Completion is a one-way ratchet: done on either side always propagates
	// to both, regardless of other field conflicts.
	if r.Done != l.Done {
		if r.Done {
			// Remote completion wins outright, fields included.
			return domain.Action{
				Kind:     domain.ActionUpdateLocal,
				Task:     r,
				Conflict: inSnap && lfp != lastFP && rfp != lastFP,
			}
		}
		// Local completed an open remote task. Carry the done flag to the
		// remote side; if the remote also edited fields since last sync,
		// its field values win under the remote-wins policy.
		merged := l
		conflict := false
		if inSnap && rfp != lastFP {
			merged = r
			merged.Done = true
			conflict = lfp != lastFP
		}
		return domain.Action{Kind: domain.ActionUpdateRemote, Task: merged, Conflict: conflict}
	}

	if rfp == lfp {
		return domain.Action{Kind: domain.ActionNoOp, Task: r}
	}

	if !inSnap {
		// Never synced together yet ("always different"): the remote is the
		// source of stable IDs, so its view wins.
		return domain.Action{Kind: domain.ActionUpdateLocal, Task: r}
	}

	remoteChanged := rfp != lastFP
	localChanged := lfp != lastFP

	switch {
	case remoteChanged && !localChanged:
		return domain.Action{Kind: domain.ActionUpdateLocal, Task: r}
	case localChanged && !remoteChanged:
		return domain.Action{Kind: domain.ActionUpdateRemote, Task: l}
	default:
		// Both sides diverged from the snapshot. Deliberate tie-break:
		// remote field values win. The ratchet was already applied above,
		// so done agrees on both sides here.
		return domain.Action{Kind: domain.ActionUpdateLocal, Task: r, Conflict: true}
	}
}

// unionIDs returns the sorted union of stable IDs across both sides and the
// snapshot.
func unionIDs(remote, local map[string]domain.Task, snap domain.Snapshot) []string {
	seen := make(map[string]struct{}, len(remote)+len(local)+len(snap))
	for id := range remote {
		seen[id] = struct{}{}
	}
	for id := range local {
		seen[id] = struct{}{}
	}
	for id := range snap {
		seen[id] = struct{}{}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
