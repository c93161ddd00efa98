package domain

// Snapshot maps stable IDs to the fingerprint both sides held identical
// content for, as of the last successful sync. It is the reconciler's memory
// of "what changed since" versus "always different".
//
// Lifecycle: created empty on first run, replaced in full after each
// successful apply pass, never partially mutated mid-pass.
type Snapshot map[string]string

// Clone returns an independent copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for id, fp := range s {
		out[id] = fp
	}
	return out
}
