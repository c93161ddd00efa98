package domain

// ActionKind enumerates the mutations the applier knows how to execute.
type ActionKind int

const (
	// ActionNoOp records that a task is already in sync on both sides.
	ActionNoOp ActionKind = iota
	// ActionCreateRemote creates a new remote task for a local-only record.
	ActionCreateRemote
	// ActionCreateLocal adds a note line for a remote task with no local record.
	ActionCreateLocal
	// ActionUpdateRemote pushes local field changes to the remote task.
	ActionUpdateRemote
	// ActionUpdateLocal rewrites the note line with remote field values.
	ActionUpdateLocal
	// ActionCloseRemote marks the remote task done because its note line was
	// deleted. Deleting a line is interpreted as completion, never data loss.
	ActionCloseRemote
	// ActionCloseLocal marks the note line done because the remote task is gone.
	ActionCloseLocal
)

// String returns the action kind name used in logs and outcome reports.
func (k ActionKind) String() string {
	switch k {
	case ActionNoOp:
		return "no-op"
	case ActionCreateRemote:
		return "create-remote"
	case ActionCreateLocal:
		return "create-local"
	case ActionUpdateRemote:
		return "update-remote"
	case ActionUpdateLocal:
		return "update-local"
	case ActionCloseRemote:
		return "close-remote"
	case ActionCloseLocal:
		return "close-local"
	default:
		return "unknown"
	}
}

// Action is one unit of work produced by the reconciler. Actions are
// side-effect-free values until the applier executes them.
type Action struct {
	Kind ActionKind
	// Task carries the desired end state for the record the action touches.
	Task Task
	// Conflict marks actions produced by the divergent-edit tie-break so the
	// applier can surface them as notable events.
	Conflict bool
}

// Mutates reports whether the action has a side effect when applied.
func (a Action) Mutates() bool {
	return a.Kind != ActionNoOp
}
