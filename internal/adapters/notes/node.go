package notes

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/stitch/internal/core/ports"
)

// NodeID is the unique identifier for the note store Graft node.
const NodeID graft.ID = "adapter.note_store"

func init() {
	graft.Register(graft.Node[ports.NoteStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.NoteStore, error) {
			return New(), nil
		},
	})
}
