package builder

// maxHistoryDepth caps the undo stack; oldest snapshots are evicted past it.
const maxHistoryDepth = 200

// History is a snapshot-based undo/redo stack over opaque serialized blobs.
// Every logical edit records exactly one snapshot of the state before the
// edit, so one Undo always reverts exactly one user action.
type History struct {
	undo [][]byte
	redo [][]byte
}

func NewHistory() *History {
	return &History{}
}

// Record pushes a pre-edit snapshot. Any destructive edit invalidates the
// redo branch, so the redo stack is cleared.
func (h *History) Record(snapshot []byte) {
	h.undo = append(h.undo, snapshot)
	if len(h.undo) > maxHistoryDepth {
		h.undo = h.undo[len(h.undo)-maxHistoryDepth:]
	}
	h.redo = h.redo[:0]
}

// Undo pops the most recent snapshot, saving current on the redo stack.
// No-op (ok=false) when the undo stack is empty.
func (h *History) Undo(current []byte) (restored []byte, ok bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	restored = h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return restored, true
}

// Redo is symmetric to Undo.
func (h *History) Redo(current []byte) (restored []byte, ok bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	restored = h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)
	return restored, true
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoDepth is exposed for the builder UI to grey out the undo control.
func (h *History) UndoDepth() int { return len(h.undo) }
