package builder

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory()

	h.Record([]byte("v1")) // state before edit 2
	h.Record([]byte("v2")) // state before edit 3, current is v3

	restored, ok := h.Undo([]byte("v3"))
	require.True(t, ok)
	assert.Equal(t, "v2", string(restored))

	restored, ok = h.Redo([]byte("v2"))
	require.True(t, ok)
	assert.Equal(t, "v3", string(restored))
}

func TestHistoryUndoEmpty(t *testing.T) {
	h := NewHistory()
	_, ok := h.Undo([]byte("current"))
	assert.False(t, ok)
	_, ok = h.Redo([]byte("current"))
	assert.False(t, ok)
}

func TestHistoryNewEditClearsRedo(t *testing.T) {
	h := NewHistory()
	h.Record([]byte("v1"))
	_, ok := h.Undo([]byte("v2"))
	require.True(t, ok)
	require.True(t, h.CanRedo())

	h.Record([]byte("v1")) // a fresh edit after undo
	assert.False(t, h.CanRedo())
}

func TestHistoryDepthCap(t *testing.T) {
	h := NewHistory()
	for i := 0; i < maxHistoryDepth+50; i++ {
		h.Record([]byte(fmt.Sprintf("v%d", i)))
	}
	assert.Equal(t, maxHistoryDepth, h.UndoDepth())

	// oldest entries were evicted; the deepest undo lands on v50
	var last []byte
	current := []byte("top")
	for h.CanUndo() {
		restored, ok := h.Undo(current)
		require.True(t, ok)
		current = restored
		last = restored
	}
	assert.Equal(t, "v50", string(last))
}
