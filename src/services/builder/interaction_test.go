package builder

import (
	"testing"

	"Backend-Dhriti-AI/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionWithBlock returns a session holding one block at {100,100,200,100},
// selected, with an empty history.
func sessionWithBlock(t *testing.T) (*Session, string) {
	t.Helper()
	s := newTestSession()
	block, err := s.AddBlock(models.BlockImage)
	require.NoError(t, err)
	_, err = s.UpdateBlock(block.ID, BlockUpdate{Frame: &models.Frame{X: 100, Y: 100, W: 200, H: 100}})
	require.NoError(t, err)

	// fresh history so gesture tests count their own snapshots
	s.history = NewHistory()
	return s, block.ID
}

func frameOf(t *testing.T, s *Session, id string) models.Frame {
	t.Helper()
	for _, b := range s.State().Blocks {
		if b.ID == id {
			return b.Frame
		}
	}
	t.Fatalf("block %s not found", id)
	return models.Frame{}
}

func TestDragMovesBlock(t *testing.T) {
	s, id := sessionWithBlock(t)

	require.NoError(t, s.BeginDrag(id, 500, 500))
	require.NoError(t, s.DragMove(530, 520))
	require.NoError(t, s.EndDrag())

	frame := frameOf(t, s, id)
	assert.Equal(t, models.Frame{X: 130, Y: 120, W: 200, H: 100}, frame)
	assert.Equal(t, 1, s.UndoDepth(), "one gesture, one undo step")
}

func TestDragManyMovesOneSnapshot(t *testing.T) {
	s, id := sessionWithBlock(t)

	require.NoError(t, s.BeginDrag(id, 0, 0))
	for i := 1; i <= 25; i++ {
		require.NoError(t, s.DragMove(i, i))
	}
	require.NoError(t, s.EndDrag())

	assert.Equal(t, 1, s.UndoDepth())
	require.True(t, s.Undo())
	assert.Equal(t, models.Frame{X: 100, Y: 100, W: 200, H: 100}, frameOf(t, s, id))
}

func TestPureClickLeavesHistoryUntouched(t *testing.T) {
	s, id := sessionWithBlock(t)

	require.NoError(t, s.BeginDrag(id, 300, 300))
	require.NoError(t, s.EndDrag())
	assert.Equal(t, 0, s.UndoDepth())

	// moving away and back is zero net movement - also no snapshot
	require.NoError(t, s.BeginDrag(id, 300, 300))
	require.NoError(t, s.DragMove(350, 350))
	require.NoError(t, s.DragMove(300, 300))
	require.NoError(t, s.EndDrag())
	assert.Equal(t, 0, s.UndoDepth())
}

func TestDragSelectsBlock(t *testing.T) {
	s, id := sessionWithBlock(t)
	require.NoError(t, s.SelectBlock(""))

	require.NoError(t, s.BeginDrag(id, 0, 0))
	assert.Equal(t, id, s.State().Selected)
	require.NoError(t, s.EndDrag())
}

func TestResizeSE(t *testing.T) {
	s, _ := sessionWithBlock(t)
	id := s.State().Selected

	require.NoError(t, s.BeginResize(CornerSE, 0, 0))
	require.NoError(t, s.ResizeMove(50, 20))
	require.NoError(t, s.EndResize())

	assert.Equal(t, models.Frame{X: 100, Y: 100, W: 250, H: 120}, frameOf(t, s, id))
	assert.Equal(t, 1, s.UndoDepth())
}

func TestResizeNWMovesOriginAndShrinks(t *testing.T) {
	s, _ := sessionWithBlock(t)
	id := s.State().Selected

	require.NoError(t, s.BeginResize(CornerNW, 0, 0))
	require.NoError(t, s.ResizeMove(30, 10))
	require.NoError(t, s.EndResize())

	assert.Equal(t, models.Frame{X: 130, Y: 110, W: 170, H: 90}, frameOf(t, s, id))
}

func TestResizeClampsAtMinimum(t *testing.T) {
	s, _ := sessionWithBlock(t)
	id := s.State().Selected

	// dragging the nw handle far past the se corner pins the block at its
	// minimum size with the opposite corner anchored
	require.NoError(t, s.BeginResize(CornerNW, 0, 0))
	require.NoError(t, s.ResizeMove(300, 300))
	require.NoError(t, s.EndResize())

	assert.Equal(t, models.Frame{X: 240, Y: 160, W: 60, H: 40}, frameOf(t, s, id))
}

func TestResizeSEClampsWithoutMovingOrigin(t *testing.T) {
	s, _ := sessionWithBlock(t)
	id := s.State().Selected

	require.NoError(t, s.BeginResize(CornerSE, 0, 0))
	require.NoError(t, s.ResizeMove(-500, -500))
	require.NoError(t, s.EndResize())

	assert.Equal(t, models.Frame{X: 100, Y: 100, W: 60, H: 40}, frameOf(t, s, id))
}

func TestResizeRequiresSelection(t *testing.T) {
	s, _ := sessionWithBlock(t)
	require.NoError(t, s.SelectBlock(""))
	assert.ErrorIs(t, s.BeginResize(CornerSE, 0, 0), ErrNoSelection)
}

func TestResizeUnknownCorner(t *testing.T) {
	s, _ := sessionWithBlock(t)
	assert.ErrorIs(t, s.BeginResize("center", 0, 0), ErrUnknownCorner)
}

func TestResizeNoNetChangeNoSnapshot(t *testing.T) {
	s, _ := sessionWithBlock(t)

	require.NoError(t, s.BeginResize(CornerSE, 0, 0))
	require.NoError(t, s.ResizeMove(40, 40))
	require.NoError(t, s.ResizeMove(0, 0))
	require.NoError(t, s.EndResize())
	assert.Equal(t, 0, s.UndoDepth())
}

func TestMoveWithoutGesture(t *testing.T) {
	s, _ := sessionWithBlock(t)
	assert.ErrorIs(t, s.DragMove(1, 1), ErrNoGesture)
	assert.ErrorIs(t, s.EndDrag(), ErrNoGesture)
	assert.ErrorIs(t, s.ResizeMove(1, 1), ErrNoGesture)
	assert.ErrorIs(t, s.EndResize(), ErrNoGesture)
}

func TestCancelGestureDropsWithoutCommit(t *testing.T) {
	s, id := sessionWithBlock(t)

	require.NoError(t, s.BeginDrag(id, 0, 0))
	require.NoError(t, s.DragMove(70, 0))
	s.CancelGesture()

	assert.Equal(t, 0, s.UndoDepth())
	assert.ErrorIs(t, s.EndDrag(), ErrNoGesture)
}

func TestUndoAfterResizeRestoresFrame(t *testing.T) {
	s, _ := sessionWithBlock(t)
	id := s.State().Selected

	require.NoError(t, s.BeginResize(CornerNE, 0, 0))
	require.NoError(t, s.ResizeMove(20, -30))
	require.NoError(t, s.EndResize())

	// ne: width grows, top edge moves up
	assert.Equal(t, models.Frame{X: 100, Y: 70, W: 220, H: 130}, frameOf(t, s, id))

	require.True(t, s.Undo())
	assert.Equal(t, models.Frame{X: 100, Y: 100, W: 200, H: 100}, frameOf(t, s, id))
}
