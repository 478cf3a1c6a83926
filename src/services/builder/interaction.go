package builder

import (
	"errors"

	"Backend-Dhriti-AI/src/models"
)

// Gesture states. Drag and resize are mutually exclusive: starting one while
// the other is active cancels the active one without committing it.
type gestureMode int

const (
	gestureIdle gestureMode = iota
	gestureDrag
	gestureResize
)

// Resize corner handles, visible only on the selected block.
const (
	CornerNW = "nw"
	CornerNE = "ne"
	CornerSW = "sw"
	CornerSE = "se"
)

var (
	ErrNoGesture     = errors.New("no gesture in progress")
	ErrUnknownCorner = errors.New("unknown resize corner")
)

// gesture tracks one pointer interaction from down to up. The pre-gesture
// snapshot is captured at pointer-down and only committed to history at
// pointer-up when the frame actually changed, so a pure click never costs
// an undo step.
type gesture struct {
	mode      gestureMode
	corner    string
	blockID   string
	startX    int
	startY    int
	origFrame models.Frame
	preState  []byte
}

// BeginDrag starts a move gesture on a block body at pointer (px, py).
// The block becomes selected. Sub-controls of a block (option cells, media
// controls) must not call this - they keep their own click handling.
func (s *Session) BeginDrag(blockID string, px, py int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	block := s.findBlock(blockID)
	if block == nil {
		return ErrBlockNotFound
	}

	s.selected = blockID
	s.gesture = gesture{
		mode:      gestureDrag,
		blockID:   blockID,
		startX:    px,
		startY:    py,
		origFrame: block.Frame,
		preState:  s.capture(),
	}
	return nil
}

// DragMove updates the dragged block's position by the pointer delta.
func (s *Session) DragMove(px, py int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gesture.mode != gestureDrag {
		return ErrNoGesture
	}
	block := s.findBlock(s.gesture.blockID)
	if block == nil {
		s.gesture = gesture{}
		return ErrBlockNotFound
	}

	dx := px - s.gesture.startX
	dy := py - s.gesture.startY
	block.Frame.X = s.gesture.origFrame.X + dx
	block.Frame.Y = s.gesture.origFrame.Y + dy
	return nil
}

// EndDrag releases the gesture. One snapshot is committed only if the block
// ended somewhere else than it started; a pure click (zero net movement)
// leaves history untouched.
func (s *Session) EndDrag() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gesture.mode != gestureDrag {
		return ErrNoGesture
	}
	if block := s.findBlock(s.gesture.blockID); block != nil && block.Frame != s.gesture.origFrame {
		s.history.Record(s.gesture.preState)
	}
	s.gesture = gesture{}
	return nil
}

// BeginResize starts a corner resize on the selected block.
func (s *Session) BeginResize(corner string, px, py int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch corner {
	case CornerNW, CornerNE, CornerSW, CornerSE:
	default:
		return ErrUnknownCorner
	}
	if s.selected == "" {
		return ErrNoSelection
	}
	block := s.findBlock(s.selected)
	if block == nil {
		return ErrNoSelection
	}

	s.gesture = gesture{
		mode:      gestureResize,
		corner:    corner,
		blockID:   block.ID,
		startX:    px,
		startY:    py,
		origFrame: block.Frame,
		preState:  s.capture(),
	}
	return nil
}

// ResizeMove recomputes the frame from the active corner and pointer delta.
// East corners grow width from the right edge, west corners move the left
// edge, north corners move the top edge, south corners grow height. Width
// and height clamp at the 60x40 minimum with the opposite edge anchored.
func (s *Session) ResizeMove(px, py int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gesture.mode != gestureResize {
		return ErrNoGesture
	}
	block := s.findBlock(s.gesture.blockID)
	if block == nil {
		s.gesture = gesture{}
		return ErrBlockNotFound
	}

	dx := px - s.gesture.startX
	dy := py - s.gesture.startY
	orig := s.gesture.origFrame
	frame := orig

	switch s.gesture.corner {
	case CornerSE:
		frame.W = orig.W + dx
		frame.H = orig.H + dy
	case CornerNE:
		frame.W = orig.W + dx
		frame.H = orig.H - dy
		frame.Y = orig.Y + dy
	case CornerSW:
		frame.W = orig.W - dx
		frame.X = orig.X + dx
		frame.H = orig.H + dy
	case CornerNW:
		frame.W = orig.W - dx
		frame.X = orig.X + dx
		frame.H = orig.H - dy
		frame.Y = orig.Y + dy
	}

	// clamp to minimums, keeping the opposite edge where it was
	if frame.W < models.MinBlockWidth {
		if frame.X != orig.X {
			frame.X = orig.X + orig.W - models.MinBlockWidth
		}
		frame.W = models.MinBlockWidth
	}
	if frame.H < models.MinBlockHeight {
		if frame.Y != orig.Y {
			frame.Y = orig.Y + orig.H - models.MinBlockHeight
		}
		frame.H = models.MinBlockHeight
	}

	block.Frame = frame
	return nil
}

// EndResize releases the gesture, committing one snapshot if anything changed.
func (s *Session) EndResize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gesture.mode != gestureResize {
		return ErrNoGesture
	}
	if block := s.findBlock(s.gesture.blockID); block != nil && block.Frame != s.gesture.origFrame {
		s.history.Record(s.gesture.preState)
	}
	s.gesture = gesture{}
	return nil
}

// CancelGesture drops any in-progress gesture without committing. Used on
// session teardown so a half-finished drag never leaks into history.
func (s *Session) CancelGesture() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gesture = gesture{}
}
