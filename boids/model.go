package boids

import (
	"errors"
	"fmt"

	"boidview/assert"
)

// ErrFrameIndexOutOfRange is matched by every FrameIndexError.
var ErrFrameIndexOutOfRange error = errors.New("frame index out of range")

// FrameIndexError reports an attempt to address a frame outside [0, Loops).
type FrameIndexError struct {
	Index int
	Loops int
}

func (e *FrameIndexError) Error() string {
	return fmt.Sprintf("frame index %d out of range [0, %d)", e.Index, e.Loops)
}

// Is reports ErrFrameIndexOutOfRange as a match, for errors.Is.
func (e *FrameIndexError) Is(target error) bool {
	return target == ErrFrameIndexOutOfRange
}

// Model owns every frame of a simulation and a cyclic read cursor over them.
// Frames are filled during ingest via AddBoid, then drained in order via Update.
// A Model is not safe for concurrent use.
type Model struct {
	// frames is dense: one slice per frame index, allocated up front.
	frames [][]*Boid
	loops  int
	// cursor is always on [0, loops), or 0 when there are no frames.
	cursor int
}

// NewModel returns a model of loops empty frames with its cursor on frame 0.
func NewModel(loops int) (*Model, error) {
	if loops < 0 {
		return nil, fmt.Errorf("new model: negative loop count %d", loops)
	}

	frames := make([][]*Boid, loops)
	for i := range frames {
		frames[i] = []*Boid{}
	}

	return &Model{
		frames: frames,
		loops:  loops,
	}, nil
}

// Loops returns the fixed number of frames in the model.
func (m *Model) Loops() int {
	return m.loops
}

// Len returns the total number of boids across all frames.
func (m *Model) Len() (n int) {
	for _, frame := range m.frames {
		n += len(frame)
	}
	return
}

// AddBoid appends the boid to the given frame. Boids are exported in the order they
// were added. Adding to an already-visited frame is allowed.
func (m *Model) AddBoid(b *Boid, frame int) error {
	if err := assert.IsTrue(b != nil); err != nil {
		return fmt.Errorf("add boid: nil boid: %w", err)
	}
	if err := m.checkIndex(frame); err != nil {
		return fmt.Errorf("add boid %d: %w", b.ID(), err)
	}
	m.frames[frame] = append(m.frames[frame], b)
	return nil
}

// Update returns the overlay of the frame under the cursor, then advances the
// cursor, wrapping to frame 0 after the last frame. Repeated calls cycle through
// frames 0, 1, ..., Loops()-1, 0, 1, ...
func (m *Model) Update() (*Overlay, error) {
	if err := m.checkIndex(m.cursor); err != nil {
		return nil, fmt.Errorf("update: %w", err)
	}

	overlay := NewOverlay(m.frames[m.cursor])
	m.cursor = (m.cursor + 1) % m.loops
	return overlay, nil
}

func (m *Model) checkIndex(frame int) error {
	if frame < 0 || frame >= m.loops {
		return &FrameIndexError{Index: frame, Loops: m.loops}
	}
	return nil
}
