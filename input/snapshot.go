package input

import "github.com/go-gl/mathgl/mgl32"

// Snapshot is the input captured for a single frame or step. Run, Sprint and Crouch are level flags that
// stay true while held. The Pressed flags are edges that are only true on the step the button went down.
type Snapshot struct {
	Look mgl32.Vec2
	Move mgl32.Vec2

	Run    bool
	Sprint bool
	Crouch bool

	JumpPressed         bool
	SlidePressed        bool
	CursorTogglePressed bool
}

// Clamped returns a copy of the snapshot with both move axes clamped to [-1, 1].
func (s Snapshot) Clamped() Snapshot {
	s.Move = mgl32.Vec2{mgl32.Clamp(s.Move.X(), -1, 1), mgl32.Clamp(s.Move.Y(), -1, 1)}
	return s
}

// Buttons is the raw held state of every action button, as read from a device.
type Buttons struct {
	Run, Sprint, Crouch       bool
	Jump, Slide, CursorToggle bool
}
