package input

import "github.com/go-gl/mathgl/mgl32"

// Sampler turns raw button levels into snapshots. Frames are sampled at render rate while movement is
// stepped on a fixed cadence, so jump and slide edges are latched until the next Step call and a press is
// never lost or reported twice when the two rates differ.
type Sampler struct {
	prev Buttons
	move mgl32.Vec2

	jump  bool
	slide bool
}

// Frame records the device state for a rendered frame. The returned snapshot carries the look delta and the
// cursor toggle edge, which are handled at render rate.
func (s *Sampler) Frame(look, move mgl32.Vec2, b Buttons) Snapshot {
	snap := Snapshot{
		Look:                look,
		Move:                move,
		Run:                 b.Run,
		Sprint:              b.Sprint,
		Crouch:              b.Crouch,
		JumpPressed:         b.Jump && !s.prev.Jump,
		SlidePressed:        b.Slide && !s.prev.Slide,
		CursorTogglePressed: b.CursorToggle && !s.prev.CursorToggle,
	}.Clamped()

	s.jump = s.jump || snap.JumpPressed
	s.slide = s.slide || snap.SlidePressed
	s.prev, s.move = b, snap.Move
	return snap
}

// Step returns the snapshot for a fixed movement step and clears the latched edges.
func (s *Sampler) Step() Snapshot {
	snap := Snapshot{
		Move:         s.move,
		Run:          s.prev.Run,
		Sprint:       s.prev.Sprint,
		Crouch:       s.prev.Crouch,
		JumpPressed:  s.jump,
		SlidePressed: s.slide,
	}
	s.jump, s.slide = false, false
	return snap
}
