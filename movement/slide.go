package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
)

// SlideExit decides whether an active slide ends. It is called once per step after the slide timer
// advanced.
type SlideExit func(s SlideState) bool

// NeverExit keeps a slide active until it is cancelled.
func NeverExit(SlideState) bool { return false }

// ExitAfter ends a slide once it has lasted d seconds.
func ExitAfter(d float32) SlideExit {
	return func(s SlideState) bool {
		return s.Timer >= d
	}
}

// TryStart starts a slide if no slide is active, there is no ceiling, run is held, slide was pressed this
// step and the body moves faster than walkSpeed. displacement is the movement of the previous step and
// becomes the slide direction.
func (s *SlideState) TryStart(ceiling, run, slidePressed bool, speed, walkSpeed float32, displacement mgl32.Vec3) bool {
	if s.Sliding || ceiling || !run || !slidePressed || speed <= walkSpeed {
		return false
	}
	forward, _ := game.SafeNormalize(displacement)
	*s = SlideState{Sliding: true, Forward: forward}
	return true
}

// Advance moves the slide timer forward and ends the slide if exit says so. It returns true if the slide
// ended.
func (s *SlideState) Advance(dt float32, exit SlideExit) bool {
	if !s.Sliding {
		return false
	}
	s.Timer += dt
	if exit != nil && exit(*s) {
		s.Cancel()
		return true
	}
	return false
}

// Cancel ends the slide.
func (s *SlideState) Cancel() {
	*s = SlideState{}
}
