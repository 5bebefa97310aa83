package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/probe"
)

// Stance interpolates the capsule height between standing and crouched and derives the values that depend
// on it.
type Stance struct {
	Height        float32
	DefaultHeight float32

	// GroundOffsetY and CeilingOffsetY are the probe origins relative to the body position.
	GroundOffsetY  float32
	CeilingOffsetY float32
	// CameraY is the local vertical offset of the camera.
	CameraY float32

	groundCheckY  float32
	ceilingCheckY float32
	cameraStartY  float32
}

// NewStance returns a standing stance for the given config.
func NewStance(conf Config) *Stance {
	return &Stance{
		Height:         conf.Height,
		DefaultHeight:  conf.Height,
		GroundOffsetY:  conf.GroundCheckY,
		CeilingOffsetY: conf.CeilingCheckY,
		CameraY:        conf.CameraHeight,
		groundCheckY:   conf.GroundCheckY,
		ceilingCheckY:  conf.CeilingCheckY,
		cameraStartY:   conf.CameraHeight,
	}
}

// Target returns the height the stance moves towards.
func (s *Stance) Target(crouchHeld bool) float32 {
	if crouchHeld {
		return 0.5 * s.DefaultHeight
	}
	return s.DefaultHeight
}

// Update moves the height towards its target. Standing up is refused while there is a ceiling above the
// body; crouching always proceeds. It returns the vertical distance the body should be moved by to keep its
// base in place, and whether the height was updated at all.
func (s *Stance) Update(crouchHeld bool, ceiling probe.CeilingInfo, dt float32) (recenter float32, changed bool) {
	last := s.Height
	next := game.Lerp(last, s.Target(crouchHeld), game.CrouchRate*dt)
	if next >= last && ceiling.Ceiling {
		return 0, false
	}

	s.Height = mgl32.Clamp(next, 0.5*s.DefaultHeight, s.DefaultHeight)
	heightFactor := (s.DefaultHeight - s.Height) * 0.5
	s.GroundOffsetY = heightFactor + s.groundCheckY
	s.CeilingOffsetY = heightFactor + s.Height - (s.DefaultHeight - s.ceilingCheckY)
	s.CameraY = s.Height/s.DefaultHeight + s.cameraStartY - s.DefaultHeight*0.5
	return (s.Height - last) / 2, true
}

// ScaleY returns the vertical scale a visual proxy should move towards from current.
func (s *Stance) ScaleY(current float32, crouchHeld bool, dt float32) float32 {
	target := float32(1)
	if crouchHeld {
		target = 0.5
	}
	return game.Lerp(current, target, game.CrouchRate*dt)
}
