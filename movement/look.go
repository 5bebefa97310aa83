package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
)

// Look integrates look deltas into a camera pitch and a body yaw.
type Look struct {
	// Pitch is the camera pitch in degrees, clamped to [-ClampY, ClampY].
	Pitch float32

	SensitivityX float32
	SensitivityY float32
	ClampY       float32
	InvertY      bool
}

// Update applies a look delta scaled by dt and returns the new camera pitch and the yaw to rotate the body
// by. Yaw is not bounded.
func (l *Look) Update(delta mgl32.Vec2, dt float32) (pitch, yawDelta float32) {
	mouseX := delta.X() * l.SensitivityX * game.LookScale * dt
	mouseY := delta.Y() * l.SensitivityY * game.LookScale * dt

	if l.InvertY {
		l.Pitch += mouseY
	} else {
		l.Pitch -= mouseY
	}
	l.Pitch = mgl32.Clamp(l.Pitch, -l.ClampY, l.ClampY)
	return l.Pitch, mouseX
}
