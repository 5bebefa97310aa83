package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
)

// Horizontal combines the move axes with the body axes, clamped to unit length.
func Horizontal(right, forward mgl32.Vec3, move mgl32.Vec2) mgl32.Vec3 {
	return game.ClampMagnitude(right.Mul(move.X()).Add(forward.Mul(move.Y())), 1)
}

// Compose returns the displacement for a single step.
func Compose(right, forward mgl32.Vec3, move mgl32.Vec2, speed float32, motion mgl32.Vec3, dt float32) mgl32.Vec3 {
	return Horizontal(right, forward, move).Mul(speed * dt).Add(motion.Mul(dt))
}

// SlopeAxes returns the axes horizontal input is applied along while slipping. Only the lateral axis of the
// slope is used: its sign follows the body's right axis so that strafing keeps its meaning.
func SlopeAxes(slopeDir, bodyRight mgl32.Vec3) (right, forward mgl32.Vec3) {
	right = game.YawRotation(90).Rotate(slopeDir)
	if right.Dot(bodyRight) <= 0 {
		right = right.Mul(-1)
	}
	return right, mgl32.Vec3{}
}
