package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/probe"
)

// JumpVelocity returns the initial upward speed needed to reach height under gravity. Gravity is negative.
func JumpVelocity(height, gravity float32) float32 {
	return math32.Sqrt(height * -2 * gravity)
}

// Slip turns the motion accumulator towards slopeDir*runSpeed while keeping its magnitude.
func Slip(motion, slopeDir mgl32.Vec3, runSpeed, dt float32) mgl32.Vec3 {
	mag := motion.Len()
	dir, ok := game.SafeNormalize(game.SlerpVec3(motion, slopeDir.Mul(runSpeed), game.SlipRate*dt))
	if !ok {
		return motion
	}
	return dir.Mul(mag)
}

// Rest clears the horizontal motion and, while falling, pulls the vertical motion towards a small
// downward value.
func Rest(motion mgl32.Vec3, dt float32) mgl32.Vec3 {
	motion[0], motion[2] = 0, 0
	if motion[1] < 0 {
		motion[1] = game.Lerp(motion[1], game.RestingPull, game.RestingPullRate*dt)
	}
	return motion
}

// VerticalInput is the state Vertical needs to update the motion accumulator.
type VerticalInput struct {
	Ground  probe.GroundInfo
	Ceiling probe.CeilingInfo
	Sliding bool

	// JumpPressed is the jump edge. JumpReady is false while the jump cooldown runs.
	JumpPressed bool
	JumpReady   bool
}

// Vertical updates the motion accumulator for a single step and reports whether a jump was started. Gravity
// is integrated last and always.
func Vertical(conf Config, motion mgl32.Vec3, in VerticalInput, dt float32) (mgl32.Vec3, bool) {
	var jumped bool
	if in.Ground.Grounded {
		if in.Ground.Slipping {
			motion = Slip(motion, in.Ground.SlopeDirection, conf.RunSpeed, dt)
		} else {
			motion = Rest(motion, dt)
		}

		if in.JumpPressed && in.JumpReady && !in.Sliding && !in.Ceiling.Ceiling {
			motion[1] = JumpVelocity(conf.JumpHeight, conf.Gravity)
			jumped = true
		}
	}

	if in.Ceiling.Ceiling && motion[1] > 0 {
		motion[1] = game.CeilingPushDown
	}
	motion[1] += conf.Gravity * dt
	return motion, jumped
}
