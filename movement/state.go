package movement

import "github.com/go-gl/mathgl/mgl32"

// BodyState is the state of the body owned by a controller. Position is the pivot of the body, which sits
// at the base of the capsule while standing.
type BodyState struct {
	Position, LastPosition mgl32.Vec3
	// Yaw is the rotation of the body about the up axis in degrees. It is not wrapped.
	Yaw float32

	Height        float32
	DefaultHeight float32

	// LastSpeed is the blended horizontal speed of the previous step.
	LastSpeed float32
}

// MotionState is the accumulator that stands in for a velocity. Its Y component carries gravity and jump
// impulses and, while slipping, its horizontal components carry the slope-driven motion.
type MotionState struct {
	Motion mgl32.Vec3
}

// SlideState tracks an active slide.
type SlideState struct {
	Sliding bool
	// Timer is the time in seconds since the slide started.
	Timer float32
	// Forward is the direction of travel captured when the slide started.
	Forward mgl32.Vec3
}
