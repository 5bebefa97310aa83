package game

import "github.com/go-gl/mathgl/mgl32"

// Default locomotion tuning.
const (
	DefaultCrouchSpeed = float32(3)
	DefaultWalkSpeed   = float32(7)
	DefaultRunSpeed    = float32(12)
	DefaultSprintSpeed = float32(16)

	DefaultGravity    = float32(-9.81)
	DefaultJumpHeight = float32(2.5)
	DefaultSlopeLimit = float32(45)

	DefaultHeight       = float32(2)
	DefaultRadius       = float32(0.5)
	DefaultCameraHeight = float32(1.7)

	DefaultGroundCheckY      = float32(0.33)
	DefaultCeilingCheckY     = float32(1.83)
	DefaultProbeRadius       = float32(0.25)
	DefaultProbeDistance     = float32(0.75)
	DefaultProbeRayLength    = float32(0.75)
	DefaultMouseSensitivity  = float32(2)
	DefaultLookClampY        = float32(90)
	DefaultFieldOfView       = float32(90)
	DefaultJumpCooldown      = float32(0.25)
	DefaultMaxGroundAngle    = float32(75)
	DefaultContactGraceSteps = 3
)

// Blend and interpolation rates, expressed per second.
const (
	CrouchRate        = float32(5)
	SlipRate          = float32(4)
	SlipSpeedRate     = float32(5)
	RestingPullRate   = float32(4)
	RestingPull       = float32(-1)
	CeilingPushDown   = float32(-1)
	GroundDecelRate   = float32(4)
	GroundAccelRate   = float32(2)
	AirborneBlendRate = float32(0.125)
	LookScale         = float32(100)
)

var (
	// DefaultRayOffsetA and DefaultRayOffsetB bracket the capsule footprint for slope smoothing rays.
	DefaultRayOffsetA = mgl32.Vec3{-0.2, 0, 0.16}
	DefaultRayOffsetB = mgl32.Vec3{0.2, 0, -0.16}
)
