package movement

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/oomph-ac/locomotion/physics"
	"github.com/oomph-ac/locomotion/probe"
	"gopkg.in/yaml.v3"
)

// Grounding selects how the controller finds the ground beneath it.
type Grounding string

const (
	// GroundingShapeCast probes with shape casts and moves with a kinematic capsule mover.
	GroundingShapeCast Grounding = "shapecast"
	// GroundingContact accumulates ground state from mover contacts and moves a rigid body.
	GroundingContact Grounding = "contact"
)

// Config holds the per-instance tunables of a controller.
type Config struct {
	CrouchSpeed float32 `yaml:"crouch_speed"`
	WalkSpeed   float32 `yaml:"walk_speed"`
	RunSpeed    float32 `yaml:"run_speed"`
	SprintSpeed float32 `yaml:"sprint_speed"`

	// Gravity is a negative acceleration along the up axis.
	Gravity    float32 `yaml:"gravity"`
	JumpHeight float32 `yaml:"jump_height"`
	// JumpCooldown is the time in seconds after a jump before another jump is allowed.
	JumpCooldown float32 `yaml:"jump_cooldown"`
	SlopeLimit   float32 `yaml:"slope_limit"`

	Height       float32 `yaml:"height"`
	Radius       float32 `yaml:"radius"`
	CameraHeight float32 `yaml:"camera_height"`

	GroundCheckY  float32      `yaml:"ground_check_y"`
	CeilingCheckY float32      `yaml:"ceiling_check_y"`
	ProbeRadius   float32      `yaml:"probe_radius"`
	ProbeDistance float32      `yaml:"probe_distance"`
	RayLength     float32      `yaml:"ray_length"`
	RayOffsetA    mgl32.Vec3   `yaml:"ray_offset_a,flow"`
	RayOffsetB    mgl32.Vec3   `yaml:"ray_offset_b,flow"`
	Mask          physics.Mask `yaml:"mask"`

	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
	LookClampY       float32 `yaml:"look_clamp_y"`
	InvertY          bool    `yaml:"invert_y"`

	// SlideDuration ends a slide after the given number of seconds. Zero keeps a slide active until it is
	// cancelled.
	SlideDuration float32 `yaml:"slide_duration"`

	Grounding         Grounding `yaml:"grounding"`
	MaxGroundAngle    float32   `yaml:"max_ground_angle"`
	ContactGraceSteps int       `yaml:"contact_grace_steps"`

	Gizmos bool `yaml:"gizmos"`
}

// DefaultConfig returns the default controller tuning.
func DefaultConfig() Config {
	return Config{
		CrouchSpeed:       game.DefaultCrouchSpeed,
		WalkSpeed:         game.DefaultWalkSpeed,
		RunSpeed:          game.DefaultRunSpeed,
		SprintSpeed:       game.DefaultSprintSpeed,
		Gravity:           game.DefaultGravity,
		JumpHeight:        game.DefaultJumpHeight,
		JumpCooldown:      game.DefaultJumpCooldown,
		SlopeLimit:        game.DefaultSlopeLimit,
		Height:            game.DefaultHeight,
		Radius:            game.DefaultRadius,
		CameraHeight:      game.DefaultCameraHeight,
		GroundCheckY:      game.DefaultGroundCheckY,
		CeilingCheckY:     game.DefaultCeilingCheckY,
		ProbeRadius:       game.DefaultProbeRadius,
		ProbeDistance:     game.DefaultProbeDistance,
		RayLength:         game.DefaultProbeRayLength,
		RayOffsetA:        game.DefaultRayOffsetA,
		RayOffsetB:        game.DefaultRayOffsetB,
		Mask:              physics.MaskAll &^ physics.LayerPlayer,
		MouseSensitivity:  game.DefaultMouseSensitivity,
		LookClampY:        game.DefaultLookClampY,
		Grounding:         GroundingShapeCast,
		MaxGroundAngle:    game.DefaultMaxGroundAngle,
		ContactGraceSteps: game.DefaultContactGraceSteps,
	}
}

// LoadConfig reads a YAML config file on top of the default config.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return conf, fmt.Errorf("error reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return conf, fmt.Errorf("error decoding config: %w", err)
	}
	return conf, conf.Validate()
}

// Validate returns an error describing every invalid tunable in the config.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, oerror.Wrap(oerror.ErrInvalidConfig, fmt.Sprintf(format, args...)))
		}
	}

	check(c.CrouchSpeed >= 0 && c.WalkSpeed >= 0 && c.RunSpeed >= 0 && c.SprintSpeed >= 0, "speeds must not be negative")
	check(c.Gravity < 0, "gravity must be negative, got %v", c.Gravity)
	check(c.JumpHeight >= 0, "jump height must not be negative, got %v", c.JumpHeight)
	check(c.JumpCooldown >= 0, "jump cooldown must not be negative, got %v", c.JumpCooldown)
	check(c.SlopeLimit >= 0 && c.SlopeLimit < 180, "slope limit must be in [0, 180), got %v", c.SlopeLimit)
	check(c.Height > 0, "height must be positive, got %v", c.Height)
	check(c.Radius > 0 && c.Radius*2 <= c.Height*0.5, "radius %v does not fit a crouched capsule of height %v", c.Radius, c.Height*0.5)
	check(c.ProbeRadius > 0 && c.ProbeDistance >= 0 && c.RayLength >= 0, "probe dimensions must be positive")
	check(c.LookClampY >= 0, "look clamp must not be negative, got %v", c.LookClampY)
	check(c.SlideDuration >= 0, "slide duration must not be negative, got %v", c.SlideDuration)
	check(c.Grounding == GroundingShapeCast || c.Grounding == GroundingContact, game.ErrorInternalInvalidStrategy, c.Grounding)
	if c.Grounding == GroundingContact {
		check(c.ContactGraceSteps > 0, "contact grace steps must be positive, got %v", c.ContactGraceSteps)
		check(c.MaxGroundAngle > 0 && c.MaxGroundAngle < 90, "max ground angle must be in (0, 90), got %v", c.MaxGroundAngle)
	}
	return errors.Join(errs...)
}

// CrouchHeight returns the capsule height while fully crouched.
func (c Config) CrouchHeight() float32 {
	return c.Height * 0.5
}

// shapeCastOptions ...
func (c Config) shapeCastOptions() probe.ShapeCastOptions {
	return probe.ShapeCastOptions{
		Radius:     c.ProbeRadius,
		Distance:   c.ProbeDistance,
		RayLength:  c.RayLength,
		SlopeLimit: c.SlopeLimit,
		RayOffsetA: c.RayOffsetA,
		RayOffsetB: c.RayOffsetB,
		Mask:       c.Mask,
	}
}

// contactOptions ...
func (c Config) contactOptions() probe.ContactOptions {
	return probe.ContactOptions{
		MaxGroundAngle: c.MaxGroundAngle,
		SlopeLimit:     c.SlopeLimit,
		GraceSteps:     c.ContactGraceSteps,
		Radius:         c.ProbeRadius,
		Mask:           c.Mask,
	}
}
