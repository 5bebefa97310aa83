package movement

import (
	"errors"
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/assert"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/input"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/oomph-ac/locomotion/physics"
	"github.com/oomph-ac/locomotion/probe"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/sirupsen/logrus"
)

// Deps are the collaborators of a controller. Caster, Mover and Camera are required; a controller created
// without them logs the fault and runs degraded. The rest are optional.
type Deps struct {
	Caster physics.Caster
	Mover  physics.Mover
	Camera Camera
	// Gfx is an optional visual proxy whose vertical scale follows the stance.
	Gfx Transform

	Settings *settings.Settings
	Cursor   *input.Cursor
	Debug    probe.DebugSink

	Log *logrus.Logger
	Hub *sentry.Hub
}

// StepResult describes what happened during a single step.
type StepResult struct {
	Ground  probe.GroundInfo
	Ceiling probe.CeilingInfo

	Speed        float32
	Displacement mgl32.Vec3
	Applied      mgl32.Vec3

	Jumped       bool
	SlideStarted bool
	SlideEnded   bool
	Pushed       int
}

// Controller is a first-person locomotion controller. Look is updated once per rendered frame with Frame,
// movement once per fixed step with Step. A Controller is not safe for concurrent use.
type Controller struct {
	conf Config
	deps Deps
	log  *logrus.Logger

	strategy probe.Strategy
	look     Look
	stance   *Stance

	body   BodyState
	motion MotionState
	slide  SlideState
	exit   SlideExit

	jumpCooldown float32
	velocity     mgl32.Vec3
	last         StepResult
}

// New creates a controller with its body at spawn. Wiring faults are logged, reported to the sentry hub and
// returned, but the returned controller is always usable.
func New(conf Config, spawn mgl32.Vec3, deps Deps) (*Controller, error) {
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	if deps.Cursor == nil {
		deps.Cursor = input.NewCursor(nil)
	}

	var faults []error
	fault := func(sentinel error, msg string) {
		deps.Log.Error(msg)
		faults = append(faults, oerror.Wrap(sentinel, msg))
	}
	if err := conf.Validate(); err != nil {
		deps.Log.Errorf("invalid locomotion config, using defaults: %v", err)
		faults = append(faults, err)
		conf = DefaultConfig()
	}
	if deps.Caster == nil {
		fault(oerror.ErrMissingCaster, game.ErrorMissingCaster)
	}
	if deps.Mover == nil {
		fault(oerror.ErrMissingMover, game.ErrorMissingMover)
	}
	if deps.Camera == nil {
		fault(oerror.ErrMissingCamera, game.ErrorMissingCamera)
		deps.Camera = NewNode(mgl32.Vec3{0, conf.CameraHeight, 0})
	}
	if conf.Mask == 0 {
		fault(oerror.ErrEmptyMask, game.ErrorEmptyMask)
	}

	c := &Controller{
		conf:   conf,
		deps:   deps,
		log:    deps.Log,
		stance: NewStance(conf),
		body: BodyState{
			Position:      spawn,
			LastPosition:  spawn,
			Height:        conf.Height,
			DefaultHeight: conf.Height,
		},
		motion: MotionState{Motion: mgl32.Vec3{0, conf.Gravity, 0}},
		look: Look{
			SensitivityX: conf.MouseSensitivity,
			SensitivityY: conf.MouseSensitivity,
			ClampY:       conf.LookClampY,
			InvertY:      conf.InvertY,
		},
	}
	c.exit = NeverExit
	if conf.SlideDuration > 0 {
		c.exit = ExitAfter(conf.SlideDuration)
	}

	switch conf.Grounding {
	case GroundingContact:
		c.strategy = probe.NewContacts(deps.Caster, conf.contactOptions())
	default:
		s := probe.NewShapeCast(deps.Caster, conf.shapeCastOptions())
		if conf.Gizmos && deps.Debug != nil {
			s.Debug = deps.Debug
		}
		c.strategy = s
	}
	deps.Camera.SetLocalPosition(mgl32.Vec3{0, c.stance.CameraY, 0})

	err := errors.Join(faults...)
	if err != nil && deps.Hub != nil {
		deps.Hub.CaptureException(err)
	}
	return c, err
}

// Config returns the config the controller runs with.
func (c *Controller) Config() Config {
	return c.conf
}

// Body returns a copy of the body state.
func (c *Controller) Body() BodyState {
	return c.body
}

// Position returns the position of the body.
func (c *Controller) Position() mgl32.Vec3 {
	return c.body.Position
}

// Velocity returns the position delta of the last step divided by its duration.
func (c *Controller) Velocity() mgl32.Vec3 {
	return c.velocity
}

// Motion returns the motion accumulator.
func (c *Controller) Motion() mgl32.Vec3 {
	return c.motion.Motion
}

// Slide returns the slide state.
func (c *Controller) Slide() SlideState {
	return c.slide
}

// Stance returns the stance of the body.
func (c *Controller) Stance() Stance {
	return *c.stance
}

// Pitch returns the camera pitch in degrees.
func (c *Controller) Pitch() float32 {
	return c.look.Pitch
}

// LastStep returns the result of the last step.
func (c *Controller) LastStep() StepResult {
	return c.last
}

// Teleport moves the body to pos without collision and resets its motion.
func (c *Controller) Teleport(pos mgl32.Vec3) {
	c.body.Position, c.body.LastPosition = pos, pos
	c.body.LastSpeed = 0
	c.motion.Motion = mgl32.Vec3{0, c.conf.Gravity, 0}
	c.velocity = mgl32.Vec3{}
	c.slide.Cancel()
}

// SetSlideExit replaces the policy that ends slides. A nil policy never ends a slide.
func (c *Controller) SetSlideExit(exit SlideExit) {
	if exit == nil {
		exit = NeverExit
	}
	c.exit = exit
}

// CancelSlide ends an active slide.
func (c *Controller) CancelSlide() {
	c.slide.Cancel()
}

// Capsule returns the capsule of the body in world space.
func (c *Controller) Capsule() physics.Capsule {
	return physics.Capsule{
		Center: c.body.Position.Add(mgl32.Vec3{0, c.body.DefaultHeight / 2, 0}),
		Height: c.body.Height,
		Radius: c.conf.Radius,
	}
}

// Frame handles the render-rate part of the input: the cursor toggle and look. Look input is ignored while
// the cursor is unlocked.
func (c *Controller) Frame(in input.Snapshot, dt float32) {
	if in.CursorTogglePressed {
		c.deps.Cursor.Toggle()
	}
	if !c.deps.Cursor.Locked() || dt <= 0 {
		return
	}

	pitch, yawDelta := c.look.Update(in.Look, dt)
	c.deps.Camera.SetLocalRotation(game.PitchRotation(pitch))
	c.body.Yaw += yawDelta
}

// Step advances movement by a single fixed step of dt seconds.
func (c *Controller) Step(in input.Snapshot, dt float32) (res StepResult) {
	if dt < 0 {
		c.log.Errorf(game.ErrorInternalNegativeDelta, dt)
		return c.last
	}
	defer func() {
		if r := recover(); r != nil {
			c.log.Errorf(game.ErrorInternalStepPanic, r)
			if c.deps.Hub != nil {
				c.deps.Hub.Recover(fmt.Errorf("locomotion step: %v", r))
			}
			res = c.last
		}
	}()

	c.applySettings()
	in = in.Clamped()

	var instant float32
	if dt > 0 {
		instant = c.body.Position.Sub(c.body.LastPosition).Len() / dt
	}

	ground, ceiling := c.strategy.Probe(c.body.Position, c.stance.GroundOffsetY, c.stance.CeilingOffsetY)
	res.Ground, res.Ceiling = ground, ceiling

	target := TargetSpeed(c.conf, ground.Grounded, ceiling.Ceiling, in.Run, in.Sprint, in.Crouch)
	res.SlideStarted = c.slide.TryStart(ceiling.Ceiling, in.Run, in.SlidePressed, instant, c.conf.WalkSpeed,
		c.body.Position.Sub(c.body.LastPosition))
	if res.SlideStarted {
		c.log.WithField("direction", c.slide.Forward).Debug("slide started")
	}
	c.body.LastPosition = c.body.Position

	right, forward := game.BodyAxes(c.body.Yaw)
	c.updateStance(in.Crouch, ceiling, dt)
	if s, ok := c.deps.Mover.(physics.StanceAware); ok {
		s.SetCrouching(in.Crouch)
	}

	if ground.Grounded && ground.Slipping {
		right, forward = SlopeAxes(ground.SlopeDirection, right)
		target = game.Lerp(instant, c.conf.RunSpeed, game.SlipSpeedRate*dt)
	}
	c.motion.Motion, res.Jumped = Vertical(c.conf, c.motion.Motion, VerticalInput{
		Ground:      ground,
		Ceiling:     ceiling,
		Sliding:     c.slide.Sliding,
		JumpPressed: in.JumpPressed,
		JumpReady:   c.jumpCooldown <= 0,
	}, dt)
	if res.Jumped {
		c.jumpCooldown = c.conf.JumpCooldown
		c.log.WithField("velocity", c.motion.Motion.Y()).Debug("jumped")
	}

	speed := Blend(ground.Grounded, c.body.LastSpeed, target, dt)
	if ceiling.Ceiling {
		speed = c.conf.CrouchSpeed
	}
	c.body.LastSpeed = speed
	res.Speed = speed

	res.Displacement = Compose(right, forward, in.Move, speed, c.motion.Motion, dt)
	res.Applied, res.Pushed = c.move(res.Displacement)
	if dt > 0 {
		c.velocity = c.body.Position.Sub(c.body.LastPosition).Mul(1 / dt)
	}

	if res.SlideEnded = c.slide.Advance(dt, c.exit); res.SlideEnded {
		c.log.Debug("slide ended")
	}
	if c.jumpCooldown > 0 {
		c.jumpCooldown -= dt
	}

	if c.conf.Gizmos && c.deps.Debug != nil {
		origin := c.body.Position.Add(mgl32.Vec3{0, c.stance.GroundOffsetY, 0})
		c.deps.Debug.Line(origin, origin.Add(c.motion.Motion), probe.ColourMotion)
	}
	c.last = res
	return res
}

// updateStance moves the height towards its target and keeps the attached nodes in line with it.
func (c *Controller) updateStance(crouch bool, ceiling probe.CeilingInfo, dt float32) {
	recenter, changed := c.stance.Update(crouch, ceiling, dt)
	if !changed {
		return
	}
	assert.IsTrue(c.stance.Height >= c.conf.CrouchHeight() && c.stance.Height <= c.conf.Height,
		"stance height %v outside [%v, %v]", c.stance.Height, c.conf.CrouchHeight(), c.conf.Height)
	c.body.Height = c.stance.Height
	c.body.Position[1] += recenter

	cam := c.deps.Camera.LocalPosition()
	cam[1] = c.stance.CameraY
	c.deps.Camera.SetLocalPosition(cam)

	if c.deps.Gfx != nil {
		scale := c.deps.Gfx.LocalScale()
		scale[1] = c.stance.ScaleY(scale[1], crouch, dt)
		c.deps.Gfx.SetLocalScale(scale)
	}
}

// move hands the displacement to the mover and processes the contacts it reports. Without a mover the
// displacement is applied as is.
func (c *Controller) move(displacement mgl32.Vec3) (applied mgl32.Vec3, pushed int) {
	if c.deps.Mover == nil {
		c.body.Position = c.body.Position.Add(displacement)
		return displacement, 0
	}

	result := c.deps.Mover.Move(c.Capsule(), displacement, c.conf.Mask)
	c.body.Position = c.body.Position.Add(result.Applied)
	if observer, ok := c.strategy.(probe.ContactObserver); ok {
		observer.Observe(result.Contacts)
	}
	return result.Applied, Push(result.Contacts, c.body.LastSpeed)
}

// applySettings picks up changed user settings. It is called once per step.
func (c *Controller) applySettings() {
	if c.deps.Settings == nil {
		return
	}
	v, updated := c.deps.Settings.Consume()
	if !updated {
		return
	}
	c.look.SensitivityX, c.look.SensitivityY = v.MouseSensitivity, v.MouseSensitivity
	c.look.InvertY = v.InvertY
	c.deps.Camera.SetFieldOfView(v.FieldOfView)
	c.log.WithFields(logrus.Fields{
		"sensitivity": v.MouseSensitivity,
		"invert_y":    v.InvertY,
		"fov":         v.FieldOfView,
	}).Debug("applied settings")
}
