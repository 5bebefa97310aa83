package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/physics"
)

// contactSlop is the distance within which a ramp is reported as touched without being penetrated.
const contactSlop = 0.01

// CapsuleMover moves a capsule kinematically through a World. The capsule is resolved against boxes as its
// bounding box, one axis at a time, and against ramps as the sphere at its base.
type CapsuleMover struct {
	world *World
	// SlopeLimit is the steepest ramp, in degrees, the capsule rests on. Steeper ramps push the capsule out
	// along their normal so that it slides down them.
	SlopeLimit float32
}

// CapsuleMover returns a kinematic capsule mover for the world.
func (w *World) CapsuleMover(slopeLimit float32) *CapsuleMover {
	return &CapsuleMover{world: w, SlopeLimit: slopeLimit}
}

// Move ...
func (m *CapsuleMover) Move(c physics.Capsule, displacement mgl32.Vec3, mask physics.Mask) physics.MoveResult {
	return m.world.resolve(c, displacement, mask, m.SlopeLimit)
}

// slideBoostMinSpeed is the horizontal speed a body must exceed for crouching to boost it into a slide.
const slideBoostMinSpeed = 0.5

// RigidOptions tunes how a RigidMover drives its body.
type RigidOptions struct {
	// Acceleration is the acceleration in m/s² that input drives the body with.
	Acceleration float32
	// MaxSpeed caps the horizontal speed of the body while grounded.
	MaxSpeed float32
	// CounterMovement is the fraction of velocity per second removed on the ground along directions the
	// input does not drive.
	CounterMovement float32
	// AirMultiplier scales the input acceleration while airborne.
	AirMultiplier float32
	// SlideBoost is the speed added along the direction of travel when a moving body crouches on the ground.
	SlideBoost float32
	// SlideFriction is the deceleration in m/s² of a crouched body on the ground.
	SlideFriction float32
}

// DefaultRigidOptions returns the options of a unit-mass body stepped at 50Hz.
func DefaultRigidOptions() RigidOptions {
	return RigidOptions{
		Acceleration:    90,
		MaxSpeed:        20,
		CounterMovement: 15.75,
		AirMultiplier:   0.5,
		SlideBoost:      8,
		SlideFriction:   18,
	}
}

// RigidMover drives a capsule as a rigid body with a persistent velocity. The requested horizontal
// displacement acts as a force pushing the body towards the requested velocity, counter-movement damps
// what the input does not drive and the collision response feeds back into the velocity. The vertical
// component is taken from the request as is.
type RigidMover struct {
	world *World
	// Step is the duration of the fixed step the mover is driven with.
	Step float32
	// SlopeLimit is the steepest ramp, in degrees, that friction holds the body on. Contacts up to it
	// count as ground for counter-movement.
	SlopeLimit float32
	Options    RigidOptions

	velocity  mgl32.Vec3
	grounded  bool
	crouching bool
}

// RigidMover returns a rigid-body mover for the world driven at the given fixed step.
func (w *World) RigidMover(step, slopeLimit float32) *RigidMover {
	return &RigidMover{world: w, Step: step, SlopeLimit: slopeLimit, Options: DefaultRigidOptions()}
}

// Velocity returns the velocity of the body after the last move.
func (m *RigidMover) Velocity() mgl32.Vec3 {
	return m.velocity
}

// Grounded returns true if the last move touched ground.
func (m *RigidMover) Grounded() bool {
	return m.grounded
}

// SetCrouching ...
func (m *RigidMover) SetCrouching(crouching bool) {
	if crouching && !m.crouching && m.grounded {
		hz := mgl32.Vec3{m.velocity[0], 0, m.velocity[2]}
		if dir, ok := game.SafeNormalize(hz); ok && hz.Len() > slideBoostMinSpeed {
			m.velocity = m.velocity.Add(dir.Mul(m.Options.SlideBoost))
		}
	}
	m.crouching = crouching
}

// Move ...
func (m *RigidMover) Move(c physics.Capsule, displacement mgl32.Vec3, mask physics.Mask) physics.MoveResult {
	if m.Step <= 0 {
		return m.world.resolve(c, displacement, mask, m.SlopeLimit)
	}
	want := displacement.Mul(1 / m.Step)
	m.velocity = m.drive(mgl32.Vec3{want[0], 0, want[2]})
	m.velocity[1] = want[1]

	res := m.world.resolve(c, m.velocity.Mul(m.Step), mask, m.SlopeLimit)
	m.velocity = res.Applied.Mul(1 / m.Step)
	m.grounded = false
	for _, contact := range res.Contacts {
		if game.AngleBetween(contact.Normal, game.Up) <= m.SlopeLimit {
			m.grounded = true
			break
		}
	}
	return res
}

// drive returns the horizontal velocity of the body after applying the input force for a single step.
func (m *RigidMover) drive(want mgl32.Vec3) mgl32.Vec3 {
	o, dt := m.Options, m.Step
	vel := mgl32.Vec3{m.velocity[0], 0, m.velocity[2]}
	if m.grounded && m.crouching {
		// Crouched bodies ignore input and slow down by friction alone.
		l := vel.Len()
		if l <= o.SlideFriction*dt {
			return mgl32.Vec3{}
		}
		return vel.Mul((l - o.SlideFriction*dt) / l)
	}

	target := math32.Min(want.Len(), o.MaxSpeed)
	dir, driving := game.SafeNormalize(want)
	var along float32
	lateral := vel
	if driving {
		along = vel.Dot(dir)
		lateral = vel.Sub(dir.Mul(along))
	}

	if m.grounded {
		keep := mgl32.Clamp(1-o.CounterMovement*dt, 0, 1)
		lateral = lateral.Mul(keep)
		switch {
		case along < 0:
			along *= keep
		case along > target:
			along = math32.Max(target, along*keep)
		}
	}
	if driving && along < target {
		accel := o.Acceleration * dt
		if !m.grounded {
			accel *= o.AirMultiplier
		}
		along = math32.Min(along+accel, target)
	}

	vel = lateral.Add(dir.Mul(along))
	if m.grounded {
		vel = game.ClampMagnitude(vel, o.MaxSpeed)
	}
	return vel
}

// capsuleBox returns the bounding box of a capsule.
func capsuleBox(c physics.Capsule) cube.BBox {
	half := mgl32.Vec3{c.Radius, c.Height / 2, c.Radius}
	lo, hi := c.Center.Sub(half), c.Center.Add(half)
	return cube.Box(lo.X(), lo.Y(), lo.Z(), hi.X(), hi.Y(), hi.Z())
}

// resolve moves a capsule by displacement and returns the displacement it could actually make along with
// every collider it touched.
func (w *World) resolve(c physics.Capsule, displacement mgl32.Vec3, mask physics.Mask, slopeLimit float32) physics.MoveResult {
	var (
		bb       = capsuleBox(c)
		applied  mgl32.Vec3
		contacts []physics.Contact
	)
	moveDir, _ := game.SafeNormalize(displacement)
	touch := func(col *Collider, normal, point mgl32.Vec3) {
		for _, existing := range contacts {
			if existing.Collider == col.ID {
				return
			}
		}
		contact := physics.Contact{Collider: col.ID, Point: point, Normal: normal, MoveDirection: moveDir}
		if col.Body != nil {
			contact.Body = col.Body
		}
		contacts = append(contacts, contact)
	}

	boxes := w.nearbyBoxes(bb.Extend(displacement).Grow(0.01), mask, nil)
	for _, axis := range [3]int{1, 0, 2} {
		step := mgl32.Vec3{}
		step[axis] = displacement[axis]
		for i := len(boxes) - 1; i >= 0; i-- {
			res := clip(boxes[i].Box, bb, step)
			if res.axis == -1 {
				continue
			}
			step = res.vel
			normal := mgl32.Vec3{}
			normal[res.axis] = res.normal
			touch(boxes[i], normal, closestPoint(boxes[i].Box, c.Center.Add(applied)))
		}
		bb = bb.Translate(step)
		applied = applied.Add(step)
	}

	w.each(mask, func(col *Collider) {
		r := col.Ramp
		if r == nil {
			return
		}
		base := c.Center.Add(applied).Sub(mgl32.Vec3{0, c.Height/2 - c.Radius, 0})
		if !r.Covers(base) || base.Y()+c.Radius < r.Bounds.Min().Y() {
			return
		}
		d := r.distance(base)
		if d >= c.Radius+contactSlop || d < -c.Height {
			return
		}
		if pen := c.Radius - d; pen > 0 {
			if r.Angle() <= slopeLimit {
				applied[1] += pen / r.Normal().Y()
			} else {
				applied = applied.Add(r.Normal().Mul(pen))
			}
		}
		touch(col, r.Normal(), base.Sub(r.Normal().Mul(c.Radius)))
	})
	return physics.MoveResult{Applied: applied, Contacts: contacts}
}
