package probe

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/physics"
)

// ContactOptions configures a Contacts strategy.
type ContactOptions struct {
	// MaxGroundAngle is the steepest contact, in degrees, that still counts as ground. Contacts facing
	// downwards by more than the same margin count as ceiling.
	MaxGroundAngle float32
	SlopeLimit     float32
	// GraceSteps is the number of consecutive steps without a ground contact before grounded is released.
	GraceSteps int

	// Radius and Mask are used for the ceiling overlap test when a caster is available.
	Radius float32
	Mask   physics.Mask
}

// Contacts is the grounding strategy used with a rigid-body mover. Ground state is accumulated from the
// contacts reported after each move rather than cast for, so Probe only reads the accumulated state.
type Contacts struct {
	caster physics.Caster
	opts   ContactOptions

	grounded  bool
	graceLeft int
	ceiling   bool

	lastAngle float32
	lastDir   mgl32.Vec3
}

// NewContacts returns a Contacts strategy. The caster is optional and only used to test for headroom.
func NewContacts(caster physics.Caster, opts ContactOptions) *Contacts {
	return &Contacts{caster: caster, opts: opts}
}

// SetOptions replaces the strategy options.
func (c *Contacts) SetOptions(opts ContactOptions) {
	c.opts = opts
}

// Observe folds the contacts of the latest move into the ground state.
func (c *Contacts) Observe(contacts []physics.Contact) {
	var (
		normal  mgl32.Vec3
		floor   bool
		ceiling bool
	)
	for _, contact := range contacts {
		angle := SlopeAngle(contact.Normal)
		switch {
		case angle < c.opts.MaxGroundAngle:
			normal = normal.Add(contact.Normal)
			floor = true
		case angle > 180-c.opts.MaxGroundAngle:
			ceiling = true
		}
	}
	c.ceiling = ceiling

	if floor {
		c.grounded, c.graceLeft = true, c.opts.GraceSteps
		c.lastAngle, c.lastDir = SlopeAngle(normal), SlopeDirection(normal)
		return
	}
	if c.grounded {
		c.graceLeft--
		if c.graceLeft <= 0 {
			c.grounded = false
		}
	}
}

// Probe ...
func (c *Contacts) Probe(origin mgl32.Vec3, _, ceilingOffsetY float32) (GroundInfo, CeilingInfo) {
	ceiling := c.ceiling
	if !ceiling && c.caster != nil {
		ceiling = c.caster.CheckSphere(origin.Add(mgl32.Vec3{0, ceilingOffsetY, 0}), c.opts.Radius, c.opts.Mask)
	}
	return GroundInfo{
		Grounded:       c.grounded,
		SlopeAngle:     c.lastAngle,
		SlopeDirection: c.lastDir,
		Slipping:       Slipping(c.lastAngle, c.opts.SlopeLimit),
	}, CeilingInfo{Ceiling: ceiling}
}
