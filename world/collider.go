package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/physics"
)

// Collider is a shape registered with a World. A collider is either a solid box or a ramp.
type Collider struct {
	ID    physics.ColliderID
	Layer physics.Mask
	// Box is the solid box of the collider, or the bounds of the ramp.
	Box  cube.BBox
	Ramp *Ramp
	// Body is set for colliders that move with a dynamic body.
	Body *Body
}

// Ramp is an inclined surface spanning the horizontal extent of its bounds. It rises from the bottom of the
// bounds to their top along Rise. Ramps only collide through their top surface.
type Ramp struct {
	Bounds cube.BBox
	// Rise is the horizontal unit axis the ramp ascends along: one of ±X or ±Z.
	Rise mgl32.Vec3

	normal   mgl32.Vec3
	low, run float32
}

// NewRamp returns a ramp over bounds ascending along rise.
func NewRamp(bounds cube.BBox, rise mgl32.Vec3) *Ramp {
	rise, _ = game.SafeNormalize(mgl32.Vec3{rise.X(), 0, rise.Z()})
	a, b := rise.Dot(bounds.Min()), rise.Dot(bounds.Max())
	r := &Ramp{Bounds: bounds, Rise: rise, low: math32.Min(a, b), run: math32.Abs(b - a)}

	slope := r.height() / r.run
	r.normal = mgl32.Vec3{0, 1, 0}.Sub(rise.Mul(slope)).Normalize()
	return r
}

// Normal returns the normal of the ramp surface.
func (r *Ramp) Normal() mgl32.Vec3 {
	return r.normal
}

// Angle returns the incline of the ramp in degrees.
func (r *Ramp) Angle() float32 {
	return game.AngleBetween(r.normal, game.Up)
}

// SurfaceY returns the height of the ramp surface at the horizontal position of p, clamped to the ramp.
func (r *Ramp) SurfaceY(p mgl32.Vec3) float32 {
	t := mgl32.Clamp((r.Rise.Dot(mgl32.Vec3{p.X(), 0, p.Z()})-r.low)/r.run, 0, 1)
	return r.Bounds.Min().Y() + r.height()*t
}

func (r *Ramp) height() float32 {
	return r.Bounds.Max().Y() - r.Bounds.Min().Y()
}

// Covers returns true if the horizontal position of p lies over the ramp.
func (r *Ramp) Covers(p mgl32.Vec3) bool {
	return p.X() >= r.Bounds.Min().X() && p.X() <= r.Bounds.Max().X() &&
		p.Z() >= r.Bounds.Min().Z() && p.Z() <= r.Bounds.Max().Z()
}

// distance returns the signed distance from p to the ramp surface plane.
func (r *Ramp) distance(p mgl32.Vec3) float32 {
	return (p.Y() - r.SurfaceY(p)) * r.normal.Y()
}

// Body is a dynamic body attached to a box collider. Bodies slide horizontally with their velocity until
// damping stops them.
type Body struct {
	Velocity mgl32.Vec3
	// Damping is the fraction of velocity lost per second.
	Damping float32

	kinematic bool
}

// Kinematic ...
func (b *Body) Kinematic() bool {
	return b.kinematic
}

// SetVelocity ...
func (b *Body) SetVelocity(vel mgl32.Vec3) {
	b.Velocity = vel
}
