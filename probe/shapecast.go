package probe

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/physics"
)

// ShapeCastOptions configures a ShapeCast strategy.
type ShapeCastOptions struct {
	Radius     float32
	Distance   float32
	RayLength  float32
	SlopeLimit float32

	// RayOffsetA and RayOffsetB are world-space offsets from the probe origin of the two smoothing rays.
	RayOffsetA mgl32.Vec3
	RayOffsetB mgl32.Vec3

	Mask physics.Mask
}

// ShapeCast is the grounding strategy used with a kinematic capsule mover. The ground is found with a
// downward sphere sweep whose angle is smoothed by two auxiliary rays, and the ceiling with a sphere
// overlap test.
type ShapeCast struct {
	caster physics.Caster
	opts   ShapeCastOptions

	// Debug receives the probe rays when set.
	Debug DebugSink

	lastAngle float32
	lastDir   mgl32.Vec3
}

// NewShapeCast returns a ShapeCast strategy that casts against the given caster. A nil caster yields a
// strategy that always reports airborne with no ceiling.
func NewShapeCast(caster physics.Caster, opts ShapeCastOptions) *ShapeCast {
	return &ShapeCast{caster: caster, opts: opts}
}

// SetOptions replaces the probe options.
func (s *ShapeCast) SetOptions(opts ShapeCastOptions) {
	s.opts = opts
}

// Probe ...
func (s *ShapeCast) Probe(origin mgl32.Vec3, groundOffsetY, ceilingOffsetY float32) (GroundInfo, CeilingInfo) {
	if s.caster == nil {
		return s.stale(false), CeilingInfo{}
	}

	ceilingOrigin := origin.Add(mgl32.Vec3{0, ceilingOffsetY, 0})
	ceiling := CeilingInfo{Ceiling: s.caster.CheckSphere(ceilingOrigin, s.opts.Radius, s.opts.Mask)}

	groundOrigin := origin.Add(mgl32.Vec3{0, groundOffsetY, 0})
	hit, ok := s.caster.SphereCast(groundOrigin, s.opts.Radius, game.Down, s.opts.Distance, s.opts.Mask)
	if !ok {
		return s.stale(false), ceiling
	}

	angle := SlopeAngle(hit.Normal)
	rayA, hitA := s.ray(groundOrigin.Add(s.opts.RayOffsetA))
	rayB, hitB := s.ray(groundOrigin.Add(s.opts.RayOffsetB))
	angle = ResolveSlopeAngle(angle, rayA, rayB, hitA, hitB)

	s.lastAngle, s.lastDir = angle, SlopeDirection(hit.Normal)
	if s.Debug != nil && s.lastDir != (mgl32.Vec3{}) {
		s.Debug.Line(groundOrigin, groundOrigin.Add(s.lastDir.Mul(5)), ColourSlope)
	}
	return s.stale(true), ceiling
}

// ray casts a smoothing ray down from origin and returns the angle of the surface it hit.
func (s *ShapeCast) ray(origin mgl32.Vec3) (float32, bool) {
	hit, ok := s.caster.Raycast(origin, game.Down, s.opts.RayLength, s.opts.Mask)
	if !ok {
		return 0, false
	}
	if s.Debug != nil {
		s.Debug.Line(origin, hit.Point, ColourRay)
	}
	return SlopeAngle(hit.Normal), true
}

func (s *ShapeCast) stale(grounded bool) GroundInfo {
	return GroundInfo{
		Grounded:       grounded,
		SlopeAngle:     s.lastAngle,
		SlopeDirection: s.lastDir,
		Slipping:       Slipping(s.lastAngle, s.opts.SlopeLimit),
	}
}
