package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/physics"
)

// Raycast casts a ray from origin along dir for at most length and returns the closest hit.
func (w *World) Raycast(origin, dir mgl32.Vec3, length float32, mask physics.Mask) (physics.Hit, bool) {
	return w.SphereCast(origin, 0, dir, length, mask)
}

// SphereCast sweeps a sphere from origin along dir for at most dist and returns the closest hit. Boxes are
// swept as boxes grown by the radius. Colliders the sphere already overlaps at origin are ignored.
func (w *World) SphereCast(origin mgl32.Vec3, radius float32, dir mgl32.Vec3, dist float32, mask physics.Mask) (physics.Hit, bool) {
	dir, ok := game.SafeNormalize(dir)
	if !ok || dist < 0 {
		return physics.Hit{}, false
	}

	var (
		best  physics.Hit
		found bool
	)
	w.each(mask, func(c *Collider) {
		var (
			hit physics.Hit
			ok  bool
		)
		if c.Ramp != nil {
			hit, ok = castRamp(c.Ramp, origin, radius, dir, dist)
		} else {
			hit, ok = castBox(c.Box, origin, radius, dir, dist)
		}
		if ok && (!found || hit.Distance < best.Distance) {
			hit.Collider = c.ID
			best, found = hit, true
		}
	})
	return best, found
}

// CheckSphere returns true if a sphere at center overlaps any collider.
func (w *World) CheckSphere(center mgl32.Vec3, radius float32, mask physics.Mask) bool {
	var overlap bool
	w.each(mask, func(c *Collider) {
		if overlap {
			return
		}
		if c.Ramp != nil {
			overlap = overlapsRamp(c.Ramp, center, radius)
			return
		}
		overlap = boxDistance(c.Box, center) < radius
	})
	return overlap
}

// castBox sweeps a sphere against a box by tracing its center against the box grown by the radius.
func castBox(bb cube.BBox, origin mgl32.Vec3, radius float32, dir mgl32.Vec3, dist float32) (physics.Hit, bool) {
	grown := bb.Grow(radius)
	if within(grown, origin) {
		return physics.Hit{}, false
	}
	result, ok := trace.BBoxIntercept(grown, origin, origin.Add(dir.Mul(dist)))
	if !ok {
		return physics.Hit{}, false
	}

	center := result.Position()
	normal := faceNormal(grown, center)
	return physics.Hit{
		Point:    center.Sub(normal.Mul(radius)),
		Normal:   normal,
		Distance: center.Sub(origin).Len(),
	}, true
}

// faceNormal returns the outward normal of the face of bb closest to p.
func faceNormal(bb cube.BBox, p mgl32.Vec3) mgl32.Vec3 {
	var (
		normal mgl32.Vec3
		best   = float32(math32.MaxFloat32)
	)
	for i := 0; i < 3; i++ {
		if d := math32.Abs(p[i] - bb.Min()[i]); d < best {
			best, normal = d, mgl32.Vec3{}
			normal[i] = -1
		}
		if d := math32.Abs(p[i] - bb.Max()[i]); d < best {
			best, normal = d, mgl32.Vec3{}
			normal[i] = 1
		}
	}
	return normal
}

// castRamp sweeps a sphere against the top surface of a ramp.
func castRamp(r *Ramp, origin mgl32.Vec3, radius float32, dir mgl32.Vec3, dist float32) (physics.Hit, bool) {
	n := r.Normal()
	approach := n.Dot(dir)
	if approach >= 0 {
		return physics.Hit{}, false
	}

	start := r.distance(origin)
	if start < radius {
		return physics.Hit{}, false
	}
	t := (start - radius) / -approach
	if t > dist {
		return physics.Hit{}, false
	}

	center := origin.Add(dir.Mul(t))
	point := center.Sub(n.Mul(radius))
	if !r.Covers(point) {
		return physics.Hit{}, false
	}
	return physics.Hit{Point: point, Normal: n, Distance: t}, true
}

// overlapsRamp returns true if a sphere at center touches the ramp surface or lies inside the ramp.
func overlapsRamp(r *Ramp, center mgl32.Vec3, radius float32) bool {
	if center.Y()+radius < r.Bounds.Min().Y() {
		return false
	}
	q := closestPoint(r.Bounds, center)
	q[1] = center.Y()
	if center.Sub(q).Len() >= radius {
		return false
	}
	return r.distance(q) < radius
}
