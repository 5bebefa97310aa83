package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// clipEpsilon is the distance below which two faces are considered touching.
const clipEpsilon = 1e-6

// clipResult is the outcome of clipping a moving box against a stationary one along a single axis.
type clipResult struct {
	vel mgl32.Vec3
	// axis is the axis the velocity was changed on, or -1 if it was left untouched.
	axis int
	// normal is the direction, along axis, that the stationary box pushed the moving box in.
	normal float32
}

// clip clips vel so that moving does not pass into stationary. Only one component of vel is expected to be
// non-zero: the axis currently being resolved. Boxes that already overlap on every axis are pushed apart
// along the axis of least penetration.
func clip(stationary, moving cube.BBox, vel mgl32.Vec3) clipResult {
	res := clipResult{vel: vel, axis: -1}
	if stationary.Min() == stationary.Max() {
		return res
	}

	var (
		depth     [3]float32
		gap       [3]float32
		pushDir   [3]float32
		separated = -1
	)
	for i := 0; i < 3; i++ {
		// below is how far moving reaches past the min face, above how far it reaches past the max face.
		below := snapZero(moving.Max()[i] - stationary.Min()[i])
		above := snapZero(stationary.Max()[i] - moving.Min()[i])

		switch {
		case below <= 0:
			if separated != -1 {
				return res
			}
			separated, gap[i], pushDir[i] = i, below, -1
		case above <= 0:
			if separated != -1 {
				return res
			}
			separated, gap[i], pushDir[i] = i, above, 1
		case below < above:
			depth[i], pushDir[i] = below, -1
		default:
			depth[i], pushDir[i] = above, 1
		}
	}

	if separated == -1 {
		best := 0
		for i := 1; i < 3; i++ {
			if depth[i] < depth[best] {
				best = i
			}
		}
		out := depth[best] * pushDir[best]
		if out > 0 {
			res.vel[best] = math32.Max(out, vel[best])
		} else {
			res.vel[best] = math32.Min(out, vel[best])
		}
		res.axis, res.normal = best, pushDir[best]
		return res
	}

	// The boxes only meet along the separating axis if the velocity closes the gap.
	if gap[separated]-pushDir[separated]*vel[separated] <= 0 {
		return res
	}
	res.vel[separated] = gap[separated] * pushDir[separated]
	res.axis, res.normal = separated, pushDir[separated]
	return res
}

func snapZero(v float32) float32 {
	if math32.Abs(v) <= clipEpsilon {
		return 0
	}
	return v
}

// boxDistance returns the distance from v to the closest point of bb, or 0 if v is inside it.
func boxDistance(bb cube.BBox, v mgl32.Vec3) float32 {
	return closestPoint(bb, v).Sub(v).Len()
}

// closestPoint returns the point of bb closest to v.
func closestPoint(bb cube.BBox, v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		mgl32.Clamp(v.X(), bb.Min().X(), bb.Max().X()),
		mgl32.Clamp(v.Y(), bb.Min().Y(), bb.Max().Y()),
		mgl32.Clamp(v.Z(), bb.Min().Z(), bb.Max().Z()),
	}
}

// within returns true if v lies inside bb, faces included.
func within(bb cube.BBox, v mgl32.Vec3) bool {
	return v.X() >= bb.Min().X() && v.X() <= bb.Max().X() &&
		v.Y() >= bb.Min().Y() && v.Y() <= bb.Max().Y() &&
		v.Z() >= bb.Min().Z() && v.Z() <= bb.Max().Z()
}
