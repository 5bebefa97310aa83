package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the smallest vector magnitude that is still considered a direction.
const Epsilon float32 = 1e-5

var (
	// Up is the world-up axis.
	Up = mgl32.Vec3{0, 1, 0}
	// Down is the world-down axis.
	Down = mgl32.Vec3{0, -1, 0}
)

// Round32 will round a float32 to a given precision.
func Round32(val float32, precision int) float32 {
	pwr := math32.Pow(10, float32(precision))
	return math32.Round(val*pwr) / pwr
}

// RoundVec32 will round a 32-bit vector to a given precision.
func RoundVec32(v mgl32.Vec3, p int) mgl32.Vec3 {
	return mgl32.Vec3{Round32(v.X(), p), Round32(v.Y(), p), Round32(v.Z(), p)}
}

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// Lerp interpolates from a to b by t, where t is clamped to [0, 1].
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*mgl32.Clamp(t, 0, 1)
}

// LerpVec3 interpolates every component of a towards b by t, where t is clamped to [0, 1].
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(mgl32.Clamp(t, 0, 1)))
}

// SafeNormalize normalizes v, or returns the zero vector and false if v is too short to carry a direction.
func SafeNormalize(v mgl32.Vec3) (mgl32.Vec3, bool) {
	l := v.Len()
	if l <= Epsilon {
		return mgl32.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// ClampMagnitude shortens v to max if it is longer than max.
func ClampMagnitude(v mgl32.Vec3, max float32) mgl32.Vec3 {
	if l := v.Len(); l > max && l > Epsilon {
		return v.Mul(max / l)
	}
	return v
}

// AngleBetween returns the angle in degrees between a and b. Zero vectors yield 0.
func AngleBetween(a, b mgl32.Vec3) float32 {
	la, lb := a.Len(), b.Len()
	if la <= Epsilon || lb <= Epsilon {
		return 0
	}
	cos := mgl32.Clamp(a.Dot(b)/(la*lb), -1, 1)
	return mgl32.RadToDeg(math32.Acos(cos))
}

// SlerpVec3 spherically interpolates from a to b by t (clamped to [0, 1]). The direction is rotated
// along the great arc between the two and the magnitude is interpolated linearly.
func SlerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	t = mgl32.Clamp(t, 0, 1)
	la, lb := a.Len(), b.Len()
	if la <= Epsilon || lb <= Epsilon {
		return LerpVec3(a, b, t)
	}

	mag := la + (lb-la)*t
	na, nb := a.Mul(1/la), b.Mul(1/lb)
	axis, ok := SafeNormalize(na.Cross(nb))
	if !ok {
		if na.Dot(nb) > 0 {
			return na.Mul(mag)
		}
		// Opposite directions: any axis perpendicular to a works.
		axis, ok = SafeNormalize(na.Cross(Up))
		if !ok {
			axis = mgl32.Vec3{1, 0, 0}
		}
	}

	angle := math32.Acos(mgl32.Clamp(na.Dot(nb), -1, 1))
	return mgl32.QuatRotate(angle*t, axis).Rotate(na).Mul(mag)
}

// Median3 returns the median of three values.
func Median3(a, b, c float32) float32 {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	if a > b {
		return a
	}
	return b
}

// YawRotation returns the rotation about the world-up axis for the given yaw in degrees.
func YawRotation(yaw float32) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(yaw), Up)
}

// PitchRotation returns the rotation about the local lateral axis for the given pitch in degrees.
func PitchRotation(pitch float32) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(pitch), mgl32.Vec3{1, 0, 0})
}

// BodyAxes returns the right and forward axes of a body rotated by yaw degrees about the up axis.
func BodyAxes(yaw float32) (right, forward mgl32.Vec3) {
	r := mgl32.DegToRad(yaw)
	s, c := math32.Sin(r), math32.Cos(r)
	return mgl32.Vec3{c, 0, -s}, mgl32.Vec3{s, 0, c}
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec3 mgl32.Vec3) float32 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}
