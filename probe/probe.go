package probe

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/physics"
)

// GroundInfo describes the surface beneath the body for a single step. When Grounded is false the
// slope fields hold the values of the last grounded probe and should not be relied on.
type GroundInfo struct {
	Grounded bool
	// SlopeAngle is the angle in degrees between the surface normal and the up axis.
	SlopeAngle float32
	// SlopeDirection is a unit vector on the contact plane along its steepest gradient, pointing
	// downhill. It is zero on flat ground.
	SlopeDirection mgl32.Vec3
	// Slipping is true if SlopeAngle is strictly greater than the slope limit.
	Slipping bool
}

// CeilingInfo describes the space above the body for a single step.
type CeilingInfo struct {
	Ceiling bool
}

// Strategy is a grounding strategy. Probe must not mutate state that would change the result of a second
// call made with the same arguments against unchanged geometry.
type Strategy interface {
	Probe(origin mgl32.Vec3, groundOffsetY, ceilingOffsetY float32) (GroundInfo, CeilingInfo)
}

// ContactObserver is implemented by strategies that derive their state from the contacts reported by the
// mover after each move.
type ContactObserver interface {
	Observe(contacts []physics.Contact)
}

// SlopeAngle returns the angle in degrees between a contact normal and the up axis.
func SlopeAngle(normal mgl32.Vec3) float32 {
	return game.AngleBetween(normal, game.Up)
}

// SlopeDirection returns cross(cross(normal, down), normal) normalized. The result lies on the contact
// plane along its steepest gradient and points downhill. A flat surface returns the zero vector.
func SlopeDirection(normal mgl32.Vec3) mgl32.Vec3 {
	dir, _ := game.SafeNormalize(normal.Cross(game.Down).Cross(normal))
	return dir
}

// ResolveSlopeAngle combines the sphere sweep angle with the angles of the two smoothing rays. With both
// rays present the median of the three is used, with one ray the mean of the two and with none the sphere
// angle is returned unmodified.
func ResolveSlopeAngle(sphere float32, rayA, rayB float32, hitA, hitB bool) float32 {
	switch {
	case hitA && hitB:
		return game.Median3(sphere, rayA, rayB)
	case hitA:
		return (sphere + rayA) / 2
	case hitB:
		// Either ray alone is enough for the mean, the second ray does not depend on the first.
		return (sphere + rayB) / 2
	default:
		return sphere
	}
}

// Slipping reports whether angle exceeds limit. The boundary itself is not slipping.
func Slipping(angle, limit float32) bool {
	return angle > limit
}
