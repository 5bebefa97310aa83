package physics

import "github.com/go-gl/mathgl/mgl32"

// Mask is a bit set of collision layers. A collider is considered by a query if its layer bits
// intersect the query mask.
type Mask uint32

const (
	LayerDefault Mask = 1 << iota
	LayerStatic
	LayerDynamic
	LayerPlayer

	// MaskAll selects every layer.
	MaskAll Mask = ^Mask(0)
)

// Has returns true if any bit of o is set in m.
func (m Mask) Has(o Mask) bool {
	return m&o != 0
}

// ColliderID identifies a collider registered with a physics world.
type ColliderID uint64

// Hit is the result of a ray or shape cast that intersected a collider.
type Hit struct {
	Collider ColliderID
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
}

// Caster provides the casting primitives the ground and ceiling probes are built on.
type Caster interface {
	// SphereCast sweeps a sphere of the given radius from origin along dir for at most dist and returns
	// the first collider it touches.
	SphereCast(origin mgl32.Vec3, radius float32, dir mgl32.Vec3, dist float32, mask Mask) (Hit, bool)
	// CheckSphere returns true if a sphere at center overlaps any collider.
	CheckSphere(center mgl32.Vec3, radius float32, mask Mask) bool
	// Raycast casts a ray from origin along dir for at most length.
	Raycast(origin, dir mgl32.Vec3, length float32, mask Mask) (Hit, bool)
}

// Capsule describes an upright capsule. Center is the world position of its midpoint.
type Capsule struct {
	Center mgl32.Vec3
	Height float32
	Radius float32
}

// Bottom returns the lowest point of the capsule.
func (c Capsule) Bottom() mgl32.Vec3 {
	return c.Center.Sub(mgl32.Vec3{0, c.Height / 2, 0})
}

// Top returns the highest point of the capsule.
func (c Capsule) Top() mgl32.Vec3 {
	return c.Center.Add(mgl32.Vec3{0, c.Height / 2, 0})
}

// Pushable is a dynamic body that may be pushed by the controller.
type Pushable interface {
	Kinematic() bool
	SetVelocity(vel mgl32.Vec3)
}

// Contact is reported by a Mover for every collider the capsule touched while moving.
type Contact struct {
	Collider ColliderID
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	// MoveDirection is the direction the capsule was moving in when it touched the collider.
	MoveDirection mgl32.Vec3
	// Body is the dynamic body attached to the collider, if any.
	Body Pushable
}

// MoveResult is the outcome of a Mover.Move call.
type MoveResult struct {
	Applied  mgl32.Vec3
	Contacts []Contact
}

// Mover moves a capsule by a desired displacement, resolving collisions on the way.
type Mover interface {
	Move(capsule Capsule, displacement mgl32.Vec3, mask Mask) MoveResult
}

// StanceAware is implemented by movers that react to the body crouching.
type StanceAware interface {
	SetCrouching(crouching bool)
}
