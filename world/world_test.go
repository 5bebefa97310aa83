package world

import (
	"io"
	"testing"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/physics"
	"github.com/sirupsen/logrus"
)

var down = mgl32.Vec3{0, -1, 0}

func approxEqual(t *testing.T, got, want, eps float32) {
	t.Helper()
	if math32.Abs(got-want) > eps {
		t.Fatalf("got %v, want %v (eps %v)", got, want, eps)
	}
}

func newWorld() *World {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(log)
}

func floor(w *World) physics.ColliderID {
	return w.AddBox(cube.Box(-50, -1, -50, 50, 0, 50), physics.LayerStatic)
}

func TestRaycastBox(t *testing.T) {
	w := newWorld()
	id := floor(w)

	hit, ok := w.Raycast(mgl32.Vec3{0, 1, 0}, down, 2, physics.MaskAll)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if hit.Collider != id || hit.Normal != (mgl32.Vec3{0, 1, 0}) {
		t.Fatalf("unexpected hit %+v", hit)
	}
	approxEqual(t, hit.Distance, 1, 1e-5)

	if _, ok := w.Raycast(mgl32.Vec3{0, 1, 0}, down, 0.5, physics.MaskAll); ok {
		t.Fatalf("hit beyond the ray length")
	}
	if _, ok := w.Raycast(mgl32.Vec3{0, 1, 0}, down, 2, physics.LayerDynamic); ok {
		t.Fatalf("hit a collider outside of the mask")
	}
}

func TestSphereCastBox(t *testing.T) {
	w := newWorld()
	floor(w)

	hit, ok := w.SphereCast(mgl32.Vec3{0, 1, 0}, 0.25, down, 2, physics.MaskAll)
	if !ok {
		t.Fatalf("expected a hit")
	}
	approxEqual(t, hit.Distance, 0.75, 1e-5)
	approxEqual(t, hit.Point.Y(), 0, 1e-5)

	// Spheres overlapping a collider at their origin ignore it.
	if _, ok := w.SphereCast(mgl32.Vec3{0, 0.1, 0}, 0.25, down, 2, physics.MaskAll); ok {
		t.Fatalf("hit a collider overlapping the origin")
	}
}

func TestCastRamp(t *testing.T) {
	w := newWorld()
	w.AddRamp(cube.Box(0, 0, 0, 4, 2, 4), mgl32.Vec3{1, 0, 0}, physics.LayerStatic)

	hit, ok := w.Raycast(mgl32.Vec3{2, 5, 2}, down, 10, physics.MaskAll)
	if !ok {
		t.Fatalf("expected a hit")
	}
	approxEqual(t, hit.Distance, 4, 1e-4)
	approxEqual(t, hit.Point.Y(), 1, 1e-4)
	approxEqual(t, mgl32.RadToDeg(math32.Acos(hit.Normal.Y())), mgl32.RadToDeg(math32.Atan(0.5)), 1e-3)
	if hit.Normal.X() >= 0 {
		t.Fatalf("ramp rising along +X should lean its normal towards -X, got %v", hit.Normal)
	}

	if _, ok := w.Raycast(mgl32.Vec3{5, 5, 2}, down, 10, physics.MaskAll); ok {
		t.Fatalf("hit the ramp outside of its footprint")
	}
}

func TestCheckSphere(t *testing.T) {
	w := newWorld()
	w.AddBox(cube.Box(0, 2, 0, 1, 3, 1), physics.LayerStatic)
	w.AddRamp(cube.Box(10, 0, 0, 14, 2, 4), mgl32.Vec3{1, 0, 0}, physics.LayerStatic)

	tests := []struct {
		name   string
		center mgl32.Vec3
		want   bool
	}{
		{"below box", mgl32.Vec3{0.5, 1.8, 0.5}, true},
		{"clear of box", mgl32.Vec3{0.5, 1.5, 0.5}, false},
		{"on ramp", mgl32.Vec3{12, 1.2, 2}, true},
		{"above ramp", mgl32.Vec3{12, 1.5, 2}, false},
		{"inside ramp", mgl32.Vec3{12, 0.5, 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.CheckSphere(tt.center, 0.25, physics.MaskAll); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueriesAreDeterministic(t *testing.T) {
	w := newWorld()
	floor(w)
	w.AddBox(cube.Box(-1, 0, -1, 1, 0.5, 1), physics.LayerStatic)
	w.AddRamp(cube.Box(-2, 0, -2, 2, 0.5, 2), mgl32.Vec3{0, 0, 1}, physics.LayerStatic)

	first, ok1 := w.SphereCast(mgl32.Vec3{0, 2, 0}, 0.25, down, 5, physics.MaskAll)
	second, ok2 := w.SphereCast(mgl32.Vec3{0, 2, 0}, 0.25, down, 5, physics.MaskAll)
	if ok1 != ok2 || first != second {
		t.Fatalf("sphere cast not deterministic: %+v vs %+v", first, second)
	}
}

func TestCapsuleMoverLands(t *testing.T) {
	w := newWorld()
	id := floor(w)

	capsule := physics.Capsule{Center: mgl32.Vec3{0, 2, 0}, Height: 2, Radius: 0.5}
	res := w.CapsuleMover(45).Move(capsule, mgl32.Vec3{0, -3, 0}, physics.MaskAll)
	approxEqual(t, res.Applied.Y(), -1, 1e-5)
	if len(res.Contacts) != 1 || res.Contacts[0].Collider != id {
		t.Fatalf("unexpected contacts %+v", res.Contacts)
	}
	if res.Contacts[0].Normal != (mgl32.Vec3{0, 1, 0}) {
		t.Fatalf("unexpected contact normal %v", res.Contacts[0].Normal)
	}
	if res.Contacts[0].Body != nil {
		t.Fatalf("static collider reported a body")
	}
}

func TestCapsuleMoverBlockedByWall(t *testing.T) {
	w := newWorld()
	floor(w)
	wall := w.AddBox(cube.Box(2, 0, -5, 3, 5, 5), physics.LayerStatic)

	capsule := physics.Capsule{Center: mgl32.Vec3{0, 1, 0}, Height: 2, Radius: 0.5}
	res := w.CapsuleMover(45).Move(capsule, mgl32.Vec3{3, 0, 1}, physics.MaskAll)
	approxEqual(t, res.Applied.X(), 1.5, 1e-5)
	approxEqual(t, res.Applied.Z(), 1, 1e-5)

	var found bool
	for _, c := range res.Contacts {
		if c.Collider == wall {
			found = true
			if c.Normal != (mgl32.Vec3{-1, 0, 0}) {
				t.Fatalf("unexpected wall normal %v", c.Normal)
			}
		}
	}
	if !found {
		t.Fatalf("wall contact not reported: %+v", res.Contacts)
	}
}

func TestCapsuleMoverRamps(t *testing.T) {
	w := newWorld()
	w.AddRamp(cube.Box(0, 0, -5, 4, 2, 5), mgl32.Vec3{1, 0, 0}, physics.LayerStatic)
	w.AddRamp(cube.Box(10, 0, -5, 12, 4, 5), mgl32.Vec3{1, 0, 0}, physics.LayerStatic)
	mover := w.CapsuleMover(45)

	// Resting on the gentle ramp: the surface holds the capsule in place.
	gentle := NewRamp(cube.Box(0, 0, -5, 4, 2, 5), mgl32.Vec3{1, 0, 0})
	base := 1 + 0.5/gentle.Normal().Y()
	capsule := physics.Capsule{Center: mgl32.Vec3{2, base + 0.5, 0}, Height: 2, Radius: 0.5}
	res := mover.Move(capsule, mgl32.Vec3{0, -0.1, 0}, physics.MaskAll)
	approxEqual(t, res.Applied.X(), 0, 1e-5)
	approxEqual(t, res.Applied.Y(), 0, 1e-4)
	if len(res.Contacts) != 1 {
		t.Fatalf("expected a ramp contact, got %+v", res.Contacts)
	}

	// On the steep ramp the capsule is pushed out along the normal and slides downhill.
	steep := NewRamp(cube.Box(10, 0, -5, 12, 4, 5), mgl32.Vec3{1, 0, 0})
	base = 2 + 0.5/steep.Normal().Y()
	capsule = physics.Capsule{Center: mgl32.Vec3{11, base + 0.5, 0}, Height: 2, Radius: 0.5}
	res = mover.Move(capsule, mgl32.Vec3{0, -0.1, 0}, physics.MaskAll)
	if res.Applied.X() >= 0 {
		t.Fatalf("expected to slide towards -X, applied %v", res.Applied)
	}
}

// landedRigidMover returns a rigid mover that has already settled on the floor of w.
func landedRigidMover(t *testing.T, w *World, capsule physics.Capsule) *RigidMover {
	t.Helper()
	mover := w.RigidMover(0.02, 45)
	mover.Move(capsule, mgl32.Vec3{0, -0.01, 0}, physics.MaskAll)
	if !mover.Grounded() {
		t.Fatalf("rigid mover did not land")
	}
	return mover
}

func TestRigidMoverAccelerates(t *testing.T) {
	w := newWorld()
	floor(w)
	capsule := physics.Capsule{Center: mgl32.Vec3{0, 1, 0}, Height: 2, Radius: 0.5}
	mover := landedRigidMover(t, w, capsule)

	// A request of 5 m/s is approached at 90 m/s², not applied outright.
	res := mover.Move(capsule, mgl32.Vec3{0.1, -0.01, 0}, physics.MaskAll)
	approxEqual(t, res.Applied.X(), 0.036, 1e-5)
	approxEqual(t, res.Applied.Y(), 0, 1e-6)
	approxEqual(t, mover.Velocity().X(), 1.8, 1e-4)

	for i := 0; i < 3; i++ {
		res = mover.Move(capsule, mgl32.Vec3{0.1, -0.01, 0}, physics.MaskAll)
	}
	approxEqual(t, res.Applied.X(), 0.1, 1e-5)
	if len(res.Contacts) != 1 {
		t.Fatalf("expected a floor contact, got %+v", res.Contacts)
	}
}

func TestRigidMoverCounterMovement(t *testing.T) {
	w := newWorld()
	floor(w)
	capsule := physics.Capsule{Center: mgl32.Vec3{0, 1, 0}, Height: 2, Radius: 0.5}
	mover := landedRigidMover(t, w, capsule)
	for i := 0; i < 5; i++ {
		mover.Move(capsule, mgl32.Vec3{0.1, -0.01, 0}, physics.MaskAll)
	}

	// Without input the body keeps part of its momentum and is damped by counter-movement.
	res := mover.Move(capsule, mgl32.Vec3{0, -0.01, 0}, physics.MaskAll)
	approxEqual(t, res.Applied.X(), 5*0.685*0.02, 1e-4)

	for i := 0; i < 30; i++ {
		res = mover.Move(capsule, mgl32.Vec3{0, -0.01, 0}, physics.MaskAll)
	}
	if v := mover.Velocity().X(); v > 0.01 || v < 0 {
		t.Fatalf("expected counter-movement to stop the body, velocity %v", mover.Velocity())
	}

	// Driving sideways damps the old direction while accelerating along the new one.
	for i := 0; i < 5; i++ {
		mover.Move(capsule, mgl32.Vec3{0.1, -0.01, 0}, physics.MaskAll)
	}
	mover.Move(capsule, mgl32.Vec3{0, -0.01, 0.1}, physics.MaskAll)
	approxEqual(t, mover.Velocity().X(), 5*0.685, 1e-3)
	approxEqual(t, mover.Velocity().Z(), 1.8, 1e-4)
}

func TestRigidMoverKeepsMomentumInAir(t *testing.T) {
	w := newWorld()
	mover := w.RigidMover(0.02, 45)
	capsule := physics.Capsule{Center: mgl32.Vec3{0, 10, 0}, Height: 2, Radius: 0.5}

	for i := 0; i < 3; i++ {
		mover.Move(capsule, mgl32.Vec3{0.1, 0, 0}, physics.MaskAll)
	}
	// Airborne input drives at half the acceleration.
	approxEqual(t, mover.Velocity().X(), 2.7, 1e-4)

	for i := 0; i < 2; i++ {
		res := mover.Move(capsule, mgl32.Vec3{0, -0.1, 0}, physics.MaskAll)
		approxEqual(t, res.Applied.X(), 0.054, 1e-5)
		approxEqual(t, res.Applied.Y(), -0.1, 1e-5)
	}
}

func TestRigidMoverSlide(t *testing.T) {
	w := newWorld()
	floor(w)
	capsule := physics.Capsule{Center: mgl32.Vec3{0, 1, 0}, Height: 2, Radius: 0.5}
	mover := landedRigidMover(t, w, capsule)
	for i := 0; i < 5; i++ {
		mover.Move(capsule, mgl32.Vec3{0.1, -0.01, 0}, physics.MaskAll)
	}

	mover.SetCrouching(true)
	approxEqual(t, mover.Velocity().X(), 13, 1e-3)
	mover.SetCrouching(true)
	approxEqual(t, mover.Velocity().X(), 13, 1e-3)

	// Crouched on the ground input is ignored and the slide loses 18 m/s².
	mover.Move(capsule, mgl32.Vec3{0, -0.01, 0.1}, physics.MaskAll)
	approxEqual(t, mover.Velocity().X(), 12.64, 1e-3)
	approxEqual(t, mover.Velocity().Z(), 0, 1e-6)
}

func TestRigidMoverMaxSpeed(t *testing.T) {
	w := newWorld()
	floor(w)
	capsule := physics.Capsule{Center: mgl32.Vec3{0, 1, 0}, Height: 2, Radius: 0.5}
	mover := landedRigidMover(t, w, capsule)
	mover.Options.MaxSpeed = 3

	for i := 0; i < 10; i++ {
		mover.Move(capsule, mgl32.Vec3{0.1, -0.01, 0}, physics.MaskAll)
	}
	approxEqual(t, mover.Velocity().X(), 3, 1e-4)
}

func TestRigidMoverCarriesRampMomentum(t *testing.T) {
	w := newWorld()
	w.AddRamp(cube.Box(10, 0, -5, 12, 4, 5), mgl32.Vec3{1, 0, 0}, physics.LayerStatic)
	steep := NewRamp(cube.Box(10, 0, -5, 12, 4, 5), mgl32.Vec3{1, 0, 0})
	base := 2 + 0.5/steep.Normal().Y()
	capsule := physics.Capsule{Center: mgl32.Vec3{11, base + 0.5, 0}, Height: 2, Radius: 0.5}

	rigid, kinematic := w.RigidMover(0.02, 45), w.CapsuleMover(45)
	rigid.Move(capsule, mgl32.Vec3{0, -0.1, 0}, physics.MaskAll)
	if rigid.Grounded() {
		t.Fatalf("a ramp steeper than the slope limit is not ground")
	}

	// The push off the ramp keeps the body moving downhill even when nothing is requested.
	if res := rigid.Move(capsule, mgl32.Vec3{}, physics.MaskAll); res.Applied.X() >= 0 {
		t.Fatalf("expected the rigid body to keep sliding towards -X, applied %v", res.Applied)
	}
	if res := kinematic.Move(capsule, mgl32.Vec3{}, physics.MaskAll); math32.Abs(res.Applied.X()) > 1e-4 {
		t.Fatalf("kinematic capsule moved without a request: %v", res.Applied)
	}
}

func TestBodiesArePushedAndDamped(t *testing.T) {
	w := newWorld()
	floor(w)
	id, body := w.AddBody(cube.Box(1, 0, -0.5, 2, 1, 0.5), 1, false)
	stillID, still := w.AddBody(cube.Box(5, 0, -0.5, 6, 1, 0.5), 1, true)

	capsule := physics.Capsule{Center: mgl32.Vec3{0, 1, 0}, Height: 2, Radius: 0.5}
	res := w.CapsuleMover(45).Move(capsule, mgl32.Vec3{1, 0, 0}, physics.MaskAll)
	var contact *physics.Contact
	for i := range res.Contacts {
		if res.Contacts[i].Collider == id {
			contact = &res.Contacts[i]
		}
	}
	if contact == nil || contact.Body == nil || contact.Body.Kinematic() {
		t.Fatalf("expected a dynamic body contact, got %+v", res.Contacts)
	}

	contact.Body.SetVelocity(mgl32.Vec3{2, 0, 0})
	still.SetVelocity(mgl32.Vec3{2, 0, 0})
	w.Step(0.5)

	c, _ := w.Collider(id)
	approxEqual(t, c.Box.Min().X(), 2, 1e-5)
	approxEqual(t, body.Velocity.X(), 1, 1e-5)

	other, _ := w.Collider(stillID)
	approxEqual(t, other.Box.Min().X(), 5, 1e-5)
}

func TestRemove(t *testing.T) {
	w := newWorld()
	id := floor(w)
	if !w.Remove(id) || w.Len() != 0 {
		t.Fatalf("collider not removed")
	}
	if w.Remove(id) {
		t.Fatalf("removed a collider twice")
	}
	if _, ok := w.Raycast(mgl32.Vec3{0, 1, 0}, down, 2, physics.MaskAll); ok {
		t.Fatalf("hit a removed collider")
	}
}
