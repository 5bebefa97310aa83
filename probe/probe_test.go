package probe

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/physics"
)

func approxEqual(t *testing.T, got, want, eps float32) {
	t.Helper()
	if math32.Abs(got-want) > eps {
		t.Fatalf("got %v, want %v (eps %v)", got, want, eps)
	}
}

// normalForAngle returns a unit normal tilted from up by deg degrees about the Z axis.
func normalForAngle(deg float32) mgl32.Vec3 {
	r := mgl32.DegToRad(deg)
	return mgl32.Vec3{math32.Sin(r), math32.Cos(r), 0}
}

type mockCaster struct {
	sphere    *physics.Hit
	rayA      *physics.Hit
	rayB      *physics.Hit
	ceiling   bool
	rayCalls  int
	lastCheck mgl32.Vec3
}

func (m *mockCaster) SphereCast(origin mgl32.Vec3, _ float32, _ mgl32.Vec3, _ float32, _ physics.Mask) (physics.Hit, bool) {
	if m.sphere == nil {
		return physics.Hit{}, false
	}
	return *m.sphere, true
}

func (m *mockCaster) CheckSphere(center mgl32.Vec3, _ float32, _ physics.Mask) bool {
	m.lastCheck = center
	return m.ceiling
}

// Raycast answers with rayA for origins with a negative X offset and rayB otherwise.
func (m *mockCaster) Raycast(origin, _ mgl32.Vec3, _ float32, _ physics.Mask) (physics.Hit, bool) {
	m.rayCalls++
	hit := m.rayB
	if origin.X() < 0 {
		hit = m.rayA
	}
	if hit == nil {
		return physics.Hit{}, false
	}
	return *hit, true
}

func hitAt(deg float32) *physics.Hit {
	return &physics.Hit{Normal: normalForAngle(deg)}
}

func defaultOptions() ShapeCastOptions {
	return ShapeCastOptions{
		Radius:     0.25,
		Distance:   0.75,
		RayLength:  0.75,
		SlopeLimit: 45,
		RayOffsetA: mgl32.Vec3{-0.2, 0, 0.16},
		RayOffsetB: mgl32.Vec3{0.2, 0, -0.16},
		Mask:       physics.MaskAll,
	}
}

func TestResolveSlopeAngleMedian(t *testing.T) {
	orders := [][3]float32{
		{10, 20, 30}, {10, 30, 20}, {20, 10, 30},
		{20, 30, 10}, {30, 10, 20}, {30, 20, 10},
	}
	for _, o := range orders {
		if got := ResolveSlopeAngle(o[0], o[1], o[2], true, true); got != 20 {
			t.Fatalf("median of %v: got %v, want 20", o, got)
		}
	}
}

func TestResolveSlopeAngleMean(t *testing.T) {
	if got := ResolveSlopeAngle(12, 31, 0, true, false); got != (12+31)/float32(2) {
		t.Fatalf("mean with first ray: got %v", got)
	}
	if got := ResolveSlopeAngle(12, 0, 31, false, true); got != (12+31)/float32(2) {
		t.Fatalf("mean with second ray: got %v", got)
	}
	if got := ResolveSlopeAngle(12, 50, 60, false, false); got != 12 {
		t.Fatalf("sphere only: got %v", got)
	}
}

func TestSlippingBoundary(t *testing.T) {
	tests := []struct {
		angle float32
		want  bool
	}{
		{0, false},
		{44.9, false},
		{45, false},
		{45.01, true},
		{89, true},
	}
	for _, tt := range tests {
		if got := Slipping(tt.angle, 45); got != tt.want {
			t.Fatalf("Slipping(%v, 45) = %v, want %v", tt.angle, got, tt.want)
		}
	}
}

func TestSlopeDirection(t *testing.T) {
	if dir := SlopeDirection(mgl32.Vec3{0, 1, 0}); dir != (mgl32.Vec3{}) {
		t.Fatalf("expected zero slope direction on flat ground, got %v", dir)
	}

	// Normal leaning towards +X: the surface descends towards +X.
	dir := SlopeDirection(normalForAngle(30))
	approxEqual(t, dir.Len(), 1, 1e-5)
	if dir.X() <= 0 || dir.Y() >= 0 {
		t.Fatalf("expected downhill direction towards +X, got %v", dir)
	}
	approxEqual(t, dir.Dot(normalForAngle(30)), 0, 1e-5)
}

func TestShapeCastSmoothing(t *testing.T) {
	tests := []struct {
		name string
		rayA *physics.Hit
		rayB *physics.Hit
		want float32
	}{
		{"median", hitAt(60), hitAt(5), 10},
		{"mean first ray", hitAt(30), nil, 20},
		{"mean second ray", nil, hitAt(30), 20},
		{"sphere only", nil, nil, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caster := &mockCaster{sphere: hitAt(10), rayA: tt.rayA, rayB: tt.rayB}
			ground, _ := NewShapeCast(caster, defaultOptions()).Probe(mgl32.Vec3{}, 0.33, 1.83)
			if !ground.Grounded {
				t.Fatalf("expected grounded")
			}
			approxEqual(t, ground.SlopeAngle, tt.want, 1e-3)
		})
	}
}

func TestShapeCastRaysIgnoredWithoutSphereHit(t *testing.T) {
	caster := &mockCaster{rayA: hitAt(60), rayB: hitAt(60)}
	ground, _ := NewShapeCast(caster, defaultOptions()).Probe(mgl32.Vec3{}, 0.33, 1.83)
	if ground.Grounded {
		t.Fatalf("expected airborne without a sphere hit")
	}
	if ground.SlopeAngle != 0 || caster.rayCalls != 0 {
		t.Fatalf("expected rays to be skipped, angle=%v calls=%v", ground.SlopeAngle, caster.rayCalls)
	}
}

func TestShapeCastStaleOnMiss(t *testing.T) {
	caster := &mockCaster{sphere: hitAt(50)}
	s := NewShapeCast(caster, defaultOptions())
	ground, _ := s.Probe(mgl32.Vec3{}, 0.33, 1.83)
	if !ground.Grounded || !ground.Slipping {
		t.Fatalf("expected grounded and slipping, got %+v", ground)
	}

	caster.sphere = nil
	ground, _ = s.Probe(mgl32.Vec3{}, 0.33, 1.83)
	if ground.Grounded {
		t.Fatalf("expected airborne")
	}
	approxEqual(t, ground.SlopeAngle, 50, 1e-3)
}

func TestShapeCastCeiling(t *testing.T) {
	caster := &mockCaster{ceiling: true}
	_, ceiling := NewShapeCast(caster, defaultOptions()).Probe(mgl32.Vec3{1, 2, 3}, 0.33, 1.83)
	if !ceiling.Ceiling {
		t.Fatalf("expected ceiling")
	}
	approxEqual(t, caster.lastCheck.X(), 1, 1e-5)
	approxEqual(t, caster.lastCheck.Y(), 3.83, 1e-5)
	approxEqual(t, caster.lastCheck.Z(), 3, 1e-5)
}

func TestShapeCastIdempotent(t *testing.T) {
	for _, caster := range []*mockCaster{
		{sphere: hitAt(20), rayA: hitAt(25), rayB: hitAt(5), ceiling: true},
		{},
	} {
		s := NewShapeCast(caster, defaultOptions())
		g1, c1 := s.Probe(mgl32.Vec3{0, 1, 0}, 0.33, 1.83)
		g2, c2 := s.Probe(mgl32.Vec3{0, 1, 0}, 0.33, 1.83)
		if g1 != g2 || c1 != c2 {
			t.Fatalf("probe not idempotent: %+v/%+v vs %+v/%+v", g1, c1, g2, c2)
		}
	}
}

func TestShapeCastNilCaster(t *testing.T) {
	ground, ceiling := NewShapeCast(nil, defaultOptions()).Probe(mgl32.Vec3{}, 0.33, 1.83)
	if ground.Grounded || ceiling.Ceiling {
		t.Fatalf("expected airborne with no ceiling, got %+v %+v", ground, ceiling)
	}
}

type lineRecorder struct {
	lines int
}

func (l *lineRecorder) Line(mgl32.Vec3, mgl32.Vec3, Colour) {
	l.lines++
}

func TestShapeCastDebugLines(t *testing.T) {
	caster := &mockCaster{sphere: hitAt(20), rayA: hitAt(20), rayB: hitAt(20)}
	rec := &lineRecorder{}
	s := NewShapeCast(caster, defaultOptions())
	g1, _ := s.Probe(mgl32.Vec3{}, 0.33, 1.83)

	s.Debug = rec
	g2, _ := s.Probe(mgl32.Vec3{}, 0.33, 1.83)
	if rec.lines != 3 {
		t.Fatalf("expected 3 debug lines, got %v", rec.lines)
	}
	if g1 != g2 {
		t.Fatalf("debug lines changed the probe result")
	}
}

func TestContactsGrace(t *testing.T) {
	c := NewContacts(nil, ContactOptions{MaxGroundAngle: 75, SlopeLimit: 45, GraceSteps: 3})
	floor := []physics.Contact{{Normal: normalForAngle(10)}}

	c.Observe(floor)
	if g, _ := c.Probe(mgl32.Vec3{}, 0, 0); !g.Grounded {
		t.Fatalf("expected grounded after floor contact")
	}
	for i := 0; i < 2; i++ {
		c.Observe(nil)
		if g, _ := c.Probe(mgl32.Vec3{}, 0, 0); !g.Grounded {
			t.Fatalf("grounded released early after %v steps", i+1)
		}
	}
	c.Observe(nil)
	if g, _ := c.Probe(mgl32.Vec3{}, 0, 0); g.Grounded {
		t.Fatalf("expected grounded to be released after grace period")
	}
}

func TestContactsSlopeAndCeiling(t *testing.T) {
	c := NewContacts(nil, ContactOptions{MaxGroundAngle: 75, SlopeLimit: 45, GraceSteps: 3})
	c.Observe([]physics.Contact{
		{Normal: normalForAngle(60)},
		{Normal: mgl32.Vec3{0, -1, 0}},
		{Normal: mgl32.Vec3{1, 0, 0}},
	})
	g, ceiling := c.Probe(mgl32.Vec3{}, 0, 0)
	if !g.Grounded || !g.Slipping || !ceiling.Ceiling {
		t.Fatalf("unexpected state %+v %+v", g, ceiling)
	}
	approxEqual(t, g.SlopeAngle, 60, 1e-3)

	g2, c2 := c.Probe(mgl32.Vec3{}, 0, 0)
	if g != g2 || ceiling != c2 {
		t.Fatalf("probe not idempotent")
	}
}
