package telemetry

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/movement"
)

// readoutPrecision is the number of digits values in a readout are rounded to.
const readoutPrecision = 3

// Readout is an ordered set of named values describing a controller at a single point in time.
type Readout struct {
	fields *orderedmap.OrderedMap[string, any]
}

// NewReadout returns an empty readout.
func NewReadout() *Readout {
	return &Readout{fields: orderedmap.NewOrderedMap[string, any]()}
}

// Read builds the readout of a controller: its position, the velocity derived from its position delta and
// the outcome of its last step.
func Read(c *movement.Controller) *Readout {
	r := NewReadout()
	last := c.LastStep()

	r.SetVec("pos", c.Position())
	r.SetVec("vel", c.Velocity())
	r.SetFloat("speed", last.Speed)
	r.Set("grounded", last.Ground.Grounded)
	if last.Ground.Grounded {
		r.SetFloat("slope", last.Ground.SlopeAngle)
		r.Set("slipping", last.Ground.Slipping)
	}
	r.Set("ceiling", last.Ceiling.Ceiling)
	r.Set("sliding", c.Slide().Sliding)
	r.SetFloat("height", c.Body().Height)
	r.SetFloat("yaw", c.Body().Yaw)
	r.SetFloat("pitch", c.Pitch())
	return r
}

// Set sets a field of the readout. Fields keep the position they were first set at.
func (r *Readout) Set(key string, value any) {
	r.fields.Set(key, value)
}

// SetFloat sets a rounded float field.
func (r *Readout) SetFloat(key string, value float32) {
	r.fields.Set(key, game.Round32(value, readoutPrecision))
}

// SetVec sets a rounded vector field.
func (r *Readout) SetVec(key string, value mgl32.Vec3) {
	r.fields.Set(key, game.RoundVec32(value, readoutPrecision))
}

// Get returns the value of a field.
func (r *Readout) Get(key string) (any, bool) {
	return r.fields.Get(key)
}

// Keys returns the keys of every field in order.
func (r *Readout) Keys() []string {
	return r.fields.Keys()
}

// String formats the readout as [key=value key=value].
func (r *Readout) String() string {
	str := "["
	count := r.fields.Len()
	for _, key := range r.fields.Keys() {
		v, _ := r.fields.Get(key)
		str += fmt.Sprintf("%s=%v", key, v)

		count--
		if count > 0 {
			str += " "
		}
	}
	return str + "]"
}
