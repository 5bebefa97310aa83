package world

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/physics"
	"github.com/sirupsen/logrus"
)

// World is a small collision world of boxes and ramps. Colliders are kept in insertion order so that every
// query visits them in the same order and returns the same result for the same geometry.
type World struct {
	colliders *orderedmap.OrderedMap[physics.ColliderID, *Collider]
	nextID    physics.ColliderID
	log       *logrus.Logger
}

// New returns an empty world.
func New(log *logrus.Logger) *World {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &World{
		colliders: orderedmap.NewOrderedMap[physics.ColliderID, *Collider](),
		log:       log,
	}
}

// AddBox adds a static solid box on the given layer.
func (w *World) AddBox(bb cube.BBox, layer physics.Mask) physics.ColliderID {
	return w.add(&Collider{Layer: layer, Box: bb})
}

// AddRamp adds a static ramp over bounds ascending along rise.
func (w *World) AddRamp(bounds cube.BBox, rise mgl32.Vec3, layer physics.Mask) physics.ColliderID {
	ramp := NewRamp(bounds, rise)
	w.log.WithFields(logrus.Fields{"angle": ramp.Angle(), "bounds": bounds}).Debug("added ramp")
	return w.add(&Collider{Layer: layer, Box: bounds, Ramp: ramp})
}

// AddBody adds a dynamic box that can be pushed around. A kinematic body ignores pushes.
func (w *World) AddBody(bb cube.BBox, damping float32, kinematic bool) (physics.ColliderID, *Body) {
	body := &Body{Damping: damping, kinematic: kinematic}
	return w.add(&Collider{Layer: physics.LayerDynamic, Box: bb, Body: body}), body
}

func (w *World) add(c *Collider) physics.ColliderID {
	w.nextID++
	c.ID = w.nextID
	w.colliders.Set(c.ID, c)
	return c.ID
}

// Remove removes a collider. It returns false if no collider with the ID exists.
func (w *World) Remove(id physics.ColliderID) bool {
	return w.colliders.Delete(id)
}

// Collider returns the collider with the given ID.
func (w *World) Collider(id physics.ColliderID) (*Collider, bool) {
	return w.colliders.Get(id)
}

// Len returns the number of colliders in the world.
func (w *World) Len() int {
	return w.colliders.Len()
}

// each calls f for every collider on a layer in mask, in insertion order.
func (w *World) each(mask physics.Mask, f func(c *Collider)) {
	for _, id := range w.colliders.Keys() {
		c, _ := w.colliders.Get(id)
		if mask.Has(c.Layer) {
			f(c)
		}
	}
}

// nearbyBoxes returns the solid boxes on a layer in mask that intersect bb.
func (w *World) nearbyBoxes(bb cube.BBox, mask physics.Mask, skip *Collider) []*Collider {
	var list []*Collider
	w.each(mask, func(c *Collider) {
		if c.Ramp == nil && c != skip && c.Box.IntersectsWith(bb) {
			list = append(list, c)
		}
	})
	return list
}

// Step moves every dynamic body by its velocity for dt seconds, stopping it against static boxes, and
// applies damping.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	w.each(physics.MaskAll, func(c *Collider) {
		if c.Body == nil || c.Body.kinematic {
			return
		}
		vel := c.Body.Velocity
		vel[1] = 0
		if vel.Len() < 1e-4 {
			c.Body.Velocity = mgl32.Vec3{}
			return
		}

		disp := vel.Mul(dt)
		others := w.nearbyBoxes(c.Box.Extend(disp).Grow(0.01), physics.MaskAll, c)
		for axis := 0; axis < 3; axis += 2 {
			step := mgl32.Vec3{}
			step[axis] = disp[axis]
			for _, o := range others {
				if res := clip(o.Box, c.Box, step); res.axis == axis {
					step = res.vel
					vel[axis] = 0
				}
			}
			c.Box = c.Box.Translate(step)
		}

		keep := 1 - c.Body.Damping*dt
		if keep < 0 {
			keep = 0
		}
		c.Body.Velocity = vel.Mul(keep)
	})
}
