package probe

import "github.com/go-gl/mathgl/mgl32"

// Colour tags a debug line so that sinks can tell probe rays apart from other diagnostics.
type Colour uint8

const (
	ColourRay Colour = iota
	ColourSlope
	ColourMotion
)

// DebugSink receives debug line segments. Lines are diagnostic only and never feed back into the
// simulation.
type DebugSink interface {
	Line(from, to mgl32.Vec3, colour Colour)
}

// NopSink discards every line.
type NopSink struct{}

func (NopSink) Line(mgl32.Vec3, mgl32.Vec3, Colour) {}
