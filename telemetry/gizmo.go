package telemetry

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/probe"
	"github.com/sirupsen/logrus"
)

// Line is a recorded debug line segment.
type Line struct {
	From, To mgl32.Vec3
	Colour   probe.Colour
}

// Gizmos records the debug lines drawn during a step so that they can be inspected or logged once the step
// is over. It implements probe.DebugSink.
type Gizmos struct {
	mu    sync.Mutex
	lines []Line
	log   *logrus.Logger
}

// NewGizmos returns a recorder that logs flushed lines to log at trace level.
func NewGizmos(log *logrus.Logger) *Gizmos {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Gizmos{log: log}
}

// Line ...
func (g *Gizmos) Line(from, to mgl32.Vec3, colour probe.Colour) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lines = append(g.lines, Line{From: from, To: to, Colour: colour})
}

// Lines returns a copy of the lines recorded since the last flush.
func (g *Gizmos) Lines() []Line {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Line(nil), g.lines...)
}

// Flush logs every recorded line and clears the recorder. It returns the number of lines flushed.
func (g *Gizmos) Flush() int {
	g.mu.Lock()
	lines := g.lines
	g.lines = nil
	g.mu.Unlock()

	if !g.log.IsLevelEnabled(logrus.TraceLevel) {
		return len(lines)
	}
	for _, l := range lines {
		g.log.WithFields(logrus.Fields{
			"from":   game.RoundVec32(l.From, readoutPrecision),
			"to":     game.RoundVec32(l.To, readoutPrecision),
			"colour": colourName(l.Colour),
		}).Trace("gizmo")
	}
	return len(lines)
}

func colourName(c probe.Colour) string {
	switch c {
	case probe.ColourRay:
		return "ray"
	case probe.ColourSlope:
		return "slope"
	case probe.ColourMotion:
		return "motion"
	default:
		return "unknown"
	}
}
