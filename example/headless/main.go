package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/input"
	"github.com/oomph-ac/locomotion/movement"
	"github.com/oomph-ac/locomotion/physics"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/oomph-ac/locomotion/telemetry"
	"github.com/oomph-ac/locomotion/world"
	"github.com/sirupsen/logrus"
)

const (
	stepRate  = 50
	frameRate = 144

	fixedStep    = float32(1) / stepRate
	frameStep    = float32(1) / frameRate
	demoDuration = float32(10)
)

// spawn is where the demo body starts.
var spawn = mgl32.Vec3{0, 0, -8}

// The following program drives a locomotion controller through a small demo scene with scripted input and
// logs what it does.
func main() {
	if len(os.Args) > 3 {
		fmt.Println("Usage: ./bin [config.yaml] [settings.yaml]")
		return
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     false,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	log.SetLevel(logrus.DebugLevel)

	if err := sentry.Init(sentry.ClientOptions{Dsn: os.Getenv("SENTRY_DSN")}); err != nil {
		log.Warnf("unable to initialize sentry: %v", err)
	}
	defer sentry.Flush(2 * time.Second)

	realtime := false
	if addr := os.Getenv("STATSVIEW_ADDR"); addr != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(addr))

		mgr := statsview.New()
		go mgr.Start()
		realtime = true
	}

	conf := movement.DefaultConfig()
	if len(os.Args) > 1 {
		loaded, err := movement.LoadConfig(os.Args[1])
		if err != nil {
			log.Errorf("unable to load config, using defaults: %v", err)
		} else {
			conf = loaded
		}
	}

	userSettings := settings.New(settings.DefaultValues())
	if len(os.Args) > 2 {
		path := os.Args[2]
		if err := settings.SaveDefault(path); err == nil {
			log.Infof("created default settings at %s", path)
		}
		w, err := settings.Watch(path, userSettings, log)
		if err != nil {
			log.Errorf("unable to watch settings: %v", err)
		} else {
			defer w.Close()
		}
	}

	scene := buildScene(log)
	gizmos := telemetry.NewGizmos(log)
	c, err := newController(conf, scene, userSettings, gizmos, log, sentry.CurrentHub().Clone())
	if err != nil {
		log.Errorf("controller running degraded: %v", err)
	}

	run(c, scene, gizmos, log, demoDuration, realtime)
}

// newController wires a controller into the scene. The contact grounding strategy is paired with the
// rigid-body mover, the shape cast strategy with the kinematic capsule mover.
func newController(conf movement.Config, scene *world.World, userSettings *settings.Settings, gizmos *telemetry.Gizmos, log *logrus.Logger, hub *sentry.Hub) (*movement.Controller, error) {
	var mover physics.Mover = scene.CapsuleMover(conf.SlopeLimit)
	if conf.Grounding == movement.GroundingContact {
		mover = scene.RigidMover(fixedStep, conf.SlopeLimit)
	}
	return movement.New(conf, spawn, movement.Deps{
		Caster:   scene,
		Mover:    mover,
		Camera:   movement.NewNode(mgl32.Vec3{}),
		Settings: userSettings,
		Cursor: input.NewCursor(func(locked bool) {
			log.Debugf("cursor locked: %v", locked)
		}),
		Debug: gizmos,
		Log:   log,
		Hub:   hub,
	})
}

// run drives the controller at render rate, stepping movement on a fixed cadence in between frames.
func run(c *movement.Controller, scene *world.World, gizmos *telemetry.Gizmos, log *logrus.Logger, duration float32, realtime bool) {
	var (
		sampler input.Sampler
		acc     float32
		elapsed float32
		report  float32
	)
	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()

	for elapsed < duration {
		if realtime {
			<-ticker.C
		}
		look, move, buttons := script(elapsed)
		c.Frame(sampler.Frame(look, move, buttons), frameStep)

		acc += frameStep
		for acc >= fixedStep {
			acc -= fixedStep
			res := c.Step(sampler.Step(), fixedStep)
			scene.Step(fixedStep)
			gizmos.Flush()

			if res.Pushed > 0 {
				log.WithField("bodies", res.Pushed).Debug("pushed")
			}
		}

		elapsed += frameStep
		if elapsed >= report {
			report += 0.5
			log.Infof("t=%.2f %s", elapsed, telemetry.Read(c))
		}
	}
}

// script returns the input held at time t of the demo run.
func script(t float32) (look, move mgl32.Vec2, b input.Buttons) {
	switch {
	case t < 1:
		move = mgl32.Vec2{0, 1}
	case t < 2:
		move, b.Run = mgl32.Vec2{0, 1}, true
		look = mgl32.Vec2{0.1, 0}
	case t < 2.1:
		move, b.Run, b.Jump = mgl32.Vec2{0, 1}, true, true
	case t < 3.5:
		move, b.Run, b.Sprint = mgl32.Vec2{0, 1}, true, true
	case t < 3.6:
		move, b.Run, b.Slide = mgl32.Vec2{0, 1}, true, true
	case t < 5:
		move, b.Crouch = mgl32.Vec2{1, 1}, true
		look = mgl32.Vec2{-0.1, 0.05}
	case t < 5.1:
		b.CursorToggle = true
	case t < 6:
		look = mgl32.Vec2{1, 1}
	case t < 6.1:
		b.CursorToggle = true
	default:
		move = mgl32.Vec2{-1, 0.5}
	}
	return
}

// buildScene builds the demo scene: a floor with a gentle and a steep ramp, a low ceiling and a crate that
// can be pushed around.
func buildScene(log *logrus.Logger) *world.World {
	w := world.New(log)
	w.AddBox(cube.Box(-50, -1, -50, 50, 0, 50), physics.LayerStatic)
	w.AddRamp(cube.Box(-4, 0, 4, 4, 2, 10), mgl32.Vec3{0, 0, 1}, physics.LayerStatic)
	w.AddBox(cube.Box(-4, 0, 10, 4, 2, 14), physics.LayerStatic)
	w.AddRamp(cube.Box(8, 0, -4, 10, 6, 4), mgl32.Vec3{1, 0, 0}, physics.LayerStatic)
	w.AddBox(cube.Box(-12, 1.6, -4, -6, 2, 4), physics.LayerStatic)
	w.AddBody(cube.Box(3, 0, -3, 4, 1, -2), 2, false)
	return w
}
