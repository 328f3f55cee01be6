// Package game wires the kart scenario together: the ECS world, physics,
// the per-tick and per-frame systems, telemetry and, outside headless runs,
// rendering and input.
package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/glide/camera"
	"github.com/pthm-cable/glide/components"
	"github.com/pthm-cable/glide/config"
	"github.com/pthm-cable/glide/inspector"
	"github.com/pthm-cable/glide/moveable"
	"github.com/pthm-cable/glide/physics"
	"github.com/pthm-cable/glide/renderer"
	"github.com/pthm-cable/glide/systems"
	"github.com/pthm-cable/glide/telemetry"
	"github.com/pthm-cable/glide/ui"
)

// Game holds the complete game state.
type Game struct {
	cfg   *config.Config
	world *ecs.World

	physics    *physics.World
	kartMap    *ecs.Map2[components.Kart, components.Driver]
	kartFilter *ecs.Filter2[components.Kart, components.Driver]
	views      []*kartView         // by kart ID
	spawns     []physics.Transform // by kart ID

	// Systems
	stepper     *systems.Stepper
	driving     *systems.DrivingSystem
	ticks       *systems.TickSystem
	corrections *systems.CorrectionSystem
	frames      *systems.FrameSystem
	registry    *systems.SystemRegistry

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	onCorrection  func(systems.Correction)

	// Rendering (nil when headless)
	camera        *camera.Camera
	kartRenderer  *renderer.KartRenderer
	groundRender  *renderer.GroundRenderer
	overlays      *ui.OverlayRegistry
	hud           *ui.HUD
	controlsPanel *ui.ControlsPanel
	perfPanel     *ui.PerfPanel
	inspector     *inspector.Inspector
	showPerf      bool

	// State
	headless       bool
	tick           int32
	paused         bool
	lastTicks      int
	totalStarted   int
	smoothRotation bool
	phaseDuration  float64
}

// NewGameWithOptions creates a game. Headless games never touch raylib.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	world := ecs.NewWorld()
	g := &Game{
		cfg:            cfg,
		world:          world,
		physics:        physics.NewWorld(world, cfg.Physics),
		kartMap:        ecs.NewMap2[components.Kart, components.Driver](world),
		kartFilter:     ecs.NewFilter2[components.Kart, components.Driver](world),
		stepper:        systems.NewStepper(cfg.Physics.DT, cfg.Physics.MaxTicksFrame),
		driving:        systems.NewDrivingSystem(world, cfg.Scenario, opts.Seed),
		corrections:    systems.NewCorrectionSystem(world, cfg.Scenario, opts.Seed+1),
		frames:         systems.NewFrameSystem(world),
		registry:       systems.NewSystemRegistry(),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		onCorrection:   opts.CorrectionCallback,
		headless:       opts.Headless,
		smoothRotation: cfg.Smoothing.SmoothRotation,
		phaseDuration:  cfg.Smoothing.PhaseDuration,
	}
	g.ticks = systems.NewTickSystem(world, g.physics)

	windowSec := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		windowSec = opts.StatsWindowSec
	}
	g.collector = telemetry.NewCollector(windowSec, cfg.Physics.DT)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g.spawnKarts()

	g.camera = camera.New(cfg.Camera)
	if len(g.spawns) > 0 {
		g.camera.Snap(g.spawns[0])
	}

	if !opts.Headless {
		g.initRendering()
	}

	slog.Info("game initialized",
		"karts", len(g.views),
		"dt", cfg.Physics.DT,
		"phase_duration", cfg.Smoothing.PhaseDuration,
		"headless", opts.Headless,
		"output_dir", om.Dir(),
	)
	return g, nil
}

// Step advances the game by one rendered frame of frameDT seconds: zero or
// more fixed physics ticks, then one smoothing advance. It returns the
// number of ticks run.
func (g *Game) Step(frameDT float64) int {
	g.perfCollector.StartStep()

	n := g.stepper.Advance(frameDT)
	dt := g.stepper.DT()
	for range n {
		g.simulationTick(dt)
	}
	g.perfCollector.AddTicks(n)
	g.lastTicks = n

	g.perfCollector.StartPhase(telemetry.PhaseSmoothing)
	g.frames.Update(frameDT, g.collector)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndStep()
	return n
}

// simulationTick runs a single physics tick.
func (g *Game) simulationTick(dt float64) {
	g.perfCollector.StartPhase(telemetry.PhaseDriving)
	g.driving.Update(dt)

	g.perfCollector.StartPhase(telemetry.PhasePhysics)
	g.ticks.Step(dt)

	g.perfCollector.StartPhase(telemetry.PhaseMoveable)
	g.ticks.Sync()

	g.perfCollector.StartPhase(telemetry.PhaseCorrections)
	if c, ok := g.corrections.Update(dt); ok {
		g.recordCorrection(c)
	}

	g.tick++
}

// UpdateHeadless advances one frame at the configured frame rate.
func (g *Game) UpdateHeadless() {
	if g.paused {
		return
	}
	g.Step(g.cfg.Derived.FrameDT)
}

// InjectCorrection corrects the kart with the given ID right away. It
// returns false if no such kart exists.
func (g *Game) InjectCorrection(id int) (systems.Correction, bool) {
	c, ok := g.corrections.Inject(id)
	if ok {
		g.recordCorrection(c)
	}
	return c, ok
}

func (g *Game) recordCorrection(c systems.Correction) {
	g.collector.RecordCorrection(c.Jump, c.Started)
	if c.Started {
		g.totalStarted++
	}
	if c.KartID >= 0 && c.KartID < len(g.views) {
		g.views[c.KartID].correctionLanded()
	}
	if g.onCorrection != nil {
		g.onCorrection(c)
	}
}

// SetSmoothRotation toggles orientation smoothing on every kart.
func (g *Game) SetSmoothRotation(on bool) {
	g.smoothRotation = on
	g.forEachKart(func(k *components.Kart, _ *components.Driver) {
		k.Body.SetSmoothRotation(on)
	})
}

// SetPhaseDuration changes the smoothing leg length of every kart.
func (g *Game) SetPhaseDuration(d float64) {
	if !(d > 0) {
		return
	}
	g.phaseDuration = d
	g.forEachKart(func(k *components.Kart, _ *components.Driver) {
		k.Body.SetPhaseDuration(d)
	})
}

// SetFlying switches the flying mode of one kart: dir > 0 flies up,
// dir < 0 flies down and 0 lands. It returns false if no such kart exists.
func (g *Game) SetFlying(id, dir int) bool {
	k, ok := g.Kart(id)
	if !ok {
		return false
	}
	switch {
	case dir > 0:
		k.Body.FlyUp()
	case dir < 0:
		k.Body.FlyDown()
	default:
		k.Body.StopFlying()
	}
	slog.Debug("flying", "kart", id, "dir", dir)
	return true
}

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(p bool) { g.paused = p }

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool { return g.paused }

// Tick returns the number of physics ticks run.
func (g *Game) Tick() int32 { return g.tick }

// KartCount returns the number of karts.
func (g *Game) KartCount() int { return len(g.views) }

// Kart returns the kart with the given ID. The pointer is only valid until
// the next structural change of the world.
func (g *Game) Kart(id int) (*components.Kart, bool) {
	var found *components.Kart
	g.forEachKart(func(k *components.Kart, _ *components.Driver) {
		if k.ID == id {
			found = k
		}
	})
	return found, found != nil
}

// Status returns the display snapshot of a kart.
func (g *Game) Status(id int) (components.Status, bool) {
	var s components.Status
	ok := false
	g.forEachKart(func(k *components.Kart, d *components.Driver) {
		if k.ID == id {
			s = components.StatusOf(k, d)
			ok = true
		}
	})
	return s, ok
}

// Smoothing returns the number of karts currently correcting.
func (g *Game) Smoothing() int {
	n := 0
	g.forEachKart(func(k *components.Kart, _ *components.Driver) {
		if k.Body.Smoothing() != moveable.SmoothingNone {
			n++
		}
	})
	return n
}

// Dropped returns the number of physics ticks skipped on slow frames.
func (g *Game) Dropped() int { return g.stepper.Dropped() }

// PerfStats returns the rolling performance statistics.
func (g *Game) PerfStats() telemetry.PerfStats { return g.perfCollector.Stats() }

func (g *Game) forEachKart(fn func(*components.Kart, *components.Driver)) {
	query := g.kartFilter.Query()
	for query.Next() {
		fn(query.Get())
	}
}
