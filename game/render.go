package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glide/components"
	"github.com/pthm-cable/glide/inspector"
	"github.com/pthm-cable/glide/renderer"
	"github.com/pthm-cable/glide/ui"
)

// initRendering creates renderers and UI. Requires an open window.
func (g *Game) initRendering() {
	g.kartRenderer = renderer.NewKartRenderer(kartHalfExtents)
	g.kartRenderer.Init()
	g.groundRender = renderer.NewGroundRenderer(g.cfg.Physics.GroundY)

	w := int32(g.cfg.Screen.Width)
	h := int32(g.cfg.Screen.Height)
	g.overlays = ui.NewOverlayRegistry()
	g.hud = ui.NewHUD()
	g.controlsPanel = ui.NewControlsPanel(10, 10, 240)
	g.perfPanel = ui.NewPerfPanel(10, h-150)
	g.inspector = inspector.NewInspector(w, h)
}

// Update handles input and advances one rendered frame.
func (g *Game) Update() {
	g.handleInput()
	g.perfCollector.RecordFrame()

	frameDT := float64(rl.GetFrameTime())
	if !g.paused {
		g.Step(frameDT)
	}

	if t, ok := g.followTransform(); ok {
		g.camera.Follow(t, frameDT)
	}
}

// Draw renders the scene and the UI.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 24, G: 28, B: 32, A: 255})

	renderer.Begin(g.camera)
	if g.overlays.IsEnabled(ui.OverlayGrid) {
		g.groundRender.Draw(g.camera)
	}
	g.forEachKart(func(k *components.Kart, _ *components.Driver) {
		g.drawKart(k)
	})
	renderer.End()

	g.drawUI()
	rl.EndDrawing()
}

// drawKart renders one kart and its enabled overlays.
func (g *Game) drawKart(k *components.Kart) {
	view := g.views[k.ID]
	col := renderer.KartColor(k.ID)
	auth := k.Body.Trans()
	shown := k.Body.SmoothedTrans()
	if g.overlays.IsEnabled(ui.OverlayRawOnly) {
		shown = auth
	}

	if g.overlays.IsEnabled(ui.OverlayTrail) {
		renderer.DrawTrail(view.trail, col)
	}
	g.kartRenderer.Draw(shown, col)

	if g.overlays.IsEnabled(ui.OverlayGhost) && !auth.ApproxEqual(shown, 1e-4) {
		g.kartRenderer.DrawGhost(auth, col)
	}
	if g.overlays.IsEnabled(ui.OverlayOffset) {
		g.kartRenderer.DrawOffset(auth.Position, shown.Position)
	}
	if g.overlays.IsEnabled(ui.OverlayAxes) {
		g.kartRenderer.DrawAxes(shown, 1.5)
	}
	if g.overlays.IsEnabled(ui.OverlayMarkers) && view.marker.Active() {
		g.kartRenderer.DrawMarker(view.marker.Pos, view.marker.Alpha())
	}
}

// drawUI renders screen-space panels and applies control panel actions.
func (g *Game) drawUI() {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	g.hud.Draw(ui.HUDData{
		Title:       "Glide",
		Karts:       g.KartCount(),
		Smoothing:   g.Smoothing(),
		Corrections: g.totalStarted,
		Tick:        g.tick,
		TicksFrame:  g.lastTicks,
		Dropped:     g.Dropped(),
		FPS:         rl.GetFPS(),
		Paused:      g.paused,
	}, screenW)
	g.hud.DrawControls(screenH, controlsLegend)

	state := ui.ControlsState{
		SmoothRotation: g.smoothRotation,
		Paused:         g.paused,
		PhaseDuration:  float32(g.phaseDuration),
		MinPhase:       0.05,
		MaxPhase:       1.0,
		SelectedKart:   g.selectedKart(),
	}
	g.applyControls(state, g.controlsPanel.Draw(state, g.overlays))

	if g.showPerf {
		g.perfPanel.SetPosition(10, screenH-150)
		g.perfPanel.Draw(g.perfCollector.Stats(), g.registry)
	}

	if id, ok := g.inspector.Selected(); ok {
		if status, ok := g.Status(id); ok {
			g.inspector.Draw(status)
		} else {
			g.inspector.Deselect()
		}
	}
}

// applyControls carries out the controls panel actions.
func (g *Game) applyControls(state ui.ControlsState, a ui.ControlsActions) {
	if !a.Changed(state) {
		return
	}
	if a.SmoothRotation != state.SmoothRotation {
		g.SetSmoothRotation(a.SmoothRotation)
	}
	if a.PhaseDuration != state.PhaseDuration {
		g.SetPhaseDuration(float64(a.PhaseDuration))
	}
	g.paused = a.Paused
	if a.Inject {
		g.InjectCorrection(state.SelectedKart)
	}
	if a.Reset {
		g.Reset()
	}
}
