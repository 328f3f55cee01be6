package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const controlsLegend = "[Space] pause  [R] rotation  [J] jolt  [Bksp] reset  [Tab] next kart  [PgUp/PgDn/End] fly  [C] panel  [F3] perf  wheel/Q/E camera"

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.SetSmoothRotation(!g.smoothRotation)
		slog.Info("rotation smoothing", "enabled", g.smoothRotation)
	}
	if rl.IsKeyPressed(rl.KeyJ) {
		g.InjectCorrection(g.selectedKart())
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		g.Reset()
	}
	if rl.IsKeyPressed(rl.KeyPageUp) {
		g.SetFlying(g.selectedKart(), 1)
	}
	if rl.IsKeyPressed(rl.KeyPageDown) {
		g.SetFlying(g.selectedKart(), -1)
	}
	if rl.IsKeyPressed(rl.KeyEnd) {
		g.SetFlying(g.selectedKart(), 0)
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.inspector.Cycle(g.kartIDs())
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.controlsPanel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		g.showPerf = !g.showPerf
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, on, ok := g.overlays.HandleKeyPress(key); ok {
			slog.Debug("overlay toggled", "overlay", id, "enabled", on)
		}
	}

	g.handleCameraInput()

	mouse := rl.GetMousePosition()
	g.inspector.HandleInput(mouse.X, mouse.Y, g.pickCandidates())
}

// handleCameraInput processes camera zoom and orbit controls.
func (g *Game) handleCameraInput() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1.0 + float64(wheel)*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	orbitSpeed := 1.5 * float64(rl.GetFrameTime())
	if rl.IsKeyDown(rl.KeyQ) {
		g.camera.OrbitBy(-orbitSpeed)
	}
	if rl.IsKeyDown(rl.KeyE) {
		g.camera.OrbitBy(orbitSpeed)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
