package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glide/systems"
	"github.com/pthm-cable/glide/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	Karts       int
	Smoothing   int // karts currently correcting
	Corrections int // corrections started since launch
	Tick        int32
	TicksFrame  int
	Dropped     int
	FPS         int32
	Paused      bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-right corner of a screen of the given width.
func (h *HUD) Draw(data HUDData, screenWidth int32) {
	x := screenWidth - 300
	rl.DrawText(data.Title, x, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Karts: %d | Correcting: %d | Total: %d", data.Karts, data.Smoothing, data.Corrections),
		x, 35, 14, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Ticks/frame: %d | FPS: %d", data.Tick, data.TicksFrame, data.FPS),
		x, 53, 14, rl.LightGray,
	)
	if data.Dropped > 0 {
		rl.DrawText(fmt.Sprintf("Dropped ticks: %d", data.Dropped), x, 71, 14, rl.Orange)
	}
	h.renderer.DrawBar(x, 89, "Correcting", float32(data.Smoothing), 0, float32(data.Karts), 290)
	if data.Paused {
		rl.DrawText("PAUSED", x, 111, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase frame timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel. Phases are listed in registry order.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, registry *systems.SystemRegistry) {
	x := p.x
	y := p.y

	r := p.renderer
	r.DrawPanel(x-6, y-6, 260, 46+int32(len(registry.IDs()))*14)

	y = r.DrawSectionHeader(x, y, "System Performance")
	y = r.DrawLabelValue(x, y, "Step",
		fmt.Sprintf("%s  (%.1f ticks)", stats.AvgStepDuration.Round(time.Microsecond), stats.TicksPerStep))

	for _, id := range registry.IDs() {
		avg, ok := stats.PhaseAvg[id]
		if !ok {
			continue
		}
		pct := stats.PhasePct[id]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-14s %8s %5.1f%%", registry.GetName(id), avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
