package game

import (
	"log/slog"

	"github.com/pthm-cable/glide/components"
)

// Reset puts every kart back on the start line at rest.
func (g *Game) Reset() {
	g.forEachKart(func(k *components.Kart, d *components.Driver) {
		if k.ID < 0 || k.ID >= len(g.spawns) {
			return
		}
		k.Body.StopFlying()
		k.Body.SetTrans(g.spawns[k.ID])
		k.Body.Reset()
		d.Steer = 0
		d.Throttle = 0
		g.views[k.ID].reset()
	})
	g.stepper.Reset()
	if len(g.spawns) > 0 && g.camera != nil {
		g.camera.Snap(g.spawns[0])
	}
	slog.Info("karts reset", "tick", g.tick)
}

// Unload releases renderer resources and closes output files.
func (g *Game) Unload() {
	if g.kartRenderer != nil {
		g.kartRenderer.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.forEachKartBody(func(k *components.Kart) {
		k.Body.Destroy()
	})
}

// forEachKartBody collects karts first so bodies can be destroyed safely
// outside the query.
func (g *Game) forEachKartBody(fn func(*components.Kart)) {
	var karts []*components.Kart
	g.forEachKart(func(k *components.Kart, _ *components.Driver) {
		karts = append(karts, k)
	})
	for _, k := range karts {
		fn(k)
	}
}
