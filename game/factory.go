package game

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/glide/components"
	"github.com/pthm-cable/glide/moveable"
	"github.com/pthm-cable/glide/physics"
)

// Kart body dimensions
var (
	kartHalfExtents = mgl64.Vec3{0.6, 0.35, 0.9}
	kartMass        = 1.0
	trailLength     = 90
)

// spawnTransform places kart i of n on a start line across X, facing +Z.
func (g *Game) spawnTransform(i, n int) physics.Transform {
	spacing := g.cfg.Scenario.Spacing
	x := (float64(i) - float64(n-1)/2) * spacing
	y := g.cfg.Physics.GroundY + kartHalfExtents.Y()
	return physics.NewTransform(mgl64.Vec3{x, y, 0}, mgl64.QuatIdent())
}

// spawnKarts creates the scenario karts.
func (g *Game) spawnKarts() {
	n := g.cfg.Scenario.Karts
	settings := moveable.SettingsFromConfig(g.cfg.Smoothing)

	for i := range n {
		start := g.spawnTransform(i, n)

		m := moveable.New(settings)
		m.CreateBody(g.physics, kartMass, start, kartHalfExtents, g.cfg.Physics.Restitution)

		view := newKartView(i, m)
		g.views = append(g.views, view)
		g.spawns = append(g.spawns, start)

		kart := components.Kart{ID: i, Body: m, View: view}
		// Lanes far apart in noise space give each kart its own path
		driver := components.Driver{Lane: float64(i) * 17.3}
		g.kartMap.NewEntity(&kart, &driver)
	}
}
