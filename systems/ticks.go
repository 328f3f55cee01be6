package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/glide/components"
	"github.com/pthm-cable/glide/physics"
)

// TickSystem advances the physics world and pulls the new authoritative
// transforms into every kart.
type TickSystem struct {
	physics *physics.World
	filter  *ecs.Filter1[components.Kart]
	ticks   int64
}

// NewTickSystem creates a tick system over the given physics world.
func NewTickSystem(w *ecs.World, pw *physics.World) *TickSystem {
	return &TickSystem{
		physics: pw,
		filter:  ecs.NewFilter1[components.Kart](w),
	}
}

// Update runs one full physics tick.
func (s *TickSystem) Update(dt float64) {
	s.Step(dt)
	s.Sync()
}

// Step advances the physics world.
func (s *TickSystem) Step(dt float64) {
	s.physics.Step(dt)
	s.ticks++
}

// Sync refreshes every kart from its physics body.
func (s *TickSystem) Sync() {
	query := s.filter.Query()
	for query.Next() {
		k := query.Get()
		k.Body.Update()
	}
}

// Ticks returns the number of physics steps taken.
func (s *TickSystem) Ticks() int64 { return s.ticks }
