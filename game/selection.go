package game

import (
	"github.com/pthm-cable/glide/components"
	"github.com/pthm-cable/glide/inspector"
	"github.com/pthm-cable/glide/physics"
	"github.com/pthm-cable/glide/renderer"
)

// selectedKart returns the inspected kart ID, falling back to kart 0.
func (g *Game) selectedKart() int {
	if g.inspector != nil {
		if id, ok := g.inspector.Selected(); ok {
			return id
		}
	}
	return 0
}

// followTransform is the transform the camera chases.
func (g *Game) followTransform() (physics.Transform, bool) {
	k, ok := g.Kart(g.selectedKart())
	if !ok {
		return physics.Transform{}, false
	}
	return k.Body.SmoothedTrans(), true
}

// kartIDs returns all kart IDs in ascending order.
func (g *Game) kartIDs() []int {
	ids := make([]int, len(g.views))
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// pickCandidates projects every kart to the screen for mouse picking.
func (g *Game) pickCandidates() []inspector.Candidate {
	var out []inspector.Candidate
	g.forEachKart(func(k *components.Kart, _ *components.Driver) {
		x, y := renderer.ScreenPos(g.camera, k.Body.SmoothedXYZ())
		out = append(out, inspector.Candidate{ID: k.ID, X: x, Y: y})
	})
	return out
}
