package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/glide/components"
	"github.com/pthm-cable/glide/moveable"
)

// OffsetRecorder receives the smoothed offset of each kart per frame.
type OffsetRecorder interface {
	RecordOffset(kartID int, off moveable.Offset, phase moveable.SmoothingState)
}

// FrameSystem advances visual smoothing once per rendered frame.
type FrameSystem struct {
	filter *ecs.Filter1[components.Kart]
}

// NewFrameSystem creates a frame system.
func NewFrameSystem(w *ecs.World) *FrameSystem {
	return &FrameSystem{filter: ecs.NewFilter1[components.Kart](w)}
}

// Update advances every kart by the frame time. rec may be nil.
func (s *FrameSystem) Update(dt float64, rec OffsetRecorder) {
	query := s.filter.Query()
	for query.Next() {
		k := query.Get()
		off := k.Body.AdvanceGraphics(dt, k.View)
		if rec != nil {
			rec.RecordOffset(k.ID, off, k.Body.Smoothing())
		}
	}
}
