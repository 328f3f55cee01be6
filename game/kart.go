package game

import (
	"github.com/pthm-cable/glide/moveable"
	"github.com/pthm-cable/glide/renderer"
)

// kartView is the per-kart graphics state. It receives the smoothed offset
// once per rendered frame.
type kartView struct {
	id     int
	body   *moveable.Moveable
	trail  *renderer.Trail
	marker renderer.Marker
	offset moveable.Offset
}

func newKartView(id int, body *moveable.Moveable) *kartView {
	return &kartView{
		id:    id,
		body:  body,
		trail: renderer.NewTrail(trailLength),
	}
}

// UpdateGraphics implements moveable.Graphics.
func (v *kartView) UpdateGraphics(dt float64, off moveable.Offset) {
	v.offset = off
	v.trail.Push(v.body.SmoothedXYZ())
	v.marker.Update(dt)
}

// correctionLanded starts the marker at the new authoritative position.
func (v *kartView) correctionLanded() {
	v.marker.Start(v.body.XYZ())
}

// reset drops the trail and marker.
func (v *kartView) reset() {
	v.trail.Clear()
	v.marker = renderer.Marker{}
	v.offset = moveable.Offset{}
}
