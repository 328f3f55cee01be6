package renderer

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// markerFade is how long a correction marker stays visible, in seconds.
const markerFade = 0.75

// Marker is a fading indicator left where a correction landed.
type Marker struct {
	Pos   mgl64.Vec3
	tween *gween.Tween
	alpha float32
}

// Start places the marker at pos at full opacity.
func (m *Marker) Start(pos mgl64.Vec3) {
	m.Pos = pos
	m.tween = gween.New(1, 0, markerFade, ease.OutQuad)
	m.alpha = 1
}

// Update advances the fade by dt seconds.
func (m *Marker) Update(dt float64) {
	if m.tween == nil {
		return
	}
	alpha, done := m.tween.Update(float32(dt))
	m.alpha = alpha
	if done {
		m.alpha = 0
		m.tween = nil
	}
}

// Alpha returns the current opacity in [0, 1].
func (m *Marker) Alpha() float32 { return m.alpha }

// Active reports whether the marker is still visible.
func (m *Marker) Active() bool { return m.alpha > 0 }
