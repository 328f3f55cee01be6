// Package components defines ECS components for the kart scenario.
package components

import (
	"github.com/pthm-cable/glide/moveable"
)

// Kart is a driven body. Body owns the physics binding; View receives the
// smoothed offset once per rendered frame.
type Kart struct {
	ID   int
	Body *moveable.Moveable
	View moveable.Graphics
}

// Driver holds the scripted controls of a kart.
type Driver struct {
	Lane     float64 // offset into the steering noise field
	Throttle float64 // 0 to 1
	Steer    float64 // -1 (left) to +1 (right)
}

// Status is a display snapshot of one kart.
type Status struct {
	ID             int     `inspect:"label"`
	Phase          string  `inspect:"label"`
	Progress       float64 `inspect:"bar"`
	Heading        float64 `inspect:"angle"`
	Pitch          float64 `inspect:"angle"`
	Roll           float64 `inspect:"angle"`
	Speed          float64 `inspect:"bar,max:30"`
	ForwardSpeed   float64 `inspect:"label,fmt:%.2f"`
	OffsetDist     float64 `inspect:"bar,max:4"`
	OffsetAngle    float64 `inspect:"label,fmt:%.3f"`
	Corrections    int     `inspect:"label"`
	SmoothRotation bool    `inspect:"bool"`
	Flying         bool    `inspect:"bool"`
	Throttle       float64 `inspect:"bar"`
	Steer          float64 `inspect:"bar,min:-1"`
	Lane           float64 `inspect:"skip"`
}

// StatusOf builds a display snapshot of a kart.
func StatusOf(k *Kart, d *Driver) Status {
	m := k.Body
	off := m.Offset()
	elapsed, duration := m.PhaseElapsed()

	s := Status{
		ID:             k.ID,
		Phase:          m.Smoothing().String(),
		Heading:        m.Heading(),
		Pitch:          m.Pitch(),
		Roll:           m.Roll(),
		Speed:          m.Velocity().Len(),
		ForwardSpeed:   m.VelocityLC().Z(),
		OffsetDist:     off.Position.Len(),
		OffsetAngle:    off.Angle(),
		Corrections:    m.Corrections(),
		SmoothRotation: m.SmoothRotation(),
		Flying:         m.Flying(),
	}
	if m.Smoothing() != moveable.SmoothingNone && duration > 0 {
		s.Progress = elapsed / duration
	}
	if d != nil {
		s.Throttle = d.Throttle
		s.Steer = d.Steer
		s.Lane = d.Lane
	}
	return s
}
