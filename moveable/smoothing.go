package moveable

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/glide/physics"
)

// phaseEpsilon absorbs float accumulation so that a whole number of frames
// summing to the phase duration completes the phase.
const phaseEpsilon = 1e-9

// SmoothingState is the phase of a visual correction.
type SmoothingState uint8

const (
	SmoothingNone     SmoothingState = iota // smoothed == authoritative
	SmoothingToAdjust                       // heading for the adjustment point
	SmoothingToReal                         // heading for the authoritative transform
)

func (s SmoothingState) String() string {
	switch s {
	case SmoothingNone:
		return "none"
	case SmoothingToAdjust:
		return "to_adjust"
	case SmoothingToReal:
		return "to_real"
	}
	return "unknown"
}

// Offset is the difference between the smoothed and authoritative
// transforms: smoothed = (Position + real.Position, Rotation * real.Rotation).
type Offset struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Angle returns the rotation angle of the offset in radians.
func (o Offset) Angle() float64 {
	w := math.Min(math.Abs(o.Rotation.W), 1)
	return 2 * math.Acos(w)
}

// LogValue implements slog.LogValuer for structured logging.
func (o Offset) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("dist", o.Position.Len()),
		slog.Float64("angle", o.Angle()),
	)
}

// Graphics is implemented by concrete body types to render themselves.
// UpdateGraphics is called once per frame after the smoothed transform has
// been advanced for that frame.
type Graphics interface {
	UpdateGraphics(dt float64, off Offset)
}

// pose is a position and orientation pair.
type pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// snapshot is the transform and velocity before a correction was applied.
type snapshot struct {
	transform physics.Transform
	velocity  mgl64.Vec3
	valid     bool
}

// smoothingState is the correction bookkeeping embedded in Moveable.
type smoothingState struct {
	phase    SmoothingState
	start    pose
	adjust   pose
	control  mgl64.Vec3
	prev     snapshot
	smoothed physics.Transform
	elapsed  float64
	duration float64

	corrections int
}

// Smoothing returns the current smoothing phase.
func (m *Moveable) Smoothing() SmoothingState { return m.phase }

// SmoothedTrans returns the transform to render.
func (m *Moveable) SmoothedTrans() physics.Transform { return m.smoothed }

// SmoothedXYZ returns the position to render.
func (m *Moveable) SmoothedXYZ() mgl64.Vec3 { return m.smoothed.Position }

// PhaseElapsed returns the time spent in the current phase and its duration.
func (m *Moveable) PhaseElapsed() (elapsed, duration float64) {
	return m.elapsed, m.duration
}

// Corrections returns how many corrections have been started.
func (m *Moveable) Corrections() int { return m.corrections }

// PrepareSmoothing records the current transform and velocity. Call it
// before applying a correction to the authoritative transform, in the same
// tick: Update discards the snapshot.
func (m *Moveable) PrepareSmoothing() {
	m.prev = snapshot{
		transform: m.transform,
		velocity:  m.Velocity(),
		valid:     true,
	}
}

// CheckSmoothing starts a correction from the prepared snapshot unless the
// jump is too small or too large, or the body is too slow for a smoothed
// path to look natural. It reports whether a correction started.
func (m *Moveable) CheckSmoothing() bool {
	if !m.prev.valid {
		return false
	}

	jump := m.transform.Position.Sub(m.prev.transform.Position).Len()
	speed := math.Max(m.prev.velocity.Len(), m.Velocity().Len())
	if jump < m.settings.MinAdjustLength || jump > m.settings.MaxAdjustLength ||
		speed < m.settings.MinSpeed {
		m.prev.valid = false
		return false
	}

	return m.RequestCorrection()
}

// RequestCorrection starts hiding the difference between the rendered and
// the authoritative transform. A correction already in flight is replaced,
// starting from where the body is currently drawn. Without a physics body
// nothing happens and false is returned.
func (m *Moveable) RequestCorrection() bool {
	if m.motionState() == nil {
		m.prev.valid = false
		m.ResetSmoothing()
		return false
	}

	start := m.smoothed
	prevVel := m.Velocity()
	if m.prev.valid {
		prevVel = m.prev.velocity
		if m.phase == SmoothingNone {
			start = m.prev.transform
		}
	}
	m.prev.valid = false

	t := m.settings.PhaseDuration
	m.start = pose{Position: start.Position, Rotation: start.Rotation.Normalize()}
	m.control = m.start.Position.Add(prevVel.Mul(t))
	ahead := m.transform.Position.Add(m.Velocity().Mul(t))
	m.adjust = pose{
		Position: m.control.Add(ahead).Mul(0.5),
		Rotation: m.transform.Rotation.Normalize(),
	}

	m.phase = SmoothingToAdjust
	m.elapsed = 0
	m.duration = t
	m.smoothed = physics.Transform{Position: m.start.Position, Rotation: m.start.Rotation}
	m.corrections++

	slog.Debug("smoothing correction",
		"jump", m.transform.Position.Sub(m.start.Position).Len(),
		"duration", t,
	)
	return true
}

// ResetSmoothing drops any correction and snaps the smoothed transform to
// the authoritative transform.
func (m *Moveable) ResetSmoothing() {
	m.phase = SmoothingNone
	m.elapsed = 0
	m.duration = m.settings.PhaseDuration
	m.start = pose{}
	m.adjust = pose{}
	m.control = mgl64.Vec3{}
	m.smoothed = m.transform
}

// AdvanceGraphics is the per-frame entry point. It advances the correction
// by dt, then hands the resulting offset to g (which may be nil) and
// returns it.
func (m *Moveable) AdvanceGraphics(dt float64, g Graphics) Offset {
	m.advanceSmoothing(dt)
	off := m.Offset()
	if g != nil {
		g.UpdateGraphics(dt, off)
	}
	return off
}

// Offset returns the current smoothed-minus-authoritative offset.
func (m *Moveable) Offset() Offset {
	return Offset{
		Position: m.smoothed.Position.Sub(m.transform.Position),
		Rotation: m.smoothed.Rotation.Mul(m.transform.Rotation.Conjugate()).Normalize(),
	}
}

func (m *Moveable) advanceSmoothing(dt float64) {
	if !(dt > 0) {
		return
	}
	if m.phase == SmoothingNone {
		m.smoothed = m.transform
		return
	}
	if m.motionState() == nil {
		m.ResetSmoothing()
		return
	}

	m.elapsed = math.Min(m.elapsed+dt, m.duration)
	done := m.elapsed >= m.duration-phaseEpsilon
	ratio := 1.0
	if !done {
		ratio = m.elapsed / m.duration
	}

	switch m.phase {
	case SmoothingToAdjust:
		m.smoothed.Position = bend(m.start.Position, m.adjust.Position, m.control, ratio)
		m.smoothed.Rotation = m.blendRotation(m.start.Rotation, m.adjust.Rotation, ratio)
		if done {
			m.phase = SmoothingToReal
			m.elapsed = 0
			m.control = m.adjust.Position.Add(m.Velocity().Mul(m.duration))
		}
	case SmoothingToReal:
		m.smoothed.Position = bend(m.adjust.Position, m.transform.Position, m.control, ratio)
		m.smoothed.Rotation = m.blendRotation(m.adjust.Rotation, m.transform.Rotation, ratio)
		if done {
			m.ResetSmoothing()
		}
	}
}

// blendRotation slerps along the shortest arc, or follows the physics
// orientation when rotation smoothing is off.
func (m *Moveable) blendRotation(from, to mgl64.Quat, ratio float64) mgl64.Quat {
	if !m.settings.SmoothRotation {
		return m.transform.Rotation
	}
	return mgl64.QuatSlerp(from, to, ratio)
}

// bend moves from a to b at ratio r along a curve pulled toward c. The curve
// leaves a heading for c and ends exactly at b.
func bend(a, b, c mgl64.Vec3, r float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(r * r)).Add(c.Sub(a).Mul(r * (1 - r)))
}
