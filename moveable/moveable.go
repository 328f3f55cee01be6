// Package moveable implements a body whose authoritative transform comes
// from the physics engine and whose rendered transform is smoothed so that
// corrections to the authoritative pose never show up as a visible snap.
//
// Two invocation points drive it: Update once per physics tick, and
// AdvanceGraphics once per rendered frame.
package moveable

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/glide/config"
	"github.com/pthm-cable/glide/physics"
)

// Settings tunes the correction smoothing of a body.
type Settings struct {
	PhaseDuration   float64 // seconds per smoothing leg
	MinAdjustLength float64 // CheckSmoothing ignores shorter jumps
	MaxAdjustLength float64 // CheckSmoothing ignores longer jumps
	MinSpeed        float64 // CheckSmoothing ignores jumps of slower bodies
	SmoothRotation  bool    // false snaps orientation to the physics orientation
}

// DefaultSettings returns the settings used when no config is available.
func DefaultSettings() Settings {
	return Settings{
		PhaseDuration:   0.25,
		MinAdjustLength: 0.1,
		MaxAdjustLength: 4.0,
		MinSpeed:        0.3,
		SmoothRotation:  true,
	}
}

// SettingsFromConfig converts the smoothing config section.
func SettingsFromConfig(c config.SmoothingConfig) Settings {
	s := Settings{
		PhaseDuration:   c.PhaseDuration,
		MinAdjustLength: c.MinAdjustLength,
		MaxAdjustLength: c.MaxAdjustLength,
		MinSpeed:        c.MinSpeed,
		SmoothRotation:  c.SmoothRotation,
	}
	if s.PhaseDuration <= 0 {
		s.PhaseDuration = DefaultSettings().PhaseDuration
	}
	return s
}

// Moveable is a physics-driven body with a smoothed visual transform.
type Moveable struct {
	settings Settings

	world *physics.World
	body  *physics.Body

	transform  physics.Transform
	velocityLC mgl64.Vec3
	angles     Angles
	flying     bool

	smoothingState
}

// New creates a moveable at the origin with no physics body.
func New(settings Settings) *Moveable {
	if settings.PhaseDuration <= 0 {
		settings.PhaseDuration = DefaultSettings().PhaseDuration
	}
	m := &Moveable{
		settings:  settings,
		transform: physics.IdentityTransform(),
	}
	m.ResetSmoothing()
	return m
}

// CreateBody creates the physics body of this moveable at t. An existing
// body is destroyed first.
func (m *Moveable) CreateBody(w *physics.World, mass float64, t physics.Transform,
	halfExtents mgl64.Vec3, restitution float64) *physics.Body {
	m.Destroy()

	m.transform = physics.NewTransform(t.Position, t.Rotation)
	m.world = w
	m.body = w.CreateBody(physics.BodyDef{
		Mass:        mass,
		Transform:   m.transform,
		HalfExtents: halfExtents,
		Restitution: restitution,
	})
	m.flying = false
	m.ResetSmoothing()
	m.UpdatePosition()
	return m.body
}

// Destroy releases the physics body. The stored transform is kept.
func (m *Moveable) Destroy() {
	if m.world != nil && m.body.Valid() {
		m.world.DestroyBody(m.body)
	}
	m.body = nil
	m.world = nil
	m.flying = false
	m.ResetSmoothing()
}

// Body returns the physics body, or nil if none was created.
func (m *Moveable) Body() *physics.Body {
	return m.body
}

// motionState returns the body's motion state or nil without a live body.
func (m *Moveable) motionState() *physics.MotionState {
	return m.body.MotionState()
}

// Settings returns the smoothing settings.
func (m *Moveable) Settings() Settings {
	return m.settings
}

// SetSmoothRotation toggles orientation smoothing for this body.
func (m *Moveable) SetSmoothRotation(on bool) {
	m.settings.SmoothRotation = on
}

// SetPhaseDuration changes the length of future smoothing legs. A running
// correction keeps the duration it started with. Non-positive values are
// ignored.
func (m *Moveable) SetPhaseDuration(d float64) {
	if d > 0 {
		m.settings.PhaseDuration = d
	}
}

// SmoothRotation reports whether orientation is smoothed during corrections.
func (m *Moveable) SmoothRotation() bool {
	return m.settings.SmoothRotation
}

// Trans returns the authoritative transform.
func (m *Moveable) Trans() physics.Transform { return m.transform }

// XYZ returns the authoritative position.
func (m *Moveable) XYZ() mgl64.Vec3 { return m.transform.Position }

// Rotation returns the authoritative orientation.
func (m *Moveable) Rotation() mgl64.Quat { return m.transform.Rotation }

// Heading returns the heading in (-pi, pi].
func (m *Moveable) Heading() float64 { return m.angles.Heading }

// Pitch returns the pitch in [-pi/2, pi/2].
func (m *Moveable) Pitch() float64 { return m.angles.Pitch }

// Roll returns the roll in (-pi, pi].
func (m *Moveable) Roll() float64 { return m.angles.Roll }

// Angles returns heading, pitch and roll together.
func (m *Moveable) Angles() Angles { return m.angles }

// Velocity returns the world-frame linear velocity of the body.
func (m *Moveable) Velocity() mgl64.Vec3 {
	return m.body.LinearVelocity()
}

// SetVelocity sets the world-frame linear velocity of the body.
func (m *Moveable) SetVelocity(v mgl64.Vec3) {
	m.body.SetLinearVelocity(v)
}

// VelocityLC returns the velocity in the body's own frame, as of the last tick.
func (m *Moveable) VelocityLC() mgl64.Vec3 { return m.velocityLC }

// SetXYZ moves the body.
func (m *Moveable) SetXYZ(p mgl64.Vec3) {
	m.transform.Position = p
	m.pushTransform()
}

// SetRotation sets the orientation of the body.
func (m *Moveable) SetRotation(q mgl64.Quat) {
	m.transform.Rotation = q.Normalize()
	m.pushTransform()
}

// SetRotationMatrix sets the orientation of the body from a rotation matrix.
func (m *Moveable) SetRotationMatrix(basis mgl64.Mat3) {
	m.SetRotation(mgl64.Mat4ToQuat(basis.Mat4()))
}

// SetTrans replaces the whole transform and recomputes the angles.
func (m *Moveable) SetTrans(t physics.Transform) {
	m.transform = physics.NewTransform(t.Position, t.Rotation)
	m.pushTransform()
	m.UpdatePosition()
}

// pushTransform mirrors the transform into the motion state.
func (m *Moveable) pushTransform() {
	if ms := m.motionState(); ms != nil {
		ms.SetWorldTransform(m.transform)
	}
	m.syncIdle()
}

// syncIdle keeps the smoothed transform on the authoritative one while no
// correction is running.
func (m *Moveable) syncIdle() {
	if m.phase == SmoothingNone {
		m.smoothed = m.transform
	}
}

// Update is called once per physics tick after the physics step.
func (m *Moveable) Update() {
	if m.body.InvMass() != 0 {
		m.transform = m.motionState().WorldTransform()
	}
	m.velocityLC = m.transform.Rotation.Conjugate().Rotate(m.Velocity())
	m.UpdatePosition()
	m.syncIdle()

	// A snapshot only describes the tick it was taken in.
	m.prev.valid = false
}

// UpdatePosition recomputes heading, pitch and roll.
func (m *Moveable) UpdatePosition() {
	m.angles = Decompose(m.transform.Rotation)
}

// Reset stops the body, pushes the stored transform to physics and clears
// all smoothing state.
func (m *Moveable) Reset() {
	if m.body.Valid() {
		m.body.SetLinearVelocity(mgl64.Vec3{})
		m.body.SetAngularVelocity(mgl64.Vec3{})
		m.body.ProceedToTransform(m.transform)
	}
	m.velocityLC = mgl64.Vec3{}
	m.prev = snapshot{}
	m.ResetSmoothing()
	m.UpdatePosition()
}

// flyAcceleration is the vertical acceleration while flying.
const flyAcceleration = 8.0

// FlyUp replaces gravity with a lift and locks the orientation. Without a
// body nothing happens.
func (m *Moveable) FlyUp() {
	m.fly(flyAcceleration)
}

// FlyDown is FlyUp with the lift pointing down.
func (m *Moveable) FlyDown() {
	m.fly(-flyAcceleration)
}

func (m *Moveable) fly(accel float64) {
	if !m.body.Valid() {
		return
	}
	m.body.SetGravity(mgl64.Vec3{0, accel, 0})
	m.body.SetAngularFactor(0)
	m.flying = true
}

// StopFlying restores the world gravity and free rotation.
func (m *Moveable) StopFlying() {
	if m.body.Valid() {
		m.body.ResetGravity()
		m.body.SetAngularFactor(1)
	}
	m.flying = false
}

// Flying reports whether FlyUp or FlyDown is in effect.
func (m *Moveable) Flying() bool { return m.flying }
