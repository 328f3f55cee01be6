package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"
)

// Body is a handle to a rigid body owned by a World.
type Body struct {
	world  *World
	entity ecs.Entity
	motion MotionState
}

// Valid reports whether the body still exists in its world.
func (b *Body) Valid() bool {
	return b != nil && b.world != nil && b.world.ecs.Alive(b.entity)
}

// MotionState returns the motion state of the body, or nil if the body is gone.
func (b *Body) MotionState() *MotionState {
	if !b.Valid() {
		return nil
	}
	return &b.motion
}

// InvMass returns the inverse mass. Static bodies return 0.
func (b *Body) InvMass() float64 {
	if !b.Valid() {
		return 0
	}
	return b.world.rigids.Get(b.entity).InvMass
}

// HalfExtents returns the box half extents.
func (b *Body) HalfExtents() mgl64.Vec3 {
	if !b.Valid() {
		return mgl64.Vec3{}
	}
	return b.world.rigids.Get(b.entity).HalfExtents
}

// LinearVelocity returns the world-frame linear velocity.
func (b *Body) LinearVelocity() mgl64.Vec3 {
	if !b.Valid() {
		return mgl64.Vec3{}
	}
	return b.world.rigids.Get(b.entity).LinVel
}

// SetLinearVelocity sets the world-frame linear velocity.
func (b *Body) SetLinearVelocity(v mgl64.Vec3) {
	if !b.Valid() {
		return
	}
	b.world.rigids.Get(b.entity).LinVel = v
}

// AngularVelocity returns the world-frame angular velocity in rad/s.
func (b *Body) AngularVelocity() mgl64.Vec3 {
	if !b.Valid() {
		return mgl64.Vec3{}
	}
	return b.world.rigids.Get(b.entity).AngVel
}

// SetAngularVelocity sets the world-frame angular velocity in rad/s.
func (b *Body) SetAngularVelocity(w mgl64.Vec3) {
	if !b.Valid() {
		return
	}
	b.world.rigids.Get(b.entity).AngVel = w
}

// Gravity returns the acceleration applied to the body.
func (b *Body) Gravity() mgl64.Vec3 {
	if !b.Valid() {
		return mgl64.Vec3{}
	}
	r := b.world.rigids.Get(b.entity)
	if r.OwnGravity {
		return r.Gravity
	}
	return b.world.Gravity()
}

// SetGravity overrides the world gravity for this body.
func (b *Body) SetGravity(g mgl64.Vec3) {
	if !b.Valid() {
		return
	}
	r := b.world.rigids.Get(b.entity)
	r.OwnGravity = true
	r.Gravity = g
}

// ResetGravity makes the body follow the world gravity again.
func (b *Body) ResetGravity() {
	if !b.Valid() {
		return
	}
	r := b.world.rigids.Get(b.entity)
	r.OwnGravity = false
	r.Gravity = mgl64.Vec3{}
}

// AngularFactor returns the scale applied to angular velocity.
func (b *Body) AngularFactor() float64 {
	if !b.Valid() {
		return 0
	}
	return b.world.rigids.Get(b.entity).AngularFactor
}

// SetAngularFactor scales the angular velocity used when integrating the
// rotation. 0 locks the orientation.
func (b *Body) SetAngularFactor(f float64) {
	if !b.Valid() {
		return
	}
	b.world.rigids.Get(b.entity).AngularFactor = f
}

// ProceedToTransform teleports the body to t.
func (b *Body) ProceedToTransform(t Transform) {
	if !b.Valid() {
		return
	}
	b.world.poses.Get(b.entity).T = NewTransform(t.Position, t.Rotation)
}

// MotionState is the body's view of its world transform. Writes take effect
// from the next Step.
type MotionState struct {
	body *Body
}

// WorldTransform returns the current transform of the body.
func (m *MotionState) WorldTransform() Transform {
	if !m.body.Valid() {
		return IdentityTransform()
	}
	return m.body.world.poses.Get(m.body.entity).T
}

// SetWorldTransform overwrites the transform of the body.
func (m *MotionState) SetWorldTransform(t Transform) {
	m.body.ProceedToTransform(t)
}
