// Package camera provides a chase camera that follows a body's rendered
// transform.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/glide/config"
	"github.com/pthm-cable/glide/physics"
)

var (
	worldUp = mgl64.Vec3{0, 1, 0}
	forward = mgl64.Vec3{0, 0, 1}
)

// Camera trails behind a target, easing toward its desired spot.
// Supports zoom (scaling the trailing distance) and orbiting about the target.
type Camera struct {
	// Position is the eye in world coordinates
	Position mgl64.Vec3
	// Target is the point looked at
	Target mgl64.Vec3

	Distance   float64 // trailing distance at zoom 1
	Height     float64 // eye height above the target
	FollowRate float64 // 1/s, higher is stiffer
	Fovy       float64 // vertical field of view in degrees

	// Zoom level (1.0 = configured distance, 2.0 = half the distance)
	Zoom             float64
	MinZoom, MaxZoom float64

	// Orbit is an extra yaw around the target in radians
	Orbit float64
}

// New creates a camera from the camera config section.
func New(cfg config.CameraConfig) *Camera {
	c := &Camera{
		Distance:   cfg.Distance,
		Height:     cfg.Height,
		FollowRate: cfg.FollowRate,
		Fovy:       cfg.Fovy,
		Zoom:       1.0,
		MinZoom:    0.25,
		MaxZoom:    4.0,
	}
	c.Position = mgl64.Vec3{0, c.Height, -c.Distance}
	return c
}

// Desired returns the eye position the camera is easing toward for a body
// at t. Only the heading of t is used so the view does not roll or pitch
// with the body.
func (c *Camera) Desired(t physics.Transform) mgl64.Vec3 {
	fwd := t.Rotation.Rotate(forward)
	fwd[1] = 0
	if fwd.Len() < 1e-6 {
		fwd = forward
	}
	fwd = mgl64.QuatRotate(c.Orbit, worldUp).Rotate(fwd.Normalize())

	back := fwd.Mul(-c.Distance / c.Zoom)
	return t.Position.Add(back).Add(worldUp.Mul(c.Height / c.Zoom))
}

// Follow eases the camera toward its desired spot behind t over dt seconds.
// The approach is exponential so it is independent of frame rate.
func (c *Camera) Follow(t physics.Transform, dt float64) {
	if !(dt > 0) {
		return
	}
	k := 1 - math.Exp(-c.FollowRate*dt)
	c.Position = c.Position.Add(c.Desired(t).Sub(c.Position).Mul(k))
	c.Target = t.Position
}

// Snap places the camera at its desired spot behind t.
func (c *Camera) Snap(t physics.Transform) {
	c.Position = c.Desired(t)
	c.Target = t.Position
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = mgl64.Clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// OrbitBy rotates the view around the target, wrapped to (-pi, pi].
func (c *Camera) OrbitBy(radians float64) {
	c.Orbit = math.Remainder(c.Orbit+radians, 2*math.Pi)
}

// Reset restores the default zoom and orbit.
func (c *Camera) Reset() {
	c.Zoom = 1.0
	c.Orbit = 0
}

// View returns the eye, target and up vectors for a renderer.
func (c *Camera) View() (eye, target, up mgl64.Vec3) {
	return c.Position, c.Target, worldUp
}
