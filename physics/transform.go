package physics

import "github.com/go-gl/mathgl/mgl64"

// Transform is a rigid transform: a position and a unit orientation.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// IdentityTransform returns a transform at the origin with no rotation.
func IdentityTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
	}
}

// NewTransform builds a transform from a position and orientation.
// The orientation is normalized.
func NewTransform(pos mgl64.Vec3, rot mgl64.Quat) Transform {
	return Transform{Position: pos, Rotation: rot.Normalize()}
}

// Basis returns the rotation part as a 3x3 matrix. Column 0 is the local
// X axis (right), column 1 is Y (up) and column 2 is Z (forward).
func (t Transform) Basis() mgl64.Mat3 {
	return t.Rotation.Mat4().Mat3()
}

// Apply transforms a point from local to world coordinates.
func (t Transform) Apply(v mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(v).Add(t.Position)
}

// ApproxEqual reports whether both position and orientation match within eps.
// Orientations q and -q are treated as equal.
func (t Transform) ApproxEqual(o Transform, eps float64) bool {
	return t.Position.ApproxEqualThreshold(o.Position, eps) &&
		t.Rotation.OrientationEqualThreshold(o.Rotation, eps)
}
