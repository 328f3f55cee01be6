// Package renderer draws the kart scene with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

// vec3 converts a world vector to raylib's float32 vector.
func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

// axisAngle converts an orientation to the axis and angle in degrees that
// raylib's model drawing expects. The identity maps to a zero angle about Y.
func axisAngle(q mgl64.Quat) (rl.Vector3, float32) {
	q = q.Normalize()
	if q.W < 0 {
		q = q.Scale(-1)
	}
	s := math.Sqrt(math.Max(0, 1-q.W*q.W))
	if s < 1e-9 {
		return rl.NewVector3(0, 1, 0), 0
	}
	axis := q.V.Mul(1 / s)
	angle := 2 * math.Acos(math.Min(q.W, 1))
	return vec3(axis), float32(mgl64.RadToDeg(angle))
}
