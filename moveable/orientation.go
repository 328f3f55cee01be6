package moveable

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// gimbalEpsilon is the horizontal length of the forward axis below which
// heading and roll can no longer be separated.
const gimbalEpsilon = 1e-12

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
)

// Angles are the gameplay angles of an orientation, in radians.
// Y is up and Z is forward. Heading turns about Y, positive pitch raises
// the nose and roll turns about the forward axis.
type Angles struct {
	Heading float64 // (-pi, pi]
	Pitch   float64 // [-pi/2, pi/2]
	Roll    float64 // (-pi, pi]
}

// Compose builds the orientation Ry(heading) * Rx(-pitch) * Rz(roll).
func Compose(a Angles) mgl64.Quat {
	h := mgl64.QuatRotate(a.Heading, axisY)
	p := mgl64.QuatRotate(-a.Pitch, axisX)
	r := mgl64.QuatRotate(a.Roll, axisZ)
	return h.Mul(p).Mul(r).Normalize()
}

// Decompose derives heading, pitch and roll from q. Near vertical pitch
// the roll is pinned to zero and folded into the heading. Results are
// always finite and inside their ranges.
func Decompose(q mgl64.Quat) Angles {
	m := q.Normalize().Mat4().Mat3()
	fwd := m.Col(2)

	pitch := math.Asin(mgl64.Clamp(fwd.Y(), -1, 1))

	var heading, roll float64
	if math.Hypot(fwd.X(), fwd.Z()) < gimbalEpsilon {
		heading = math.Atan2(-math.Copysign(1, fwd.Y())*m.At(0, 1), m.At(0, 0))
	} else {
		heading = math.Atan2(fwd.X(), fwd.Z())
		roll = math.Atan2(m.At(1, 0), m.At(1, 1))
	}

	return Angles{
		Heading: wrapAngle(heading),
		Pitch:   saturate(pitch, -math.Pi/2, math.Pi/2),
		Roll:    wrapAngle(roll),
	}
}

// wrapAngle maps a to (-pi, pi]. NaN and infinities become 0.
func wrapAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Remainder(a, 2*math.Pi)
	if a <= -math.Pi {
		a = math.Pi
	}
	return a
}

// saturate clamps v to [lo, hi]. NaN becomes 0.
func saturate(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
