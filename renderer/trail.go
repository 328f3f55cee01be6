package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

// Trail is a fixed-size history of rendered positions.
type Trail struct {
	points []mgl64.Vec3
	next   int
	count  int
}

// NewTrail creates a trail holding up to n points.
func NewTrail(n int) *Trail {
	if n < 2 {
		n = 2
	}
	return &Trail{points: make([]mgl64.Vec3, n)}
}

// Push appends a point, overwriting the oldest when full.
func (t *Trail) Push(p mgl64.Vec3) {
	t.points[t.next] = p
	t.next = (t.next + 1) % len(t.points)
	if t.count < len(t.points) {
		t.count++
	}
}

// Len returns the number of stored points.
func (t *Trail) Len() int { return t.count }

// At returns the i-th stored point, oldest first.
func (t *Trail) At(i int) mgl64.Vec3 {
	start := (t.next - t.count + len(t.points)) % len(t.points)
	return t.points[(start+i)%len(t.points)]
}

// Clear drops all points.
func (t *Trail) Clear() {
	t.next = 0
	t.count = 0
}

// DrawTrail renders the trail as a polyline fading toward its tail.
func DrawTrail(t *Trail, col color.RGBA) {
	n := t.Len()
	for i := 1; i < n; i++ {
		alpha := float32(i) / float32(n)
		rl.DrawLine3D(vec3(t.At(i-1)), vec3(t.At(i)), rl.Fade(col, alpha))
	}
}
