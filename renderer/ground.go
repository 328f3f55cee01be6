package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/glide/camera"
)

// GroundRenderer draws the ground plane and a reference grid around the
// camera target.
type GroundRenderer struct {
	y       float32
	size    float32
	spacing float32
}

// NewGroundRenderer creates a ground renderer at height y.
func NewGroundRenderer(y float64) *GroundRenderer {
	return &GroundRenderer{y: float32(y), size: 400, spacing: 4}
}

// Draw renders the ground. Must be called inside Begin/End.
func (g *GroundRenderer) Draw(cam *camera.Camera) {
	center := vec3(cam.Target)
	// Snap the grid to whole cells so it does not swim with the camera
	center.X = float32(int(center.X/g.spacing)) * g.spacing
	center.Z = float32(int(center.Z/g.spacing)) * g.spacing
	center.Y = g.y

	rl.DrawPlane(center, rl.NewVector2(g.size, g.size), rl.Color{R: 48, G: 56, B: 60, A: 255})

	rl.PushMatrix()
	rl.Translatef(center.X, g.y+0.01, center.Z)
	rl.DrawGrid(int32(g.size/g.spacing), g.spacing)
	rl.PopMatrix()
}

// Camera3D converts the chase camera into raylib's camera.
func Camera3D(cam *camera.Camera) rl.Camera3D {
	eye, target, up := cam.View()
	return rl.Camera3D{
		Position:   vec3(eye),
		Target:     vec3(target),
		Up:         vec3(up),
		Fovy:       float32(cam.Fovy),
		Projection: rl.CameraPerspective,
	}
}

// ScreenPos projects a world point to screen coordinates.
func ScreenPos(cam *camera.Camera, p mgl64.Vec3) (float32, float32) {
	v := rl.GetWorldToScreen(vec3(p), Camera3D(cam))
	return v.X, v.Y
}

// Begin starts 3D drawing from the camera's point of view.
func Begin(cam *camera.Camera) {
	rl.BeginMode3D(Camera3D(cam))
}

// End finishes 3D drawing.
func End() {
	rl.EndMode3D()
}
