package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/glide/physics"
)

// Palette holds the kart body colors, indexed by kart ID.
var Palette = []color.RGBA{
	{R: 230, G: 80, B: 70, A: 255},
	{R: 70, G: 160, B: 230, A: 255},
	{R: 240, G: 200, B: 60, A: 255},
	{R: 110, G: 200, B: 110, A: 255},
	{R: 190, G: 110, B: 220, A: 255},
	{R: 240, G: 140, B: 60, A: 255},
}

// KartColor returns the palette color for a kart.
func KartColor(id int) color.RGBA {
	return Palette[((id%len(Palette))+len(Palette))%len(Palette)]
}

// KartRenderer draws box-shaped karts from a shared cube model.
type KartRenderer struct {
	model       rl.Model
	halfExtents mgl64.Vec3
	initialized bool
}

// NewKartRenderer creates a kart renderer for boxes with the given half extents.
func NewKartRenderer(halfExtents mgl64.Vec3) *KartRenderer {
	return &KartRenderer{halfExtents: halfExtents}
}

// Init builds the cube model (must be called after raylib window is created).
func (r *KartRenderer) Init() {
	if r.initialized {
		return
	}
	size := r.halfExtents.Mul(2)
	mesh := rl.GenMeshCube(float32(size.X()), float32(size.Y()), float32(size.Z()))
	r.model = rl.LoadModelFromMesh(mesh)
	r.initialized = true
}

// Draw renders a solid kart at t.
func (r *KartRenderer) Draw(t physics.Transform, col color.RGBA) {
	if !r.initialized {
		r.Init()
	}
	axis, angle := axisAngle(t.Rotation)
	pos := vec3(t.Position)
	rl.DrawModelEx(r.model, pos, axis, angle, rl.NewVector3(1, 1, 1), col)
	rl.DrawModelWiresEx(r.model, pos, axis, angle, rl.NewVector3(1, 1, 1), rl.Black)
}

// DrawGhost renders a wireframe kart, used for the authoritative transform.
func (r *KartRenderer) DrawGhost(t physics.Transform, col color.RGBA) {
	if !r.initialized {
		r.Init()
	}
	axis, angle := axisAngle(t.Rotation)
	rl.DrawModelWiresEx(r.model, vec3(t.Position), axis, angle, rl.NewVector3(1, 1, 1), rl.Fade(col, 0.6))
}

// DrawAxes renders the local right (red), up (green) and forward (blue) axes.
func (r *KartRenderer) DrawAxes(t physics.Transform, length float64) {
	origin := vec3(t.Position)
	rl.DrawLine3D(origin, vec3(t.Apply(mgl64.Vec3{length, 0, 0})), rl.Red)
	rl.DrawLine3D(origin, vec3(t.Apply(mgl64.Vec3{0, length, 0})), rl.Green)
	rl.DrawLine3D(origin, vec3(t.Apply(mgl64.Vec3{0, 0, length})), rl.Blue)
}

// DrawOffset renders a line from the authoritative to the smoothed position.
func (r *KartRenderer) DrawOffset(real, smoothed mgl64.Vec3) {
	rl.DrawLine3D(vec3(real), vec3(smoothed), rl.Magenta)
}

// DrawMarker renders a fading sphere where a correction landed.
func (r *KartRenderer) DrawMarker(pos mgl64.Vec3, alpha float32) {
	if alpha <= 0 {
		return
	}
	radius := float32(r.halfExtents.Len()) * (1.5 - 0.5*alpha)
	rl.DrawSphereWires(vec3(pos), radius, 8, 12, rl.Fade(rl.Orange, alpha))
}

// Unload frees resources.
func (r *KartRenderer) Unload() {
	if r.initialized {
		rl.UnloadModel(r.model)
		r.initialized = false
	}
}
