package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/glide/config"
	"github.com/pthm-cable/glide/physics"
)

func testConfig() config.CameraConfig {
	return config.CameraConfig{Distance: 10, Height: 4, FollowRate: 5, Fovy: 55}
}

func TestDesiredBehindTarget(t *testing.T) {
	cam := New(testConfig())
	target := physics.NewTransform(mgl64.Vec3{5, 0, 5}, mgl64.QuatIdent())

	got := cam.Desired(target)
	want := mgl64.Vec3{5, 4, -5}
	if !got.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDesiredFollowsHeadingOnly(t *testing.T) {
	cam := New(testConfig())
	// Facing +X, pitched and rolled
	rot := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0}).
		Mul(mgl64.QuatRotate(-0.3, mgl64.Vec3{1, 0, 0})).
		Mul(mgl64.QuatRotate(0.5, mgl64.Vec3{0, 0, 1}))
	target := physics.NewTransform(mgl64.Vec3{}, rot)

	got := cam.Desired(target)
	want := mgl64.Vec3{-10, 4, 0}
	if !got.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFollowConverges(t *testing.T) {
	cam := New(testConfig())
	target := physics.NewTransform(mgl64.Vec3{20, 0, 0}, mgl64.QuatIdent())

	prev := cam.Desired(target).Sub(cam.Position).Len()
	for range 120 {
		cam.Follow(target, 1.0/60.0)
		d := cam.Desired(target).Sub(cam.Position).Len()
		if d > prev+1e-12 {
			t.Fatalf("camera moved away: %v -> %v", prev, d)
		}
		prev = d
	}
	if prev > 0.01 {
		t.Errorf("expected camera to settle, still %v away", prev)
	}
	if cam.Target != target.Position {
		t.Errorf("expected target %v, got %v", target.Position, cam.Target)
	}
}

func TestFollowFrameRateIndependent(t *testing.T) {
	target := physics.NewTransform(mgl64.Vec3{20, 0, 0}, mgl64.QuatIdent())

	a := New(testConfig())
	for range 60 {
		a.Follow(target, 1.0/60.0)
	}
	b := New(testConfig())
	for range 30 {
		b.Follow(target, 1.0/30.0)
	}
	if !a.Position.ApproxEqualThreshold(b.Position, 1e-9) {
		t.Errorf("60Hz %v and 30Hz %v disagree", a.Position, b.Position)
	}
}

func TestFollowIgnoresInvalidDT(t *testing.T) {
	cam := New(testConfig())
	start := cam.Position
	target := physics.NewTransform(mgl64.Vec3{20, 0, 0}, mgl64.QuatIdent())
	for _, dt := range []float64{0, -1, math.NaN()} {
		cam.Follow(target, dt)
	}
	if cam.Position != start {
		t.Errorf("camera moved on invalid dt: %v", cam.Position)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(testConfig())

	cam.SetZoom(0.01)
	if cam.Zoom != 0.25 {
		t.Errorf("expected zoom clamped to 0.25, got %f", cam.Zoom)
	}
	cam.SetZoom(10.0)
	if cam.Zoom != 4.0 {
		t.Errorf("expected zoom clamped to 4.0, got %f", cam.Zoom)
	}

	cam.SetZoom(1)
	cam.ZoomBy(2)
	target := physics.IdentityTransform()
	if got := cam.Desired(target); !got.ApproxEqualThreshold(mgl64.Vec3{0, 2, -5}, 1e-9) {
		t.Errorf("zoom 2 should halve the offset, got %v", got)
	}
}

func TestOrbitAndReset(t *testing.T) {
	cam := New(testConfig())
	cam.OrbitBy(math.Pi)
	cam.ZoomBy(2)

	got := cam.Desired(physics.IdentityTransform())
	if !got.ApproxEqualThreshold(mgl64.Vec3{0, 2, 5}, 1e-9) {
		t.Errorf("half orbit should view from the front, got %v", got)
	}

	cam.OrbitBy(3 * math.Pi)
	if cam.Orbit < -math.Pi || cam.Orbit > math.Pi {
		t.Errorf("orbit not wrapped: %v", cam.Orbit)
	}

	cam.Reset()
	if cam.Zoom != 1 || cam.Orbit != 0 {
		t.Errorf("expected defaults after reset, got zoom %v orbit %v", cam.Zoom, cam.Orbit)
	}
}

func TestSnap(t *testing.T) {
	cam := New(testConfig())
	target := physics.NewTransform(mgl64.Vec3{1, 2, 3}, mgl64.QuatIdent())
	cam.Snap(target)

	eye, look, up := cam.View()
	if !eye.ApproxEqualThreshold(cam.Desired(target), 1e-12) || look != target.Position {
		t.Errorf("snap did not place the camera: eye %v target %v", eye, look)
	}
	if up != (mgl64.Vec3{0, 1, 0}) {
		t.Errorf("unexpected up %v", up)
	}
}
