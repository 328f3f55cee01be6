package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestAxisAngle(t *testing.T) {
	tests := []struct {
		name  string
		q     mgl64.Quat
		axis  mgl64.Vec3
		angle float64
	}{
		{"identity", mgl64.QuatIdent(), mgl64.Vec3{0, 1, 0}, 0},
		{"yaw 90", mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0}), mgl64.Vec3{0, 1, 0}, 90},
		{"roll -45", mgl64.QuatRotate(-math.Pi/4, mgl64.Vec3{0, 0, 1}), mgl64.Vec3{0, 0, -1}, 45},
		{"negated", mgl64.QuatRotate(0.5, mgl64.Vec3{1, 0, 0}).Scale(-1), mgl64.Vec3{1, 0, 0}, mgl64.RadToDeg(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			axis, angle := axisAngle(tt.q)
			got := mgl64.Vec3{float64(axis.X), float64(axis.Y), float64(axis.Z)}
			if !got.ApproxEqualThreshold(tt.axis, 1e-5) {
				t.Errorf("axis = %v, want %v", got, tt.axis)
			}
			if math.Abs(float64(angle)-tt.angle) > 1e-3 {
				t.Errorf("angle = %v, want %v", angle, tt.angle)
			}
		})
	}
}

func TestTrailRing(t *testing.T) {
	tr := NewTrail(3)
	for i := range 5 {
		tr.Push(mgl64.Vec3{float64(i), 0, 0})
	}

	if tr.Len() != 3 {
		t.Fatalf("expected 3 points, got %d", tr.Len())
	}
	for i, want := range []float64{2, 3, 4} {
		if got := tr.At(i).X(); got != want {
			t.Errorf("At(%d) = %v, want %v", i, got, want)
		}
	}

	tr.Clear()
	if tr.Len() != 0 {
		t.Error("expected empty trail after clear")
	}
	tr.Push(mgl64.Vec3{9, 0, 0})
	if tr.At(0).X() != 9 {
		t.Errorf("expected oldest point 9, got %v", tr.At(0))
	}
}

func TestKartColorWraps(t *testing.T) {
	if KartColor(0) != KartColor(len(Palette)) {
		t.Error("palette should wrap")
	}
	if KartColor(-1) != Palette[len(Palette)-1] {
		t.Error("negative IDs should wrap")
	}
}

func TestMarkerFades(t *testing.T) {
	var m Marker
	if m.Active() {
		t.Fatal("zero marker should be inactive")
	}
	m.Update(0.1)

	m.Start(mgl64.Vec3{1, 2, 3})
	if m.Alpha() != 1 {
		t.Fatalf("expected full alpha after start, got %v", m.Alpha())
	}

	m.Update(markerFade / 2)
	mid := m.Alpha()
	if mid <= 0 || mid >= 1 {
		t.Errorf("expected partial alpha mid-fade, got %v", mid)
	}

	m.Update(markerFade)
	if m.Active() {
		t.Errorf("expected marker to finish, alpha %v", m.Alpha())
	}
}
