package moveable

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/glide/config"
	"github.com/pthm-cable/glide/physics"
)

const (
	frameDT = 1.0 / 60.0
	posTol  = 1e-6
)

// newWorld returns a physics world without gravity, damping or a reachable
// ground so bodies only move when told to.
func newWorld() *physics.World {
	return physics.NewWorld(ecs.NewWorld(), config.PhysicsConfig{DT: 1.0 / 120.0, GroundY: -100})
}

func newBodied(t *testing.T, settings Settings) (*Moveable, *physics.World) {
	t.Helper()
	w := newWorld()
	m := New(settings)
	m.CreateBody(w, 1, physics.IdentityTransform(), mgl64.Vec3{0.5, 0.5, 0.5}, 0)
	if m.Body() == nil {
		t.Fatal("expected body after CreateBody")
	}
	return m, w
}

func idle(t *testing.T, m *Moveable, step string) {
	t.Helper()
	if m.Smoothing() != SmoothingNone {
		t.Fatalf("%s: expected phase none, got %v", step, m.Smoothing())
	}
	if !m.SmoothedTrans().ApproxEqual(m.Trans(), posTol) {
		t.Errorf("%s: smoothed %v differs from authoritative %v", step, m.SmoothedTrans(), m.Trans())
	}
}

func TestNewStartsAtIdentity(t *testing.T) {
	m := New(DefaultSettings())
	if !m.Trans().ApproxEqual(physics.IdentityTransform(), posTol) {
		t.Errorf("expected identity, got %v", m.Trans())
	}
	idle(t, m, "new")
	if m.Body() != nil {
		t.Error("expected no body")
	}
}

func TestIdleSmoothedFollowsSetters(t *testing.T) {
	for _, bodied := range []bool{false, true} {
		m := New(DefaultSettings())
		if bodied {
			m.CreateBody(newWorld(), 1, physics.IdentityTransform(), mgl64.Vec3{1, 1, 1}, 0)
		}

		m.SetXYZ(mgl64.Vec3{1, 2, 3})
		idle(t, m, "SetXYZ")
		m.SetRotation(mgl64.QuatRotate(0.7, axisY))
		idle(t, m, "SetRotation")
		m.SetRotationMatrix(mgl64.Rotate3DX(0.3))
		idle(t, m, "SetRotationMatrix")
		m.SetTrans(physics.NewTransform(mgl64.Vec3{-4, 0, 9}, Compose(Angles{Heading: 2})))
		idle(t, m, "SetTrans")
		m.Update()
		idle(t, m, "Update")
		m.AdvanceGraphics(frameDT, nil)
		idle(t, m, "AdvanceGraphics")
	}
}

func TestSettersPropagateToBody(t *testing.T) {
	m, _ := newBodied(t, DefaultSettings())
	m.SetXYZ(mgl64.Vec3{3, 4, 5})

	got := m.Body().MotionState().WorldTransform().Position
	if !got.ApproxEqualThreshold(mgl64.Vec3{3, 4, 5}, posTol) {
		t.Errorf("motion state not updated, got %v", got)
	}
}

func TestSetTransRecomputesAngles(t *testing.T) {
	m := New(DefaultSettings())
	m.SetTrans(physics.NewTransform(mgl64.Vec3{}, Compose(Angles{Heading: 1, Pitch: 0.2})))
	if math.Abs(m.Heading()-1) > 1e-6 || math.Abs(m.Pitch()-0.2) > 1e-6 || math.Abs(m.Roll()) > 1e-6 {
		t.Errorf("unexpected angles %+v", m.Angles())
	}
}

func TestUpdatePullsFromPhysics(t *testing.T) {
	m, w := newBodied(t, DefaultSettings())
	m.SetVelocity(mgl64.Vec3{6, 0, 0})

	for range 60 {
		w.Step(1.0 / 120.0)
		m.Update()
	}
	if math.Abs(m.XYZ().X()-3) > 1e-6 {
		t.Errorf("expected x=3 after half a second, got %v", m.XYZ().X())
	}
	idle(t, m, "after ticks")
}

func TestVelocityLCPreservesMagnitude(t *testing.T) {
	m, _ := newBodied(t, DefaultSettings())
	m.SetRotation(Compose(Angles{Heading: 0.9, Pitch: -0.4, Roll: 1.3}))

	v := mgl64.Vec3{2, -1, 7}
	m.SetVelocity(v)
	m.Update()

	if math.Abs(m.VelocityLC().Len()-v.Len()) > 1e-9 {
		t.Errorf("|v_LC| = %v, want %v", m.VelocityLC().Len(), v.Len())
	}
	if !m.Rotation().Rotate(m.VelocityLC()).ApproxEqualThreshold(v, 1e-9) {
		t.Errorf("local velocity %v does not rotate back to %v", m.VelocityLC(), v)
	}
}

func TestVelocityLCForwardIsZ(t *testing.T) {
	m, _ := newBodied(t, DefaultSettings())
	m.SetRotation(Compose(Angles{Heading: math.Pi / 2}))
	// Heading pi/2 faces +X.
	m.SetVelocity(mgl64.Vec3{5, 0, 0})
	m.Update()

	if !m.VelocityLC().ApproxEqualThreshold(mgl64.Vec3{0, 0, 5}, 1e-9) {
		t.Errorf("expected forward velocity, got %v", m.VelocityLC())
	}
}

func TestCorrectionScenario(t *testing.T) {
	m, _ := newBodied(t, DefaultSettings())

	m.PrepareSmoothing()
	m.SetXYZ(mgl64.Vec3{10, 0, 0})
	if !m.RequestCorrection() {
		t.Fatal("expected correction to start")
	}
	if m.Smoothing() != SmoothingToAdjust {
		t.Fatalf("expected to_adjust, got %v", m.Smoothing())
	}
	if !m.SmoothedXYZ().ApproxEqualThreshold(mgl64.Vec3{}, posTol) {
		t.Fatalf("smoothed should start at origin, got %v", m.SmoothedXYZ())
	}

	frames := int(math.Round(2 * m.Settings().PhaseDuration / frameDT))
	lastX := 0.0
	for i := range frames {
		m.AdvanceGraphics(frameDT, nil)
		x := m.SmoothedXYZ().X()
		if x < lastX-1e-12 {
			t.Fatalf("frame %d: x reversed from %v to %v", i, lastX, x)
		}
		lastX = x
	}

	if !m.SmoothedXYZ().ApproxEqualThreshold(mgl64.Vec3{10, 0, 0}, posTol) {
		t.Errorf("expected smoothed at (10,0,0), got %v", m.SmoothedXYZ())
	}
	idle(t, m, "after two phases")
}

func TestPhaseTransitions(t *testing.T) {
	m, _ := newBodied(t, DefaultSettings())
	m.PrepareSmoothing()
	m.SetXYZ(mgl64.Vec3{2, 0, 0})
	m.RequestCorrection()

	half := m.Settings().PhaseDuration / 2
	m.AdvanceGraphics(half, nil)
	if m.Smoothing() != SmoothingToAdjust {
		t.Errorf("expected to_adjust mid phase, got %v", m.Smoothing())
	}
	m.AdvanceGraphics(half, nil)
	if m.Smoothing() != SmoothingToReal {
		t.Errorf("expected to_real after one phase, got %v", m.Smoothing())
	}
	elapsed, duration := m.PhaseElapsed()
	if elapsed != 0 || duration != m.Settings().PhaseDuration {
		t.Errorf("expected fresh phase timer, got %v/%v", elapsed, duration)
	}

	// A huge frame cannot skip past the end of the leg.
	m.AdvanceGraphics(10, nil)
	idle(t, m, "after long frame")
}

func TestConvergesWhileMoving(t *testing.T) {
	m, w := newBodied(t, DefaultSettings())
	m.SetVelocity(mgl64.Vec3{0, 0, 8})

	m.PrepareSmoothing()
	m.SetXYZ(mgl64.Vec3{1.5, 0, 0})
	m.RequestCorrection()

	// Interleave two ticks per frame for two phase durations.
	frames := int(math.Round(2 * m.Settings().PhaseDuration / frameDT))
	for range frames {
		w.Step(frameDT / 2)
		m.Update()
		w.Step(frameDT / 2)
		m.Update()
		m.AdvanceGraphics(frameDT, nil)
	}
	idle(t, m, "after convergence")
}

func TestZeroDTIsNoOp(t *testing.T) {
	m, _ := newBodied(t, DefaultSettings())
	m.PrepareSmoothing()
	m.SetXYZ(mgl64.Vec3{3, 0, 0})
	m.RequestCorrection()
	m.AdvanceGraphics(frameDT, nil)

	before := m.SmoothedTrans()
	phase := m.Smoothing()
	elapsed, _ := m.PhaseElapsed()

	for _, dt := range []float64{0, -1, math.NaN()} {
		m.AdvanceGraphics(dt, nil)
	}

	if m.SmoothedTrans() != before {
		t.Errorf("smoothed changed: %v -> %v", before, m.SmoothedTrans())
	}
	if m.Smoothing() != phase {
		t.Errorf("phase changed: %v -> %v", phase, m.Smoothing())
	}
	if e, _ := m.PhaseElapsed(); e != elapsed {
		t.Errorf("elapsed changed: %v -> %v", elapsed, e)
	}
}

func TestRestartMidFlight(t *testing.T) {
	m, _ := newBodied(t, DefaultSettings())
	m.PrepareSmoothing()
	m.SetXYZ(mgl64.Vec3{4, 0, 0})
	m.RequestCorrection()
	for range 5 {
		m.AdvanceGraphics(frameDT, nil)
	}
	current := m.SmoothedTrans()

	m.PrepareSmoothing()
	m.SetXYZ(mgl64.Vec3{4, 0, 3})
	if !m.RequestCorrection() {
		t.Fatal("expected restart to start a correction")
	}
	if m.Smoothing() != SmoothingToAdjust {
		t.Errorf("expected to_adjust after restart, got %v", m.Smoothing())
	}
	if !m.SmoothedTrans().ApproxEqual(current, posTol) {
		t.Errorf("restart should begin at %v, got %v", current, m.SmoothedTrans())
	}
	if m.Corrections() != 2 {
		t.Errorf("expected 2 corrections, got %d", m.Corrections())
	}
}

func TestResetMidCorrection(t *testing.T) {
	m, _ := newBodied(t, DefaultSettings())
	m.SetVelocity(mgl64.Vec3{1, 2, 3})
	m.Body().SetAngularVelocity(mgl64.Vec3{0, 1, 0})
	m.PrepareSmoothing()
	m.SetXYZ(mgl64.Vec3{5, 0, 0})
	m.RequestCorrection()
	m.AdvanceGraphics(frameDT, nil)

	m.Reset()

	idle(t, m, "reset")
	if m.Velocity() != (mgl64.Vec3{}) {
		t.Errorf("expected body stopped, got %v", m.Velocity())
	}
	if m.Body().AngularVelocity() != (mgl64.Vec3{}) {
		t.Errorf("expected no spin, got %v", m.Body().AngularVelocity())
	}
	if m.VelocityLC() != (mgl64.Vec3{}) {
		t.Errorf("expected zero local velocity, got %v", m.VelocityLC())
	}
	got := m.Body().MotionState().WorldTransform().Position
	if !got.ApproxEqualThreshold(mgl64.Vec3{5, 0, 0}, posTol) {
		t.Errorf("body not moved to stored transform, got %v", got)
	}

	// A stale snapshot must not survive the reset.
	if m.CheckSmoothing() {
		t.Error("CheckSmoothing should find no snapshot after reset")
	}
}

func TestNoBodyNeverSmooths(t *testing.T) {
	m := New(DefaultSettings())
	m.PrepareSmoothing()
	m.SetXYZ(mgl64.Vec3{2, 0, 0})
	if m.RequestCorrection() {
		t.Error("correction without a body should not start")
	}
	idle(t, m, "no body")
}

func TestDestroyMidCorrection(t *testing.T) {
	m, w := newBodied(t, DefaultSettings())
	m.PrepareSmoothing()
	m.SetXYZ(mgl64.Vec3{2, 0, 0})
	m.RequestCorrection()

	m.Destroy()
	if w.BodyCount() != 0 {
		t.Errorf("expected body released, got %d", w.BodyCount())
	}
	idle(t, m, "destroy")
	if !m.XYZ().ApproxEqualThreshold(mgl64.Vec3{2, 0, 0}, posTol) {
		t.Errorf("destroy should keep the transform, got %v", m.XYZ())
	}
}

func TestCheckSmoothingGate(t *testing.T) {
	tests := []struct {
		name  string
		jump  mgl64.Vec3
		vel   mgl64.Vec3
		start bool
	}{
		{"accepted", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 5}, true},
		{"too small", mgl64.Vec3{0.01, 0, 0}, mgl64.Vec3{0, 0, 5}, false},
		{"too large", mgl64.Vec3{50, 0, 0}, mgl64.Vec3{0, 0, 5}, false},
		{"too slow", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 0.01}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newBodied(t, DefaultSettings())
			m.SetVelocity(tt.vel)
			m.PrepareSmoothing()
			m.SetXYZ(tt.jump)

			if got := m.CheckSmoothing(); got != tt.start {
				t.Fatalf("CheckSmoothing = %v, want %v", got, tt.start)
			}
			if tt.start {
				if m.Smoothing() != SmoothingToAdjust {
					t.Errorf("expected to_adjust, got %v", m.Smoothing())
				}
				if !m.SmoothedXYZ().ApproxEqualThreshold(mgl64.Vec3{}, posTol) {
					t.Errorf("expected start at snapshot, got %v", m.SmoothedXYZ())
				}
			} else {
				idle(t, m, "rejected")
			}
			if m.CheckSmoothing() {
				t.Error("snapshot should be consumed")
			}
		})
	}
}

func TestRotationSmoothingToggle(t *testing.T) {
	target := Compose(Angles{Heading: 1.5})

	for _, smooth := range []bool{true, false} {
		s := DefaultSettings()
		s.SmoothRotation = smooth
		m, _ := newBodied(t, s)

		m.PrepareSmoothing()
		m.SetTrans(physics.NewTransform(mgl64.Vec3{1, 0, 0}, target))
		m.RequestCorrection()
		m.AdvanceGraphics(frameDT, nil)

		snapped := m.SmoothedTrans().Rotation.OrientationEqualThreshold(target, 1e-9)
		if smooth && snapped {
			t.Error("smoothed rotation should lag behind the target")
		}
		if !smooth && !snapped {
			t.Errorf("rotation should snap, got %v", m.SmoothedTrans().Rotation)
		}
	}
}

func TestRotationReachesTarget(t *testing.T) {
	m, _ := newBodied(t, DefaultSettings())
	target := Compose(Angles{Heading: -2, Roll: 0.5})
	m.PrepareSmoothing()
	m.SetRotation(target)
	m.RequestCorrection()

	prevAngle := math.Inf(1)
	frames := int(math.Round(2 * m.Settings().PhaseDuration / frameDT))
	for range frames {
		off := m.AdvanceGraphics(frameDT, nil)
		if off.Angle() > prevAngle+1e-9 {
			t.Fatalf("rotation offset grew from %v to %v", prevAngle, off.Angle())
		}
		prevAngle = off.Angle()
	}
	idle(t, m, "rotation")
}

type recordingGraphics struct {
	calls   int
	lastDT  float64
	lastOff Offset
}

func (r *recordingGraphics) UpdateGraphics(dt float64, off Offset) {
	r.calls++
	r.lastDT = dt
	r.lastOff = off
}

func TestAdvanceGraphicsCallsHook(t *testing.T) {
	m, _ := newBodied(t, DefaultSettings())
	m.PrepareSmoothing()
	m.SetXYZ(mgl64.Vec3{3, 0, 0})
	m.RequestCorrection()

	g := &recordingGraphics{}
	off := m.AdvanceGraphics(frameDT, g)

	if g.calls != 1 || g.lastDT != frameDT {
		t.Fatalf("hook called %d times with dt %v", g.calls, g.lastDT)
	}
	if g.lastOff != off {
		t.Errorf("hook got %v, returned %v", g.lastOff, off)
	}
	want := m.SmoothedXYZ().Sub(m.XYZ())
	if !off.Position.ApproxEqualThreshold(want, 1e-12) {
		t.Errorf("offset %v, want %v", off.Position, want)
	}
	if off.Position.X() >= 0 {
		t.Errorf("smoothed should trail behind, offset %v", off.Position)
	}
}

func TestSmoothingStateString(t *testing.T) {
	tests := map[SmoothingState]string{
		SmoothingNone:     "none",
		SmoothingToAdjust: "to_adjust",
		SmoothingToReal:   "to_real",
		SmoothingState(9): "unknown",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}

func TestBend(t *testing.T) {
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{4, 0, 0}
	c := mgl64.Vec3{0, 2, 0}

	if !bend(a, b, c, 0).ApproxEqual(a) {
		t.Error("bend at 0 should be a")
	}
	if !bend(a, b, c, 1).ApproxEqual(b) {
		t.Error("bend at 1 should be b")
	}
	// Initial tangent points at the control point.
	d := bend(a, b, c, 1e-6).Sub(a).Normalize()
	if !d.ApproxEqualThreshold(mgl64.Vec3{0, 1, 0}, 1e-3) {
		t.Errorf("tangent at start %v, want toward control", d)
	}
}

func TestSetPhaseDurationAppliesToNextCorrection(t *testing.T) {
	m, _ := newBodied(t, DefaultSettings())
	original := m.Settings().PhaseDuration

	m.PrepareSmoothing()
	m.SetXYZ(mgl64.Vec3{1, 0, 0})
	m.RequestCorrection()

	m.SetPhaseDuration(original * 2)
	m.SetPhaseDuration(0)
	if _, d := m.PhaseElapsed(); d != original {
		t.Errorf("running correction duration = %v, want %v", d, original)
	}

	m.ResetSmoothing()
	m.PrepareSmoothing()
	m.SetXYZ(mgl64.Vec3{2, 0, 0})
	m.RequestCorrection()
	if _, d := m.PhaseElapsed(); d != original*2 {
		t.Errorf("next correction duration = %v, want %v", d, original*2)
	}
}

func TestSnapshotExpiresAfterTick(t *testing.T) {
	m, w := newBodied(t, DefaultSettings())
	m.SetVelocity(mgl64.Vec3{10, 0, 0})

	m.PrepareSmoothing()
	for range 120 {
		w.Step(1.0 / 120.0)
		m.Update()
	}
	before := m.SmoothedTrans()
	if before.Position.X() < 9 {
		t.Fatalf("expected body to have moved, at %v", before.Position)
	}

	if !m.RequestCorrection() {
		t.Fatal("expected correction to start")
	}
	if !m.SmoothedTrans().ApproxEqual(before, posTol) {
		t.Errorf("correction should start at %v, got %v", before.Position, m.SmoothedXYZ())
	}
	if m.CheckSmoothing() {
		t.Error("stale snapshot should not start another correction")
	}
}

func TestFlying(t *testing.T) {
	w := physics.NewWorld(ecs.NewWorld(), config.PhysicsConfig{Gravity: 9.81, GroundY: -100})
	m := New(DefaultSettings())
	m.CreateBody(w, 1, physics.IdentityTransform(), mgl64.Vec3{0.5, 0.5, 0.5}, 0)
	m.Body().SetAngularVelocity(mgl64.Vec3{0, 1, 0})

	tick := func(n int) {
		for range n {
			w.Step(1.0 / 120.0)
			m.Update()
		}
	}

	m.FlyUp()
	if !m.Flying() {
		t.Fatal("expected flying after FlyUp")
	}
	startHeading := m.Heading()
	tick(120)
	if m.XYZ().Y() <= 0 || m.Velocity().Y() <= 0 {
		t.Errorf("expected to climb, at %v moving %v", m.XYZ(), m.Velocity())
	}
	if math.Abs(m.Heading()-startHeading) > 1e-12 {
		t.Errorf("orientation should be locked while flying, heading %v -> %v", startHeading, m.Heading())
	}

	m.FlyDown()
	if g := m.Body().Gravity(); g.Y() >= 0 {
		t.Errorf("expected downward lift, got %v", g)
	}

	m.StopFlying()
	if m.Flying() {
		t.Error("expected flying off after StopFlying")
	}
	if g := m.Body().Gravity(); math.Abs(g.Y()+9.81) > 1e-12 {
		t.Errorf("expected world gravity restored, got %v", g)
	}
	tick(60)
	if math.Abs(m.Heading()-startHeading) < 0.1 {
		t.Errorf("expected rotation to resume, heading still %v", m.Heading())
	}
}

func TestFlyingWithoutBody(t *testing.T) {
	m := New(DefaultSettings())
	m.FlyUp()
	if m.Flying() {
		t.Error("a body-less moveable cannot fly")
	}
	m.StopFlying()
}
