package systems

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/glide/components"
	"github.com/pthm-cable/glide/config"
)

var (
	forward = mgl64.Vec3{0, 0, 1}
	up      = mgl64.Vec3{0, 1, 0}
)

// DrivingSystem steers every kart along a smooth noise-driven path. It
// writes body velocities before the physics step.
type DrivingSystem struct {
	filter *ecs.Filter2[components.Kart, components.Driver]
	noise  opensimplex.Noise
	cfg    config.ScenarioConfig
	time   float64
}

// NewDrivingSystem creates a driving system.
func NewDrivingSystem(w *ecs.World, cfg config.ScenarioConfig, seed int64) *DrivingSystem {
	return &DrivingSystem{
		filter: ecs.NewFilter2[components.Kart, components.Driver](w),
		noise:  opensimplex.New(seed),
		cfg:    cfg,
	}
}

// Update runs once per physics tick.
func (s *DrivingSystem) Update(dt float64) {
	s.time += dt
	t := s.time * s.cfg.NoiseScale

	query := s.filter.Query()
	for query.Next() {
		k, d := query.Get()

		d.Steer = clampUnit(s.noise.Eval2(t, d.Lane))
		d.Throttle = 0.75 + 0.25*clampUnit(s.noise.Eval2(d.Lane, t))

		m := k.Body
		fwd := m.Rotation().Rotate(forward)
		fwd[1] = 0
		if fwd.Len() < 1e-6 {
			continue
		}
		fwd = fwd.Normalize()

		v := fwd.Mul(s.cfg.CruiseSpeed * d.Throttle)
		v[1] = m.Velocity().Y()
		m.SetVelocity(v)
		m.Body().SetAngularVelocity(up.Mul(d.Steer * s.cfg.SteerRate))
	}
}

// Time returns the scenario time driven so far.
func (s *DrivingSystem) Time() float64 { return s.time }

func clampUnit(v float64) float64 {
	return mgl64.Clamp(v, -1, 1)
}
