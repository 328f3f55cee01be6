package systems

import (
	"cmp"
	"log/slog"
	"math"
	"math/rand"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/glide/components"
	"github.com/pthm-cable/glide/config"
)

// Correction describes one injected change to a kart's authoritative
// transform.
type Correction struct {
	KartID  int
	Jump    float64 // positional error in world units
	Yaw     float64 // heading error in radians
	Started bool    // whether the kart began smoothing it
}

// LogValue implements slog.LogValuer for structured logging.
func (c Correction) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("kart", c.KartID),
		slog.Float64("jump", c.Jump),
		slog.Float64("yaw", c.Yaw),
		slog.Bool("started", c.Started),
	)
}

// CorrectionSystem periodically moves a kart's authoritative transform the
// way a server reconciliation would, cycling through karts.
type CorrectionSystem struct {
	filter *ecs.Filter1[components.Kart]
	rng    *rand.Rand
	cfg    config.ScenarioConfig
	timer  float64
	next   int
	karts  []*components.Kart
}

// NewCorrectionSystem creates a correction system.
func NewCorrectionSystem(w *ecs.World, cfg config.ScenarioConfig, seed int64) *CorrectionSystem {
	return &CorrectionSystem{
		filter: ecs.NewFilter1[components.Kart](w),
		rng:    rand.New(rand.NewSource(seed)),
		cfg:    cfg,
	}
}

// Update runs once per physics tick, after the karts were synced. It
// reports the correction applied on this tick, if any.
func (s *CorrectionSystem) Update(dt float64) (Correction, bool) {
	if s.cfg.CorrectionInterval <= 0 || !(dt > 0) {
		return Correction{}, false
	}
	s.timer += dt
	if s.timer < s.cfg.CorrectionInterval {
		return Correction{}, false
	}
	s.timer -= s.cfg.CorrectionInterval

	s.collect()
	if len(s.karts) == 0 {
		return Correction{}, false
	}
	k := s.karts[s.next%len(s.karts)]
	s.next++
	return s.Apply(k), true
}

// Inject corrects the kart with the given ID immediately.
func (s *CorrectionSystem) Inject(id int) (Correction, bool) {
	s.collect()
	for _, k := range s.karts {
		if k.ID == id {
			return s.Apply(k), true
		}
	}
	return Correction{}, false
}

// Apply shifts the kart by a random horizontal offset and yaw error, then
// lets it decide whether to smooth the jump.
func (s *CorrectionSystem) Apply(k *components.Kart) Correction {
	m := k.Body

	dir := s.rng.Float64() * 2 * math.Pi
	jump := s.cfg.CorrectionMagnitude * (0.25 + 0.75*s.rng.Float64())
	yaw := (2*s.rng.Float64() - 1) * s.cfg.CorrectionYaw

	m.PrepareSmoothing()
	t := m.Trans()
	t.Position = t.Position.Add(mgl64.Vec3{math.Cos(dir) * jump, 0, math.Sin(dir) * jump})
	t.Rotation = mgl64.QuatRotate(yaw, up).Mul(t.Rotation)
	m.SetTrans(t)

	c := Correction{KartID: k.ID, Jump: jump, Yaw: yaw, Started: m.CheckSmoothing()}
	slog.Debug("correction injected", "correction", c)
	return c
}

// collect refreshes the kart list in ID order.
func (s *CorrectionSystem) collect() {
	s.karts = s.karts[:0]
	query := s.filter.Query()
	for query.Next() {
		s.karts = append(s.karts, query.Get())
	}
	slices.SortFunc(s.karts, func(a, b *components.Kart) int {
		return cmp.Compare(a.ID, b.ID)
	})
}
