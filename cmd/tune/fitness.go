package main

import (
	"log"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/glide/config"
	"github.com/pthm-cable/glide/game"
	"github.com/pthm-cable/glide/telemetry"
)

// Fitness weights. Peak acceleration is scaled to roughly one unit per
// noticeable jerk so both terms are comparable.
const (
	accelScale = 100.0 // m/s^2
	lagWeight  = 1.0   // per metre of mean offset
	warmupSec  = 1.0
)

// Breakdown holds the components of one evaluation.
type Breakdown struct {
	PeakAccel float64 // worst rendered acceleration beyond what driving explains
	Lag       float64 // mean offset while smoothing
}

// FitnessEvaluator runs headless scenarios and scores smoothing settings.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu   sync.Mutex
	last Breakdown
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 2.0,
	}
}

// Last returns the breakdown of the most recent evaluation.
func (fe *FitnessEvaluator) Last() Breakdown {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// Evaluate computes fitness for raw parameter values (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]Breakdown, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	peaks := make([]float64, len(results))
	lags := make([]float64, len(results))
	for i, r := range results {
		peaks[i] = r.PeakAccel
		lags[i] = r.Lag
	}
	b := Breakdown{PeakAccel: stat.Mean(peaks, nil), Lag: stat.Mean(lags, nil)}

	fe.mu.Lock()
	fe.last = b
	fe.mu.Unlock()

	return fitness(b)
}

func fitness(b Breakdown) float64 {
	return b.PeakAccel/accelScale + lagWeight*b.Lag
}

// runSimulation executes one headless run and measures it.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) Breakdown {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	var windows []telemetry.WindowStats
	g, err := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		Config:         cfg,
		StatsCallback: func(s telemetry.WindowStats) {
			windows = append(windows, s)
		},
	})
	if err != nil {
		log.Fatalf("creating game: %v", err)
	}
	defer g.Unload()

	tracker := newAccelTracker(g.KartCount(), cfg.Derived.FrameDT)
	warmupTicks := int32(warmupSec / cfg.Physics.DT)

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
		for id := range g.KartCount() {
			k, ok := g.Kart(id)
			if !ok {
				continue
			}
			tracker.observe(id, k.Body.SmoothedXYZ(), k.Body.XYZ(), g.Tick() >= warmupTicks)
		}
	}

	var lags []float64
	for _, w := range windows {
		if w.Frames > 0 && w.SmoothingFrac > 0 {
			lags = append(lags, w.OffsetMean)
		}
	}
	lag := 0.0
	if len(lags) > 0 {
		lag = stat.Mean(lags, nil)
	}
	return Breakdown{PeakAccel: tracker.peak, Lag: lag}
}

// accelTracker measures the rendered acceleration of each kart from the
// second difference of its smoothed position, less the acceleration of the
// authoritative path. Corrections teleport the authoritative position, so
// its second difference is only trusted when it is small.
type accelTracker struct {
	dt2    float64
	shown  [][]mgl64.Vec3
	actual [][]mgl64.Vec3
	peak   float64
}

func newAccelTracker(karts int, frameDT float64) *accelTracker {
	return &accelTracker{
		dt2:    frameDT * frameDT,
		shown:  make([][]mgl64.Vec3, karts),
		actual: make([][]mgl64.Vec3, karts),
	}
}

func (t *accelTracker) observe(id int, shown, actual mgl64.Vec3, measure bool) {
	t.shown[id] = push3(t.shown[id], shown)
	t.actual[id] = push3(t.actual[id], actual)
	if !measure || len(t.shown[id]) < 3 {
		return
	}

	s := t.shown[id]
	a := t.actual[id]
	shownAcc := s[2].Sub(s[1].Mul(2)).Add(s[0]).Len() / t.dt2
	actualAcc := a[2].Sub(a[1].Mul(2)).Add(a[0]).Len() / t.dt2
	if actualAcc > accelScale*10 {
		actualAcc = 0
	}
	t.peak = math.Max(t.peak, shownAcc-actualAcc)
}

// push3 keeps the last three samples.
func push3(buf []mgl64.Vec3, v mgl64.Vec3) []mgl64.Vec3 {
	buf = append(buf, v)
	if len(buf) > 3 {
		buf = buf[len(buf)-3:]
	}
	return buf
}

// copyConfig returns a copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
