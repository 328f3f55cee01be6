package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated smoothing statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	Karts  int `csv:"karts"`
	Frames int `csv:"frames"`

	// Corrections during window
	Corrections int     `csv:"corrections"`
	Started     int     `csv:"started"`
	Snapped     int     `csv:"snapped"`
	Completed   int     `csv:"completed"`
	MaxJump     float64 `csv:"max_jump"`

	// Fraction of kart-frames spent in a smoothing phase
	SmoothingFrac float64 `csv:"smoothing_frac"`

	// Positional offset while smoothing
	OffsetMean float64 `csv:"offset_mean"`
	OffsetStd  float64 `csv:"offset_std"`
	OffsetP50  float64 `csv:"offset_p50"`
	OffsetP90  float64 `csv:"offset_p90"`
	OffsetMax  float64 `csv:"offset_max"`

	// Rotational offset while smoothing (radians)
	AngleMean float64 `csv:"angle_mean"`
	AngleP90  float64 `csv:"angle_p90"`
	AngleMax  float64 `csv:"angle_max"`
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// Percentile returns the p-th empirical quantile of a sorted slice:
// the smallest value whose cumulative share reaches p. Returns 0 if the
// slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = min(max(p, 0), 1)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// Summarize computes mean, sample standard deviation, percentiles and max.
// An empty sample yields all zeros.
func Summarize(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	d := Distribution{
		Mean: stat.Mean(sorted, nil),
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
		Max:  floats.Max(sorted),
	}
	if n > 1 {
		d.Std = stat.StdDev(sorted, nil)
	}
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("karts", s.Karts),
		slog.Int("frames", s.Frames),
		slog.Int("corrections", s.Corrections),
		slog.Int("started", s.Started),
		slog.Int("snapped", s.Snapped),
		slog.Int("completed", s.Completed),
		slog.Float64("max_jump", s.MaxJump),
		slog.Float64("smoothing_frac", s.SmoothingFrac),
		slog.Float64("offset_mean", s.OffsetMean),
		slog.Float64("offset_std", s.OffsetStd),
		slog.Float64("offset_p50", s.OffsetP50),
		slog.Float64("offset_p90", s.OffsetP90),
		slog.Float64("offset_max", s.OffsetMax),
		slog.Float64("angle_mean", s.AngleMean),
		slog.Float64("angle_p90", s.AngleP90),
		slog.Float64("angle_max", s.AngleMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"corrections", s.Corrections,
		"started", s.Started,
		"snapped", s.Snapped,
		"completed", s.Completed,
		"smoothing_frac", s.SmoothingFrac,
		"offset_p50", s.OffsetP50,
		"offset_p90", s.OffsetP90,
		"offset_max", s.OffsetMax,
		"angle_p90", s.AngleP90,
	)
}
