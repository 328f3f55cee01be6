package telemetry

import (
	"math"

	"github.com/pthm-cable/glide/moveable"
)

// Collector accumulates smoothing events within time windows and produces
// WindowStats. It implements systems.OffsetRecorder.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	windowStartTick int32

	// Event counters for current window
	corrections int
	started     int
	completed   int
	maxJump     float64

	frames          int
	smoothingFrames int
	offsets         []float64
	angles          []float64

	// Last seen phase per kart, for completion detection
	phases map[int]moveable.SmoothingState
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per physics tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(1)
	if dt > 0 {
		ticksPerWindow = max(int32(math.Round(windowDurationSec/dt)), 1)
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		phases:              make(map[int]moveable.SmoothingState),
	}
}

// RecordCorrection records an authoritative correction and whether the
// body started smoothing it.
func (c *Collector) RecordCorrection(jump float64, started bool) {
	c.corrections++
	if started {
		c.started++
	}
	c.maxJump = max(c.maxJump, jump)
}

// RecordOffset records one kart's offset for one frame.
func (c *Collector) RecordOffset(kartID int, off moveable.Offset, phase moveable.SmoothingState) {
	c.frames++

	prev, seen := c.phases[kartID]
	c.phases[kartID] = phase
	if seen && prev != moveable.SmoothingNone && phase == moveable.SmoothingNone {
		c.completed++
	}

	if phase == moveable.SmoothingNone {
		return
	}
	c.smoothingFrames++
	c.offsets = append(c.offsets, off.Position.Len())
	c.angles = append(c.angles, off.Angle())
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, karts int) WindowStats {
	offsets := Summarize(c.offsets)
	angles := Summarize(c.angles)

	var frac float64
	if c.frames > 0 {
		frac = float64(c.smoothingFrames) / float64(c.frames)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Karts:  karts,
		Frames: c.frames,

		Corrections: c.corrections,
		Started:     c.started,
		Snapped:     c.corrections - c.started,
		Completed:   c.completed,
		MaxJump:     c.maxJump,

		SmoothingFrac: frac,

		OffsetMean: offsets.Mean,
		OffsetStd:  offsets.Std,
		OffsetP50:  offsets.P50,
		OffsetP90:  offsets.P90,
		OffsetMax:  offsets.Max,

		AngleMean: angles.Mean,
		AngleP90:  angles.P90,
		AngleMax:  angles.Max,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.corrections = 0
	c.started = 0
	c.completed = 0
	c.maxJump = 0
	c.frames = 0
	c.smoothingFrames = 0
	c.offsets = c.offsets[:0]
	c.angles = c.angles[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
