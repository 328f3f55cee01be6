package systems

// stepEpsilon absorbs float error so that a frame time which is an exact
// multiple of the tick length yields that many ticks.
const stepEpsilon = 1e-9

// Stepper converts variable frame times into a whole number of fixed
// physics ticks.
type Stepper struct {
	dt       float64
	maxTicks int
	acc      float64
	dropped  int
}

// NewStepper creates a stepper with tick length dt that runs at most
// maxTicks ticks per frame.
func NewStepper(dt float64, maxTicks int) *Stepper {
	if maxTicks < 1 {
		maxTicks = 1
	}
	return &Stepper{dt: dt, maxTicks: maxTicks}
}

// Advance adds a frame's worth of time and returns the number of ticks to
// run. When more than maxTicks are due the backlog is dropped.
func (s *Stepper) Advance(frameDT float64) int {
	if !(frameDT > 0) || !(s.dt > 0) {
		return 0
	}
	s.acc += frameDT

	n := int((s.acc + stepEpsilon) / s.dt)
	if n > s.maxTicks {
		s.dropped += n - s.maxTicks
		s.acc = 0
		return s.maxTicks
	}

	s.acc -= float64(n) * s.dt
	if s.acc < 0 {
		s.acc = 0
	}
	return n
}

// DT returns the tick length.
func (s *Stepper) DT() float64 { return s.dt }

// Dropped returns the number of ticks skipped because a frame took too long.
func (s *Stepper) Dropped() int { return s.dropped }

// Reset clears the accumulator.
func (s *Stepper) Reset() {
	s.acc = 0
}
