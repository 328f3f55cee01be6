package systems

import (
	"math"
	"testing"
)

func TestStepperWholeTicks(t *testing.T) {
	s := NewStepper(1.0/120.0, 8)

	total := 0
	for range 60 {
		n := s.Advance(1.0 / 60.0)
		if n != 2 {
			t.Fatalf("expected 2 ticks per 60Hz frame, got %d", n)
		}
		total += n
	}
	if total != 120 {
		t.Errorf("expected 120 ticks in one second, got %d", total)
	}
}

func TestStepperAccumulatesPartialTicks(t *testing.T) {
	s := NewStepper(0.1, 8)

	if n := s.Advance(0.04); n != 0 {
		t.Errorf("expected 0 ticks, got %d", n)
	}
	if n := s.Advance(0.04); n != 0 {
		t.Errorf("expected 0 ticks, got %d", n)
	}
	if n := s.Advance(0.04); n != 1 {
		t.Errorf("expected 1 tick, got %d", n)
	}
	// 0.02 carried over: 0.07 more is still short of a tick, 0.01 completes it
	if n := s.Advance(0.07); n != 0 {
		t.Errorf("expected carry-over 0.02, got %d ticks", n)
	}
	if n := s.Advance(0.01); n != 1 {
		t.Errorf("expected 1 tick from carry-over, got %d", n)
	}
}

func TestStepperDropsBacklog(t *testing.T) {
	s := NewStepper(0.01, 4)

	if n := s.Advance(1); n != 4 {
		t.Errorf("expected ticks capped at 4, got %d", n)
	}
	if s.Dropped() != 96 {
		t.Errorf("expected 96 dropped ticks, got %d", s.Dropped())
	}
	if n := s.Advance(0.005); n != 0 {
		t.Errorf("expected empty accumulator after drop, got %d ticks", n)
	}
}

func TestStepperIgnoresInvalidFrames(t *testing.T) {
	s := NewStepper(0.01, 4)
	for _, dt := range []float64{0, -1, math.NaN()} {
		if n := s.Advance(dt); n != 0 {
			t.Errorf("Advance(%v) = %d, want 0", dt, n)
		}
	}
	if n := s.Advance(0.005); n != 0 {
		t.Errorf("invalid frames changed the accumulator: %d ticks", n)
	}
	if n := s.Advance(0.005); n != 1 {
		t.Errorf("expected accumulator to keep working, got %d ticks", n)
	}
}
