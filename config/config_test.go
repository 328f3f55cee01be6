package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Smoothing.PhaseDuration <= 0 {
		t.Errorf("expected positive phase duration, got %v", cfg.Smoothing.PhaseDuration)
	}
	if !cfg.Smoothing.SmoothRotation {
		t.Error("expected rotation smoothing enabled by default")
	}
	if cfg.Derived.TicksPerSecond != 120 {
		t.Errorf("expected 120 ticks per second, got %d", cfg.Derived.TicksPerSecond)
	}
	if math.Abs(cfg.Derived.FrameDT-1.0/60.0) > 1e-12 {
		t.Errorf("expected frame dt 1/60, got %v", cfg.Derived.FrameDT)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("smoothing:\n  phase_duration: 0.5\n  smooth_rotation: false\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Smoothing.PhaseDuration != 0.5 {
		t.Errorf("expected overridden phase duration 0.5, got %v", cfg.Smoothing.PhaseDuration)
	}
	if cfg.Smoothing.SmoothRotation {
		t.Error("expected rotation smoothing disabled by overlay")
	}
	// Fields absent from the overlay keep their defaults
	if cfg.Smoothing.MaxAdjustLength != 4.0 {
		t.Errorf("expected default max adjust length 4.0, got %v", cfg.Smoothing.MaxAdjustLength)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero dt", "physics:\n  dt: 0\n"},
		{"negative phase", "smoothing:\n  phase_duration: -1\n"},
		{"inverted lengths", "smoothing:\n  min_adjust_length: 5\n  max_adjust_length: 1\n"},
		{"zero fps", "screen:\n  target_fps: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error for invalid config")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Smoothing.PhaseDuration = 0.4

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Smoothing.PhaseDuration != 0.4 {
		t.Errorf("expected phase duration 0.4 after roundtrip, got %v", loaded.Smoothing.PhaseDuration)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic from Cfg() before Init()")
		}
	}()
	Cfg()
}
