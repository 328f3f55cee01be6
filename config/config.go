// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Smoothing SmoothingConfig `yaml:"smoothing"`
	Scenario  ScenarioConfig  `yaml:"scenario"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds rigid body simulation parameters.
type PhysicsConfig struct {
	DT             float64 `yaml:"dt"`              // Fixed simulation step in seconds
	Gravity        float64 `yaml:"gravity"`         // Acceleration along -Y
	LinearDamping  float64 `yaml:"linear_damping"`  // Fraction of linear velocity lost per second
	AngularDamping float64 `yaml:"angular_damping"` // Fraction of angular velocity lost per second
	GroundY        float64 `yaml:"ground_y"`        // Height of the ground plane
	Restitution    float64 `yaml:"restitution"`     // Default bounce factor for new bodies
	MaxTicksFrame  int     `yaml:"max_ticks_frame"` // Upper bound on ticks run for one rendered frame
}

// SmoothingConfig holds visual correction smoothing parameters.
type SmoothingConfig struct {
	PhaseDuration   float64 `yaml:"phase_duration"`    // Seconds per smoothing leg (TO_ADJUST, TO_REAL)
	MinAdjustLength float64 `yaml:"min_adjust_length"` // Jumps shorter than this are not smoothed
	MaxAdjustLength float64 `yaml:"max_adjust_length"` // Jumps longer than this snap
	MinSpeed        float64 `yaml:"min_speed"`         // Below this speed corrections snap
	SmoothRotation  bool    `yaml:"smooth_rotation"`   // Slerp orientation during corrections
}

// ScenarioConfig drives the scripted karts used by the demo and headless runs.
type ScenarioConfig struct {
	Karts               int     `yaml:"karts"`
	Spacing             float64 `yaml:"spacing"`              // Distance between karts on the start line
	CruiseSpeed         float64 `yaml:"cruise_speed"`         // Forward speed in units/second
	SteerRate           float64 `yaml:"steer_rate"`           // Max yaw rate in rad/second
	NoiseScale          float64 `yaml:"noise_scale"`          // Time scale of the steering noise
	CorrectionInterval  float64 `yaml:"correction_interval"`  // Seconds between injected corrections
	CorrectionMagnitude float64 `yaml:"correction_magnitude"` // Max positional error of an injected correction
	CorrectionYaw       float64 `yaml:"correction_yaw"`       // Max heading error (radians) of an injected correction
}

// CameraConfig holds chase camera parameters.
type CameraConfig struct {
	Distance   float64 `yaml:"distance"`    // Distance behind the followed body
	Height     float64 `yaml:"height"`      // Height above the followed body
	FollowRate float64 `yaml:"follow_rate"` // Exponential approach rate (1/s)
	Fovy       float64 `yaml:"fovy"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32           float32 // Physics.DT as float32
	FrameDT        float64 // 1 / Screen.TargetFPS
	TicksPerSecond int     // round(1 / Physics.DT)
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	}
	if c.Screen.TargetFPS <= 0 {
		return fmt.Errorf("screen.target_fps must be positive, got %d", c.Screen.TargetFPS)
	}
	if c.Smoothing.PhaseDuration <= 0 {
		return fmt.Errorf("smoothing.phase_duration must be positive, got %v", c.Smoothing.PhaseDuration)
	}
	if c.Smoothing.MaxAdjustLength < c.Smoothing.MinAdjustLength {
		return fmt.Errorf("smoothing.max_adjust_length (%v) below min_adjust_length (%v)",
			c.Smoothing.MaxAdjustLength, c.Smoothing.MinAdjustLength)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.FrameDT = 1.0 / float64(c.Screen.TargetFPS)
	c.Derived.TicksPerSecond = int(1.0/c.Physics.DT + 0.5)

	if c.Physics.MaxTicksFrame <= 0 {
		c.Physics.MaxTicksFrame = 8
	}
	if c.Scenario.Karts <= 0 {
		c.Scenario.Karts = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
