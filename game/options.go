package game

import (
	"github.com/pthm-cable/glide/config"
	"github.com/pthm-cable/glide/systems"
	"github.com/pthm-cable/glide/telemetry"
)

// Options configures game initialization.
type Options struct {
	Seed           int64
	Headless       bool           // no window; renderers are never created
	LogStats       bool           // log window stats via slog on every flush
	StatsWindowSec float64        // 0 uses the telemetry config
	OutputDir      string         // empty disables CSV output
	Config         *config.Config // nil uses config.Cfg()

	// StatsCallback is called with each flushed stats window.
	StatsCallback func(telemetry.WindowStats)
	// CorrectionCallback is called for every correction applied to a kart.
	CorrectionCallback func(systems.Correction)
}
