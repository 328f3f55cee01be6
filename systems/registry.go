package systems

// SystemInfo describes a simulation system for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Cadence     string // "tick" or "frame"
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems in execution order.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: "driving", Name: "Driving", Description: "Noise-driven steering and throttle", Cadence: "tick"})
	r.Register(SystemInfo{ID: "physics", Name: "Physics", Description: "Rigid body integration", Cadence: "tick"})
	r.Register(SystemInfo{ID: "moveable_tick", Name: "Moveable", Description: "Pulls transforms and angles from physics", Cadence: "tick"})
	r.Register(SystemInfo{ID: "corrections", Name: "Corrections", Description: "Injects authoritative corrections", Cadence: "tick"})
	r.Register(SystemInfo{ID: "smoothing", Name: "Smoothing", Description: "Advances visual smoothing", Cadence: "frame"})
	r.Register(SystemInfo{ID: "telemetry", Name: "Telemetry", Description: "Collects offset statistics", Cadence: "frame"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCadence returns systems that run at the given cadence.
func (r *SystemRegistry) ByCadence(cadence string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Cadence == cadence {
			result = append(result, info)
		}
	}
	return result
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
