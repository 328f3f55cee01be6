package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayGhost   OverlayID = "ghost"
	OverlayOffset  OverlayID = "offset"
	OverlayTrail   OverlayID = "trail"
	OverlayRawOnly OverlayID = "raw_only"
	OverlayAxes    OverlayID = "axes"
	OverlayGrid    OverlayID = "grid"
	OverlayMarkers OverlayID = "markers"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID   // Unique identifier
	Name        string      // Display name
	Description string      // What this overlay shows
	Key         int32       // Keyboard key to toggle (0 = no key)
	KeyLabel    string      // Key label for display
	Category    string      // Grouping (e.g., "smoothing", "debug")
	Default     bool        // Enabled on registration
	Exclusive   []OverlayID // Other overlays to disable when this is enabled
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayGhost,
		Name:        "Ghost",
		Description: "Wireframe at the authoritative transform",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Category:    "smoothing",
		Default:     true,
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayOffset,
		Name:        "Offset",
		Description: "Line from authoritative to rendered position",
		Key:         rl.KeyO,
		KeyLabel:    "O",
		Category:    "smoothing",
		Default:     true,
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayTrail,
		Name:        "Trail",
		Description: "Recent rendered positions",
		Key:         rl.KeyT,
		KeyLabel:    "T",
		Category:    "smoothing",
		Default:     true,
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayRawOnly,
		Name:        "Raw Only",
		Description: "Draw karts at the authoritative transform",
		Key:         rl.KeyU,
		KeyLabel:    "U",
		Category:    "smoothing",
		Exclusive:   []OverlayID{OverlayGhost, OverlayOffset},
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayMarkers,
		Name:        "Markers",
		Description: "Fading sphere where each correction landed",
		Key:         rl.KeyM,
		KeyLabel:    "M",
		Category:    "smoothing",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayAxes,
		Name:        "Axes",
		Description: "Local right/up/forward axes of each kart",
		Key:         rl.KeyX,
		KeyLabel:    "X",
		Category:    "debug",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayGrid,
		Name:        "Grid",
		Description: "Ground plane and grid",
		Key:         rl.KeyH,
		KeyLabel:    "H",
		Category:    "debug",
		Default:     true,
	})
}

// Register adds an overlay to the registry. Registering an existing ID
// replaces its descriptor but keeps its position.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if _, ok := r.byID[desc.ID]; ok {
		for i := range r.descriptors {
			if r.descriptors[i].ID == desc.ID {
				r.descriptors[i] = desc
			}
		}
	} else {
		r.descriptors = append(r.descriptors, desc)
	}
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	newState := !r.enabled[id]
	r.SetEnabled(id, newState)
	return newState
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}
	r.enabled[id] = enabled
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// Get returns an overlay descriptor by ID.
func (r *OverlayRegistry) Get(id OverlayID) (OverlayDescriptor, bool) {
	desc, ok := r.byID[id]
	return desc, ok
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID, its new state, and whether a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}

// EnabledOverlays returns the currently enabled overlay IDs in registration order.
func (r *OverlayRegistry) EnabledOverlays() []OverlayID {
	var result []OverlayID
	for _, desc := range r.descriptors {
		if r.enabled[desc.ID] {
			result = append(result, desc.ID)
		}
	}
	return result
}
