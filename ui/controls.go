package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is the simulation state the controls panel reflects.
type ControlsState struct {
	SmoothRotation bool
	Paused         bool
	PhaseDuration  float32
	MinPhase       float32
	MaxPhase       float32
	SelectedKart   int
}

// ControlsActions reports what the user asked for this frame.
type ControlsActions struct {
	SmoothRotation bool // new value of the rotation smoothing toggle
	Paused         bool // new value of the pause toggle
	PhaseDuration  float32
	Inject         bool // inject a correction on the selected kart
	Reset          bool // reset every kart to its spawn
}

// Changed reports whether any action differs from the given state.
func (a ControlsActions) Changed(s ControlsState) bool {
	return a.Inject || a.Reset ||
		a.SmoothRotation != s.SmoothRotation ||
		a.Paused != s.Paused ||
		a.PhaseDuration != s.PhaseDuration
}

// ControlsPanel renders the left-side controls panel.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns the user's actions. When hidden it
// returns the state unchanged.
func (c *ControlsPanel) Draw(state ControlsState, overlays *OverlayRegistry) ControlsActions {
	actions := ControlsActions{
		SmoothRotation: state.SmoothRotation,
		Paused:         state.Paused,
		PhaseDuration:  state.PhaseDuration,
	}
	if !c.visible {
		return actions
	}

	r := c.renderer
	pad := r.Theme.Padding
	line := r.Theme.LineHeight
	inner := float32(c.width - pad*2)

	rows := int32(len(overlays.All()) + len(overlays.Categories()))
	height := pad*2 + line*4 + 28*3 + rows*line + line
	r.DrawPanel(c.x, c.y, c.width, height)

	x := float32(c.x + pad)
	y := c.y + pad

	y = r.DrawSectionHeader(c.x+pad, y, "Smoothing") + 4

	actions.SmoothRotation = gui.CheckBox(rl.Rectangle{X: x, Y: float32(y), Width: 14, Height: 14},
		"Smooth rotation [R]", state.SmoothRotation)
	y += line + 2

	rl.DrawText(fmt.Sprintf("Phase duration %.2fs", state.PhaseDuration), c.x+pad, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += line - 2
	actions.PhaseDuration = gui.SliderBar(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 14},
		"", "", state.PhaseDuration, state.MinPhase, state.MaxPhase)
	y += line + 4

	half := (inner - 6) / 2
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: 24}, fmt.Sprintf("Jolt #%d [J]", state.SelectedKart)) {
		actions.Inject = true
	}
	if gui.Button(rl.Rectangle{X: x + half + 6, Y: float32(y), Width: half, Height: 24}, "Reset [Bksp]") {
		actions.Reset = true
	}
	y += 28
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 24}, toggleText(state.Paused, "Resume [Space]", "Pause [Space]")) {
		actions.Paused = !state.Paused
	}
	y += 28 + 4

	for _, cat := range overlays.Categories() {
		y = r.DrawSectionHeader(c.x+pad, y, categoryLabel(cat))
		for _, desc := range overlays.ByCategory(cat) {
			c.drawToggle(c.x+pad, y, desc, overlays.IsEnabled(desc.ID), c.width-pad*2)
			y += line
		}
	}

	return actions
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := r.Theme.ToggleOff
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = r.Theme.ToggleOn
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "smoothing":
		return "Smoothing"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

func toggleText(on bool, ifOn, ifOff string) string {
	if on {
		return ifOn
	}
	return ifOff
}
