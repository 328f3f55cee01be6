// Package inspector shows the live state of the selected kart in a side
// panel, rendering any struct through its inspect tags.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glide/components"
)

// Panel dimensions
const (
	PanelWidth   = 320
	PanelPadding = 10
	HeaderHeight = 30
	pickRadius   = 40
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
)

// Candidate is a selectable kart at a screen position.
type Candidate struct {
	ID   int
	X, Y float32
}

// Inspector manages kart selection and panel rendering.
type Inspector struct {
	selected    int
	hasSelected bool
	panelX      int32
	panelY      int32
}

// NewInspector creates an inspector anchored to the right edge of the screen.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	return &Inspector{
		panelX: screenWidth - PanelWidth - 10,
		panelY: 130,
	}
}

// HandleInput processes clicks for kart selection.
func (ins *Inspector) HandleInput(mouseX, mouseY float32, candidates []Candidate) {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		ins.Deselect()
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	if ins.hasSelected && ins.overPanel(mouseX, mouseY) {
		if ins.overClose(mouseX, mouseY) {
			ins.Deselect()
		}
		return
	}
	if id, ok := Pick(mouseX, mouseY, candidates); ok {
		ins.Select(id)
	}
}

// Pick returns the candidate nearest to (x, y) within the pick radius.
func Pick(x, y float32, candidates []Candidate) (int, bool) {
	best := float32(pickRadius * pickRadius)
	id, found := 0, false
	for _, c := range candidates {
		dx, dy := c.X-x, c.Y-y
		if d := dx*dx + dy*dy; d < best {
			best = d
			id = c.ID
			found = true
		}
	}
	return id, found
}

// Cycle selects the kart after the current one in ids, wrapping around.
// With nothing selected it picks the first.
func (ins *Inspector) Cycle(ids []int) {
	if len(ids) == 0 {
		ins.Deselect()
		return
	}
	if !ins.hasSelected {
		ins.Select(ids[0])
		return
	}
	for i, id := range ids {
		if id == ins.selected {
			ins.Select(ids[(i+1)%len(ids)])
			return
		}
	}
	ins.Select(ids[0])
}

// Select marks a kart as selected.
func (ins *Inspector) Select(id int) {
	ins.selected = id
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected kart ID.
func (ins *Inspector) Selected() (int, bool) {
	return ins.selected, ins.hasSelected
}

func (ins *Inspector) overPanel(x, y float32) bool {
	return int32(x) >= ins.panelX && int32(x) <= ins.panelX+PanelWidth && int32(y) >= ins.panelY
}

func (ins *Inspector) overClose(x, y float32) bool {
	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	return int32(x) >= closeX && int32(x) <= closeX+20 && int32(y) >= closeY && int32(y) <= closeY+20
}

// Draw renders the inspector panel for the selected kart's status.
func (ins *Inspector) Draw(status components.Status) {
	if !ins.hasSelected {
		return
	}

	fields := ExtractFields(status)
	panelHeight := int32(HeaderHeight + PanelPadding*2)
	for _, f := range fields {
		panelHeight += FieldHeight(f)
	}

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(fmt.Sprintf("KART #%d", status.ID), ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding
	for _, f := range fields {
		y += DrawField(x, y, f)
	}
}
