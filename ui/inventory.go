package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/KevinA2505/Emerald/components"
)

// InventoryPanel renders the inventory grid and reports clicked entries.
type InventoryPanel struct {
	renderer *Renderer
	columns  int
	cellW    float32
	cellH    float32
	gap      float32
}

// NewInventoryPanel creates an inventory panel with four columns.
func NewInventoryPanel() *InventoryPanel {
	return &InventoryPanel{
		renderer: NewRenderer(),
		columns:  4,
		cellW:    150,
		cellH:    48,
		gap:      8,
	}
}

// Size returns the panel dimensions for capacity slots.
func (p *InventoryPanel) Size(capacity int) (w, h float32) {
	rows := (capacity + p.columns - 1) / p.columns
	pad := float32(p.renderer.Theme.Padding)
	header := float32(p.renderer.Theme.LineHeight) + 10
	w = float32(p.columns)*(p.cellW+p.gap) - p.gap + 2*pad
	h = float32(rows)*(p.cellH+p.gap) - p.gap + 2*pad + header
	return w, h
}

// SlotRect returns the screen rectangle of slot i in a panel at (x, y).
func (p *InventoryPanel) SlotRect(x, y float32, i int) rl.Rectangle {
	pad := float32(p.renderer.Theme.Padding)
	header := float32(p.renderer.Theme.LineHeight) + 10
	col := i % p.columns
	row := i / p.columns
	return rl.Rectangle{
		X:      x + pad + float32(col)*(p.cellW+p.gap),
		Y:      y + pad + header + float32(row)*(p.cellH+p.gap),
		Width:  p.cellW,
		Height: p.cellH,
	}
}

// SlotLabel returns the button text for an inventory entry.
func SlotLabel(it components.Item, weapon, gadget string) string {
	label := it.Name
	if it.Count > 1 {
		label = fmt.Sprintf("%s x%d", it.Name, it.Count)
	}
	if it.ID == weapon || it.ID == gadget {
		label = "* " + label
	}
	return label
}

// Draw renders the panel centered on screen and returns the ID of the
// clicked item, or "" when nothing was clicked.
func (p *InventoryPanel) Draw(items []components.Item, capacity int, weapon, gadget string, screenW, screenH int32) string {
	w, h := p.Size(capacity)
	x := float32(screenW)/2 - w/2
	y := float32(screenH)/2 - h/2

	rl.DrawRectangle(0, 0, screenW, screenH, rl.Color{A: 120})
	p.renderer.DrawPanel(int32(x), int32(y), int32(w), int32(h))
	title := fmt.Sprintf("Inventory (%d/%d)", len(items), capacity)
	p.renderer.DrawSectionHeader(int32(x)+p.renderer.Theme.Padding, int32(y)+p.renderer.Theme.Padding, title)

	clicked := ""
	for i := 0; i < capacity; i++ {
		rect := p.SlotRect(x, y, i)
		if i >= len(items) {
			rl.DrawRectangleLinesEx(rect, 1, p.renderer.Theme.PanelBorder)
			continue
		}
		if gui.Button(rect, SlotLabel(items[i], weapon, gadget)) {
			clicked = items[i].ID
		}
	}
	return clicked
}
