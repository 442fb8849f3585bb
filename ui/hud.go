package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/KevinA2505/Emerald/components"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Resources components.Resources
	Weapon    string // display name, empty when unarmed
	Gadget    string
	Mode      string
	Charge    float64 // 0 when not charging
	Consume   float64 // 0 when not eating
	LookingAt bool
	InWater   bool
	Tick      int32
	FPS       int32
	Started   bool
}

func hudData(data any) HUDData {
	d, _ := data.(HUDData)
	return d
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func resourceField(kind components.ResourceKind) FieldDescriptor {
	return FieldDescriptor{
		Label:  string(kind),
		Widget: WidgetText,
		Format: "%.0f",
		Getter: func(d any) float32 { return float32(hudData(d).Resources.Get(kind)) },
	}
}

// hudSections describes the status panel.
func hudSections(theme Theme) []SectionDescriptor {
	resources := SectionDescriptor{Title: "Resources"}
	for _, kind := range components.ResourceKinds {
		resources.Fields = append(resources.Fields, resourceField(kind))
	}

	equipment := SectionDescriptor{
		Title: "Equipment",
		Fields: []FieldDescriptor{
			{Label: "weapon", Widget: WidgetText, TextGetter: func(d any) string { return orNone(hudData(d).Weapon) }},
			{Label: "gadget", Widget: WidgetText, TextGetter: func(d any) string { return orNone(hudData(d).Gadget) }},
			{Label: "mode", Widget: WidgetText, TextGetter: func(d any) string { return hudData(d).Mode }},
			{
				Label:   "charge",
				Widget:  WidgetBar,
				Visible: func(d any) bool { return hudData(d).Charge > 0 },
				Getter:  func(d any) float32 { return float32(hudData(d).Charge) },
				Color:   func(any) rl.Color { return theme.ChargeFill },
			},
			{
				Label:   "eating",
				Widget:  WidgetBar,
				Visible: func(d any) bool { return hudData(d).Consume > 0 },
				Getter:  func(d any) float32 { return float32(hudData(d).Consume) },
				Color:   func(any) rl.Color { return theme.ConsumeFill },
			},
		},
	}
	return []SectionDescriptor{resources, equipment}
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	sections []SectionDescriptor
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	r := NewRenderer()
	return &HUD{
		renderer: r,
		sections: hudSections(r.Theme),
		width:    220,
	}
}

// Height returns the status panel height for data.
func (h *HUD) Height(data HUDData) int32 {
	total := 2 * h.renderer.Theme.Padding
	for _, sd := range h.sections {
		total += h.renderer.SectionHeight(sd, data)
	}
	return total
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData, screenW, screenH int32) {
	r := h.renderer
	x, y := int32(10), int32(10)

	r.DrawPanel(x, y, h.width, h.Height(data))
	y += r.Theme.Padding
	for _, sd := range h.sections {
		y = r.DrawSection(x+r.Theme.Padding, y, sd, data, h.width-2*r.Theme.Padding)
	}

	r.DrawCrosshair(screenW, screenH, data.LookingAt)
	if data.LookingAt {
		hint := "[E] Harvest"
		w := rl.MeasureText(hint, 18)
		rl.DrawText(hint, screenW/2-w/2, screenH/2+20, 18, r.Theme.HintColor)
	}
	if data.InWater {
		rl.DrawText("Wading", screenW/2-30, 40, 16, rl.SkyBlue)
	}

	rl.DrawText(fmt.Sprintf("Tick: %d | FPS: %d", data.Tick, data.FPS), screenW-170, 10, 14, rl.LightGray)

	if !data.Started {
		msg := "Click to start"
		w := rl.MeasureText(msg, 28)
		rl.DrawText(msg, screenW/2-w/2, screenH/2-60, 28, rl.RayWhite)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenW, screenH int32, controls string) {
	rl.DrawText(controls, 10, screenH-25, 14, rl.Gray)
}
