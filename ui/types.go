// Package ui provides a descriptor-driven UI system for the game.
// Panels are described by field metadata instead of hard-coded layouts,
// so new readouts only need a getter.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText    WidgetType = iota // Plain text with format string
	WidgetBar                       // Progress bar [0, 1]
	WidgetSection                   // Section header
	WidgetSpacer                    // Vertical spacing
)

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	Label      string
	Widget     WidgetType
	Format     string             // Printf format for Getter values (e.g., "%.2f")
	Visible    func(any) bool     // nil = always visible
	Getter     func(any) float32  // numeric fields and bars
	TextGetter func(any) string   // text fields
	Color      func(any) rl.Color // optional value color
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	Title   string
	Fields  []FieldDescriptor
	Visible func(any) bool
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	HintColor      rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	ChargeFill     rl.Color
	ConsumeFill    rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 18, G: 24, B: 18, A: 230},
		PanelBorder:    rl.Color{R: 70, G: 90, B: 60, A: 255},
		SectionHeader:  rl.Color{R: 230, G: 200, B: 120, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		HintColor:      rl.Color{R: 250, G: 240, B: 160, A: 255},
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 200},
		BarFill:        rl.Color{R: 100, G: 150, B: 200, A: 255},
		ChargeFill:     rl.Color{R: 230, G: 140, B: 60, A: 255},
		ConsumeFill:    rl.Color{R: 110, G: 200, B: 110, A: 255},
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     70,
		BarHeight:      12,
		FontSize:       14,
		HeaderFontSize: 16,
	}
}
