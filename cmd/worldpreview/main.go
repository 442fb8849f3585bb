// World generation preview tool - regenerate the forest with sliders.
//
// Usage: go run ./cmd/worldpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/KevinA2505/Emerald/components"
	"github.com/KevinA2505/Emerald/config"
	"github.com/KevinA2505/Emerald/renderer"
	"github.com/KevinA2505/Emerald/systems"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	previewSize  = 680
	panelWidth   = windowWidth - previewSize - 40
)

// slider binds one generation parameter to a raygui slider.
type slider struct {
	label    string
	min, max float32
	get      func(*config.GenerationConfig) float32
	set      func(*config.GenerationConfig, float32)
	format   string
}

var sliders = []slider{
	{
		label: "Samples (scatter attempts)", min: 50, max: 1500, format: "%.0f",
		get: func(g *config.GenerationConfig) float32 { return float32(g.Scatter.Samples) },
		set: func(g *config.GenerationConfig, v float32) { g.Scatter.Samples = int(v) },
	},
	{
		label: "Tree chance", min: 0, max: 1, format: "%.2f",
		get: func(g *config.GenerationConfig) float32 { return float32(g.Scatter.TreeChance) },
		set: func(g *config.GenerationConfig, v float32) {
			g.Scatter.TreeChance = float64(v)
			g.Scatter.RockChance = max(g.Scatter.RockChance, g.Scatter.TreeChance)
		},
	},
	{
		label: "Rock chance (cumulative)", min: 0, max: 1, format: "%.2f",
		get: func(g *config.GenerationConfig) float32 { return float32(g.Scatter.RockChance) },
		set: func(g *config.GenerationConfig, v float32) {
			g.Scatter.RockChance = float64(v)
			g.Scatter.TreeChance = min(g.Scatter.TreeChance, g.Scatter.RockChance)
		},
	},
	{
		label: "Ponds", min: 0, max: 10, format: "%.0f",
		get: func(g *config.GenerationConfig) float32 { return float32(g.Ponds.Count) },
		set: func(g *config.GenerationConfig, v float32) { g.Ponds.Count = int(v) },
	},
	{
		label: "Mountains", min: 0, max: 80, format: "%.0f",
		get: func(g *config.GenerationConfig) float32 { return float32(g.Mountains.Count) },
		set: func(g *config.GenerationConfig, v float32) { g.Mountains.Count = int(v) },
	},
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	defaults := cfg.Generation

	rl.InitWindow(windowWidth, windowHeight, "World Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	view := renderer.NewMapRendererAt(10, 10, previewSize, cfg.Derived.MountainRadius+10)

	var seed int64 = 12345
	var world *systems.World
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			world = systems.GenerateWorld(rand.New(rand.NewSource(seed)))
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		view.Draw(renderer.Frame{
			Assets:    world.Assets,
			Mountains: world.Mountains,
			Ponds:     world.Ponds,
			Trees:     world.Trees,
			Rocks:     world.Rocks,
			Plants:    world.Plants,
			MapLimit:  cfg.World.MapLimit,
		}, 0)

		statsY := int32(previewSize + 20)
		rl.DrawText(countsText(world), 15, statsY, 16, rl.DarkGray)

		panelX := float32(previewSize + 30)
		panelY := float32(10)

		rl.DrawText("Generation Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			cur := s.get(&cfg.Generation)
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				cur, s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, cur), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if next != cur {
				s.set(&cfg.Generation, next)
				needsRegen = true
			}
			panelY += 35
		}

		rl.DrawText("Seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"", "",
			float32(seed), 0, 99999,
		)
		rl.DrawText(fmt.Sprintf("%d", seed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int64(newSeed) != seed {
			seed = int64(newSeed)
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			cfg.Generation = defaults
			seed = 12345
			needsRegen = true
		}
		panelY += 55

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range strings.Split(scatterYAML(cfg.Generation), "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy generation YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			out, err := yaml.Marshal(map[string]config.GenerationConfig{"generation": cfg.Generation})
			if err != nil {
				slog.Error("failed to marshal generation config", "error", err)
			} else {
				rl.SetClipboardText(string(out))
			}
		}

		rl.EndDrawing()
	}
}

// scatterYAML renders the parameters the sliders touch.
func scatterYAML(g config.GenerationConfig) string {
	out, err := yaml.Marshal(map[string]any{
		"scatter":   map[string]any{"samples": g.Scatter.Samples, "tree_chance": g.Scatter.TreeChance, "rock_chance": g.Scatter.RockChance},
		"ponds":     map[string]any{"count": g.Ponds.Count},
		"mountains": map[string]any{"count": g.Mountains.Count},
	})
	if err != nil {
		return err.Error()
	}
	return strings.TrimRight(string(out), "\n")
}

func countsText(w *systems.World) string {
	var trees, rocks, plants int
	for _, a := range w.Assets {
		switch a.Category {
		case components.CategoryTree:
			trees++
		case components.CategoryRock:
			rocks++
		case components.CategoryPlant:
			plants++
		}
	}
	return fmt.Sprintf("Trees: %d  Rocks: %d  Plants: %d  Ponds: %d  Mountains: %d",
		trees, rocks, plants, len(w.Ponds), len(w.Mountains))
}
