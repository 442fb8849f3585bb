package main

import (
	"flag"
	"io"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/KevinA2505/Emerald/config"
	"github.com/KevinA2505/Emerald/console"
	"github.com/KevinA2505/Emerald/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "World seed (0 = config or time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	script := flag.String("script", "", "Console script to run headless (- = stdin)")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := game.Options{
		Seed:           *seed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
	}

	if *headless {
		if err := runHeadless(opts, *script, *maxTicks, cfg.Derived.FrameSeconds); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Emerald")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.HandleInput()
		g.Update(float64(rl.GetFrameTime()))
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}

// runHeadless plays a script against a session, then idles until maxTicks.
// With neither a script nor a tick limit it runs until killed.
func runHeadless(opts game.Options, script string, maxTicks int, frameSec float64) error {
	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	slog.Info("starting headless session", "seed", g.Seed(), "max_ticks", maxTicks, "script", script)

	if script != "" {
		var r io.Reader = os.Stdin
		if script != "-" {
			f, err := os.Open(script)
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}
		if err := console.New(g, frameSec).Run(r); err != nil {
			return err
		}
		if maxTicks == 0 {
			g.LogState()
			return nil
		}
	}

	for maxTicks == 0 || int(g.Tick()) < maxTicks {
		g.Update(frameSec)
	}
	slog.Info("max ticks reached", "tick", g.Tick())
	g.LogState()
	return nil
}
