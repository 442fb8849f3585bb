// Package game wires the forest simulation systems into a playable session.
package game

import (
	"log/slog"
	"maps"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/KevinA2505/Emerald/components"
	"github.com/KevinA2505/Emerald/config"
	"github.com/KevinA2505/Emerald/resolve"
	"github.com/KevinA2505/Emerald/systems"
	"github.com/KevinA2505/Emerald/telemetry"
)

// AttackMode selects what the primary action does.
type AttackMode uint8

const (
	ModeSlash AttackMode = iota
	ModeThrow
)

func (m AttackMode) String() string {
	if m == ModeThrow {
		return "throw"
	}
	return "slash"
}

// Options configures game initialization.
type Options struct {
	Seed           int64   // 0 = time-based
	LogStats       bool    // log window stats via slog
	StatsWindowSec float64 // 0 = use config
	OutputDir      string  // empty = no CSV output
	Headless       bool
}

// Game holds the complete session state.
type Game struct {
	rng     *rand.Rand // gameplay yields; generation uses its own stream
	rngSeed int64

	// World
	world       *systems.World
	terrain     *systems.Terrain
	targeter    *systems.Targeter
	ecsWorld    *ecs.World
	projectiles *systems.ProjectileSystem
	animator    *systems.Animator
	player      *systems.Player
	rules       resolve.Rules

	// Mutable entity state, replaced per entry
	trees       map[int]components.TreeState
	rocks       map[int]components.RockState
	plants      map[int]components.PlantState
	activeTrees *systems.ActiveSet
	activeRocks *systems.ActiveSet

	// Player state
	resources components.Resources
	inventory *components.Inventory
	weaponID  string
	gadgetID  string
	equipped  components.Equipped
	mode      AttackMode
	swing     *systems.Swing
	charger   *systems.Charger
	consumer  *systems.Consumer
	intent    systems.MoveIntent
	lookingAt bool

	// State
	started    bool
	blockInput bool
	tick       int32
	simTime    float64

	frameSec      float64
	actionRange   float64
	interactRange float64

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	milestones    *telemetry.MilestoneDetector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// Graphical mode only
	headless bool
	view     *graphics
}

// NewGame creates a headless game with a time-based seed.
func NewGame() *Game {
	return NewGameWithOptions(Options{Headless: true})
}

// NewGameWithOptions creates a new game instance with the given options.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.World.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	genRng := rand.New(rand.NewSource(seed))
	world := systems.GenerateWorld(genRng)

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	ecsWorld := ecs.NewWorld()
	terrain := systems.NewTerrain(world)

	g := &Game{
		rng:         rand.New(rand.NewSource(genRng.Int63())),
		rngSeed:     seed,
		world:       world,
		terrain:     terrain,
		targeter:    systems.NewTargeter(terrain),
		ecsWorld:    ecsWorld,
		projectiles: systems.NewProjectileSystem(ecsWorld, terrain),
		animator:    systems.NewAnimator(),
		player:      systems.NewPlayer(),
		rules:       resolve.RulesFromConfig(cfg),

		trees:       maps.Clone(world.Trees),
		rocks:       maps.Clone(world.Rocks),
		plants:      maps.Clone(world.Plants),
		activeTrees: systems.NewActiveSet(),
		activeRocks: systems.NewActiveSet(),

		inventory: newInventory(cfg.Inventory),
		swing:     systems.NewSwing(),
		charger:   systems.NewCharger(),
		consumer:  systems.NewConsumer(),

		frameSec:      cfg.Derived.FrameSeconds,
		actionRange:   cfg.Combat.ActionRange,
		interactRange: cfg.Player.InteractRange,

		collector:     telemetry.NewCollector(statsWindow),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		milestones:    telemetry.NewMilestoneDetector(cfg.Milestones, cfg.Telemetry.MilestoneHistory, cfg.Inventory.Capacity),
		logStats:      opts.LogStats,
		headless:      opts.Headless,
	}
	terrain.Removed = g.removed

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	if !opts.Headless {
		g.view = newGraphics(g)
	}

	g.logWorld()
	return g
}

// newInventory builds the starting inventory from config.
// Entries with an unknown tool are skipped.
func newInventory(ic config.InventoryConfig) *components.Inventory {
	inv := components.NewInventory(ic.Capacity)
	for _, it := range ic.Starting {
		tool, err := components.ParseTool(it.Tool)
		if err != nil {
			slog.Warn("skipping starting item", "id", it.ID, "error", err)
			continue
		}
		inv.Add(components.Item{
			ID:       it.ID,
			Name:     it.Name,
			Category: components.ItemWeapon,
			Tool:     tool,
			Damage:   it.Damage,
			Count:    it.Count,
		})
	}
	return inv
}

// removed reports whether a scattered asset has been destroyed.
func (g *Game) removed(id int) bool {
	if st, ok := g.trees[id]; ok {
		return st.IsRemoved
	}
	if st, ok := g.rocks[id]; ok {
		return st.IsRemoved
	}
	if st, ok := g.plants[id]; ok {
		return st.IsRemoved
	}
	return false
}

// SetStatsCallback registers a function called with every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Start enables player input.
func (g *Game) Start() {
	if !g.started {
		g.started = true
		slog.Info("session started", "seed", g.rngSeed)
	}
}

// Started reports whether Start has been called.
func (g *Game) Started() bool { return g.started }

// SetBlockInput suspends movement and actions, e.g. while the inventory is open.
func (g *Game) SetBlockInput(block bool) {
	g.blockInput = block
	if block {
		g.charger.Cancel()
	}
}

// InputEnabled reports whether the player may move and act.
func (g *Game) InputEnabled() bool {
	return g.started && !g.blockInput
}

// SetIntent sets the movement input applied on the next Update.
func (g *Game) SetIntent(intent systems.MoveIntent) {
	g.intent = intent
}

// Look rotates the player's view.
func (g *Game) Look(dYaw, dPitch float64) {
	if g.InputEnabled() {
		g.player.Look(dYaw, dPitch)
	}
}

// Seed returns the seed the world was generated from.
func (g *Game) Seed() int64 { return g.rngSeed }

// Tick returns the number of updates run so far.
func (g *Game) Tick() int32 { return g.tick }

// SimTime returns the simulated seconds elapsed.
func (g *Game) SimTime() float64 { return g.simTime }

// World returns the generated world. Its contents must not be modified.
func (g *Game) World() *systems.World { return g.world }

// TreeStates returns a copy of every tree state.
func (g *Game) TreeStates() map[int]components.TreeState { return maps.Clone(g.trees) }

// RockStates returns a copy of every rock state.
func (g *Game) RockStates() map[int]components.RockState { return maps.Clone(g.rocks) }

// PlantStates returns a copy of every plant state.
func (g *Game) PlantStates() map[int]components.PlantState { return maps.Clone(g.plants) }

// Resources returns the gathered resource totals.
func (g *Game) Resources() components.Resources { return g.resources }

// Inventory returns a copy of the inventory entries in order.
func (g *Game) Inventory() []components.Item { return g.inventory.Items() }

// Projectiles returns the state of every thrown projectile.
func (g *Game) Projectiles() []systems.ProjectileView { return g.projectiles.Snapshot() }

// LookingAtInteractable reports whether a harvestable plant is in front of the player.
func (g *Game) LookingAtInteractable() bool { return g.lookingAt }

// ChargeProgress returns the throw charge in [0, 1]; 0 when not charging.
func (g *Game) ChargeProgress() float64 { return g.charger.Level() }

// ConsumeProgress returns the consumption progress in [0, 1]; 0 when idle.
func (g *Game) ConsumeProgress() float64 { return g.consumer.Progress() }

// SwingProgress returns the current swing completion in [0, 1].
func (g *Game) SwingProgress() float64 { return g.swing.Progress() }

// Player returns a copy of the player body.
func (g *Game) Player() systems.Player { return *g.player }

// Mode returns the current attack mode.
func (g *Game) Mode() AttackMode { return g.mode }

// Equipped returns the IDs of the equipped weapon and gadget; empty when none.
func (g *Game) Equipped() (weapon, gadget string) { return g.weaponID, g.gadgetID }

// eye returns the ray origin and direction for targeting.
func (g *Game) eye() (r3.Vec, r3.Vec) {
	return g.player.Position, g.player.Forward()
}

// Unload releases resources held by the game.
func (g *Game) Unload() {
	if g.view != nil {
		g.view.unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
