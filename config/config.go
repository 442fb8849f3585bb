// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Generation GenerationConfig `yaml:"generation"`
	Player     PlayerConfig     `yaml:"player"`
	Combat     CombatConfig     `yaml:"combat"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Animation  AnimationConfig  `yaml:"animation"`
	Inventory  InventoryConfig  `yaml:"inventory"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Milestones MilestonesConfig `yaml:"milestones"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds world bounds and broad-phase settings.
type WorldConfig struct {
	Seed         int64   `yaml:"seed"`           // 0 = time-based
	MapLimit     float64 `yaml:"map_limit"`      // Playable half-extent on X and Z
	GridCellSize float64 `yaml:"grid_cell_size"` // Spatial grid bucket size
	FrameMillis  float64 `yaml:"frame_millis"`   // Reference frame length for per-frame rates
}

// GenerationConfig holds procedural generation parameters.
type GenerationConfig struct {
	Mountains MountainGenConfig `yaml:"mountains"`
	Ponds     PondGenConfig     `yaml:"ponds"`
	Scatter   ScatterGenConfig  `yaml:"scatter"`
	Trees     TreeGenConfig     `yaml:"trees"`
	Rocks     RockGenConfig     `yaml:"rocks"`
	Plants    PlantGenConfig    `yaml:"plants"`
}

// Range is an inclusive-exclusive [Min, Max) interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// MountainGenConfig holds the boundary ring parameters.
type MountainGenConfig struct {
	Count        int     `yaml:"count"`
	RingOffset   float64 `yaml:"ring_offset"` // Added to map limit
	IDBase       int     `yaml:"id_base"`
	Scale        Range   `yaml:"scale"`
	RadiusFactor float64 `yaml:"radius_factor"` // Radius = factor * independent scale roll
	Height       Range   `yaml:"height"`
}

// PondGenConfig holds pond placement parameters.
type PondGenConfig struct {
	Count        int     `yaml:"count"`
	Spread       float64 `yaml:"spread"` // Center uniform in +-spread/2
	Elevation    float64 `yaml:"elevation"`
	MinSegments  int     `yaml:"min_segments"`
	SegmentRange int     `yaml:"segment_range"`
	BaseRadius   Range   `yaml:"base_radius"`
	Jitter       Range   `yaml:"jitter"` // Per-vertex multiplier on base radius
}

// ScatterGenConfig holds the sampling parameters for scattered assets.
type ScatterGenConfig struct {
	Samples    int     `yaml:"samples"`
	Extent     float64 `yaml:"extent"`      // Square side centered at origin
	SpawnClear float64 `yaml:"spawn_clear"` // Half-width of the empty square at spawn
	TreeChance float64 `yaml:"tree_chance"` // roll < this = tree
	RockChance float64 `yaml:"rock_chance"` // roll < this = rock (cumulative)
	Scale      Range   `yaml:"scale"`
}

// TreeKindConfig holds per-subtype tree proportions.
type TreeKindConfig struct {
	Chance       float64 `yaml:"chance"` // Cumulative subtype roll threshold
	RadiusFactor float64 `yaml:"radius_factor"`
	HeightFactor float64 `yaml:"height_factor"`
	Health       float64 `yaml:"health"`
}

// TreeGenConfig holds tree subtype tables.
type TreeGenConfig struct {
	Pine  TreeKindConfig `yaml:"pine"`
	Oak   TreeKindConfig `yaml:"oak"`
	Birch TreeKindConfig `yaml:"birch"`
}

// RockGenConfig holds rock proportions and durability.
type RockGenConfig struct {
	RadiusFactor float64 `yaml:"radius_factor"`
	HeightFactor float64 `yaml:"height_factor"`
	MinHits      int     `yaml:"min_hits"`
	HitRange     int     `yaml:"hit_range"`
	HealthPerHit float64 `yaml:"health_per_hit"`
}

// PlantGenConfig holds plant proportions and fruiting.
type PlantGenConfig struct {
	RadiusFactor float64 `yaml:"radius_factor"`
	HeightFactor float64 `yaml:"height_factor"`
	BushFactor   float64 `yaml:"bush_factor"` // Bush sphere radius; harvest aim reaches this height
	FruitChance  float64 `yaml:"fruit_chance"`
	MaxFruit     int     `yaml:"max_fruit"`
	Health       int     `yaml:"health"`
}

// PlayerConfig holds movement constants. Rates are per reference frame.
type PlayerConfig struct {
	WalkSpeed        float64 `yaml:"walk_speed"`
	SprintSpeed      float64 `yaml:"sprint_speed"`
	JumpForce        float64 `yaml:"jump_force"`
	Gravity          float64 `yaml:"gravity"`
	Radius           float64 `yaml:"radius"`
	EyeHeight        float64 `yaml:"eye_height"`
	StepHeight       float64 `yaml:"step_height"`
	WaterSpeed       float64 `yaml:"water_speed"`       // Speed multiplier in water
	SubmersionFactor float64 `yaml:"submersion_factor"` // Fraction of eye height sunk in water
	PlantSpeed       float64 `yaml:"plant_speed"`       // Speed multiplier per overlapping plant
	GroundEpsilon    float64 `yaml:"ground_epsilon"`
	WaterJump        float64 `yaml:"water_jump"` // Jump multiplier in water
	StandFactor      float64 `yaml:"stand_factor"`
	InteractRange    float64 `yaml:"interact_range"`
}

// CombatConfig holds tool and swing parameters.
type CombatConfig struct {
	DefaultDamage  float64 `yaml:"default_damage"`
	SlashTreeScale float64 `yaml:"slash_tree_scale"` // Knife damage fraction against trees
	ActionRange    float64 `yaml:"action_range"`
	FuzzyTolerance float64 `yaml:"fuzzy_tolerance"`
	HeavyCycle     float64 `yaml:"heavy_cycle"` // Seconds per axe/pickaxe swing
	HeavyHitStart  float64 `yaml:"heavy_hit_start"`
	HeavyHitEnd    float64 `yaml:"heavy_hit_end"`
	RockRecoil     float64 `yaml:"rock_recoil"` // Heavy swing skips ahead to this time on rock
	KnifeRate      float64 `yaml:"knife_rate"` // Swing phase advance per second
	KnifeHitStart  float64 `yaml:"knife_hit_start"`
	KnifeHitEnd    float64 `yaml:"knife_hit_end"`
	HitStop        float64 `yaml:"hit_stop"` // Seconds the swing freezes on contact
	ChargeRate     float64 `yaml:"charge_rate"`
	ChargeStart    float64 `yaml:"charge_start"`
	MinPower       float64 `yaml:"min_power"`
	ConsumeRate    float64 `yaml:"consume_rate"` // Per reference frame
	ConsumeStart   float64 `yaml:"consume_start"`
	PlantMaxSeeds  int     `yaml:"plant_max_seeds"` // Seeds dropped by a cleared plant are below this
}

// ProjectileConfig holds thrown tool ballistics.
type ProjectileConfig struct {
	MinSpeed    float64 `yaml:"min_speed"`
	MaxSpeed    float64 `yaml:"max_speed"`
	Gravity     float64 `yaml:"gravity"`
	GroundRest  float64 `yaml:"ground_rest"`
	HitFactor   float64 `yaml:"hit_factor"`   // Footprint inflation for collision
	EmbedFactor float64 `yaml:"embed_factor"` // Fraction of radius the tip rests at
}

// AnimationConfig holds per-frame decay rates.
type AnimationConfig struct {
	FallRate   float64 `yaml:"fall_rate"`
	FadeRate   float64 `yaml:"fade_rate"`
	ShakeDecay float64 `yaml:"shake_decay"`
	HitShake   float64 `yaml:"hit_shake"`
	BreakShake float64 `yaml:"break_shake"`
	MaxSeeds   int     `yaml:"max_seeds"`
}

// InventoryConfig holds inventory limits and starting items.
type InventoryConfig struct {
	Capacity int          `yaml:"capacity"`
	Starting []ItemConfig `yaml:"starting"`
}

// ItemConfig describes a starting inventory item.
type ItemConfig struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	Tool   string  `yaml:"tool"` // slashing, chopping, mining
	Damage float64 `yaml:"damage"`
	Count  int     `yaml:"count"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	MilestoneHistory    int     `yaml:"milestone_history"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// MilestonesConfig holds milestone detection thresholds.
type MilestonesConfig struct {
	LumberRushWood  int     `yaml:"lumber_rush_wood"` // Wood gained in one window
	StoneAgeStones  int     `yaml:"stone_age_stones"` // Stones gained in one window
	YieldMultiplier float64 `yaml:"yield_multiplier"` // Window yield vs rolling mean
	MinYield        int     `yaml:"min_yield"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Submersion     float64 // Player.SubmersionFactor * Player.EyeHeight
	FrameSeconds   float64 // World.FrameMillis in seconds
	MountainRadius float64 // Map limit + ring offset
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.World.GridCellSize <= 0 {
		return fmt.Errorf("world.grid_cell_size must be positive, got %v", c.World.GridCellSize)
	}
	if c.World.FrameMillis <= 0 {
		return fmt.Errorf("world.frame_millis must be positive, got %v", c.World.FrameMillis)
	}
	if c.Inventory.Capacity <= 0 {
		return fmt.Errorf("inventory.capacity must be positive, got %d", c.Inventory.Capacity)
	}
	if c.Generation.Scatter.TreeChance > c.Generation.Scatter.RockChance {
		return fmt.Errorf("generation.scatter: tree_chance %v exceeds rock_chance %v",
			c.Generation.Scatter.TreeChance, c.Generation.Scatter.RockChance)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Submersion = c.Player.SubmersionFactor * c.Player.EyeHeight
	c.Derived.FrameSeconds = c.World.FrameMillis / 1000
	c.Derived.MountainRadius = c.World.MapLimit + c.Generation.Mountains.RingOffset
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
