package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Hits during window
	TreeHits  int     `csv:"tree_hits"`
	RockHits  int     `csv:"rock_hits"`
	PlantHits int     `csv:"plant_hits"`
	Misses    int     `csv:"misses"`
	HitRate   float64 `csv:"hit_rate"`

	// Terminal transitions
	TreesFelled   int `csv:"trees_felled"`
	TreesRemoved  int `csv:"trees_removed"`
	RocksBroken   int `csv:"rocks_broken"`
	PlantsCleared int `csv:"plants_cleared"`
	Harvests      int `csv:"harvests"`
	FruitPicked   int `csv:"fruit_picked"`
	Consumed      int `csv:"consumed"`

	// Throwing
	Throws         int     `csv:"throws"`
	ThrowPowerMean float64 `csv:"throw_power_mean"`
	Stuck          int     `csv:"stuck"`

	// Resources granted per hit
	YieldMean float64 `csv:"yield_mean"`
	YieldP50  float64 `csv:"yield_p50"`
	YieldP90  float64 `csv:"yield_p90"`

	// Resources gained during window
	WoodGained   int `csv:"wood_gained"`
	FiberGained  int `csv:"fiber_gained"`
	SticksGained int `csv:"sticks_gained"`
	StonesGained int `csv:"stones_gained"`
	SeedsGained  int `csv:"seeds_gained"`

	// Session totals at window end
	Wood   int `csv:"wood"`
	Fiber  int `csv:"fiber"`
	Sticks int `csv:"sticks"`
	Stones int `csv:"stones"`
	Seeds  int `csv:"seeds"`

	ActiveTrees   int `csv:"active_trees"`
	ActiveRocks   int `csv:"active_rocks"`
	InFlight      int `csv:"in_flight"`
	InventoryUsed int `csv:"inventory_used"`
}

// Gained returns the total resources gained during the window.
func (s WindowStats) Gained() int {
	return s.WoodGained + s.FiberGained + s.SticksGained + s.StonesGained + s.SeedsGained
}

// Percentile returns the p-th empirical quantile of a sorted slice.
// p is clamped to [0, 1]. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = min(max(p, 0), 1)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeYieldStats calculates the mean, median and 90th percentile of values.
func ComputeYieldStats(values []float64) (mean, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return stat.Mean(sorted, nil), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(s.attrs()...)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	args := make([]any, 0, 32)
	for _, a := range s.attrs() {
		args = append(args, a)
	}
	slog.Info("stats", args...)
}

func (s WindowStats) attrs() []slog.Attr {
	return []slog.Attr{
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("tree_hits", s.TreeHits),
		slog.Int("rock_hits", s.RockHits),
		slog.Int("plant_hits", s.PlantHits),
		slog.Int("misses", s.Misses),
		slog.Float64("hit_rate", s.HitRate),
		slog.Int("trees_felled", s.TreesFelled),
		slog.Int("trees_removed", s.TreesRemoved),
		slog.Int("rocks_broken", s.RocksBroken),
		slog.Int("plants_cleared", s.PlantsCleared),
		slog.Int("harvests", s.Harvests),
		slog.Int("fruit_picked", s.FruitPicked),
		slog.Int("consumed", s.Consumed),
		slog.Int("throws", s.Throws),
		slog.Float64("throw_power_mean", s.ThrowPowerMean),
		slog.Int("stuck", s.Stuck),
		slog.Float64("yield_mean", s.YieldMean),
		slog.Float64("yield_p50", s.YieldP50),
		slog.Float64("yield_p90", s.YieldP90),
		slog.Int("gained", s.Gained()),
		slog.Int("wood", s.Wood),
		slog.Int("fiber", s.Fiber),
		slog.Int("sticks", s.Sticks),
		slog.Int("stones", s.Stones),
		slog.Int("seeds", s.Seeds),
		slog.Int("active_trees", s.ActiveTrees),
		slog.Int("active_rocks", s.ActiveRocks),
		slog.Int("in_flight", s.InFlight),
		slog.Int("inventory_used", s.InventoryUsed),
	}
}
