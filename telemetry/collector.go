package telemetry

import "github.com/KevinA2505/Emerald/components"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartTick int32
	windowStartTime float64

	// Event counters for current window
	hits          [4]int // by components.Category
	misses        int
	treesFelled   int
	treesRemoved  int
	rocksBroken   int
	plantsCleared int
	harvests      int
	fruitPicked   int
	throws        int
	stuck         int
	consumed      int
	gained        components.Resources

	hitYields   []float64
	throwPowers []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// Record counts a single event.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventHit:
		if int(ev.Category) < len(c.hits) {
			c.hits[ev.Category]++
		}
		c.hitYields = append(c.hitYields, float64(ev.Yield))
	case EventMiss:
		c.misses++
	case EventTreeFelled:
		c.treesFelled++
	case EventTreeRemoved:
		c.treesRemoved++
	case EventRockBroken:
		c.rocksBroken++
	case EventPlantCleared:
		c.plantsCleared++
	case EventHarvest:
		c.harvests++
		c.fruitPicked += ev.Count
	case EventThrow:
		c.throws++
		c.throwPowers = append(c.throwPowers, ev.Power)
	case EventProjectileStuck:
		c.stuck++
	case EventConsume:
		c.consumed++
	}
}

// RecordGain adds resources granted during the window.
func (c *Collector) RecordGain(d components.ResourceDelta) {
	c.gained.Apply(d)
}

// ShouldFlush returns true if enough simulated time has passed to flush the window.
func (c *Collector) ShouldFlush(simTime float64) bool {
	return simTime-c.windowStartTime >= c.windowDurationSec
}

// WorldTotals is the session state sampled at window end.
type WorldTotals struct {
	Resources     components.Resources
	ActiveTrees   int
	ActiveRocks   int
	InFlight      int
	InventoryUsed int
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, simTime float64, totals WorldTotals) WindowStats {
	var hitTotal int
	for _, n := range c.hits {
		hitTotal += n
	}
	var hitRate float64
	if attempts := hitTotal + c.misses; attempts > 0 {
		hitRate = float64(hitTotal) / float64(attempts)
	}

	yieldMean, yieldP50, yieldP90 := ComputeYieldStats(c.hitYields)
	powerMean, _, _ := ComputeYieldStats(c.throwPowers)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      simTime,

		TreeHits:  c.hits[components.CategoryTree],
		RockHits:  c.hits[components.CategoryRock],
		PlantHits: c.hits[components.CategoryPlant],
		Misses:    c.misses,
		HitRate:   hitRate,

		TreesFelled:   c.treesFelled,
		TreesRemoved:  c.treesRemoved,
		RocksBroken:   c.rocksBroken,
		PlantsCleared: c.plantsCleared,
		Harvests:      c.harvests,
		FruitPicked:   c.fruitPicked,
		Consumed:      c.consumed,

		Throws:         c.throws,
		ThrowPowerMean: powerMean,
		Stuck:          c.stuck,

		YieldMean: yieldMean,
		YieldP50:  yieldP50,
		YieldP90:  yieldP90,

		WoodGained:   c.gained.Wood,
		FiberGained:  c.gained.Fiber,
		SticksGained: c.gained.Sticks,
		StonesGained: c.gained.Stones,
		SeedsGained:  c.gained.Seeds,

		Wood:   totals.Resources.Wood,
		Fiber:  totals.Resources.Fiber,
		Sticks: totals.Resources.Sticks,
		Stones: totals.Resources.Stones,
		Seeds:  totals.Resources.Seeds,

		ActiveTrees:   totals.ActiveTrees,
		ActiveRocks:   totals.ActiveRocks,
		InFlight:      totals.InFlight,
		InventoryUsed: totals.InventoryUsed,
	}

	// Reset for next window
	*c = Collector{
		windowDurationSec: c.windowDurationSec,
		windowStartTick:   currentTick,
		windowStartTime:   simTime,
		hitYields:         c.hitYields[:0],
		throwPowers:       c.throwPowers[:0],
	}

	return stats
}

// WindowDurationSec returns the window length in simulated seconds.
func (c *Collector) WindowDurationSec() float64 {
	return c.windowDurationSec
}
