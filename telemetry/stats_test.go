package telemetry

import (
	"math"
	"testing"

	"github.com/KevinA2505/Emerald/components"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.0},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.0},
		{"clamped", []float64{1, 2, 3}, 1.5, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeYieldStats(t *testing.T) {
	values := []float64{7, 1, 3, 2, 1, 5, 2, 1, 4, 14}
	mean, p50, p90 := ComputeYieldStats(values)

	if math.Abs(mean-4.0) > 0.001 {
		t.Errorf("mean = %v, want 4", mean)
	}
	if p50 != 2 {
		t.Errorf("p50 = %v, want 2", p50)
	}
	if p90 != 7 {
		t.Errorf("p90 = %v, want 7", p90)
	}
	if values[0] != 7 {
		t.Error("input slice was reordered")
	}
}

func TestComputeYieldStatsEmpty(t *testing.T) {
	mean, p50, p90 := ComputeYieldStats(nil)
	if mean != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10)

	c.Record(NewHitEvent(1, 4, components.CategoryTree, 2))
	c.Record(NewHitEvent(2, 4, components.CategoryTree, 8))
	c.Record(Event{Type: EventTreeFelled, Tick: 2, AssetID: 4})
	c.Record(NewTreeRemovedEvent(3, 4))
	c.Record(NewHitEvent(3, 9, components.CategoryRock, 3))
	c.Record(NewMissEvent(4))
	c.Record(NewHarvestEvent(5, 12, 3))
	c.Record(NewThrowEvent(6, 0.5))
	c.Record(NewThrowEvent(7, 1.0))
	c.RecordGain(components.ResourceDelta{components.Wood: 6, components.Sticks: 3})
	c.RecordGain(components.ResourceDelta{components.Stones: 3})

	if c.ShouldFlush(9.99) {
		t.Error("flushed before the window elapsed")
	}
	if !c.ShouldFlush(10) {
		t.Error("window should flush at 10s")
	}

	totals := WorldTotals{Resources: components.Resources{Wood: 6, Sticks: 3, Stones: 3}, ActiveTrees: 1}
	s := c.Flush(600, 10, totals)

	if s.TreeHits != 2 || s.RockHits != 1 || s.PlantHits != 0 || s.Misses != 1 {
		t.Errorf("hit counts = %d/%d/%d miss %d", s.TreeHits, s.RockHits, s.PlantHits, s.Misses)
	}
	if math.Abs(s.HitRate-0.75) > 1e-9 {
		t.Errorf("HitRate = %v, want 0.75", s.HitRate)
	}
	if s.TreesFelled != 1 || s.TreesRemoved != 1 || s.Harvests != 1 || s.FruitPicked != 3 {
		t.Errorf("felled %d removed %d harvests %d fruit %d", s.TreesFelled, s.TreesRemoved, s.Harvests, s.FruitPicked)
	}
	if math.Abs(s.ThrowPowerMean-0.75) > 1e-9 {
		t.Errorf("ThrowPowerMean = %v, want 0.75", s.ThrowPowerMean)
	}
	if s.YieldMean != 13.0/3 || s.YieldP50 != 3 {
		t.Errorf("yield mean %v p50 %v", s.YieldMean, s.YieldP50)
	}
	if s.Gained() != 12 || s.Wood != 6 || s.ActiveTrees != 1 {
		t.Errorf("gained %d wood %d active %d", s.Gained(), s.Wood, s.ActiveTrees)
	}

	next := c.Flush(1200, 20, totals)
	if next.WindowStartTick != 600 || next.TreeHits != 0 || next.Gained() != 0 || next.YieldMean != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if c.ShouldFlush(25) {
		t.Error("window start should advance to the flush time")
	}
}
