package game

import (
	"log/slog"

	"github.com/KevinA2505/Emerald/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles milestones.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.simTime) {
		return
	}

	stats := g.collector.Flush(g.tick, g.simTime, g.worldTotals())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, m := range g.milestones.Check(stats) {
		if g.logStats {
			m.LogMilestone()
		}
		if err := g.outputManager.WriteMilestone(m); err != nil {
			slog.Error("failed to write milestone", "error", err)
		}
	}
}

// worldTotals samples the session state recorded at window end.
func (g *Game) worldTotals() telemetry.WorldTotals {
	return telemetry.WorldTotals{
		Resources:     g.resources,
		ActiveTrees:   g.activeTrees.Len(),
		ActiveRocks:   g.activeRocks.Len(),
		InFlight:      g.projectiles.Flying(),
		InventoryUsed: g.inventory.Len(),
	}
}
