package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/KevinA2505/Emerald/config"
)

// MilestoneType identifies the type of milestone.
type MilestoneType string

const (
	MilestoneFirstFell         MilestoneType = "first_fell"
	MilestoneFirstRock         MilestoneType = "first_rock"
	MilestoneLumberRush        MilestoneType = "lumber_rush"
	MilestoneStoneAge          MilestoneType = "stone_age"
	MilestoneYieldBreakthrough MilestoneType = "yield_breakthrough"
	MilestoneInventoryFull     MilestoneType = "inventory_full"
)

// Milestone represents an automatically detected session event.
type Milestone struct {
	Type        MilestoneType `csv:"type"`
	Tick        int32         `csv:"tick"`
	SimTimeSec  float64       `csv:"sim_time"`
	Description string        `csv:"description"`
}

// LogMilestone logs the milestone using slog.
func (m Milestone) LogMilestone() {
	slog.Info("milestone",
		"type", string(m.Type),
		"tick", m.Tick,
		"sim_time", m.SimTimeSec,
		"description", m.Description,
	)
}

// MilestoneDetector detects notable moments in a session from window stats.
type MilestoneDetector struct {
	cfg      config.MilestonesConfig
	capacity int

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	felled     bool // first tree already reported
	broke      bool // first rock already reported
	wasFull    bool // inventory was full at the previous window
	inRush     bool // previous window already met the wood threshold
	inStoneAge bool
}

// NewMilestoneDetector creates a detector with the given history size.
// capacity is the inventory capacity used for the inventory_full milestone.
func NewMilestoneDetector(cfg config.MilestonesConfig, historySize, capacity int) *MilestoneDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &MilestoneDetector{
		cfg:         cfg,
		capacity:    capacity,
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered milestones.
func (md *MilestoneDetector) Check(stats WindowStats) []Milestone {
	var out []Milestone
	add := func(t MilestoneType, format string, args ...any) {
		out = append(out, Milestone{
			Type:        t,
			Tick:        stats.WindowEndTick,
			SimTimeSec:  stats.SimTimeSec,
			Description: fmt.Sprintf(format, args...),
		})
	}

	if !md.felled && stats.TreesFelled > 0 {
		md.felled = true
		add(MilestoneFirstFell, "First tree felled (%d this window)", stats.TreesFelled)
	}
	if !md.broke && stats.RocksBroken > 0 {
		md.broke = true
		add(MilestoneFirstRock, "First rock broken (%d this window)", stats.RocksBroken)
	}

	rush := md.cfg.LumberRushWood > 0 && stats.WoodGained >= md.cfg.LumberRushWood
	if rush && !md.inRush {
		add(MilestoneLumberRush, "Gathered %d wood in one window", stats.WoodGained)
	}
	md.inRush = rush

	stoneAge := md.cfg.StoneAgeStones > 0 && stats.StonesGained >= md.cfg.StoneAgeStones
	if stoneAge && !md.inStoneAge {
		add(MilestoneStoneAge, "Gathered %d stones in one window", stats.StonesGained)
	}
	md.inStoneAge = stoneAge

	if avg, ok := md.rollingGain(); ok && avg > 0 {
		gained := float64(stats.Gained())
		if gained > avg*md.cfg.YieldMultiplier && stats.Gained() >= md.cfg.MinYield {
			add(MilestoneYieldBreakthrough, "Gained %d resources, %.1fx the average (%.1f)", stats.Gained(), gained/avg, avg)
		}
	}

	full := md.capacity > 0 && stats.InventoryUsed >= md.capacity
	if full && !md.wasFull {
		add(MilestoneInventoryFull, "Inventory full at %d items", stats.InventoryUsed)
	}
	md.wasFull = full

	md.addToHistory(stats)
	return out
}

// rollingGain returns the mean resources gained per window over the history.
func (md *MilestoneDetector) rollingGain() (float64, bool) {
	history := md.getHistory()
	if len(history) < 3 {
		return 0, false
	}
	var total int
	for _, h := range history {
		total += h.Gained()
	}
	return float64(total) / float64(len(history)), true
}

func (md *MilestoneDetector) addToHistory(stats WindowStats) {
	md.history[md.historyIdx] = stats
	md.historyIdx = (md.historyIdx + 1) % md.historySize
	if md.historyIdx == 0 {
		md.historyFull = true
	}
}

func (md *MilestoneDetector) getHistory() []WindowStats {
	if md.historyFull {
		return md.history
	}
	return md.history[:md.historyIdx]
}
