package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase is one timed section of a simulation step.
type Phase uint8

const (
	PhasePlayer Phase = iota
	PhaseCombat
	PhaseProjectiles
	PhaseAnimation
	PhaseTelemetry
	numPhases
)

var phaseNames = [numPhases]string{"player", "combat", "projectiles", "animation", "telemetry"}

func (p Phase) String() string {
	if p < numPhases {
		return phaseNames[p]
	}
	return "unknown"
}

// tickTiming is the wall time spent in one step.
type tickTiming struct {
	total  time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector keeps step timings for the last N ticks in a ring.
type PerfCollector struct {
	ring   []tickTiming
	next   int
	filled int

	cur        tickTiming
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrame time.Time
	frameDur  time.Duration
}

// NewPerfCollector creates a collector averaging over window ticks.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{ring: make([]tickTiming, window)}
}

// StartTick begins timing a step.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.cur = tickTiming{}
	p.inPhase = false
}

// StartPhase closes the running phase and opens phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase < numPhases {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// EndTick closes the step and stores it in the ring.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.cur.total = now.Sub(p.tickStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	p.filled = min(p.filled+1, len(p.ring))
}

// RecordFrame marks a rendered frame; the gap since the previous call is
// the frame time.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameDur = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the timing window. Durations are in microseconds.
type PerfStats struct {
	AvgTickUS      float64
	MinTickUS      float64
	MaxTickUS      float64
	TicksPerSecond float64
	FPS            float64
	PhasePct       [numPhases]float64 // share of the average step
}

// Stats aggregates the ticks currently in the ring.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p.frameDur > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDur)
	}
	if p.filled == 0 {
		return s
	}

	totals := make([]float64, p.filled)
	var phaseSum [numPhases]float64
	for i, t := range p.ring[:p.filled] {
		totals[i] = micros(t.total)
		for ph, d := range t.phases {
			phaseSum[ph] += micros(d)
		}
	}

	s.AvgTickUS = stat.Mean(totals, nil)
	s.MinTickUS = floats.Min(totals)
	s.MaxTickUS = floats.Max(totals)
	if s.AvgTickUS > 0 {
		s.TicksPerSecond = 1e6 / s.AvgTickUS
		for ph := range phaseSum {
			s.PhasePct[ph] = phaseSum[ph] / float64(p.filled) / s.AvgTickUS * 100
		}
	}
	return s
}

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}

// LogStats logs the window summary.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("avg_tick_us", int(s.AvgTickUS)),
		slog.Int("min_tick_us", int(s.MinTickUS)),
		slog.Int("max_tick_us", int(s.MaxTickUS)),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for ph, pct := range s.PhasePct {
		if pct > 0.1 {
			attrs = append(attrs, slog.Float64(Phase(ph).String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfRow is one perf.csv record.
type PerfRow struct {
	WindowEnd      int32   `csv:"window_end"`
	AvgTickUS      float64 `csv:"avg_tick_us"`
	MinTickUS      float64 `csv:"min_tick_us"`
	MaxTickUS      float64 `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	FPS            float64 `csv:"fps"`
	PlayerPct      float64 `csv:"player_pct"`
	CombatPct      float64 `csv:"combat_pct"`
	ProjectilesPct float64 `csv:"projectiles_pct"`
	AnimationPct   float64 `csv:"animation_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// Row flattens the summary for CSV output.
func (s PerfStats) Row(windowEnd int32) PerfRow {
	return PerfRow{
		WindowEnd:      windowEnd,
		AvgTickUS:      s.AvgTickUS,
		MinTickUS:      s.MinTickUS,
		MaxTickUS:      s.MaxTickUS,
		TicksPerSec:    s.TicksPerSecond,
		FPS:            s.FPS,
		PlayerPct:      s.PhasePct[PhasePlayer],
		CombatPct:      s.PhasePct[PhaseCombat],
		ProjectilesPct: s.PhasePct[PhaseProjectiles],
		AnimationPct:   s.PhasePct[PhaseAnimation],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}
