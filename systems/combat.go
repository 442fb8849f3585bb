package systems

import (
	"math"

	"github.com/KevinA2505/Emerald/components"
	"github.com/KevinA2505/Emerald/config"
)

// Swing times a melee attack and reports when it can connect.
// Heavy tools run a fixed-length cycle with a hit window near the end of
// the downswing; the knife sweeps a half-turn phase with a centered window.
// A swing lands at most one hit.
type Swing struct {
	cfg config.CombatConfig

	active  bool
	heavy   bool
	t       float64 // seconds for heavy tools, sweep phase for the knife
	hasHit  bool
	hitStop float64
}

// NewSwing creates an idle swing timer.
func NewSwing() *Swing {
	return &Swing{cfg: config.Cfg().Combat}
}

// Start begins a swing with tool. Returns false if one is already running.
func (s *Swing) Start(tool components.Tool) bool {
	if s.active || tool == components.ToolNone {
		return false
	}
	s.active = true
	s.heavy = tool.Heavy()
	s.t = 0
	s.hasHit = false
	s.hitStop = 0
	return true
}

// Active reports whether a swing is in progress.
func (s *Swing) Active() bool { return s.active }

// Connected reports whether the current or most recent swing landed a hit.
func (s *Swing) Connected() bool { return s.hasHit }

// Progress returns the swing completion in [0, 1].
func (s *Swing) Progress() float64 {
	if !s.active {
		return 0
	}
	if s.heavy {
		return clamp01(s.t / s.cfg.HeavyCycle)
	}
	return clamp01(s.t / math.Pi)
}

// Advance moves the swing forward by dt seconds. It returns true while the
// swing is inside its hit window and has not connected yet.
func (s *Swing) Advance(dt float64) bool {
	if !s.active {
		return false
	}
	if s.hitStop > 0 {
		s.hitStop -= dt
		return false
	}

	if s.heavy {
		s.t += dt
		if s.t >= s.cfg.HeavyCycle {
			s.active = false
			s.t = 0
			return false
		}
		return !s.hasHit && s.t > s.cfg.HeavyHitStart && s.t < s.cfg.HeavyHitEnd
	}

	s.t += dt * s.cfg.KnifeRate
	if s.t > math.Pi {
		s.active = false
		s.t = 0
		return false
	}
	phase := s.t / math.Pi
	return !s.hasHit && phase > s.cfg.KnifeHitStart && phase < s.cfg.KnifeHitEnd
}

// Connect records that the swing hit something. The swing freezes briefly;
// a heavy tool striking rock recoils forward into its recovery.
func (s *Swing) Connect(category components.Category) {
	s.hasHit = true
	s.hitStop = s.cfg.HitStop
	if s.heavy && category == components.CategoryRock {
		s.t = math.Max(s.t, s.cfg.RockRecoil)
	}
}

// Charger accumulates throw power while the button is held.
type Charger struct {
	cfg      config.CombatConfig
	charging bool
	level    float64
}

// NewCharger creates an idle charger.
func NewCharger() *Charger {
	return &Charger{cfg: config.Cfg().Combat}
}

// Begin starts charging from the base level.
func (c *Charger) Begin() {
	c.charging = true
	c.level = c.cfg.ChargeStart
}

// Charging reports whether the throw is being held.
func (c *Charger) Charging() bool { return c.charging }

// Level returns the current charge in [0, 1]; 0 when idle.
func (c *Charger) Level() float64 {
	if !c.charging {
		return 0
	}
	return c.level
}

// Advance grows the charge by dt seconds.
func (c *Charger) Advance(dt float64) {
	if c.charging {
		c.level = math.Min(1, c.level+dt*c.cfg.ChargeRate)
	}
}

// Release ends charging and returns the throw power.
func (c *Charger) Release() (float64, bool) {
	if !c.charging {
		return 0, false
	}
	c.charging = false
	power := math.Max(c.cfg.MinPower, c.level)
	c.level = 0
	return power, true
}

// Cancel abandons a charge without throwing.
func (c *Charger) Cancel() {
	c.charging = false
	c.level = 0
}

// Consumer times eating the equipped consumable. Progress is per reference frame.
type Consumer struct {
	cfg      config.CombatConfig
	active   bool
	progress float64
}

// NewConsumer creates an idle consumer.
func NewConsumer() *Consumer {
	return &Consumer{cfg: config.Cfg().Combat}
}

// Begin starts consuming. Returns false if already in progress.
func (c *Consumer) Begin() bool {
	if c.active {
		return false
	}
	c.active = true
	c.progress = c.cfg.ConsumeStart
	return true
}

// Active reports whether consumption is in progress.
func (c *Consumer) Active() bool { return c.active }

// Progress returns completion in [0, 1].
func (c *Consumer) Progress() float64 {
	if !c.active {
		return 0
	}
	return c.progress
}

// Advance adds frames reference frames of progress and reports completion.
func (c *Consumer) Advance(frames float64) bool {
	if !c.active {
		return false
	}
	c.progress = math.Min(1, c.progress+c.cfg.ConsumeRate*frames)
	if c.progress >= 1 {
		c.active = false
		c.progress = 0
		return true
	}
	return false
}

// Cancel stops consumption without finishing.
func (c *Consumer) Cancel() {
	c.active = false
	c.progress = 0
}
