package systems

import (
	"math"
	"testing"

	"github.com/KevinA2505/Emerald/components"
)

// runSwing advances a swing at a fixed step and records the times at which
// it reported an open hit window.
func runSwing(s *Swing, dt float64, connect components.Category) (windows []float64, elapsed float64) {
	for i := 0; i < 10000 && s.Active(); i++ {
		elapsed += dt
		if s.Advance(dt) {
			windows = append(windows, elapsed)
			if connect != components.CategoryMountain {
				s.Connect(connect)
			}
		}
	}
	return windows, elapsed
}

func TestSwingHeavyWindow(t *testing.T) {
	s := NewSwing()
	if !s.Start(components.ToolChopping) {
		t.Fatal("Start rejected")
	}
	if s.Start(components.ToolChopping) {
		t.Error("second Start accepted mid-swing")
	}

	windows, elapsed := runSwing(s, 0.01, components.CategoryMountain)
	if len(windows) == 0 {
		t.Fatal("heavy swing never opened its hit window")
	}
	for _, w := range windows {
		if w <= 0.23-1e-9 || w >= 0.30+1e-9 {
			t.Errorf("window open at %v, want within (0.23, 0.30)", w)
		}
	}
	if math.Abs(elapsed-0.55) > 0.011 {
		t.Errorf("cycle lasted %v, want 0.55", elapsed)
	}
}

func TestSwingSingleHit(t *testing.T) {
	s := NewSwing()
	s.Start(components.ToolChopping)
	windows, _ := runSwing(s, 0.005, components.CategoryTree)
	if len(windows) != 1 {
		t.Errorf("connected %d times, want 1", len(windows))
	}
}

func TestSwingRockRecoil(t *testing.T) {
	s := NewSwing()
	s.Start(components.ToolMining)
	_, withRock := runSwing(s, 0.005, components.CategoryRock)

	s.Start(components.ToolMining)
	_, withTree := runSwing(s, 0.005, components.CategoryTree)

	if withRock >= withTree {
		t.Errorf("rock swing %v should end sooner than tree swing %v", withRock, withTree)
	}
}

func TestSwingKnife(t *testing.T) {
	s := NewSwing()
	s.Start(components.ToolSlashing)
	windows, elapsed := runSwing(s, 0.001, components.CategoryMountain)

	want := math.Pi / 14
	if math.Abs(elapsed-want) > 0.002 {
		t.Errorf("knife sweep lasted %v, want %v", elapsed, want)
	}
	for _, w := range windows {
		frac := w / want
		if frac < 0.39 || frac > 0.61 {
			t.Errorf("window open at %.2f of sweep, want 0.4..0.6", frac)
		}
	}
	if len(windows) == 0 {
		t.Error("knife never opened its hit window")
	}
}

func TestSwingUnarmed(t *testing.T) {
	s := NewSwing()
	if s.Start(components.ToolNone) {
		t.Error("unarmed swing should not start")
	}
}

func TestCharger(t *testing.T) {
	c := NewCharger()
	if _, ok := c.Release(); ok {
		t.Error("release without charge should fail")
	}

	c.Begin()
	if c.Level() != 0.05 {
		t.Errorf("initial level = %v, want 0.05", c.Level())
	}
	c.Advance(0.1)
	if math.Abs(c.Level()-0.27) > 1e-9 {
		t.Errorf("level = %v, want 0.27", c.Level())
	}
	c.Advance(5)
	if c.Level() != 1 {
		t.Errorf("level = %v, want capped at 1", c.Level())
	}
	p, ok := c.Release()
	if !ok || p != 1 {
		t.Errorf("Release = %v, %v, want 1", p, ok)
	}
	if c.Level() != 0 || c.Charging() {
		t.Error("charger should be idle after release")
	}
}

func TestChargerMinPower(t *testing.T) {
	c := NewCharger()
	c.Begin()
	if p, _ := c.Release(); p != 0.1 {
		t.Errorf("quick release power = %v, want 0.1", p)
	}
}

func TestConsumer(t *testing.T) {
	c := NewConsumer()
	if !c.Begin() {
		t.Fatal("Begin rejected")
	}
	if c.Begin() {
		t.Error("second Begin accepted")
	}

	frames := 0
	for !c.Advance(1) {
		frames++
		if frames > 1000 {
			t.Fatal("consumption never finished")
		}
	}
	// (1 - 0.05) / 0.015 = 63.3 frames
	if frames < 62 || frames > 64 {
		t.Errorf("took %d frames, want about 63", frames)
	}
	if c.Active() || c.Progress() != 0 {
		t.Error("consumer should reset after finishing")
	}
}
