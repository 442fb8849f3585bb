package game

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/KevinA2505/Emerald/components"
	"github.com/KevinA2505/Emerald/config"
	"github.com/KevinA2505/Emerald/systems"
	"github.com/KevinA2505/Emerald/telemetry"
)

func init() {
	config.MustInit("")
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := NewGameWithOptions(Options{Seed: 42, Headless: true})
	t.Cleanup(g.Unload)
	return g
}

// firstAsset returns the first asset of a category that satisfies ok.
func firstAsset(t *testing.T, g *Game, cat components.Category, ok func(components.WorldAsset) bool) components.WorldAsset {
	t.Helper()
	for _, a := range g.World().Assets {
		if a.Category == cat && (ok == nil || ok(a)) {
			return a
		}
	}
	t.Skipf("seed produced no matching %s", cat)
	return components.WorldAsset{}
}

func fruiting(g *Game) func(components.WorldAsset) bool {
	return func(a components.WorldAsset) bool { return g.hasFruit(a.ID) }
}

// isolated reports whether no other asset or mountain lies within dist of a.
func isolated(g *Game, a components.WorldAsset, dist float64) bool {
	for _, list := range [][]components.WorldAsset{g.World().Assets, g.World().Mountains} {
		for _, b := range list {
			if b.ID == a.ID {
				continue
			}
			if math.Hypot(b.Position.X-a.Position.X, b.Position.Z-a.Position.Z) < dist+b.Radius {
				return false
			}
		}
	}
	return true
}

func step(g *Game, n int) {
	for i := 0; i < n; i++ {
		g.Update(g.frameSec)
	}
}

func TestSameSeedSameWorld(t *testing.T) {
	a := newTestGame(t)
	b := newTestGame(t)

	if len(a.World().Assets) != len(b.World().Assets) {
		t.Fatalf("asset counts differ: %d vs %d", len(a.World().Assets), len(b.World().Assets))
	}
	for i := range a.World().Assets {
		if a.World().Assets[i] != b.World().Assets[i] {
			t.Fatalf("asset %d differs: %+v vs %+v", i, a.World().Assets[i], b.World().Assets[i])
		}
	}
}

func TestEquipRules(t *testing.T) {
	g := newTestGame(t)

	if w, gd := g.Equipped(); w != "" || gd != "" {
		t.Fatalf("initial equipment = %q, %q; want nothing", w, gd)
	}
	if g.Equip("missing") {
		t.Error("equipped an item not in the inventory")
	}
	if !g.Equip("axe_01") {
		t.Fatal("failed to equip axe")
	}
	if w, _ := g.Equipped(); w != "axe_01" {
		t.Errorf("weapon = %q, want axe_01", w)
	}

	plant := firstAsset(t, g, components.CategoryPlant, fruiting(g))
	fruitID := components.FruitItem(g.plants[plant.ID].FruitType, 1).ID
	if !g.HarvestPlant(plant.ID) {
		t.Fatal("harvest failed")
	}
	if !g.Equip(fruitID) {
		t.Fatalf("failed to equip %s", fruitID)
	}
	w, gd := g.Equipped()
	if w != "axe_01" || gd != fruitID {
		t.Errorf("equipment = %q, %q; want axe_01, %s", w, gd, fruitID)
	}

	g.inventory.Add(components.Item{ID: "wood_bundle", Name: "Wood", Category: components.ItemResource, Count: 2})
	if g.Equip("wood_bundle") {
		t.Error("resources should not be equippable")
	}
}

func TestWrongToolIsNoop(t *testing.T) {
	g := newTestGame(t)
	tree := firstAsset(t, g, components.CategoryTree, nil)
	rock := firstAsset(t, g, components.CategoryRock, nil)

	g.Equip("pickaxe_01")
	before := g.TreeStates()[tree.ID]
	if g.HitTree(tree.ID) {
		t.Error("pickaxe hit a tree")
	}
	if g.TreeStates()[tree.ID] != before {
		t.Error("tree state changed on a rejected hit")
	}

	g.Equip("axe_01")
	if g.HitRock(rock.ID) {
		t.Error("axe hit a rock")
	}
	if g.Resources() != (components.Resources{}) {
		t.Errorf("resources = %+v, want none", g.Resources())
	}
}

func TestFellTreeAndAnimate(t *testing.T) {
	g := newTestGame(t)
	tree := firstAsset(t, g, components.CategoryTree, nil)
	g.Equip("axe_01")

	for i := 0; i < 20 && !g.trees[tree.ID].IsFalling; i++ {
		if !g.HitTree(tree.ID) {
			t.Fatalf("hit %d rejected", i)
		}
	}
	st := g.trees[tree.ID]
	if !st.IsFalling || st.Health != 0 {
		t.Fatalf("tree not felled: %+v", st)
	}
	if g.HitTree(tree.ID) {
		t.Error("falling tree accepted a hit")
	}
	if g.Resources().Wood < 5 {
		t.Errorf("wood = %d, want at least the felling bonus", g.Resources().Wood)
	}
	if g.activeTrees.Len() != 1 {
		t.Errorf("active trees = %d, want 1", g.activeTrees.Len())
	}
	if !g.terrain.Blocked(tree.Position.X, tree.Position.Z, 0.1) {
		t.Error("falling tree should still block until removed")
	}

	for i := 0; i < 400 && !g.trees[tree.ID].IsRemoved; i++ {
		step(g, 1)
	}
	if !g.trees[tree.ID].IsRemoved {
		t.Fatalf("tree never removed: %+v", g.trees[tree.ID])
	}
	if g.activeTrees.Len() != 0 {
		t.Errorf("active trees = %d after removal, want 0", g.activeTrees.Len())
	}
	if !g.removed(tree.ID) {
		t.Error("terrain still sees the removed tree")
	}

	s := g.collector.Flush(g.tick, g.simTime, g.worldTotals())
	if s.TreesFelled != 1 || s.TreesRemoved != 1 {
		t.Errorf("felled %d removed %d, want 1 each", s.TreesFelled, s.TreesRemoved)
	}
}

func TestFirstUpdateAdvancesOneFrame(t *testing.T) {
	g := newTestGame(t)
	tree := firstAsset(t, g, components.CategoryTree, nil)
	g.Equip("axe_01")
	for i := 0; i < 20 && !g.trees[tree.ID].IsFalling; i++ {
		g.HitTree(tree.ID)
	}

	fall := config.Cfg().Animation.FallRate
	g.Update(10) // long first frame counts as one
	if got := g.trees[tree.ID].FallProgress; math.Abs(got-fall) > 1e-9 {
		t.Errorf("after first update FallProgress = %v, want %v", got, fall)
	}
	g.Update(2 * g.frameSec)
	if got := g.trees[tree.ID].FallProgress; math.Abs(got-3*fall) > 1e-9 {
		t.Errorf("after two-frame update FallProgress = %v, want %v", got, 3*fall)
	}
}

func TestBreakRock(t *testing.T) {
	g := newTestGame(t)
	rock := firstAsset(t, g, components.CategoryRock, nil)
	g.Equip("pickaxe_01")

	for i := 0; i < 40 && !g.rocks[rock.ID].IsRemoved; i++ {
		if !g.HitRock(rock.ID) {
			t.Fatalf("hit %d rejected", i)
		}
		if g.rocks[rock.ID].ShakeTime <= 0 {
			t.Fatalf("hit %d did not shake the rock", i)
		}
	}
	if !g.rocks[rock.ID].IsRemoved {
		t.Fatal("rock never broke")
	}
	if g.Resources().Stones < 10 {
		t.Errorf("stones = %d, want at least the break bonus", g.Resources().Stones)
	}
	if !g.removed(rock.ID) {
		t.Error("terrain still sees the broken rock")
	}

	step(g, 200)
	if g.activeRocks.Len() != 0 {
		t.Errorf("active rocks = %d after shake decay, want 0", g.activeRocks.Len())
	}
}

func TestHarvestPlant(t *testing.T) {
	g := newTestGame(t)
	plant := firstAsset(t, g, components.CategoryPlant, fruiting(g))
	want := g.plants[plant.ID]

	if !g.HarvestPlant(plant.ID) {
		t.Fatal("harvest failed")
	}
	st := g.plants[plant.ID]
	if st.HasFruit || st.FruitCount != 0 {
		t.Errorf("plant still has fruit: %+v", st)
	}
	it, ok := g.inventory.Get("fruit_" + string(want.FruitType))
	if !ok || it.Count != want.FruitCount || !it.Consumable {
		t.Errorf("inventory fruit = %+v, %v; want %d consumable", it, ok, want.FruitCount)
	}
	if g.HarvestPlant(plant.ID) {
		t.Error("harvested a bare plant")
	}
}

func TestHarvestKeepsFruitWhenInventoryFull(t *testing.T) {
	g := newTestGame(t)
	plant := firstAsset(t, g, components.CategoryPlant, fruiting(g))

	for i := 0; !g.inventory.Full(); i++ {
		g.inventory.Add(components.Item{ID: "filler_" + string(rune('a'+i)), Category: components.ItemResource})
	}
	before := g.plants[plant.ID]
	if g.HarvestPlant(plant.ID) {
		t.Fatal("harvest succeeded with a full inventory")
	}
	if g.plants[plant.ID] != before {
		t.Errorf("plant changed: %+v -> %+v", before, g.plants[plant.ID])
	}
}

func TestSwingRequiresStartAndWeapon(t *testing.T) {
	g := newTestGame(t)

	if g.Swing() {
		t.Error("swing before start")
	}
	g.Start()
	if g.Swing() {
		t.Error("swing without a weapon")
	}
	g.Equip("axe_01")
	if !g.Swing() {
		t.Fatal("swing with axe refused")
	}
	if g.Swing() {
		t.Error("second swing started mid-swing")
	}

	g.ToggleAttackMode()
	step(g, 60)
	if g.Swing() {
		t.Error("swing allowed in throw mode")
	}
}

func TestSwingHitsTreeAhead(t *testing.T) {
	g := newTestGame(t)
	tree := firstAsset(t, g, components.CategoryTree, func(a components.WorldAsset) bool {
		return a.Height > 2.5 && isolated(g, a, 6)
	})

	// stand 2 units on +Z, looking down -Z at the trunk
	g.player.Position = r3.Vec{X: tree.Position.X, Y: config.Cfg().Player.EyeHeight, Z: tree.Position.Z + 2}
	g.player.Yaw, g.player.Pitch = 0, 0

	g.Start()
	g.Equip("axe_01")
	if !g.Swing() {
		t.Fatal("swing refused")
	}
	step(g, 60)

	st := g.trees[tree.ID]
	if st.Health >= st.MaxHealth {
		t.Errorf("tree health = %v, want damage", st.Health)
	}
	if g.swing.Active() {
		t.Error("swing still active after a full cycle")
	}
}

func TestMissedSwingIsRecorded(t *testing.T) {
	g := NewGameWithOptions(Options{Seed: 42, Headless: true, StatsWindowSec: 1})
	defer g.Unload()

	var windows []telemetry.WindowStats
	g.SetStatsCallback(func(s telemetry.WindowStats) { windows = append(windows, s) })

	// look straight up: nothing to hit
	g.player.Pitch = math.Pi/2 - 0.01
	g.Start()
	g.Equip("knife_01")
	g.Swing()
	step(g, 70)

	if len(windows) == 0 {
		t.Fatal("no stats window flushed")
	}
	if windows[0].Misses != 1 {
		t.Errorf("misses = %d, want 1", windows[0].Misses)
	}
}

func TestThrowAndStick(t *testing.T) {
	g := newTestGame(t)
	g.Start()

	if g.BeginCharge() {
		t.Error("charge in slash mode")
	}
	if g.ToggleAttackMode() != ModeThrow {
		t.Fatal("mode did not toggle")
	}
	if g.BeginCharge() {
		t.Error("charge without a weapon")
	}

	g.Equip("knife_01")
	if !g.BeginCharge() {
		t.Fatal("charge refused")
	}
	step(g, 10)
	if p := g.ChargeProgress(); p <= 0.05 || p > 1 {
		t.Errorf("charge = %v, want growth from the base level", p)
	}

	id, ok := g.ReleaseCharge()
	if !ok || !strings.HasPrefix(id, "thrown_") {
		t.Fatalf("ReleaseCharge = %q, %v", id, ok)
	}
	if g.ChargeProgress() != 0 {
		t.Error("charge not reset after release")
	}
	if _, ok := g.ReleaseCharge(); ok {
		t.Error("released twice")
	}

	for i := 0; i < 1200; i++ {
		step(g, 1)
		if ps := g.Projectiles(); len(ps) == 1 && ps[0].Stuck {
			return
		}
	}
	t.Fatalf("projectile never stuck: %+v", g.Projectiles())
}

func TestConsumeFruit(t *testing.T) {
	g := newTestGame(t)
	plant := firstAsset(t, g, components.CategoryPlant, fruiting(g))
	fruit := g.plants[plant.ID]
	id := "fruit_" + string(fruit.FruitType)

	g.Start()
	if g.BeginConsume() {
		t.Error("consume with no gadget")
	}
	g.HarvestPlant(plant.ID)
	g.Equip(id)
	if !g.BeginConsume() {
		t.Fatal("consume refused")
	}

	step(g, 70)
	if g.ConsumeProgress() != 0 {
		t.Errorf("consume progress = %v after completion, want 0", g.ConsumeProgress())
	}

	left := fruit.FruitCount - 1
	it, ok := g.inventory.Get(id)
	if left == 0 {
		if ok {
			t.Errorf("last fruit still in inventory: %+v", it)
		}
		if _, gd := g.Equipped(); gd != "" {
			t.Errorf("gadget = %q after eating the last fruit", gd)
		}
		return
	}
	if !ok || it.Count != left {
		t.Errorf("fruit count = %d, want %d", it.Count, left)
	}
	if _, gd := g.Equipped(); gd != id {
		t.Errorf("gadget = %q, want %q still equipped", gd, id)
	}
}

func TestBlockInputStopsMovement(t *testing.T) {
	g := newTestGame(t)
	g.Start()
	g.SetBlockInput(true)
	g.player.Yaw = 0

	start := g.Player().Position
	g.SetIntent(systems.MoveIntent{Forward: true})
	step(g, 30)
	if p := g.Player().Position; p.X != start.X || p.Z != start.Z {
		t.Errorf("player moved while input blocked: %v -> %v", start, p)
	}
	if g.Swing() {
		t.Error("swing while input blocked")
	}
}

func TestTelemetryOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	g := NewGameWithOptions(Options{Seed: 7, Headless: true, StatsWindowSec: 0.5, OutputDir: dir})

	var windows []telemetry.WindowStats
	g.SetStatsCallback(func(s telemetry.WindowStats) { windows = append(windows, s) })

	g.Start()
	step(g, int(2/g.frameSec)+1)
	g.Unload()

	if len(windows) < 3 {
		t.Fatalf("got %d windows, want at least 3", len(windows))
	}
	for i := 1; i < len(windows); i++ {
		if windows[i].WindowEndTick <= windows[i-1].WindowEndTick {
			t.Errorf("window %d ends at tick %d, not after %d", i, windows[i].WindowEndTick, windows[i-1].WindowEndTick)
		}
	}
	for _, name := range []string{"telemetry.csv", "perf.csv", "milestones.csv", "config.yaml"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if name != "milestones.csv" && info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}
