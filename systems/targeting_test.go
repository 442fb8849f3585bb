package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/KevinA2505/Emerald/components"
)

var eye = r3.Vec{Y: 1.7}

func asset(id int, cat components.Category, x, z, radius, height float64) components.WorldAsset {
	return components.WorldAsset{ID: id, Category: cat, Position: r3.Vec{X: x, Z: z}, Radius: radius, Height: height}
}

func TestCastExact(t *testing.T) {
	tree := asset(1, components.CategoryTree, 0, -2, 0.5, 4)
	tg := NewTargeter(testTerrain([]components.WorldAsset{tree}))

	hit, ok := tg.Cast(eye, r3.Vec{Z: -1}, 3.5)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Asset.ID != 1 || math.Abs(hit.Distance-1.5) > 1e-9 {
		t.Errorf("hit = %+v, want tree at 1.5", hit)
	}

	if _, ok := tg.Cast(eye, r3.Vec{Z: -1}, 1.0); ok {
		t.Error("hit beyond range")
	}
	if _, ok := tg.Cast(eye, r3.Vec{Z: 1}, 3.5); ok {
		t.Error("hit behind the origin")
	}
}

func TestCastMountainOccludes(t *testing.T) {
	tree := asset(1, components.CategoryTree, 0, -3, 0.5, 4)
	terrain := NewTerrain(&World{
		Assets:    []components.WorldAsset{tree},
		Mountains: []components.WorldAsset{asset(10000, components.CategoryMountain, 0, -1.5, 0.3, 30)},
	})
	tg := NewTargeter(terrain)

	// Aimed at the base of the tree.
	dir := r3.Unit(r3.Vec{Y: -1.7, Z: -3})
	hit, ok := tg.Cast(eye, dir, 3.5)
	if !ok || hit.Asset.Category != components.CategoryMountain {
		t.Fatalf("Cast = %+v, %v, want mountain", hit, ok)
	}

	// A swing falls back to fuzzy targeting, which ignores mountains.
	hit, ok = tg.Swing(eye, dir, 3.5)
	if !ok || hit.Asset.ID != 1 || !hit.Fuzzy {
		t.Errorf("Swing = %+v, %v, want fuzzy tree", hit, ok)
	}
}

func TestFuzzyPicksClosestToRay(t *testing.T) {
	rock := asset(1, components.CategoryRock, 0.5, -2, 0.2, 0.3)
	plant := asset(2, components.CategoryPlant, -0.6, -2, 0.2, 0.2)
	behind := asset(3, components.CategoryTree, 0, 1, 0.5, 4)
	far := asset(4, components.CategoryTree, 0, -6, 2, 4)
	tg := NewTargeter(testTerrain([]components.WorldAsset{rock, plant, behind, far}))

	dir := r3.Unit(r3.Vec{Y: -1.7, Z: -2})
	if _, ok := tg.Cast(eye, dir, 3.5); ok {
		t.Fatal("exact pass should miss")
	}

	hit, ok := tg.Swing(eye, dir, 3.5)
	if !ok {
		t.Fatal("expected fuzzy hit")
	}
	if hit.Asset.ID != 1 || !hit.Fuzzy {
		t.Errorf("hit = %+v, want fuzzy rock", hit)
	}
	if math.Abs(hit.Distance-0.5) > 1e-9 {
		t.Errorf("distance to ray = %v, want 0.5", hit.Distance)
	}

	tg.terrain.Removed = func(id int) bool { return id == 1 }
	hit, ok = tg.Swing(eye, dir, 3.5)
	if !ok || hit.Asset.ID != 2 {
		t.Errorf("with rock removed got %+v, %v, want plant", hit, ok)
	}
}

func TestFuzzyTolerance(t *testing.T) {
	rock := asset(1, components.CategoryRock, 0.7, -2, 0.2, 0.3)
	tg := NewTargeter(testTerrain([]components.WorldAsset{rock}))

	dir := r3.Unit(r3.Vec{Y: -1.7, Z: -2})
	if hit, ok := tg.Fuzzy(eye, dir, 3.5); ok {
		t.Errorf("asset 0.7 from the ray accepted with radius 0.2: %+v", hit)
	}
}

func TestHarvestable(t *testing.T) {
	plant := asset(5, components.CategoryPlant, 0, -2, 0.5, 0.2)
	blocker := asset(6, components.CategoryTree, 0, -1, 0.2, 4)
	tg := NewTargeter(testTerrain([]components.WorldAsset{plant, blocker}))
	dir := r3.Unit(r3.Vec{Y: -1.5, Z: -2})

	id, ok := tg.Harvestable(eye, dir, 3.0, func(int) bool { return true })
	if !ok || id != 5 {
		t.Errorf("Harvestable = %d, %v, want 5", id, ok)
	}
	if _, ok := tg.Harvestable(eye, dir, 3.0, func(int) bool { return false }); ok {
		t.Error("fruitless plant should not be harvestable")
	}
	if _, ok := tg.Harvestable(eye, dir, 2.0, func(int) bool { return true }); ok {
		t.Error("plant beyond range accepted")
	}
}

func TestHarvestableBushHeight(t *testing.T) {
	plant := asset(5, components.CategoryPlant, 0, -2, 0.5, 0.2)
	plant.Scale = 1
	tg := NewTargeter(testTerrain([]components.WorldAsset{plant}))
	fruit := func(int) bool { return true }

	tests := []struct {
		name string
		y    float64
		ok   bool
	}{
		{"footprint", 0.1, true},
		{"above footprint", 0.4, true},
		{"over the bush", 0.7, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := tg.Harvestable(r3.Vec{Y: tt.y}, r3.Vec{Z: -1}, 3.0, fruit)
			if ok != tt.ok {
				t.Errorf("Harvestable at y=%v = %v, want %v", tt.y, ok, tt.ok)
			}
		})
	}
}

func TestRayCylinder(t *testing.T) {
	a := asset(1, components.CategoryTree, 0, 0, 1, 2)
	tests := []struct {
		name   string
		origin r3.Vec
		dir    r3.Vec
		want   float64
		ok     bool
	}{
		{"side", r3.Vec{X: -5, Y: 1}, r3.Vec{X: 1}, 4, true},
		{"over the top", r3.Vec{X: -5, Y: 3}, r3.Vec{X: 1}, 0, false},
		{"top cap", r3.Vec{Y: 5}, r3.Vec{Y: -1}, 3, true},
		{"inside", r3.Vec{X: 0.5, Y: 1}, r3.Vec{X: 1}, 0, true},
		{"miss", r3.Vec{X: -5, Y: 1, Z: 2}, r3.Vec{X: 1}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := rayCylinder(tt.origin, tt.dir, a)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("distance = %v, want %v", got, tt.want)
			}
		})
	}
}
