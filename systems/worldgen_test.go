package systems

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/KevinA2505/Emerald/components"
	"github.com/KevinA2505/Emerald/config"
)

func TestGenerateWorldDeterministic(t *testing.T) {
	a := GenerateWorld(rand.New(rand.NewSource(99)))
	b := GenerateWorld(rand.New(rand.NewSource(99)))

	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different worlds")
	}
	c := GenerateWorld(rand.New(rand.NewSource(100)))
	if reflect.DeepEqual(a.Assets, c.Assets) {
		t.Error("different seeds produced identical assets")
	}
}

func TestGenerateWorldMountainRing(t *testing.T) {
	cfg := config.Cfg()
	w := GenerateWorld(rand.New(rand.NewSource(1)))

	if len(w.Mountains) != cfg.Generation.Mountains.Count {
		t.Fatalf("got %d mountains, want %d", len(w.Mountains), cfg.Generation.Mountains.Count)
	}
	ring := cfg.World.MapLimit + cfg.Generation.Mountains.RingOffset
	for i, m := range w.Mountains {
		if m.ID != 10000+i {
			t.Errorf("mountain %d has ID %d", i, m.ID)
		}
		if d := math.Hypot(m.Position.X, m.Position.Z); math.Abs(d-ring) > 1e-9 {
			t.Errorf("mountain %d at radius %v, want %v", i, d, ring)
		}
		if m.Radius < 18*0.7 || m.Radius >= 30*0.7 {
			t.Errorf("mountain %d radius %v out of range", i, m.Radius)
		}
		if m.Height < 25 || m.Height >= 40 {
			t.Errorf("mountain %d height %v out of range", i, m.Height)
		}
	}

	angle := func(m components.WorldAsset) float64 {
		a := math.Atan2(m.Position.Z, m.Position.X)
		if a < 0 {
			a += 2 * math.Pi
		}
		return a
	}
	step := 2 * math.Pi / float64(len(w.Mountains))
	for i := range w.Mountains {
		next := (i + 1) % len(w.Mountains)
		gap := angle(w.Mountains[next]) - angle(w.Mountains[i])
		if gap < 0 {
			gap += 2 * math.Pi
		}
		if math.Abs(gap-step) > 1e-9 {
			t.Errorf("gap after mountain %d = %v, want %v", i, gap, step)
		}
	}
}

func TestGenerateWorldScatterInvariants(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		w := GenerateWorld(rand.New(rand.NewSource(seed)))

		if len(w.Ponds) != 6 {
			t.Fatalf("seed %d: got %d ponds, want 6", seed, len(w.Ponds))
		}
		for _, p := range w.Ponds {
			if n := len(p.Vertices); n < 12 || n > 19 {
				t.Errorf("seed %d: pond %d has %d vertices", seed, p.ID, n)
			}
		}

		seen := make(map[int]bool)
		for _, a := range w.Assets {
			if seen[a.ID] {
				t.Fatalf("seed %d: duplicate asset id %d", seed, a.ID)
			}
			seen[a.ID] = true

			if math.Abs(a.Position.X) < 5 && math.Abs(a.Position.Z) < 5 {
				t.Errorf("seed %d: asset %d inside spawn clearing", seed, a.ID)
			}
			if InWater(w.Ponds, a.Position.X, a.Position.Z) {
				t.Errorf("seed %d: asset %d inside a pond", seed, a.ID)
			}
			if a.ID < 0 || a.ID >= 550 {
				t.Errorf("seed %d: asset id %d outside sample range", seed, a.ID)
			}

			switch a.Category {
			case components.CategoryTree:
				st, ok := w.Trees[a.ID]
				if !ok {
					t.Fatalf("seed %d: tree %d has no state", seed, a.ID)
				}
				if st.Health != st.MaxHealth || st.Opacity != 1 {
					t.Errorf("seed %d: tree %d bad initial state %+v", seed, a.ID, st)
				}
			case components.CategoryRock:
				st, ok := w.Rocks[a.ID]
				if !ok {
					t.Fatalf("seed %d: rock %d has no state", seed, a.ID)
				}
				hits := st.MaxHealth / 55
				if hits < 6 || hits > 10 || hits != math.Trunc(hits) {
					t.Errorf("seed %d: rock %d max health %v not 6..10 hits", seed, a.ID, st.MaxHealth)
				}
			case components.CategoryPlant:
				st, ok := w.Plants[a.ID]
				if !ok {
					t.Fatalf("seed %d: plant %d has no state", seed, a.ID)
				}
				if st.HasFruit && (st.FruitCount < 1 || st.FruitCount > 3 || st.FruitType == components.FruitNone) {
					t.Errorf("seed %d: plant %d bad fruit %+v", seed, a.ID, st)
				}
				if !st.HasFruit && st.FruitCount != 0 {
					t.Errorf("seed %d: fruitless plant %d has count %d", seed, a.ID, st.FruitCount)
				}
			default:
				t.Errorf("seed %d: unexpected category %v in scatter", seed, a.Category)
			}
		}
		if got := len(w.Trees) + len(w.Rocks) + len(w.Plants); got != len(w.Assets) {
			t.Errorf("seed %d: %d states for %d assets", seed, got, len(w.Assets))
		}
	}
}

func TestPickTree(t *testing.T) {
	tc := config.Cfg().Generation.Trees
	tests := []struct {
		roll float64
		want components.Subtype
	}{
		{0.0, components.SubtypePine},
		{0.39, components.SubtypePine},
		{0.4, components.SubtypeOak},
		{0.74, components.SubtypeOak},
		{0.75, components.SubtypeBirch},
		{0.99, components.SubtypeBirch},
	}
	for _, tt := range tests {
		if _, got := pickTree(tc, tt.roll); got != tt.want {
			t.Errorf("pickTree(%v) = %v, want %v", tt.roll, got, tt.want)
		}
	}
}
