package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/KevinA2505/Emerald/components"
	"github.com/KevinA2505/Emerald/config"
)

// World is the output of generation: static assets plus initial mutable state.
type World struct {
	Assets    []components.WorldAsset // trees, rocks and plants
	Mountains []components.WorldAsset
	Ponds     []components.Pond
	Trees     map[int]components.TreeState
	Rocks     map[int]components.RockState
	Plants    map[int]components.PlantState
}

// Asset looks up a scattered asset or mountain by ID.
func (w *World) Asset(id int) (components.WorldAsset, bool) {
	for _, a := range w.Assets {
		if a.ID == id {
			return a, true
		}
	}
	for _, m := range w.Mountains {
		if m.ID == id {
			return m, true
		}
	}
	return components.WorldAsset{}, false
}

// InWater reports whether (x, z) lies inside any pond.
func InWater(ponds []components.Pond, x, z float64) bool {
	for _, p := range ponds {
		if PointInPolygon(x-p.Position.X, z-p.Position.Z, p.Vertices) {
			return true
		}
	}
	return false
}

// uniform draws from [r.Min, r.Max).
func uniform(rng *rand.Rand, r config.Range) float64 {
	return lerp(r.Min, r.Max, rng.Float64())
}

// GenerateWorld builds the boundary mountains, ponds and scattered assets.
// The result is fully determined by the rng state.
func GenerateWorld(rng *rand.Rand) *World {
	cfg := config.Cfg()
	w := &World{
		Trees:  make(map[int]components.TreeState),
		Rocks:  make(map[int]components.RockState),
		Plants: make(map[int]components.PlantState),
	}

	generateMountains(w, rng, cfg)
	generatePonds(w, rng, cfg)
	scatterAssets(w, rng, cfg)

	return w
}

func generateMountains(w *World, rng *rand.Rand, cfg *config.Config) {
	mc := cfg.Generation.Mountains
	ring := cfg.Derived.MountainRadius
	w.Mountains = make([]components.WorldAsset, 0, mc.Count)

	for i := 0; i < mc.Count; i++ {
		angle := float64(i) / float64(mc.Count) * 2 * math.Pi
		scale := uniform(rng, mc.Scale)
		rotation := rng.Float64() * 2 * math.Pi
		// Footprint is rolled independently of the visual scale.
		radius := uniform(rng, mc.Scale) * mc.RadiusFactor
		height := uniform(rng, mc.Height)

		w.Mountains = append(w.Mountains, components.WorldAsset{
			ID:       mc.IDBase + i,
			Category: components.CategoryMountain,
			Position: r3.Vec{X: math.Cos(angle) * ring, Z: math.Sin(angle) * ring},
			Scale:    scale,
			Rotation: rotation,
			Radius:   radius,
			Height:   height,
		})
	}
}

func generatePonds(w *World, rng *rand.Rand, cfg *config.Config) {
	pc := cfg.Generation.Ponds
	w.Ponds = make([]components.Pond, 0, pc.Count)

	for i := 0; i < pc.Count; i++ {
		px := (rng.Float64() - 0.5) * pc.Spread
		pz := (rng.Float64() - 0.5) * pc.Spread
		segments := pc.MinSegments + rng.Intn(max(pc.SegmentRange, 1))
		base := uniform(rng, pc.BaseRadius)

		verts := make([][2]float64, segments)
		for s := range verts {
			angle := float64(s) / float64(segments) * 2 * math.Pi
			r := base * uniform(rng, pc.Jitter)
			verts[s] = [2]float64{math.Cos(angle) * r, math.Sin(angle) * r}
		}

		w.Ponds = append(w.Ponds, components.Pond{
			ID:       i,
			Position: r3.Vec{X: px, Y: pc.Elevation, Z: pz},
			Vertices: verts,
		})
	}
}

func scatterAssets(w *World, rng *rand.Rand, cfg *config.Config) {
	sc := cfg.Generation.Scatter
	gen := cfg.Generation

	for i := 0; i < sc.Samples; i++ {
		x := (rng.Float64() - 0.5) * sc.Extent
		z := (rng.Float64() - 0.5) * sc.Extent
		if math.Abs(x) < sc.SpawnClear && math.Abs(z) < sc.SpawnClear {
			continue
		}
		if InWater(w.Ponds, x, z) {
			continue
		}

		roll := rng.Float64()
		scale := uniform(rng, sc.Scale)
		rotation := rng.Float64() * 2 * math.Pi
		asset := components.WorldAsset{
			ID:       i,
			Position: r3.Vec{X: x, Z: z},
			Scale:    scale,
			Rotation: rotation,
		}

		switch {
		case roll < sc.TreeChance:
			kind, subtype := pickTree(gen.Trees, rng.Float64())
			asset.Category = components.CategoryTree
			asset.Subtype = subtype
			asset.Radius = kind.RadiusFactor * scale
			asset.Height = kind.HeightFactor * scale
			w.Trees[i] = components.TreeState{
				Health:        kind.Health,
				MaxHealth:     kind.Health,
				FallDirection: [2]float64{rng.Float64() - 0.5, rng.Float64() - 0.5},
				Opacity:       1,
			}
		case roll < sc.RockChance:
			rc := gen.Rocks
			hits := rc.MinHits + rng.Intn(max(rc.HitRange, 1))
			health := float64(hits) * rc.HealthPerHit
			asset.Category = components.CategoryRock
			asset.Radius = rc.RadiusFactor * scale
			asset.Height = rc.HeightFactor * scale
			w.Rocks[i] = components.RockState{Health: health, MaxHealth: health}
		default:
			pl := gen.Plants
			asset.Category = components.CategoryPlant
			asset.Radius = pl.RadiusFactor * scale
			asset.Height = pl.HeightFactor * scale
			st := components.PlantState{Health: pl.Health}
			if rng.Float64() < pl.FruitChance {
				st.HasFruit = true
				st.FruitType = components.FruitTypes[rng.Intn(len(components.FruitTypes))]
				st.FruitCount = 1 + rng.Intn(max(pl.MaxFruit, 1))
			}
			w.Plants[i] = st
		}

		w.Assets = append(w.Assets, asset)
	}
}

func pickTree(tc config.TreeGenConfig, roll float64) (config.TreeKindConfig, components.Subtype) {
	switch {
	case roll < tc.Pine.Chance:
		return tc.Pine, components.SubtypePine
	case roll < tc.Oak.Chance:
		return tc.Oak, components.SubtypeOak
	default:
		return tc.Birch, components.SubtypeBirch
	}
}
