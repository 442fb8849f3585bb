package systems

import (
	"math"

	"github.com/KevinA2505/Emerald/components"
	"github.com/KevinA2505/Emerald/config"
)

// GroundSample describes the ground under a point.
type GroundSample struct {
	Height   float64 // standing height contributed by rocks
	SpeedMod float64 // product of plant and water slowdowns
	InWater  bool
}

// Terrain answers ground and obstacle queries against the live world.
// Removed entities are filtered through the Removed callback.
type Terrain struct {
	assets    *SpatialGrid[components.WorldAsset]
	mountains *SpatialGrid[components.WorldAsset]
	ponds     *SpatialGrid[components.Pond]

	// Removed reports whether a destructible asset no longer exists.
	Removed func(id int) bool

	standFactor float64
	plantSpeed  float64
	waterSpeed  float64
	scratch     []components.WorldAsset
	pondScratch []components.Pond
}

// NewTerrain indexes the world for ground and collision queries.
func NewTerrain(w *World) *Terrain {
	cfg := config.Cfg()
	cell := cfg.World.GridCellSize
	return &Terrain{
		assets:      NewSpatialGrid(w.Assets, cell),
		mountains:   NewSpatialGrid(w.Mountains, cell),
		ponds:       NewSpatialGrid(w.Ponds, cell),
		Removed:     func(int) bool { return false },
		standFactor: cfg.Player.StandFactor,
		plantSpeed:  cfg.Player.PlantSpeed,
		waterSpeed:  cfg.Player.WaterSpeed,
	}
}

// Assets returns the asset grid.
func (t *Terrain) Assets() *SpatialGrid[components.WorldAsset] { return t.assets }

// Mountains returns the mountain grid.
func (t *Terrain) Mountains() *SpatialGrid[components.WorldAsset] { return t.mountains }

// InWater reports whether (x, z) is inside a pond.
func (t *Terrain) InWater(x, z float64) bool {
	t.pondScratch = t.ponds.QueryInto(t.pondScratch[:0], x, z, 0)
	return InWater(t.pondScratch, x, z)
}

// GroundAt samples the ground at (x, z). Rocks raise the ground with a
// quartic bump out to standFactor times their radius. Each overlapping
// plant and standing in water slow movement.
func (t *Terrain) GroundAt(x, z float64) GroundSample {
	s := GroundSample{SpeedMod: 1}
	if t.InWater(x, z) {
		s.InWater = true
		s.SpeedMod *= t.waterSpeed
	}

	reach := t.assets.MaxItemRadius() * (t.standFactor - 1)
	t.scratch = t.assets.QueryInto(t.scratch[:0], x, z, reach)
	for _, a := range t.scratch {
		if a.Category != components.CategoryRock && a.Category != components.CategoryPlant {
			continue
		}
		stand := a.Radius * t.standFactor
		dist := math.Hypot(x-a.Position.X, z-a.Position.Z)
		if dist >= stand || t.Removed(a.ID) {
			continue
		}
		if a.Category == components.CategoryRock {
			ratio := math.Max(0, 1-math.Pow(dist/stand, 4))
			s.Height = math.Max(s.Height, a.Height*ratio)
		} else {
			s.SpeedMod *= t.plantSpeed
		}
	}
	return s
}

// Blocked reports whether a body of the given radius at (x, z) overlaps a
// mountain or a tree that still exists.
func (t *Terrain) Blocked(x, z, radius float64) bool {
	for _, m := range t.mountains.Query(x, z, radius) {
		if overlapsXZ(m, x, z, radius) {
			return true
		}
	}
	t.scratch = t.assets.QueryInto(t.scratch[:0], x, z, radius)
	for _, a := range t.scratch {
		if a.Category == components.CategoryTree && overlapsXZ(a, x, z, radius) && !t.Removed(a.ID) {
			return true
		}
	}
	return false
}

func overlapsXZ(a components.WorldAsset, x, z, radius float64) bool {
	dx := x - a.Position.X
	dz := z - a.Position.Z
	r := radius + a.Radius
	return dx*dx+dz*dz < r*r
}
