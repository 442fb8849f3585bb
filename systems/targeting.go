package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/KevinA2505/Emerald/components"
	"github.com/KevinA2505/Emerald/config"
)

// Target is an asset selected by an interaction ray.
type Target struct {
	Asset    components.WorldAsset
	Distance float64 // along the ray for exact hits, to the ray for fuzzy hits
	Fuzzy    bool
}

// Targeter picks the asset a view ray is aimed at.
type Targeter struct {
	terrain    *Terrain
	tolerance  float64
	bushFactor float64
	scratch    []components.WorldAsset
}

// NewTargeter creates a targeter over the terrain's indexed assets.
func NewTargeter(t *Terrain) *Targeter {
	cfg := config.Cfg()
	return &Targeter{
		terrain:    t,
		tolerance:  cfg.Combat.FuzzyTolerance,
		bushFactor: cfg.Generation.Plants.BushFactor,
	}
}

// candidates returns assets whose footprint may touch the ray segment.
func (tg *Targeter) candidates(origin, dir r3.Vec, maxDist float64, grid *SpatialGrid[components.WorldAsset]) []components.WorldAsset {
	mid := r3.Add(origin, r3.Scale(maxDist/2, dir))
	tg.scratch = grid.QueryInto(tg.scratch[:0], mid.X, mid.Z, maxDist/2)
	return tg.scratch
}

// Cast returns the nearest solid thing along the ray within maxDist.
// Mountains are included so they occlude what lies behind them.
func (tg *Targeter) Cast(origin, dir r3.Vec, maxDist float64) (Target, bool) {
	best := Target{Distance: math.Inf(1)}
	found := false

	consider := func(list []components.WorldAsset) {
		for _, a := range list {
			if a.Category != components.CategoryMountain && tg.terrain.Removed(a.ID) {
				continue
			}
			if d, ok := rayCylinder(origin, dir, a); ok && d <= maxDist && d < best.Distance {
				best = Target{Asset: a, Distance: d}
				found = true
			}
		}
	}
	consider(tg.candidates(origin, dir, maxDist, tg.terrain.Assets()))
	consider(tg.candidates(origin, dir, maxDist, tg.terrain.Mountains()))

	return best, found
}

// Fuzzy returns the non-mountain asset closest to the ray, provided it is
// in front of the origin, within maxDist, and within its radius plus the
// tolerance of the ray.
func (tg *Targeter) Fuzzy(origin, dir r3.Vec, maxDist float64) (Target, bool) {
	best := Target{Distance: math.Inf(1), Fuzzy: true}
	found := false

	for _, a := range tg.candidates(origin, dir, maxDist, tg.terrain.Assets()) {
		if a.Category == components.CategoryMountain || tg.terrain.Removed(a.ID) {
			continue
		}
		toAsset := r3.Sub(a.Position, origin)
		if r3.Norm(toAsset) >= maxDist {
			continue
		}
		proj := r3.Dot(toAsset, dir)
		if proj <= 0 {
			continue
		}
		perp := r3.Norm(r3.Sub(toAsset, r3.Scale(proj, dir)))
		if perp < a.Radius+tg.tolerance && perp < best.Distance {
			best.Asset = a
			best.Distance = perp
			found = true
		}
	}
	return best, found
}

// Swing resolves what a melee swing connects with: the exact ray hit if it
// is a destructible asset, otherwise the fuzzy fallback.
func (tg *Targeter) Swing(origin, dir r3.Vec, maxDist float64) (Target, bool) {
	if hit, ok := tg.Cast(origin, dir, maxDist); ok && hit.Asset.Category.Destructible() {
		return hit, true
	}
	return tg.Fuzzy(origin, dir, maxDist)
}

// Harvestable returns the nearest plant on the ray within maxDist if it
// bears fruit. Plants are aimed at as bushes, taller than their walkable
// footprint. Other assets do not occlude plants for this check.
func (tg *Targeter) Harvestable(origin, dir r3.Vec, maxDist float64, hasFruit func(id int) bool) (int, bool) {
	bestDist := math.Inf(1)
	bestID := -1
	for _, a := range tg.candidates(origin, dir, maxDist, tg.terrain.Assets()) {
		if a.Category != components.CategoryPlant || tg.terrain.Removed(a.ID) {
			continue
		}
		a.Height = max(a.Height, tg.bushFactor*a.Scale)
		if d, ok := rayCylinder(origin, dir, a); ok && d <= maxDist && d < bestDist {
			bestDist = d
			bestID = a.ID
		}
	}
	if bestID < 0 || !hasFruit(bestID) {
		return -1, false
	}
	return bestID, true
}

// rayCylinder intersects a ray with the asset's upright cylinder
// (footprint radius, base at y=0, top at Height). Returns the entry distance.
func rayCylinder(origin, dir r3.Vec, a components.WorldAsset) (float64, bool) {
	ox := origin.X - a.Position.X
	oz := origin.Z - a.Position.Z
	r2 := a.Radius * a.Radius
	best := math.Inf(1)

	inside := func(t float64) bool {
		y := origin.Y + dir.Y*t
		return y >= a.Position.Y && y <= a.Position.Y+a.Height
	}

	// Side wall
	qa := dir.X*dir.X + dir.Z*dir.Z
	qb := 2 * (ox*dir.X + oz*dir.Z)
	qc := ox*ox + oz*oz - r2
	if qc <= 0 && inside(0) {
		return 0, true
	}
	if qa > 1e-12 {
		if disc := qb*qb - 4*qa*qc; disc >= 0 {
			t := (-qb - math.Sqrt(disc)) / (2 * qa)
			if t >= 0 && inside(t) {
				best = t
			}
		}
	}

	// Caps
	if math.Abs(dir.Y) > 1e-12 {
		for _, capY := range [2]float64{a.Position.Y + a.Height, a.Position.Y} {
			t := (capY - origin.Y) / dir.Y
			if t < 0 || t >= best {
				continue
			}
			x := ox + dir.X*t
			z := oz + dir.Z*t
			if x*x+z*z <= r2 {
				best = t
			}
		}
	}

	if math.IsInf(best, 1) {
		return 0, false
	}
	return best, true
}
