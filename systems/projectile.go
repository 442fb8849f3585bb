package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/KevinA2505/Emerald/components"
	"github.com/KevinA2505/Emerald/config"
)

// ProjectileView is a read-only snapshot of one projectile for rendering.
type ProjectileView struct {
	ID          string
	Position    r3.Vec
	Velocity    r3.Vec
	Stuck       bool
	Orientation mgl64.Quat
	HitAsset    int
}

// ProjectileHit reports a projectile that came to rest this step.
type ProjectileHit struct {
	ID       string
	Position r3.Vec
	Asset    int // -1 for ground or map edge
}

// ProjectileSystem integrates thrown tools until they stick into something.
// Each projectile is its own entity; stuck projectiles never move again.
type ProjectileSystem struct {
	mapper *ecs.Map3[components.Position, components.Velocity, components.Flight]
	filter *ecs.Filter3[components.Position, components.Velocity, components.Flight]

	terrain  *Terrain
	cfg      config.ProjectileConfig
	mapLimit float64
	scratch  []components.WorldAsset
}

// NewProjectileSystem creates a projectile system storing entities in world.
func NewProjectileSystem(world *ecs.World, t *Terrain) *ProjectileSystem {
	cfg := config.Cfg()
	return &ProjectileSystem{
		mapper:   ecs.NewMap3[components.Position, components.Velocity, components.Flight](world),
		filter:   ecs.NewFilter3[components.Position, components.Velocity, components.Flight](world),
		terrain:  t,
		cfg:      cfg.Projectile,
		mapLimit: cfg.World.MapLimit,
	}
}

// LaunchSpeed returns the initial speed for a charge power in [0, 1].
func (s *ProjectileSystem) LaunchSpeed(power float64) float64 {
	return lerp(s.cfg.MinSpeed, s.cfg.MaxSpeed, clamp01(power))
}

// Spawn creates a live projectile from its spawn record.
func (s *ProjectileSystem) Spawn(rec components.ThrownProjectile) ecs.Entity {
	dir := rec.Direction
	if r3.Norm(dir) == 0 {
		dir = r3.Vec{Z: -1}
	}
	dir = r3.Unit(dir)

	pos := components.Position{Vec: rec.Position}
	vel := components.Velocity{Vec: r3.Scale(s.LaunchSpeed(rec.Power), dir)}
	flight := components.Flight{ID: rec.ID, HitAsset: -1, Orientation: mgl64.QuatIdent()}
	return s.mapper.NewEntity(&pos, &vel, &flight)
}

// Update advances all flying projectiles by dt seconds and returns those
// that stuck during this step.
func (s *ProjectileSystem) Update(dt float64) []ProjectileHit {
	var hits []ProjectileHit

	query := s.filter.Query()
	for query.Next() {
		pos, vel, flight := query.Get()
		if flight.Stuck {
			continue
		}
		flight.Age += dt

		vel.Y -= s.cfg.Gravity * dt
		next := r3.Add(pos.Vec, r3.Scale(dt, vel.Vec))

		rest, asset, hit := s.collide(next)
		if !hit {
			pos.Vec = next
			continue
		}

		pos.Vec = rest
		flight.Stuck = true
		flight.HitAsset = asset
		flight.Orientation = stuckOrientation(vel.Vec)
		vel.Vec = r3.Vec{}
		hits = append(hits, ProjectileHit{ID: flight.ID, Position: rest, Asset: asset})
	}
	return hits
}

// collide checks the next position against the ground, live assets and the
// map edge, in that order of precedence for the resting position.
func (s *ProjectileSystem) collide(next r3.Vec) (r3.Vec, int, bool) {
	rest := next
	asset := -1
	hit := false

	if next.Y <= 0 {
		hit = true
		rest.Y = s.cfg.GroundRest
	}

	if !hit {
		if a, ok := s.assetAt(next); ok {
			hit = true
			asset = a.ID
			angle := math.Atan2(next.Z-a.Position.Z, next.X-a.Position.X)
			embed := a.Radius * s.cfg.EmbedFactor
			rest = r3.Vec{
				X: a.Position.X + math.Cos(angle)*embed,
				Y: next.Y,
				Z: a.Position.Z + math.Sin(angle)*embed,
			}
		}
	}

	if math.Abs(next.X) > s.mapLimit || math.Abs(next.Z) > s.mapLimit {
		hit = true
		asset = -1
		rest = next
	}
	return rest, asset, hit
}

func (s *ProjectileSystem) assetAt(p r3.Vec) (components.WorldAsset, bool) {
	for _, grid := range [2]*SpatialGrid[components.WorldAsset]{s.terrain.Assets(), s.terrain.Mountains()} {
		reach := grid.MaxItemRadius() * (s.cfg.HitFactor - 1)
		s.scratch = grid.QueryInto(s.scratch[:0], p.X, p.Z, reach)
		for _, a := range s.scratch {
			if a.Category != components.CategoryMountain && s.terrain.Removed(a.ID) {
				continue
			}
			hr := a.Radius * s.cfg.HitFactor
			if distanceSqXZ(p, a.Position) < hr*hr && p.Y < a.Height {
				return a, true
			}
		}
	}
	return components.WorldAsset{}, false
}

// stuckOrientation rotates the projectile's +Y axis onto its direction of travel.
func stuckOrientation(vel r3.Vec) mgl64.Quat {
	if r3.Norm(vel) == 0 {
		return mgl64.QuatIdent()
	}
	d := r3.Unit(vel)
	return mgl64.QuatBetweenVectors(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{d.X, d.Y, d.Z})
}

// Snapshot returns the state of every projectile in entity order.
func (s *ProjectileSystem) Snapshot() []ProjectileView {
	var out []ProjectileView
	query := s.filter.Query()
	for query.Next() {
		pos, vel, flight := query.Get()
		out = append(out, ProjectileView{
			ID:          flight.ID,
			Position:    pos.Vec,
			Velocity:    vel.Vec,
			Stuck:       flight.Stuck,
			Orientation: flight.Orientation,
			HitAsset:    flight.HitAsset,
		})
	}
	return out
}

// Flying returns the number of projectiles still in the air.
func (s *ProjectileSystem) Flying() int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		_, _, flight := query.Get()
		if !flight.Stuck {
			n++
		}
	}
	return n
}
