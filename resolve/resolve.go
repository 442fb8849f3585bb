// Package resolve decides the outcome of hitting or harvesting a world entity.
//
// Every function is pure: it reads the current state, the equipped tool and
// a random source, and returns the next state plus the resources gained.
// A nil result means the action had no effect. Callers apply results.
package resolve

import (
	"math"

	"github.com/KevinA2505/Emerald/components"
	"github.com/KevinA2505/Emerald/config"
)

// RNG is a source of uniform values in [0, 1). *rand.Rand satisfies it.
type RNG interface {
	Float64() float64
}

// Rules holds the tunable numbers used by the resolvers.
type Rules struct {
	DefaultDamage  float64 // Used when the weapon has no damage value
	SlashTreeScale float64 // Knife damage multiplier against trees
	HitShake       float64
	BreakShake     float64
	MaxSeeds       int // Upper bound of seeds from clearing a plant
}

// DefaultRules returns the stock rule set.
func DefaultRules() Rules {
	return Rules{
		DefaultDamage:  20,
		SlashTreeScale: 0.2,
		HitShake:       0.3,
		BreakShake:     0.8,
		MaxSeeds:       3,
	}
}

// RulesFromConfig builds rules from the loaded configuration.
func RulesFromConfig(cfg *config.Config) Rules {
	return Rules{
		DefaultDamage:  cfg.Combat.DefaultDamage,
		SlashTreeScale: cfg.Combat.SlashTreeScale,
		HitShake:       cfg.Animation.HitShake,
		BreakShake:     cfg.Animation.BreakShake,
		MaxSeeds:       cfg.Combat.PlantMaxSeeds,
	}
}

// Yield constants.
const (
	woodChance  = 0.4 // Axe hit yields wood when roll exceeds this
	stickChance = 0.7 // Axe hit yields a stick when roll exceeds this
	fellWood    = 5
	fellSticks  = 3
	stoneBase   = 2
	stoneSpread = 3
	breakStones = 10
	plantFiber  = 5
	fiberSpread = 3
)

// TreeOutcome is the result of a tree hit.
type TreeOutcome struct {
	Next      components.TreeState
	Resources components.ResourceDelta
	Activate  bool // tree started falling and needs animating
}

// RockOutcome is the result of a rock hit.
type RockOutcome struct {
	Next      components.RockState
	Resources components.ResourceDelta
	Activate  bool
}

// PlantOutcome is the result of a plant hit.
type PlantOutcome struct {
	Next      components.PlantState
	Resources components.ResourceDelta
}

// HarvestOutcome is the result of picking fruit from a plant.
type HarvestOutcome struct {
	Next components.PlantState
	Item components.Item
}

func (r Rules) damage(w components.Equipped) float64 {
	if w.Damage == 0 {
		return r.DefaultDamage
	}
	return w.Damage
}

func roll(rng RNG, spread int) int {
	return int(math.Floor(rng.Float64() * float64(spread)))
}

// TreeHit resolves a chopping or slashing hit on a tree.
func (r Rules) TreeHit(state *components.TreeState, weapon components.Equipped, rng RNG) *TreeOutcome {
	if state == nil || state.Health <= 0 || state.IsFalling {
		return nil
	}
	if weapon.Tool != components.ToolChopping && weapon.Tool != components.ToolSlashing {
		return nil
	}

	delta := components.ResourceDelta{}
	dmg := r.damage(weapon)
	if weapon.Tool == components.ToolSlashing {
		dmg *= r.SlashTreeScale
	}
	health := state.Health - dmg

	if weapon.Tool == components.ToolChopping {
		if rng.Float64() > woodChance {
			delta.Add(components.Wood, 1)
		}
		if rng.Float64() > stickChance {
			delta.Add(components.Sticks, 1)
		}
	} else {
		delta.Add(components.Fiber, roll(rng, fiberSpread)+1)
	}

	next := *state
	if health <= 0 {
		delta.Add(components.Wood, fellWood)
		delta.Add(components.Sticks, fellSticks)
		next.Health = 0
		next.IsFalling = true
		return &TreeOutcome{Next: next, Resources: delta, Activate: true}
	}
	next.Health = health
	return &TreeOutcome{Next: next, Resources: delta}
}

// RockHit resolves a mining hit on a rock. Every accepted hit arms the shake.
func (r Rules) RockHit(state *components.RockState, weapon components.Equipped, rng RNG) *RockOutcome {
	if state == nil || state.IsRemoved || weapon.Tool != components.ToolMining {
		return nil
	}

	delta := components.ResourceDelta{}
	health := state.Health - r.damage(weapon)
	delta.Add(components.Stones, roll(rng, stoneSpread)+stoneBase)

	next := *state
	if health <= 0 {
		delta.Add(components.Stones, breakStones)
		next.Health = 0
		next.IsRemoved = true
		next.ShakeTime = r.BreakShake
		next.Cracks = 1
		return &RockOutcome{Next: next, Resources: delta, Activate: true}
	}

	next.Health = health
	next.ShakeTime = r.HitShake
	next.Cracks = 0
	if state.MaxHealth > 0 {
		next.Cracks = math.Max(0, 1-health/state.MaxHealth)
	}
	return &RockOutcome{Next: next, Resources: delta, Activate: true}
}

// PlantHit resolves a slashing hit on a plant.
func (r Rules) PlantHit(state *components.PlantState, weapon components.Equipped, rng RNG) *PlantOutcome {
	if state == nil || state.IsRemoved || weapon.Tool != components.ToolSlashing {
		return nil
	}

	delta := components.ResourceDelta{}
	delta.Add(components.Fiber, plantFiber)

	next := *state
	next.Health = state.Health - 1
	if next.Health <= 0 {
		delta.Add(components.Seeds, roll(rng, r.MaxSeeds))
		next.Health = 0
		next.IsRemoved = true
	}
	return &PlantOutcome{Next: next, Resources: delta}
}

// Harvest picks all fruit from a plant. The plant itself is left standing.
func Harvest(state *components.PlantState) *HarvestOutcome {
	if state == nil || !state.HasFruit || state.IsRemoved {
		return nil
	}
	next := *state
	next.HasFruit = false
	next.FruitCount = 0
	return &HarvestOutcome{
		Next: next,
		Item: components.FruitItem(state.FruitType, state.FruitCount),
	}
}
