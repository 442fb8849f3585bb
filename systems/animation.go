package systems

import (
	"math"
	"slices"

	"github.com/KevinA2505/Emerald/components"
	"github.com/KevinA2505/Emerald/config"
	"github.com/KevinA2505/Emerald/resolve"
)

// ActiveSet tracks entity IDs that currently need per-frame updates.
type ActiveSet struct {
	ids map[int]struct{}
}

// NewActiveSet creates an empty set.
func NewActiveSet() *ActiveSet {
	return &ActiveSet{ids: make(map[int]struct{})}
}

// Add marks id as active.
func (s *ActiveSet) Add(id int) { s.ids[id] = struct{}{} }

// Remove drops id.
func (s *ActiveSet) Remove(id int) { delete(s.ids, id) }

// Has reports whether id is active.
func (s *ActiveSet) Has(id int) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of active IDs.
func (s *ActiveSet) Len() int { return len(s.ids) }

// Sorted returns the active IDs in ascending order.
func (s *ActiveSet) Sorted() []int {
	out := make([]int, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Animator advances falling trees and shaking rocks.
// Rates are per reference frame; Step callers pass elapsed frames.
type Animator struct {
	FallRate   float64
	FadeRate   float64
	ShakeDecay float64
	MaxSeeds   int
}

// NewAnimator creates an animator from config.
func NewAnimator() *Animator {
	ac := config.Cfg().Animation
	return &Animator{
		FallRate:   ac.FallRate,
		FadeRate:   ac.FadeRate,
		ShakeDecay: ac.ShakeDecay,
		MaxSeeds:   ac.MaxSeeds,
	}
}

// AnimateTrees advances every active tree by frames reference frames.
// A tree falls, then fades, then is removed and may drop seeds.
// Returns the seeds granted this step and the IDs removed.
func (a *Animator) AnimateTrees(trees map[int]components.TreeState, active *ActiveSet, frames float64, rng resolve.RNG) (components.ResourceDelta, []int) {
	delta := components.ResourceDelta{}
	var removed []int

	for _, id := range active.Sorted() {
		st, ok := trees[id]
		if !ok || st.IsRemoved || !st.IsFalling {
			active.Remove(id)
			continue
		}

		switch {
		case st.FallProgress < 1:
			st.FallProgress = math.Min(1, st.FallProgress+a.FallRate*frames)
		case st.Opacity > 0:
			st.Opacity = math.Max(0, st.Opacity-a.FadeRate*frames)
		default:
			delta.Add(components.Seeds, int(math.Floor(rng.Float64()*float64(a.MaxSeeds))))
			st.IsRemoved = true
			active.Remove(id)
			removed = append(removed, id)
		}
		trees[id] = st
	}
	return delta, removed
}

// AnimateRocks decays the shake timer of every active rock.
func (a *Animator) AnimateRocks(rocks map[int]components.RockState, active *ActiveSet, frames float64) {
	for _, id := range active.Sorted() {
		st, ok := rocks[id]
		if !ok || st.ShakeTime <= 0 {
			active.Remove(id)
			continue
		}
		st.ShakeTime = math.Max(0, st.ShakeTime-a.ShakeDecay*frames)
		if st.ShakeTime <= 0 {
			active.Remove(id)
		}
		rocks[id] = st
	}
}
