package components

import "log/slog"

// ResourceKind names a gatherable resource.
type ResourceKind string

const (
	Wood   ResourceKind = "wood"
	Fiber  ResourceKind = "fiber"
	Sticks ResourceKind = "sticks"
	Stones ResourceKind = "stones"
	Seeds  ResourceKind = "seeds"
)

// ResourceKinds lists every kind in display order.
var ResourceKinds = [...]ResourceKind{Wood, Fiber, Sticks, Stones, Seeds}

// ResourceDelta is a sparse set of resource gains.
// A kind that received nothing is absent rather than zero.
type ResourceDelta map[ResourceKind]int

// Add accumulates n units of kind. Non-positive amounts are ignored.
func (d ResourceDelta) Add(kind ResourceKind, n int) {
	if n <= 0 {
		return
	}
	d[kind] += n
}

// Merge accumulates every entry of other into d.
func (d ResourceDelta) Merge(other ResourceDelta) {
	for k, n := range other {
		d.Add(k, n)
	}
}

// Total returns the sum over all kinds.
func (d ResourceDelta) Total() int {
	t := 0
	for _, n := range d {
		t += n
	}
	return t
}

// Resources holds the player's gathered totals. Counts only grow.
type Resources struct {
	Wood   int
	Fiber  int
	Sticks int
	Stones int
	Seeds  int
}

// Apply adds a delta to the totals.
func (r *Resources) Apply(d ResourceDelta) {
	for k, n := range d {
		if n <= 0 {
			continue
		}
		if p := r.field(k); p != nil {
			*p += n
		}
	}
}

// Get returns the total for a kind.
func (r Resources) Get(kind ResourceKind) int {
	if p := r.field(kind); p != nil {
		return *p
	}
	return 0
}

func (r *Resources) field(kind ResourceKind) *int {
	switch kind {
	case Wood:
		return &r.Wood
	case Fiber:
		return &r.Fiber
	case Sticks:
		return &r.Sticks
	case Stones:
		return &r.Stones
	case Seeds:
		return &r.Seeds
	}
	return nil
}

// LogValue implements slog.LogValuer.
func (r Resources) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("wood", r.Wood),
		slog.Int("fiber", r.Fiber),
		slog.Int("sticks", r.Sticks),
		slog.Int("stones", r.Stones),
		slog.Int("seeds", r.Seeds),
	)
}
