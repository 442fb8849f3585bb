// Package systems provides the world simulation systems.
package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Spatial is anything with an XZ footprint that can live in a SpatialGrid.
type Spatial interface {
	Pos() r3.Vec
	BoundingRadius() float64
}

type cellKey struct {
	col, row int
}

// SpatialGrid buckets static items by XZ cell for broad-phase lookups.
// The grid is built once and never modified. Y is ignored.
type SpatialGrid[T Spatial] struct {
	cellSize      float64
	maxItemRadius float64
	cells         map[cellKey][]T
	count         int
}

// NewSpatialGrid builds a grid over items. cellSize must be positive.
func NewSpatialGrid[T Spatial](items []T, cellSize float64) *SpatialGrid[T] {
	g := &SpatialGrid[T]{
		cellSize: cellSize,
		cells:    make(map[cellKey][]T),
		count:    len(items),
	}
	for _, it := range items {
		if r := it.BoundingRadius(); r > g.maxItemRadius {
			g.maxItemRadius = r
		}
		p := it.Pos()
		k := g.key(p.X, p.Z)
		g.cells[k] = append(g.cells[k], it)
	}
	return g
}

// MaxItemRadius returns the largest footprint among the indexed items.
func (g *SpatialGrid[T]) MaxItemRadius() float64 { return g.maxItemRadius }

// Len returns the number of indexed items.
func (g *SpatialGrid[T]) Len() int { return g.count }

// QueryInto appends every item whose cell overlaps the square of half-extent
// radius+MaxItemRadius around (x, z). The result is a superset of the items
// whose footprint intersects the query circle; callers apply exact tests.
func (g *SpatialGrid[T]) QueryInto(dst []T, x, z, radius float64) []T {
	search := radius + g.maxItemRadius
	minCol := int(math.Floor((x - search) / g.cellSize))
	maxCol := int(math.Floor((x + search) / g.cellSize))
	minRow := int(math.Floor((z - search) / g.cellSize))
	maxRow := int(math.Floor((z + search) / g.cellSize))

	for col := minCol; col <= maxCol; col++ {
		for row := minRow; row <= maxRow; row++ {
			dst = append(dst, g.cells[cellKey{col, row}]...)
		}
	}
	return dst
}

// Query returns candidates near (x, z). See QueryInto.
func (g *SpatialGrid[T]) Query(x, z, radius float64) []T {
	return g.QueryInto(nil, x, z, radius)
}

func (g *SpatialGrid[T]) key(x, z float64) cellKey {
	return cellKey{
		col: int(math.Floor(x / g.cellSize)),
		row: int(math.Floor(z / g.cellSize)),
	}
}
