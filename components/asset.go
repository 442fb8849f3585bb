// Package components defines the world data model and ECS components for the simulation.
package components

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Category identifies what kind of world asset an entity is.
type Category uint8

const (
	CategoryTree Category = iota
	CategoryRock
	CategoryPlant
	CategoryMountain
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryTree:
		return "tree"
	case CategoryRock:
		return "rock"
	case CategoryPlant:
		return "plant"
	case CategoryMountain:
		return "mountain"
	default:
		return "unknown"
	}
}

// Destructible reports whether the category carries mutable state.
func (c Category) Destructible() bool {
	return c == CategoryTree || c == CategoryRock || c == CategoryPlant
}

// Subtype refines a tree category. Other categories use SubtypeNone.
type Subtype uint8

const (
	SubtypeNone Subtype = iota
	SubtypePine
	SubtypeOak
	SubtypeBirch
)

// String returns the subtype name.
func (s Subtype) String() string {
	switch s {
	case SubtypePine:
		return "pine"
	case SubtypeOak:
		return "oak"
	case SubtypeBirch:
		return "birch"
	default:
		return ""
	}
}

// WorldAsset is a static placed entity. It never changes after generation;
// mutable gameplay state lives in the per-category state maps keyed by ID.
type WorldAsset struct {
	ID       int
	Category Category
	Subtype  Subtype
	Position r3.Vec
	Scale    float64
	Rotation float64 // radians about Y
	Radius   float64 // collision footprint
	Height   float64
}

// Pos returns the asset position.
func (a WorldAsset) Pos() r3.Vec { return a.Position }

// BoundingRadius returns the collision footprint radius.
func (a WorldAsset) BoundingRadius() float64 { return a.Radius }

// Pond is a static water body. Vertices are in local XZ space relative to Position.
type Pond struct {
	ID       int
	Position r3.Vec
	Vertices [][2]float64
}

// Pos returns the pond center.
func (p Pond) Pos() r3.Vec { return p.Position }

// BoundingRadius returns the farthest vertex distance from the center.
func (p Pond) BoundingRadius() float64 {
	var r2 float64
	for _, v := range p.Vertices {
		if d := v[0]*v[0] + v[1]*v[1]; d > r2 {
			r2 = d
		}
	}
	return math.Sqrt(r2)
}
