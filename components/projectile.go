package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

// ThrownProjectile is the immutable spawn record of a thrown tool.
type ThrownProjectile struct {
	ID        string
	Position  r3.Vec
	Direction r3.Vec // unit vector
	Rotation  [3]float64
	Power     float64 // 0..1
}

// Position is the world position of a live projectile.
type Position struct {
	r3.Vec
}

// Velocity is the velocity of a live projectile in units per second.
type Velocity struct {
	r3.Vec
}

// Flight holds per-projectile flight bookkeeping.
type Flight struct {
	ID          string
	Stuck       bool
	Orientation mgl64.Quat // valid once stuck
	Age         float64    // seconds since spawn
	HitAsset    int        // asset the projectile embedded in, -1 otherwise
}
