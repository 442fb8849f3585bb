package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/KevinA2505/Emerald/components"
	"github.com/KevinA2505/Emerald/systems"
)

// TreeAxis returns the unit trunk direction of a tree. A falling tree
// leans along its fall direction until it lies flat.
func TreeAxis(st components.TreeState) r3.Vec {
	if !st.IsFalling {
		return r3.Vec{Y: 1}
	}
	angle := clamp01(st.FallProgress) * math.Pi / 2
	dir := r3.Vec{X: st.FallDirection[0], Z: st.FallDirection[1]}
	if n := r3.Norm(dir); n > 0 {
		dir = r3.Scale(1/n, dir)
	} else {
		dir = r3.Vec{X: 1}
	}
	return r3.Add(r3.Scale(math.Sin(angle), dir), r3.Vec{Y: math.Cos(angle)})
}

// TreeOpacity returns the draw alpha of a tree.
func TreeOpacity(st components.TreeState) float64 {
	if !st.IsFalling {
		return 1
	}
	return clamp01(st.Opacity)
}

// RockShake returns the XZ jitter of a shaking rock at time t seconds.
func RockShake(st components.RockState, t float64) (dx, dz float64) {
	if st.ShakeTime <= 0 {
		return 0, 0
	}
	amp := 0.15 * st.ShakeTime
	return amp * math.Sin(t*47), amp * math.Cos(t*53)
}

// ProjectileAxis returns the direction a projectile's blade points.
// Flying projectiles follow their velocity; stuck ones keep their orientation.
func ProjectileAxis(p systems.ProjectileView) r3.Vec {
	if !p.Stuck {
		if n := r3.Norm(p.Velocity); n > 0 {
			return r3.Scale(1/n, p.Velocity)
		}
		return r3.Vec{Y: 1}
	}
	v := p.Orientation.Rotate(mgl64.Vec3{0, 1, 0})
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

// PondOutline returns a pond's vertices in world XZ.
func PondOutline(p components.Pond) [][2]float64 {
	out := make([][2]float64, len(p.Vertices))
	for i, v := range p.Vertices {
		out[i] = [2]float64{p.Position.X + v[0], p.Position.Z + v[1]}
	}
	return out
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
