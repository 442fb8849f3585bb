// Package renderer draws the forest in first person and as a top-down map.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/KevinA2505/Emerald/components"
	"github.com/KevinA2505/Emerald/systems"
)

// Frame is everything the renderers read for one frame.
type Frame struct {
	Eye         r3.Vec
	Forward     r3.Vec
	Time        float64
	Assets      []components.WorldAsset
	Mountains   []components.WorldAsset
	Ponds       []components.Pond
	Trees       map[int]components.TreeState
	Rocks       map[int]components.RockState
	Plants      map[int]components.PlantState
	Projectiles []systems.ProjectileView
	MapLimit    float64
}

// Palette holds scene colors.
var (
	groundColor   = rl.Color{R: 74, G: 110, B: 52, A: 255}
	waterColor    = rl.Color{R: 60, G: 120, B: 170, A: 200}
	mountainColor = rl.Color{R: 105, G: 100, B: 95, A: 255}
	trunkColor    = rl.Color{R: 96, G: 64, B: 40, A: 255}
	birchColor    = rl.Color{R: 225, G: 220, B: 205, A: 255}
	rockColor     = rl.Color{R: 128, G: 128, B: 132, A: 255}
	crackColor    = rl.Color{R: 60, G: 60, B: 64, A: 255}
	plantColor    = rl.Color{R: 50, G: 130, B: 45, A: 255}
	toolColor     = rl.Color{R: 190, G: 190, B: 200, A: 255}
)

var foliageColors = map[components.Subtype]rl.Color{
	components.SubtypePine:  {R: 30, G: 90, B: 50, A: 255},
	components.SubtypeOak:   {R: 60, G: 120, B: 40, A: 255},
	components.SubtypeBirch: {R: 130, G: 170, B: 70, A: 255},
}

var fruitColors = map[components.FruitType]rl.Color{
	components.FruitRed:    rl.Red,
	components.FruitBlue:   rl.Blue,
	components.FruitYellow: rl.Yellow,
}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

// SceneRenderer draws the world from the player's eye.
type SceneRenderer struct {
	camera   rl.Camera3D
	drawDist float64
}

// NewSceneRenderer creates a perspective scene renderer.
func NewSceneRenderer() *SceneRenderer {
	return &SceneRenderer{
		camera: rl.Camera3D{
			Up:         rl.NewVector3(0, 1, 0),
			Fovy:       70,
			Projection: rl.CameraPerspective,
		},
		drawDist: 120,
	}
}

// Draw renders the 3D scene. Call between BeginDrawing and EndDrawing.
func (s *SceneRenderer) Draw(f Frame) {
	s.camera.Position = vec3(f.Eye)
	s.camera.Target = vec3(r3.Add(f.Eye, f.Forward))

	rl.BeginMode3D(s.camera)

	size := float32(2 * (f.MapLimit + 40))
	rl.DrawPlane(rl.NewVector3(0, 0, 0), rl.NewVector2(size, size), groundColor)
	for _, p := range f.Ponds {
		drawPond(p)
	}
	for _, m := range f.Mountains {
		rl.DrawCylinder(vec3(m.Position), 0, float32(m.Radius), float32(m.Height), 10, mountainColor)
	}

	drawDistSq := s.drawDist * s.drawDist
	for _, a := range f.Assets {
		dx, dz := a.Position.X-f.Eye.X, a.Position.Z-f.Eye.Z
		if dx*dx+dz*dz > drawDistSq {
			continue
		}
		switch a.Category {
		case components.CategoryTree:
			if st, ok := f.Trees[a.ID]; ok && !st.IsRemoved {
				drawTree(a, st)
			}
		case components.CategoryRock:
			if st, ok := f.Rocks[a.ID]; ok && !st.IsRemoved {
				drawRock(a, st, f.Time)
			}
		case components.CategoryPlant:
			if st, ok := f.Plants[a.ID]; ok && !st.IsRemoved {
				drawPlant(a, st)
			}
		}
	}

	for _, p := range f.Projectiles {
		tip := r3.Add(p.Position, r3.Scale(0.35, ProjectileAxis(p)))
		tail := r3.Sub(p.Position, r3.Scale(0.35, ProjectileAxis(p)))
		rl.DrawCylinderEx(vec3(tail), vec3(tip), 0.05, 0.02, 6, toolColor)
	}

	rl.EndMode3D()
}

func drawPond(p components.Pond) {
	outline := PondOutline(p)
	c := vec3(p.Position)
	for i := range outline {
		a := outline[i]
		b := outline[(i+1)%len(outline)]
		rl.DrawTriangle3D(
			c,
			rl.NewVector3(float32(b[0]), c.Y, float32(b[1])),
			rl.NewVector3(float32(a[0]), c.Y, float32(a[1])),
			waterColor,
		)
	}
}

func drawTree(a components.WorldAsset, st components.TreeState) {
	alpha := float32(TreeOpacity(st))
	axis := TreeAxis(st)
	base := a.Position
	top := r3.Add(base, r3.Scale(a.Height, axis))
	crownBase := r3.Add(base, r3.Scale(a.Height*0.35, axis))

	trunk := trunkColor
	if a.Subtype == components.SubtypeBirch {
		trunk = birchColor
	}
	rl.DrawCylinderEx(vec3(base), vec3(top), float32(a.Radius), float32(a.Radius*0.6), 8, rl.Fade(trunk, alpha))

	foliage := rl.Fade(foliageColors[a.Subtype], alpha)
	if a.Subtype == components.SubtypePine {
		rl.DrawCylinderEx(vec3(crownBase), vec3(top), float32(a.Radius*4), 0, 8, foliage)
		return
	}
	rl.DrawSphere(vec3(r3.Add(base, r3.Scale(a.Height*0.85, axis))), float32(a.Radius*4), foliage)
}

func drawRock(a components.WorldAsset, st components.RockState, t float64) {
	dx, dz := RockShake(st, t)
	center := r3.Vec{X: a.Position.X + dx, Y: a.Position.Y + a.Height*0.4, Z: a.Position.Z + dz}
	rl.DrawSphere(vec3(center), float32(a.Radius), rockColor)
	if st.Cracks > 0 {
		rl.DrawSphereWires(vec3(center), float32(a.Radius)*1.01, 4, 6, rl.Fade(crackColor, float32(st.Cracks)))
	}
}

func drawPlant(a components.WorldAsset, st components.PlantState) {
	center := r3.Vec{X: a.Position.X, Y: a.Position.Y + a.Height*0.5, Z: a.Position.Z}
	rl.DrawSphere(vec3(center), float32(a.Radius), plantColor)
	if !st.HasFruit || st.FruitCount <= 0 {
		return
	}
	color := fruitColors[st.FruitType]
	for i := 0; i < st.FruitCount; i++ {
		angle := a.Rotation + float64(i)*2*math.Pi/float64(st.FruitCount)
		p := r3.Add(center, r3.Vec{X: math.Cos(angle) * a.Radius, Y: a.Radius * 0.3, Z: math.Sin(angle) * a.Radius})
		rl.DrawSphere(vec3(p), 0.08, color)
	}
}
