package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/KevinA2505/Emerald/camera"
	"github.com/KevinA2505/Emerald/components"
)

// MapRenderer draws a top-down map of the world in a screen corner.
type MapRenderer struct {
	cam  *camera.Camera
	size float32
}

// NewMapRenderer creates a square map of the given pixel size anchored to
// the top-right corner of the screen.
func NewMapRenderer(screenW int32, size float32, extent float64) *MapRenderer {
	m := NewMapRendererAt(float32(screenW)-size-10, 10, size, extent)
	m.cam.SetZoom(m.cam.MinZoom * 3)
	return m
}

// NewMapRendererAt creates a square map at a fixed screen position showing
// the whole world.
func NewMapRendererAt(x, y, size float32, extent float64) *MapRenderer {
	return &MapRenderer{cam: camera.New(x, y, size, size, float32(extent)), size: size}
}

// Resize re-anchors the map after a window resize.
func (m *MapRenderer) Resize(screenW int32) {
	m.cam.Resize(float32(screenW)-m.size-10, 10, m.size, m.size)
}

// Zoom scales the map view.
func (m *MapRenderer) Zoom(factor float32) { m.cam.ZoomBy(factor) }

// Draw renders the map centered on the player.
func (m *MapRenderer) Draw(f Frame, yaw float64) {
	c := m.cam
	c.Follow(float32(f.Eye.X), float32(f.Eye.Z))

	x, y := int32(c.OriginX), int32(c.OriginY)
	w, h := int32(c.ViewportW), int32(c.ViewportH)
	rl.BeginScissorMode(x, y, w, h)
	rl.DrawRectangle(x, y, w, h, groundColor)

	for _, p := range f.Ponds {
		outline := PondOutline(p)
		pts := make([]rl.Vector2, 0, len(outline)+2)
		cx, cy := c.WorldToScreen(float32(p.Position.X), float32(p.Position.Z))
		pts = append(pts, rl.NewVector2(cx, cy))
		// fan winds counter-clockwise on screen
		for i := len(outline) - 1; i >= 0; i-- {
			sx, sy := c.WorldToScreen(float32(outline[i][0]), float32(outline[i][1]))
			pts = append(pts, rl.NewVector2(sx, sy))
		}
		pts = append(pts, pts[1])
		rl.DrawTriangleFan(pts, waterColor)
	}

	for _, a := range f.Mountains {
		m.drawAsset(a, mountainColor)
	}
	for _, a := range f.Assets {
		switch a.Category {
		case components.CategoryTree:
			if st, ok := f.Trees[a.ID]; ok && !st.IsRemoved {
				m.drawAsset(a, rl.Fade(foliageColors[a.Subtype], float32(TreeOpacity(st))))
			}
		case components.CategoryRock:
			if st, ok := f.Rocks[a.ID]; ok && !st.IsRemoved {
				m.drawAsset(a, rockColor)
			}
		case components.CategoryPlant:
			if st, ok := f.Plants[a.ID]; ok && !st.IsRemoved {
				color := plantColor
				if st.HasFruit {
					color = fruitColors[st.FruitType]
				}
				m.drawAsset(a, color)
			}
		}
	}

	for _, p := range f.Projectiles {
		sx, sy := c.WorldToScreen(float32(p.Position.X), float32(p.Position.Z))
		rl.DrawCircleV(rl.NewVector2(sx, sy), 2, toolColor)
	}

	px, py := c.WorldToScreen(float32(f.Eye.X), float32(f.Eye.Z))
	tip := rl.NewVector2(px-float32(math.Sin(yaw))*8, py-float32(math.Cos(yaw))*8)
	rl.DrawLineEx(rl.NewVector2(px, py), tip, 2, rl.RayWhite)
	rl.DrawCircleV(rl.NewVector2(px, py), 3, rl.RayWhite)

	rl.EndScissorMode()
	rl.DrawRectangleLines(x, y, w, h, rl.DarkGray)
}

func (m *MapRenderer) drawAsset(a components.WorldAsset, color rl.Color) {
	x, z := float32(a.Position.X), float32(a.Position.Z)
	r := float32(a.Radius)
	if !m.cam.IsVisible(x, z, r) {
		return
	}
	sx, sy := m.cam.WorldToScreen(x, z)
	rl.DrawCircleV(rl.NewVector2(sx, sy), max(1, m.cam.Scale(r)), color)
}
