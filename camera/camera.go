// Package camera provides a top-down 2D camera for the map view.
package camera

// Camera maps the world's XZ plane onto a screen rectangle.
// World X grows right and world Z grows down the screen.
type Camera struct {
	// Center of the view in world coordinates
	X, Z float32

	// Zoom is screen pixels per world unit
	Zoom float32

	// Screen rectangle the view is drawn into
	OriginX, OriginY     float32
	ViewportW, ViewportH float32

	// Extent is the world half-size; the view never leaves [-Extent, Extent]
	Extent float32

	MinZoom, MaxZoom float32
}

// New creates a camera showing the whole world inside the given screen rectangle.
func New(originX, originY, viewportW, viewportH, extent float32) *Camera {
	c := &Camera{
		OriginX:   originX,
		OriginY:   originY,
		ViewportW: viewportW,
		ViewportH: viewportH,
		Extent:    extent,
		MaxZoom:   32,
	}
	c.MinZoom = c.fitZoom()
	c.Zoom = c.MinZoom
	return c
}

// fitZoom is the zoom at which the full world fits the viewport.
func (c *Camera) fitZoom() float32 {
	return min(c.ViewportW, c.ViewportH) / (2 * c.Extent)
}

// WorldToScreen converts world XZ to screen coordinates.
func (c *Camera) WorldToScreen(wx, wz float32) (sx, sy float32) {
	sx = c.OriginX + c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.OriginY + c.ViewportH/2 + (wz-c.Z)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world XZ.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wz float32) {
	wx = c.X + (sx-c.OriginX-c.ViewportW/2)/c.Zoom
	wz = c.Z + (sy-c.OriginY-c.ViewportH/2)/c.Zoom
	return wx, wz
}

// Scale converts a world length to pixels.
func (c *Camera) Scale(d float32) float32 { return d * c.Zoom }

// IsVisible returns true if a circle at (wx, wz) with the given radius
// could be visible in the viewport.
func (c *Camera) IsVisible(wx, wz, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wz-c.Z) <= halfH
}

// Follow centers the view on a world point, clamped so the view stays inside the world.
func (c *Camera) Follow(wx, wz float32) {
	c.X = wx
	c.Z = wz
	c.clampCenter()
}

func (c *Camera) clampCenter() {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	c.X = clampAxis(c.X, halfW, c.Extent)
	c.Z = clampAxis(c.Z, halfH, c.Extent)
}

// clampAxis keeps a view of half-size half inside [-extent, extent].
// A view wider than the world is centered.
func clampAxis(v, half, extent float32) float32 {
	if half >= extent {
		return 0
	}
	return clamp(v, -extent+half, extent-half)
}

// Resize moves the view to a new screen rectangle.
func (c *Camera) Resize(originX, originY, viewportW, viewportH float32) {
	c.OriginX, c.OriginY = originX, originY
	c.ViewportW, c.ViewportH = viewportW, viewportH
	c.MinZoom = c.fitZoom()
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset shows the whole world again.
func (c *Camera) Reset() {
	c.X, c.Z = 0, 0
	c.Zoom = c.MinZoom
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minZ, maxX, maxZ float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return c.X - halfW, c.Z - halfH, c.X + halfW, c.Z + halfH
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
