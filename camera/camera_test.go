package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNewFitsWorld(t *testing.T) {
	cam := New(0, 0, 400, 300, 150)

	// min(400, 300) / 300
	if !near(cam.Zoom, 1) || !near(cam.MinZoom, 1) {
		t.Errorf("zoom = %f min = %f, want 1", cam.Zoom, cam.MinZoom)
	}
	if cam.X != 0 || cam.Z != 0 {
		t.Errorf("expected centered camera, got (%f, %f)", cam.X, cam.Z)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(10, 20, 400, 300, 150)

	sx, sy := cam.WorldToScreen(0, 0)
	if !near(sx, 210) || !near(sy, 170) {
		t.Errorf("expected viewport center (210, 170), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(10, 20, 400, 300, 150)
	cam.SetZoom(3)
	cam.Follow(40, -25)

	testCases := []struct{ sx, sy float32 }{
		{210, 170},
		{15, 25},
		{400, 300},
	}
	for _, tc := range testCases {
		wx, wz := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wz)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)", tc.sx, tc.sy, wx, wz, sx, sy)
		}
	}
}

func TestFollowClampsToWorld(t *testing.T) {
	cam := New(0, 0, 200, 200, 100)
	cam.SetZoom(4) // view is 50 units wide

	cam.Follow(95, -99)
	if !near(cam.X, 75) || !near(cam.Z, -75) {
		t.Errorf("expected clamp to (75, -75), got (%f, %f)", cam.X, cam.Z)
	}

	cam.Follow(10, 20)
	if !near(cam.X, 10) || !near(cam.Z, 20) {
		t.Errorf("interior follow moved camera to (%f, %f)", cam.X, cam.Z)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(0, 0, 200, 200, 100)

	cam.SetZoom(0.1)
	if !near(cam.Zoom, 1) {
		t.Errorf("expected zoom clamped to 1, got %f", cam.Zoom)
	}
	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}

	// zooming out recenters a view that no longer fits off-center
	cam.SetZoom(4)
	cam.Follow(70, 70)
	cam.SetZoom(1)
	if cam.X != 0 || cam.Z != 0 {
		t.Errorf("full view should be centered, got (%f, %f)", cam.X, cam.Z)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(0, 0, 200, 200, 100)
	cam.SetZoom(4)
	cam.Follow(0, 0)

	if !cam.IsVisible(0, 0, 1) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(60, 0, 1) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(30, 0, 10) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestReset(t *testing.T) {
	cam := New(0, 0, 200, 200, 100)
	cam.SetZoom(2.5)
	cam.Follow(30, 30)

	cam.Reset()

	if cam.X != 0 || cam.Z != 0 {
		t.Errorf("expected position (0, 0), got (%f, %f)", cam.X, cam.Z)
	}
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom %f, got %f", cam.MinZoom, cam.Zoom)
	}
}
