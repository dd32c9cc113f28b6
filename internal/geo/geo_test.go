package geo

import (
	"math"
	"testing"
)

func testViewport() Viewport {
	return Viewport{CenterLat: 44.5, CenterLng: -110.0, Zoom: 6, Width: 80, Height: 24}
}

func TestProjectCenter(t *testing.T) {
	v := testViewport()
	p := v.Project(v.CenterLat, v.CenterLng)

	if math.Abs(p.X-40) > 0.01 || math.Abs(p.Y-12) > 0.01 {
		t.Errorf("center projects to (%.2f, %.2f), want (40, 12)", p.X, p.Y)
	}
}

func TestProjectDirections(t *testing.T) {
	v := testViewport()

	north := v.Project(v.CenterLat+1, v.CenterLng)
	if north.Y >= 12 {
		t.Errorf("a point north of center should project above it, got Y=%.2f", north.Y)
	}

	east := v.Project(v.CenterLat, v.CenterLng+1)
	if east.X <= 40 {
		t.Errorf("a point east of center should project right of it, got X=%.2f", east.X)
	}
}

func TestContainsWithPadding(t *testing.T) {
	v := testViewport()

	if !v.Contains(v.CenterLat, v.CenterLng, 0) {
		t.Error("center must be contained")
	}

	// Walk east until the point falls off screen, then confirm padding
	// keeps it for a while longer
	lng := v.CenterLng
	for v.Contains(v.CenterLat, lng, 0) {
		lng += 0.05
	}
	if !v.Contains(v.CenterLat, lng, 10) {
		t.Error("a point just off the right edge should be inside the padded bounds")
	}
	if v.Contains(v.CenterLat, lng+50, 10) {
		t.Error("a point far off screen should stay outside even with padding")
	}
}

func TestBoundsRoundTrip(t *testing.T) {
	v := testViewport()
	b := v.Bounds()

	if b.MinLat >= b.MaxLat || b.MinLng >= b.MaxLng {
		t.Fatalf("degenerate bounds: %+v", b)
	}
	if v.CenterLat < b.MinLat || v.CenterLat > b.MaxLat {
		t.Error("center latitude outside bounds")
	}
	if v.CenterLng < b.MinLng || v.CenterLng > b.MaxLng {
		t.Error("center longitude outside bounds")
	}

	// Corners of the bounds should project near the screen corners
	tl := v.Project(b.MaxLat, b.MinLng)
	if math.Abs(tl.X) > 1 || math.Abs(tl.Y) > 1 {
		t.Errorf("top-left bound projects to (%.2f, %.2f), want near (0, 0)", tl.X, tl.Y)
	}
}

func TestFlyTo(t *testing.T) {
	v := testViewport().FlyTo(51.5, -0.12)
	if v.CenterLat != 51.5 || v.CenterLng != -0.12 {
		t.Errorf("FlyTo landed at (%.2f, %.2f)", v.CenterLat, v.CenterLng)
	}

	p := v.Project(51.5, -0.12)
	if math.Abs(p.X-40) > 0.01 || math.Abs(p.Y-12) > 0.01 {
		t.Error("flown-to point should sit at screen center")
	}

	v = v.FlyTo(89.9, 540.0)
	if v.CenterLat > maxLat {
		t.Error("latitude should clamp to the Mercator limit")
	}
	if v.CenterLng < -180 || v.CenterLng > 180 {
		t.Errorf("longitude should normalize, got %.2f", v.CenterLng)
	}
}

func TestPanMovesCenter(t *testing.T) {
	v := testViewport()
	panned := v.Pan(10, 0)
	if panned.CenterLng <= v.CenterLng {
		t.Error("panning right should increase center longitude")
	}
	if math.Abs(panned.CenterLat-v.CenterLat) > 1e-9 {
		t.Error("horizontal pan should not change latitude")
	}

	panned = v.Pan(0, -5)
	if panned.CenterLat <= v.CenterLat {
		t.Error("panning up should increase center latitude")
	}
}

func TestZoomLimits(t *testing.T) {
	v := testViewport()
	v.Zoom = 0
	if v.ZoomOut().Zoom != 0 {
		t.Error("zoom should not go below 0")
	}
	v.Zoom = 14
	if v.ZoomIn().Zoom != 14 {
		t.Error("zoom should cap at 14")
	}
	v.Zoom = 6
	if v.ZoomIn().Zoom != 7 || v.ZoomOut().Zoom != 5 {
		t.Error("zoom steps should be 1")
	}
}

func TestHaversineDistance(t *testing.T) {
	// Denver to Boulder is roughly 39 km
	d := HaversineDistance(39.7392, -104.9903, 40.0150, -105.2705)
	if d < 35 || d > 45 {
		t.Errorf("Denver-Boulder distance = %.1f km, want ~39", d)
	}

	if HaversineDistance(10, 20, 10, 20) != 0 {
		t.Error("distance from a point to itself should be 0")
	}
}
