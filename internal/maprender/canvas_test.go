package maprender

import (
	"strings"
	"testing"

	zone "github.com/lrstanley/bubblezone"

	"github.com/stargazerhq/stargazer-terminal/internal/basemap"
	"github.com/stargazerhq/stargazer-terminal/internal/geo"
	"github.com/stargazerhq/stargazer-terminal/internal/markers"
	"github.com/stargazerhq/stargazer-terminal/internal/models"
)

func testViewport(w, h int) geo.Viewport {
	return geo.Viewport{CenterLat: 0, CenterLng: 0, Zoom: 2, Width: w, Height: h}
}

func TestRenderGridShape(t *testing.T) {
	c := New(zone.New())
	out := c.Render(testViewport(40, 12), nil, false)

	lines := strings.Split(out, "\n")
	if len(lines) != 12 {
		t.Fatalf("rendered %d rows, want 12", len(lines))
	}
}

func TestMarkerLifecycle(t *testing.T) {
	c := New(zone.New())

	ref := c.AddMarker(models.Key{Kind: models.KindLocation, ID: 1}, 0, 0, markers.Style{})
	if c.MarkerCount() != 1 {
		t.Fatalf("count = %d after add", c.MarkerCount())
	}

	c.SetOpacity(ref, 0.5)
	c.SetDisplayed(ref, false)
	c.SetStyle(ref, markers.Style{Favorited: true})

	c.RemoveMarker(ref)
	if c.MarkerCount() != 0 {
		t.Fatalf("count = %d after remove", c.MarkerCount())
	}
}

func TestRenderDrawsOnScreenMarker(t *testing.T) {
	c := New(zone.New())
	// Viewport center projects to the middle cell
	c.AddMarker(models.Key{Kind: models.KindLocation, ID: 1}, 0, 0, markers.Style{})

	out := c.Render(testViewport(40, 12), nil, false)
	if !strings.Contains(out, "●") {
		t.Error("on-screen location marker not drawn")
	}
}

func TestRenderSkipsHiddenMarker(t *testing.T) {
	c := New(zone.New())
	ref := c.AddMarker(models.Key{Kind: models.KindLocation, ID: 1}, 0, 0, markers.Style{})
	c.SetDisplayed(ref, false)

	out := c.Render(testViewport(40, 12), nil, false)
	if strings.Contains(out, "●") {
		t.Error("hidden marker should not be drawn")
	}
}

func TestRenderEventGlyph(t *testing.T) {
	c := New(zone.New())
	c.AddMarker(models.Key{Kind: models.KindEvent, ID: 7}, 0, 0, markers.Style{})

	out := c.Render(testViewport(40, 12), nil, false)
	if !strings.Contains(out, "✶") {
		t.Error("event marker should use the star glyph")
	}
}

func TestRenderFavoriteGlyph(t *testing.T) {
	c := New(zone.New())
	c.AddMarker(models.Key{Kind: models.KindLocation, ID: 1}, 0, 0, markers.Style{Favorited: true})

	out := c.Render(testViewport(40, 12), nil, false)
	if !strings.Contains(out, "♥") {
		t.Error("favorited location should use the heart glyph")
	}
}

func TestRenderCrosshair(t *testing.T) {
	c := New(zone.New())
	out := c.Render(testViewport(40, 12), nil, true)
	if !strings.Contains(out, "+") {
		t.Error("create-mode crosshair missing")
	}
}

func TestRenderCoastline(t *testing.T) {
	c := New(zone.New())
	coast := []basemap.Polyline{{
		{Lat: -10, Lng: -20},
		{Lat: 10, Lng: 20},
	}}

	out := c.Render(testViewport(40, 12), coast, false)
	if !strings.Contains(out, "·") {
		t.Error("coastline segment crossing the viewport not drawn")
	}
}

func TestOpacitySteps(t *testing.T) {
	cases := []struct {
		opacity float64
		want    int
	}{
		{1.0, 0},
		{0.9, 0},
		{0.6, 1},
		{0.45, 1},
		{0.2, 2},
	}
	for _, tc := range cases {
		if got := opacityStep(tc.opacity); got != tc.want {
			t.Errorf("opacityStep(%v) = %d, want %d", tc.opacity, got, tc.want)
		}
	}
}
