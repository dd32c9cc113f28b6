// Package maprender draws the map pane: coastline context lines, the marker
// layer and the create-mode crosshair, projected through a geo.Viewport onto
// a terminal cell grid. It is the renderer the marker lifecycle manager
// drives; marker objects live here and are opaque to everyone else.
package maprender

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/stargazerhq/stargazer-terminal/internal/basemap"
	"github.com/stargazerhq/stargazer-terminal/internal/geo"
	"github.com/stargazerhq/stargazer-terminal/internal/markers"
	"github.com/stargazerhq/stargazer-terminal/internal/models"
)

// zonePrefix namespaces marker mouse zones within the page's zone manager
const zonePrefix = "marker:"

var (
	coastStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("24"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true)

	locationStyles = opacityStyles("114", "71", "22")
	favoriteStyles = opacityStyles("220", "178", "94")
	eventStyles    = opacityStyles("141", "98", "60")

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("33")).
			Bold(true)
)

// opacityStyles builds the bright/mid/faint steps a fading marker walks
// through; terminals have no alpha channel, so opacity maps to color ramps.
func opacityStyles(bright, mid, faint string) [3]lipgloss.Style {
	return [3]lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color(bright)).Bold(true),
		lipgloss.NewStyle().Foreground(lipgloss.Color(mid)),
		lipgloss.NewStyle().Foreground(lipgloss.Color(faint)),
	}
}

type marker struct {
	key       models.Key
	lat, lng  float64
	style     markers.Style
	opacity   float64
	displayed bool
}

// Canvas is the renderer-native marker surface
type Canvas struct {
	zones   *zone.Manager
	markers map[int]*marker
	nextRef int
}

// New creates a canvas registering marker mouse zones on the given manager
func New(zones *zone.Manager) *Canvas {
	return &Canvas{
		zones:   zones,
		markers: make(map[int]*marker),
	}
}

// AddMarker implements markers.Renderer
func (c *Canvas) AddMarker(key models.Key, lat, lng float64, style markers.Style) markers.Ref {
	c.nextRef++
	c.markers[c.nextRef] = &marker{
		key:       key,
		lat:       lat,
		lng:       lng,
		style:     style,
		opacity:   1,
		displayed: true,
	}
	return c.nextRef
}

// RemoveMarker implements markers.Renderer
func (c *Canvas) RemoveMarker(ref markers.Ref) {
	delete(c.markers, ref.(int))
}

// SetOpacity implements markers.Renderer
func (c *Canvas) SetOpacity(ref markers.Ref, opacity float64) {
	if m, ok := c.markers[ref.(int)]; ok {
		m.opacity = opacity
	}
}

// SetDisplayed implements markers.Renderer
func (c *Canvas) SetDisplayed(ref markers.Ref, displayed bool) {
	if m, ok := c.markers[ref.(int)]; ok {
		m.displayed = displayed
	}
}

// SetStyle implements markers.Renderer
func (c *Canvas) SetStyle(ref markers.Ref, style markers.Style) {
	if m, ok := c.markers[ref.(int)]; ok {
		m.style = style
	}
}

// MarkerCount reports how many marker objects the canvas holds
func (c *Canvas) MarkerCount() int { return len(c.markers) }

// HitTest resolves a mouse event to the marker zone it landed on
func (c *Canvas) HitTest(msg tea.MouseMsg) (models.Key, bool) {
	for _, m := range c.markers {
		if !m.displayed {
			continue
		}
		if c.zones.Get(zonePrefix + m.key.String()).InBounds(msg) {
			return m.key, true
		}
	}
	return models.Key{}, false
}

// Render draws the pane at the given viewport. showCursor adds the
// create-mode crosshair at the viewport center.
func (c *Canvas) Render(vp geo.Viewport, coast []basemap.Polyline, showCursor bool) string {
	w, h := vp.Width, vp.Height
	if w < 1 || h < 1 {
		return ""
	}

	grid := make([][]string, h)
	for y := range grid {
		grid[y] = make([]string, w)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	c.drawCoastline(grid, vp, coast)
	c.drawMarkers(grid, vp)

	if showCursor {
		cx, cy := w/2, h/2
		grid[cy][cx] = cursorStyle.Render("+")
	}

	rows := make([]string, h)
	for y := range grid {
		rows[y] = strings.Join(grid[y], "")
	}
	return strings.Join(rows, "\n")
}

func (c *Canvas) drawCoastline(grid [][]string, vp geo.Viewport, coast []basemap.Polyline) {
	dot := coastStyle.Render("·")
	for _, line := range coast {
		for i := 1; i < len(line); i++ {
			a := vp.Project(line[i-1].Lat, line[i-1].Lng)
			b := vp.Project(line[i].Lat, line[i].Lng)
			plotLine(grid, a, b, dot)
		}
	}
}

// plotLine steps between two projected points, writing cells that fall on
// screen. Plain DDA; segments fully off screen write nothing.
func plotLine(grid [][]string, a, b geo.Point, cell string) {
	h := len(grid)
	w := len(grid[0])

	dx := b.X - a.X
	dy := b.Y - a.Y
	steps := int(max(abs(dx), abs(dy))) + 1
	if steps > 4*w {
		// Antimeridian wrap or a segment spanning the world; not worth drawing
		return
	}

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(a.X + dx*t)
		y := int(a.Y + dy*t)
		if x >= 0 && x < w && y >= 0 && y < h {
			grid[y][x] = cell
		}
	}
}

func (c *Canvas) drawMarkers(grid [][]string, vp geo.Viewport) {
	h := len(grid)
	w := len(grid[0])

	// Events first so location markers win contested cells; the selected
	// marker is drawn last of all.
	var selected *marker
	for _, pass := range []models.Kind{models.KindEvent, models.KindLocation} {
		for _, m := range c.markers {
			if m.key.Kind != pass || !m.displayed || m.opacity <= 0 {
				continue
			}
			if m.style.Selected {
				selected = m
				continue
			}
			c.drawMarker(grid, vp, m, w, h)
		}
	}
	if selected != nil {
		c.drawMarker(grid, vp, selected, w, h)
	}
}

func (c *Canvas) drawMarker(grid [][]string, vp geo.Viewport, m *marker, w, h int) {
	p := vp.Project(m.lat, m.lng)
	x, y := int(p.X), int(p.Y)
	if x < 0 || x >= w || y < 0 || y >= h {
		return
	}

	glyph := "●"
	styles := locationStyles
	if m.key.Kind == models.KindEvent {
		glyph = "✶"
		styles = eventStyles
	} else if m.style.Favorited {
		glyph = "♥"
		styles = favoriteStyles
	}

	var rendered string
	if m.style.Selected {
		rendered = selectedStyle.Render(glyph)
	} else {
		rendered = styles[opacityStep(m.opacity)].Render(glyph)
	}

	grid[y][x] = c.zones.Mark(zonePrefix+m.key.String(), rendered)
}

func opacityStep(opacity float64) int {
	switch {
	case opacity >= 0.85:
		return 0
	case opacity >= 0.45:
		return 1
	default:
		return 2
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
