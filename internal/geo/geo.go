// Package geo provides the projection math behind the map pane: Web Mercator
// world-pixel coordinates, a viewport value that maps lat/lng to terminal
// cells, and screen containment tests with a padding margin.
package geo

import "math"

// tileSize is the Web Mercator base tile edge in pixels; world size doubles
// per zoom level.
const tileSize = 256.0

// Terminal cells are roughly twice as tall as they are wide, so one cell row
// spans two world pixels vertically.
const cellAspect = 2.0

const maxLat = 85.05112878 // Web Mercator clamp

// Point is a position in screen cells relative to the viewport's top-left
type Point struct {
	X, Y float64
}

// Bounds is a geographic bounding box
type Bounds struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// Viewport is the visible window over the map: a center, a zoom level and a
// screen size in cells. It is a value; pan/zoom/fly return adjusted copies.
type Viewport struct {
	CenterLat float64
	CenterLng float64
	Zoom      float64
	Width     int // cells
	Height    int // cells
}

func (v Viewport) worldSize() float64 {
	return tileSize * math.Exp2(v.Zoom)
}

// worldXY projects a coordinate to absolute world pixels at the current zoom
func (v Viewport) worldXY(lat, lng float64) (float64, float64) {
	lat = clampLat(lat)
	size := v.worldSize()
	x := (lng + 180) / 360 * size
	latRad := lat * math.Pi / 180
	y := (1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * size
	return x, y
}

// Project maps a coordinate to screen cells. Points outside the screen yield
// coordinates outside [0,Width)x[0,Height); callers decide what to do with
// them.
func (v Viewport) Project(lat, lng float64) Point {
	x, y := v.worldXY(lat, lng)
	cx, cy := v.worldXY(v.CenterLat, v.CenterLng)
	return Point{
		X: (x - cx) + float64(v.Width)/2,
		Y: (y-cy)/cellAspect + float64(v.Height)/2,
	}
}

// Contains reports whether a coordinate projects inside the screen expanded by
// a padding margin in cells. The padding absorbs edge flicker when markers sit
// right on the viewport boundary during a pan.
func (v Viewport) Contains(lat, lng float64, paddingCells float64) bool {
	p := v.Project(lat, lng)
	return p.X >= -paddingCells && p.X < float64(v.Width)+paddingCells &&
		p.Y >= -paddingCells && p.Y < float64(v.Height)+paddingCells
}

// Bounds returns the geographic box currently on screen
func (v Viewport) Bounds() Bounds {
	cx, cy := v.worldXY(v.CenterLat, v.CenterLng)
	halfW := float64(v.Width) / 2
	halfH := float64(v.Height) / 2 * cellAspect
	size := v.worldSize()

	minLat := yToLat(cy+halfH, size)
	maxLat := yToLat(cy-halfH, size)
	minLng := xToLng(cx-halfW, size)
	maxLng := xToLng(cx+halfW, size)
	return Bounds{MinLat: minLat, MaxLat: maxLat, MinLng: minLng, MaxLng: maxLng}
}

// FlyTo recenters the viewport on a coordinate
func (v Viewport) FlyTo(lat, lng float64) Viewport {
	v.CenterLat = clampLat(lat)
	v.CenterLng = normalizeLng(lng)
	return v
}

// Pan shifts the center by a screen-cell delta
func (v Viewport) Pan(dxCells, dyCells int) Viewport {
	cx, cy := v.worldXY(v.CenterLat, v.CenterLng)
	size := v.worldSize()
	cx += float64(dxCells)
	cy += float64(dyCells) * cellAspect
	v.CenterLng = normalizeLng(xToLng(cx, size))
	v.CenterLat = clampLat(yToLat(cy, size))
	return v
}

// ZoomIn steps one zoom level closer, capped at street-ish detail
func (v Viewport) ZoomIn() Viewport {
	if v.Zoom < 14 {
		v.Zoom++
	}
	return v
}

// ZoomOut steps one zoom level out, floored at the whole-world view
func (v Viewport) ZoomOut() Viewport {
	if v.Zoom > 0 {
		v.Zoom--
	}
	return v
}

// Resize adjusts the screen size, keeping the center
func (v Viewport) Resize(width, height int) Viewport {
	v.Width = width
	v.Height = height
	return v
}

func xToLng(x, size float64) float64 {
	return x/size*360 - 180
}

func yToLat(y, size float64) float64 {
	n := math.Pi - 2*math.Pi*y/size
	return 180 / math.Pi * math.Atan(0.5*(math.Exp(n)-math.Exp(-n)))
}

func clampLat(lat float64) float64 {
	if lat > maxLat {
		return maxLat
	}
	if lat < -maxLat {
		return -maxLat
	}
	return lat
}

func normalizeLng(lng float64) float64 {
	for lng > 180 {
		lng -= 360
	}
	for lng < -180 {
		lng += 360
	}
	return lng
}

// HaversineDistance calculates the great-circle distance in kilometers
// between two points
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
