// Package basemap provides the coastline polylines drawn under the markers.
// The map tiles themselves are out of scope; these outlines only give the
// viewport some geographic context.
package basemap

import (
	"encoding/json"
	"fmt"

	"github.com/stargazerhq/stargazer-terminal/internal/database"
	"github.com/stargazerhq/stargazer-terminal/internal/models"
)

// Polyline is one coastline segment
type Polyline []models.Coordinates

// LoadSegments returns every coastline segment in the database. The 110m
// dataset is small enough to hold in memory whole; viewport clipping happens
// at draw time.
func LoadSegments(dbPath string) ([]Polyline, error) {
	db, err := database.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query("SELECT geometry FROM coastline")
	if err != nil {
		return nil, fmt.Errorf("querying coastline: %w", err)
	}
	defer rows.Close()

	var segments []Polyline
	for rows.Next() {
		var geometry string
		if err := rows.Scan(&geometry); err != nil {
			continue
		}

		var coords [][]float64
		if err := json.Unmarshal([]byte(geometry), &coords); err != nil {
			continue
		}

		line := make(Polyline, 0, len(coords))
		for _, c := range coords {
			if len(c) != 2 {
				continue
			}
			line = append(line, models.Coordinates{Lng: c[0], Lat: c[1]})
		}
		if len(line) >= 2 {
			segments = append(segments, line)
		}
	}
	return segments, rows.Err()
}
