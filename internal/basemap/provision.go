package basemap

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jonas-p/go-shp"
	"github.com/rs/zerolog/log"

	"github.com/stargazerhq/stargazer-terminal/internal/database"
)

const (
	// Natural Earth 1:110m coastline, small enough to ship whole into SQLite
	coastlineURL  = "https://naciscdn.org/naturalearth/110m/physical/ne_110m_coastline.zip"
	shapefileBase = "ne_110m_coastline"
)

// NeedsProvisioning checks whether the coastline table has been built yet
func NeedsProvisioning(dbPath string) (bool, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return true, nil
	}

	db, err := database.Open(dbPath)
	if err != nil {
		return false, err
	}
	defer db.Close()

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='coastline'").Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking for coastline table: %w", err)
	}
	return count == 0, nil
}

// Provision downloads the coastline shapefile once and loads its polylines
// into the shared database. Safe to call on every startup; it returns
// immediately when the table already exists.
func Provision(dbPath string) error {
	needs, err := NeedsProvisioning(dbPath)
	if err != nil {
		return err
	}
	if !needs {
		return nil
	}

	log.Info().Str("url", coastlineURL).Msg("coastline table not found, provisioning")

	dataDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	zipPath := filepath.Join(dataDir, shapefileBase+".zip")
	if err := downloadFile(zipPath, coastlineURL); err != nil {
		return fmt.Errorf("downloading coastline: %w", err)
	}
	defer os.Remove(zipPath)

	if err := unzipFile(zipPath, dataDir); err != nil {
		return fmt.Errorf("extracting coastline: %w", err)
	}

	shapefilePath := filepath.Join(dataDir, shapefileBase+".shp")
	if err := buildCoastlineTable(shapefilePath, dbPath); err != nil {
		return fmt.Errorf("building coastline table: %w", err)
	}

	cleanupShapefiles(dataDir, shapefileBase)
	log.Info().Str("db", dbPath).Msg("coastline provisioned")
	return nil
}

func downloadFile(path string, url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

func unzipFile(src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		fpath := filepath.Join(dest, f.Name)

		// Guard against zip-slip paths
		if !filepath.HasPrefix(fpath, filepath.Clean(dest)+string(os.PathSeparator)) {
			return fmt.Errorf("illegal file path: %s", fpath)
		}

		if f.FileInfo().IsDir() {
			os.MkdirAll(fpath, os.ModePerm)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(fpath), os.ModePerm); err != nil {
			return err
		}

		outFile, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
		if err != nil {
			return err
		}

		rc, err := f.Open()
		if err != nil {
			outFile.Close()
			return err
		}

		_, err = io.Copy(outFile, rc)
		outFile.Close()
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// buildCoastlineTable reads the polyline shapefile and stores each part as a
// JSON-encoded [lng,lat] sequence with its bounding box
func buildCoastlineTable(shapefilePath, dbPath string) error {
	shape, err := shp.Open(shapefilePath)
	if err != nil {
		return fmt.Errorf("opening shapefile: %w", err)
	}
	defer shape.Close()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE coastline (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			geometry TEXT NOT NULL,
			bbox_min_lat REAL NOT NULL,
			bbox_max_lat REAL NOT NULL,
			bbox_min_lon REAL NOT NULL,
			bbox_max_lon REAL NOT NULL
		);
		CREATE INDEX idx_coastline_bbox ON coastline(
			bbox_min_lat, bbox_max_lat, bbox_min_lon, bbox_max_lon
		);
	`)
	if err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	count := 0
	for shape.Next() {
		_, p := shape.Shape()

		polyline, ok := p.(*shp.PolyLine)
		if !ok {
			continue
		}
		bbox := polyline.BBox()

		for partIdx := 0; partIdx < len(polyline.Parts); partIdx++ {
			startIdx := int(polyline.Parts[partIdx])
			endIdx := len(polyline.Points)
			if partIdx+1 < len(polyline.Parts) {
				endIdx = int(polyline.Parts[partIdx+1])
			}

			coords := make([][]float64, 0, endIdx-startIdx)
			for i := startIdx; i < endIdx; i++ {
				pt := polyline.Points[i]
				coords = append(coords, []float64{pt.X, pt.Y})
			}
			if len(coords) < 2 {
				continue
			}

			geometryJSON, err := json.Marshal(coords)
			if err != nil {
				log.Warn().Err(err).Msg("marshaling coastline segment")
				continue
			}

			_, err = db.Exec(`
				INSERT INTO coastline (geometry, bbox_min_lat, bbox_max_lat, bbox_min_lon, bbox_max_lon)
				VALUES (?, ?, ?, ?, ?)
			`, string(geometryJSON), bbox.MinY, bbox.MaxY, bbox.MinX, bbox.MaxX)
			if err != nil {
				log.Warn().Err(err).Msg("inserting coastline segment")
				continue
			}
			count++
		}
	}

	log.Info().Int("segments", count).Msg("coastline table built")
	return nil
}

func cleanupShapefiles(dir, base string) {
	extensions := []string{".shp", ".shx", ".dbf", ".prj", ".cpg", ".shp.xml", ".README.html", ".VERSION.txt"}
	for _, ext := range extensions {
		os.Remove(filepath.Join(dir, base+ext))
	}
}
