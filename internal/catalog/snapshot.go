// Package catalog persists the last successful entity fetch so a transient
// network failure on startup degrades to a stale-but-usable page instead of
// an empty one. The snapshot is advisory: it is overwritten on every good
// load and never mutated in place.
package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/stargazerhq/stargazer-terminal/internal/database"
	"github.com/stargazerhq/stargazer-terminal/internal/models"
)

// Repository reads and writes catalog snapshots
type Repository struct {
	dbPath string
}

// NewRepository creates a snapshot repository over the shared database,
// creating the data directory and schema if needed
func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	if err := database.EnsureSnapshotSchema(dbPath); err != nil {
		return nil, err
	}
	return &Repository{dbPath: dbPath}, nil
}

// Save stores the fetched entity sets, replacing any prior snapshot
func (r *Repository) Save(spots []models.Spot, events []models.SkyEvent) error {
	db, err := database.Open(r.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	spotJSON, err := json.Marshal(spots)
	if err != nil {
		return fmt.Errorf("encoding spots: %w", err)
	}
	eventJSON, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encoding events: %w", err)
	}

	now := time.Now().UTC()
	for kind, payload := range map[string][]byte{
		"spots":  spotJSON,
		"events": eventJSON,
	} {
		_, err = db.Exec(`
			INSERT INTO catalog_snapshot (kind, payload, fetched_at) VALUES (?, ?, ?)
			ON CONFLICT(kind) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
		`, kind, string(payload), now)
		if err != nil {
			return fmt.Errorf("saving %s snapshot: %w", kind, err)
		}
	}
	return nil
}

// Load reads the last snapshot. A missing snapshot is not an error; it comes
// back as empty sets and a zero time.
func (r *Repository) Load() ([]models.Spot, []models.SkyEvent, time.Time, error) {
	db, err := database.Open(r.dbPath)
	if err != nil {
		return nil, nil, time.Time{}, err
	}
	defer db.Close()

	var spots []models.Spot
	var events []models.SkyEvent
	var fetchedAt time.Time

	load := func(kind string, out any) error {
		var payload string
		var at time.Time
		err := db.QueryRow("SELECT payload, fetched_at FROM catalog_snapshot WHERE kind = ?", kind).Scan(&payload, &at)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %s snapshot: %w", kind, err)
		}
		if at.After(fetchedAt) {
			fetchedAt = at
		}
		return json.Unmarshal([]byte(payload), out)
	}

	if err := load("spots", &spots); err != nil {
		return nil, nil, time.Time{}, err
	}
	if err := load("events", &events); err != nil {
		return nil, nil, time.Time{}, err
	}
	return spots, events, fetchedAt, nil
}
