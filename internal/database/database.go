package database

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DBPath returns the path to the single shared database under the data dir
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, "stargazer.db")
}

// Open opens the shared database with the usual pragmas applied
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA synchronous=NORMAL")
	db.Exec("PRAGMA cache_size=10000")
	return db, nil
}

// EnsureSnapshotSchema ensures the catalog snapshot table exists
func EnsureSnapshotSchema(dbPath string) error {
	db, err := Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database to ensure schema: %w", err)
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS catalog_snapshot (
			kind TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating catalog_snapshot table: %w", err)
	}

	return nil
}
