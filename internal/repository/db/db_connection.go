package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// One writer at a time; concurrent ingests queue on the pool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

var pragmas = []string{
	"PRAGMA journal_mode = WAL;",
	"PRAGMA busy_timeout = 5000;",
	"PRAGMA synchronous = NORMAL;",
}

// seq keeps insertion order for readings stamped within the same second.
const schemaSensorReadings = `
CREATE TABLE IF NOT EXISTS sensor_readings (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT UNIQUE NOT NULL,
    ts TEXT NOT NULL,
    temp_air REAL,
    hum_air REAL,
    ph REAL,
    ec REAL,
    temp_water REAL,
    distance_cm REAL,
    level1 TEXT CHECK (level1 IN ('alto', 'bajo')),
    level2 TEXT CHECK (level2 IN ('alto', 'bajo')),
    level3 TEXT CHECK (level3 IN ('alto', 'bajo')),
    level4 TEXT CHECK (level4 IN ('alto', 'bajo'))
);
`

const indexSensorReadingsTS = `
CREATE INDEX IF NOT EXISTS idx_sensor_readings_ts ON sensor_readings (ts DESC, seq DESC);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaSensorReadings,
		indexSensorReadingsTS,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
