package sqlite

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS backup_record (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	filename TEXT NOT NULL,
	size_bytes INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	type TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS backup_settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	daily_enabled INTEGER NOT NULL,
	weekly_enabled INTEGER NOT NULL,
	monthly_enabled INTEGER NOT NULL,
	time_of_day TEXT NOT NULL,
	retention_days INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_backup_record_created_at ON backup_record(created_at);
CREATE INDEX IF NOT EXISTS idx_backup_record_status ON backup_record(status);

INSERT INTO backup_settings (id, daily_enabled, weekly_enabled, monthly_enabled, time_of_day, retention_days)
SELECT 1, 1, 0, 0, '02:00', 30
WHERE NOT EXISTS (SELECT 1 FROM backup_settings WHERE id = 1);
`

type DB struct {
	*sqlx.DB
}

func New(dbPath string) (*DB, error) {
	db, err := sqlx.Connect("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// WAL allows the scheduler and API handlers to read while a backup
	// record is being written
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{db}, nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
