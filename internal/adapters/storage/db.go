package storage

import (
	"database/sql"
	"fmt"
)

// schemaVersion is bumped whenever migrations gains an entry.
const schemaVersion = 1

// LatestSchemaVersion reports the schema version this build migrates to.
func LatestSchemaVersion() int {
	return schemaVersion
}

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS team (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		season TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS team_member (
		team_id TEXT NOT NULL,
		account_id TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (team_id, account_id),
		FOREIGN KEY (team_id) REFERENCES team(id),
		FOREIGN KEY (account_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS player (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (team_id) REFERENCES team(id)
	);

	CREATE TABLE IF NOT EXISTS event (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		category TEXT NOT NULL,
		date TEXT NOT NULL,
		venue_type TEXT NOT NULL DEFAULT '',
		venue_other TEXT NOT NULL DEFAULT '',
		venue TEXT NOT NULL DEFAULT '',
		opposition TEXT NOT NULL DEFAULT '',
		team_goals INTEGER NOT NULL DEFAULT 0,
		team_points INTEGER NOT NULL DEFAULT 0,
		opp_goals INTEGER NOT NULL DEFAULT 0,
		opp_points INTEGER NOT NULL DEFAULT 0,
		result TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (team_id) REFERENCES team(id)
	);

	CREATE TABLE IF NOT EXISTS attendance (
		id TEXT PRIMARY KEY,
		event_id TEXT NOT NULL,
		team_id TEXT NOT NULL,
		player_id TEXT NOT NULL,
		status TEXT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL,
		UNIQUE (event_id, player_id),
		FOREIGN KEY (event_id) REFERENCES event(id),
		FOREIGN KEY (player_id) REFERENCES player(id)
	);

	CREATE INDEX IF NOT EXISTS idx_player_team ON player(team_id);
	CREATE INDEX IF NOT EXISTS idx_event_team_date ON event(team_id, date);
	CREATE INDEX IF NOT EXISTS idx_attendance_team ON attendance(team_id);
	CREATE INDEX IF NOT EXISTS idx_attendance_event ON attendance(event_id);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// MigrateDB brings an existing database up to the latest schema version.
// Version 1 is the base schema; later migrations append to the list and
// run in order, each inside its own transaction.
// PRE: db is a valid database connection
// POST: schema_version holds LatestSchemaVersion()
func MigrateDB(db *sql.DB, dbPath string) error {
	if err := InitDB(db); err != nil {
		return err
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}

	var current sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	from := 1
	if current.Valid {
		from = int(current.Int64)
	}

	for v := from + 1; v <= schemaVersion; v++ {
		migrate, ok := migrations[v]
		if !ok {
			return fmt.Errorf("no migration registered for version %d (db: %s)", v, dbPath)
		}
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if err := migrate(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration to version %d failed: %w", v, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_version (version) VALUES (?)`, v); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	if !current.Valid {
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, schemaVersion); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
	}

	return nil
}

// SchemaVersion reports the migrated version of a database, 0 when no
// migration has run yet.
func SchemaVersion(db *sql.DB) (int, error) {
	var exists int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'`).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to check schema_version: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}

	var current sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&current); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	if !current.Valid {
		return 0, nil
	}
	return int(current.Int64), nil
}

// migrations maps a target version to the statements that reach it from
// the previous version.
var migrations = map[int]func(*sql.Tx) error{}
