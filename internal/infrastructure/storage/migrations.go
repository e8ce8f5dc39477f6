package storage

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database schema migration.
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// allMigrations defines all migrations in order.
var allMigrations = []Migration{
	{
		Version: 1,
		Name:    "initial_schema",
		Up:      migration001InitialSchema,
	},
	{
		Version: 2,
		Name:    "add_match_week_index",
		Up:      migration002AddMatchWeekIndex,
	},
}

// runMigrations executes all pending migrations.
func (s *Storage) runMigrations() error {
	if err := s.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := s.getAppliedMigrations()
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range allMigrations {
		if applied[migration.Version] {
			continue
		}

		log.Printf("Running migration %d: %s", migration.Version, migration.Name)

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version, migration.Name,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

func (s *Storage) ensureMigrationsTable() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

func (s *Storage) getAppliedMigrations() (map[int]bool, error) {
	rows, err := s.db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func migration001InitialSchema(tx *sql.Tx) error {
	statements := []string{
		`CREATE TABLE weeks (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'open',
			director_token TEXT,
			created_at TEXT NOT NULL,
			closed_at TEXT
		)`,
		`CREATE TABLE entries (
			id TEXT PRIMARY KEY,
			week_id TEXT NOT NULL REFERENCES weeks(id),
			reservation_id TEXT,
			guest_name TEXT,
			description TEXT,
			amount REAL NOT NULL,
			date TEXT NOT NULL,
			raw_row TEXT
		)`,
		`CREATE TABLE bank_records (
			id TEXT PRIMARY KEY,
			week_id TEXT NOT NULL REFERENCES weeks(id),
			bank_source TEXT NOT NULL,
			date TEXT NOT NULL,
			amount REAL NOT NULL,
			description TEXT,
			raw_row TEXT
		)`,
		`CREATE TABLE exceptions (
			id TEXT PRIMARY KEY,
			week_id TEXT NOT NULL REFERENCES weeks(id),
			type TEXT NOT NULL,
			reservation_id TEXT,
			guest_name TEXT,
			original_amount REAL,
			final_amount REAL,
			discount_amount REAL,
			discount_pct REAL,
			reason TEXT,
			source TEXT NOT NULL,
			source_raw TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE matches (
			id TEXT PRIMARY KEY,
			week_id TEXT NOT NULL REFERENCES weeks(id),
			entry_id TEXT,
			bank_record_id TEXT,
			exception_id TEXT,
			status TEXT NOT NULL,
			match_type TEXT NOT NULL,
			confidence REAL NOT NULL DEFAULT 0,
			date_diff_days INTEGER,
			amount_diff REAL,
			notes TEXT,
			admin_note TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX idx_entries_week ON entries(week_id)`,
		`CREATE INDEX idx_bank_records_week ON bank_records(week_id)`,
		`CREATE INDEX idx_exceptions_week ON exceptions(week_id)`,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func migration002AddMatchWeekIndex(tx *sql.Tx) error {
	_, err := tx.Exec(`CREATE INDEX idx_matches_week ON matches(week_id)`)
	return err
}
