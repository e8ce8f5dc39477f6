// Package storage provides SQLite persistence for weeks, imported records
// and reconciliation matches. It owns identity and timestamps: domain code
// hands it records without ids and gets persisted copies back.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
)

// Storage provides SQLite database access. It implements Repository.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository.
var _ Repository = (*Storage)(nil)

// NewStorage opens (creating if needed) the SQLite database at dbPath and
// runs pending migrations.
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

// inTx runs fn inside a transaction, rolling back on error.
func (s *Storage) inTx(fn func(*sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// nullString maps "" to NULL so optional text columns stay queryable.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func floatOrNil(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func intOrNil(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

// parseStoredDate reads a YYYY-MM-DD column value.
func parseStoredDate(value string) (recon.Date, error) {
	d, err := recon.ParseDate(value)
	if err != nil {
		return recon.Date{}, fmt.Errorf("corrupt date column %q: %w", value, err)
	}
	return d, nil
}

// parseStoredTime reads an RFC3339 timestamp column value.
func parseStoredTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt timestamp column %q: %w", value, err)
	}
	return t, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
