package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/villamar/pousada-recon-backend/internal/domain/week"
)

// CreateWeek inserts a new open week, assigning id and createdAt.
func (s *Storage) CreateWeek(w *week.Week) error {
	w.ID = uuid.NewString()
	w.Status = week.StatusOpen
	w.CreatedAt = time.Now().UTC()

	_, err := s.db.Exec(`
	INSERT INTO weeks (id, name, start_date, end_date, status, created_at)
	VALUES (?, ?, ?, ?, ?, ?)`,
		w.ID, w.Name, w.StartDate.String(), w.EndDate.String(), string(w.Status), formatTime(w.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert week: %w", err)
	}
	return nil
}

// GetWeek returns the week by id, or nil when it does not exist.
func (s *Storage) GetWeek(id string) (*week.Week, error) {
	row := s.db.QueryRow(`
	SELECT id, name, start_date, end_date, status, director_token, created_at, closed_at
	FROM weeks WHERE id = ?`, id)

	w, err := scanWeek(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return w, err
}

// ListWeeks returns all weeks, most recent start date first.
func (s *Storage) ListWeeks() ([]*week.Week, error) {
	rows, err := s.db.Query(`
	SELECT id, name, start_date, end_date, status, director_token, created_at, closed_at
	FROM weeks ORDER BY start_date DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	weeks := make([]*week.Week, 0)
	for rows.Next() {
		w, err := scanWeek(rows)
		if err != nil {
			return nil, err
		}
		weeks = append(weeks, w)
	}
	return weeks, rows.Err()
}

// SetWeekStatus applies a non-closing status change.
func (s *Storage) SetWeekStatus(id string, status week.Status) error {
	result, err := s.db.Exec("UPDATE weeks SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("update week status: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return week.ErrNotFound
	}
	return nil
}

// CloseWeek marks the week closed, stamping the director token and closing
// timestamp in one statement.
func (s *Storage) CloseWeek(id string, token string, closedAt time.Time) error {
	result, err := s.db.Exec(
		"UPDATE weeks SET status = ?, closed_at = ?, director_token = ? WHERE id = ?",
		string(week.StatusClosed), formatTime(closedAt), token, id,
	)
	if err != nil {
		return fmt.Errorf("close week: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return week.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWeek(row rowScanner) (*week.Week, error) {
	var (
		w             week.Week
		startDate     string
		endDate       string
		status        string
		directorToken sql.NullString
		createdAt     string
		closedAt      sql.NullString
	)
	if err := row.Scan(&w.ID, &w.Name, &startDate, &endDate, &status, &directorToken, &createdAt, &closedAt); err != nil {
		return nil, err
	}

	var err error
	if w.StartDate, err = parseStoredDate(startDate); err != nil {
		return nil, err
	}
	if w.EndDate, err = parseStoredDate(endDate); err != nil {
		return nil, err
	}
	if w.CreatedAt, err = parseStoredTime(createdAt); err != nil {
		return nil, err
	}
	w.Status = week.Status(status)
	w.DirectorToken = directorToken.String
	if closedAt.Valid {
		t, err := parseStoredTime(closedAt.String)
		if err != nil {
			return nil, err
		}
		w.ClosedAt = &t
	}
	return &w, nil
}
