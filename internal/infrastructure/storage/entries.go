package storage

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
)

// ReplaceEntries swaps the week's entry set atomically: re-importing the
// PMS export is a full replacement, never a merge.
func (s *Storage) ReplaceEntries(weekID string, entries []recon.Entry) ([]recon.Entry, error) {
	inserted := make([]recon.Entry, len(entries))
	copy(inserted, entries)

	err := s.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM entries WHERE week_id = ?", weekID); err != nil {
			return fmt.Errorf("delete entries: %w", err)
		}
		for i := range inserted {
			inserted[i].ID = uuid.NewString()
			inserted[i].WeekID = weekID
			if _, err := tx.Exec(`
			INSERT INTO entries (id, week_id, reservation_id, guest_name, description, amount, date, raw_row)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				inserted[i].ID,
				weekID,
				nullString(inserted[i].ReservationID),
				nullString(inserted[i].GuestName),
				nullString(inserted[i].Description),
				inserted[i].Amount,
				inserted[i].Date.String(),
				nullString(inserted[i].RawRow),
			); err != nil {
				return fmt.Errorf("insert entry: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inserted, nil
}

// ListEntries returns the week's entries, largest amount first.
func (s *Storage) ListEntries(weekID string) ([]recon.Entry, error) {
	rows, err := s.db.Query(`
	SELECT id, week_id, reservation_id, guest_name, description, amount, date, raw_row
	FROM entries WHERE week_id = ? ORDER BY amount DESC, rowid`, weekID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	entries := make([]recon.Entry, 0)
	for rows.Next() {
		var (
			e             recon.Entry
			reservationID sql.NullString
			guestName     sql.NullString
			description   sql.NullString
			date          string
			rawRow        sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.WeekID, &reservationID, &guestName, &description, &e.Amount, &date, &rawRow); err != nil {
			return nil, err
		}
		if e.Date, err = parseStoredDate(date); err != nil {
			return nil, err
		}
		e.ReservationID = reservationID.String
		e.GuestName = guestName.String
		e.Description = description.String
		e.RawRow = rawRow.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
