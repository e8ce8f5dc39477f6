package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
)

const exceptionColumns = `id, week_id, type, reservation_id, guest_name,
	original_amount, final_amount, discount_amount, discount_pct,
	reason, source, source_raw, created_at`

// AppendExceptions inserts records, assigning ids and createdAt.
func (s *Storage) AppendExceptions(records []recon.ExceptionRecord) ([]recon.ExceptionRecord, error) {
	inserted := make([]recon.ExceptionRecord, len(records))
	copy(inserted, records)
	now := time.Now().UTC()

	err := s.inTx(func(tx *sql.Tx) error {
		for i := range inserted {
			inserted[i].ID = uuid.NewString()
			inserted[i].CreatedAt = now
			if _, err := tx.Exec(`
			INSERT INTO exceptions (`+exceptionColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				inserted[i].ID,
				inserted[i].WeekID,
				string(inserted[i].Type),
				nullString(inserted[i].ReservationID),
				nullString(inserted[i].GuestName),
				nullFloat(inserted[i].OriginalAmount),
				nullFloat(inserted[i].FinalAmount),
				nullFloat(inserted[i].DiscountAmount),
				nullFloat(inserted[i].DiscountPct),
				nullString(inserted[i].Reason),
				string(inserted[i].Source),
				nullString(inserted[i].SourceRaw),
				formatTime(inserted[i].CreatedAt),
			); err != nil {
				return fmt.Errorf("insert exception: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inserted, nil
}

// ListExceptions returns the week's exceptions, newest first.
func (s *Storage) ListExceptions(weekID string) ([]recon.ExceptionRecord, error) {
	rows, err := s.db.Query(`
	SELECT `+exceptionColumns+`
	FROM exceptions WHERE week_id = ? ORDER BY created_at DESC, rowid DESC`, weekID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	records := make([]recon.ExceptionRecord, 0)
	for rows.Next() {
		rec, err := scanException(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// UpdateException applies a partial update built from the non-nil patch
// fields. Returns nil when the id is unknown.
func (s *Storage) UpdateException(id string, patch ExceptionPatch) (*recon.ExceptionRecord, error) {
	sets := make([]string, 0, 10)
	args := make([]interface{}, 0, 11)

	addSet := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Type != nil {
		addSet("type", string(*patch.Type))
	}
	if patch.ReservationID != nil {
		addSet("reservation_id", nullString(*patch.ReservationID))
	}
	if patch.GuestName != nil {
		addSet("guest_name", nullString(*patch.GuestName))
	}
	if patch.OriginalAmount != nil {
		addSet("original_amount", *patch.OriginalAmount)
	}
	if patch.FinalAmount != nil {
		addSet("final_amount", *patch.FinalAmount)
	}
	if patch.DiscountAmount != nil {
		addSet("discount_amount", *patch.DiscountAmount)
	}
	if patch.DiscountPct != nil {
		addSet("discount_pct", *patch.DiscountPct)
	}
	if patch.Reason != nil {
		addSet("reason", nullString(*patch.Reason))
	}
	if patch.Source != nil {
		addSet("source", string(*patch.Source))
	}
	if patch.SourceRaw != nil {
		addSet("source_raw", nullString(*patch.SourceRaw))
	}

	if len(sets) > 0 {
		args = append(args, id)
		res, err := s.db.Exec(
			"UPDATE exceptions SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return nil, fmt.Errorf("update exception: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return nil, err
		} else if n == 0 {
			return nil, nil
		}
	}

	row := s.db.QueryRow(`SELECT `+exceptionColumns+` FROM exceptions WHERE id = ?`, id)
	rec, err := scanException(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

// DeleteException removes one exception. Returns false when the id is
// unknown.
func (s *Storage) DeleteException(id string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM exceptions WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanException(row rowScanner) (*recon.ExceptionRecord, error) {
	var (
		rec            recon.ExceptionRecord
		typ            string
		reservationID  sql.NullString
		guestName      sql.NullString
		originalAmount sql.NullFloat64
		finalAmount    sql.NullFloat64
		discountAmount sql.NullFloat64
		discountPct    sql.NullFloat64
		reason         sql.NullString
		source         string
		sourceRaw      sql.NullString
		createdAt      string
	)
	if err := row.Scan(&rec.ID, &rec.WeekID, &typ, &reservationID, &guestName,
		&originalAmount, &finalAmount, &discountAmount, &discountPct,
		&reason, &source, &sourceRaw, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if rec.CreatedAt, err = parseStoredTime(createdAt); err != nil {
		return nil, err
	}
	rec.Type = recon.ExceptionType(typ)
	rec.ReservationID = reservationID.String
	rec.GuestName = guestName.String
	rec.OriginalAmount = floatOrNil(originalAmount)
	rec.FinalAmount = floatOrNil(finalAmount)
	rec.DiscountAmount = floatOrNil(discountAmount)
	rec.DiscountPct = floatOrNil(discountPct)
	rec.Reason = reason.String
	rec.Source = recon.ExceptionSource(source)
	rec.SourceRaw = sourceRaw.String
	return &rec, nil
}
