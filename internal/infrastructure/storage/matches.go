package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
)

const matchColumns = `id, week_id, entry_id, bank_record_id, exception_id,
	status, match_type, confidence, date_diff_days, amount_diff,
	notes, admin_note, created_at`

// ReplaceMatches swaps the week's match set for the given run output in one
// transaction, assigning ids and createdAt. Admin notes from the previous
// run are discarded along with the matches they annotated.
func (s *Storage) ReplaceMatches(weekID string, results []recon.MatchResult) ([]recon.MatchRecord, error) {
	records := make([]recon.MatchRecord, len(results))
	now := time.Now().UTC()

	err := s.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM matches WHERE week_id = ?", weekID); err != nil {
			return fmt.Errorf("clear matches: %w", err)
		}
		for i, result := range results {
			records[i] = recon.MatchRecord{
				ID:          uuid.NewString(),
				MatchResult: result,
				CreatedAt:   now,
			}
			if _, err := tx.Exec(`
			INSERT INTO matches (`+matchColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				records[i].ID,
				result.WeekID,
				nullString(result.EntryID),
				nullString(result.BankRecordID),
				nullString(result.ExceptionID),
				string(result.Status),
				string(result.MatchType),
				result.Confidence,
				nullInt(result.DateDiffDays),
				nullFloat(result.AmountDiff),
				nullString(result.Notes),
				sql.NullString{},
				formatTime(now),
			); err != nil {
				return fmt.Errorf("insert match: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListMatches returns the week's match records in insertion order.
func (s *Storage) ListMatches(weekID string) ([]recon.MatchRecord, error) {
	rows, err := s.db.Query(`
	SELECT `+matchColumns+`
	FROM matches WHERE week_id = ? ORDER BY rowid`, weekID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	records := make([]recon.MatchRecord, 0)
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// GetMatch returns one match record, or nil when the id is unknown.
func (s *Storage) GetMatch(id string) (*recon.MatchRecord, error) {
	row := s.db.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE id = ?`, id)
	rec, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

// UpdateMatch applies a partial update built from the non-nil patch fields.
// Returns nil when the id is unknown.
func (s *Storage) UpdateMatch(id string, patch MatchPatch) (*recon.MatchRecord, error) {
	sets := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)

	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*patch.Status))
	}
	if patch.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, nullString(*patch.Notes))
	}
	if patch.AdminNote != nil {
		sets = append(sets, "admin_note = ?")
		args = append(args, nullString(*patch.AdminNote))
	}

	if len(sets) > 0 {
		args = append(args, id)
		res, err := s.db.Exec(
			"UPDATE matches SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return nil, fmt.Errorf("update match: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return nil, err
		} else if n == 0 {
			return nil, nil
		}
	}

	return s.GetMatch(id)
}

func scanMatch(row rowScanner) (*recon.MatchRecord, error) {
	var (
		rec          recon.MatchRecord
		entryID      sql.NullString
		bankRecordID sql.NullString
		exceptionID  sql.NullString
		status       string
		matchType    string
		dateDiffDays sql.NullInt64
		amountDiff   sql.NullFloat64
		notes        sql.NullString
		adminNote    sql.NullString
		createdAt    string
	)
	if err := row.Scan(&rec.ID, &rec.WeekID, &entryID, &bankRecordID, &exceptionID,
		&status, &matchType, &rec.Confidence, &dateDiffDays, &amountDiff,
		&notes, &adminNote, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if rec.CreatedAt, err = parseStoredTime(createdAt); err != nil {
		return nil, err
	}
	rec.EntryID = entryID.String
	rec.BankRecordID = bankRecordID.String
	rec.ExceptionID = exceptionID.String
	rec.Status = recon.MatchStatus(status)
	rec.MatchType = recon.MatchType(matchType)
	rec.DateDiffDays = intOrNil(dateDiffDays)
	rec.AmountDiff = floatOrNil(amountDiff)
	rec.Notes = notes.String
	rec.AdminNote = adminNote.String
	return &rec, nil
}
