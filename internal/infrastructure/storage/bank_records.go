package storage

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
)

// AppendBankRecords inserts records, assigning ids. Bank imports accumulate
// per week: each acquirer's CSV arrives separately.
func (s *Storage) AppendBankRecords(records []recon.BankRecord) ([]recon.BankRecord, error) {
	inserted := make([]recon.BankRecord, len(records))
	copy(inserted, records)

	err := s.inTx(func(tx *sql.Tx) error {
		for i := range inserted {
			inserted[i].ID = uuid.NewString()
			if _, err := tx.Exec(`
			INSERT INTO bank_records (id, week_id, bank_source, date, amount, description, raw_row)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
				inserted[i].ID,
				inserted[i].WeekID,
				string(inserted[i].BankSource),
				inserted[i].Date.String(),
				inserted[i].Amount,
				nullString(inserted[i].Description),
				nullString(inserted[i].RawRow),
			); err != nil {
				return fmt.Errorf("insert bank record: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inserted, nil
}

// ListBankRecords returns the week's bank records, largest amount first.
func (s *Storage) ListBankRecords(weekID string) ([]recon.BankRecord, error) {
	rows, err := s.db.Query(`
	SELECT id, week_id, bank_source, date, amount, description, raw_row
	FROM bank_records WHERE week_id = ? ORDER BY amount DESC, rowid`, weekID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	records := make([]recon.BankRecord, 0)
	for rows.Next() {
		var (
			b           recon.BankRecord
			bankSource  string
			date        string
			description sql.NullString
			rawRow      sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.WeekID, &bankSource, &date, &b.Amount, &description, &rawRow); err != nil {
			return nil, err
		}
		if b.Date, err = parseStoredDate(date); err != nil {
			return nil, err
		}
		b.BankSource = recon.BankSource(bankSource)
		b.Description = description.String
		b.RawRow = rawRow.String
		records = append(records, b)
	}
	return records, rows.Err()
}
