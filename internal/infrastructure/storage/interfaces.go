package storage

import (
	"time"

	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
	"github.com/villamar/pousada-recon-backend/internal/domain/week"
)

// Repository defines the complete storage interface. It exists so the
// service and API layers can be tested against fakes and so the SQLite
// implementation stays swappable.
type Repository interface {
	WeekRepository
	EntryRepository
	BankRecordRepository
	ExceptionRepository
	MatchRepository
	Close() error
}

// WeekRepository handles week lifecycle persistence.
type WeekRepository interface {
	// CreateWeek inserts a new open week, assigning id and createdAt.
	CreateWeek(w *week.Week) error

	// GetWeek returns the week by id, or nil when it does not exist.
	GetWeek(id string) (*week.Week, error)

	// ListWeeks returns all weeks, most recent start date first.
	ListWeeks() ([]*week.Week, error)

	// SetWeekStatus applies a non-closing status change.
	SetWeekStatus(id string, status week.Status) error

	// CloseWeek marks the week closed, stamping the token and timestamp.
	CloseWeek(id string, token string, closedAt time.Time) error
}

// EntryRepository handles PMS entries.
type EntryRepository interface {
	// ReplaceEntries swaps the week's entry set atomically (delete +
	// insert in one transaction), assigning ids.
	ReplaceEntries(weekID string, entries []recon.Entry) ([]recon.Entry, error)

	// ListEntries returns the week's entries, largest amount first.
	ListEntries(weekID string) ([]recon.Entry, error)
}

// BankRecordRepository handles imported deposit lines.
type BankRecordRepository interface {
	// AppendBankRecords inserts records, assigning ids.
	AppendBankRecords(records []recon.BankRecord) ([]recon.BankRecord, error)

	// ListBankRecords returns the week's bank records, largest amount
	// first.
	ListBankRecords(weekID string) ([]recon.BankRecord, error)
}

// ExceptionRepository handles declared adjustments.
type ExceptionRepository interface {
	// AppendExceptions inserts records, assigning ids and createdAt.
	AppendExceptions(records []recon.ExceptionRecord) ([]recon.ExceptionRecord, error)

	// ListExceptions returns the week's exceptions, newest first.
	ListExceptions(weekID string) ([]recon.ExceptionRecord, error)

	// UpdateException applies a partial update; nil when id is unknown.
	UpdateException(id string, patch ExceptionPatch) (*recon.ExceptionRecord, error)

	// DeleteException removes one exception; false when id is unknown.
	DeleteException(id string) (bool, error)
}

// MatchRepository handles reconciliation verdicts.
type MatchRepository interface {
	// ReplaceMatches swaps the week's match set atomically (delete +
	// insert in one transaction), assigning ids and createdAt. A crash
	// or overlapping run never leaves two runs' outputs mixed.
	ReplaceMatches(weekID string, results []recon.MatchResult) ([]recon.MatchRecord, error)

	// ListMatches returns the week's match records in insertion order.
	ListMatches(weekID string) ([]recon.MatchRecord, error)

	// GetMatch returns one match record, or nil when it does not exist.
	GetMatch(id string) (*recon.MatchRecord, error)

	// UpdateMatch applies a partial update; nil when id is unknown.
	UpdateMatch(id string, patch MatchPatch) (*recon.MatchRecord, error)
}

// ExceptionPatch is a partial exception update; nil fields are untouched.
type ExceptionPatch struct {
	Type           *recon.ExceptionType
	ReservationID  *string
	GuestName      *string
	OriginalAmount *float64
	FinalAmount    *float64
	DiscountAmount *float64
	DiscountPct    *float64
	Reason         *string
	Source         *recon.ExceptionSource
	SourceRaw      *string
}

// MatchPatch is a partial match update; nil fields are untouched.
type MatchPatch struct {
	Status    *recon.MatchStatus
	Notes     *string
	AdminNote *string
}
