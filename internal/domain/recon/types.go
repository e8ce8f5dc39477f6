// Package recon implements the weekly reconciliation engine: a rule
// waterfall that pairs expected PMS receivables with actual bank deposits
// and assigns each one a confidence-colored verdict.
//
// The engine is pure. It consumes already-normalized typed records for one
// week and returns a complete match list; it never parses text, touches
// storage, reads the clock, or assigns identity. Callers persist the output
// as a full replacement of the week's previous match set.
package recon

import "time"

// BankSource identifies which bank or acquirer adapter produced a record.
type BankSource string

const (
	SourceBradesco BankSource = "bradesco"
	SourceCaixa    BankSource = "caixa"
	SourceCielo    BankSource = "cielo"
	SourcePix      BankSource = "pix"
	SourceGeneric  BankSource = "generic"
)

// ValidBankSource reports whether s is a known adapter.
func ValidBankSource(s BankSource) bool {
	switch s {
	case SourceBradesco, SourceCaixa, SourceCielo, SourcePix, SourceGeneric:
		return true
	}
	return false
}

// ExceptionType classifies a declared adjustment.
type ExceptionType string

const (
	ExceptionDiscount     ExceptionType = "discount"
	ExceptionCash         ExceptionType = "cash"
	ExceptionCancellation ExceptionType = "cancellation"
	ExceptionNoShow       ExceptionType = "noshow"
	ExceptionAcquirerFee  ExceptionType = "acquirer_fee"
)

// ValidExceptionType reports whether t is a known adjustment type.
func ValidExceptionType(t ExceptionType) bool {
	switch t {
	case ExceptionDiscount, ExceptionCash, ExceptionCancellation, ExceptionNoShow, ExceptionAcquirerFee:
		return true
	}
	return false
}

// ExceptionSource records how an exception entered the system.
type ExceptionSource string

const (
	FromWhatsApp ExceptionSource = "whatsapp"
	FromCSV      ExceptionSource = "csv"
	FromManual   ExceptionSource = "manual"
)

// MatchStatus is the confidence tier that drives human review. Green and
// yellow count as reconciled; red and blue demand action before a week can
// close.
type MatchStatus string

const (
	StatusGreen  MatchStatus = "green"
	StatusYellow MatchStatus = "yellow"
	StatusOrange MatchStatus = "orange"
	StatusRed    MatchStatus = "red"
	StatusBlue   MatchStatus = "blue"
)

// MatchType is the wire classification of the rule family that fired.
type MatchType string

const (
	MatchDirect       MatchType = "direct"
	MatchAcquirerFee  MatchType = "acquirer_fee"
	MatchDiscount     MatchType = "discount"
	MatchException    MatchType = "exception"
	MatchInferred     MatchType = "inferred"
	MatchUnmatched    MatchType = "unmatched"
	MatchUnidentified MatchType = "unidentified"
)

// Entry is one expected receivable for the week, imported from the property
// management system. Immutable for the duration of a reconciliation run.
type Entry struct {
	ID            string  `json:"id"`
	WeekID        string  `json:"weekId"`
	ReservationID string  `json:"reservationId,omitempty"`
	GuestName     string  `json:"guestName,omitempty"`
	Description   string  `json:"description,omitempty"`
	Amount        float64 `json:"amount"`
	Date          Date    `json:"date"`
	RawRow        string  `json:"rawRow,omitempty"`
}

// BankRecord is one deposit or settlement line from a bank or acquirer.
type BankRecord struct {
	ID          string     `json:"id"`
	WeekID      string     `json:"weekId"`
	BankSource  BankSource `json:"bankSource"`
	Date        Date       `json:"date"`
	Amount      float64    `json:"amount"`
	Description string     `json:"description,omitempty"`
	RawRow      string     `json:"rawRow,omitempty"`
}

// ExceptionRecord is a declared adjustment (discount, cash payment,
// cancellation, no-show or acquirer fee) explaining why an entry and a
// deposit may not match exactly. Created by collaborators before a run; the
// engine only reads it.
type ExceptionRecord struct {
	ID             string          `json:"id"`
	WeekID         string          `json:"weekId"`
	Type           ExceptionType   `json:"type"`
	ReservationID  string          `json:"reservationId,omitempty"`
	GuestName      string          `json:"guestName,omitempty"`
	OriginalAmount *float64        `json:"originalAmount,omitempty"`
	FinalAmount    *float64        `json:"finalAmount,omitempty"`
	DiscountAmount *float64        `json:"discountAmount,omitempty"`
	DiscountPct    *float64        `json:"discountPct,omitempty"`
	Reason         string          `json:"reason,omitempty"`
	Source         ExceptionSource `json:"source"`
	SourceRaw      string          `json:"sourceRaw,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// MatchResult is the engine's verdict for one entry or one leftover bank
// record. AmountDiff is signed (bank − expected). Identity and timestamps
// are assigned by storage, never here.
type MatchResult struct {
	WeekID       string      `json:"weekId"`
	EntryID      string      `json:"entryId,omitempty"`
	BankRecordID string      `json:"bankRecordId,omitempty"`
	ExceptionID  string      `json:"exceptionId,omitempty"`
	Rule         Rule        `json:"-"`
	Status       MatchStatus `json:"status"`
	MatchType    MatchType   `json:"matchType"`
	Confidence   float64     `json:"confidence"`
	DateDiffDays *int        `json:"dateDiffDays,omitempty"`
	AmountDiff   *float64    `json:"amountDiff,omitempty"`
	Notes        string      `json:"notes,omitempty"`
}

// MatchRecord is the persisted form of a MatchResult. AdminNote is
// human-authored and must be non-blank on every red match before the week
// can close.
type MatchRecord struct {
	ID string `json:"id"`
	MatchResult
	AdminNote string    `json:"adminNote,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
