// Package week owns the reconciliation week lifecycle: the
// open → reconciled → closed state machine and the gate a week must pass
// before it can close.
package week

import (
	"errors"
	"strings"
	"time"

	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
)

// Status is a week's lifecycle state. Closed is terminal and reachable only
// through the dedicated close operation.
type Status string

const (
	StatusOpen       Status = "open"
	StatusReconciled Status = "reconciled"
	StatusClosed     Status = "closed"
)

// Domain errors. Both closing failures are distinct, user-actionable
// conditions and must be surfaced as such.
var (
	ErrNotFound      = errors.New("week not found")
	ErrRedNeedsNote  = errors.New("red matches need an admin note before closing")
	ErrClosed        = errors.New("week is closed")
	ErrInvalidStatus = errors.New("invalid week status")
)

// Week is one reconciliation period. DirectorToken is the sole credential
// for external read-only access to the week's report; it is minted on first
// close, reused on re-close and never rotated.
type Week struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	StartDate     recon.Date `json:"startDate"`
	EndDate       recon.Date `json:"endDate"`
	Status        Status     `json:"status"`
	DirectorToken string     `json:"directorToken,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	ClosedAt      *time.Time `json:"closedAt,omitempty"`
}

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s Status) bool {
	switch s {
	case StatusOpen, StatusReconciled, StatusClosed:
		return true
	}
	return false
}

// CanSetStatus guards the generic status setter. Open and reconciled are
// mutually reachable; closed can never be entered here (closing has side
// effects owned by the close operation) and never left at all.
func CanSetStatus(current, next Status) error {
	if !ValidStatus(next) {
		return ErrInvalidStatus
	}
	if current == StatusClosed || next == StatusClosed {
		return ErrClosed
	}
	return nil
}

// ValidateClose enforces the closing gate: every red match must carry a
// non-blank admin note explaining what was done about it.
func ValidateClose(matches []recon.MatchRecord) error {
	for _, m := range matches {
		if m.Status == recon.StatusRed && strings.TrimSpace(m.AdminNote) == "" {
			return ErrRedNeedsNote
		}
	}
	return nil
}
