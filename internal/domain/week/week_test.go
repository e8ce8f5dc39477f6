package week

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
)

func TestCanSetStatus(t *testing.T) {
	assert.NoError(t, CanSetStatus(StatusOpen, StatusReconciled))
	assert.NoError(t, CanSetStatus(StatusReconciled, StatusOpen))
	assert.NoError(t, CanSetStatus(StatusOpen, StatusOpen))
}

func TestCanSetStatus_ClosedIsUnreachable(t *testing.T) {
	assert.ErrorIs(t, CanSetStatus(StatusOpen, StatusClosed), ErrClosed)
	assert.ErrorIs(t, CanSetStatus(StatusReconciled, StatusClosed), ErrClosed)
}

func TestCanSetStatus_ClosedIsImmutable(t *testing.T) {
	assert.ErrorIs(t, CanSetStatus(StatusClosed, StatusOpen), ErrClosed)
	assert.ErrorIs(t, CanSetStatus(StatusClosed, StatusReconciled), ErrClosed)
}

func TestCanSetStatus_UnknownStatus(t *testing.T) {
	assert.ErrorIs(t, CanSetStatus(StatusOpen, Status("archived")), ErrInvalidStatus)
}

func TestValidateClose_RedWithoutNoteBlocks(t *testing.T) {
	matches := []recon.MatchRecord{
		{MatchResult: recon.MatchResult{Status: recon.StatusGreen}},
		{MatchResult: recon.MatchResult{Status: recon.StatusRed}},
	}

	assert.ErrorIs(t, ValidateClose(matches), ErrRedNeedsNote)
}

func TestValidateClose_BlankNoteDoesNotCount(t *testing.T) {
	matches := []recon.MatchRecord{
		{MatchResult: recon.MatchResult{Status: recon.StatusRed}, AdminNote: "   \t"},
	}

	assert.ErrorIs(t, ValidateClose(matches), ErrRedNeedsNote)
}

func TestValidateClose_NotedRedPasses(t *testing.T) {
	matches := []recon.MatchRecord{
		{MatchResult: recon.MatchResult{Status: recon.StatusRed}, AdminNote: "hóspede pagará na próxima estadia"},
		{MatchResult: recon.MatchResult{Status: recon.StatusBlue}},
		{MatchResult: recon.MatchResult{Status: recon.StatusOrange}},
	}

	// Blue and orange never block closing; only unexplained reds do.
	assert.NoError(t, ValidateClose(matches))
}

func TestValidateClose_NoMatches(t *testing.T) {
	assert.NoError(t, ValidateClose(nil))
}
