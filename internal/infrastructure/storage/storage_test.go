package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
	"github.com/villamar/pousada-recon-backend/internal/domain/week"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createTestWeek(t *testing.T, s *Storage) *week.Week {
	t.Helper()
	w := &week.Week{
		Name:      "Semana 10",
		StartDate: recon.NewDate(2026, 3, 9),
		EndDate:   recon.NewDate(2026, 3, 15),
	}
	require.NoError(t, s.CreateWeek(w))
	return w
}

func TestCreateAndGetWeek(t *testing.T) {
	s := newTestStorage(t)

	w := createTestWeek(t, s)
	require.NotEmpty(t, w.ID)
	assert.Equal(t, week.StatusOpen, w.Status)

	got, err := s.GetWeek(w.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, w.ID, got.ID)
	assert.Equal(t, "Semana 10", got.Name)
	assert.Equal(t, "2026-03-09", got.StartDate.String())
	assert.Empty(t, got.DirectorToken)
	assert.Nil(t, got.ClosedAt)
}

func TestGetWeek_MissingIsNil(t *testing.T) {
	s := newTestStorage(t)

	got, err := s.GetWeek("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListWeeks_MostRecentFirst(t *testing.T) {
	s := newTestStorage(t)

	older := &week.Week{Name: "old", StartDate: recon.NewDate(2026, 3, 2), EndDate: recon.NewDate(2026, 3, 8)}
	newer := &week.Week{Name: "new", StartDate: recon.NewDate(2026, 3, 9), EndDate: recon.NewDate(2026, 3, 15)}
	require.NoError(t, s.CreateWeek(older))
	require.NoError(t, s.CreateWeek(newer))

	weeks, err := s.ListWeeks()
	require.NoError(t, err)
	require.Len(t, weeks, 2)
	assert.Equal(t, "new", weeks[0].Name)
	assert.Equal(t, "old", weeks[1].Name)
}

func TestSetWeekStatus(t *testing.T) {
	s := newTestStorage(t)
	w := createTestWeek(t, s)

	require.NoError(t, s.SetWeekStatus(w.ID, week.StatusReconciled))

	got, err := s.GetWeek(w.ID)
	require.NoError(t, err)
	assert.Equal(t, week.StatusReconciled, got.Status)

	assert.ErrorIs(t, s.SetWeekStatus("nope", week.StatusOpen), week.ErrNotFound)
}

func TestCloseWeek(t *testing.T) {
	s := newTestStorage(t)
	w := createTestWeek(t, s)
	closedAt := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.CloseWeek(w.ID, "token-123", closedAt))

	got, err := s.GetWeek(w.ID)
	require.NoError(t, err)
	assert.Equal(t, week.StatusClosed, got.Status)
	assert.Equal(t, "token-123", got.DirectorToken)
	require.NotNil(t, got.ClosedAt)
	assert.True(t, got.ClosedAt.Equal(closedAt))

	assert.ErrorIs(t, s.CloseWeek("nope", "t", closedAt), week.ErrNotFound)
}

func TestReplaceEntries(t *testing.T) {
	s := newTestStorage(t)
	w := createTestWeek(t, s)

	first, err := s.ReplaceEntries(w.ID, []recon.Entry{
		{GuestName: "Ana", Amount: 100, Date: recon.NewDate(2026, 3, 10)},
		{GuestName: "Bruno", Amount: 300, Date: recon.NewDate(2026, 3, 11)},
	})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.NotEmpty(t, first[0].ID)

	// Re-import fully replaces the previous set.
	second, err := s.ReplaceEntries(w.ID, []recon.Entry{
		{GuestName: "Carla", Amount: 200, Date: recon.NewDate(2026, 3, 12)},
	})
	require.NoError(t, err)
	require.Len(t, second, 1)

	listed, err := s.ListEntries(w.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Carla", listed[0].GuestName)
}

func TestListEntries_LargestFirst(t *testing.T) {
	s := newTestStorage(t)
	w := createTestWeek(t, s)

	_, err := s.ReplaceEntries(w.ID, []recon.Entry{
		{GuestName: "small", Amount: 50, Date: recon.NewDate(2026, 3, 10)},
		{GuestName: "big", Amount: 500, Date: recon.NewDate(2026, 3, 10)},
	})
	require.NoError(t, err)

	listed, err := s.ListEntries(w.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "big", listed[0].GuestName)
}

func TestAppendBankRecords(t *testing.T) {
	s := newTestStorage(t)
	w := createTestWeek(t, s)

	batch1, err := s.AppendBankRecords([]recon.BankRecord{
		{WeekID: w.ID, BankSource: recon.SourcePix, Amount: 100, Date: recon.NewDate(2026, 3, 10)},
	})
	require.NoError(t, err)
	require.Len(t, batch1, 1)

	// Imports accumulate across calls.
	_, err = s.AppendBankRecords([]recon.BankRecord{
		{WeekID: w.ID, BankSource: recon.SourceCielo, Amount: 960, Date: recon.NewDate(2026, 3, 12), Description: "settlement"},
	})
	require.NoError(t, err)

	listed, err := s.ListBankRecords(w.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, recon.SourceCielo, listed[0].BankSource)
	assert.Equal(t, "settlement", listed[0].Description)
}

func TestExceptionsCRUD(t *testing.T) {
	s := newTestStorage(t)
	w := createTestWeek(t, s)
	final := 400.0

	saved, err := s.AppendExceptions([]recon.ExceptionRecord{{
		WeekID:      w.ID,
		Type:        recon.ExceptionDiscount,
		GuestName:   "Ana",
		FinalAmount: &final,
		Reason:      "cliente fiel",
		Source:      recon.FromManual,
	}})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.NotEmpty(t, saved[0].ID)
	assert.False(t, saved[0].CreatedAt.IsZero())

	newReason := "ajuste de tarifa"
	newType := recon.ExceptionCash
	updated, err := s.UpdateException(saved[0].ID, ExceptionPatch{
		Reason: &newReason,
		Type:   &newType,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "ajuste de tarifa", updated.Reason)
	assert.Equal(t, recon.ExceptionCash, updated.Type)
	require.NotNil(t, updated.FinalAmount)
	assert.Equal(t, 400.0, *updated.FinalAmount)

	missing, err := s.UpdateException("nope", ExceptionPatch{Reason: &newReason})
	require.NoError(t, err)
	assert.Nil(t, missing)

	deleted, err := s.DeleteException(saved[0].ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteException(saved[0].ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	listed, err := s.ListExceptions(w.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestReplaceMatches(t *testing.T) {
	s := newTestStorage(t)
	w := createTestWeek(t, s)

	results := []recon.MatchResult{
		{WeekID: w.ID, EntryID: "e1", BankRecordID: "b1", Status: recon.StatusGreen, MatchType: recon.MatchDirect, Confidence: 1},
		{WeekID: w.ID, EntryID: "e2", Status: recon.StatusRed, MatchType: recon.MatchUnmatched},
	}

	saved, err := s.ReplaceMatches(w.ID, results)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.NotEmpty(t, saved[0].ID)
	assert.NotEqual(t, saved[0].ID, saved[1].ID)

	// A second run discards the first run's matches and notes.
	note := "pago em especie"
	_, err = s.UpdateMatch(saved[1].ID, MatchPatch{AdminNote: &note})
	require.NoError(t, err)

	rerun, err := s.ReplaceMatches(w.ID, results[:1])
	require.NoError(t, err)
	require.Len(t, rerun, 1)

	listed, err := s.ListMatches(w.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "e1", listed[0].EntryID)
	assert.Empty(t, listed[0].AdminNote)
}

func TestUpdateMatch(t *testing.T) {
	s := newTestStorage(t)
	w := createTestWeek(t, s)

	saved, err := s.ReplaceMatches(w.ID, []recon.MatchResult{
		{WeekID: w.ID, EntryID: "e1", Status: recon.StatusRed, MatchType: recon.MatchUnmatched},
	})
	require.NoError(t, err)

	note := "hóspede pagará depois"
	status := recon.StatusYellow
	updated, err := s.UpdateMatch(saved[0].ID, MatchPatch{AdminNote: &note, Status: &status})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, note, updated.AdminNote)
	assert.Equal(t, recon.StatusYellow, updated.Status)

	got, err := s.GetMatch(saved[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, note, got.AdminNote)

	missing, err := s.GetMatch("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMatchRoundTripPreservesDiffs(t *testing.T) {
	s := newTestStorage(t)
	w := createTestWeek(t, s)
	days := 2
	diff := -12.5

	saved, err := s.ReplaceMatches(w.ID, []recon.MatchResult{{
		WeekID:       w.ID,
		EntryID:      "e1",
		BankRecordID: "b1",
		Status:       recon.StatusOrange,
		MatchType:    recon.MatchInferred,
		Confidence:   0.5,
		DateDiffDays: &days,
		AmountDiff:   &diff,
		Notes:        "Valor aproximado",
	}})
	require.NoError(t, err)

	got, err := s.GetMatch(saved[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.DateDiffDays)
	assert.Equal(t, 2, *got.DateDiffDays)
	require.NotNil(t, got.AmountDiff)
	assert.Equal(t, -12.5, *got.AmountDiff)
	assert.Equal(t, 0.5, got.Confidence)
}
