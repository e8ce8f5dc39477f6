// Package service orchestrates reconciliation runs and week closing on top
// of the pure domain packages and the storage layer.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
	"github.com/villamar/pousada-recon-backend/internal/domain/report"
	"github.com/villamar/pousada-recon-backend/internal/domain/week"
	"github.com/villamar/pousada-recon-backend/internal/infrastructure/storage"
)

// ReconService runs the matching engine for a week and drives the week
// lifecycle around it.
type ReconService struct {
	repo   storage.Repository
	logger *slog.Logger
	feePct float64
}

// NewReconService creates a ReconService. feePct is the default acquirer
// fee rate used when a run does not override it.
func NewReconService(repo storage.Repository, logger *slog.Logger, feePct float64) *ReconService {
	return &ReconService{
		repo:   repo,
		logger: logger,
		feePct: feePct,
	}
}

// ReconcileWeek loads the week's imported data, runs the matching engine
// and replaces the stored match set with the run's output. The week moves
// to reconciled. Closed weeks are immutable and refuse to run.
func (s *ReconService) ReconcileWeek(ctx context.Context, weekID string, feeOverride *float64) ([]recon.MatchRecord, error) {
	w, err := s.repo.GetWeek(weekID)
	if err != nil {
		return nil, fmt.Errorf("load week: %w", err)
	}
	if w == nil {
		return nil, week.ErrNotFound
	}
	if w.Status == week.StatusClosed {
		return nil, week.ErrClosed
	}

	entries, err := s.repo.ListEntries(weekID)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	bankRecords, err := s.repo.ListBankRecords(weekID)
	if err != nil {
		return nil, fmt.Errorf("load bank records: %w", err)
	}
	exceptions, err := s.repo.ListExceptions(weekID)
	if err != nil {
		return nil, fmt.Errorf("load exceptions: %w", err)
	}

	feePct := s.feePct
	if feeOverride != nil {
		feePct = *feeOverride
	}

	s.logger.InfoContext(ctx, "Starting reconciliation run",
		"week_id", weekID,
		"entries", len(entries),
		"bank_records", len(bankRecords),
		"exceptions", len(exceptions),
		"fee_pct", feePct)

	results := recon.Reconcile(recon.Input{
		WeekID:      weekID,
		Entries:     entries,
		BankRecords: bankRecords,
		Exceptions:  exceptions,
		CieloFeePct: feePct,
	})

	matches, err := s.repo.ReplaceMatches(weekID, results)
	if err != nil {
		return nil, fmt.Errorf("persist matches: %w", err)
	}

	if err := s.repo.SetWeekStatus(weekID, week.StatusReconciled); err != nil {
		return nil, fmt.Errorf("mark week reconciled: %w", err)
	}

	counts := statusCounts(matches)
	s.logger.InfoContext(ctx, "Reconciliation run complete",
		"week_id", weekID,
		"matches", len(matches),
		"green", counts[recon.StatusGreen],
		"yellow", counts[recon.StatusYellow],
		"orange", counts[recon.StatusOrange],
		"red", counts[recon.StatusRed],
		"blue", counts[recon.StatusBlue])

	return matches, nil
}

// CloseWeek closes a reconciled week. Every red match must already carry an
// admin note. The director token is minted on first close and kept on
// re-close, so previously shared report links keep working.
func (s *ReconService) CloseWeek(ctx context.Context, weekID string) (*week.Week, error) {
	w, err := s.repo.GetWeek(weekID)
	if err != nil {
		return nil, fmt.Errorf("load week: %w", err)
	}
	if w == nil {
		return nil, week.ErrNotFound
	}

	matches, err := s.repo.ListMatches(weekID)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}
	if err := week.ValidateClose(matches); err != nil {
		return nil, err
	}

	token := w.DirectorToken
	if token == "" {
		token = uuid.NewString()
	}

	if err := s.repo.CloseWeek(weekID, token, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("close week: %w", err)
	}

	s.logger.InfoContext(ctx, "Week closed", "week_id", weekID)

	return s.repo.GetWeek(weekID)
}

// WeekReport assembles the full report for a week from its stored data.
func (s *ReconService) WeekReport(ctx context.Context, weekID string) (*report.Weekly, error) {
	w, err := s.repo.GetWeek(weekID)
	if err != nil {
		return nil, fmt.Errorf("load week: %w", err)
	}
	if w == nil {
		return nil, week.ErrNotFound
	}

	entries, err := s.repo.ListEntries(weekID)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	bankRecords, err := s.repo.ListBankRecords(weekID)
	if err != nil {
		return nil, fmt.Errorf("load bank records: %w", err)
	}
	exceptions, err := s.repo.ListExceptions(weekID)
	if err != nil {
		return nil, fmt.Errorf("load exceptions: %w", err)
	}
	matches, err := s.repo.ListMatches(weekID)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}

	weekly := report.Build(entries, bankRecords, exceptions, matches)
	return &weekly, nil
}

func statusCounts(matches []recon.MatchRecord) map[recon.MatchStatus]int {
	counts := make(map[recon.MatchStatus]int, 5)
	for _, m := range matches {
		counts[m.Status]++
	}
	return counts
}
