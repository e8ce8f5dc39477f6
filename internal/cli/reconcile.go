package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/villamar/pousada-recon-backend/internal/application/service"
	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
	"github.com/villamar/pousada-recon-backend/internal/infrastructure/config"
	"github.com/villamar/pousada-recon-backend/internal/infrastructure/logging"
	"github.com/villamar/pousada-recon-backend/internal/infrastructure/storage"
)

// RunReconcile runs the matching engine for one week from the command line
// and prints a status breakdown.
func RunReconcile(cfg *config.Config, flags *ReconcileFlags) error {
	if flags.WeekID == "" {
		return errors.New("-week is required")
	}

	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "reconcile")

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	svc := service.NewReconService(store, logger, cfg.Recon.CieloFeePct)

	var feeOverride *float64
	if flags.FeePct >= 0 {
		feeOverride = &flags.FeePct
	}

	matches, err := svc.ReconcileWeek(context.Background(), flags.WeekID, feeOverride)
	if err != nil {
		return err
	}

	PrintRunSummary(flags.WeekID, matches)
	return nil
}

// PrintRunSummary prints the reconciliation result breakdown.
func PrintRunSummary(weekID string, matches []recon.MatchRecord) {
	counts := map[recon.MatchStatus]int{}
	for _, m := range matches {
		counts[m.Status]++
	}

	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Week %s: %d matches\n", weekID, len(matches))
	fmt.Printf("  green=%d yellow=%d orange=%d red=%d blue=%d\n",
		counts[recon.StatusGreen],
		counts[recon.StatusYellow],
		counts[recon.StatusOrange],
		counts[recon.StatusRed],
		counts[recon.StatusBlue])

	pending := counts[recon.StatusRed] + counts[recon.StatusOrange] + counts[recon.StatusBlue]
	if pending > 0 {
		fmt.Printf("\n%d matches still need review before the week can close\n", pending)
	}
}
