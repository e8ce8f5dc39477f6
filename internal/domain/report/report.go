// Package report builds the weekly report consumed by admins and directors.
// Everything here is a pure projection over the engine's output and the
// week's exceptions; rendering and export are someone else's problem.
package report

import (
	"sort"

	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
)

// StatusCounts tallies matches per review color.
type StatusCounts struct {
	Green  int `json:"green"`
	Yellow int `json:"yellow"`
	Orange int `json:"orange"`
	Red    int `json:"red"`
	Blue   int `json:"blue"`
}

func (c *StatusCounts) add(status recon.MatchStatus) {
	switch status {
	case recon.StatusGreen:
		c.Green++
	case recon.StatusYellow:
		c.Yellow++
	case recon.StatusOrange:
		c.Orange++
	case recon.StatusRed:
		c.Red++
	case recon.StatusBlue:
		c.Blue++
	}
}

// Reconciled is the number of matches considered settled (green + yellow).
func (c StatusCounts) Reconciled() int { return c.Green + c.Yellow }

// Pending is the number of matches still demanding attention.
func (c StatusCounts) Pending() int { return c.Red + c.Orange + c.Blue }

// Summary holds the week's headline totals.
type Summary struct {
	ExpectedTotal float64      `json:"expectedTotal"`
	ReceivedTotal float64      `json:"receivedTotal"`
	DiffTotal     float64      `json:"diffTotal"`
	ByStatus      StatusCounts `json:"byStatus"`
}

// ReasonCount is one row of the discount reason ranking.
type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// DiscountSummary aggregates the week's discount-type exceptions.
type DiscountSummary struct {
	Rows       []recon.ExceptionRecord `json:"rows"`
	Total      float64                 `json:"total"`
	TopReasons []ReasonCount           `json:"topReasons"`
}

// Weekly is the full report payload.
type Weekly struct {
	Summary   Summary                 `json:"summary"`
	Discounts DiscountSummary         `json:"discounts"`
	Actions   []recon.MatchRecord     `json:"actions"`
	Matches   []recon.MatchRecord     `json:"matches"`
}

// Metrics is the compact week overview shown in listings.
type Metrics struct {
	TotalEntries     int          `json:"totalEntries"`
	TotalBankRecords int          `json:"totalBankRecords"`
	TotalMatches     int          `json:"totalMatches"`
	PendingCount     int          `json:"pendingCount"`
	ReconciledPct    float64      `json:"reconciledPct"`
	ByStatus         StatusCounts `json:"byStatus"`
	ExpectedTotal    float64      `json:"expectedTotal"`
	ReceivedTotal    float64      `json:"receivedTotal"`
	DiffTotal        float64      `json:"diffTotal"`
}

// Build assembles the weekly report from a week's records.
func Build(entries []recon.Entry, bankRecords []recon.BankRecord, exceptions []recon.ExceptionRecord, matches []recon.MatchRecord) Weekly {
	summary := Summary{}
	for _, e := range entries {
		summary.ExpectedTotal += e.Amount
	}
	for _, b := range bankRecords {
		summary.ReceivedTotal += b.Amount
	}
	summary.DiffTotal = summary.ReceivedTotal - summary.ExpectedTotal

	actions := make([]recon.MatchRecord, 0)
	for _, m := range matches {
		summary.ByStatus.add(m.Status)
		if m.Status == recon.StatusRed || m.Status == recon.StatusBlue {
			actions = append(actions, m)
		}
	}

	return Weekly{
		Summary:   summary,
		Discounts: summarizeDiscounts(exceptions),
		Actions:   actions,
		Matches:   matches,
	}
}

// BuildMetrics computes the listing overview for one week.
func BuildMetrics(entries []recon.Entry, bankRecords []recon.BankRecord, matches []recon.MatchRecord) Metrics {
	m := Metrics{
		TotalEntries:     len(entries),
		TotalBankRecords: len(bankRecords),
		TotalMatches:     len(matches),
	}
	for _, e := range entries {
		m.ExpectedTotal += e.Amount
	}
	for _, b := range bankRecords {
		m.ReceivedTotal += b.Amount
	}
	m.DiffTotal = m.ReceivedTotal - m.ExpectedTotal

	for _, match := range matches {
		m.ByStatus.add(match.Status)
	}
	m.PendingCount = m.ByStatus.Pending()
	if m.TotalEntries > 0 {
		m.ReconciledPct = float64(m.ByStatus.Reconciled()) / float64(m.TotalEntries) * 100
	}
	return m
}

// summarizeDiscounts totals discount amounts and ranks the top five reasons
// by occurrence. Ties rank alphabetically so the output is stable.
func summarizeDiscounts(exceptions []recon.ExceptionRecord) DiscountSummary {
	rows := make([]recon.ExceptionRecord, 0)
	reasons := make(map[string]int)
	var total float64

	for _, exc := range exceptions {
		if exc.Type != recon.ExceptionDiscount {
			continue
		}
		rows = append(rows, exc)
		if exc.DiscountAmount != nil {
			total += *exc.DiscountAmount
		}
		reason := exc.Reason
		if reason == "" {
			reason = "Sem motivo"
		}
		reasons[reason]++
	}

	top := make([]ReasonCount, 0, len(reasons))
	for reason, count := range reasons {
		top = append(top, ReasonCount{Reason: reason, Count: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Reason < top[j].Reason
	})
	if len(top) > 5 {
		top = top[:5]
	}

	return DiscountSummary{Rows: rows, Total: total, TopReasons: top}
}
