package recon

import (
	"fmt"
	"sort"
)

// Input is one week's in-memory snapshot. CieloFeePct is the acquirer fee as
// a decimal fraction, resolved by the caller (config or request override);
// the engine never reads process-wide state.
type Input struct {
	WeekID      string
	Entries     []Entry
	BankRecords []BankRecord
	Exceptions  []ExceptionRecord
	CieloFeePct float64
}

// Reconcile runs the rule waterfall over a week's snapshot and returns the
// complete match set: exactly one result per entry, plus one blue result per
// bank record no entry claimed. It is deterministic for identical inputs and
// never fails; absence of a correspondence is data (red/blue), not an error.
//
// Entries are processed in descending amount order so larger receivables get
// first pick among similarly-priced deposits. Equal amounts keep their input
// order, which makes rerun output identical. Each bank record is claimed at
// most once and never given back: a weaker rule firing for an earlier entry
// wins over a stronger rule a later entry might have had.
func Reconcile(in Input) []MatchResult {
	results := make([]MatchResult, 0, len(in.Entries)+len(in.BankRecords))
	used := make(map[string]bool, len(in.BankRecords))

	entries := make([]Entry, len(in.Entries))
	copy(entries, in.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Amount > entries[j].Amount
	})

	for _, entry := range entries {
		results = append(results, matchEntry(in, entry, used))
	}

	for _, bank := range in.BankRecords {
		if used[bank.ID] {
			continue
		}
		results = append(results, newResult(in.WeekID, RuleUnidentified, MatchResult{
			BankRecordID: bank.ID,
			Notes:        "Pagamento sem origem no PMS",
		}))
	}

	return results
}

// matchEntry tries each rule in strict priority order against the bank
// records not yet claimed. The first hypothesis that qualifies wins.
func matchEntry(in Input, entry Entry, used map[string]bool) MatchResult {
	exception := findException(entry, in.Exceptions)

	if bank := claim(in.BankRecords, used, func(b BankRecord) bool { return directRule(entry, b) }); bank != nil {
		return newResult(in.WeekID, RuleDirect, MatchResult{
			EntryID:      entry.ID,
			BankRecordID: bank.ID,
			DateDiffDays: intPtr(0),
			AmountDiff:   floatPtr(bank.Amount - entry.Amount),
			Notes:        "Matching direto",
		})
	}

	if bank := claim(in.BankRecords, used, func(b BankRecord) bool { return acquirerFeeRule(entry, b, in.CieloFeePct) }); bank != nil {
		netExpected := entry.Amount * (1 - in.CieloFeePct)
		return newResult(in.WeekID, RuleAcquirerFee, MatchResult{
			EntryID:      entry.ID,
			BankRecordID: bank.ID,
			DateDiffDays: intPtr(absDays(entry, *bank)),
			AmountDiff:   floatPtr(bank.Amount - netExpected),
			Notes:        fmt.Sprintf("Taxa adquirente Cielo %.2f%%", in.CieloFeePct*100),
		})
	}

	if exception != nil {
		if bank := claim(in.BankRecords, used, func(b BankRecord) bool { return discountRule(exception, b) }); bank != nil {
			return newResult(in.WeekID, RuleDiscount, MatchResult{
				EntryID:      entry.ID,
				BankRecordID: bank.ID,
				ExceptionID:  exception.ID,
				DateDiffDays: intPtr(absDays(entry, *bank)),
				AmountDiff:   floatPtr(bank.Amount - entry.Amount),
				Notes:        "Desconto registrado",
			})
		}
	}

	if settlementFreeRule(exception) {
		return newResult(in.WeekID, RuleException, MatchResult{
			EntryID:     entry.ID,
			ExceptionID: exception.ID,
			Notes:       fmt.Sprintf("Exceção: %s", exception.Type),
		})
	}

	if bank := claim(in.BankRecords, used, func(b BankRecord) bool { return dateTolerantRule(entry, b) }); bank != nil {
		return newResult(in.WeekID, RuleDateTolerant, MatchResult{
			EntryID:      entry.ID,
			BankRecordID: bank.ID,
			DateDiffDays: intPtr(absDays(entry, *bank)),
			AmountDiff:   floatPtr(bank.Amount - entry.Amount),
			Notes:        "Valor igual com tolerância de data (<=2 dias)",
		})
	}

	if bank := claim(in.BankRecords, used, func(b BankRecord) bool { return amountApproxRule(entry, b) }); bank != nil {
		return newResult(in.WeekID, RuleAmountApprox, MatchResult{
			EntryID:      entry.ID,
			BankRecordID: bank.ID,
			DateDiffDays: intPtr(absDays(entry, *bank)),
			AmountDiff:   floatPtr(bank.Amount - entry.Amount),
			Notes:        "Valor aproximado (<=5%) e data <=2 dias",
		})
	}

	return newResult(in.WeekID, RuleUnmatched, MatchResult{
		EntryID: entry.ID,
		Notes:   "Entrada sem correspondência bancária",
	})
}

// findException returns the first exception linked to the entry, preferring
// reservation id equality and falling back to guest name. First in input
// order wins; there is no further ambiguity resolution.
func findException(entry Entry, exceptions []ExceptionRecord) *ExceptionRecord {
	for i := range exceptions {
		exc := &exceptions[i]
		if entry.ReservationID != "" && exc.ReservationID != "" && exc.ReservationID == entry.ReservationID {
			return exc
		}
		if entry.GuestName != "" && exc.GuestName != "" && exc.GuestName == entry.GuestName {
			return exc
		}
	}
	return nil
}

// claim returns the first unconsumed bank record satisfying pred and marks
// it used, or nil when none qualifies.
func claim(records []BankRecord, used map[string]bool, pred func(BankRecord) bool) *BankRecord {
	for i := range records {
		if used[records[i].ID] {
			continue
		}
		if pred(records[i]) {
			used[records[i].ID] = true
			return &records[i]
		}
	}
	return nil
}

// newResult stamps the rule's verdict (type, status, confidence) onto a
// partially filled result.
func newResult(weekID string, rule Rule, r MatchResult) MatchResult {
	r.WeekID = weekID
	r.Rule = rule
	r.MatchType, r.Status = Classify(rule)
	r.Confidence = Confidence(rule)
	return r
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
