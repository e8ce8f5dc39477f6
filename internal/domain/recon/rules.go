package recon

import "math"

// Matching tolerances. Exact-amount rules allow one cent of drift; the
// acquirer rule is looser because Cielo rounds its fee per installment.
const (
	amountTolerance   = 0.01
	acquirerTolerance = 0.10
	relativeTolerance = 0.05
	dateToleranceDays = 2
)

func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// percentDiff returns |target − base| / base, or 0 when base is 0.
func percentDiff(base, target float64) float64 {
	if base == 0 {
		return 0
	}
	return math.Abs((target - base) / base)
}

func absDays(entry Entry, bank BankRecord) int {
	d := entry.Date.DiffDays(bank.Date)
	if d < 0 {
		return -d
	}
	return d
}

// directRule: same amount (±0.01) on the same calendar date.
func directRule(entry Entry, bank BankRecord) bool {
	return approxEqual(entry.Amount, bank.Amount, amountTolerance) && absDays(entry, bank) == 0
}

// acquirerFeeRule: a Cielo settlement whose amount is the entry net of the
// configured fee percentage. No date constraint; card settlements lag by a
// variable number of days.
func acquirerFeeRule(entry Entry, bank BankRecord, feePct float64) bool {
	if bank.BankSource != SourceCielo {
		return false
	}
	netExpected := entry.Amount * (1 - feePct)
	return approxEqual(netExpected, bank.Amount, acquirerTolerance)
}

// discountRule: a declared discount exception whose final amount matches the
// deposit.
func discountRule(exception *ExceptionRecord, bank BankRecord) bool {
	if exception == nil || exception.Type != ExceptionDiscount || exception.FinalAmount == nil {
		return false
	}
	return approxEqual(*exception.FinalAmount, bank.Amount, amountTolerance)
}

// settlementFreeRule: cash, cancellation and no-show exceptions resolve an
// entry with no bank record at all.
func settlementFreeRule(exception *ExceptionRecord) bool {
	if exception == nil {
		return false
	}
	switch exception.Type {
	case ExceptionCash, ExceptionCancellation, ExceptionNoShow:
		return true
	}
	return false
}

// dateTolerantRule: exact amount, up to two days of date drift.
func dateTolerantRule(entry Entry, bank BankRecord) bool {
	return approxEqual(entry.Amount, bank.Amount, amountTolerance) && absDays(entry, bank) <= dateToleranceDays
}

// amountApproxRule: amount within 5% and up to two days of date drift.
func amountApproxRule(entry Entry, bank BankRecord) bool {
	return percentDiff(entry.Amount, bank.Amount) <= relativeTolerance && absDays(entry, bank) <= dateToleranceDays
}
