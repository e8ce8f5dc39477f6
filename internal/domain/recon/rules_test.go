package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectRule_Boundaries(t *testing.T) {
	entry := makeEntry("e1", 100.00, day(10))

	assert.True(t, directRule(entry, makeBank("b", SourcePix, 100.00, day(10))))
	assert.True(t, directRule(entry, makeBank("b", SourcePix, 100.005, day(10))))
	assert.True(t, directRule(entry, makeBank("b", SourcePix, 99.995, day(10))))
	assert.False(t, directRule(entry, makeBank("b", SourcePix, 100.02, day(10))))
	assert.False(t, directRule(entry, makeBank("b", SourcePix, 100.00, day(11))))
}

func TestAcquirerFeeRule_Boundaries(t *testing.T) {
	entry := makeEntry("e1", 1000.00, day(10))

	// Net expected at 4%: 960.00, tolerance ±0.10.
	assert.True(t, acquirerFeeRule(entry, makeBank("b", SourceCielo, 960.00, day(20)), 0.04))
	assert.True(t, acquirerFeeRule(entry, makeBank("b", SourceCielo, 960.05, day(20)), 0.04))
	assert.False(t, acquirerFeeRule(entry, makeBank("b", SourceCielo, 960.20, day(20)), 0.04))
	assert.False(t, acquirerFeeRule(entry, makeBank("b", SourcePix, 960.00, day(20)), 0.04))
}

func TestDiscountRule_RequiresFinalAmount(t *testing.T) {
	bank := makeBank("b", SourcePix, 400.00, day(10))
	final := 400.00

	assert.True(t, discountRule(&ExceptionRecord{Type: ExceptionDiscount, FinalAmount: &final}, bank))
	assert.False(t, discountRule(&ExceptionRecord{Type: ExceptionDiscount}, bank))
	assert.False(t, discountRule(&ExceptionRecord{Type: ExceptionCash, FinalAmount: &final}, bank))
	assert.False(t, discountRule(nil, bank))
}

func TestSettlementFreeRule(t *testing.T) {
	assert.True(t, settlementFreeRule(&ExceptionRecord{Type: ExceptionCash}))
	assert.True(t, settlementFreeRule(&ExceptionRecord{Type: ExceptionCancellation}))
	assert.True(t, settlementFreeRule(&ExceptionRecord{Type: ExceptionNoShow}))
	assert.False(t, settlementFreeRule(&ExceptionRecord{Type: ExceptionDiscount}))
	assert.False(t, settlementFreeRule(&ExceptionRecord{Type: ExceptionAcquirerFee}))
	assert.False(t, settlementFreeRule(nil))
}

func TestDateTolerantRule_Window(t *testing.T) {
	entry := makeEntry("e1", 100.00, day(10))

	assert.True(t, dateTolerantRule(entry, makeBank("b", SourcePix, 100.00, day(8))))
	assert.True(t, dateTolerantRule(entry, makeBank("b", SourcePix, 100.00, day(12))))
	assert.False(t, dateTolerantRule(entry, makeBank("b", SourcePix, 100.00, day(13))))
	assert.False(t, dateTolerantRule(entry, makeBank("b", SourcePix, 100.50, day(11))))
}

func TestAmountApproxRule_Window(t *testing.T) {
	entry := makeEntry("e1", 200.00, day(10))

	assert.True(t, amountApproxRule(entry, makeBank("b", SourcePix, 190.00, day(10))))
	assert.True(t, amountApproxRule(entry, makeBank("b", SourcePix, 210.00, day(12))))
	assert.False(t, amountApproxRule(entry, makeBank("b", SourcePix, 188.00, day(10))))
	assert.False(t, amountApproxRule(entry, makeBank("b", SourcePix, 200.00, day(13))))
}

func TestPercentDiff_ZeroBase(t *testing.T) {
	assert.Equal(t, 0.0, percentDiff(0, 123.45))
}
