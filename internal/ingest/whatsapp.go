package ingest

import (
	"regexp"
	"strings"

	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
)

// WhatsApp messages are semi-structured: the guest name on the first line,
// amounts marked with R$ and a free-text reason. These patterns match the
// phrasings the staff actually uses.
var (
	originalAmountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:de\s*R\$|era\s*R\$|original\s*R\$|valor\s*original\s*R\$)\s*([\d.,]+)`),
		regexp.MustCompile(`(?i)R\$\s*([\d.,]+)\s*(?:original|antes)`),
	}
	finalAmountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:para\s*R\$|pagou\s*R\$|recebeu\s*R\$|ficou\s*R\$|valor\s*final\s*R\$)\s*([\d.,]+)`),
	}
	reasonPattern = regexp.MustCompile(`(?im)(?:motivo\s*:\s*|porque\s+|por conta de\s+)(.+)$`)
)

// ParsedException is a draft exception extracted from free text, plus how
// confident the parser is (fraction of name/original/final it could find).
// The admin reviews the draft before it is saved.
type ParsedException struct {
	recon.ExceptionRecord
	Confidence float64 `json:"confidence"`
}

// ParseWhatsApp extracts an exception draft from a pasted WhatsApp message.
func ParseWhatsApp(text string) ParsedException {
	trimmed := strings.TrimSpace(text)

	var guestName string
	for _, line := range strings.Split(trimmed, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			guestName = line
			break
		}
	}

	originalAmount := firstAmount(trimmed, originalAmountPatterns)
	finalAmount := firstAmount(trimmed, finalAmountPatterns)

	var discountAmount, discountPct float64
	if originalAmount > finalAmount {
		discountAmount = originalAmount - finalAmount
	}
	if originalAmount > 0 {
		discountPct = discountAmount / originalAmount * 100
	}

	reason := ""
	if m := reasonPattern.FindStringSubmatch(trimmed); m != nil {
		reason = strings.TrimSpace(m[1])
	}

	found := 0
	for _, present := range []bool{guestName != "", originalAmount > 0, finalAmount > 0} {
		if present {
			found++
		}
	}

	parsed := ParsedException{
		ExceptionRecord: recon.ExceptionRecord{
			Type:      guessExceptionType(trimmed),
			GuestName: guestName,
			Reason:    reason,
			Source:    recon.FromWhatsApp,
			SourceRaw: trimmed,
		},
		Confidence: float64(found) / 3,
	}
	if originalAmount > 0 {
		parsed.OriginalAmount = &originalAmount
	}
	if finalAmount > 0 {
		parsed.FinalAmount = &finalAmount
	}
	if discountAmount > 0 {
		parsed.DiscountAmount = &discountAmount
	}
	if discountPct > 0 {
		parsed.DiscountPct = &discountPct
	}
	return parsed
}

func firstAmount(text string, patterns []*regexp.Regexp) float64 {
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return RoundCents(ParseMoney(m[1]))
		}
	}
	return 0
}

func guessExceptionType(text string) recon.ExceptionType {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "cash"), strings.Contains(lower, "dinheiro"):
		return recon.ExceptionCash
	case strings.Contains(lower, "cancel"):
		return recon.ExceptionCancellation
	case strings.Contains(lower, "no-show"), strings.Contains(lower, "noshow"), strings.Contains(lower, "não veio"):
		return recon.ExceptionNoShow
	}
	return recon.ExceptionDiscount
}
