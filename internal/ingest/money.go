// Package ingest normalizes raw import data — locale-ambiguous money
// strings, mixed date formats, bank CSV dialects and WhatsApp free text —
// into the typed records the reconciliation engine consumes. Rows that fail
// normalization are filtered out here; malformed records never reach the
// engine.
package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
)

// ParseMoney resolves a Brazilian or international money string to a value.
// "1.234,56" and "1,234.56" both mean 1234.56: whichever separator occurs
// last is the decimal mark. Currency symbols and spaces are stripped.
// Unparseable input yields 0 so row filters can drop it.
func ParseMoney(input string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '.', r == '-':
			return r
		}
		return -1
	}, strings.ReplaceAll(strings.ReplaceAll(input, "R$", ""), "r$", ""))

	if cleaned == "" {
		return 0
	}

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")

	var normalized string
	switch {
	case lastComma > -1 && lastDot > -1:
		if lastComma > lastDot {
			normalized = strings.ReplaceAll(cleaned, ".", "")
			normalized = strings.Replace(normalized, ",", ".", 1)
		} else {
			normalized = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma > -1:
		normalized = strings.Replace(cleaned, ",", ".", 1)
	default:
		normalized = cleaned
	}

	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0
	}
	return value
}

// dateFormats ordered by how often each shows up in the bank exports.
var dateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
}

// ParseFlexibleDate accepts ISO and Brazilian date notations, ignoring any
// trailing time-of-day. ok is false when nothing matches.
func ParseFlexibleDate(input string) (recon.Date, bool) {
	raw := strings.TrimSpace(input)
	if len(raw) > 10 {
		raw = raw[:10]
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return recon.DateOf(t), true
		}
	}
	return recon.Date{}, false
}

// RoundCents rounds a parsed amount to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
