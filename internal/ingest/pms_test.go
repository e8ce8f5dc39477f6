package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntries_PortugueseHeaders(t *testing.T) {
	rows := []Row{
		{"Data": "10/03/2026", "Valor": "R$ 350,00", "Hóspede": "Ana Souza", "Reserva": "R-1001"},
		{"Data": "11/03/2026", "Valor": "1.200,00", "Hóspede": "Bruno Lima", "Reserva": "R-1002"},
	}

	entries := ParseEntries("w1", rows, nil)

	require.Len(t, entries, 2)
	assert.Equal(t, "w1", entries[0].WeekID)
	assert.Equal(t, "Ana Souza", entries[0].GuestName)
	assert.Equal(t, "R-1001", entries[0].ReservationID)
	assert.Equal(t, 350.00, entries[0].Amount)
	assert.Equal(t, "2026-03-10", entries[0].Date.String())
	assert.Equal(t, 1200.00, entries[1].Amount)
}

func TestParseEntries_DropsInvalidRows(t *testing.T) {
	rows := []Row{
		{"Data": "10/03/2026", "Valor": "100,00", "Hóspede": "Ok"},
		{"Data": "not a date", "Valor": "100,00", "Hóspede": "Bad date"},
		{"Data": "10/03/2026", "Valor": "0", "Hóspede": "Zero amount"},
		{"Data": "10/03/2026", "Valor": "-50,00", "Hóspede": "Refund"},
		{"Data": "10/03/2026", "Valor": "100,00", "Hóspede": ""},
	}

	entries := ParseEntries("w1", rows, nil)

	require.Len(t, entries, 1)
	assert.Equal(t, "Ok", entries[0].GuestName)
}

func TestParseEntries_MappingOverride(t *testing.T) {
	rows := []Row{
		{"dia": "2026-03-10", "pago": "220,00", "quem": "Carla"},
	}
	mapping := &PMSMapping{Date: "dia", Amount: "pago", GuestName: "quem"}

	entries := ParseEntries("w1", rows, mapping)

	require.Len(t, entries, 1)
	assert.Equal(t, "Carla", entries[0].GuestName)
	assert.Equal(t, 220.00, entries[0].Amount)
}

func TestParseEntries_KeepsRawRow(t *testing.T) {
	rows := []Row{
		{"Data": "10/03/2026", "Valor": "100,00", "Hóspede": "Ana"},
	}

	entries := ParseEntries("w1", rows, nil)

	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].RawRow, "Hóspede")
}
