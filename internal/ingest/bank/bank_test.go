package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
	"github.com/villamar/pousada-recon-backend/internal/ingest"
)

func TestParseBradesco(t *testing.T) {
	rows := []ingest.Row{
		{"Data": "10/03/2026", "Valor": "1.234,56", "Histórico": "TED RECEBIDA"},
		{"Data": "11/03/2026", "Valor": "-50,00", "Histórico": "TARIFA"},
	}

	records := ParseBradesco("w1", rows)

	require.Len(t, records, 1)
	assert.Equal(t, recon.SourceBradesco, records[0].BankSource)
	assert.Equal(t, 1234.56, records[0].Amount)
	assert.Equal(t, "2026-03-10", records[0].Date.String())
	assert.Equal(t, "TED RECEBIDA", records[0].Description)
}

func TestParseCaixa(t *testing.T) {
	rows := []ingest.Row{
		{"Data": "10/03/2026", "Valor (R$)": "220,00", "Lançamento": "DEPÓSITO"},
	}

	records := ParseCaixa("w1", rows)

	require.Len(t, records, 1)
	assert.Equal(t, recon.SourceCaixa, records[0].BankSource)
	assert.Equal(t, 220.00, records[0].Amount)
}

func TestParsePix(t *testing.T) {
	rows := []ingest.Row{
		{"Horário": "2026-03-10 09:15:00", "Valor": "350,00", "Origem": "Ana Souza"},
	}

	records := ParsePix("w1", rows)

	require.Len(t, records, 1)
	assert.Equal(t, recon.SourcePix, records[0].BankSource)
	assert.Equal(t, "2026-03-10", records[0].Date.String())
	assert.Equal(t, "Ana Souza", records[0].Description)
}

func TestParseCielo_PrefersNetAmount(t *testing.T) {
	rows := []ingest.Row{
		{"Data Pagamento": "10/03/2026", "Valor Bruto": "1000,00", "Valor Líquido": "960,00", "Taxa": "40,00"},
	}

	records := ParseCielo("w1", rows)

	require.Len(t, records, 1)
	assert.Equal(t, recon.SourceCielo, records[0].BankSource)
	assert.Equal(t, 960.00, records[0].Amount)
}

func TestParseCielo_FallsBackToGrossMinusFee(t *testing.T) {
	rows := []ingest.Row{
		{"Data": "10/03/2026", "Valor Bruto": "500,00", "Taxa": "20,00"},
	}

	records := ParseCielo("w1", rows)

	require.Len(t, records, 1)
	assert.Equal(t, 480.00, records[0].Amount)
}

func TestParseGeneric(t *testing.T) {
	rows := []ingest.Row{
		{"when": "2026-03-10", "how_much": "125,50", "memo": "transferencia"},
	}
	mapping := GenericMapping{Date: "when", Amount: "how_much", Description: "memo"}

	records := ParseGeneric("w1", rows, mapping)

	require.Len(t, records, 1)
	assert.Equal(t, recon.SourceGeneric, records[0].BankSource)
	assert.Equal(t, 125.50, records[0].Amount)
	assert.Equal(t, "transferencia", records[0].Description)
}

func TestParseRows_GenericRequiresMapping(t *testing.T) {
	_, err := ParseRows("w1", recon.SourceGeneric, nil, nil)
	assert.Error(t, err)

	_, err = ParseRows("w1", recon.SourceGeneric, nil, &GenericMapping{Date: "d"})
	assert.Error(t, err)

	records, err := ParseRows("w1", recon.SourceGeneric, nil, &GenericMapping{Date: "d", Amount: "a"})
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseRows_UnknownSource(t *testing.T) {
	_, err := ParseRows("w1", recon.BankSource("itau"), nil, nil)
	assert.Error(t, err)
}

func TestParseRows_Dispatch(t *testing.T) {
	rows := []ingest.Row{
		{"Data": "10/03/2026", "Valor": "100,00"},
	}

	records, err := ParseRows("w1", recon.SourceBradesco, rows, nil)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, recon.SourceBradesco, records[0].BankSource)
}
