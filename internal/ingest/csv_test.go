package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV_CommaDelimited(t *testing.T) {
	input := "name,amount\nAna,100\nBruno,200\n"

	rows, err := ParseCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ana", rows[0]["name"])
	assert.Equal(t, "200", rows[1]["amount"])
}

func TestParseCSV_SniffsSemicolon(t *testing.T) {
	input := "Data;Valor;Histórico\n10/03/2026;1.234,56;PIX RECEBIDO\n"

	rows, err := ParseCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1.234,56", rows[0]["Valor"])
	assert.Equal(t, "PIX RECEBIDO", rows[0]["Histórico"])
}

func TestParseCSV_StripsBOMAndTrims(t *testing.T) {
	input := "\uFEFFname , amount\n Ana , 100 \n"

	rows, err := ParseCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana", rows[0]["name"])
	assert.Equal(t, "100", rows[0]["amount"])
}

func TestParseCSV_SkipsBlankRows(t *testing.T) {
	input := "name,amount\nAna,100\n,\nBruno,200\n"

	rows, err := ParseCSV(strings.NewReader(input))

	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestParseCSV_RaggedRows(t *testing.T) {
	input := "name,amount,extra\nAna,100\nBruno,200,x,y\n"

	rows, err := ParseCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "100", rows[0]["amount"])
	assert.Empty(t, rows[0]["extra"])
}

func TestParseCSV_Empty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ParseCSV(strings.NewReader("   \n  "))
	assert.Error(t, err)
}

func TestPickAlias_CaseInsensitive(t *testing.T) {
	row := Row{"Valor (R$)": "350,00", "Histórico": "PIX"}

	assert.Equal(t, "350,00", PickAlias(row, "valor (r$)", "amount"))
	assert.Equal(t, "PIX", PickAlias(row, "descricao", "histórico"))
	assert.Empty(t, PickAlias(row, "data"))
}
