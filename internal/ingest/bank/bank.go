// Package bank holds one CSV adapter per bank/acquirer export format. Each
// adapter maps that institution's column names onto bank record drafts and
// drops rows without a date and a positive amount.
package bank

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
	"github.com/villamar/pousada-recon-backend/internal/ingest"
)

// GenericMapping names the exact columns of an unknown bank's export.
type GenericMapping struct {
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
}

// ParseRows dispatches CSV rows to the adapter for the given source. The
// generic adapter requires an explicit column mapping.
func ParseRows(weekID string, source recon.BankSource, rows []ingest.Row, mapping *GenericMapping) ([]recon.BankRecord, error) {
	switch source {
	case recon.SourceBradesco:
		return ParseBradesco(weekID, rows), nil
	case recon.SourceCaixa:
		return ParseCaixa(weekID, rows), nil
	case recon.SourceCielo:
		return ParseCielo(weekID, rows), nil
	case recon.SourcePix:
		return ParsePix(weekID, rows), nil
	case recon.SourceGeneric:
		if mapping == nil || mapping.Date == "" || mapping.Amount == "" {
			return nil, errors.New("generic parser requires mapping.date and mapping.amount")
		}
		return ParseGeneric(weekID, rows, *mapping), nil
	default:
		return nil, fmt.Errorf("unknown bank source %q", source)
	}
}

// ParseBradesco maps Bradesco statement exports.
func ParseBradesco(weekID string, rows []ingest.Row) []recon.BankRecord {
	return parseAliased(weekID, recon.SourceBradesco, rows, aliasMapping{
		date:        []string{"data", "data lançamento", "data lancamento", "date"},
		amount:      []string{"valor", "crédito", "credito", "amount"},
		description: []string{"histórico", "historico", "descrição", "descricao", "description"},
	})
}

// ParseCaixa maps Caixa Econômica statement exports.
func ParseCaixa(weekID string, rows []ingest.Row) []recon.BankRecord {
	return parseAliased(weekID, recon.SourceCaixa, rows, aliasMapping{
		date:        []string{"data", "dt.lanc", "date"},
		amount:      []string{"valor", "crédito", "credito", "valor (r$)", "amount"},
		description: []string{"histórico", "historico", "lançamento", "lancamento", "description"},
	})
}

// ParsePix maps PIX transfer exports.
func ParsePix(weekID string, rows []ingest.Row) []recon.BankRecord {
	return parseAliased(weekID, recon.SourcePix, rows, aliasMapping{
		date:        []string{"data", "horário", "horario", "date"},
		amount:      []string{"valor", "amount"},
		description: []string{"descricao", "descrição", "origem", "description"},
	})
}

// ParseCielo maps Cielo settlement exports. The record amount is the net
// value when the export carries one, else gross minus fee.
func ParseCielo(weekID string, rows []ingest.Row) []recon.BankRecord {
	records := make([]recon.BankRecord, 0, len(rows))
	for _, row := range rows {
		date, ok := ingest.ParseFlexibleDate(ingest.PickAlias(row, "data", "data pagamento", "data da venda", "date"))
		net := ingest.ParseMoney(ingest.PickAlias(row, "valor liquido", "valor líquido", "net", "liquido"))
		gross := ingest.ParseMoney(ingest.PickAlias(row, "valor bruto", "bruto", "gross"))
		fee := ingest.ParseMoney(ingest.PickAlias(row, "taxa", "fee"))

		amount := net
		if amount == 0 && gross-fee > 0 {
			amount = gross - fee
		}
		amount = ingest.RoundCents(amount)
		if !ok || amount <= 0 {
			continue
		}

		raw, _ := json.Marshal(row)
		records = append(records, recon.BankRecord{
			WeekID:      weekID,
			BankSource:  recon.SourceCielo,
			Date:        date,
			Amount:      amount,
			Description: ingest.PickAlias(row, "descricao", "descrição", "bandeira", "description"),
			RawRow:      string(raw),
		})
	}
	return records
}

// ParseGeneric maps an arbitrary export using an explicit column mapping.
func ParseGeneric(weekID string, rows []ingest.Row, mapping GenericMapping) []recon.BankRecord {
	records := make([]recon.BankRecord, 0, len(rows))
	for _, row := range rows {
		date, ok := ingest.ParseFlexibleDate(row[mapping.Date])
		amount := ingest.RoundCents(ingest.ParseMoney(row[mapping.Amount]))
		if !ok || amount <= 0 {
			continue
		}

		description := ""
		if mapping.Description != "" {
			description = row[mapping.Description]
		}

		raw, _ := json.Marshal(row)
		records = append(records, recon.BankRecord{
			WeekID:      weekID,
			BankSource:  recon.SourceGeneric,
			Date:        date,
			Amount:      amount,
			Description: description,
			RawRow:      string(raw),
		})
	}
	return records
}

type aliasMapping struct {
	date        []string
	amount      []string
	description []string
}

func parseAliased(weekID string, source recon.BankSource, rows []ingest.Row, m aliasMapping) []recon.BankRecord {
	records := make([]recon.BankRecord, 0, len(rows))
	for _, row := range rows {
		date, ok := ingest.ParseFlexibleDate(ingest.PickAlias(row, m.date...))
		amount := ingest.RoundCents(ingest.ParseMoney(ingest.PickAlias(row, m.amount...)))
		if !ok || amount <= 0 {
			continue
		}

		raw, _ := json.Marshal(row)
		records = append(records, recon.BankRecord{
			WeekID:      weekID,
			BankSource:  source,
			Date:        date,
			Amount:      amount,
			Description: ingest.PickAlias(row, m.description...),
			RawRow:      string(raw),
		})
	}
	return records
}
