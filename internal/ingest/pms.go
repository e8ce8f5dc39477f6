package ingest

import (
	"encoding/json"

	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
)

// Default column aliases for PMS exports, Portuguese first.
var pmsAliases = map[string][]string{
	"date":          {"date", "data", "data pagamento", "data da reserva"},
	"amount":        {"amount", "valor", "valor pago", "total"},
	"guestName":     {"guest_name", "hospede", "hóspede", "cliente", "nome"},
	"reservationId": {"reservation_id", "reserva", "id reserva", "reserva #"},
	"description":   {"description", "descricao", "descrição", "historico", "histórico"},
}

// PMSMapping overrides the default column aliases with exact header names.
type PMSMapping struct {
	Date          string `json:"date,omitempty"`
	Amount        string `json:"amount,omitempty"`
	GuestName     string `json:"guestName,omitempty"`
	ReservationID string `json:"reservationId,omitempty"`
	Description   string `json:"description,omitempty"`
}

func pmsField(row Row, override string, key string) string {
	if override != "" {
		return row[override]
	}
	return PickAlias(row, pmsAliases[key]...)
}

// ParseEntries converts PMS CSV rows into entry drafts for one week. Rows
// missing a parseable date, a positive amount or a guest name are dropped;
// those are the minimum fields the engine's rules key on.
func ParseEntries(weekID string, rows []Row, mapping *PMSMapping) []recon.Entry {
	if mapping == nil {
		mapping = &PMSMapping{}
	}

	entries := make([]recon.Entry, 0, len(rows))
	for _, row := range rows {
		date, ok := ParseFlexibleDate(pmsField(row, mapping.Date, "date"))
		amount := RoundCents(ParseMoney(pmsField(row, mapping.Amount, "amount")))
		guestName := pmsField(row, mapping.GuestName, "guestName")
		if !ok || amount <= 0 || guestName == "" {
			continue
		}

		raw, _ := json.Marshal(row)
		entries = append(entries, recon.Entry{
			WeekID:        weekID,
			ReservationID: pmsField(row, mapping.ReservationID, "reservationId"),
			GuestName:     guestName,
			Description:   pmsField(row, mapping.Description, "description"),
			Amount:        amount,
			Date:          date,
			RawRow:        string(raw),
		})
	}
	return entries
}
