package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/villamar/pousada-recon-backend/internal/api/dto"
	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
	"github.com/villamar/pousada-recon-backend/internal/ingest"
	"github.com/villamar/pousada-recon-backend/internal/ingest/bank"
	"github.com/villamar/pousada-recon-backend/internal/infrastructure/storage"
)

const importPreviewLimit = 5

// ImportsHandler handles CSV upload endpoints. Files arrive as multipart
// form data under the "file" field.
type ImportsHandler struct {
	*Base
}

// NewImportsHandler creates a new imports handler.
func NewImportsHandler(repo storage.Repository, logger *slog.Logger) *ImportsHandler {
	return &ImportsHandler{Base: NewBase(repo, logger)}
}

// Entries handles POST /api/weeks/:weekId/import/entries. Re-import
// replaces the week's previous entry set entirely.
func (h *ImportsHandler) Entries(c *gin.Context) {
	w, ok := h.RequireOpenWeek(c)
	if !ok {
		return
	}

	rows, ok := h.readCSV(c)
	if !ok {
		return
	}

	var mapping *ingest.PMSMapping
	if raw := c.PostForm("mapping"); raw != "" {
		mapping = &ingest.PMSMapping{}
		if err := json.Unmarshal([]byte(raw), mapping); err != nil {
			h.Error(c, http.StatusBadRequest, dto.ValidationError("mapping must be a JSON object"))
			return
		}
	}

	entries := ingest.ParseEntries(w.ID, rows, mapping)
	saved, err := h.repo.ReplaceEntries(w.ID, entries)
	if err != nil {
		h.DomainError(c, err)
		return
	}

	h.logger.Info("Imported PMS entries", "week_id", w.ID, "rows", len(rows), "accepted", len(saved))

	var total float64
	for _, e := range saved {
		total += e.Amount
	}
	c.JSON(http.StatusOK, dto.ImportResponse{
		Count:       len(saved),
		TotalAmount: ingest.RoundCents(total),
		Preview:     previewEntries(saved),
	})
}

// Bank handles POST /api/weeks/:weekId/import/bank. The "source" form field
// selects the adapter; generic imports also need a "mapping" JSON field
// naming the date and amount columns.
func (h *ImportsHandler) Bank(c *gin.Context) {
	w, ok := h.RequireOpenWeek(c)
	if !ok {
		return
	}

	source := recon.BankSource(c.PostForm("source"))
	if !recon.ValidBankSource(source) {
		h.Error(c, http.StatusBadRequest, dto.ValidationError("unknown bank source"))
		return
	}

	rows, ok := h.readCSV(c)
	if !ok {
		return
	}

	var mapping *bank.GenericMapping
	if raw := c.PostForm("mapping"); raw != "" {
		mapping = &bank.GenericMapping{}
		if err := json.Unmarshal([]byte(raw), mapping); err != nil {
			h.Error(c, http.StatusBadRequest, dto.ValidationError("mapping must be a JSON object"))
			return
		}
	}

	records, err := bank.ParseRows(w.ID, source, rows, mapping)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}

	saved, err := h.repo.AppendBankRecords(records)
	if err != nil {
		h.DomainError(c, err)
		return
	}

	h.logger.Info("Imported bank records",
		"week_id", w.ID, "source", string(source), "rows", len(rows), "accepted", len(saved))

	var total float64
	for _, r := range saved {
		total += r.Amount
	}
	c.JSON(http.StatusOK, dto.ImportResponse{
		Count:       len(saved),
		TotalAmount: ingest.RoundCents(total),
		Preview:     previewBankRecords(saved),
	})
}

// readCSV pulls the uploaded "file" field and parses it into rows.
func (h *ImportsHandler) readCSV(c *gin.Context) ([]ingest.Row, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.BadRequestError("multipart 'file' field is required"))
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.DomainError(c, err)
		return nil, false
	}
	defer func() { _ = file.Close() }()

	rows, err := ingest.ParseCSV(file)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ValidationError("could not parse CSV: "+err.Error()))
		return nil, false
	}
	if len(rows) == 0 {
		h.Error(c, http.StatusBadRequest, dto.ValidationError("CSV has no data rows"))
		return nil, false
	}
	return rows, true
}

func previewEntries(entries []recon.Entry) []recon.Entry {
	if len(entries) > importPreviewLimit {
		return entries[:importPreviewLimit]
	}
	return entries
}

func previewBankRecords(records []recon.BankRecord) []recon.BankRecord {
	if len(records) > importPreviewLimit {
		return records[:importPreviewLimit]
	}
	return records
}
