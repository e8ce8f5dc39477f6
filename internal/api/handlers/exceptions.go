package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/villamar/pousada-recon-backend/internal/api/dto"
	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
	"github.com/villamar/pousada-recon-backend/internal/ingest"
	"github.com/villamar/pousada-recon-backend/internal/infrastructure/storage"
)

// ExceptionsHandler handles declared-adjustment HTTP requests.
type ExceptionsHandler struct {
	*Base
}

// NewExceptionsHandler creates a new exceptions handler.
func NewExceptionsHandler(repo storage.Repository, logger *slog.Logger) *ExceptionsHandler {
	return &ExceptionsHandler{Base: NewBase(repo, logger)}
}

// List handles GET /api/weeks/:weekId/exceptions.
func (h *ExceptionsHandler) List(c *gin.Context) {
	w, ok := h.RequireWeek(c)
	if !ok {
		return
	}

	exceptions, err := h.repo.ListExceptions(w.ID)
	if err != nil {
		h.DomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ExceptionListResponse{Exceptions: exceptions})
}

// Create handles POST /api/weeks/:weekId/exceptions.
func (h *ExceptionsHandler) Create(c *gin.Context) {
	var req dto.CreateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	excType := recon.ExceptionType(req.Type)
	if !recon.ValidExceptionType(excType) {
		h.Error(c, http.StatusBadRequest, dto.ValidationError("unknown exception type"))
		return
	}

	w, ok := h.RequireOpenWeek(c)
	if !ok {
		return
	}

	source := recon.ExceptionSource(req.Source)
	if source == "" {
		source = recon.FromManual
	}

	record := recon.ExceptionRecord{
		WeekID:         w.ID,
		Type:           excType,
		ReservationID:  req.ReservationID,
		GuestName:      req.GuestName,
		OriginalAmount: req.OriginalAmount,
		FinalAmount:    req.FinalAmount,
		DiscountAmount: req.DiscountAmount,
		DiscountPct:    req.DiscountPct,
		Reason:         req.Reason,
		Source:         source,
		SourceRaw:      req.SourceRaw,
	}

	saved, err := h.repo.AppendExceptions([]recon.ExceptionRecord{record})
	if err != nil {
		h.DomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, saved[0])
}

// ImportCSV handles POST /api/weeks/:weekId/exceptions/import. Each CSV row
// becomes one exception; unknown types default to discount.
func (h *ExceptionsHandler) ImportCSV(c *gin.Context) {
	w, ok := h.RequireOpenWeek(c)
	if !ok {
		return
	}

	imports := &ImportsHandler{Base: h.Base}
	rows, ok := imports.readCSV(c)
	if !ok {
		return
	}

	records := make([]recon.ExceptionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, exceptionFromRow(w.ID, row))
	}

	saved, err := h.repo.AppendExceptions(records)
	if err != nil {
		h.DomainError(c, err)
		return
	}

	h.logger.Info("Imported exceptions", "week_id", w.ID, "accepted", len(saved))

	c.JSON(http.StatusOK, dto.ImportResponse{Count: len(saved), Preview: previewExceptions(saved)})
}

// Parse handles POST /api/exceptions/parse. It extracts a structured draft
// from pasted text without persisting anything.
func (h *ExceptionsHandler) Parse(c *gin.Context) {
	var req dto.ParseExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.BadRequestError("text is required"))
		return
	}

	parsed := ingest.ParseWhatsApp(req.Text)
	c.JSON(http.StatusOK, dto.ParsedExceptionResponse{
		Exception:  parsed.ExceptionRecord,
		Confidence: parsed.Confidence,
	})
}

// Update handles PATCH /api/exceptions/:id.
func (h *ExceptionsHandler) Update(c *gin.Context) {
	var req dto.UpdateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	patch := storage.ExceptionPatch{
		ReservationID:  req.ReservationID,
		GuestName:      req.GuestName,
		OriginalAmount: req.OriginalAmount,
		FinalAmount:    req.FinalAmount,
		DiscountAmount: req.DiscountAmount,
		DiscountPct:    req.DiscountPct,
		Reason:         req.Reason,
		SourceRaw:      req.SourceRaw,
	}
	if req.Type != nil {
		excType := recon.ExceptionType(*req.Type)
		if !recon.ValidExceptionType(excType) {
			h.Error(c, http.StatusBadRequest, dto.ValidationError("unknown exception type"))
			return
		}
		patch.Type = &excType
	}

	updated, err := h.repo.UpdateException(c.Param("id"), patch)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	if updated == nil {
		h.Error(c, http.StatusNotFound, dto.NotFoundError("exception"))
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/exceptions/:id.
func (h *ExceptionsHandler) Delete(c *gin.Context) {
	deleted, err := h.repo.DeleteException(c.Param("id"))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	if !deleted {
		h.Error(c, http.StatusNotFound, dto.NotFoundError("exception"))
		return
	}

	c.Status(http.StatusNoContent)
}

// exceptionFromRow maps one CSV row onto an exception record using loose
// Portuguese/English column aliases.
func exceptionFromRow(weekID string, row ingest.Row) recon.ExceptionRecord {
	excType := recon.ExceptionType(ingest.PickAlias(row, "type", "tipo"))
	if !recon.ValidExceptionType(excType) {
		excType = recon.ExceptionDiscount
	}

	rec := recon.ExceptionRecord{
		WeekID:        weekID,
		Type:          excType,
		ReservationID: ingest.PickAlias(row, "reservation_id", "reserva"),
		GuestName:     ingest.PickAlias(row, "guest_name", "hospede", "hóspede", "nome"),
		Reason:        ingest.PickAlias(row, "reason", "motivo"),
		Source:        recon.FromCSV,
	}

	if v := ingest.ParseMoney(ingest.PickAlias(row, "original_amount", "valor original")); v > 0 {
		rec.OriginalAmount = &v
	}
	if v := ingest.ParseMoney(ingest.PickAlias(row, "final_amount", "valor final", "valor pago")); v > 0 {
		rec.FinalAmount = &v
	}
	if rec.OriginalAmount != nil && rec.FinalAmount != nil {
		diff := ingest.RoundCents(*rec.OriginalAmount - *rec.FinalAmount)
		if diff > 0 {
			rec.DiscountAmount = &diff
		}
	}
	return rec
}

func previewExceptions(records []recon.ExceptionRecord) []recon.ExceptionRecord {
	if len(records) > importPreviewLimit {
		return records[:importPreviewLimit]
	}
	return records
}
