package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/villamar/pousada-recon-backend/internal/api/dto"
	"github.com/villamar/pousada-recon-backend/internal/application/service"
	"github.com/villamar/pousada-recon-backend/internal/infrastructure/storage"
)

// ReportsHandler serves the weekly report, both the admin view and the
// token-gated director view.
type ReportsHandler struct {
	*Base
	service *service.ReconService
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(repo storage.Repository, svc *service.ReconService, logger *slog.Logger) *ReportsHandler {
	return &ReportsHandler{
		Base:    NewBase(repo, logger),
		service: svc,
	}
}

// Get handles GET /api/weeks/:weekId/report for authenticated admins.
func (h *ReportsHandler) Get(c *gin.Context) {
	weekly, err := h.service.WeekReport(c.Request.Context(), c.Param("weekId"))
	if err != nil {
		h.DomainError(c, err)
		return
	}

	w, err := h.repo.GetWeek(c.Param("weekId"))
	if err != nil {
		h.DomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReportResponse{Week: w, Report: weekly})
}

// Director handles GET /api/report/:weekId?token=... The director token is
// only minted when a week first closes, so an open week has no valid token
// and the endpoint answers 403 until then.
func (h *ReportsHandler) Director(c *gin.Context) {
	w, ok := h.RequireWeek(c)
	if !ok {
		return
	}

	token := c.Query("token")
	if w.DirectorToken == "" || token == "" ||
		subtle.ConstantTimeCompare([]byte(token), []byte(w.DirectorToken)) != 1 {
		h.Error(c, http.StatusForbidden, dto.ForbiddenError())
		return
	}

	weekly, err := h.service.WeekReport(c.Request.Context(), w.ID)
	if err != nil {
		h.DomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReportResponse{Week: w, Report: weekly})
}
