package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/villamar/pousada-recon-backend/internal/api/dto"
	"github.com/villamar/pousada-recon-backend/internal/application/service"
	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
	"github.com/villamar/pousada-recon-backend/internal/domain/report"
	"github.com/villamar/pousada-recon-backend/internal/domain/week"
	"github.com/villamar/pousada-recon-backend/internal/infrastructure/storage"
)

// WeeksHandler handles week lifecycle HTTP requests.
type WeeksHandler struct {
	*Base
	service *service.ReconService
}

// NewWeeksHandler creates a new weeks handler.
func NewWeeksHandler(repo storage.Repository, svc *service.ReconService, logger *slog.Logger) *WeeksHandler {
	return &WeeksHandler{
		Base:    NewBase(repo, logger),
		service: svc,
	}
}

// List handles GET /api/weeks - returns all weeks with their metrics.
func (h *WeeksHandler) List(c *gin.Context) {
	weeks, err := h.repo.ListWeeks()
	if err != nil {
		h.DomainError(c, err)
		return
	}

	response := dto.WeekListResponse{Weeks: make([]dto.WeekResponse, 0, len(weeks))}
	for _, w := range weeks {
		metrics, err := h.weekMetrics(w.ID)
		if err != nil {
			h.DomainError(c, err)
			return
		}
		response.Weeks = append(response.Weeks, dto.WeekResponse{Week: w, Metrics: metrics})
	}

	c.JSON(http.StatusOK, response)
}

// Create handles POST /api/weeks.
func (h *WeeksHandler) Create(c *gin.Context) {
	var req dto.CreateWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	startDate, err := recon.ParseDate(req.StartDate)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ValidationError("startDate must be YYYY-MM-DD"))
		return
	}
	endDate, err := recon.ParseDate(req.EndDate)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ValidationError("endDate must be YYYY-MM-DD"))
		return
	}
	if endDate.Before(startDate.Time) {
		h.Error(c, http.StatusBadRequest, dto.ValidationError("endDate must not precede startDate"))
		return
	}

	w := &week.Week{
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if err := h.repo.CreateWeek(w); err != nil {
		h.DomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.WeekResponse{Week: w})
}

// Get handles GET /api/weeks/:weekId.
func (h *WeeksHandler) Get(c *gin.Context) {
	w, ok := h.RequireWeek(c)
	if !ok {
		return
	}

	metrics, err := h.weekMetrics(w.ID)
	if err != nil {
		h.DomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WeekResponse{Week: w, Metrics: metrics})
}

// Update handles PATCH /api/weeks/:weekId - the generic status setter.
// Closing must go through the close endpoint; closed weeks never change.
func (h *WeeksHandler) Update(c *gin.Context) {
	var req dto.UpdateWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	w, ok := h.RequireWeek(c)
	if !ok {
		return
	}

	next := week.Status(req.Status)
	if err := week.CanSetStatus(w.Status, next); err != nil {
		h.DomainError(c, err)
		return
	}
	if err := h.repo.SetWeekStatus(w.ID, next); err != nil {
		h.DomainError(c, err)
		return
	}
	w.Status = next

	c.JSON(http.StatusOK, dto.WeekResponse{Week: w})
}

// Close handles POST /api/weeks/:weekId/close. Re-closing an already closed
// week succeeds and returns the same director token.
func (h *WeeksHandler) Close(c *gin.Context) {
	w, err := h.service.CloseWeek(c.Request.Context(), c.Param("weekId"))
	if err != nil {
		h.DomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WeekResponse{Week: w})
}

// Reconcile handles POST /api/weeks/:weekId/reconcile.
func (h *WeeksHandler) Reconcile(c *gin.Context) {
	var req dto.ReconcileRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.Error(c, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
			return
		}
	}
	if req.FeePct != nil && (*req.FeePct < 0 || *req.FeePct >= 1) {
		h.Error(c, http.StatusBadRequest, dto.ValidationError("feePct must be a fraction in [0, 1)"))
		return
	}

	matches, err := h.service.ReconcileWeek(c.Request.Context(), c.Param("weekId"), req.FeePct)
	if err != nil {
		h.DomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MatchListResponse{Matches: matches})
}

// Matches handles GET /api/weeks/:weekId/matches.
func (h *WeeksHandler) Matches(c *gin.Context) {
	if _, ok := h.RequireWeek(c); !ok {
		return
	}

	matches, err := h.repo.ListMatches(c.Param("weekId"))
	if err != nil {
		h.DomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MatchListResponse{Matches: matches})
}

func (h *WeeksHandler) weekMetrics(weekID string) (*report.Metrics, error) {
	entries, err := h.repo.ListEntries(weekID)
	if err != nil {
		return nil, err
	}
	bankRecords, err := h.repo.ListBankRecords(weekID)
	if err != nil {
		return nil, err
	}
	matches, err := h.repo.ListMatches(weekID)
	if err != nil {
		return nil, err
	}
	metrics := report.BuildMetrics(entries, bankRecords, matches)
	return &metrics, nil
}
