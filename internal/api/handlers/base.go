// Package handlers contains the HTTP handlers for the reconciliation API.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/villamar/pousada-recon-backend/internal/api/dto"
	"github.com/villamar/pousada-recon-backend/internal/domain/week"
	"github.com/villamar/pousada-recon-backend/internal/infrastructure/storage"
)

// Base provides shared functionality for all handlers.
type Base struct {
	repo   storage.Repository
	logger *slog.Logger
}

// NewBase creates a new base handler with the given repository.
func NewBase(repo storage.Repository, logger *slog.Logger) *Base {
	return &Base{repo: repo, logger: logger}
}

// Error writes a structured error response.
func (b *Base) Error(c *gin.Context, status int, err dto.APIError) {
	c.JSON(status, err)
}

// DomainError maps a domain error to its HTTP response. Unknown errors are
// logged and answered with a generic 500.
func (b *Base) DomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, week.ErrNotFound):
		b.Error(c, http.StatusNotFound, dto.NotFoundError("week"))
	case errors.Is(err, week.ErrClosed):
		b.Error(c, http.StatusConflict, dto.WeekClosedError())
	case errors.Is(err, week.ErrRedNeedsNote):
		b.Error(c, http.StatusUnprocessableEntity, dto.ValidationError(err.Error()))
	case errors.Is(err, week.ErrInvalidStatus):
		b.Error(c, http.StatusBadRequest, dto.BadRequestError(err.Error()))
	default:
		b.logger.Error("Request failed", "path", c.FullPath(), "error", err)
		b.Error(c, http.StatusInternalServerError, dto.InternalError())
	}
}

// RequireWeek loads the week from the path parameter, answering 404 itself
// when it does not exist.
func (b *Base) RequireWeek(c *gin.Context) (*week.Week, bool) {
	w, err := b.repo.GetWeek(c.Param("weekId"))
	if err != nil {
		b.DomainError(c, err)
		return nil, false
	}
	if w == nil {
		b.Error(c, http.StatusNotFound, dto.NotFoundError("week"))
		return nil, false
	}
	return w, true
}

// RequireOpenWeek is RequireWeek plus the closed-week write guard.
func (b *Base) RequireOpenWeek(c *gin.Context) (*week.Week, bool) {
	w, ok := b.RequireWeek(c)
	if !ok {
		return nil, false
	}
	if w.Status == week.StatusClosed {
		b.Error(c, http.StatusConflict, dto.WeekClosedError())
		return nil, false
	}
	return w, true
}
