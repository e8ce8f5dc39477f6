package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/villamar/pousada-recon-backend/internal/api/dto"
	"github.com/villamar/pousada-recon-backend/internal/domain/recon"
	"github.com/villamar/pousada-recon-backend/internal/domain/week"
	"github.com/villamar/pousada-recon-backend/internal/infrastructure/storage"
)

// MatchesHandler handles manual review of individual match verdicts.
type MatchesHandler struct {
	*Base
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(repo storage.Repository, logger *slog.Logger) *MatchesHandler {
	return &MatchesHandler{Base: NewBase(repo, logger)}
}

// Update handles PATCH /api/matches/:id. Admins use it to override a
// verdict color or attach the note that lets a red match pass the closing
// gate. Matches of a closed week are frozen.
func (h *MatchesHandler) Update(c *gin.Context) {
	var req dto.UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	match, err := h.repo.GetMatch(c.Param("id"))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	if match == nil {
		h.Error(c, http.StatusNotFound, dto.NotFoundError("match"))
		return
	}

	w, err := h.repo.GetWeek(match.WeekID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	if w != nil && w.Status == week.StatusClosed {
		h.Error(c, http.StatusConflict, dto.WeekClosedError())
		return
	}

	patch := storage.MatchPatch{
		Notes:     req.Notes,
		AdminNote: req.AdminNote,
	}
	if req.Status != nil {
		status := recon.MatchStatus(*req.Status)
		switch status {
		case recon.StatusGreen, recon.StatusYellow, recon.StatusOrange, recon.StatusRed, recon.StatusBlue:
		default:
			h.Error(c, http.StatusBadRequest, dto.ValidationError("unknown match status"))
			return
		}
		patch.Status = &status
	}

	updated, err := h.repo.UpdateMatch(match.ID, patch)
	if err != nil {
		h.DomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}
