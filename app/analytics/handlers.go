package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joefazee/creda/app/accounts"
	"github.com/joefazee/creda/app/api"
)

// Handler handles HTTP requests for analytics
type Handler struct {
	service Service
}

// NewHandler creates a new analytics handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetMyStats returns the caller's aggregated performance statistics
// @Summary Get own statistics
// @Description Participation, win/loss record, streaks, profit and risk classification
// @Tags analytics
// @Produce json
// @Success 200 {object} api.Response{data=AccountStatsResponse}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Security BearerAuth
// @Router /api/v1/accounts/me/stats [get]
func (h *Handler) GetMyStats(c *gin.Context) {
	accountID, ok := accounts.AccountIDFromContext(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	resp, err := h.service.GetAccountStats(c.Request.Context(), accountID)
	if err != nil {
		api.DomainErrorResponse(c, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Statistics retrieved", resp)
}

// GetMarketSeries returns a market's probability history
// @Summary Get a market's probability series
// @Description Normalized option probabilities over time, one point per stake
// @Tags analytics
// @Produce json
// @Param id path string true "Market ID"
// @Success 200 {object} api.Response{data=SeriesResponse}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{id}/series [get]
func (h *Handler) GetMarketSeries(c *gin.Context) {
	marketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.BadRequestResponse(c, "Invalid market ID format")
		return
	}

	resp, err := h.service.GetMarketSeries(c.Request.Context(), marketID)
	if err != nil {
		api.DomainErrorResponse(c, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Series retrieved", resp)
}
