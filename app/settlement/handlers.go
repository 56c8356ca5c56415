package settlement

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joefazee/creda/app/api"
)

// Handler handles HTTP requests for settlement
type Handler struct {
	service Service
}

// NewHandler creates a new settlement handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ResolveMarket resolves a market and pays out the winners
// @Summary Resolve a market
// @Description Declare the winning option and settle every winning stake
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Market ID"
// @Param request body ResolveMarketRequest true "Resolution payload"
// @Success 200 {object} api.Response{data=ResolutionResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 409 {object} api.Response{error=api.ErrorInfo}
// @Security BearerAuth
// @Router /api/v1/admin/markets/{id}/resolve [post]
func (h *Handler) ResolveMarket(c *gin.Context) {
	marketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.BadRequestResponse(c, "Invalid market ID format")
		return
	}

	var req ResolveMarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	resp, err := h.service.ResolveMarket(c.Request.Context(), marketID, req.WinningOption)
	if err != nil {
		api.DomainErrorResponse(c, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Market resolved", resp)
}
