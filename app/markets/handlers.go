package markets

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/joefazee/creda/app/accounts"
	"github.com/joefazee/creda/app/api"
	"github.com/joefazee/creda/models"
)

// Handler handles HTTP requests for markets
type Handler struct {
	service Service
}

// NewHandler creates a new market handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		api.ValidationErrorResponse(c, validationErrs.Error())
		return
	}
	if errors.Is(err, models.ErrInvalidCloseTime) ||
		errors.Is(err, models.ErrInvalidOptionCount) ||
		errors.Is(err, models.ErrInvalidOptionKey) ||
		errors.Is(err, models.ErrInvalidMarketTitle) ||
		errors.Is(err, models.ErrInvalidMarketKind) {
		api.BadRequestResponse(c, err.Error())
		return
	}
	api.DomainErrorResponse(c, err)
}

// CreateMarket creates a new prediction market
// @Summary Create a market
// @Description Create a binary or multi-option prediction market
// @Tags markets
// @Accept json
// @Produce json
// @Param request body CreateMarketRequest true "Market payload"
// @Success 201 {object} api.Response{data=MarketResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Security BearerAuth
// @Router /api/v1/markets [post]
func (h *Handler) CreateMarket(c *gin.Context) {
	accountID, ok := accounts.AccountIDFromContext(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	var req CreateMarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	resp, err := h.service.CreateMarket(c.Request.Context(), accountID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	api.CreatedResponse(c, "Market created", resp)
}

// GetMarkets lists markets with filters and pagination
// @Summary List markets
// @Description List markets filtered by status, category, kind, featured and resolved
// @Tags markets
// @Produce json
// @Param status query string false "Market status (open|closed)"
// @Param category query string false "Category"
// @Param kind query string false "Market kind (binary|multi_option)"
// @Param featured query bool false "Featured only"
// @Param resolved query bool false "Resolved only"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} api.Response{data=MarketListResponse}
// @Router /api/v1/markets [get]
func (h *Handler) GetMarkets(c *gin.Context) {
	var filters MarketFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	resp, err := h.service.GetMarkets(c.Request.Context(), &filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Markets retrieved", resp)
}

// GetMarketByID returns a single market with its options
// @Summary Get a market
// @Description Get a market by ID including options and pool totals
// @Tags markets
// @Produce json
// @Param id path string true "Market ID"
// @Success 200 {object} api.Response{data=MarketResponse}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{id} [get]
func (h *Handler) GetMarketByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.BadRequestResponse(c, "Invalid market ID format")
		return
	}

	resp, err := h.service.GetMarketByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Market retrieved", resp)
}

// EndMarket closes an open market before its close time
// @Summary End a market
// @Description Close an open market so no further stakes are accepted
// @Tags admin
// @Produce json
// @Param id path string true "Market ID"
// @Success 200 {object} api.Response{data=MarketResponse}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 409 {object} api.Response{error=api.ErrorInfo}
// @Security BearerAuth
// @Router /api/v1/admin/markets/{id}/end [post]
func (h *Handler) EndMarket(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.BadRequestResponse(c, "Invalid market ID format")
		return
	}

	resp, err := h.service.EndMarket(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Market ended", resp)
}

// FeatureMarket toggles the featured flag on a market
// @Summary Feature a market
// @Description Set or clear the featured flag on a market
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Market ID"
// @Param request body FeatureMarketRequest true "Feature payload"
// @Success 200 {object} api.Response{data=MarketResponse}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Security BearerAuth
// @Router /api/v1/admin/markets/{id}/feature [patch]
func (h *Handler) FeatureMarket(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.BadRequestResponse(c, "Invalid market ID format")
		return
	}

	var req FeatureMarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	resp, err := h.service.FeatureMarket(c.Request.Context(), id, req.Featured)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Market updated", resp)
}
