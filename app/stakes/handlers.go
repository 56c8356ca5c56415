package stakes

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/joefazee/creda/app/accounts"
	"github.com/joefazee/creda/app/api"
)

// Handler handles HTTP requests for stakes
type Handler struct {
	service Service
}

// NewHandler creates a new stake handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		api.ValidationErrorResponse(c, validationErrs.Error())
		return
	}
	api.DomainErrorResponse(c, err)
}

// PlaceStake places a stake on one option of an open market
// @Summary Place a stake
// @Description Debit the caller's balance and stake credits on a market option
// @Tags stakes
// @Accept json
// @Produce json
// @Param id path string true "Market ID"
// @Param request body PlaceStakeRequest true "Stake payload"
// @Success 201 {object} api.Response{data=StakeResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 409 {object} api.Response{error=api.ErrorInfo}
// @Failure 422 {object} api.Response{error=api.ErrorInfo}
// @Security BearerAuth
// @Router /api/v1/markets/{id}/stakes [post]
func (h *Handler) PlaceStake(c *gin.Context) {
	accountID, ok := accounts.AccountIDFromContext(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	marketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.BadRequestResponse(c, "Invalid market ID format")
		return
	}

	var req PlaceStakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	resp, err := h.service.PlaceStake(c.Request.Context(), accountID, marketID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	api.CreatedResponse(c, "Stake placed", resp)
}

// GetMarketLedger returns the stake ledger of a market
// @Summary Get a market's stake ledger
// @Description List every stake placed on a market in chronological order
// @Tags stakes
// @Produce json
// @Param id path string true "Market ID"
// @Success 200 {object} api.Response{data=[]LedgerEntryResponse}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{id}/stakes [get]
func (h *Handler) GetMarketLedger(c *gin.Context) {
	marketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.BadRequestResponse(c, "Invalid market ID format")
		return
	}

	entries, err := h.service.GetMarketLedger(c.Request.Context(), marketID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	api.ListResponse(c, "Ledger retrieved", entries, len(entries))
}

// GetMyStakes returns the caller's stakes
// @Summary List own stakes
// @Description List the authenticated account's stakes, newest first
// @Tags stakes
// @Produce json
// @Success 200 {object} api.Response{data=[]StakeResponse}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Security BearerAuth
// @Router /api/v1/accounts/me/stakes [get]
func (h *Handler) GetMyStakes(c *gin.Context) {
	accountID, ok := accounts.AccountIDFromContext(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	stakes, err := h.service.GetAccountStakes(c.Request.Context(), accountID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	api.ListResponse(c, "Stakes retrieved", stakes, len(stakes))
}
