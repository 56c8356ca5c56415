package accounts

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/joefazee/creda/app/api"
	"github.com/joefazee/creda/internal/sanitizer"
	"github.com/joefazee/creda/models"
)

// Handler handles HTTP requests for accounts
type Handler struct {
	service   Service
	watcher   *BalanceWatcher
	sanitizer sanitizer.HTMLStripperer
}

// NewHandler creates a new account handler
func NewHandler(service Service, watcher *BalanceWatcher, sanitizer sanitizer.HTMLStripperer) *Handler {
	return &Handler{
		service:   service,
		watcher:   watcher,
		sanitizer: sanitizer,
	}
}

func (h *Handler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		api.ValidationErrorResponse(c, validationErrs.Error())
		return
	}
	if errors.Is(err, models.ErrPasswordTooShort) {
		api.BadRequestResponse(c, err.Error())
		return
	}
	api.DomainErrorResponse(c, err)
}

// Register godoc
// @Summary Register an account
// @Description Create an account with the starting credit grant
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 201 {object} api.Response{data=AuthResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/accounts/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}
	req.DisplayName = h.sanitizer.StripHTML(req.DisplayName)

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	api.CreatedResponse(c, "Account created", resp)
}

// Login godoc
// @Summary Log in
// @Description Authenticate and receive a bearer token
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} api.Response{data=AuthResponse}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/accounts/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Logged in", resp)
}

// GetProfile godoc
// @Summary Get own profile
// @Description Get the authenticated account's profile and balance
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} api.Response{data=AccountResponse}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/accounts/me [get]
func (h *Handler) GetProfile(c *gin.Context) {
	accountID, ok := AccountIDFromContext(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	resp, err := h.service.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Profile retrieved", resp)
}

// GetTransactions godoc
// @Summary List own transactions
// @Description Get the authenticated account's credit ledger, newest first
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} api.Response{data=[]TransactionResponse}
// @Router /api/v1/accounts/me/transactions [get]
func (h *Handler) GetTransactions(c *gin.Context) {
	accountID, ok := AccountIDFromContext(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	transactions, err := h.service.GetTransactions(c.Request.Context(), accountID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	api.ListResponse(c, "Transactions retrieved", transactions, len(transactions))
}

// TopUp godoc
// @Summary Credit an account
// @Description Admin-only credit top-up for an account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param request body TopUpRequest true "Top-up payload"
// @Success 200 {object} api.Response{data=AccountResponse}
// @Failure 403 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/accounts/{id}/topup [post]
func (h *Handler) TopUp(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.BadRequestResponse(c, "Invalid account ID format")
		return
	}

	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	resp, err := h.service.TopUp(c.Request.Context(), accountID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Account credited", resp)
}

// StreamBalance godoc
// @Summary Stream balance updates
// @Description Server-sent events stream of the authenticated account's balance changes
// @Tags accounts
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {string} string "event stream"
// @Router /api/v1/accounts/me/balance/stream [get]
func (h *Handler) StreamBalance(c *gin.Context) {
	accountID, ok := AccountIDFromContext(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	// Send the current balance first so clients start from a known state.
	current, err := h.service.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	updates := h.watcher.Subscribe(accountID)
	defer h.watcher.Unsubscribe(accountID, updates)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.SSEvent("balance", BalanceUpdate{AccountID: accountID, Balance: current.Balance})
	c.Writer.Flush()

	c.Stream(func(_ io.Writer) bool {
		select {
		case update, open := <-updates:
			if !open {
				return false
			}
			c.SSEvent("balance", update)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
