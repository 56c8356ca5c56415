package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joefazee/creda/models"
)

// UnprocessableResponse sends an unprocessable entity error response
func UnprocessableResponse(c *gin.Context, code, message string) {
	ErrorResponse(c, http.StatusUnprocessableEntity, code, message, nil)
}

// ServiceUnavailableResponse sends a service unavailable error response
func ServiceUnavailableResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", message, nil)
}

// DomainErrorResponse maps domain sentinel errors to their HTTP responses.
// Unknown errors surface as internal errors without leaking details.
func DomainErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrRecordNotFound):
		NotFoundResponse(c, "Resource")
	case errors.Is(err, models.ErrMarketAlreadyResolved):
		ConflictResponse(c, "Market is already resolved")
	case errors.Is(err, models.ErrMarketClosed):
		ConflictResponse(c, "Market is closed")
	case errors.Is(err, models.ErrConcurrencyConflict):
		ConflictResponse(c, "Concurrent update conflict, please retry")
	case errors.Is(err, models.ErrInvalidOption):
		ErrorResponse(c, http.StatusBadRequest, "INVALID_OPTION", "Option does not belong to market", nil)
	case errors.Is(err, models.ErrInsufficientBalance):
		UnprocessableResponse(c, "INSUFFICIENT_BALANCE", "Insufficient balance")
	case errors.Is(err, models.ErrInvalidStakeAmount):
		ErrorResponse(c, http.StatusBadRequest, "INVALID_STAKE_AMOUNT", "Stake amount must be positive", nil)
	case errors.Is(err, models.ErrUnauthorized):
		UnauthorizedResponse(c)
	case errors.Is(err, models.ErrForbidden):
		ForbiddenResponse(c, "Access Denied")
	case errors.Is(err, models.ErrStorageUnavailable):
		ServiceUnavailableResponse(c, "Storage temporarily unavailable")
	default:
		InternalErrorResponse(c, "Something went wrong")
	}
}
