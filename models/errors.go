package models

import "errors"

var (
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrInvalidAccountID = errors.New("invalid account ID")

	ErrInvalidMarketTitle  = errors.New("invalid market title")
	ErrInvalidMarketKind   = errors.New("invalid market kind")
	ErrInvalidMarketStatus = errors.New("invalid market status")
	ErrInvalidMarketID     = errors.New("invalid market ID")
	ErrInvalidCategory     = errors.New("invalid market category")
	ErrInvalidCloseTime    = errors.New("invalid close time")
	ErrInvalidOptionCount  = errors.New("invalid option count")

	ErrInvalidMarketDuration = errors.New("invalid market duration limits")
	ErrInvalidSweepInterval  = errors.New("invalid auto-close sweep interval")
	ErrInvalidCacheTTL       = errors.New("invalid cache TTL")

	ErrInvalidOptionKey   = errors.New("invalid option key")
	ErrInvalidOptionLabel = errors.New("invalid option label")

	ErrInvalidStakeAmount = errors.New("invalid stake amount")
	ErrStakeAlreadyPaid   = errors.New("stake is already paid out")

	ErrNegativeBalance          = errors.New("balance cannot be negative")
	ErrInvalidTransactionType   = errors.New("invalid transaction type")
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	ErrDatabaseCredentialNotConfigured = errors.New("database credentials not configured")

	ErrInvalidUUID    = errors.New("invalid UUID")
	ErrRecordNotFound = errors.New("record not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")

	ErrMarketAlreadyResolved = errors.New("market is already resolved")
	ErrInvalidOption         = errors.New("option does not belong to market")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrMarketClosed          = errors.New("market is closed for staking")
	ErrConcurrencyConflict   = errors.New("concurrent update conflict")
	ErrStorageUnavailable    = errors.New("storage unavailable")
)
