package accounts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joefazee/creda/models"
)

// RegisterRequest represents the request to create an account
// @Description Request payload for account registration
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"omitempty,max=100"`
}

// LoginRequest represents the request to authenticate an account
// @Description Request payload for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TopUpRequest represents an admin credit top-up request
// @Description Request payload for crediting an account
type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// AccountResponse represents an account in API responses
// @Description Account information with the current balance
type AccountResponse struct {
	ID          uuid.UUID       `json:"id"`
	Email       string          `json:"email"`
	DisplayName string          `json:"display_name"`
	IsAdmin     bool            `json:"is_admin"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"created_at"`
}

// AuthResponse represents a successful registration or login
// @Description Account information plus a bearer token
type AuthResponse struct {
	Account     AccountResponse `json:"account"`
	AccessToken string          `json:"access_token"`
	ExpiresAt   time.Time       `json:"expires_at"`
}

// TransactionResponse represents a ledger transaction in API responses
// @Description Single credit movement on an account
type TransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	TransactionType string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	BalanceBefore   decimal.Decimal `json:"balance_before"`
	BalanceAfter    decimal.Decimal `json:"balance_after"`
	ReferenceType   string          `json:"reference_type,omitempty"`
	ReferenceID     *uuid.UUID      `json:"reference_id,omitempty"`
	Description     string          `json:"description,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToAccountResponse converts an account model to its API representation
func ToAccountResponse(account *models.Account) AccountResponse {
	return AccountResponse{
		ID:          account.ID,
		Email:       account.Email,
		DisplayName: account.DisplayName,
		IsAdmin:     account.IsAdmin,
		Balance:     account.Balance,
		CreatedAt:   account.CreatedAt,
	}
}

// ToTransactionResponse converts a transaction model to its API representation
func ToTransactionResponse(tx *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              tx.ID,
		TransactionType: string(tx.TransactionType),
		Amount:          tx.Amount,
		BalanceBefore:   tx.BalanceBefore,
		BalanceAfter:    tx.BalanceAfter,
		ReferenceType:   tx.ReferenceType,
		ReferenceID:     tx.ReferenceID,
		Description:     tx.Description,
		CreatedAt:       tx.CreatedAt,
	}
}

// ToTransactionResponseList converts transaction models to API representations
func ToTransactionResponseList(txs []models.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txs))
	for i := range txs {
		responses[i] = ToTransactionResponse(&txs[i])
	}
	return responses
}
