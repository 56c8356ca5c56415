package accounts

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/joefazee/creda/models"
)

// Repository defines the interface for account data access
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	Update(ctx context.Context, account *models.Account) error

	// CreditBalance atomically adds amount to the account balance.
	CreditBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
	// DebitBalance atomically subtracts amount, failing with
	// models.ErrInsufficientBalance when the balance would go negative.
	DebitBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error

	CreateTransaction(ctx context.Context, transaction *models.Transaction) error
	GetTransactionsByAccount(ctx context.Context, accountID uuid.UUID) ([]models.Transaction, error)
}

// Service defines the interface for account business logic
type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*AccountResponse, error)
	TopUp(ctx context.Context, accountID uuid.UUID, req *TopUpRequest) (*AccountResponse, error)
	GetTransactions(ctx context.Context, accountID uuid.UUID) ([]TransactionResponse, error)
}
