package stakes

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/joefazee/creda/models"
)

// Repository defines the data access interface for stakes
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	GetMarketWithOptions(ctx context.Context, id uuid.UUID) (*models.Market, error)
	CreateStake(ctx context.Context, stake *models.Stake) error
	CreateTransaction(ctx context.Context, transaction *models.Transaction) error

	// AddToPools atomically increments the option's stake total and the
	// market's total pool by amount.
	AddToPools(ctx context.Context, marketID uuid.UUID, optionKey string, amount decimal.Decimal) error

	GetOptionTotals(ctx context.Context, marketID uuid.UUID) (models.StakeTotals, error)
	CreateSnapshot(ctx context.Context, snapshot *models.Snapshot) error

	// GetByMarket returns the market's stake ledger in chronological order.
	GetByMarket(ctx context.Context, marketID uuid.UUID) ([]models.Stake, error)
	GetByAccount(ctx context.Context, accountID uuid.UUID) ([]models.Stake, error)
}

// Service defines the business logic interface for stakes
type Service interface {
	PlaceStake(ctx context.Context, accountID, marketID uuid.UUID, req *PlaceStakeRequest) (*StakeResponse, error)
	GetMarketLedger(ctx context.Context, marketID uuid.UUID) ([]LedgerEntryResponse, error)
	GetAccountStakes(ctx context.Context, accountID uuid.UUID) ([]StakeResponse, error)
}
