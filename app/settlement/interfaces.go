package settlement

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/joefazee/creda/models"
)

// Repository defines the data access interface for settlement
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	// GetMarketForUpdate loads the market row under a row lock so
	// concurrent resolutions serialize on it.
	GetMarketForUpdate(ctx context.Context, id uuid.UUID) (*models.Market, error)
	GetStakesByMarket(ctx context.Context, marketID uuid.UUID) ([]models.Stake, error)
	UpdateMarket(ctx context.Context, market *models.Market) error
	MarkStakePaid(ctx context.Context, stakeID uuid.UUID, payout decimal.Decimal) error
}

// Service defines the business logic interface for settlement
type Service interface {
	ResolveMarket(ctx context.Context, marketID uuid.UUID, winningOption string) (*ResolutionResponse, error)
}

// MarketCacheInvalidator drops a market's cached read copies after a
// mutation. Satisfied by the markets service.
type MarketCacheInvalidator interface {
	InvalidateMarket(ctx context.Context, id uuid.UUID)
}
