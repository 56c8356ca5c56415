package analytics

import (
	"context"

	"github.com/google/uuid"

	"github.com/joefazee/creda/models"
)

// Repository defines the data access interface for analytics
type Repository interface {
	GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error)
	// GetStakesWithMarkets returns the account's stakes with their Market
	// association loaded.
	GetStakesWithMarkets(ctx context.Context, accountID uuid.UUID) ([]models.Stake, error)
	GetMarketWithOptions(ctx context.Context, id uuid.UUID) (*models.Market, error)
	GetSnapshotsByMarket(ctx context.Context, marketID uuid.UUID) ([]models.Snapshot, error)
}

// Service defines the business logic interface for analytics
type Service interface {
	GetAccountStats(ctx context.Context, accountID uuid.UUID) (*AccountStatsResponse, error)
	GetMarketSeries(ctx context.Context, marketID uuid.UUID) (*SeriesResponse, error)
}
