package markets

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/joefazee/creda/models"
)

// Repository defines the data access interface for markets
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, market *models.Market, options []models.MarketOption) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Market, error)
	GetAll(ctx context.Context, filters *MarketFilters) ([]models.Market, int64, error)
	Update(ctx context.Context, market *models.Market) error
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error
	CloseExpired(ctx context.Context) (int64, error)
}

// Service defines the business logic interface for markets
type Service interface {
	CreateMarket(ctx context.Context, creatorID uuid.UUID, req *CreateMarketRequest) (*MarketResponse, error)
	GetMarkets(ctx context.Context, filters *MarketFilters) (*MarketListResponse, error)
	GetMarketByID(ctx context.Context, id uuid.UUID) (*MarketResponse, error)
	EndMarket(ctx context.Context, id uuid.UUID) (*MarketResponse, error)
	FeatureMarket(ctx context.Context, id uuid.UUID, featured bool) (*MarketResponse, error)
	ProcessExpiredMarkets(ctx context.Context) (int64, error)
	InvalidateMarket(ctx context.Context, id uuid.UUID)
}
