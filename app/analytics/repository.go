package analytics

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/joefazee/creda/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new analytics repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetAccount returns an account by ID
func (r *repository) GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, err
	}
	return &account, nil
}

// GetStakesWithMarkets returns the account's stakes, oldest first, with
// markets preloaded
func (r *repository) GetStakesWithMarkets(ctx context.Context, accountID uuid.UUID) ([]models.Stake, error) {
	var stakes []models.Stake
	err := r.db.WithContext(ctx).
		Preload("Market").
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Find(&stakes).Error
	return stakes, err
}

// GetMarketWithOptions returns a market with its options loaded
func (r *repository) GetMarketWithOptions(ctx context.Context, id uuid.UUID) (*models.Market, error) {
	var market models.Market
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&market, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, err
	}
	return &market, nil
}

// GetSnapshotsByMarket returns a market's snapshots, oldest first
func (r *repository) GetSnapshotsByMarket(ctx context.Context, marketID uuid.UUID) ([]models.Snapshot, error) {
	var snapshots []models.Snapshot
	err := r.db.WithContext(ctx).
		Where("market_id = ?", marketID).
		Order("created_at ASC").
		Find(&snapshots).Error
	return snapshots, err
}
