package settlement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/joefazee/creda/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// GetMarketForUpdate loads the market row with SELECT ... FOR UPDATE
func (r *repository) GetMarketForUpdate(ctx context.Context, id uuid.UUID) (*models.Market, error) {
	var market models.Market
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
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

// GetStakesByMarket returns the market's stake ledger, oldest first
func (r *repository) GetStakesByMarket(ctx context.Context, marketID uuid.UUID) ([]models.Stake, error) {
	var stakes []models.Stake
	err := r.db.WithContext(ctx).
		Where("market_id = ?", marketID).
		Order("created_at ASC").
		Find(&stakes).Error
	return stakes, err
}

// UpdateMarket saves the resolved market row
func (r *repository) UpdateMarket(ctx context.Context, market *models.Market) error {
	return r.db.WithContext(ctx).Save(market).Error
}

// MarkStakePaid records the payout on a stake. The paid guard keeps a
// stake from ever being paid twice.
func (r *repository) MarkStakePaid(ctx context.Context, stakeID uuid.UUID, payout decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&models.Stake{}).
		Where("id = ? AND paid = ?", stakeID, false).
		Updates(map[string]interface{}{"paid": true, "payout": payout})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrStakeAlreadyPaid
	}
	return nil
}
