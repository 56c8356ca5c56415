package stakes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/joefazee/creda/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new stake repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
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

// CreateStake appends a stake to the ledger
func (r *repository) CreateStake(ctx context.Context, stake *models.Stake) error {
	return r.db.WithContext(ctx).Create(stake).Error
}

// CreateTransaction appends a transaction to the credit ledger
func (r *repository) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

// AddToPools increments the option and market pool totals with SQL
// increments so concurrent stakes never lose updates
func (r *repository) AddToPools(ctx context.Context, marketID uuid.UUID, optionKey string, amount decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&models.MarketOption{}).
		Where("market_id = ? AND option_key = ?", marketID, optionKey).
		UpdateColumn("stake_total", gorm.Expr("stake_total + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrInvalidOption
	}

	return r.db.WithContext(ctx).Model(&models.Market{}).
		Where("id = ?", marketID).
		UpdateColumn("total_pool", gorm.Expr("total_pool + ?", amount)).Error
}

// GetOptionTotals returns the current cumulative stake per option key
func (r *repository) GetOptionTotals(ctx context.Context, marketID uuid.UUID) (models.StakeTotals, error) {
	var options []models.MarketOption
	err := r.db.WithContext(ctx).
		Where("market_id = ?", marketID).
		Find(&options).Error
	if err != nil {
		return nil, err
	}

	totals := make(models.StakeTotals, len(options))
	for i := range options {
		totals[options[i].OptionKey] = options[i].StakeTotal
	}
	return totals, nil
}

// CreateSnapshot appends a probability snapshot for the market
func (r *repository) CreateSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

// GetByMarket returns the full stake ledger of a market, oldest first
func (r *repository) GetByMarket(ctx context.Context, marketID uuid.UUID) ([]models.Stake, error) {
	var stakes []models.Stake
	err := r.db.WithContext(ctx).
		Where("market_id = ?", marketID).
		Order("created_at ASC").
		Find(&stakes).Error
	return stakes, err
}

// GetByAccount returns an account's stakes, newest first
func (r *repository) GetByAccount(ctx context.Context, accountID uuid.UUID) ([]models.Stake, error) {
	var stakes []models.Stake
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&stakes).Error
	return stakes, err
}
