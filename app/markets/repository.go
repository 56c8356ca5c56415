package markets

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/joefazee/creda/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new market repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// Create persists a market together with its options in one transaction
func (r *repository) Create(ctx context.Context, market *models.Market, options []models.MarketOption) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(market).Error; err != nil {
			return err
		}

		for i := range options {
			options[i].MarketID = market.ID
		}

		return tx.Create(&options).Error
	})
}

// GetByID returns a market with its options, ordered by sort order
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Market, error) {
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

// GetAll returns markets matching the filters plus the unpaginated total
func (r *repository) GetAll(ctx context.Context, filters *MarketFilters) ([]models.Market, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Market{})

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Kind != "" {
		query = query.Where("kind = ?", filters.Kind)
	}
	if filters.Featured != nil {
		query = query.Where("featured = ?", *filters.Featured)
	}
	if filters.Resolved != nil {
		query = query.Where("resolved = ?", *filters.Resolved)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var markets []models.Market
	offset := (filters.Page - 1) * filters.PerPage
	err := query.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("created_at DESC").
		Limit(filters.PerPage).
		Offset(offset).
		Find(&markets).Error
	if err != nil {
		return nil, 0, err
	}

	return markets, total, nil
}

// Update saves the full market row
func (r *repository) Update(ctx context.Context, market *models.Market) error {
	return r.db.WithContext(ctx).Save(market).Error
}

// SetFeatured toggles the featured flag without touching the rest of the row
func (r *repository) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	result := r.db.WithContext(ctx).Model(&models.Market{}).
		Where("id = ?", id).
		UpdateColumn("featured", featured)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrRecordNotFound
	}
	return nil
}

// CloseExpired flips every open market whose close time has passed to closed.
// The conditional update makes the sweep safe to run from multiple processes.
func (r *repository) CloseExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Market{}).
		Where("status = ? AND close_time <= ?", models.MarketStatusOpen, time.Now().UTC()).
		UpdateColumn("status", models.MarketStatusClosed)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
