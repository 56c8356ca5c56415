package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MarketOption represents a stakeable option of a market
type MarketOption struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	MarketID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_market_options_market" json:"market_id"`
	OptionKey  string          `gorm:"type:varchar(100);not null" json:"option_key"` // 'yes', 'no', 'candidate-a', etc.
	Label      string          `gorm:"type:varchar(100);not null" json:"label"`
	SortOrder  int             `gorm:"default:0" json:"sort_order"`
	StakeTotal decimal.Decimal `gorm:"type:decimal(20,2);default:0.00" json:"stake_total"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	Market *Market `gorm:"foreignKey:MarketID;constraint:OnDelete:CASCADE" json:"market,omitempty"`
}

// TableName specifies the table name for MarketOption model
func (*MarketOption) TableName() string {
	return "market_options"
}

// BeforeCreate sets up the model before creation
func (mo *MarketOption) BeforeCreate(_ *gorm.DB) error {
	if mo.ID == uuid.Nil {
		mo.ID = uuid.New()
	}
	return nil
}

// Probability returns this option's share of the given market pool as a
// fraction in [0, 1]. An empty pool reports zero.
func (mo *MarketOption) Probability(totalPool decimal.Decimal) decimal.Decimal {
	if totalPool.IsZero() {
		return decimal.Zero
	}
	return mo.StakeTotal.Div(totalPool)
}

// AddStake adds the specified amount to this option's stake total
func (mo *MarketOption) AddStake(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidStakeAmount
	}
	mo.StakeTotal = mo.StakeTotal.Add(amount)
	return nil
}

// Validate performs validation on the market option model
func (mo *MarketOption) Validate() error {
	if mo.MarketID == uuid.Nil {
		return ErrInvalidMarketID
	}
	if mo.OptionKey == "" {
		return ErrInvalidOptionKey
	}
	if mo.Label == "" {
		return ErrInvalidOptionLabel
	}
	if mo.StakeTotal.LessThan(decimal.Zero) {
		return ErrInvalidStakeAmount
	}
	return nil
}

// BinaryOptions returns the fixed yes/no option pair for a binary market
func BinaryOptions(marketID uuid.UUID) []MarketOption {
	return []MarketOption{
		{MarketID: marketID, OptionKey: BinaryOptionYes, Label: "Yes", SortOrder: 0},
		{MarketID: marketID, OptionKey: BinaryOptionNo, Label: "No", SortOrder: 1},
	}
}
