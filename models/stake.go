package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stake represents an account's stake on a market option. Stakes are
// append-only; repeated stakes on the same option stay separate rows.
type Stake struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	MarketID      uuid.UUID        `gorm:"type:uuid;not null;index:idx_stakes_market" json:"market_id"`
	AccountID     uuid.UUID        `gorm:"type:uuid;not null;index:idx_stakes_account" json:"account_id"`
	OptionKey     string           `gorm:"type:varchar(100);not null" json:"option_key"`
	Amount        decimal.Decimal  `gorm:"type:decimal(20,2);not null;check:amount > 0" json:"amount"`
	Paid          bool             `gorm:"default:false" json:"paid"`
	Payout        *decimal.Decimal `gorm:"type:decimal(20,2)" json:"payout"`
	TransactionID uuid.UUID        `gorm:"type:uuid;not null" json:"transaction_id"`
	CreatedAt     time.Time        `gorm:"autoCreateTime;index:idx_stakes_created_at" json:"created_at"`

	// Associations
	Market      *Market      `gorm:"foreignKey:MarketID" json:"market,omitempty"`
	Account     *Account     `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Transaction *Transaction `gorm:"foreignKey:TransactionID" json:"transaction,omitempty"`
}

// TableName specifies the table name for Stake model
func (*Stake) TableName() string {
	return "stakes"
}

// BeforeCreate sets up the model before creation
func (s *Stake) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// IsPaid checks if the stake has received its payout
func (s *Stake) IsPaid() bool {
	return s.Paid && s.Payout != nil
}

// MarkPaid records the payout credited for this stake
func (s *Stake) MarkPaid(payout decimal.Decimal) error {
	if s.Paid {
		return ErrStakeAlreadyPaid
	}
	s.Paid = true
	s.Payout = &payout
	return nil
}

// ProfitLoss calculates the net profit or loss for this stake against the
// given winning option. Unresolved stakes report zero.
func (s *Stake) ProfitLoss(resolved bool) decimal.Decimal {
	if !resolved {
		return decimal.Zero
	}
	if s.Payout == nil {
		return s.Amount.Neg()
	}
	return s.Payout.Sub(s.Amount)
}

// Validate performs validation on the stake model
func (s *Stake) Validate() error {
	if s.MarketID == uuid.Nil {
		return ErrInvalidMarketID
	}
	if s.AccountID == uuid.Nil {
		return ErrInvalidAccountID
	}
	if s.OptionKey == "" {
		return ErrInvalidOptionKey
	}
	if s.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidStakeAmount
	}
	if s.TransactionID == uuid.Nil {
		return ErrInvalidTransactionType
	}
	return nil
}
