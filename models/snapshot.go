package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StakeTotals maps option keys to cumulative staked amounts
type StakeTotals map[string]decimal.Decimal

// Value implements driver.Valuer interface
func (st StakeTotals) Value() (driver.Value, error) {
	if st == nil {
		return json.Marshal(map[string]decimal.Decimal{})
	}
	return json.Marshal(st)
}

// Scan implements sql.Scanner interface
func (st *StakeTotals) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, st)
	case string:
		return json.Unmarshal([]byte(v), st)
	}
	return nil
}

// Total returns the sum of all option totals in the snapshot
func (st StakeTotals) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range st {
		total = total.Add(amount)
	}
	return total
}

// Snapshot records the per-option cumulative stake totals of a market at the
// moment a stake was placed. Snapshots are a display convenience; the stake
// ledger stays authoritative and can always rebuild them.
type Snapshot struct {
	ID        uuid.UUID   `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	MarketID  uuid.UUID   `gorm:"type:uuid;not null;index:idx_snapshots_market" json:"market_id"`
	Totals    StakeTotals `gorm:"type:jsonb;not null;default:'{}'" json:"totals"`
	CreatedAt time.Time   `gorm:"autoCreateTime;index:idx_snapshots_created_at" json:"created_at"`

	// Associations
	Market *Market `gorm:"foreignKey:MarketID;constraint:OnDelete:CASCADE" json:"market,omitempty"`
}

// TableName specifies the table name for Snapshot model
func (*Snapshot) TableName() string {
	return "snapshots"
}

// BeforeCreate sets up the model before creation
func (s *Snapshot) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Validate performs validation on the snapshot model
func (s *Snapshot) Validate() error {
	if s.MarketID == uuid.Nil {
		return ErrInvalidMarketID
	}
	for key, amount := range s.Totals {
		if key == "" {
			return ErrInvalidOptionKey
		}
		if amount.LessThan(decimal.Zero) {
			return ErrInvalidStakeAmount
		}
	}
	return nil
}
