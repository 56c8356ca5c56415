package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MarketKind represents the kind of market
type MarketKind string

const (
	MarketKindBinary      MarketKind = "binary"
	MarketKindMultiOption MarketKind = "multi_option"
)

// MarketStatus represents the current status of a market
type MarketStatus string

const (
	MarketStatusOpen   MarketStatus = "open"
	MarketStatusClosed MarketStatus = "closed"
)

// Binary markets always carry exactly these two options.
const (
	BinaryOptionYes = "yes"
	BinaryOptionNo  = "no"
)

// MinMultiOptions and MaxMultiOptions bound the option count for
// multi-option markets.
const (
	MinMultiOptions = 2
	MaxMultiOptions = 10
)

// SourceList represents reference URLs backing a market question
type SourceList []string

// Value implements driver.Valuer interface
func (s SourceList) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner interface
func (s *SourceList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	}
	return nil
}

// Market represents a prediction market
type Market struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	CreatorID     *uuid.UUID      `gorm:"type:uuid;index" json:"creator_id"`
	Title         string          `gorm:"type:varchar(255);not null" json:"title"`
	Summary       string          `gorm:"type:text;not null" json:"summary"`
	Category      string          `gorm:"type:varchar(100);not null;index" json:"category"`
	Kind          MarketKind      `gorm:"type:varchar(20);default:'binary'" json:"kind"`
	Status        MarketStatus    `gorm:"type:varchar(20);default:'open';index" json:"status"`
	Resolved      bool            `gorm:"default:false;index" json:"resolved"`
	WinningOption string          `gorm:"type:varchar(100)" json:"winning_option"`
	Featured      bool            `gorm:"default:false;index" json:"featured"`
	Sources       SourceList      `gorm:"type:jsonb;default:'[]'" json:"sources"`
	CloseTime     time.Time       `gorm:"type:timestamptz;not null;index" json:"close_time"`
	EventTime     *time.Time      `gorm:"type:timestamptz" json:"event_time"`
	ResolvedAt    *time.Time      `gorm:"type:timestamptz" json:"resolved_at"`
	TotalPool     decimal.Decimal `gorm:"type:decimal(20,2);default:0.00" json:"total_pool"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	Creator *Account       `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Options []MarketOption `gorm:"foreignKey:MarketID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
	Stakes  []Stake        `gorm:"foreignKey:MarketID" json:"-"`
}

// TableName specifies the table name for Market model
func (*Market) TableName() string {
	return "markets"
}

// BeforeCreate sets up the model before creation
func (m *Market) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IsOpen checks if the market is open for staking
func (m *Market) IsOpen() bool {
	return m.Status == MarketStatusOpen && time.Now().Before(m.CloseTime)
}

// IsClosed checks if the market is closed
func (m *Market) IsClosed() bool {
	return m.Status == MarketStatusClosed || !time.Now().Before(m.CloseTime)
}

// IsResolved checks if the market has been resolved
func (m *Market) IsResolved() bool {
	return m.Resolved && m.ResolvedAt != nil
}

// CanStake checks if staking is allowed on this market
func (m *Market) CanStake() bool {
	return m.IsOpen() && !m.Resolved
}

// CanResolve checks if the market can still be resolved
func (m *Market) CanResolve() bool {
	return !m.Resolved
}

// HasOption checks if the given option key is legal for this market
func (m *Market) HasOption(optionKey string) bool {
	if m.Kind == MarketKindBinary {
		return optionKey == BinaryOptionYes || optionKey == BinaryOptionNo
	}
	for i := range m.Options {
		if m.Options[i].OptionKey == optionKey {
			return true
		}
	}
	return false
}

// Resolve marks the market resolved with the given winning option
func (m *Market) Resolve(winningOption string) error {
	if m.Resolved {
		return ErrMarketAlreadyResolved
	}
	if !m.HasOption(winningOption) {
		return ErrInvalidOption
	}

	now := time.Now()
	m.Status = MarketStatusClosed
	m.Resolved = true
	m.WinningOption = winningOption
	m.ResolvedAt = &now

	return nil
}

// Close transitions the market out of the open state
func (m *Market) Close() error {
	if m.Resolved {
		return ErrMarketAlreadyResolved
	}
	m.Status = MarketStatusClosed
	return nil
}

// Validate performs validation on the market model
func (m *Market) Validate() error {
	if m.Title == "" {
		return ErrInvalidMarketTitle
	}
	if m.Category == "" {
		return ErrInvalidCategory
	}
	if m.Kind != MarketKindBinary && m.Kind != MarketKindMultiOption {
		return ErrInvalidMarketKind
	}
	if m.CloseTime.Before(time.Now()) {
		return ErrInvalidCloseTime
	}
	if m.Resolved && m.WinningOption == "" {
		return ErrInvalidMarketStatus
	}
	return nil
}
