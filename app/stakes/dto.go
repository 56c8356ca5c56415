package stakes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joefazee/creda/models"
)

// PlaceStakeRequest represents the payload for placing a stake
type PlaceStakeRequest struct {
	OptionKey string          `json:"option_key" binding:"required" validate:"required,min=1,max=100"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// StakeResponse represents a stake in API responses
type StakeResponse struct {
	ID        uuid.UUID        `json:"id"`
	MarketID  uuid.UUID        `json:"market_id"`
	OptionKey string           `json:"option_key"`
	Amount    decimal.Decimal  `json:"amount"`
	Paid      bool             `json:"paid"`
	Payout    *decimal.Decimal `json:"payout,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// LedgerEntryResponse represents one entry of a market's stake ledger
type LedgerEntryResponse struct {
	AccountID uuid.UUID       `json:"account_id"`
	OptionKey string          `json:"option_key"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToStakeResponse converts a stake model to its API representation
func ToStakeResponse(stake *models.Stake) StakeResponse {
	return StakeResponse{
		ID:        stake.ID,
		MarketID:  stake.MarketID,
		OptionKey: stake.OptionKey,
		Amount:    stake.Amount,
		Paid:      stake.Paid,
		Payout:    stake.Payout,
		CreatedAt: stake.CreatedAt,
	}
}

// ToLedgerEntryResponse converts a stake model to a ledger entry
func ToLedgerEntryResponse(stake *models.Stake) LedgerEntryResponse {
	return LedgerEntryResponse{
		AccountID: stake.AccountID,
		OptionKey: stake.OptionKey,
		Amount:    stake.Amount,
		CreatedAt: stake.CreatedAt,
	}
}
