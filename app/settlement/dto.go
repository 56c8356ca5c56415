package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResolveMarketRequest represents the payload for resolving a market
type ResolveMarketRequest struct {
	WinningOption string `json:"winning_option" binding:"required" validate:"required,min=1,max=100"`
}

// PayoutResponse represents one payout applied during settlement
type PayoutResponse struct {
	StakeID   uuid.UUID       `json:"stake_id"`
	AccountID uuid.UUID       `json:"account_id"`
	Stake     decimal.Decimal `json:"stake"`
	Amount    decimal.Decimal `json:"amount"`
}

// ResolutionResponse represents the outcome of settling a market
type ResolutionResponse struct {
	MarketID      uuid.UUID        `json:"market_id"`
	WinningOption string           `json:"winning_option"`
	TotalPool     decimal.Decimal  `json:"total_pool"`
	WinningPool   decimal.Decimal  `json:"winning_pool"`
	Payouts       []PayoutResponse `json:"payouts"`
	ResolvedAt    time.Time        `json:"resolved_at"`
}
