package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Risk classification labels derived from the stake-to-balance ratio
const (
	RiskConservative = "conservative"
	RiskBalanced     = "balanced"
	RiskAggressive   = "aggressive"
)

// DailyProfit is one day's aggregated profit or loss
type DailyProfit struct {
	Date   string          `json:"date"`
	Profit decimal.Decimal `json:"profit"`
}

// AccountStatsResponse represents an account's aggregated performance
type AccountStatsResponse struct {
	AccountID          uuid.UUID       `json:"account_id"`
	TotalStakes        int             `json:"total_stakes"`
	MarketsPlayed      int             `json:"markets_played"`
	Won                int             `json:"won"`
	Lost               int             `json:"lost"`
	Breakeven          int             `json:"breakeven"`
	CurrentStreak      int             `json:"current_streak"`
	BestStreak         int             `json:"best_streak"`
	TotalStaked        decimal.Decimal `json:"total_staked"`
	AtStake            decimal.Decimal `json:"at_stake"`
	NetProfitLoss      decimal.Decimal `json:"net_profit_loss"`
	AverageStake       decimal.Decimal `json:"average_stake"`
	AverageProfit      decimal.Decimal `json:"average_profit"`
	RiskClassification string          `json:"risk_classification"`
	ProfitByDay        []DailyProfit   `json:"profit_by_day"`
}

// SeriesPoint is one snapshot of option probabilities
type SeriesPoint struct {
	Timestamp     time.Time                  `json:"timestamp"`
	Probabilities map[string]decimal.Decimal `json:"probabilities"`
}

// SeriesResponse represents a market's probability history
type SeriesResponse struct {
	MarketID  uuid.UUID     `json:"market_id"`
	Options   []string      `json:"options"`
	Truncated bool          `json:"truncated"`
	Points    []SeriesPoint `json:"points"`
}
