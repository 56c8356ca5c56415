package analytics

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joefazee/creda/models"
)

// marketResult is one resolved market's net outcome for the account
type marketResult struct {
	market *models.Market
	profit decimal.Decimal
}

// ComputeAccountStats aggregates an account's full stake history into its
// performance statistics. Stakes must carry their Market association;
// stakes on unresolved markets only contribute to the at-stake total.
// Each resolved market counts once toward won/lost/breakeven, classified
// by the account's net profit across all of its stakes in that market.
// Breakeven results end a win streak without starting a loss.
func ComputeAccountStats(accountID uuid.UUID, balance decimal.Decimal, stakes []models.Stake, config *Config) *AccountStatsResponse {
	stats := &AccountStatsResponse{
		AccountID:     accountID,
		TotalStaked:   decimal.Zero,
		AtStake:       decimal.Zero,
		NetProfitLoss: decimal.Zero,
		AverageStake:  decimal.Zero,
		AverageProfit: decimal.Zero,
		ProfitByDay:   []DailyProfit{},
	}

	markets := make(map[uuid.UUID]struct{})
	results := make(map[uuid.UUID]*marketResult)
	var resolved []*marketResult

	for i := range stakes {
		stake := &stakes[i]
		stats.TotalStakes++
		stats.TotalStaked = stats.TotalStaked.Add(stake.Amount)
		markets[stake.MarketID] = struct{}{}

		if stake.Market == nil || !stake.Market.Resolved {
			stats.AtStake = stats.AtStake.Add(stake.Amount)
			continue
		}

		result, ok := results[stake.MarketID]
		if !ok {
			result = &marketResult{market: stake.Market, profit: decimal.Zero}
			results[stake.MarketID] = result
			resolved = append(resolved, result)
		}
		result.profit = result.profit.Add(stake.ProfitLoss(true))
	}
	stats.MarketsPlayed = len(markets)

	sort.SliceStable(resolved, func(i, j int) bool {
		a, b := resolved[i].market.ResolvedAt, resolved[j].market.ResolvedAt
		if a == nil || b == nil {
			return b == nil
		}
		return a.Before(*b)
	})

	byDay := make(map[string]decimal.Decimal)
	streak := 0

	for _, result := range resolved {
		stats.NetProfitLoss = stats.NetProfitLoss.Add(result.profit)

		switch {
		case result.profit.GreaterThan(decimal.Zero):
			stats.Won++
			streak++
			if streak > stats.BestStreak {
				stats.BestStreak = streak
			}
		case result.profit.LessThan(decimal.Zero):
			stats.Lost++
			streak = 0
		default:
			stats.Breakeven++
			streak = 0
		}

		if result.market.ResolvedAt != nil {
			day := result.market.ResolvedAt.UTC().Format("2006-01-02")
			byDay[day] = byDay[day].Add(result.profit)
		}
	}
	stats.CurrentStreak = streak

	if stats.MarketsPlayed > 0 {
		stats.AverageStake = stats.TotalStaked.Div(decimal.NewFromInt(int64(stats.MarketsPlayed))).RoundBank(2)
	}
	if len(resolved) > 0 {
		stats.AverageProfit = stats.NetProfitLoss.Div(decimal.NewFromInt(int64(len(resolved)))).RoundBank(2)
	}

	stats.RiskClassification = classifyRisk(stats.AverageStake, balance, config)

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		stats.ProfitByDay = append(stats.ProfitByDay, DailyProfit{Date: day, Profit: byDay[day]})
	}

	return stats
}

// classifyRisk labels the account by its average-stake-to-balance ratio.
// Exhausted balances classify as aggressive.
func classifyRisk(averageStake, balance decimal.Decimal, config *Config) string {
	if averageStake.IsZero() {
		return RiskConservative
	}
	if balance.LessThanOrEqual(decimal.Zero) {
		return RiskAggressive
	}

	ratio := averageStake.Div(balance)
	switch {
	case ratio.LessThan(config.ConservativeThreshold):
		return RiskConservative
	case ratio.LessThan(config.BalancedThreshold):
		return RiskBalanced
	default:
		return RiskAggressive
	}
}
