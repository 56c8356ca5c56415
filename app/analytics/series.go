package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/joefazee/creda/models"
)

// OtherSeriesKey aggregates the options dropped by series truncation
const OtherSeriesKey = "other"

// BuildProbabilitySeries converts a market's chronological snapshots into
// normalized probability points. Markets with more options than maxOptions
// are truncated to the top options by final cumulative stake, with the
// rest folded into the "other" series.
func BuildProbabilitySeries(market *models.Market, snapshots []models.Snapshot, maxOptions int) *SeriesResponse {
	resp := &SeriesResponse{
		MarketID: market.ID,
		Points:   make([]SeriesPoint, 0, len(snapshots)),
	}

	keys := make([]string, 0, len(market.Options))
	for i := range market.Options {
		keys = append(keys, market.Options[i].OptionKey)
	}

	if len(keys) > maxOptions && len(snapshots) > 0 {
		keys = topOptions(keys, snapshots[len(snapshots)-1].Totals, maxOptions-1)
		resp.Truncated = true
	}
	resp.Options = keys

	keep := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		keep[key] = struct{}{}
	}

	for i := range snapshots {
		point := SeriesPoint{
			Timestamp:     snapshots[i].CreatedAt,
			Probabilities: make(map[string]decimal.Decimal, len(keys)+1),
		}

		total := snapshots[i].Totals.Total()
		other := decimal.Zero

		for _, key := range keys {
			point.Probabilities[key] = normalize(snapshots[i].Totals[key], total)
		}
		if resp.Truncated {
			for key, amount := range snapshots[i].Totals {
				if _, kept := keep[key]; !kept {
					other = other.Add(amount)
				}
			}
			point.Probabilities[OtherSeriesKey] = normalize(other, total)
		}

		resp.Points = append(resp.Points, point)
	}

	return resp
}

// topOptions returns the n option keys with the largest final totals,
// preserving the market's option order among the survivors
func topOptions(keys []string, finalTotals models.StakeTotals, n int) []string {
	ranked := make([]string, len(keys))
	copy(ranked, keys)
	sort.SliceStable(ranked, func(i, j int) bool {
		return finalTotals[ranked[i]].GreaterThan(finalTotals[ranked[j]])
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}

	kept := make(map[string]struct{}, len(ranked))
	for _, key := range ranked {
		kept[key] = struct{}{}
	}

	ordered := make([]string, 0, len(ranked))
	for _, key := range keys {
		if _, ok := kept[key]; ok {
			ordered = append(ordered, key)
		}
	}
	return ordered
}

func normalize(amount, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return amount.Div(total).RoundBank(4)
}
