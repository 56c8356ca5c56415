package settlement

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joefazee/creda/models"
)

// Payout is one account credit produced by settling a market
type Payout struct {
	StakeID   uuid.UUID
	AccountID uuid.UUID
	Stake     decimal.Decimal
	Amount    decimal.Decimal
}

// ComputePayouts distributes a resolved market's total pool among the
// stakes placed on the winning option, proportional to each stake:
//
//	payout = stake / winningPool * totalPool
//
// Amounts are banker's-rounded to 2 places and the rounding remainder is
// assigned to the largest winning stake so the payouts always sum to the
// total pool exactly. A zero winning pool pays nobody; the pool is kept by
// the house. Payouts come back in ledger order.
func ComputePayouts(stakes []models.Stake, winningOption string, totalPool decimal.Decimal) []Payout {
	winningPool := decimal.Zero
	for i := range stakes {
		if stakes[i].OptionKey == winningOption {
			winningPool = winningPool.Add(stakes[i].Amount)
		}
	}

	if winningPool.IsZero() || totalPool.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	var payouts []Payout
	paid := decimal.Zero
	largest := -1

	for i := range stakes {
		if stakes[i].OptionKey != winningOption {
			continue
		}

		amount := stakes[i].Amount.Div(winningPool).Mul(totalPool).RoundBank(2)
		payouts = append(payouts, Payout{
			StakeID:   stakes[i].ID,
			AccountID: stakes[i].AccountID,
			Stake:     stakes[i].Amount,
			Amount:    amount,
		})
		paid = paid.Add(amount)

		if largest < 0 || stakes[i].Amount.GreaterThan(payouts[largest].Stake) {
			largest = len(payouts) - 1
		}
	}

	// Pin the rounding drift on the largest stake so the pool is conserved.
	remainder := totalPool.Sub(paid)
	if !remainder.IsZero() {
		payouts[largest].Amount = payouts[largest].Amount.Add(remainder)
	}

	return payouts
}
