package settlement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/joefazee/creda/app/accounts"
	"github.com/joefazee/creda/internal/logger"
	"github.com/joefazee/creda/models"
)

type service struct {
	repo        Repository
	accountRepo accounts.Repository
	db          *gorm.DB
	config      *Config
	watcher     *accounts.BalanceWatcher
	invalidator MarketCacheInvalidator
	logger      logger.Logger
}

// NewService creates a new settlement service
func NewService(
	repo Repository,
	accountRepo accounts.Repository,
	db *gorm.DB,
	config *Config,
	watcher *accounts.BalanceWatcher,
	invalidator MarketCacheInvalidator,
	lg logger.Logger) Service {
	return &service{
		repo:        repo,
		accountRepo: accountRepo,
		db:          db,
		config:      config,
		watcher:     watcher,
		invalidator: invalidator,
		logger:      lg,
	}
}

// ResolveMarket settles a market: it locks the market row, computes the
// payouts for the winning option and applies every balance credit, stake
// payout mark and ledger entry in one transaction. Serialization failures
// are retried a bounded number of times before surfacing as a conflict.
func (s *service) ResolveMarket(ctx context.Context, marketID uuid.UUID, winningOption string) (*ResolutionResponse, error) {
	var resp *ResolutionResponse
	var updates []accounts.BalanceUpdate

	var err error
	for attempt := 0; attempt < s.config.MaxRetries; attempt++ {
		resp, updates, err = s.resolveOnce(ctx, marketID, winningOption)
		if err == nil || !isRetryable(err) {
			break
		}
		s.logger.Info("settlement conflict, retrying", map[string]interface{}{
			"market_id": marketID,
			"attempt":   attempt + 1,
		})
	}
	if err != nil {
		if isRetryable(err) {
			return nil, models.ErrConcurrencyConflict
		}
		return nil, err
	}

	if s.invalidator != nil {
		s.invalidator.InvalidateMarket(ctx, marketID)
	}
	for _, update := range updates {
		s.watcher.Notify(update.AccountID, update.Balance)
	}

	s.logger.Info("market resolved", map[string]interface{}{
		"market_id":      marketID,
		"winning_option": winningOption,
		"payouts":        len(resp.Payouts),
		"total_pool":     resp.TotalPool,
	})

	return resp, nil
}

func (s *service) resolveOnce(ctx context.Context, marketID uuid.UUID, winningOption string) (*ResolutionResponse, []accounts.BalanceUpdate, error) {
	var resp *ResolutionResponse
	var updates []accounts.BalanceUpdate

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)
		acctTx := s.accountRepo.WithTx(tx)

		market, err := repoTx.GetMarketForUpdate(ctx, marketID)
		if err != nil {
			return err
		}
		if !market.HasOption(winningOption) {
			return models.ErrInvalidOption
		}
		if err := market.Resolve(winningOption); err != nil {
			return err
		}

		stakes, err := repoTx.GetStakesByMarket(ctx, marketID)
		if err != nil {
			return err
		}

		payouts := ComputePayouts(stakes, winningOption, market.TotalPool)

		winningPool := decimal.Zero
		for i := range stakes {
			if stakes[i].OptionKey == winningOption {
				winningPool = winningPool.Add(stakes[i].Amount)
			}
		}

		resp = &ResolutionResponse{
			MarketID:      marketID,
			WinningOption: winningOption,
			TotalPool:     market.TotalPool,
			WinningPool:   winningPool,
			Payouts:       make([]PayoutResponse, 0, len(payouts)),
			ResolvedAt:    *market.ResolvedAt,
		}
		updates = updates[:0]

		for _, payout := range payouts {
			account, err := acctTx.GetByID(ctx, payout.AccountID)
			if err != nil {
				return err
			}

			amount := payout.Amount.RoundBank(2)
			if err := acctTx.CreditBalance(ctx, payout.AccountID, amount); err != nil {
				return err
			}

			txn := models.CreatePayoutTransaction(payout.AccountID, amount, account.Balance, marketID)
			if err := acctTx.CreateTransaction(ctx, txn); err != nil {
				return err
			}

			if err := repoTx.MarkStakePaid(ctx, payout.StakeID, amount); err != nil {
				return err
			}

			resp.Payouts = append(resp.Payouts, PayoutResponse{
				StakeID:   payout.StakeID,
				AccountID: payout.AccountID,
				Stake:     payout.Stake,
				Amount:    amount,
			})
			updates = append(updates, accounts.BalanceUpdate{
				AccountID: payout.AccountID,
				Balance:   account.Balance.Add(amount),
			})
		}

		return repoTx.UpdateMarket(ctx, market)
	})
	if err != nil {
		return nil, nil, err
	}

	return resp, updates, nil
}

// isRetryable reports whether the error is a serialization failure or
// deadlock postgres asks the client to retry.
func isRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
