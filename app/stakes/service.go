package stakes

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
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
	logger      logger.Logger
	validator   *validator.Validate
}

// NewService creates a new stake service
func NewService(
	repo Repository,
	accountRepo accounts.Repository,
	db *gorm.DB,
	config *Config,
	watcher *accounts.BalanceWatcher,
	lg logger.Logger) Service {
	return &service{
		repo:        repo,
		accountRepo: accountRepo,
		db:          db,
		config:      config,
		watcher:     watcher,
		logger:      lg,
		validator:   validator.New(),
	}
}

// PlaceStake debits the account and appends a stake to the market ledger in
// one transaction: balance debit, stake row, pool increments, probability
// snapshot and credit ledger entry all commit or none do.
func (s *service) PlaceStake(ctx context.Context, accountID, marketID uuid.UUID, req *PlaceStakeRequest) (*StakeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	amount := req.Amount.RoundBank(2)
	if amount.LessThan(s.config.MinStakeAmount) || amount.GreaterThan(s.config.MaxStakeAmount) {
		return nil, models.ErrInvalidStakeAmount
	}

	var stake *models.Stake
	var newBalance decimal.Decimal

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)
		acctTx := s.accountRepo.WithTx(tx)

		market, err := repoTx.GetMarketWithOptions(ctx, marketID)
		if err != nil {
			return err
		}
		if !market.CanStake() {
			return models.ErrMarketClosed
		}
		if !market.HasOption(req.OptionKey) {
			return models.ErrInvalidOption
		}

		account, err := acctTx.GetByID(ctx, accountID)
		if err != nil {
			return err
		}

		if err := acctTx.DebitBalance(ctx, accountID, amount); err != nil {
			return err
		}

		stakeID := uuid.New()
		txn := models.CreateStakeTransaction(accountID, amount, account.Balance, stakeID)
		if err := repoTx.CreateTransaction(ctx, txn); err != nil {
			return err
		}

		stake = &models.Stake{
			ID:            stakeID,
			MarketID:      marketID,
			AccountID:     accountID,
			OptionKey:     req.OptionKey,
			Amount:        amount,
			TransactionID: txn.ID,
		}
		if err := stake.Validate(); err != nil {
			return err
		}
		if err := repoTx.CreateStake(ctx, stake); err != nil {
			return err
		}

		if err := repoTx.AddToPools(ctx, marketID, req.OptionKey, amount); err != nil {
			return err
		}

		totals, err := repoTx.GetOptionTotals(ctx, marketID)
		if err != nil {
			return err
		}
		snapshot := &models.Snapshot{MarketID: marketID, Totals: totals}
		if err := repoTx.CreateSnapshot(ctx, snapshot); err != nil {
			return err
		}

		newBalance = account.Balance.Sub(amount)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.watcher.Notify(accountID, newBalance)
	s.logger.Info("stake placed", map[string]interface{}{
		"stake_id":   stake.ID,
		"market_id":  marketID,
		"account_id": accountID,
		"option":     stake.OptionKey,
		"amount":     amount,
	})

	resp := ToStakeResponse(stake)
	return &resp, nil
}

// GetMarketLedger returns the full stake ledger of a market in the order
// the stakes were placed
func (s *service) GetMarketLedger(ctx context.Context, marketID uuid.UUID) ([]LedgerEntryResponse, error) {
	if _, err := s.repo.GetMarketWithOptions(ctx, marketID); err != nil {
		return nil, err
	}

	records, err := s.repo.GetByMarket(ctx, marketID)
	if err != nil {
		return nil, err
	}

	entries := make([]LedgerEntryResponse, 0, len(records))
	for i := range records {
		entries = append(entries, ToLedgerEntryResponse(&records[i]))
	}
	return entries, nil
}

// GetAccountStakes returns an account's stakes, newest first
func (s *service) GetAccountStakes(ctx context.Context, accountID uuid.UUID) ([]StakeResponse, error) {
	records, err := s.repo.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	stakes := make([]StakeResponse, 0, len(records))
	for i := range records {
		stakes = append(stakes, ToStakeResponse(&records[i]))
	}
	return stakes, nil
}
