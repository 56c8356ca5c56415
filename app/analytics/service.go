package analytics

import (
	"context"

	"github.com/google/uuid"

	"github.com/joefazee/creda/internal/logger"
)

type service struct {
	repo   Repository
	config *Config
	logger logger.Logger
}

// NewService creates a new analytics service
func NewService(repo Repository, config *Config, lg logger.Logger) Service {
	return &service{
		repo:   repo,
		config: config,
		logger: lg,
	}
}

// GetAccountStats aggregates the account's full stake history
func (s *service) GetAccountStats(ctx context.Context, accountID uuid.UUID) (*AccountStatsResponse, error) {
	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	stakes, err := s.repo.GetStakesWithMarkets(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return ComputeAccountStats(accountID, account.Balance, stakes, s.config), nil
}

// GetMarketSeries builds the probability history of a market
func (s *service) GetMarketSeries(ctx context.Context, marketID uuid.UUID) (*SeriesResponse, error) {
	market, err := s.repo.GetMarketWithOptions(ctx, marketID)
	if err != nil {
		return nil, err
	}

	snapshots, err := s.repo.GetSnapshotsByMarket(ctx, marketID)
	if err != nil {
		return nil, err
	}

	return BuildProbabilitySeries(market, snapshots, s.config.MaxSeriesOptions), nil
}
