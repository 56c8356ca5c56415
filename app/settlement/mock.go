package settlement

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/joefazee/creda/models"
)

// MockRepository is a mock implementation of the settlement Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) WithTx(_ *gorm.DB) Repository {
	return m
}

func (m *MockRepository) GetMarketForUpdate(ctx context.Context, id uuid.UUID) (*models.Market, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Market), args.Error(1)
}

func (m *MockRepository) GetStakesByMarket(ctx context.Context, marketID uuid.UUID) ([]models.Stake, error) {
	args := m.Called(ctx, marketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Stake), args.Error(1)
}

func (m *MockRepository) UpdateMarket(ctx context.Context, market *models.Market) error {
	args := m.Called(ctx, market)
	return args.Error(0)
}

func (m *MockRepository) MarkStakePaid(ctx context.Context, stakeID uuid.UUID, payout decimal.Decimal) error {
	args := m.Called(ctx, stakeID, payout)
	return args.Error(0)
}
