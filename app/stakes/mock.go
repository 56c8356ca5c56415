package stakes

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/joefazee/creda/models"
)

// MockRepository is a mock implementation of the stake Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) WithTx(_ *gorm.DB) Repository {
	return m
}

func (m *MockRepository) GetMarketWithOptions(ctx context.Context, id uuid.UUID) (*models.Market, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Market), args.Error(1)
}

func (m *MockRepository) CreateStake(ctx context.Context, stake *models.Stake) error {
	args := m.Called(ctx, stake)
	return args.Error(0)
}

func (m *MockRepository) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockRepository) AddToPools(ctx context.Context, marketID uuid.UUID, optionKey string, amount decimal.Decimal) error {
	args := m.Called(ctx, marketID, optionKey, amount)
	return args.Error(0)
}

func (m *MockRepository) GetOptionTotals(ctx context.Context, marketID uuid.UUID) (models.StakeTotals, error) {
	args := m.Called(ctx, marketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.StakeTotals), args.Error(1)
}

func (m *MockRepository) CreateSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockRepository) GetByMarket(ctx context.Context, marketID uuid.UUID) ([]models.Stake, error) {
	args := m.Called(ctx, marketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Stake), args.Error(1)
}

func (m *MockRepository) GetByAccount(ctx context.Context, accountID uuid.UUID) ([]models.Stake, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Stake), args.Error(1)
}
