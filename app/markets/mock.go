package markets

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/joefazee/creda/models"
)

// MockRepository is a mock implementation of the market Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) WithTx(_ *gorm.DB) Repository {
	return m
}

func (m *MockRepository) Create(ctx context.Context, market *models.Market, options []models.MarketOption) error {
	args := m.Called(ctx, market, options)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Market, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Market), args.Error(1)
}

func (m *MockRepository) GetAll(ctx context.Context, filters *MarketFilters) ([]models.Market, int64, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Market), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) Update(ctx context.Context, market *models.Market) error {
	args := m.Called(ctx, market)
	return args.Error(0)
}

func (m *MockRepository) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	args := m.Called(ctx, id, featured)
	return args.Error(0)
}

func (m *MockRepository) CloseExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockService is a mock implementation of the market Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CreateMarket(ctx context.Context, creatorID uuid.UUID, req *CreateMarketRequest) (*MarketResponse, error) {
	args := m.Called(ctx, creatorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MarketResponse), args.Error(1)
}

func (m *MockService) GetMarkets(ctx context.Context, filters *MarketFilters) (*MarketListResponse, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MarketListResponse), args.Error(1)
}

func (m *MockService) GetMarketByID(ctx context.Context, id uuid.UUID) (*MarketResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MarketResponse), args.Error(1)
}

func (m *MockService) EndMarket(ctx context.Context, id uuid.UUID) (*MarketResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MarketResponse), args.Error(1)
}

func (m *MockService) FeatureMarket(ctx context.Context, id uuid.UUID, featured bool) (*MarketResponse, error) {
	args := m.Called(ctx, id, featured)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MarketResponse), args.Error(1)
}

func (m *MockService) ProcessExpiredMarkets(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockService) InvalidateMarket(ctx context.Context, id uuid.UUID) {
	m.Called(ctx, id)
}
