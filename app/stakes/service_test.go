package stakes

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gLogger "gorm.io/gorm/logger"

	"github.com/joefazee/creda/app/accounts"
	"github.com/joefazee/creda/internal/logger"
	"github.com/joefazee/creda/models"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{Logger: gLogger.Discard})
	require.NoError(t, err)

	return gormDB, sqlMock, db
}

func openBinaryMarket(id uuid.UUID) *models.Market {
	return &models.Market{
		ID:        id,
		Title:     "Will it happen?",
		Kind:      models.MarketKindBinary,
		Status:    models.MarketStatusOpen,
		CloseTime: time.Now().Add(time.Hour),
		Options: []models.MarketOption{
			{MarketID: id, OptionKey: models.BinaryOptionYes, Label: "Yes"},
			{MarketID: id, OptionKey: models.BinaryOptionNo, Label: "No", SortOrder: 1},
		},
	}
}

func TestService_PlaceStake(t *testing.T) {
	marketID := uuid.New()
	accountID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		repo := &MockRepository{}
		acctRepo := &accounts.MockRepository{}
		watcher := accounts.NewBalanceWatcher()
		svc := NewService(repo, acctRepo, gormDB, GetDefaultConfig(), watcher, logger.NewNullLogger())

		account := &models.Account{ID: accountID, Email: "a@b.com", Balance: decimal.NewFromInt(100)}

		repo.On("GetMarketWithOptions", mock.Anything, marketID).Return(openBinaryMarket(marketID), nil)
		acctRepo.On("GetByID", mock.Anything, accountID).Return(account, nil)
		acctRepo.On("DebitBalance", mock.Anything, accountID, mock.MatchedBy(func(amount decimal.Decimal) bool {
			return amount.Equal(decimal.NewFromInt(25))
		})).Return(nil)
		repo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(txn *models.Transaction) bool {
			return txn.TransactionType == models.TransactionTypeStakePlace &&
				txn.Amount.Equal(decimal.NewFromInt(-25)) &&
				txn.BalanceAfter.Equal(decimal.NewFromInt(75))
		})).Return(nil)
		repo.On("CreateStake", mock.Anything, mock.MatchedBy(func(s *models.Stake) bool {
			return s.OptionKey == models.BinaryOptionYes && s.Amount.Equal(decimal.NewFromInt(25))
		})).Return(nil)
		repo.On("AddToPools", mock.Anything, marketID, models.BinaryOptionYes, mock.MatchedBy(func(amount decimal.Decimal) bool {
			return amount.Equal(decimal.NewFromInt(25))
		})).Return(nil)
		repo.On("GetOptionTotals", mock.Anything, marketID).Return(models.StakeTotals{
			models.BinaryOptionYes: decimal.NewFromInt(25),
			models.BinaryOptionNo:  decimal.Zero,
		}, nil)
		repo.On("CreateSnapshot", mock.Anything, mock.MatchedBy(func(sn *models.Snapshot) bool {
			return sn.MarketID == marketID && sn.Totals[models.BinaryOptionYes].Equal(decimal.NewFromInt(25))
		})).Return(nil)

		ch := watcher.Subscribe(accountID)
		defer watcher.Unsubscribe(accountID, ch)

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		resp, err := svc.PlaceStake(context.Background(), accountID, marketID, &PlaceStakeRequest{
			OptionKey: models.BinaryOptionYes,
			Amount:    decimal.NewFromInt(25),
		})
		require.NoError(t, err)
		assert.Equal(t, marketID, resp.MarketID)
		assert.False(t, resp.Paid)

		select {
		case update := <-ch:
			assert.True(t, update.Balance.Equal(decimal.NewFromInt(75)))
		case <-time.After(time.Second):
			t.Fatal("no balance update delivered")
		}

		repo.AssertExpectations(t)
		acctRepo.AssertExpectations(t)
	})

	t.Run("Closed market", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		repo := &MockRepository{}
		acctRepo := &accounts.MockRepository{}
		svc := NewService(repo, acctRepo, gormDB, GetDefaultConfig(), accounts.NewBalanceWatcher(), logger.NewNullLogger())

		market := openBinaryMarket(marketID)
		market.Status = models.MarketStatusClosed
		repo.On("GetMarketWithOptions", mock.Anything, marketID).Return(market, nil)

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		_, err := svc.PlaceStake(context.Background(), accountID, marketID, &PlaceStakeRequest{
			OptionKey: models.BinaryOptionYes,
			Amount:    decimal.NewFromInt(10),
		})
		assert.ErrorIs(t, err, models.ErrMarketClosed)
		acctRepo.AssertNotCalled(t, "DebitBalance")
	})

	t.Run("Market past its close time", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		repo := &MockRepository{}
		acctRepo := &accounts.MockRepository{}
		svc := NewService(repo, acctRepo, gormDB, GetDefaultConfig(), accounts.NewBalanceWatcher(), logger.NewNullLogger())

		market := openBinaryMarket(marketID)
		market.CloseTime = time.Now().Add(-time.Minute)
		repo.On("GetMarketWithOptions", mock.Anything, marketID).Return(market, nil)

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		_, err := svc.PlaceStake(context.Background(), accountID, marketID, &PlaceStakeRequest{
			OptionKey: models.BinaryOptionYes,
			Amount:    decimal.NewFromInt(10),
		})
		assert.ErrorIs(t, err, models.ErrMarketClosed)
	})

	t.Run("Unknown option", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		repo := &MockRepository{}
		acctRepo := &accounts.MockRepository{}
		svc := NewService(repo, acctRepo, gormDB, GetDefaultConfig(), accounts.NewBalanceWatcher(), logger.NewNullLogger())

		repo.On("GetMarketWithOptions", mock.Anything, marketID).Return(openBinaryMarket(marketID), nil)

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		_, err := svc.PlaceStake(context.Background(), accountID, marketID, &PlaceStakeRequest{
			OptionKey: "maybe",
			Amount:    decimal.NewFromInt(10),
		})
		assert.ErrorIs(t, err, models.ErrInvalidOption)
	})

	t.Run("Insufficient balance rolls everything back", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		repo := &MockRepository{}
		acctRepo := &accounts.MockRepository{}
		svc := NewService(repo, acctRepo, gormDB, GetDefaultConfig(), accounts.NewBalanceWatcher(), logger.NewNullLogger())

		account := &models.Account{ID: accountID, Email: "a@b.com", Balance: decimal.NewFromInt(5)}
		repo.On("GetMarketWithOptions", mock.Anything, marketID).Return(openBinaryMarket(marketID), nil)
		acctRepo.On("GetByID", mock.Anything, accountID).Return(account, nil)
		acctRepo.On("DebitBalance", mock.Anything, accountID, mock.Anything).
			Return(models.ErrInsufficientBalance)

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		_, err := svc.PlaceStake(context.Background(), accountID, marketID, &PlaceStakeRequest{
			OptionKey: models.BinaryOptionYes,
			Amount:    decimal.NewFromInt(10),
		})
		assert.ErrorIs(t, err, models.ErrInsufficientBalance)
		repo.AssertNotCalled(t, "CreateStake")
	})

	t.Run("Amount below minimum", func(t *testing.T) {
		repo := &MockRepository{}
		acctRepo := &accounts.MockRepository{}
		svc := NewService(repo, acctRepo, nil, GetDefaultConfig(), accounts.NewBalanceWatcher(), logger.NewNullLogger())

		_, err := svc.PlaceStake(context.Background(), accountID, marketID, &PlaceStakeRequest{
			OptionKey: models.BinaryOptionYes,
			Amount:    decimal.NewFromFloat(0.4),
		})
		assert.ErrorIs(t, err, models.ErrInvalidStakeAmount)
		repo.AssertNotCalled(t, "GetMarketWithOptions")
	})

	t.Run("Amount above maximum", func(t *testing.T) {
		repo := &MockRepository{}
		acctRepo := &accounts.MockRepository{}
		svc := NewService(repo, acctRepo, nil, GetDefaultConfig(), accounts.NewBalanceWatcher(), logger.NewNullLogger())

		_, err := svc.PlaceStake(context.Background(), accountID, marketID, &PlaceStakeRequest{
			OptionKey: models.BinaryOptionYes,
			Amount:    decimal.NewFromInt(1000000),
		})
		assert.ErrorIs(t, err, models.ErrInvalidStakeAmount)
	})
}

func TestService_GetMarketLedger(t *testing.T) {
	marketID := uuid.New()

	t.Run("returns ledger oldest first", func(t *testing.T) {
		repo := &MockRepository{}
		svc := NewService(repo, &accounts.MockRepository{}, nil, GetDefaultConfig(),
			accounts.NewBalanceWatcher(), logger.NewNullLogger())

		first := time.Now().Add(-2 * time.Hour)
		second := time.Now().Add(-time.Hour)
		repo.On("GetMarketWithOptions", mock.Anything, marketID).Return(openBinaryMarket(marketID), nil)
		repo.On("GetByMarket", mock.Anything, marketID).Return([]models.Stake{
			{MarketID: marketID, OptionKey: models.BinaryOptionYes, Amount: decimal.NewFromInt(10), CreatedAt: first},
			{MarketID: marketID, OptionKey: models.BinaryOptionNo, Amount: decimal.NewFromInt(20), CreatedAt: second},
		}, nil)

		entries, err := svc.GetMarketLedger(context.Background(), marketID)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.True(t, entries[0].CreatedAt.Before(entries[1].CreatedAt))
	})

	t.Run("unknown market returns not found", func(t *testing.T) {
		repo := &MockRepository{}
		svc := NewService(repo, &accounts.MockRepository{}, nil, GetDefaultConfig(),
			accounts.NewBalanceWatcher(), logger.NewNullLogger())

		repo.On("GetMarketWithOptions", mock.Anything, marketID).Return(nil, models.ErrRecordNotFound)

		_, err := svc.GetMarketLedger(context.Background(), marketID)
		assert.ErrorIs(t, err, models.ErrRecordNotFound)
		repo.AssertNotCalled(t, "GetByMarket")
	})
}

func TestService_GetAccountStakes(t *testing.T) {
	accountID := uuid.New()

	repo := &MockRepository{}
	svc := NewService(repo, &accounts.MockRepository{}, nil, GetDefaultConfig(),
		accounts.NewBalanceWatcher(), logger.NewNullLogger())

	payout := decimal.NewFromInt(40)
	repo.On("GetByAccount", mock.Anything, accountID).Return([]models.Stake{
		{AccountID: accountID, OptionKey: models.BinaryOptionYes, Amount: decimal.NewFromInt(20), Paid: true, Payout: &payout},
	}, nil)

	stakes, err := svc.GetAccountStakes(context.Background(), accountID)
	require.NoError(t, err)
	require.Len(t, stakes, 1)
	assert.True(t, stakes[0].Paid)
	assert.True(t, stakes[0].Payout.Equal(payout))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid default", func(_ *Config) {}, false},
		{"zero minimum", func(c *Config) { c.MinStakeAmount = decimal.Zero }, true},
		{"max below min", func(c *Config) { c.MaxStakeAmount = decimal.NewFromFloat(0.5) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := GetDefaultConfig()
			tt.modify(config)
			err := config.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrInvalidStakeAmount)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
