package settlement

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
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

func newTestService(repo Repository, acctRepo accounts.Repository, db *gorm.DB, watcher *accounts.BalanceWatcher) Service {
	return NewService(repo, acctRepo, db, GetDefaultConfig(), watcher, nil, logger.NewNullLogger())
}

type mockInvalidator struct {
	mock.Mock
}

func (m *mockInvalidator) InvalidateMarket(ctx context.Context, id uuid.UUID) {
	m.Called(ctx, id)
}

func resolvableMarket(id uuid.UUID, totalPool int64) *models.Market {
	return &models.Market{
		ID:        id,
		Title:     "Resolvable",
		Kind:      models.MarketKindBinary,
		Status:    models.MarketStatusClosed,
		CloseTime: time.Now().Add(-time.Hour),
		TotalPool: decimal.NewFromInt(totalPool),
	}
}

func TestService_ResolveMarket(t *testing.T) {
	marketID := uuid.New()

	t.Run("pays every winner and closes the market", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		repo := &MockRepository{}
		acctRepo := &accounts.MockRepository{}
		watcher := accounts.NewBalanceWatcher()
		svc := newTestService(repo, acctRepo, gormDB, watcher)

		winnerA := models.Stake{ID: uuid.New(), AccountID: uuid.New(), OptionKey: models.BinaryOptionYes, Amount: decimal.NewFromInt(10)}
		winnerB := models.Stake{ID: uuid.New(), AccountID: uuid.New(), OptionKey: models.BinaryOptionYes, Amount: decimal.NewFromInt(30)}
		loser := models.Stake{ID: uuid.New(), AccountID: uuid.New(), OptionKey: models.BinaryOptionNo, Amount: decimal.NewFromInt(60)}

		repo.On("GetMarketForUpdate", mock.Anything, marketID).Return(resolvableMarket(marketID, 100), nil)
		repo.On("GetStakesByMarket", mock.Anything, marketID).Return([]models.Stake{winnerA, winnerB, loser}, nil)
		repo.On("MarkStakePaid", mock.Anything, winnerA.ID, mock.MatchedBy(func(amount decimal.Decimal) bool {
			return amount.Equal(decimal.NewFromInt(25))
		})).Return(nil)
		repo.On("MarkStakePaid", mock.Anything, winnerB.ID, mock.MatchedBy(func(amount decimal.Decimal) bool {
			return amount.Equal(decimal.NewFromInt(75))
		})).Return(nil)
		repo.On("UpdateMarket", mock.Anything, mock.MatchedBy(func(m *models.Market) bool {
			return m.Resolved && m.WinningOption == models.BinaryOptionYes && m.ResolvedAt != nil
		})).Return(nil)

		acctRepo.On("GetByID", mock.Anything, winnerA.AccountID).
			Return(&models.Account{ID: winnerA.AccountID, Email: "a@b.com", Balance: decimal.NewFromInt(90)}, nil)
		acctRepo.On("GetByID", mock.Anything, winnerB.AccountID).
			Return(&models.Account{ID: winnerB.AccountID, Email: "b@b.com", Balance: decimal.NewFromInt(70)}, nil)
		acctRepo.On("CreditBalance", mock.Anything, winnerA.AccountID, mock.Anything).Return(nil)
		acctRepo.On("CreditBalance", mock.Anything, winnerB.AccountID, mock.Anything).Return(nil)
		acctRepo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(txn *models.Transaction) bool {
			return txn.TransactionType == models.TransactionTypePayout && txn.ReferenceID != nil && *txn.ReferenceID == marketID
		})).Return(nil).Twice()

		ch := watcher.Subscribe(winnerA.AccountID)
		defer watcher.Unsubscribe(winnerA.AccountID, ch)

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		resp, err := svc.ResolveMarket(context.Background(), marketID, models.BinaryOptionYes)
		require.NoError(t, err)
		assert.Equal(t, models.BinaryOptionYes, resp.WinningOption)
		assert.True(t, resp.WinningPool.Equal(decimal.NewFromInt(40)))
		require.Len(t, resp.Payouts, 2)

		sum := decimal.Zero
		for _, p := range resp.Payouts {
			sum = sum.Add(p.Amount)
		}
		assert.True(t, sum.Equal(resp.TotalPool))

		select {
		case update := <-ch:
			assert.True(t, update.Balance.Equal(decimal.NewFromInt(115)))
		case <-time.After(time.Second):
			t.Fatal("no balance update delivered")
		}

		repo.AssertExpectations(t)
		acctRepo.AssertExpectations(t)
	})

	t.Run("already resolved market is rejected", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		repo := &MockRepository{}
		svc := newTestService(repo, &accounts.MockRepository{}, gormDB, accounts.NewBalanceWatcher())

		market := resolvableMarket(marketID, 100)
		market.Resolved = true
		market.WinningOption = models.BinaryOptionNo
		repo.On("GetMarketForUpdate", mock.Anything, marketID).Return(market, nil)

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		_, err := svc.ResolveMarket(context.Background(), marketID, models.BinaryOptionYes)
		assert.ErrorIs(t, err, models.ErrMarketAlreadyResolved)
		repo.AssertNotCalled(t, "UpdateMarket")
	})

	t.Run("unknown winning option is rejected", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		repo := &MockRepository{}
		svc := newTestService(repo, &accounts.MockRepository{}, gormDB, accounts.NewBalanceWatcher())

		repo.On("GetMarketForUpdate", mock.Anything, marketID).Return(resolvableMarket(marketID, 100), nil)

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		_, err := svc.ResolveMarket(context.Background(), marketID, "maybe")
		assert.ErrorIs(t, err, models.ErrInvalidOption)
	})

	t.Run("zero winning pool resolves with no payouts", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		repo := &MockRepository{}
		acctRepo := &accounts.MockRepository{}
		svc := newTestService(repo, acctRepo, gormDB, accounts.NewBalanceWatcher())

		loser := models.Stake{ID: uuid.New(), AccountID: uuid.New(), OptionKey: models.BinaryOptionNo, Amount: decimal.NewFromInt(50)}
		repo.On("GetMarketForUpdate", mock.Anything, marketID).Return(resolvableMarket(marketID, 50), nil)
		repo.On("GetStakesByMarket", mock.Anything, marketID).Return([]models.Stake{loser}, nil)
		repo.On("UpdateMarket", mock.Anything, mock.Anything).Return(nil)

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		resp, err := svc.ResolveMarket(context.Background(), marketID, models.BinaryOptionYes)
		require.NoError(t, err)
		assert.Empty(t, resp.Payouts)
		acctRepo.AssertNotCalled(t, "CreditBalance")
	})

	t.Run("drops the market's cached copies after resolution", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		repo := &MockRepository{}
		invalidator := &mockInvalidator{}
		svc := NewService(repo, &accounts.MockRepository{}, gormDB, GetDefaultConfig(),
			accounts.NewBalanceWatcher(), invalidator, logger.NewNullLogger())

		repo.On("GetMarketForUpdate", mock.Anything, marketID).Return(resolvableMarket(marketID, 0), nil)
		repo.On("GetStakesByMarket", mock.Anything, marketID).Return([]models.Stake{}, nil)
		repo.On("UpdateMarket", mock.Anything, mock.Anything).Return(nil)
		invalidator.On("InvalidateMarket", mock.Anything, marketID).Once()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		_, err := svc.ResolveMarket(context.Background(), marketID, models.BinaryOptionYes)
		require.NoError(t, err)
		invalidator.AssertExpectations(t)
	})

	t.Run("failed resolution leaves caches alone", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		repo := &MockRepository{}
		invalidator := &mockInvalidator{}
		svc := NewService(repo, &accounts.MockRepository{}, gormDB, GetDefaultConfig(),
			accounts.NewBalanceWatcher(), invalidator, logger.NewNullLogger())

		market := resolvableMarket(marketID, 100)
		market.Resolved = true
		market.WinningOption = models.BinaryOptionNo
		repo.On("GetMarketForUpdate", mock.Anything, marketID).Return(market, nil)

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		_, err := svc.ResolveMarket(context.Background(), marketID, models.BinaryOptionYes)
		assert.ErrorIs(t, err, models.ErrMarketAlreadyResolved)
		invalidator.AssertNotCalled(t, "InvalidateMarket", mock.Anything, mock.Anything)
	})

	t.Run("serialization failures exhaust retries into a conflict", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		repo := &MockRepository{}
		svc := newTestService(repo, &accounts.MockRepository{}, gormDB, accounts.NewBalanceWatcher())

		serializationErr := &pq.Error{Code: "40001"}
		repo.On("GetMarketForUpdate", mock.Anything, marketID).Return(nil, serializationErr)

		for i := 0; i < GetDefaultConfig().MaxRetries; i++ {
			sqlMock.ExpectBegin()
			sqlMock.ExpectRollback()
		}

		_, err := svc.ResolveMarket(context.Background(), marketID, models.BinaryOptionYes)
		assert.ErrorIs(t, err, models.ErrConcurrencyConflict)
		repo.AssertNumberOfCalls(t, "GetMarketForUpdate", GetDefaultConfig().MaxRetries)
	})

	t.Run("deadlock recovers on a later attempt", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		repo := &MockRepository{}
		svc := newTestService(repo, &accounts.MockRepository{}, gormDB, accounts.NewBalanceWatcher())

		deadlockErr := &pq.Error{Code: "40P01"}
		repo.On("GetMarketForUpdate", mock.Anything, marketID).Return(nil, deadlockErr).Once()
		repo.On("GetMarketForUpdate", mock.Anything, marketID).Return(resolvableMarket(marketID, 0), nil)
		repo.On("GetStakesByMarket", mock.Anything, marketID).Return([]models.Stake{}, nil)
		repo.On("UpdateMarket", mock.Anything, mock.Anything).Return(nil)

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		resp, err := svc.ResolveMarket(context.Background(), marketID, models.BinaryOptionYes)
		require.NoError(t, err)
		assert.Empty(t, resp.Payouts)
	})
}
