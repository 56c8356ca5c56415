package accounts

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gLogger "gorm.io/gorm/logger"

	"github.com/joefazee/creda/internal/logger"
	"github.com/joefazee/creda/internal/security"
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

func newTestService(t *testing.T, repo Repository, db *gorm.DB) Service {
	maker, err := security.NewPasetoMaker("12345678901234567890123456789012")
	require.NoError(t, err)

	cfg := GetDefaultConfig()
	return NewService(repo, db, cfg, maker, NewBalanceWatcher(), logger.NewNullLogger())
}

func TestService_Register(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		mockRepo := new(MockRepository)
		srvc := newTestService(t, mockRepo, gormDB)

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *models.Account) bool {
			return a.Email == "user@example.com" && a.Balance.Equal(models.StartingBalance)
		})).Return(nil)
		mockRepo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.TransactionType == models.TransactionTypeSignupGrant &&
				tx.Amount.Equal(models.StartingBalance)
		})).Return(nil)

		resp, err := srvc.Register(context.Background(), &RegisterRequest{
			Email:    "User@Example.com",
			Password: "correct-horse",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "user@example.com", resp.Account.Email)
		assert.True(t, models.StartingBalance.Equal(resp.Account.Balance))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Short password", func(t *testing.T) {
		gormDB, _, db := newTestDB(t)
		defer db.Close()

		srvc := newTestService(t, new(MockRepository), gormDB)

		_, err := srvc.Register(context.Background(), &RegisterRequest{
			Email:    "user@example.com",
			Password: "short",
		})
		assert.Error(t, err)
	})

	t.Run("Invalid email", func(t *testing.T) {
		gormDB, _, db := newTestDB(t)
		defer db.Close()

		srvc := newTestService(t, new(MockRepository), gormDB)

		_, err := srvc.Register(context.Background(), &RegisterRequest{
			Email:    "not-an-email",
			Password: "correct-horse",
		})
		assert.Error(t, err)
	})
}

func TestService_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		gormDB, _, db := newTestDB(t)
		defer db.Close()

		account := &models.Account{ID: uuid.New(), Email: "user@example.com"}
		require.NoError(t, account.SetPassword("correct-horse"))

		mockRepo := new(MockRepository)
		mockRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(account, nil)
		mockRepo.On("Update", mock.Anything, account).Return(nil)

		srvc := newTestService(t, mockRepo, gormDB)

		resp, err := srvc.Login(context.Background(), &LoginRequest{
			Email:    "user@example.com",
			Password: "correct-horse",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Wrong password", func(t *testing.T) {
		gormDB, _, db := newTestDB(t)
		defer db.Close()

		account := &models.Account{ID: uuid.New(), Email: "user@example.com"}
		require.NoError(t, account.SetPassword("correct-horse"))

		mockRepo := new(MockRepository)
		mockRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(account, nil)

		srvc := newTestService(t, mockRepo, gormDB)

		_, err := srvc.Login(context.Background(), &LoginRequest{
			Email:    "user@example.com",
			Password: "wrong-horse",
		})
		assert.Equal(t, models.ErrUnauthorized, err)
	})

	t.Run("Unknown email", func(t *testing.T) {
		gormDB, _, db := newTestDB(t)
		defer db.Close()

		mockRepo := new(MockRepository)
		mockRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, models.ErrRecordNotFound)

		srvc := newTestService(t, mockRepo, gormDB)

		_, err := srvc.Login(context.Background(), &LoginRequest{
			Email:    "ghost@example.com",
			Password: "correct-horse",
		})
		assert.Equal(t, models.ErrUnauthorized, err)
	})
}

func TestService_TopUp(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		accountID := uuid.New()
		account := &models.Account{ID: accountID, Email: "user@example.com", Balance: decimal.NewFromInt(20)}

		mockRepo := new(MockRepository)
		mockRepo.On("GetByID", mock.Anything, accountID).Return(account, nil)
		mockRepo.On("CreditBalance", mock.Anything, accountID, decimal.NewFromInt(50)).Return(nil)
		mockRepo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.TransactionType == models.TransactionTypeTopUp &&
				tx.BalanceAfter.Equal(decimal.NewFromInt(70))
		})).Return(nil)

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		srvc := newTestService(t, mockRepo, gormDB)

		resp, err := srvc.TopUp(context.Background(), accountID, &TopUpRequest{Amount: decimal.NewFromInt(50)})

		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(70).Equal(resp.Balance))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Non positive amount", func(t *testing.T) {
		gormDB, _, db := newTestDB(t)
		defer db.Close()

		srvc := newTestService(t, new(MockRepository), gormDB)

		_, err := srvc.TopUp(context.Background(), uuid.New(), &TopUpRequest{Amount: decimal.Zero})
		assert.Equal(t, models.ErrInvalidTransactionAmount, err)
	})

	t.Run("Unknown account", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		accountID := uuid.New()
		mockRepo := new(MockRepository)
		mockRepo.On("GetByID", mock.Anything, accountID).Return(nil, models.ErrRecordNotFound)

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		srvc := newTestService(t, mockRepo, gormDB)

		_, err := srvc.TopUp(context.Background(), accountID, &TopUpRequest{Amount: decimal.NewFromInt(10)})
		assert.Equal(t, models.ErrRecordNotFound, err)
	})
}

func TestService_GetTransactions(t *testing.T) {
	gormDB, _, db := newTestDB(t)
	defer db.Close()

	accountID := uuid.New()
	transactions := []models.Transaction{
		{ID: uuid.New(), AccountID: accountID, TransactionType: models.TransactionTypeTopUp},
		{ID: uuid.New(), AccountID: accountID, TransactionType: models.TransactionTypeStakePlace},
	}

	mockRepo := new(MockRepository)
	mockRepo.On("GetTransactionsByAccount", mock.Anything, accountID).Return(transactions, nil)

	srvc := newTestService(t, mockRepo, gormDB)

	result, err := srvc.GetTransactions(context.Background(), accountID)
	assert.NoError(t, err)
	assert.Len(t, result, 2)
	mockRepo.AssertExpectations(t)
}
