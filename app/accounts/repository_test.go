package accounts

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joefazee/creda/models"
)

func TestRepository_DebitBalance(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		repo := NewRepository(gormDB)
		accountID := uuid.New()

		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(regexp.QuoteMeta(
			`UPDATE "accounts" SET "balance"=balance - $1 WHERE id = $2 AND balance >= $3`)).
			WithArgs(sqlmock.AnyArg(), accountID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		sqlMock.ExpectCommit()

		err := repo.DebitBalance(context.Background(), accountID, decimal.NewFromInt(10))
		assert.NoError(t, err)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("Insufficient balance", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		repo := NewRepository(gormDB)
		accountID := uuid.New()

		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(regexp.QuoteMeta(
			`UPDATE "accounts" SET "balance"=balance - $1 WHERE id = $2 AND balance >= $3`)).
			WithArgs(sqlmock.AnyArg(), accountID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))
		sqlMock.ExpectCommit()

		err := repo.DebitBalance(context.Background(), accountID, decimal.NewFromInt(10))
		assert.Equal(t, models.ErrInsufficientBalance, err)
	})
}

func TestRepository_CreditBalance(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		repo := NewRepository(gormDB)
		accountID := uuid.New()

		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(regexp.QuoteMeta(
			`UPDATE "accounts" SET "balance"=balance + $1 WHERE id = $2`)).
			WithArgs(sqlmock.AnyArg(), accountID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		sqlMock.ExpectCommit()

		err := repo.CreditBalance(context.Background(), accountID, decimal.NewFromInt(10))
		assert.NoError(t, err)
	})

	t.Run("Unknown account", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		repo := NewRepository(gormDB)
		accountID := uuid.New()

		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(regexp.QuoteMeta(
			`UPDATE "accounts" SET "balance"=balance + $1 WHERE id = $2`)).
			WithArgs(sqlmock.AnyArg(), accountID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		sqlMock.ExpectCommit()

		err := repo.CreditBalance(context.Background(), accountID, decimal.NewFromInt(10))
		assert.Equal(t, models.ErrRecordNotFound, err)
	})
}

func TestRepository_GetByEmail(t *testing.T) {
	gormDB, sqlMock, db := newTestDB(t)
	defer db.Close()

	repo := NewRepository(gormDB)
	accountID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "email"}).AddRow(accountID, "user@example.com")
	sqlMock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "accounts" WHERE email = $1`)).
		WithArgs("user@example.com", 1).
		WillReturnRows(rows)

	account, err := repo.GetByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, accountID, account.ID)
	assert.Equal(t, "user@example.com", account.Email)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	gormDB, sqlMock, db := newTestDB(t)
	defer db.Close()

	repo := NewRepository(gormDB)
	accountID := uuid.New()

	sqlMock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "accounts" WHERE id = $1`)).
		WithArgs(accountID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	_, err := repo.GetByID(context.Background(), accountID)
	assert.ErrorIs(t, err, models.ErrRecordNotFound)
}

func TestRepository_GetByEmail_NotFound(t *testing.T) {
	gormDB, sqlMock, db := newTestDB(t)
	defer db.Close()

	repo := NewRepository(gormDB)

	sqlMock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "accounts" WHERE email = $1`)).
		WithArgs("ghost@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, models.ErrRecordNotFound)
}
