package markets

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gLogger "gorm.io/gorm/logger"

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

func TestRepository_CloseExpired(t *testing.T) {
	t.Run("closes expired open markets", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		repo := NewRepository(gormDB)

		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(regexp.QuoteMeta(
			`UPDATE "markets" SET "status"=$1 WHERE status = $2 AND close_time <= $3`)).
			WithArgs(models.MarketStatusClosed, models.MarketStatusOpen, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 2))
		sqlMock.ExpectCommit()

		closed, err := repo.CloseExpired(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(2), closed)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("no expired markets is not an error", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		repo := NewRepository(gormDB)

		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(regexp.QuoteMeta(`UPDATE "markets" SET "status"=$1`)).
			WithArgs(models.MarketStatusClosed, models.MarketStatusOpen, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))
		sqlMock.ExpectCommit()

		closed, err := repo.CloseExpired(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(0), closed)
	})
}

func TestRepository_SetFeatured(t *testing.T) {
	t.Run("updates the featured flag", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		repo := NewRepository(gormDB)
		id := uuid.New()

		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(regexp.QuoteMeta(
			`UPDATE "markets" SET "featured"=$1 WHERE id = $2`)).
			WithArgs(true, id).
			WillReturnResult(sqlmock.NewResult(0, 1))
		sqlMock.ExpectCommit()

		err := repo.SetFeatured(context.Background(), id, true)
		assert.NoError(t, err)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown market returns not found", func(t *testing.T) {
		gormDB, sqlMock, db := newTestDB(t)
		defer db.Close()

		repo := NewRepository(gormDB)
		id := uuid.New()

		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(regexp.QuoteMeta(`UPDATE "markets" SET "featured"=$1`)).
			WithArgs(false, id).
			WillReturnResult(sqlmock.NewResult(0, 0))
		sqlMock.ExpectCommit()

		err := repo.SetFeatured(context.Background(), id, false)
		assert.Equal(t, models.ErrRecordNotFound, err)
	})
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	gormDB, sqlMock, db := newTestDB(t)
	defer db.Close()

	repo := NewRepository(gormDB)
	id := uuid.New()

	sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "markets" WHERE id = $1`)).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), id)
	assert.Equal(t, models.ErrRecordNotFound, err)
}
