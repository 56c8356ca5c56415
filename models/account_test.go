package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccount(t *testing.T) {
	t.Run("TableName", func(t *testing.T) {
		a := Account{}
		assert.Equal(t, "accounts", a.TableName())
	})

	t.Run("BeforeCreate", func(t *testing.T) {
		a := Account{}
		assert.Equal(t, uuid.Nil, a.ID)

		err := a.BeforeCreate(nil)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, a.ID)

		existingID := uuid.New()
		a2 := Account{ID: existingID}
		err = a2.BeforeCreate(nil)
		assert.NoError(t, err)
		assert.Equal(t, existingID, a2.ID)
	})

	t.Run("SetPassword", func(t *testing.T) {
		a := Account{}

		err := a.SetPassword("short")
		assert.Equal(t, ErrPasswordTooShort, err)
		assert.Empty(t, a.PasswordHash)

		err = a.SetPassword("correct-horse")
		assert.NoError(t, err)
		assert.NotEmpty(t, a.PasswordHash)
		assert.NotEqual(t, "correct-horse", a.PasswordHash)
	})

	t.Run("CheckPassword", func(t *testing.T) {
		a := Account{}
		assert.NoError(t, a.SetPassword("correct-horse"))

		assert.True(t, a.CheckPassword("correct-horse"))
		assert.False(t, a.CheckPassword("wrong-horse"))
	})

	t.Run("CanDebit", func(t *testing.T) {
		a := Account{Balance: decimal.NewFromFloat(100)}

		assert.True(t, a.CanDebit(decimal.NewFromFloat(50)))
		assert.True(t, a.CanDebit(decimal.NewFromFloat(100)))
		assert.False(t, a.CanDebit(decimal.NewFromFloat(100.01)))
	})

	t.Run("Credit", func(t *testing.T) {
		a := Account{Balance: decimal.NewFromFloat(50)}

		err := a.Credit(decimal.NewFromFloat(25))
		assert.NoError(t, err)
		assert.True(t, decimal.NewFromFloat(75).Equal(a.Balance))

		err = a.Credit(decimal.Zero)
		assert.Equal(t, ErrInvalidTransactionAmount, err)

		err = a.Credit(decimal.NewFromFloat(-10))
		assert.Equal(t, ErrInvalidTransactionAmount, err)
	})

	t.Run("Debit", func(t *testing.T) {
		a := Account{Balance: decimal.NewFromFloat(100)}

		err := a.Debit(decimal.NewFromFloat(40))
		assert.NoError(t, err)
		assert.True(t, decimal.NewFromFloat(60).Equal(a.Balance))

		err = a.Debit(decimal.NewFromFloat(100))
		assert.Equal(t, ErrInsufficientBalance, err)

		err = a.Debit(decimal.Zero)
		assert.Equal(t, ErrInvalidTransactionAmount, err)
	})

	t.Run("Validate", func(t *testing.T) {
		validAccount := Account{
			Email:        "user@example.com",
			PasswordHash: "hash",
			Balance:      decimal.NewFromFloat(100),
		}

		tests := []struct {
			name   string
			modify func(*Account)
			err    error
		}{
			{"Valid Account", func(_ *Account) {}, nil},
			{"Missing Email", func(a *Account) { a.Email = "" }, ErrInvalidEmail},
			{"Missing Password", func(a *Account) { a.PasswordHash = "" }, ErrInvalidPassword},
			{"Negative Balance", func(a *Account) { a.Balance = decimal.NewFromFloat(-1) }, ErrNegativeBalance},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				account := validAccount
				tt.modify(&account)
				if tt.err != nil {
					assert.Equal(t, tt.err, account.Validate())
				} else {
					assert.NoError(t, account.Validate())
				}
			})
		}
	})

	t.Run("MaskSensitiveData", func(t *testing.T) {
		a := Account{Email: "user@example.com", PasswordHash: "secret-hash"}

		masked := a.MaskSensitiveData()
		assert.Equal(t, "***", masked.PasswordHash)
		assert.Equal(t, "***.com", masked.Email)
		assert.Equal(t, "secret-hash", a.PasswordHash)
	})

	t.Run("IsEmail", func(t *testing.T) {
		assert.True(t, IsEmail("user@example.com"))
		assert.False(t, IsEmail("user"))
		assert.False(t, IsEmail(""))
	})

	t.Run("HashPassword", func(t *testing.T) {
		hash, err := HashPassword("correct-horse")
		assert.NoError(t, err)
		assert.True(t, CheckPasswordHash("correct-horse", hash))
		assert.False(t, CheckPasswordHash("wrong-horse", hash))

		_, err = HashPassword("short")
		assert.Equal(t, ErrPasswordTooShort, err)
	})
}
