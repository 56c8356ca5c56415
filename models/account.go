package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// StartingBalance is the credit grant every new account receives.
var StartingBalance = decimal.NewFromInt(100)

// Account represents a credit-holding user of the platform
type Account struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email        string          `gorm:"type:varchar(255);not null;unique;index" json:"email"`
	PasswordHash string          `gorm:"type:varchar(255);not null" json:"-"` // Never expose password
	DisplayName  string          `gorm:"type:varchar(100)" json:"display_name"`
	IsAdmin      bool            `gorm:"default:false" json:"is_admin"`
	Balance      decimal.Decimal `gorm:"type:decimal(20,2);default:0.00;check:balance >= 0" json:"balance"`
	LastLoginAt  *time.Time      `gorm:"type:timestamptz" json:"last_login_at"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	Stakes       []Stake       `gorm:"foreignKey:AccountID" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"-"`
}

// TableName specifies the table name for Account model
func (*Account) TableName() string {
	return "accounts"
}

// BeforeCreate sets up the model before creation
func (a *Account) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// SetPassword hashes and sets the account password
func (a *Account) SetPassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies the provided password against the stored hash
func (a *Account) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	return err == nil
}

// CanDebit checks if the account has sufficient balance for a debit
func (a *Account) CanDebit(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

// Credit adds credits to the account balance
func (a *Account) Credit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidTransactionAmount
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Debit removes credits from the account balance
func (a *Account) Debit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidTransactionAmount
	}
	if !a.CanDebit(amount) {
		return ErrInsufficientBalance
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

// UpdateLastLogin stamps the last successful login time
func (a *Account) UpdateLastLogin() {
	now := time.Now()
	a.LastLoginAt = &now
}

// Validate performs validation on the account model
func (a *Account) Validate() error {
	if a.Email == "" {
		return ErrInvalidEmail
	}
	if a.PasswordHash == "" {
		return ErrInvalidPassword
	}
	if a.Balance.LessThan(decimal.Zero) {
		return ErrNegativeBalance
	}
	return nil
}

// MaskSensitiveData masks sensitive information for logging/auditing
func (a *Account) MaskSensitiveData() *Account {
	masked := *a
	masked.PasswordHash = "***"
	if len(masked.Email) > 4 {
		masked.Email = "***" + masked.Email[len(masked.Email)-4:]
	}
	return &masked
}

func IsEmail(identity string) bool {
	return identity != "" && strings.Contains(identity, "@") && strings.Contains(identity, ".")
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
