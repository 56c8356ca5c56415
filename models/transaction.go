package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeSignupGrant TransactionType = "signup_grant"
	TransactionTypeTopUp       TransactionType = "topup"
	TransactionTypeStakePlace  TransactionType = "stake_place"
	TransactionTypePayout      TransactionType = "payout"
)

// Transaction represents a credit movement (immutable ledger)
type Transaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	AccountID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_account" json:"account_id"`
	TransactionType TransactionType `gorm:"type:varchar(20);not null" json:"transaction_type"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	BalanceBefore   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"balance_before"`
	BalanceAfter    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"balance_after"`
	ReferenceType   string          `gorm:"type:varchar(20)" json:"reference_type"` // 'stake', 'market'
	ReferenceID     *uuid.UUID      `gorm:"type:uuid" json:"reference_id"`
	Description     string          `gorm:"type:text" json:"description"`
	CreatedAt       time.Time       `gorm:"autoCreateTime;index:idx_transactions_created_at" json:"created_at"`

	// Associations (Note: Transactions are immutable, no updates)
	Account *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

// TableName specifies the table name for Transaction model
func (*Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate sets up the model before creation
func (t *Transaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// IsCredit checks if this is a credit transaction (positive amount)
func (t *Transaction) IsCredit() bool {
	return t.Amount.GreaterThan(decimal.Zero)
}

// IsDebit checks if this is a debit transaction (negative amount)
func (t *Transaction) IsDebit() bool {
	return t.Amount.LessThan(decimal.Zero)
}

// GetAbsoluteAmount returns the absolute value of the transaction amount
func (t *Transaction) GetAbsoluteAmount() decimal.Decimal {
	return t.Amount.Abs()
}

// IsBalanceConsistent checks if the balance calculation is consistent
func (t *Transaction) IsBalanceConsistent() bool {
	expectedBalance := t.BalanceBefore.Add(t.Amount)
	return expectedBalance.Equal(t.BalanceAfter)
}

// Validate performs validation on the transaction model
func (t *Transaction) Validate() error {
	if t.AccountID == uuid.Nil {
		return ErrInvalidAccountID
	}
	if t.Amount.IsZero() {
		return ErrInvalidTransactionAmount
	}
	if !t.IsBalanceConsistent() {
		return ErrInvalidTransactionAmount
	}
	if t.BalanceAfter.LessThan(decimal.Zero) {
		return ErrNegativeBalance
	}
	return nil
}

// CreateSignupGrantTransaction creates the starting-credit grant transaction
func CreateSignupGrantTransaction(accountID uuid.UUID) *Transaction {
	return &Transaction{
		AccountID:       accountID,
		TransactionType: TransactionTypeSignupGrant,
		Amount:          StartingBalance,
		BalanceBefore:   decimal.Zero,
		BalanceAfter:    StartingBalance,
		Description:     "Signup credit grant",
	}
}

// CreateTopUpTransaction creates an admin credit top-up transaction
func CreateTopUpTransaction(accountID uuid.UUID, amount, balanceBefore decimal.Decimal) *Transaction {
	return &Transaction{
		AccountID:       accountID,
		TransactionType: TransactionTypeTopUp,
		Amount:          amount,
		BalanceBefore:   balanceBefore,
		BalanceAfter:    balanceBefore.Add(amount),
		Description:     "Credit top-up",
	}
}

// CreateStakeTransaction creates a stake placement transaction
func CreateStakeTransaction(accountID uuid.UUID,
	amount, balanceBefore decimal.Decimal,
	stakeID uuid.UUID) *Transaction {
	return &Transaction{
		AccountID:       accountID,
		TransactionType: TransactionTypeStakePlace,
		Amount:          amount.Neg(), // Negative for stake placement
		BalanceBefore:   balanceBefore,
		BalanceAfter:    balanceBefore.Sub(amount),
		ReferenceType:   "stake",
		ReferenceID:     &stakeID,
		Description:     "Stake placement",
	}
}

// CreatePayoutTransaction creates a settlement payout transaction
func CreatePayoutTransaction(accountID uuid.UUID,
	amount, balanceBefore decimal.Decimal,
	marketID uuid.UUID) *Transaction {
	return &Transaction{
		AccountID:       accountID,
		TransactionType: TransactionTypePayout,
		Amount:          amount,
		BalanceBefore:   balanceBefore,
		BalanceAfter:    balanceBefore.Add(amount),
		ReferenceType:   "market",
		ReferenceID:     &marketID,
		Description:     "Market settlement payout",
	}
}
