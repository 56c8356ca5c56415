package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/joefazee/creda/internal/logger"
	"github.com/joefazee/creda/internal/security"
	"github.com/joefazee/creda/models"
)

// service implements the Service interface
type service struct {
	repo       Repository
	db         *gorm.DB
	config     *Config
	tokenMaker security.Maker
	watcher    *BalanceWatcher
	logger     logger.Logger
	validator  *validator.Validate
}

// NewService creates a new account service
func NewService(repo Repository,
	db *gorm.DB,
	config *Config,
	tokenMaker security.Maker,
	watcher *BalanceWatcher,
	lg logger.Logger) Service {
	return &service{
		repo:       repo,
		db:         db,
		config:     config,
		tokenMaker: tokenMaker,
		watcher:    watcher,
		logger:     lg,
		validator:  validator.New(),
	}
}

// Register creates an account with the starting credit grant and returns a
// bearer token. The account row and its grant transaction commit together.
func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	account := &models.Account{
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		DisplayName: strings.TrimSpace(req.DisplayName),
		Balance:     models.StartingBalance,
	}
	if err := account.SetPassword(req.Password); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)

		if err := repoTx.Create(ctx, account); err != nil {
			return fmt.Errorf("create account: %w", err)
		}

		grant := models.CreateSignupGrantTransaction(account.ID)
		if err := repoTx.CreateTransaction(ctx, grant); err != nil {
			return fmt.Errorf("create signup grant: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("account registered", map[string]interface{}{
		"account_id": account.ID.String(),
	})

	return s.buildAuthResponse(account)
}

// Login authenticates an account and returns a bearer token
func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	account, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.ErrUnauthorized
		}
		return nil, fmt.Errorf("get account by email: %w", err)
	}

	if !account.CheckPassword(req.Password) {
		return nil, models.ErrUnauthorized
	}

	account.UpdateLastLogin()
	if err := s.repo.Update(ctx, account); err != nil {
		s.logger.Error(err, map[string]interface{}{
			"account_id": account.ID.String(),
			"op":         "update last login",
		})
	}

	return s.buildAuthResponse(account)
}

// GetAccount returns the account profile with its current balance
func (s *service) GetAccount(ctx context.Context, id uuid.UUID) (*AccountResponse, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	resp := ToAccountResponse(account)
	return &resp, nil
}

// TopUp credits an account and appends the ledger transaction atomically
func (s *service) TopUp(ctx context.Context, accountID uuid.UUID, req *TopUpRequest) (*AccountResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, models.ErrInvalidTransactionAmount
	}

	var updated *models.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)

		account, err := repoTx.GetByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, models.ErrRecordNotFound) {
				return err
			}
			return fmt.Errorf("get account: %w", err)
		}

		if err := repoTx.CreditBalance(ctx, accountID, req.Amount); err != nil {
			return fmt.Errorf("credit balance: %w", err)
		}

		ledgerTx := models.CreateTopUpTransaction(accountID, req.Amount, account.Balance)
		if err := repoTx.CreateTransaction(ctx, ledgerTx); err != nil {
			return fmt.Errorf("create topup transaction: %w", err)
		}

		account.Balance = ledgerTx.BalanceAfter
		updated = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.watcher.Notify(accountID, updated.Balance)

	resp := ToAccountResponse(updated)
	return &resp, nil
}

// GetTransactions returns the account's ledger, newest first
func (s *service) GetTransactions(ctx context.Context, accountID uuid.UUID) ([]TransactionResponse, error) {
	transactions, err := s.repo.GetTransactionsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get transactions: %w", err)
	}
	return ToTransactionResponseList(transactions), nil
}

func (s *service) buildAuthResponse(account *models.Account) (*AuthResponse, error) {
	token, payload, err := s.tokenMaker.CreateToken(
		account.ID, s.config.TokenDuration, 1, security.TokenScopeAccess)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	return &AuthResponse{
		Account:     ToAccountResponse(account),
		AccessToken: token,
		ExpiresAt:   payload.ExpiredAt,
	}, nil
}

