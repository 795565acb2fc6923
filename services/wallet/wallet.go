package wallet

import (
	"context"
	"errors"

	walletRepo "spedocity/database/repository/wallet"
	"spedocity/models"

	"github.com/google/uuid"
)

// ErrInvalidAmount is returned for non-positive amounts.
var ErrInvalidAmount = errors.New("amount must be positive")

// ErrInsufficientBalance mirrors the repository error so callers do not
// import the storage layer.
var ErrInsufficientBalance = walletRepo.ErrInsufficientBalance

// WalletService manages prepaid balances and their ledgers.
type WalletService interface {
	Get(ctx context.Context, userID string) (*models.Wallet, error)
	TopUp(ctx context.Context, userID string, amount int, description string) (*models.Wallet, error)
	Charge(ctx context.Context, userID string, amount int, orderRef string) error
	Refund(ctx context.Context, userID string, amount int, orderRef string) error
	Transactions(ctx context.Context, userID string) ([]models.WalletTransaction, error)
}

// DefaultWalletService implements WalletService.
type DefaultWalletService struct {
	Repo walletRepo.WalletRepository
}

// Get returns the user's wallet, creating an empty one on first access.
func (s *DefaultWalletService) Get(ctx context.Context, userID string) (*models.Wallet, error) {
	return s.Repo.GetByUserID(userID)
}

// TopUp credits the wallet and returns the updated balance. There is no
// gateway behind this: the credit is applied directly.
func (s *DefaultWalletService) TopUp(ctx context.Context, userID string, amount int, description string) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	txn := &models.WalletTransaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		Amount:      amount,
		Description: description,
	}
	if err := s.Repo.Credit(txn); err != nil {
		return nil, err
	}
	return s.Repo.GetByUserID(userID)
}

// Charge debits the wallet for an order. Fails with ErrInsufficientBalance
// without touching the balance when funds do not cover the amount.
func (s *DefaultWalletService) Charge(ctx context.Context, userID string, amount int, orderRef string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return s.Repo.Debit(&models.WalletTransaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		Amount:      amount,
		Description: "Payment for booking " + orderRef,
		OrderRef:    orderRef,
	})
}

// Refund credits a previously charged amount back to the wallet.
func (s *DefaultWalletService) Refund(ctx context.Context, userID string, amount int, orderRef string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return s.Repo.Credit(&models.WalletTransaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		Amount:      amount,
		Description: "Refund for booking " + orderRef,
		OrderRef:    orderRef,
	})
}

// Transactions lists the user's ledger entries, newest first.
func (s *DefaultWalletService) Transactions(ctx context.Context, userID string) ([]models.WalletTransaction, error) {
	return s.Repo.ListTransactions(userID)
}
