package wallet

import (
	"context"
	"testing"
	"time"

	walletRepo "spedocity/database/repository/wallet"
	"spedocity/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryWalletRepo struct {
	balances map[string]int
	ledger   []models.WalletTransaction
}

func newMemoryWalletRepo() *memoryWalletRepo {
	return &memoryWalletRepo{balances: make(map[string]int)}
}

func (r *memoryWalletRepo) GetByUserID(userID string) (*models.Wallet, error) {
	return &models.Wallet{UserID: userID, Balance: r.balances[userID]}, nil
}

func (r *memoryWalletRepo) Credit(txn *models.WalletTransaction) error {
	txn.Kind = models.WalletCredit
	txn.CreatedAt = time.Now()
	r.balances[txn.UserID] += txn.Amount
	r.ledger = append([]models.WalletTransaction{*txn}, r.ledger...)
	return nil
}

func (r *memoryWalletRepo) Debit(txn *models.WalletTransaction) error {
	if r.balances[txn.UserID] < txn.Amount {
		return walletRepo.ErrInsufficientBalance
	}
	txn.Kind = models.WalletDebit
	txn.CreatedAt = time.Now()
	r.balances[txn.UserID] -= txn.Amount
	r.ledger = append([]models.WalletTransaction{*txn}, r.ledger...)
	return nil
}

func (r *memoryWalletRepo) ListTransactions(userID string) ([]models.WalletTransaction, error) {
	var out []models.WalletTransaction
	for _, t := range r.ledger {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func TestWalletService(t *testing.T) {
	ctx := context.Background()

	t.Run("topup then charge then refund", func(t *testing.T) {
		repo := newMemoryWalletRepo()
		svc := &DefaultWalletService{Repo: repo}

		w, err := svc.TopUp(ctx, "user-1", 500, "initial top-up")
		require.NoError(t, err)
		assert.Equal(t, 500, w.Balance)

		require.NoError(t, svc.Charge(ctx, "user-1", 349, "SPD123"))
		w, err = svc.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 151, w.Balance)

		require.NoError(t, svc.Refund(ctx, "user-1", 349, "SPD123"))
		w, err = svc.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 500, w.Balance)

		txns, err := svc.Transactions(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, txns, 3)
		assert.Equal(t, models.WalletCredit, txns[0].Kind)
		assert.Equal(t, models.WalletDebit, txns[1].Kind)
		assert.Equal(t, "SPD123", txns[0].OrderRef)
	})

	t.Run("overdraw is rejected", func(t *testing.T) {
		svc := &DefaultWalletService{Repo: newMemoryWalletRepo()}
		err := svc.Charge(ctx, "user-1", 100, "SPD1")
		assert.ErrorIs(t, err, ErrInsufficientBalance)
	})

	t.Run("non-positive amounts are rejected", func(t *testing.T) {
		svc := &DefaultWalletService{Repo: newMemoryWalletRepo()}

		_, err := svc.TopUp(ctx, "user-1", 0, "")
		assert.ErrorIs(t, err, ErrInvalidAmount)
		assert.ErrorIs(t, svc.Charge(ctx, "user-1", -5, "SPD1"), ErrInvalidAmount)
		assert.ErrorIs(t, svc.Refund(ctx, "user-1", 0, "SPD1"), ErrInvalidAmount)
	})
}
