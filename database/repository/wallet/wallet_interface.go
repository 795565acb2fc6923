package walletRepo

import "spedocity/models"

// WalletRepository defines methods for wallet data access. Debit must be
// atomic: it fails without modifying the balance when funds are insufficient.
type WalletRepository interface {
	// GetByUserID retrieves a user's wallet, creating an empty one if absent.
	GetByUserID(userID string) (*models.Wallet, error)
	// Credit adds to the balance and appends a ledger entry.
	Credit(txn *models.WalletTransaction) error
	// Debit subtracts from the balance and appends a ledger entry.
	// Returns ErrInsufficientBalance when the balance does not cover the amount.
	Debit(txn *models.WalletTransaction) error
	// ListTransactions retrieves a user's ledger entries, newest first.
	ListTransactions(userID string) ([]models.WalletTransaction, error)
}
