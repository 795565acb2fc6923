package models

import "time"

// Wallet holds a user's prepaid balance.
type Wallet struct {
	UserID    string    `bson:"userId" json:"userId"`
	Balance   int       `bson:"balance" json:"balance"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// WalletTransaction is one append-only ledger entry.
type WalletTransaction struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"userId" json:"userId"`
	Kind        string    `bson:"kind" json:"kind"` // "credit" or "debit"
	Amount      int       `bson:"amount" json:"amount"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	OrderRef    string    `bson:"orderRef,omitempty" json:"orderRef,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

const (
	WalletCredit = "credit"
	WalletDebit  = "debit"
)
