package walletRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spedocity/database"
	"spedocity/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrInsufficientBalance is returned when a debit exceeds the wallet balance.
var ErrInsufficientBalance = errors.New("insufficient wallet balance")

// MongoWalletRepo implements WalletRepository using MongoDB.
type MongoWalletRepo struct {
	wallets *mongo.Collection
	ledger  *mongo.Collection
}

// NewMongoWalletRepo creates a new instance of WalletRepository using MongoDB.
func NewMongoWalletRepo() WalletRepository {
	repo := &MongoWalletRepo{
		wallets: database.Collection("wallets"),
		ledger:  database.Collection("wallet_transactions"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoWalletRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.wallets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create wallet index: %w", err)
	}
	if _, err := r.ledger.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	}); err != nil {
		return fmt.Errorf("failed to create ledger index: %w", err)
	}
	return nil
}

// GetByUserID retrieves a wallet, creating an empty one on first access.
func (r *MongoWalletRepo) GetByUserID(userID string) (*models.Wallet, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$setOnInsert": bson.M{"userId": userID, "balance": 0, "createdAt": now, "updatedAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var wallet models.Wallet
	if err := r.wallets.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).Decode(&wallet); err != nil {
		return nil, fmt.Errorf("failed to fetch wallet for user %s: %w", userID, err)
	}
	return &wallet, nil
}

// Credit adds to the balance and appends a ledger entry.
func (r *MongoWalletRepo) Credit(txn *models.WalletTransaction) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	txn.Kind = models.WalletCredit
	txn.CreatedAt = time.Now()

	update := bson.M{
		"$inc":         bson.M{"balance": txn.Amount},
		"$set":         bson.M{"updatedAt": txn.CreatedAt},
		"$setOnInsert": bson.M{"userId": txn.UserID, "createdAt": txn.CreatedAt},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.wallets.UpdateOne(ctx, bson.M{"userId": txn.UserID}, update, opts); err != nil {
		return fmt.Errorf("failed to credit wallet: %w", err)
	}

	if _, err := r.ledger.InsertOne(ctx, txn); err != nil {
		return fmt.Errorf("failed to record wallet credit: %w", err)
	}
	return nil
}

// Debit subtracts from the balance and appends a ledger entry. The balance
// guard is part of the update filter so a concurrent debit cannot overdraw.
func (r *MongoWalletRepo) Debit(txn *models.WalletTransaction) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	txn.Kind = models.WalletDebit
	txn.CreatedAt = time.Now()

	filter := bson.M{"userId": txn.UserID, "balance": bson.M{"$gte": txn.Amount}}
	update := bson.M{
		"$inc": bson.M{"balance": -txn.Amount},
		"$set": bson.M{"updatedAt": txn.CreatedAt},
	}
	result, err := r.wallets.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to debit wallet: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrInsufficientBalance
	}

	if _, err := r.ledger.InsertOne(ctx, txn); err != nil {
		return fmt.Errorf("failed to record wallet debit: %w", err)
	}
	return nil
}

// ListTransactions retrieves ledger entries for a user, newest first.
func (r *MongoWalletRepo) ListTransactions(userID string) ([]models.WalletTransaction, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.ledger.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve wallet transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var txns []models.WalletTransaction
	for cursor.Next(ctx) {
		var t models.WalletTransaction
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode wallet transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}
