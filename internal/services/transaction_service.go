package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"tally/internal/amqp"
	"tally/internal/core"
)

// TransactionService orchestrates transaction writes across SQLite and
// the sync queue. The local write always wins: a failed publish is
// logged and left to the periodic catch-up scan.
type TransactionService struct {
	store     TransactionStore
	publisher SyncPublisher
}

func NewTransactionService(store TransactionStore, publisher SyncPublisher) *TransactionService {
	return &TransactionService{
		store:     store,
		publisher: publisher,
	}
}

// Create validates and stores a new transaction, then queues it for
// export. The assigned ID is returned on the stored copy.
func (s *TransactionService) Create(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Currency == "" {
		t.Currency = "EUR"
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	if err := s.store.CreateTransaction(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	s.publish(ctx, amqp.NewTransactionSyncMessage(t.ID, 1))
	return t, nil
}

// Update replaces an existing transaction wholesale and queues the new
// revision for export.
func (s *TransactionService) Update(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if t.Currency == "" {
		t.Currency = "EUR"
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	version, err := s.store.ReplaceTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, err
	}

	s.publish(ctx, amqp.NewTransactionSyncMessage(t.ID, version))
	return t, nil
}

// Delete soft-deletes a transaction and queues the remote removal.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	version, err := s.store.SoftDeleteTransaction(ctx, id)
	if err != nil {
		return err
	}

	s.publish(ctx, amqp.NewTransactionDeleteMessage(id, version))
	return nil
}

// Get returns a single transaction by ID.
func (s *TransactionService) Get(ctx context.Context, id string) (core.Transaction, error) {
	return s.store.GetTransaction(ctx, id)
}

// List returns all live transactions ordered by date.
func (s *TransactionService) List(ctx context.Context) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

func (s *TransactionService) publish(ctx context.Context, msg *amqp.TransactionSyncMessage) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message",
			"id", msg.ID, "op", msg.Op)
		return
	}
	if err := s.publisher.PublishTransactionSync(ctx, msg); err != nil {
		// Local write succeeded; the catch-up scan will retry
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", msg.ID, "op", msg.Op, "error", err)
	}
}
