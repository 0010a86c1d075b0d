package services

import (
	"context"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/storage"
)

// Stores are the narrow slices of the repository each service needs.
type (
	TransactionStore interface {
		CreateTransaction(ctx context.Context, t core.Transaction) error
		ReplaceTransaction(ctx context.Context, t core.Transaction) (int64, error)
		SoftDeleteTransaction(ctx context.Context, id string) (int64, error)
		GetTransaction(ctx context.Context, id string) (core.Transaction, error)
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	BudgetStore interface {
		CreateBudget(ctx context.Context, b core.Budget) error
		ReplaceBudget(ctx context.Context, b core.Budget) error
		DeleteBudget(ctx context.Context, id string) error
		GetBudget(ctx context.Context, id string) (core.Budget, error)
		ListBudgets(ctx context.Context) ([]core.Budget, error)
	}

	// SyncPublisher hands sync work to the queue. Nil-able: when no
	// broker is configured the periodic catch-up scan still exports.
	SyncPublisher interface {
		PublishTransactionSync(ctx context.Context, msg *amqp.TransactionSyncMessage) error
	}
)

var _ TransactionStore = (*storage.SQLiteRepository)(nil)
var _ BudgetStore = (*storage.SQLiteRepository)(nil)
