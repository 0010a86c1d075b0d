package sheets

import (
	"context"

	"tally/internal/core"
)

// Ports for outbound spreadsheet adapters.
type (
	// TransactionWriter mirrors a transaction into the export target.
	// Upserts are idempotent: re-exporting the same ID overwrites the
	// previous row instead of duplicating it.
	TransactionWriter interface {
		Upsert(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}

	// TransactionDeleter removes a transaction's row from the export
	// target. Deleting an ID that was never exported is not an error.
	TransactionDeleter interface {
		Delete(ctx context.Context, id string) error
	}
)
