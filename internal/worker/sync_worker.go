package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tally/internal/amqp"
	"tally/internal/sheets"
	"tally/internal/storage"

	"tally/internal/core"
)

// SyncStore is the repository surface the worker needs.
type SyncStore interface {
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
	ListPendingSync(ctx context.Context, limit int) ([]storage.PendingSyncTransaction, error)
	MarkSynced(ctx context.Context, id string) error
	MarkSyncError(ctx context.Context, id string) error
}

// SyncWorker mirrors local transactions into the spreadsheet. Queue
// messages drive the common path; a periodic scan over pending rows
// recovers anything the queue lost.
type SyncWorker struct {
	store     SyncStore
	writer    sheets.TransactionWriter
	deleter   sheets.TransactionDeleter
	batchSize int
}

func NewSyncWorker(store SyncStore, writer sheets.TransactionWriter, deleter sheets.TransactionDeleter, batchSize int) *SyncWorker {
	return &SyncWorker{
		store:     store,
		writer:    writer,
		deleter:   deleter,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single queue message.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"id", msg.ID,
		"version", msg.Version,
		"op", msg.Op)

	if msg.Op == amqp.OpDelete {
		return w.deleteFromSheets(ctx, msg.ID)
	}

	txn, err := w.store.GetTransaction(ctx, msg.ID)
	if errors.Is(err, storage.ErrNotFound) {
		// Row was deleted after the upsert was queued; the delete
		// message will handle the remote side
		slog.InfoContext(ctx, "Transaction gone, skipping upsert", "id", msg.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	return w.exportToSheets(ctx, txn)
}

// ProcessPending exports transactions the queue never delivered. This
// is the backup mechanism behind lost messages and worker downtime.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	return w.processPending(ctx, w.batchSize)
}

// StartupSyncCheck drains a larger pending backlog once at worker
// startup.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	return w.processPending(ctx, w.batchSize*5)
}

func (w *SyncWorker) processPending(ctx context.Context, limit int) error {
	pending, err := w.store.ListPendingSync(ctx, limit)
	if err != nil {
		return fmt.Errorf("list pending sync: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending transactions", "count", len(pending))

	synced := 0
	for _, p := range pending {
		if p.Deleted {
			if err := w.deleteFromSheets(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to delete pending transaction",
					"id", p.ID, "error", err)
				continue
			}
			synced++
			continue
		}

		txn, err := w.store.GetTransaction(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to load pending transaction",
				"id", p.ID, "error", err)
			if markErr := w.store.MarkSyncError(ctx, p.ID); markErr != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", markErr)
			}
			continue
		}

		if err := w.exportToSheets(ctx, txn); err != nil {
			slog.ErrorContext(ctx, "Failed to export pending transaction",
				"id", p.ID, "error", err)
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Pending sync pass completed",
		"total", len(pending),
		"synced", synced)

	return nil
}

func (w *SyncWorker) exportToSheets(ctx context.Context, txn core.Transaction) error {
	ref, err := w.writer.Upsert(ctx, txn)
	if err != nil {
		if markErr := w.store.MarkSyncError(ctx, txn.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", txn.ID, "error", markErr)
		}
		return fmt.Errorf("upsert to sheets: %w", err)
	}

	if err := w.store.MarkSynced(ctx, txn.ID); err != nil {
		// The export itself worked; log and move on
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", txn.ID, "error", err)
	}

	slog.InfoContext(ctx, "Transaction exported",
		"id", txn.ID,
		"sheets_ref", ref,
		"amount_cents", txn.Amount.Cents)

	return nil
}

func (w *SyncWorker) deleteFromSheets(ctx context.Context, id string) error {
	if w.deleter == nil {
		slog.WarnContext(ctx, "No deleter configured, skipping remote deletion", "id", id)
		return nil
	}

	if err := w.deleter.Delete(ctx, id); err != nil {
		if markErr := w.store.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", id, "error", markErr)
		}
		return fmt.Errorf("delete from sheets: %w", err)
	}

	if err := w.store.MarkSynced(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to confirm deletion", "id", id, "error", err)
	}

	slog.InfoContext(ctx, "Transaction removed from sheet", "id", id)
	return nil
}
