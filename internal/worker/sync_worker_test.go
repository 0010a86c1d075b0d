package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/sheets/memory"
	"tally/internal/storage"
)

type fakeSyncStore struct {
	items     map[string]core.Transaction
	pending   []storage.PendingSyncTransaction
	synced    []string
	errored   []string
	markFails bool
}

func newFakeSyncStore() *fakeSyncStore {
	return &fakeSyncStore{items: make(map[string]core.Transaction)}
}

func (f *fakeSyncStore) GetTransaction(_ context.Context, id string) (core.Transaction, error) {
	t, ok := f.items[id]
	if !ok {
		return core.Transaction{}, storage.ErrNotFound
	}
	return t, nil
}

func (f *fakeSyncStore) ListPendingSync(_ context.Context, limit int) ([]storage.PendingSyncTransaction, error) {
	if limit > len(f.pending) {
		limit = len(f.pending)
	}
	return f.pending[:limit], nil
}

func (f *fakeSyncStore) MarkSynced(_ context.Context, id string) error {
	if f.markFails {
		return errors.New("mark failed")
	}
	f.synced = append(f.synced, id)
	return nil
}

func (f *fakeSyncStore) MarkSyncError(_ context.Context, id string) error {
	f.errored = append(f.errored, id)
	return nil
}

func workerTxn(id string) core.Transaction {
	return core.Transaction{
		ID:       id,
		Type:     core.Expense,
		Amount:   core.Money{Cents: 1200},
		Currency: "EUR",
		Date:     time.Date(2026, 5, 3, 12, 0, 0, 0, time.UTC),
		Category: "Groceries",
		Account:  "Checking",
	}
}

func TestHandleSyncMessageUpserts(t *testing.T) {
	store := newFakeSyncStore()
	store.items["txn-1"] = workerTxn("txn-1")
	target := memory.New()
	w := NewSyncWorker(store, target, target, 10)

	msg := amqp.NewTransactionSyncMessage("txn-1", 1)
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(target.List()) != 1 {
		t.Fatalf("exported %d, want 1", len(target.List()))
	}
	if len(store.synced) != 1 || store.synced[0] != "txn-1" {
		t.Errorf("synced = %v", store.synced)
	}
}

func TestHandleSyncMessageMissingRowIsSkipped(t *testing.T) {
	store := newFakeSyncStore()
	target := memory.New()
	w := NewSyncWorker(store, target, target, 10)

	msg := amqp.NewTransactionSyncMessage("gone", 1)
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("missing row should not error: %v", err)
	}
	if len(target.List()) != 0 {
		t.Error("nothing should have been exported")
	}
}

func TestHandleDeleteMessage(t *testing.T) {
	store := newFakeSyncStore()
	target := memory.New()
	if _, err := target.Upsert(context.Background(), workerTxn("txn-1")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	w := NewSyncWorker(store, target, target, 10)

	msg := amqp.NewTransactionDeleteMessage("txn-1", 1)
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("handle delete: %v", err)
	}

	if len(target.List()) != 0 {
		t.Error("row not removed from target")
	}
	if len(store.synced) != 1 {
		t.Errorf("synced = %v", store.synced)
	}
}

func TestHandleDeleteMessageWithoutDeleter(t *testing.T) {
	store := newFakeSyncStore()
	w := NewSyncWorker(store, memory.New(), nil, 10)

	msg := amqp.NewTransactionDeleteMessage("txn-1", 1)
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("delete without deleter should be a no-op: %v", err)
	}
}

type failingWriter struct{}

func (failingWriter) Upsert(context.Context, core.Transaction) (string, error) {
	return "", errors.New("sheets unavailable")
}

func TestHandleSyncMessageMarksErrorOnExportFailure(t *testing.T) {
	store := newFakeSyncStore()
	store.items["txn-1"] = workerTxn("txn-1")
	w := NewSyncWorker(store, failingWriter{}, nil, 10)

	msg := amqp.NewTransactionSyncMessage("txn-1", 1)
	if err := w.HandleSyncMessage(context.Background(), msg); err == nil {
		t.Fatal("expected export error")
	}
	if len(store.errored) != 1 || store.errored[0] != "txn-1" {
		t.Errorf("errored = %v", store.errored)
	}
}

func TestProcessPendingMixedBatch(t *testing.T) {
	store := newFakeSyncStore()
	store.items["keep"] = workerTxn("keep")
	store.pending = []storage.PendingSyncTransaction{
		{ID: "keep", Version: 1},
		{ID: "gone", Version: 2, Deleted: true},
	}
	target := memory.New()
	if _, err := target.Upsert(context.Background(), workerTxn("gone")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	w := NewSyncWorker(store, target, target, 10)

	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatalf("process pending: %v", err)
	}

	items := target.List()
	if len(items) != 1 || items[0].ID != "keep" {
		t.Errorf("target = %+v", items)
	}
	if len(store.synced) != 2 {
		t.Errorf("synced = %v", store.synced)
	}
}

func TestProcessPendingMarksErrorForMissingRow(t *testing.T) {
	store := newFakeSyncStore()
	store.pending = []storage.PendingSyncTransaction{{ID: "phantom", Version: 1}}
	w := NewSyncWorker(store, memory.New(), nil, 10)

	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatalf("process pending: %v", err)
	}
	if len(store.errored) != 1 || store.errored[0] != "phantom" {
		t.Errorf("errored = %v", store.errored)
	}
}
