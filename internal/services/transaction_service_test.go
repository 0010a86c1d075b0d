package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/storage"
)

type fakeTxnStore struct {
	items    map[string]core.Transaction
	versions map[string]int64
	order    []string
}

func newFakeTxnStore() *fakeTxnStore {
	return &fakeTxnStore{
		items:    make(map[string]core.Transaction),
		versions: make(map[string]int64),
	}
}

func (f *fakeTxnStore) CreateTransaction(_ context.Context, t core.Transaction) error {
	f.items[t.ID] = t
	f.versions[t.ID] = 1
	f.order = append(f.order, t.ID)
	return nil
}

func (f *fakeTxnStore) ReplaceTransaction(_ context.Context, t core.Transaction) (int64, error) {
	if _, ok := f.items[t.ID]; !ok {
		return 0, storage.ErrNotFound
	}
	f.items[t.ID] = t
	f.versions[t.ID]++
	return f.versions[t.ID], nil
}

func (f *fakeTxnStore) SoftDeleteTransaction(_ context.Context, id string) (int64, error) {
	if _, ok := f.items[id]; !ok {
		return 0, storage.ErrNotFound
	}
	v := f.versions[id]
	delete(f.items, id)
	return v, nil
}

func (f *fakeTxnStore) GetTransaction(_ context.Context, id string) (core.Transaction, error) {
	t, ok := f.items[id]
	if !ok {
		return core.Transaction{}, storage.ErrNotFound
	}
	return t, nil
}

func (f *fakeTxnStore) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	var out []core.Transaction
	for _, id := range f.order {
		if t, ok := f.items[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakePublisher struct {
	published []*amqp.TransactionSyncMessage
	err       error
}

func (f *fakePublisher) PublishTransactionSync(_ context.Context, msg *amqp.TransactionSyncMessage) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

func newTxn() core.Transaction {
	return core.Transaction{
		Type:     core.Expense,
		Amount:   core.Money{Cents: 2500},
		Date:     time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC),
		Category: "Groceries",
		Account:  "Checking",
	}
}

func TestCreateAssignsIDAndPublishes(t *testing.T) {
	store := newFakeTxnStore()
	pub := &fakePublisher{}
	svc := NewTransactionService(store, pub)

	created, err := svc.Create(context.Background(), newTxn())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Error("no ID assigned")
	}
	if created.Currency != "EUR" {
		t.Errorf("currency = %q, want default EUR", created.Currency)
	}

	if len(pub.published) != 1 {
		t.Fatalf("published %d messages, want 1", len(pub.published))
	}
	msg := pub.published[0]
	if msg.ID != created.ID || msg.Version != 1 || msg.Op != amqp.OpUpsert {
		t.Errorf("message = %+v", msg)
	}
}

func TestCreateRejectsInvalidTransaction(t *testing.T) {
	store := newFakeTxnStore()
	svc := NewTransactionService(store, &fakePublisher{})

	bad := newTxn()
	bad.Category = ""
	if _, err := svc.Create(context.Background(), bad); !errors.Is(err, core.ErrEmptyCategory) {
		t.Errorf("err = %v, want ErrEmptyCategory", err)
	}
	if len(store.items) != 0 {
		t.Error("invalid transaction reached the store")
	}
}

func TestCreateSurvivesPublishFailure(t *testing.T) {
	store := newFakeTxnStore()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewTransactionService(store, pub)

	created, err := svc.Create(context.Background(), newTxn())
	if err != nil {
		t.Fatalf("create should not fail on publish error: %v", err)
	}
	if _, ok := store.items[created.ID]; !ok {
		t.Error("transaction not stored")
	}
}

func TestCreateWithoutPublisher(t *testing.T) {
	svc := NewTransactionService(newFakeTxnStore(), nil)

	if _, err := svc.Create(context.Background(), newTxn()); err != nil {
		t.Fatalf("create without publisher: %v", err)
	}
}

func TestUpdatePublishesBumpedVersion(t *testing.T) {
	store := newFakeTxnStore()
	pub := &fakePublisher{}
	svc := NewTransactionService(store, pub)

	created, err := svc.Create(context.Background(), newTxn())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Amount = core.Money{Cents: 5000}
	if _, err := svc.Update(context.Background(), created); err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(pub.published) != 2 {
		t.Fatalf("published %d messages, want 2", len(pub.published))
	}
	msg := pub.published[1]
	if msg.Version != 2 || msg.Op != amqp.OpUpsert {
		t.Errorf("update message = %+v", msg)
	}
}

func TestUpdateMissingTransaction(t *testing.T) {
	svc := NewTransactionService(newFakeTxnStore(), &fakePublisher{})

	missing := newTxn()
	missing.ID = "nope"
	if _, err := svc.Update(context.Background(), missing); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeletePublishesDeleteOp(t *testing.T) {
	store := newFakeTxnStore()
	pub := &fakePublisher{}
	svc := NewTransactionService(store, pub)

	created, err := svc.Create(context.Background(), newTxn())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	msg := pub.published[len(pub.published)-1]
	if msg.Op != amqp.OpDelete || msg.ID != created.ID {
		t.Errorf("delete message = %+v", msg)
	}

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("delete missing: err = %v, want ErrNotFound", err)
	}
}
