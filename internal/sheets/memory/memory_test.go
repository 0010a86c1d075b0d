package memory

import (
	"context"
	"testing"
	"time"

	"tally/internal/core"
)

func testTxn(id string, cents int64) core.Transaction {
	return core.Transaction{
		ID:       id,
		Type:     core.Expense,
		Amount:   core.Money{Cents: cents},
		Currency: "EUR",
		Date:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Category: "Groceries",
		Account:  "Checking",
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.Upsert(ctx, testTxn("a", 100)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := s.Upsert(ctx, testTxn("b", 200)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	// same ID again with a new amount replaces, not duplicates
	if _, err := s.Upsert(ctx, testTxn("a", 300)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	items := s.List()
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ID != "a" || items[0].Amount.Cents != 300 {
		t.Errorf("items[0] = %+v", items[0])
	}
}

func TestUpsertRejectsInvalidTransaction(t *testing.T) {
	s := New()
	bad := testTxn("a", 100)
	bad.Category = ""

	if _, err := s.Upsert(context.Background(), bad); err == nil {
		t.Error("expected validation error")
	}
}

func TestDeleteUnknownIDIsNoop(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Delete(ctx, "missing"); err != nil {
		t.Fatalf("delete unknown: %v", err)
	}

	if _, err := s.Upsert(ctx, testTxn("a", 100)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(s.List()) != 0 {
		t.Error("deleted item still listed")
	}
}
