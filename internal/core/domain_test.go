package core

import (
	"errors"
	"testing"
	"time"
)

func validTransaction() Transaction {
	return Transaction{
		ID:       "t1",
		Type:     Expense,
		Amount:   Money{Cents: 1250},
		Currency: "EUR",
		Date:     time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
		Category: "Groceries",
		Account:  "Checking",
	}
}

func TestTransactionValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"valid", func(tx *Transaction) {}, nil},
		{"zero amount allowed", func(tx *Transaction) { tx.Amount.Cents = 0 }, nil},
		{"transfer type", func(tx *Transaction) { tx.Type = Transfer }, nil},
		{"payment type set", func(tx *Transaction) { tx.PaymentType = PaymentCash }, nil},
		{"negative amount", func(tx *Transaction) { tx.Amount.Cents = -1 }, ErrInvalidAmount},
		{"unknown type", func(tx *Transaction) { tx.Type = "refund" }, ErrInvalidType},
		{"zero date", func(tx *Transaction) { tx.Date = time.Time{} }, ErrInvalidDate},
		{"bad currency", func(tx *Transaction) { tx.Currency = "eur" }, ErrInvalidCurrency},
		{"short currency", func(tx *Transaction) { tx.Currency = "EU" }, ErrInvalidCurrency},
		{"blank category", func(tx *Transaction) { tx.Category = "  " }, ErrEmptyCategory},
		{"blank account", func(tx *Transaction) { tx.Account = "" }, ErrEmptyAccount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := validTransaction()
			tc.mutate(&tx)
			err := tx.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestBudgetValidate(t *testing.T) {
	valid := Budget{ID: "b1", Category: "Groceries", Amount: Money{Cents: 40000}, Period: Monthly}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid budget rejected: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*Budget)
		wantErr error
	}{
		{"zero amount", func(b *Budget) { b.Amount.Cents = 0 }, ErrInvalidAmount},
		{"negative amount", func(b *Budget) { b.Amount.Cents = -100 }, ErrInvalidAmount},
		{"blank category", func(b *Budget) { b.Category = "" }, ErrEmptyCategory},
		{"unknown period", func(b *Budget) { b.Period = "daily" }, ErrInvalidPeriod},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := valid
			tc.mutate(&b)
			if err := b.Validate(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestPaymentTypeIsValid(t *testing.T) {
	for _, p := range []PaymentType{"", PaymentTransfer, PaymentDebitCard, PaymentCreditCard, PaymentCash} {
		if !p.IsValid() {
			t.Errorf("%q should be valid", p)
		}
	}
	if PaymentType("cheque").IsValid() {
		t.Error("unknown payment type accepted")
	}
}
