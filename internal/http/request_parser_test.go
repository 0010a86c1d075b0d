package http

import (
	"errors"
	"strings"
	"testing"
	"time"

	"tally/internal/core"
)

func TestParseTransactionRequest(t *testing.T) {
	body := `{
		"type": "expense",
		"amount": "12,34",
		"currency": "usd",
		"date": "2026-03-14",
		"category": "  Groceries ",
		"account": "Checking",
		"description": "weekly shop"
	}`

	txn, err := parseTransactionRequest(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if txn.Amount.Cents != 1234 {
		t.Errorf("cents = %d", txn.Amount.Cents)
	}
	if txn.Category != "Groceries" {
		t.Errorf("category = %q, want trimmed", txn.Category)
	}
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if !txn.Date.Equal(want) {
		t.Errorf("date = %v, want %v", txn.Date, want)
	}
}

func TestParseTransactionRequestAcceptsRFC3339Date(t *testing.T) {
	body := `{
		"type": "income",
		"amount": "1",
		"date": "2026-03-14T09:30:00Z",
		"category": "Salary",
		"account": "Checking"
	}`

	txn, err := parseTransactionRequest(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if txn.Date.Hour() != 9 {
		t.Errorf("date = %v", txn.Date)
	}
}

func TestParseTransactionRequestErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"bad amount", `{"amount": "12.3.4", "date": "2026-01-01"}`, core.ErrInvalidAmount},
		{"signed amount", `{"amount": "-1", "date": "2026-01-01"}`, core.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseTransactionRequest(strings.NewReader(tt.body))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := parseTransactionRequest(strings.NewReader(`{"amount": "1", "date": "14-03-2026"}`)); err == nil {
		t.Error("expected date parse error")
	}
}

func TestParseBudgetRequest(t *testing.T) {
	budget, err := parseBudgetRequest(strings.NewReader(`{
		"name": "Food", "category": "Food", "amount": "400.00", "period": "monthly"
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if budget.Amount.Cents != 40000 || budget.Period != core.Monthly {
		t.Errorf("budget = %+v", budget)
	}
}
