package http

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"tally/internal/core"
)

// Wire shapes for write requests. Amounts travel as decimal strings
// ("12.34") and are parsed to cents at the boundary.
type transactionRequest struct {
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Account     string `json:"account"`
	Notes       string `json:"notes"`
	Description string `json:"description"`
	PaymentType string `json:"payment_type"`
}

type budgetRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Period   string `json:"period"`
}

// parseTransactionRequest decodes and converts a transaction payload.
// Validation of the converted transaction happens in the service.
func parseTransactionRequest(body io.Reader) (core.Transaction, error) {
	var req transactionRequest
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return core.Transaction{}, fmt.Errorf("decode transaction: %w", err)
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount %q: %w", req.Amount, err)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse date %q: %w", req.Date, err)
	}

	return core.Transaction{
		Type:        core.TransactionType(req.Type),
		Amount:      core.Money{Cents: cents},
		Currency:    sanitizeInput(req.Currency),
		Date:        date,
		Category:    sanitizeInput(req.Category),
		Account:     sanitizeInput(req.Account),
		Notes:       sanitizeInput(req.Notes),
		Description: sanitizeInput(req.Description),
		PaymentType: core.PaymentType(req.PaymentType),
	}, nil
}

// parseBudgetRequest decodes and converts a budget payload.
func parseBudgetRequest(body io.Reader) (core.Budget, error) {
	var req budgetRequest
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return core.Budget{}, fmt.Errorf("decode budget: %w", err)
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return core.Budget{}, fmt.Errorf("parse amount %q: %w", req.Amount, err)
	}

	return core.Budget{
		Name:     sanitizeInput(req.Name),
		Category: sanitizeInput(req.Category),
		Amount:   core.Money{Cents: cents},
		Period:   core.BudgetPeriod(req.Period),
	}, nil
}

// parseDate accepts a plain day or a full RFC 3339 instant.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
