package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income   TransactionType = "income"
	Expense  TransactionType = "expense"
	Transfer TransactionType = "transfer"
)

const (
	PaymentTransfer   PaymentType = "transfer"
	PaymentDebitCard  PaymentType = "debit_card"
	PaymentCreditCard PaymentType = "credit_card"
	PaymentCash       PaymentType = "cash"
)

const (
	Weekly  BudgetPeriod = "weekly"
	Monthly BudgetPeriod = "monthly"
	Yearly  BudgetPeriod = "yearly"
)

type (
	TransactionType string

	PaymentType string

	BudgetPeriod string

	Money struct {
		Cents int64
	}

	// Transaction is a single ledger entry. The sign of the movement is
	// carried by Type, never by Amount.
	Transaction struct {
		ID          string
		Type        TransactionType
		Amount      Money
		Currency    string
		Date        time.Time
		Category    string
		Account     string
		Notes       string
		Description string
		PaymentType PaymentType
	}

	// Budget is a spending ceiling for a category over a calendar period.
	Budget struct {
		ID        string
		Name      string
		Category  string
		Amount    Money
		Period    BudgetPeriod
		CreatedAt time.Time
		UpdatedAt time.Time
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidPeriod   = errors.New("invalid budget period")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidCurrency = errors.New("invalid currency code")
	ErrEmptyCategory   = errors.New("empty category")
	ErrEmptyAccount    = errors.New("empty account")
)

// IsValid reports whether the transaction type is one of the known values.
func (t TransactionType) IsValid() bool {
	switch t {
	case Income, Expense, Transfer:
		return true
	}
	return false
}

// IsValid reports whether the payment type is known. The empty string is
// valid: payment type is optional and purely descriptive.
func (p PaymentType) IsValid() bool {
	switch p {
	case "", PaymentTransfer, PaymentDebitCard, PaymentCreditCard, PaymentCash:
		return true
	}
	return false
}

// IsValid reports whether the budget period is one of the known values.
func (p BudgetPeriod) IsValid() bool {
	switch p {
	case Weekly, Monthly, Yearly:
		return true
	}
	return false
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if t.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if !validCurrency(t.Currency) {
		return ErrInvalidCurrency
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(t.Account) == "" {
		return ErrEmptyAccount
	}
	if !t.PaymentType.IsValid() {
		return errors.New("invalid payment type")
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	// Zero or negative ceilings are rejected here so the evaluator can
	// divide by Amount without guarding.
	if err := b.Amount.Validate(); err != nil {
		return err
	}
	if !b.Period.IsValid() {
		return ErrInvalidPeriod
	}
	if len(b.Name) > 100 {
		return errors.New("name too long (max 100 characters)")
	}
	return nil
}

// validCurrency checks for a three-letter uppercase ISO 4217 code.
func validCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
