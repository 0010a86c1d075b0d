package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"tally/internal/analytics"
	"tally/internal/clock"
	"tally/internal/core"
)

func seedTxn(store *fakeTxnStore, id string, typ core.TransactionType, cents int64, date time.Time, category string) {
	store.CreateTransaction(context.Background(), core.Transaction{
		ID:       id,
		Type:     typ,
		Amount:   core.Money{Cents: cents},
		Currency: "EUR",
		Date:     date,
		Category: category,
		Account:  "Checking",
	})
}

func TestAnalyticsDashboard(t *testing.T) {
	store := newFakeTxnStore()
	now := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)
	seedTxn(store, "a", core.Income, 100000, now.AddDate(0, 0, -10), "Salary")
	seedTxn(store, "b", core.Expense, 20000, now.AddDate(0, 0, -5), "Groceries")

	svc := NewAnalyticsService(store, newFakeBudgetStore(), clock.Fixed(now))
	stats, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if stats.TotalIncome.Cents != 100000 || stats.TotalExpense.Cents != 20000 || stats.Balance.Cents != 80000 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestAnalyticsBudgetSummariesUseInjectedClock(t *testing.T) {
	txns := newFakeTxnStore()
	budgets := newFakeBudgetStore()
	now := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)

	// One expense inside the current month, one far outside
	seedTxn(txns, "in", core.Expense, 30000, now.AddDate(0, 0, -1), "Groceries")
	seedTxn(txns, "out", core.Expense, 99900, now.AddDate(0, -2, 0), "Groceries")

	budgets.CreateBudget(context.Background(), core.Budget{
		ID:       "bud-1",
		Category: "Groceries",
		Amount:   core.Money{Cents: 40000},
		Period:   core.Monthly,
	})

	svc := NewAnalyticsService(txns, budgets, clock.Fixed(now))
	summaries, err := svc.BudgetSummaries(context.Background())
	if err != nil {
		t.Fatalf("budget summaries: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}
	if summaries[0].Spent.Cents != 30000 || summaries[0].Remaining.Cents != 10000 {
		t.Errorf("summary = %+v", summaries[0])
	}
}

func TestAnalyticsForecastEmptyHistory(t *testing.T) {
	svc := NewAnalyticsService(newFakeTxnStore(), newFakeBudgetStore(), clock.System())

	_, err := svc.Forecast(context.Background(), 3)
	if !errors.Is(err, analytics.ErrNoHistory) {
		t.Errorf("err = %v, want ErrNoHistory", err)
	}
}

func TestAnalyticsInsights(t *testing.T) {
	store := newFakeTxnStore()
	now := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)
	seedTxn(store, "a", core.Income, 100000, now.AddDate(0, 0, -10), "Salary")
	seedTxn(store, "b", core.Expense, 30000, now.AddDate(0, 0, -5), "Rent")
	seedTxn(store, "c", core.Expense, 10000, now.AddDate(0, 0, -4), "Groceries")

	svc := NewAnalyticsService(store, newFakeBudgetStore(), clock.Fixed(now))
	report, err := svc.Insights(context.Background())
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	if report.HighestExpenseCategory == nil || report.HighestExpenseCategory.Category != "Rent" {
		t.Errorf("highest = %+v", report.HighestExpenseCategory)
	}
	if report.SavingsRate != 60 {
		t.Errorf("savings rate = %v, want 60", report.SavingsRate)
	}
}
