package services

import (
	"context"
	"fmt"

	"tally/internal/analytics"
	"tally/internal/clock"
	"tally/internal/core"
)

// AnalyticsService loads the stored collections and feeds them to the
// pure computations in the analytics package. The injected clock pins
// "now" for budget windows and growth comparisons.
type AnalyticsService struct {
	txns    TransactionStore
	budgets BudgetStore
	clock   clock.Clock
}

// InsightsReport bundles the derived observations served together on
// the insights endpoint.
type InsightsReport struct {
	HighestExpenseCategory *core.CategorySummary
	FastestGrowingCategory *core.CategoryGrowth
	SavingsRate            float64
}

func NewAnalyticsService(txns TransactionStore, budgets BudgetStore, clk clock.Clock) *AnalyticsService {
	return &AnalyticsService{txns: txns, budgets: budgets, clock: clk}
}

// Dashboard computes aggregate statistics over all live transactions.
func (s *AnalyticsService) Dashboard(ctx context.Context) (core.DashboardStats, error) {
	txns, err := s.txns.ListTransactions(ctx)
	if err != nil {
		return core.DashboardStats{}, fmt.Errorf("load transactions: %w", err)
	}
	return analytics.ComputeDashboardStats(txns), nil
}

// BudgetSummaries evaluates every budget against current spending.
func (s *AnalyticsService) BudgetSummaries(ctx context.Context) ([]core.BudgetSummary, error) {
	budgets, err := s.budgets.ListBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}
	txns, err := s.txns.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	return analytics.EvaluateBudgets(budgets, txns, s.clock.Now()), nil
}

// DuplicateGroups finds clusters of likely double-entered transactions.
func (s *AnalyticsService) DuplicateGroups(ctx context.Context) ([][]core.Transaction, error) {
	txns, err := s.txns.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	return analytics.FindDuplicateGroups(txns), nil
}

// Forecast projects net cash flow for the coming periods.
func (s *AnalyticsService) Forecast(ctx context.Context, periods int) (core.CashFlowForecast, error) {
	txns, err := s.txns.ListTransactions(ctx)
	if err != nil {
		return core.CashFlowForecast{}, fmt.Errorf("load transactions: %w", err)
	}
	return analytics.ForecastCashFlow(txns, periods)
}

// Insights derives the headline observations from current data.
func (s *AnalyticsService) Insights(ctx context.Context) (InsightsReport, error) {
	txns, err := s.txns.ListTransactions(ctx)
	if err != nil {
		return InsightsReport{}, fmt.Errorf("load transactions: %w", err)
	}

	stats := analytics.ComputeDashboardStats(txns)
	return InsightsReport{
		HighestExpenseCategory: analytics.HighestExpenseCategory(stats),
		FastestGrowingCategory: analytics.FastestGrowingCategory(txns, s.clock.Now()),
		SavingsRate:            analytics.SavingsRate(stats),
	}, nil
}
