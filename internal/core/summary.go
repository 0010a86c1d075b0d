package core

// Derived shapes. None of these are persisted: every one is recomputed
// wholesale from the transaction and budget collections.

// CategorySummary is the expense total for one category with its share of
// the overall expense total. Color is a stable chart color assigned by rank.
type CategorySummary struct {
	Category   string
	Total      Money
	Percentage float64
	Color      string
}

// AccountSummary is the signed net balance for one account (income adds,
// expense subtracts, transfers contribute nothing). Percentage is relative
// to the sum of absolute net balances across all accounts.
type AccountSummary struct {
	Account    string
	Total      Money
	Percentage float64
}

// MonthlyData is the income/expense breakdown for one calendar month.
// Month is a "YYYY-MM" key.
type MonthlyData struct {
	Month   string
	Income  Money
	Expense Money
	Balance Money
}

// DashboardStats is the full dashboard aggregate over a transaction list.
type DashboardStats struct {
	TotalIncome        Money
	TotalExpense       Money
	Balance            Money
	ByCategory         []CategorySummary
	ByAccount          []AccountSummary
	ByMonth            []MonthlyData
	RecentTransactions []Transaction
}

// BudgetSummary is the consumption of one budget in its current period
// window. Percentage is unclamped: 150 means exceeded by half.
type BudgetSummary struct {
	Budget     Budget
	Spent      Money
	Remaining  Money
	Percentage float64
}

// CashFlowPoint is the observed net flow (income minus expense) for one
// calendar month.
type CashFlowPoint struct {
	Period  string
	NetFlow Money
}

// ForecastPoint is a projected net flow for a future calendar month.
type ForecastPoint struct {
	Period           string
	PredictedNetFlow Money
}

// CashFlowForecast pairs observed history with a flat-line projection.
type CashFlowForecast struct {
	History  []CashFlowPoint
	Forecast []ForecastPoint
}

// CategoryGrowth compares one category's spend in the current calendar
// month against the immediately preceding one.
type CategoryGrowth struct {
	Category  string
	Current   Money
	Previous  Money
	GrowthPct float64
}
