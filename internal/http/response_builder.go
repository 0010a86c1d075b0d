package http

import (
	"tally/internal/core"
	"tally/internal/services"
)

// Wire shapes for responses. Every monetary field carries both raw
// cents and a formatted decimal string.
type transactionResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Account     string `json:"account"`
	Notes       string `json:"notes,omitempty"`
	Description string `json:"description,omitempty"`
	PaymentType string `json:"payment_type,omitempty"`
}

type budgetResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Period      string `json:"period"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type categorySummaryResponse struct {
	Category   string  `json:"category"`
	Total      string  `json:"total"`
	TotalCents int64   `json:"total_cents"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

type accountSummaryResponse struct {
	Account    string  `json:"account"`
	Total      string  `json:"total"`
	TotalCents int64   `json:"total_cents"`
	Percentage float64 `json:"percentage"`
}

type monthlyDataResponse struct {
	Month        string `json:"month"`
	IncomeCents  int64  `json:"income_cents"`
	ExpenseCents int64  `json:"expense_cents"`
	BalanceCents int64  `json:"balance_cents"`
}

type dashboardResponse struct {
	TotalIncome        string                    `json:"total_income"`
	TotalIncomeCents   int64                     `json:"total_income_cents"`
	TotalExpense       string                    `json:"total_expense"`
	TotalExpenseCents  int64                     `json:"total_expense_cents"`
	Balance            string                    `json:"balance"`
	BalanceCents       int64                     `json:"balance_cents"`
	ByCategory         []categorySummaryResponse `json:"by_category"`
	ByAccount          []accountSummaryResponse  `json:"by_account"`
	ByMonth            []monthlyDataResponse     `json:"by_month"`
	RecentTransactions []transactionResponse     `json:"recent_transactions"`
}

type budgetSummaryResponse struct {
	Budget         budgetResponse `json:"budget"`
	Spent          string         `json:"spent"`
	SpentCents     int64          `json:"spent_cents"`
	Remaining      string         `json:"remaining"`
	RemainingCents int64          `json:"remaining_cents"`
	Percentage     float64        `json:"percentage"`
}

type cashFlowPointResponse struct {
	Period       string `json:"period"`
	NetFlowCents int64  `json:"net_flow_cents"`
}

type forecastPointResponse struct {
	Period                string `json:"period"`
	PredictedNetFlowCents int64  `json:"predicted_net_flow_cents"`
}

type forecastResponse struct {
	History  []cashFlowPointResponse `json:"history"`
	Forecast []forecastPointResponse `json:"forecast"`
}

type categoryGrowthResponse struct {
	Category      string  `json:"category"`
	CurrentCents  int64   `json:"current_cents"`
	PreviousCents int64   `json:"previous_cents"`
	GrowthPct     float64 `json:"growth_pct"`
}

type insightsResponse struct {
	HighestExpenseCategory *categorySummaryResponse `json:"highest_expense_category"`
	FastestGrowingCategory *categoryGrowthResponse  `json:"fastest_growing_category"`
	SavingsRate            float64                  `json:"savings_rate"`
}

type duplicatesResponse struct {
	Groups [][]transactionResponse `json:"groups"`
}

func buildTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Type:        string(t.Type),
		Amount:      core.FormatCents(t.Amount.Cents),
		AmountCents: t.Amount.Cents,
		Currency:    t.Currency,
		Date:        t.Date.Format("2006-01-02"),
		Category:    t.Category,
		Account:     t.Account,
		Notes:       t.Notes,
		Description: t.Description,
		PaymentType: string(t.PaymentType),
	}
}

func buildTransactionListResponse(txns []core.Transaction) []transactionResponse {
	out := make([]transactionResponse, len(txns))
	for i, t := range txns {
		out[i] = buildTransactionResponse(t)
	}
	return out
}

func buildBudgetResponse(b core.Budget) budgetResponse {
	return budgetResponse{
		ID:          b.ID,
		Name:        b.Name,
		Category:    b.Category,
		Amount:      core.FormatCents(b.Amount.Cents),
		AmountCents: b.Amount.Cents,
		Period:      string(b.Period),
		CreatedAt:   b.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   b.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func buildDashboardResponse(stats core.DashboardStats) dashboardResponse {
	resp := dashboardResponse{
		TotalIncome:        core.FormatCents(stats.TotalIncome.Cents),
		TotalIncomeCents:   stats.TotalIncome.Cents,
		TotalExpense:       core.FormatCents(stats.TotalExpense.Cents),
		TotalExpenseCents:  stats.TotalExpense.Cents,
		Balance:            core.FormatCents(stats.Balance.Cents),
		BalanceCents:       stats.Balance.Cents,
		ByCategory:         make([]categorySummaryResponse, len(stats.ByCategory)),
		ByAccount:          make([]accountSummaryResponse, len(stats.ByAccount)),
		ByMonth:            make([]monthlyDataResponse, len(stats.ByMonth)),
		RecentTransactions: buildTransactionListResponse(stats.RecentTransactions),
	}
	for i, c := range stats.ByCategory {
		resp.ByCategory[i] = buildCategorySummaryResponse(c)
	}
	for i, a := range stats.ByAccount {
		resp.ByAccount[i] = accountSummaryResponse{
			Account:    a.Account,
			Total:      core.FormatCents(a.Total.Cents),
			TotalCents: a.Total.Cents,
			Percentage: a.Percentage,
		}
	}
	for i, m := range stats.ByMonth {
		resp.ByMonth[i] = monthlyDataResponse{
			Month:        m.Month,
			IncomeCents:  m.Income.Cents,
			ExpenseCents: m.Expense.Cents,
			BalanceCents: m.Balance.Cents,
		}
	}
	return resp
}

func buildCategorySummaryResponse(c core.CategorySummary) categorySummaryResponse {
	return categorySummaryResponse{
		Category:   c.Category,
		Total:      core.FormatCents(c.Total.Cents),
		TotalCents: c.Total.Cents,
		Percentage: c.Percentage,
		Color:      c.Color,
	}
}

func buildBudgetSummariesResponse(summaries []core.BudgetSummary) []budgetSummaryResponse {
	out := make([]budgetSummaryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = budgetSummaryResponse{
			Budget:         buildBudgetResponse(s.Budget),
			Spent:          core.FormatCents(s.Spent.Cents),
			SpentCents:     s.Spent.Cents,
			Remaining:      core.FormatCents(s.Remaining.Cents),
			RemainingCents: s.Remaining.Cents,
			Percentage:     s.Percentage,
		}
	}
	return out
}

func buildForecastResponse(f core.CashFlowForecast) forecastResponse {
	resp := forecastResponse{
		History:  make([]cashFlowPointResponse, len(f.History)),
		Forecast: make([]forecastPointResponse, len(f.Forecast)),
	}
	for i, p := range f.History {
		resp.History[i] = cashFlowPointResponse{Period: p.Period, NetFlowCents: p.NetFlow.Cents}
	}
	for i, p := range f.Forecast {
		resp.Forecast[i] = forecastPointResponse{Period: p.Period, PredictedNetFlowCents: p.PredictedNetFlow.Cents}
	}
	return resp
}

func buildInsightsResponse(report services.InsightsReport) insightsResponse {
	resp := insightsResponse{SavingsRate: report.SavingsRate}
	if report.HighestExpenseCategory != nil {
		top := buildCategorySummaryResponse(*report.HighestExpenseCategory)
		resp.HighestExpenseCategory = &top
	}
	if report.FastestGrowingCategory != nil {
		resp.FastestGrowingCategory = &categoryGrowthResponse{
			Category:      report.FastestGrowingCategory.Category,
			CurrentCents:  report.FastestGrowingCategory.Current.Cents,
			PreviousCents: report.FastestGrowingCategory.Previous.Cents,
			GrowthPct:     report.FastestGrowingCategory.GrowthPct,
		}
	}
	return resp
}

func buildDuplicatesResponse(groups [][]core.Transaction) duplicatesResponse {
	resp := duplicatesResponse{Groups: make([][]transactionResponse, len(groups))}
	for i, group := range groups {
		resp.Groups[i] = buildTransactionListResponse(group)
	}
	return resp
}
