package analytics

import (
	"time"

	"tally/internal/core"
)

// HighestExpenseCategory returns the top expense category of the stats, or
// nil when there are no expenses. ByCategory is already sorted descending.
func HighestExpenseCategory(stats core.DashboardStats) *core.CategorySummary {
	if len(stats.ByCategory) == 0 {
		return nil
	}
	top := stats.ByCategory[0]
	return &top
}

// SavingsRate is the share of income left after expenses, as a percent.
// Zero when there is no income.
func SavingsRate(stats core.DashboardStats) float64 {
	if stats.TotalIncome.Cents == 0 {
		return 0
	}
	return float64(stats.TotalIncome.Cents-stats.TotalExpense.Cents) / float64(stats.TotalIncome.Cents) * 100
}

// FastestGrowingCategory compares each category's expense total in the
// calendar month of now against the immediately preceding month and
// returns the category with the highest growth percentage. Growth is 0
// when the previous month had no spend in that category. Returns nil when
// the transaction list spans fewer than three calendar months, or when
// the current month has no expenses.
func FastestGrowingCategory(txns []core.Transaction, now time.Time) *core.CategoryGrowth {
	months := make(map[string]struct{})
	for _, t := range txns {
		months[monthKey(t.Date)] = struct{}{}
	}
	if len(months) < 3 {
		return nil
	}

	currentKey := monthKey(now)
	previousKey := monthKey(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0))

	current := make(map[string]int64)
	previous := make(map[string]int64)
	for _, t := range txns {
		if t.Type != core.Expense {
			continue
		}
		switch monthKey(t.Date) {
		case currentKey:
			current[t.Category] += t.Amount.Cents
		case previousKey:
			previous[t.Category] += t.Amount.Cents
		}
	}
	if len(current) == 0 {
		return nil
	}

	var best *core.CategoryGrowth
	for category, cur := range current {
		prev := previous[category]
		var growth float64
		if prev != 0 {
			growth = float64(cur-prev) / float64(prev) * 100
		}
		candidate := &core.CategoryGrowth{
			Category:  category,
			Current:   core.Money{Cents: cur},
			Previous:  core.Money{Cents: prev},
			GrowthPct: growth,
		}
		if best == nil || candidate.GrowthPct > best.GrowthPct ||
			(candidate.GrowthPct == best.GrowthPct && candidate.Category < best.Category) {
			best = candidate
		}
	}
	return best
}
