package analytics

import (
	"time"

	"tally/internal/core"
)

// EvaluateBudgets computes the consumption of each budget against the
// expense transactions inside its period window anchored at now. Output
// order follows the input budget order; sorting for display is a
// presentation concern. Budgets with the same category are evaluated
// independently.
//
// Budget amounts are validated to be positive at creation time
// (core.Budget.Validate), so the percentage division needs no guard here.
func EvaluateBudgets(budgets []core.Budget, txns []core.Transaction, now time.Time) []core.BudgetSummary {
	summaries := make([]core.BudgetSummary, 0, len(budgets))
	for _, b := range budgets {
		var spent int64
		for _, t := range txns {
			if t.Type != core.Expense || t.Category != b.Category {
				continue
			}
			if !inPeriodWindow(t.Date, b.Period, now) {
				continue
			}
			spent += t.Amount.Cents
		}
		summaries = append(summaries, core.BudgetSummary{
			Budget:     b,
			Spent:      core.Money{Cents: spent},
			Remaining:  core.Money{Cents: b.Amount.Cents - spent},
			Percentage: float64(spent) / float64(b.Amount.Cents) * 100,
		})
	}
	return summaries
}

// inPeriodWindow reports whether a transaction date falls inside the
// period window anchored at now:
//
//	monthly: same calendar month and year as now
//	weekly:  from the most recent Sunday 00:00 (in now's location) through now
//	yearly:  same year as now
func inPeriodWindow(date time.Time, period core.BudgetPeriod, now time.Time) bool {
	switch period {
	case core.Monthly:
		return date.Year() == now.Year() && date.Month() == now.Month()
	case core.Weekly:
		weekStart := startOfWeek(now)
		return !date.Before(weekStart) && !date.After(now)
	case core.Yearly:
		return date.Year() == now.Year()
	}
	return false
}

// startOfWeek returns the most recent Sunday at 00:00 in now's location.
func startOfWeek(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -int(now.Weekday()))
}
