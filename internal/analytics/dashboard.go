// Package analytics reduces transaction and budget collections into the
// derived dashboard shapes. Every function is pure: inputs are treated as
// read-only, results are freshly allocated, and identical input yields
// identical output. Callers re-invoke on every change to the source
// collection; nothing here is incrementally maintained.
package analytics

import (
	"sort"
	"time"

	"tally/internal/core"
)

// chartPalette provides stable colors for category rows, assigned by rank.
var chartPalette = [...]string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

// ComputeDashboardStats reduces a transaction list into the dashboard
// aggregate. Transfers are excluded from the income/expense totals and
// from category rows, but still surface in account balances (with zero
// contribution), month buckets and the recent list.
func ComputeDashboardStats(txns []core.Transaction) core.DashboardStats {
	var totalIncome, totalExpense int64

	byCategory := make(map[string]int64)
	byAccount := make(map[string]int64)
	type monthBucket struct {
		income  int64
		expense int64
	}
	byMonth := make(map[string]*monthBucket)

	for _, t := range txns {
		switch t.Type {
		case core.Income:
			totalIncome += t.Amount.Cents
			byAccount[t.Account] += t.Amount.Cents
		case core.Expense:
			totalExpense += t.Amount.Cents
			byCategory[t.Category] += t.Amount.Cents
			byAccount[t.Account] -= t.Amount.Cents
		case core.Transfer:
			// Transfers keep the account visible without moving its net
			byAccount[t.Account] += 0
		}

		key := monthKey(t.Date)
		bucket, ok := byMonth[key]
		if !ok {
			bucket = &monthBucket{}
			byMonth[key] = bucket
		}
		switch t.Type {
		case core.Income:
			bucket.income += t.Amount.Cents
		case core.Expense:
			bucket.expense += t.Amount.Cents
		}
	}

	stats := core.DashboardStats{
		TotalIncome:        core.Money{Cents: totalIncome},
		TotalExpense:       core.Money{Cents: totalExpense},
		Balance:            core.Money{Cents: totalIncome - totalExpense},
		ByCategory:         make([]core.CategorySummary, 0, len(byCategory)),
		ByAccount:          make([]core.AccountSummary, 0, len(byAccount)),
		ByMonth:            make([]core.MonthlyData, 0, len(byMonth)),
		RecentTransactions: recentTransactions(txns, 5),
	}

	for category, total := range byCategory {
		stats.ByCategory = append(stats.ByCategory, core.CategorySummary{
			Category:   category,
			Total:      core.Money{Cents: total},
			Percentage: percentage(total, totalExpense),
		})
	}
	sort.Slice(stats.ByCategory, func(i, j int) bool {
		a, b := stats.ByCategory[i], stats.ByCategory[j]
		if a.Total.Cents != b.Total.Cents {
			return a.Total.Cents > b.Total.Cents
		}
		return a.Category < b.Category
	})
	for i := range stats.ByCategory {
		stats.ByCategory[i].Color = chartPalette[i%len(chartPalette)]
	}

	var absSum int64
	for _, net := range byAccount {
		absSum += abs64(net)
	}
	for account, net := range byAccount {
		stats.ByAccount = append(stats.ByAccount, core.AccountSummary{
			Account:    account,
			Total:      core.Money{Cents: net},
			Percentage: percentage(abs64(net), absSum),
		})
	}
	sort.Slice(stats.ByAccount, func(i, j int) bool {
		a, b := stats.ByAccount[i], stats.ByAccount[j]
		if abs64(a.Total.Cents) != abs64(b.Total.Cents) {
			return abs64(a.Total.Cents) > abs64(b.Total.Cents)
		}
		return a.Account < b.Account
	})

	for key, bucket := range byMonth {
		stats.ByMonth = append(stats.ByMonth, core.MonthlyData{
			Month:   key,
			Income:  core.Money{Cents: bucket.income},
			Expense: core.Money{Cents: bucket.expense},
			Balance: core.Money{Cents: bucket.income - bucket.expense},
		})
	}
	sort.Slice(stats.ByMonth, func(i, j int) bool {
		return stats.ByMonth[i].Month < stats.ByMonth[j].Month
	})

	return stats
}

// recentTransactions returns the n most recently dated transactions,
// ties broken by original input order.
func recentTransactions(txns []core.Transaction, n int) []core.Transaction {
	recent := make([]core.Transaction, len(txns))
	copy(recent, txns)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date)
	})
	if len(recent) > n {
		recent = recent[:n]
	}
	return recent
}

// percentage is part/whole as a percent, 0 when the denominator is zero.
// Divide-by-zero never propagates NaN into derived output.
func percentage(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// monthKey formats a timestamp as its "YYYY-MM" calendar bucket.
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
