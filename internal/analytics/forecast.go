package analytics

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"tally/internal/core"
)

// ErrNoHistory is returned when a forecast is requested over a transaction
// list with no income or expense entries to learn from.
var ErrNoHistory = errors.New("no cash-flow history to forecast from")

// trailingWindow is how many recent months feed the moving average.
const trailingWindow = 3

// ForecastCashFlow buckets income and expense transactions by calendar
// month, computes the historical net flow per month, and projects periods
// future months as a flat line at the mean of the last three observed net
// flows (fewer when history is shorter). Transfers are ignored.
func ForecastCashFlow(txns []core.Transaction, periods int) (core.CashFlowForecast, error) {
	type bucket struct {
		year  int
		month time.Month
		net   int64
	}
	buckets := make(map[string]*bucket)

	for _, t := range txns {
		if t.Type != core.Income && t.Type != core.Expense {
			continue
		}
		key := monthKey(t.Date)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{year: t.Date.Year(), month: t.Date.Month()}
			buckets[key] = b
		}
		if t.Type == core.Income {
			b.net += t.Amount.Cents
		} else {
			b.net -= t.Amount.Cents
		}
	}

	if len(buckets) == 0 {
		return core.CashFlowForecast{}, ErrNoHistory
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	forecast := core.CashFlowForecast{
		History:  make([]core.CashFlowPoint, 0, len(keys)),
		Forecast: make([]core.ForecastPoint, 0, periods),
	}
	for _, key := range keys {
		forecast.History = append(forecast.History, core.CashFlowPoint{
			Period:  key,
			NetFlow: core.Money{Cents: buckets[key].net},
		})
	}

	// Trailing moving average over the last up-to-three months, rounded
	// half away from zero to whole cents.
	window := forecast.History
	if len(window) > trailingWindow {
		window = window[len(window)-trailingWindow:]
	}
	var sum int64
	for _, p := range window {
		sum += p.NetFlow.Cents
	}
	mean := int64(math.Round(float64(sum) / float64(len(window))))

	last := buckets[keys[len(keys)-1]]
	year, month := last.year, last.month
	for i := 0; i < periods; i++ {
		month++
		if month > time.December {
			month = time.January
			year++
		}
		forecast.Forecast = append(forecast.Forecast, core.ForecastPoint{
			Period:           fmt.Sprintf("%04d-%02d", year, int(month)),
			PredictedNetFlow: core.Money{Cents: mean},
		})
	}

	return forecast, nil
}
