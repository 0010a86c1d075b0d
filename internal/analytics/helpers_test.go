package analytics

import (
	"time"

	"tally/internal/core"
)

func tx(id string, typ core.TransactionType, cents int64, date time.Time, category, account string) core.Transaction {
	return core.Transaction{
		ID:       id,
		Type:     typ,
		Amount:   core.Money{Cents: cents},
		Currency: "EUR",
		Date:     date,
		Category: category,
		Account:  account,
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}
