package analytics

import (
	"strings"

	"tally/internal/core"
)

// duplicateKey is the fuzzy-equality key for potential double entries:
// calendar date, normalized account, normalized category and exact cent
// amount. Notes and descriptions are deliberately ignored.
type duplicateKey struct {
	date     string
	account  string
	category string
	cents    int64
}

// FindDuplicateGroups groups transactions sharing a duplicate key and
// returns only the groups with two or more members. Group order follows
// the first appearance of each key; within a group the input order is
// preserved.
func FindDuplicateGroups(txns []core.Transaction) [][]core.Transaction {
	index := make(map[duplicateKey]int)
	groups := make([][]core.Transaction, 0)

	for _, t := range txns {
		key := duplicateKey{
			date:     t.Date.Format("2006-01-02"),
			account:  normalizeLabel(t.Account),
			category: normalizeLabel(t.Category),
			cents:    t.Amount.Cents,
		}
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], t)
	}

	duplicates := make([][]core.Transaction, 0)
	for _, g := range groups {
		if len(g) >= 2 {
			duplicates = append(duplicates, g)
		}
	}
	return duplicates
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
