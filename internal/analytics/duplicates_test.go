package analytics

import (
	"testing"
	"time"

	"tally/internal/core"
)

func TestFindDuplicateGroups(t *testing.T) {
	day := date(2025, time.April, 3)
	txns := []core.Transaction{
		tx("1", core.Expense, 2000, day, "Food", "Bank"),
		tx("2", core.Expense, 2000, day, "Food", "Bank"),
		tx("3", core.Expense, 2001, day, "Food", "Bank"), // amount differs by a cent
	}

	groups := FindDuplicateGroups(txns)

	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if len(groups[0]) != 2 {
		t.Fatalf("group size = %d, want 2", len(groups[0]))
	}
	if groups[0][0].ID != "1" || groups[0][1].ID != "2" {
		t.Errorf("insertion order not preserved: %v, %v", groups[0][0].ID, groups[0][1].ID)
	}
}

func TestFindDuplicateGroupsNormalization(t *testing.T) {
	txns := []core.Transaction{
		tx("1", core.Expense, 2000, time.Date(2025, time.April, 3, 8, 0, 0, 0, time.UTC), "Food", " Bank "),
		tx("2", core.Expense, 2000, time.Date(2025, time.April, 3, 21, 30, 0, 0, time.UTC), "FOOD", "bank"),
	}

	groups := FindDuplicateGroups(txns)
	if len(groups) != 1 || len(groups[0]) != 2 {
		t.Fatalf("case/whitespace/time-of-day should not split the group: %+v", groups)
	}
}

func TestFindDuplicateGroupsIgnoresNotes(t *testing.T) {
	day := date(2025, time.April, 3)
	a := tx("1", core.Expense, 2000, day, "Food", "Bank")
	a.Notes = "lunch"
	b := tx("2", core.Expense, 2000, day, "Food", "Bank")
	b.Description = "something else entirely"

	groups := FindDuplicateGroups([]core.Transaction{a, b})
	if len(groups) != 1 {
		t.Fatalf("notes/description must not affect grouping: %+v", groups)
	}
}

func TestFindDuplicateGroupsOrderAndStability(t *testing.T) {
	d1 := date(2025, time.April, 1)
	d2 := date(2025, time.April, 2)
	txns := []core.Transaction{
		tx("a1", core.Expense, 100, d1, "Food", "Bank"),
		tx("b1", core.Expense, 500, d2, "Fuel", "Card"),
		tx("a2", core.Expense, 100, d1, "Food", "Bank"),
		tx("c1", core.Expense, 900, d2, "Rent", "Bank"), // singleton, never reported
		tx("b2", core.Expense, 500, d2, "Fuel", "Card"),
	}

	groups := FindDuplicateGroups(txns)

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0][0].ID != "a1" || groups[1][0].ID != "b1" {
		t.Errorf("groups not in first-seen order: %v, %v", groups[0][0].ID, groups[1][0].ID)
	}

	// Shuffled input yields the same group membership
	shuffled := []core.Transaction{txns[4], txns[2], txns[0], txns[3], txns[1]}
	reGroups := FindDuplicateGroups(shuffled)
	if len(reGroups) != 2 {
		t.Fatalf("shuffled input: got %d groups, want 2", len(reGroups))
	}
	members := make(map[string]bool)
	for _, g := range reGroups {
		for _, m := range g {
			members[m.ID] = true
		}
	}
	for _, id := range []string{"a1", "a2", "b1", "b2"} {
		if !members[id] {
			t.Errorf("member %s missing after shuffle", id)
		}
	}
	if members["c1"] {
		t.Error("singleton reported as duplicate")
	}
}

func TestFindDuplicateGroupsEmpty(t *testing.T) {
	if groups := FindDuplicateGroups(nil); len(groups) != 0 {
		t.Fatalf("expected no groups, got %+v", groups)
	}
}
