package ledger

import (
	"errors"
	"testing"
	"time"

	"fintrack/internal/core"
)

func input(title string, amount int64, typ core.TransactionType, category string) core.TransactionInput {
	return core.TransactionInput{
		Title:    title,
		Amount:   core.Money{Cents: amount},
		Type:     typ,
		Category: category,
		Date:     "2024-01-01",
	}
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	l := New()
	seen := map[string]struct{}{}
	// Rapid successive adds land within the same millisecond; IDs must
	// still be pairwise distinct.
	for i := 0; i < 1000; i++ {
		tx, err := l.Add(input("coffee", 350, core.Expense, "Food & Dining"))
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		if tx.ID == "" {
			t.Fatalf("add %d: empty id", i)
		}
		if _, dup := seen[tx.ID]; dup {
			t.Fatalf("add %d: duplicate id %s", i, tx.ID)
		}
		seen[tx.ID] = struct{}{}
	}
	if l.Len() != 1000 {
		t.Fatalf("expected 1000 records, got %d", l.Len())
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	l := New()
	_, err := l.Add(core.TransactionInput{})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if l.Len() != 0 {
		t.Fatalf("invalid input must not be appended")
	}
}

func TestUpdateReplacesByID(t *testing.T) {
	l := New()
	tx, err := l.Add(input("lunch", 1200, core.Expense, "Food & Dining"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	edited := tx
	edited.Title = "dinner"
	edited.Amount = core.Money{Cents: 2500}
	if err := l.Update(edited); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := l.Get(tx.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "dinner" || got.Amount.Cents != 2500 {
		t.Fatalf("update not applied: %+v", got)
	}
	if !got.CreatedAt.Equal(tx.CreatedAt) {
		t.Fatalf("update must preserve CreatedAt")
	}
}

func TestUpdateStaleIDIsNotFound(t *testing.T) {
	l := New()
	ghost := core.Transaction{
		ID:       "missing",
		Title:    "ghost",
		Amount:   core.Money{Cents: 100},
		Type:     core.Expense,
		Category: "Other",
		Date:     "2024-01-01",
	}
	if err := l.Update(ghost); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	l := New()
	tx, _ := l.Add(input("lunch", 1200, core.Expense, "Food & Dining"))
	if err := l.Remove(tx.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("expected empty ledger")
	}
	if err := l.Remove(tx.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}
}

func TestFilterPredicatesAreANDed(t *testing.T) {
	l := New()
	l.Add(input("Grocery run", 4500, core.Expense, "Food & Dining"))
	l.Add(input("Bus ticket", 250, core.Expense, "Transportation"))
	l.Add(input("Paycheck", 100000, core.Income, "Salary"))
	l.Add(input("grocery bags", 300, core.Expense, "Shopping"))

	cases := []struct {
		name string
		f    Filter
		want int
	}{
		{"all", Filter{}, 4},
		{"search case-insensitive", Filter{Search: "GROCERY"}, 2},
		{"type only", Filter{Type: core.Income}, 1},
		{"category only", Filter{Category: "Food & Dining"}, 1},
		{"search and type", Filter{Search: "grocery", Type: core.Expense}, 2},
		{"all three", Filter{Search: "grocery", Type: core.Expense, Category: "Shopping"}, 1},
		{"no match", Filter{Search: "grocery", Category: "Salary"}, 0},
	}
	for _, tc := range cases {
		if got := len(l.Filter(tc.f)); got != tc.want {
			t.Fatalf("%s: expected %d results, got %d", tc.name, tc.want, got)
		}
	}
}

func TestFilterIsIdempotentAndSorted(t *testing.T) {
	l := New()
	base := time.Now()
	// Seed through Replace to control CreatedAt precisely, including ties.
	l.Replace([]core.Transaction{
		{ID: "a", Title: "first", Amount: core.Money{Cents: 1}, Type: core.Expense, Category: "Other", Date: "2024-01-01", CreatedAt: base},
		{ID: "b", Title: "tie one", Amount: core.Money{Cents: 1}, Type: core.Expense, Category: "Other", Date: "2024-01-01", CreatedAt: base.Add(time.Second)},
		{ID: "c", Title: "tie two", Amount: core.Money{Cents: 1}, Type: core.Expense, Category: "Other", Date: "2024-01-01", CreatedAt: base.Add(time.Second)},
		{ID: "d", Title: "latest", Amount: core.Money{Cents: 1}, Type: core.Expense, Category: "Other", Date: "2024-01-01", CreatedAt: base.Add(time.Minute)},
	})

	first := l.Filter(Filter{})
	second := l.Filter(Filter{})
	if len(first) != len(second) {
		t.Fatalf("filter not idempotent: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("filter not idempotent at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}

	wantOrder := []string{"d", "b", "c", "a"} // newest first, ties keep insertion order
	for i, id := range wantOrder {
		if first[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, first[i].ID)
		}
	}
}

func TestCategoriesFirstEncounteredOrder(t *testing.T) {
	l := New()
	l.Add(input("a", 100, core.Expense, "Food & Dining"))
	l.Add(input("b", 100, core.Expense, "Transportation"))
	l.Add(input("c", 100, core.Expense, "Food & Dining"))
	got := l.Categories()
	want := []string{"Food & Dining", "Transportation"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestReplaceDropsDuplicateIDs(t *testing.T) {
	l := New()
	l.Replace([]core.Transaction{
		{ID: "x", Title: "one", Amount: core.Money{Cents: 1}, Type: core.Expense, Category: "Other", Date: "2024-01-01"},
		{ID: "x", Title: "two", Amount: core.Money{Cents: 2}, Type: core.Expense, Category: "Other", Date: "2024-01-01"},
	})
	if l.Len() != 1 {
		t.Fatalf("expected duplicate to be dropped, got %d records", l.Len())
	}
	got, _ := l.Get("x")
	if got.Title != "one" {
		t.Fatalf("expected first occurrence to win, got %q", got.Title)
	}
}
