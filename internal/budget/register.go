// Package budget holds the per-category spending limits. The spent figure on
// a budget is never stored authoritatively: every materialization recomputes
// it from the current ledger snapshot.
package budget

import (
	"strings"

	"fintrack/internal/core"
)

// Register is the collection of budgets, at most one per category, kept in
// insertion order. Not safe for concurrent use; the app controller
// serializes access.
type Register struct {
	items []core.Budget
}

func New() *Register {
	return &Register{}
}

// Upsert sets the limit for a category, replacing any existing budget for
// the same category in place. Non-positive amounts are rejected here as well
// as at the form boundary so corrupt state can never be persisted.
func (r *Register) Upsert(category string, amount core.Money) error {
	category = strings.TrimSpace(category)
	b := core.Budget{Category: category, Amount: amount}
	if err := b.Validate(); err != nil {
		return err
	}
	for i, existing := range r.items {
		if existing.Category == category {
			r.items[i] = b
			return nil
		}
	}
	r.items = append(r.items, b)
	return nil
}

// Remove deletes the budget for the category.
func (r *Register) Remove(category string) error {
	for i, b := range r.items {
		if b.Category == category {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

// Get returns the stored budget for the category without recomputing spent.
func (r *Register) Get(category string) (core.Budget, error) {
	for _, b := range r.items {
		if b.Category == category {
			return b, nil
		}
	}
	return core.Budget{}, core.ErrNotFound
}

func (r *Register) Len() int {
	return len(r.items)
}

// Materialize returns every budget with Spent freshly recomputed as the sum
// of expense amounts in the given ledger snapshot matching its category.
// Order follows insertion order, not amount or status.
func (r *Register) Materialize(transactions []core.Transaction) []core.Budget {
	spent := make(map[string]int64, len(r.items))
	for _, tx := range transactions {
		if tx.Type == core.Expense {
			spent[tx.Category] += tx.Amount.Cents
		}
	}
	out := make([]core.Budget, len(r.items))
	for i, b := range r.items {
		b.Spent = core.Money{Cents: spent[b.Category]}
		out[i] = b
	}
	return out
}

// Replace swaps in a loaded snapshot, used once at startup. Stored spent
// values are zeroed, never trusted; later categories win on duplicates to
// match upsert semantics.
func (r *Register) Replace(items []core.Budget) {
	r.items = r.items[:0]
	index := map[string]int{}
	for _, b := range items {
		b.Spent = core.Money{}
		if i, ok := index[b.Category]; ok {
			r.items[i] = b
			continue
		}
		index[b.Category] = len(r.items)
		r.items = append(r.items, b)
	}
}
