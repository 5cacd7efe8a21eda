// Package stats is the aggregation engine: pure, stateless functions over a
// ledger snapshot and materialized budgets. Results are recomputed on every
// read and never cached across mutations.
package stats

import (
	"sort"

	"fintrack/internal/core"
)

// RankedCategories is how many categories the ranked breakdown view keeps.
const RankedCategories = 6

// labelMax caps the convenience label length for chart axes.
const labelMax = 10

// RankedCategory is a breakdown entry for the top-N view, with a truncated
// label for narrow chart axes.
type RankedCategory struct {
	Category string     `json:"category"`
	Label    string     `json:"label"`
	Amount   core.Money `json:"amount"`
}

func TotalIncome(transactions []core.Transaction) core.Money {
	return sumByType(transactions, core.Income)
}

func TotalExpenses(transactions []core.Transaction) core.Money {
	return sumByType(transactions, core.Expense)
}

// Summarize computes the three headline figures in one pass. Balance is
// income minus expenses by construction.
func Summarize(transactions []core.Transaction) core.Summary {
	var income, expenses int64
	for _, tx := range transactions {
		switch tx.Type {
		case core.Income:
			income += tx.Amount.Cents
		case core.Expense:
			expenses += tx.Amount.Cents
		}
	}
	return core.Summary{
		Income:   core.Money{Cents: income},
		Expenses: core.Money{Cents: expenses},
		Balance:  core.Money{Cents: income - expenses},
	}
}

// CategoryBreakdown sums expense amounts per category, in first-encountered
// category order. Income transactions never contribute.
func CategoryBreakdown(transactions []core.Transaction) []core.CategoryAmount {
	index := map[string]int{}
	var out []core.CategoryAmount
	for _, tx := range transactions {
		if tx.Type != core.Expense {
			continue
		}
		if i, ok := index[tx.Category]; ok {
			out[i].Amount.Cents += tx.Amount.Cents
			continue
		}
		index[tx.Category] = len(out)
		out = append(out, core.CategoryAmount{Category: tx.Category, Amount: tx.Amount})
	}
	return out
}

// TopCategories ranks a breakdown descending by amount, ties broken by
// first-encountered order, truncated to n entries.
func TopCategories(breakdown []core.CategoryAmount, n int) []RankedCategory {
	ranked := make([]core.CategoryAmount, len(breakdown))
	copy(ranked, breakdown)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.Cents > ranked[j].Amount.Cents
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]RankedCategory, len(ranked))
	for i, ca := range ranked {
		out[i] = RankedCategory{
			Category: ca.Category,
			Label:    truncateLabel(ca.Category),
			Amount:   ca.Amount,
		}
	}
	return out
}

// StatusOf derives the over/near-limit state of a materialized budget. A
// non-positive limit cannot occur through the register; if one shows up
// anyway it is an error, never a silent Infinity.
func StatusOf(b core.Budget) (core.BudgetStatus, error) {
	if b.Amount.Cents <= 0 {
		return core.BudgetStatus{}, core.ErrInvalidAmount
	}
	pct := float64(b.Spent.Cents) / float64(b.Amount.Cents) * 100
	return core.BudgetStatus{
		Percentage: pct,
		OverBudget: pct > 100,
		NearLimit:  pct > 80 && pct <= 100,
	}, nil
}

func sumByType(transactions []core.Transaction, typ core.TransactionType) core.Money {
	var total int64
	for _, tx := range transactions {
		if tx.Type == typ {
			total += tx.Amount.Cents
		}
	}
	return core.Money{Cents: total}
}

// truncateLabel shortens on rune boundaries so multi-byte category names
// never yield invalid UTF-8.
func truncateLabel(s string) string {
	r := []rune(s)
	if len(r) > labelMax {
		return string(r[:labelMax]) + "..."
	}
	return s
}
