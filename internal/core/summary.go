package core

// CategoryAmount represents an expense amount aggregated by category name.
type CategoryAmount struct {
	Category string `json:"category"`
	Amount   Money  `json:"amount"`
}

// Summary holds the three headline figures derived from the full ledger.
// Balance is always Income minus Expenses; an empty ledger yields zeros.
type Summary struct {
	Income   Money `json:"income"`
	Expenses Money `json:"expenses"`
	Balance  Money `json:"balance"`
}

// BudgetStatus is the derived state of a materialized budget. OverBudget and
// NearLimit are exclusive by construction: a percentage cannot be both above
// 100 and within (80, 100].
type BudgetStatus struct {
	Percentage float64 `json:"percentage"`
	OverBudget bool    `json:"over_budget"`
	NearLimit  bool    `json:"near_limit"`
}
