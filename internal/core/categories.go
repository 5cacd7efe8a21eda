package core

// Known category labels offered by the UI. Category stays a free-form string
// key in the data model; these lists are advisory and never enforced.
var (
	ExpenseCategories = []string{
		"Food & Dining",
		"Transportation",
		"Shopping",
		"Entertainment",
		"Bills & Utilities",
		"Healthcare",
		"Education",
		"Travel",
		"Other",
	}

	IncomeCategories = []string{
		"Salary",
		"Freelance",
		"Investment",
		"Gift",
		"Other",
	}
)
