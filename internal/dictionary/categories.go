// Package dictionary holds the curated default categories offered to new
// ledgers.
package dictionary

import "github.com/tinoosan/finledger/internal/ledger"

type CategoryDef struct {
	Code  string      `json:"code"`
	Label string      `json:"label"`
	Type  ledger.Type `json:"type"`
}

var curated = map[ledger.Type][]CategoryDef{
	ledger.TypeIncome: {
		{Code: "salary", Label: "Salary", Type: ledger.TypeIncome},
		{Code: "interest", Label: "Interest", Type: ledger.TypeIncome},
		{Code: "refund", Label: "Refund", Type: ledger.TypeIncome},
		{Code: "gifts", Label: "Gifts", Type: ledger.TypeIncome},
		{Code: "other_income", Label: "Other Income", Type: ledger.TypeIncome},
	},
	ledger.TypeExpense: {
		{Code: "groceries", Label: "Groceries", Type: ledger.TypeExpense},
		{Code: "eating_out", Label: "Eating Out", Type: ledger.TypeExpense},
		{Code: "rent", Label: "Rent", Type: ledger.TypeExpense},
		{Code: "utilities", Label: "Utilities", Type: ledger.TypeExpense},
		{Code: "transport", Label: "Transport", Type: ledger.TypeExpense},
		{Code: "health", Label: "Health", Type: ledger.TypeExpense},
		{Code: "entertainment", Label: "Entertainment", Type: ledger.TypeExpense},
		{Code: "general", Label: "General", Type: ledger.TypeExpense},
	},
}

// CategoriesFor returns the curated categories of type t, or all of them
// (income first) when t is nil.
func CategoriesFor(t *ledger.Type) []CategoryDef {
	if t == nil {
		out := make([]CategoryDef, 0, len(curated[ledger.TypeIncome])+len(curated[ledger.TypeExpense]))
		out = append(out, curated[ledger.TypeIncome]...)
		return append(out, curated[ledger.TypeExpense]...)
	}
	list := curated[*t]
	out := make([]CategoryDef, len(list))
	copy(out, list)
	return out
}

// Lookup finds a curated category by code.
func Lookup(code string) (CategoryDef, bool) {
	for _, list := range curated {
		for _, d := range list {
			if d.Code == code {
				return d, true
			}
		}
	}
	return CategoryDef{}, false
}
