// Package aggregate derives dashboard summaries from an in-memory list of
// transactions. Every function is pure: inputs are never mutated and results
// are recomputed from the full list on each call.
package aggregate

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"financehub/internal/models"
)

// Totals is the income/expense/balance triple. Expenses is a positive sum.
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// MonthTotal is one point of the monthly trend series.
type MonthTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// SortKey selects the field Sort orders by.
type SortKey string

const (
	SortByDate     SortKey = "date"
	SortByCategory SortKey = "category"
	SortByAmount   SortKey = "amount"
)

// SortOrder is the sort direction.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Filter selects transactions. Zero values match everything.
type Filter struct {
	// Search matches description or category label, case-insensitively.
	Search string
	// Category is an exact label, or "all".
	Category string
	// Kind is "income", "expense", or "all".
	Kind string
}

// ComputeTotals sums positive amounts as income and the magnitude of negative
// amounts as expenses. Balance is always Income minus Expenses.
func ComputeTotals(tasks []models.Task) Totals {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, t := range tasks {
		switch t.Amount.Sign() {
		case 1:
			income = income.Add(t.Amount)
		case -1:
			expenses = expenses.Add(t.Amount.Abs())
		}
	}
	return Totals{Income: income, Expenses: expenses, Balance: income.Sub(expenses)}
}

// ByCategory sums the magnitude of expense amounts per category label.
// Income transactions are ignored.
func ByCategory(tasks []models.Task) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, t := range tasks {
		if !t.IsExpense() {
			continue
		}
		out[t.Category] = out[t.Category].Add(t.Amount.Abs())
	}
	return out
}

// ByMonth sums absolute amounts per YYYY-MM, ascending by month. Income and
// expenses land in the same series. Transactions with unparseable dates are
// skipped.
func ByMonth(tasks []models.Task) []MonthTotal {
	sums := make(map[string]decimal.Decimal)
	for _, t := range tasks {
		d, err := time.Parse(models.DateLayout, t.Date)
		if err != nil {
			continue
		}
		key := d.Format("2006-01")
		sums[key] = sums[key].Add(t.Amount.Abs())
	}

	out := make([]MonthTotal, 0, len(sums))
	for month, total := range sums {
		out = append(out, MonthTotal{Month: month, Total: total})
	}
	slices.SortFunc(out, func(a, b MonthTotal) int { return strings.Compare(a.Month, b.Month) })
	return out
}

// Sort returns a new slice ordered by key. Unknown keys fall back to date and
// unknown orders to descending. The sort is stable.
func Sort(tasks []models.Task, key SortKey, order SortOrder) []models.Task {
	out := slices.Clone(tasks)

	var less func(a, b models.Task) int
	switch key {
	case SortByCategory:
		less = func(a, b models.Task) int { return strings.Compare(a.Category, b.Category) }
	case SortByAmount:
		less = func(a, b models.Task) int { return a.Amount.Abs().Cmp(b.Amount.Abs()) }
	default:
		less = func(a, b models.Task) int { return cmp.Compare(dateValue(a.Date), dateValue(b.Date)) }
	}

	if order == Asc {
		slices.SortStableFunc(out, less)
	} else {
		slices.SortStableFunc(out, func(a, b models.Task) int { return less(b, a) })
	}
	return out
}

// Apply returns the transactions matching f, preserving input order.
func Apply(tasks []models.Task, f Filter) []models.Task {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Description), search) &&
			!strings.Contains(strings.ToLower(t.Category), search) {
			continue
		}
		if f.Category != "" && f.Category != "all" && t.Category != f.Category {
			continue
		}
		switch f.Kind {
		case string(models.KindIncome):
			if t.IsExpense() {
				continue
			}
		case string(models.KindExpense):
			if !t.IsExpense() {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// dateValue maps a stored date to a sortable number. Unparseable dates sort
// as the zero time.
func dateValue(s string) int64 {
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}.Unix()
	}
	return d.Unix()
}
