// Package analytics reduces raw expense rows into the aggregates the
// dashboard charts consume. The reduction happens in Go over the
// user's rows rather than in SQL so the insertion-order guarantee of
// the category mapping holds.
package analytics

import (
	"time"

	"github.com/vivek91319165/nebula-financial-verse/internal/models"
)

// CategoryTotal is one slice of the category breakdown chart.
type CategoryTotal struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// CategoryTotals sums expense amounts per category over every row it
// is given, regardless of date. Only categories with at least one
// expense appear, ordered by first occurrence. Amounts in different
// currencies are summed as-is; no conversion is applied.
func CategoryTotals(expenses []models.Expense) []CategoryTotal {
	totals := []CategoryTotal{}
	index := map[string]int{}

	for _, e := range expenses {
		if i, ok := index[e.Category]; ok {
			totals[i].Value += e.Amount
			continue
		}
		index[e.Category] = len(totals)
		totals = append(totals, CategoryTotal{Name: e.Category, Value: e.Amount})
	}

	return totals
}

// MonthlyTotal sums the amounts of expenses whose created_at falls
// within [first instant of now's month, now).
func MonthlyTotal(expenses []models.Expense, now time.Time) float64 {
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var total float64
	for _, e := range expenses {
		if e.CreatedAt.Before(startOfMonth) || !e.CreatedAt.Before(now) {
			continue
		}
		total += e.Amount
	}
	return total
}

// Total sums every expense amount directly. Used by tests to check
// that the category breakdown neither drops nor double-counts.
func Total(expenses []models.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}
