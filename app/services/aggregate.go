package services

import (
	"time"

	"github.com/drager40/product-manager/app/models"
)

// Aggregation helpers for the dashboard and list-page charts. All of these
// are pure functions over already-filtered row sets.

// FallbackLabel is used in pie charts for rows with an empty category or
// division.
const FallbackLabel = "Other"

// TotalAmount sums expense amounts.
func TotalAmount(expenses []*models.Expense) int64 {
	var total int64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// MonthlyAmountTotal sums the monthly allotments of a budget set.
func MonthlyAmountTotal(budgets []*models.Budget) int64 {
	var total int64
	for _, b := range budgets {
		total += b.MonthlyAmount
	}
	return total
}

// PrevRemainingTotal sums the carried-over remainders of a budget set.
func PrevRemainingTotal(budgets []*models.Budget) int64 {
	var total int64
	for _, b := range budgets {
		total += b.PrevRemaining
	}
	return total
}

// UsedByBudgetKey groups expense amounts by the composite budget key, so each
// budget row can show how much of it is spent.
func UsedByBudgetKey(expenses []*models.Expense) map[string]int64 {
	used := make(map[string]int64)
	for _, e := range expenses {
		key := models.BudgetKey(e.Ym, e.Category, e.Division, e.Department, e.Team)
		used[key] += e.Amount
	}
	return used
}

// AmountByYm sums expense amounts per month for chart series.
func AmountByYm(expenses []*models.Expense) map[string]int64 {
	byYm := make(map[string]int64)
	for _, e := range expenses {
		byYm[e.Ym] += e.Amount
	}
	return byYm
}

// BudgetTotalByYm sums total budgets (monthly + carried remainder) per month.
func BudgetTotalByYm(budgets []*models.Budget) map[string]int64 {
	byYm := make(map[string]int64)
	for _, b := range budgets {
		byYm[b.Ym] += b.TotalBudget()
	}
	return byYm
}

// UsagePercent is the spent share of a budget as a whole number, rounded
// half-up. A zero or negative budget total reports 0.
func UsagePercent(used, total int64) int {
	if total <= 0 {
		return 0
	}
	return int((used*100 + total/2) / total)
}

// AmountByLabel sums amounts grouped by a label in first-seen order, mapping
// empty labels to FallbackLabel. Used for the pie charts.
func AmountByLabel(expenses []*models.Expense, label func(*models.Expense) string) ([]string, []int64) {
	labels := []string{}
	index := make(map[string]int)
	values := []int64{}
	for _, e := range expenses {
		l := label(e)
		if l == "" {
			l = FallbackLabel
		}
		i, ok := index[l]
		if !ok {
			i = len(labels)
			index[l] = i
			labels = append(labels, l)
			values = append(values, 0)
		}
		values[i] += e.Amount
	}
	return labels, values
}

// ChartMonths returns the rolling window of months ending at now: the last
// twelve months plus the current one, oldest first.
func ChartMonths(now time.Time) []string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	months := make([]string, 0, 13)
	for i := 12; i >= 0; i-- {
		months = append(months, first.AddDate(0, -i, 0).Format("2006-01"))
	}
	return months
}

// MinusOneYear shifts a YYYY-MM key one year back; unparseable keys come back
// unchanged.
func MinusOneYear(ym string) string {
	t, err := time.Parse("2006-01", ym)
	if err != nil {
		return ym
	}
	return t.AddDate(-1, 0, 0).Format("2006-01")
}
