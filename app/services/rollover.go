package services

import (
	"database/sql"
	"log"
	"time"

	"github.com/drager40/product-manager/app/database"
	"github.com/drager40/product-manager/app/models"
)

// CurrentAndPrevYm gives the month keys the rollover works with.
func CurrentAndPrevYm(now time.Time) (string, string) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.Format("2006-01"), first.AddDate(0, -1, 0).Format("2006-01")
}

// BuildRollover computes the new month's budget rows from the previous
// month's rows and the previous month's usage per scope key. The monthly
// amount carries over unchanged; the new carried remainder is the previous
// total budget minus what was actually spent on that exact scope, which goes
// negative after an overspend.
func BuildRollover(prevBudgets []*models.Budget, used map[string]int64, currentYm string) []*models.Budget {
	rolled := make([]*models.Budget, 0, len(prevBudgets))
	for _, prev := range prevBudgets {
		rolled = append(rolled, &models.Budget{
			Ym:            currentYm,
			Category:      prev.Category,
			Division:      prev.Division,
			Department:    prev.Department,
			Team:          prev.Team,
			MonthlyAmount: prev.MonthlyAmount,
			PrevRemaining: prev.TotalBudget() - used[prev.ScopeKey()],
		})
	}
	return rolled
}

// ShouldRoll decides whether a rollover run may write anything: never when
// the current month already has any budget row (a second run for the same
// month is a no-op) and never when the previous month has nothing to carry
// forward.
func ShouldRoll(existing, prevBudgets []*models.Budget) bool {
	return len(existing) == 0 && len(prevBudgets) > 0
}

// RunMonthlyRollover copies the previous month's budgets forward into the
// current month, subject to the ShouldRoll guards. A failed insert is logged
// and does not stop the remaining rows.
func RunMonthlyRollover(db *sql.DB) {
	currentYm, prevYm := CurrentAndPrevYm(time.Now())
	log.Printf("Monthly budget rollover check for %s...", currentYm)

	existing, err := database.GetBudgetsByYm(db, currentYm)
	if err != nil {
		log.Printf("Rollover aborted, cannot read current month budgets: %v", err)
		return
	}
	prevBudgets, err := database.GetBudgetsByYm(db, prevYm)
	if err != nil {
		log.Printf("Rollover aborted, cannot read previous month budgets: %v", err)
		return
	}
	if !ShouldRoll(existing, prevBudgets) {
		if len(existing) > 0 {
			log.Printf("Budgets for %s already exist (%d rows), skipping rollover", currentYm, len(existing))
		} else {
			log.Printf("No budgets for %s, nothing to roll forward", prevYm)
		}
		return
	}

	prevExpenses, err := database.GetFilteredExpenses(db, database.ExpenseFilter{Yms: []string{prevYm}})
	if err != nil {
		log.Printf("Rollover aborted, cannot read previous month expenses: %v", err)
		return
	}
	used := UsedByBudgetKey(prevExpenses)

	created := 0
	for _, b := range BuildRollover(prevBudgets, used, currentYm) {
		if err := database.CreateBudget(db, b); err != nil {
			log.Printf("Failed to roll forward budget %s/%s/%s/%s: %v",
				b.Category, b.Division, b.Department, b.Team, err)
			continue
		}
		created++
		log.Printf("Rolled forward %s / %s / %s / %s / %s: monthly=%d, remaining=%d",
			currentYm, b.Category, b.Division, b.Department, b.Team, b.MonthlyAmount, b.PrevRemaining)
	}
	log.Printf("Monthly budget rollover completed, %d rows created", created)
}
