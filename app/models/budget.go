package models

import "time"

// Budget is one monthly allotment for a (ym, category, division, department,
// team) scope. At most one row exists per scope tuple; department and team are
// empty strings for whole-scope budgets. PrevRemaining carries the previous
// period's unspent amount and may be negative after an overspend.
type Budget struct {
	ID            string    `json:"id"`
	Ym            string    `json:"ym" form:"ym"`
	Category      string    `json:"category" form:"category"`
	Division      string    `json:"division" form:"division"`
	Department    string    `json:"department" form:"department"`
	Team          string    `json:"team" form:"team"`
	MonthlyAmount int64     `json:"monthly_amount" form:"monthly_amount"`
	PrevRemaining int64     `json:"prev_remaining" form:"prev_remaining"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TotalBudget is the effective budget for the period.
func (b *Budget) TotalBudget() int64 {
	return b.MonthlyAmount + b.PrevRemaining
}

// ScopeKey identifies the budget bucket an expense row counts against.
func (b *Budget) ScopeKey() string {
	return BudgetKey(b.Ym, b.Category, b.Division, b.Department, b.Team)
}

// BudgetKey builds the composite grouping key shared by budgets and expenses.
func BudgetKey(ym, category, division, department, team string) string {
	return ym + "_" + category + "_" + division + "_" + department + "_" + team
}
