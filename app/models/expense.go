package models

import "time"

// TeamDeptOnly is the sentinel team-filter value meaning "rows that belong to
// the department itself, with no team assigned". It never appears as a stored
// team name.
const TeamDeptOnly = "__DEPT_ONLY__"

// Expense represents a single spend entry recorded against a monthly budget.
// Category doubles as the company name; Department and Team are empty strings
// for rows recorded at a wider scope. Amount is in whole currency units.
type Expense struct {
	ID          string    `json:"id"`
	Ym          string    `json:"ym" form:"ym"`
	Category    string    `json:"category" form:"category"`
	Division    string    `json:"division" form:"division"`
	Department  string    `json:"department" form:"department"`
	Team        string    `json:"team" form:"team"`
	ExpenseDate time.Time `json:"expense_date"`
	Purpose     string    `json:"purpose" form:"purpose"`
	StoreName   string    `json:"store_name" form:"store_name"`
	Amount      int64     `json:"amount" form:"amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
