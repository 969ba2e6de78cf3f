package database

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/drager40/product-manager/app/models"
)

const budgetColumns = `id, ym, category, division, department, team, monthly_amount, prev_remaining, created_at, updated_at`

func scanBudgetRows(rows *sql.Rows) ([]*models.Budget, error) {
	budgets := []*models.Budget{}
	for rows.Next() {
		b := &models.Budget{}
		err := rows.Scan(&b.ID, &b.Ym, &b.Category, &b.Division, &b.Department, &b.Team,
			&b.MonthlyAmount, &b.PrevRemaining, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func GetFilteredBudgets(db *sql.DB, f BudgetFilter) ([]*models.Budget, error) {
	where, args := f.Where()
	query := `SELECT ` + budgetColumns + ` FROM budgets` + where +
		` ORDER BY ym ASC, category ASC, division ASC, department ASC, team ASC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBudgetRows(rows)
}

func GetBudgetsByYm(db *sql.DB, ym string) ([]*models.Budget, error) {
	return GetFilteredBudgets(db, BudgetFilter{Yms: []string{ym}})
}

func GetBudgetByID(db *sql.DB, id string) (*models.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = $1`
	b := &models.Budget{}
	err := db.QueryRow(query, id).Scan(&b.ID, &b.Ym, &b.Category, &b.Division, &b.Department, &b.Team,
		&b.MonthlyAmount, &b.PrevRemaining, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// FindBudgetByScope looks up the single budget row for an exact scope tuple.
// Returns sql.ErrNoRows when the month has no budget for that scope.
func FindBudgetByScope(db *sql.DB, ym, category, division, department, team string) (*models.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets
			  WHERE ym = $1 AND category = $2 AND division = $3 AND department = $4 AND team = $5`
	b := &models.Budget{}
	err := db.QueryRow(query, ym, category, division, department, team).Scan(
		&b.ID, &b.Ym, &b.Category, &b.Division, &b.Department, &b.Team,
		&b.MonthlyAmount, &b.PrevRemaining, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func CreateBudget(db *sql.DB, b *models.Budget) error {
	b.ID = uuid.NewString()
	query := `INSERT INTO budgets (id, ym, category, division, department, team, monthly_amount, prev_remaining)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING created_at, updated_at`
	return db.QueryRow(query, b.ID, b.Ym, b.Category, b.Division, b.Department, b.Team,
		b.MonthlyAmount, b.PrevRemaining).Scan(&b.CreatedAt, &b.UpdatedAt)
}

func UpdateBudget(db *sql.DB, b *models.Budget) error {
	query := `UPDATE budgets
			  SET ym = $1, category = $2, division = $3, department = $4, team = $5,
			      monthly_amount = $6, prev_remaining = $7, updated_at = NOW()
			  WHERE id = $8`
	_, err := db.Exec(query, b.Ym, b.Category, b.Division, b.Department, b.Team,
		b.MonthlyAmount, b.PrevRemaining, b.ID)
	return err
}

// UpsertBudget saves a budget without an id: if a row already exists for the
// same scope tuple its amounts are updated in place, otherwise a new row is
// inserted. Budgets with an id go through a plain update.
func UpsertBudget(db *sql.DB, b *models.Budget) error {
	if b.ID != "" {
		return UpdateBudget(db, b)
	}
	existing, err := FindBudgetByScope(db, b.Ym, b.Category, b.Division, b.Department, b.Team)
	if err == nil {
		existing.MonthlyAmount = b.MonthlyAmount
		existing.PrevRemaining = b.PrevRemaining
		*b = *existing
		return UpdateBudget(db, b)
	}
	if err != sql.ErrNoRows {
		return err
	}
	return CreateBudget(db, b)
}

func DeleteBudget(db *sql.DB, id string) error {
	_, err := db.Exec(`DELETE FROM budgets WHERE id = $1`, id)
	return err
}
