package database

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/drager40/product-manager/app/models"
)

const expenseColumns = `id, ym, category, division, department, team, expense_date, purpose, store_name, amount, created_at, updated_at`

func scanExpenseRows(rows *sql.Rows) ([]*models.Expense, error) {
	expenses := []*models.Expense{}
	for rows.Next() {
		e := &models.Expense{}
		var expenseDate sql.NullTime
		err := rows.Scan(&e.ID, &e.Ym, &e.Category, &e.Division, &e.Department, &e.Team,
			&expenseDate, &e.Purpose, &e.StoreName, &e.Amount, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, err
		}
		if expenseDate.Valid {
			e.ExpenseDate = expenseDate.Time
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// expenseListQuery renders the filtered select. Rows come back in expense
// date order; same-day rows keep insertion order via created_at, with id as
// a stable final tie-break.
func expenseListQuery(f ExpenseFilter) (string, []interface{}) {
	where, args := f.Where()
	return `SELECT ` + expenseColumns + ` FROM expenses` + where +
		` ORDER BY expense_date ASC, created_at ASC, id ASC`, args
}

// GetFilteredExpenses returns the expenses matching the filter.
func GetFilteredExpenses(db *sql.DB, f ExpenseFilter) ([]*models.Expense, error) {
	query, args := expenseListQuery(f)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExpenseRows(rows)
}

func GetExpenseByID(db *sql.DB, id string) (*models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	e := &models.Expense{}
	var expenseDate sql.NullTime
	err := db.QueryRow(query, id).Scan(&e.ID, &e.Ym, &e.Category, &e.Division, &e.Department, &e.Team,
		&expenseDate, &e.Purpose, &e.StoreName, &e.Amount, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if expenseDate.Valid {
		e.ExpenseDate = expenseDate.Time
	}
	return e, nil
}

func CreateExpense(db *sql.DB, e *models.Expense) error {
	e.ID = uuid.NewString()
	query := `INSERT INTO expenses (id, ym, category, division, department, team, expense_date, purpose, store_name, amount)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING created_at, updated_at`
	return db.QueryRow(query, e.ID, e.Ym, e.Category, e.Division, e.Department, e.Team,
		e.ExpenseDate, e.Purpose, e.StoreName, e.Amount).Scan(&e.CreatedAt, &e.UpdatedAt)
}

func UpdateExpense(db *sql.DB, e *models.Expense) error {
	query := `UPDATE expenses
			  SET ym = $1, category = $2, division = $3, department = $4, team = $5,
			      expense_date = $6, purpose = $7, store_name = $8, amount = $9, updated_at = NOW()
			  WHERE id = $10`
	_, err := db.Exec(query, e.Ym, e.Category, e.Division, e.Department, e.Team,
		e.ExpenseDate, e.Purpose, e.StoreName, e.Amount, e.ID)
	return err
}

func DeleteExpense(db *sql.DB, id string) error {
	_, err := db.Exec(`DELETE FROM expenses WHERE id = $1`, id)
	return err
}

// Distinct value lists feed the filter dropdowns. Most recent month first;
// everything else alphabetical, empty values excluded.

func distinctStrings(db *sql.DB, query string) ([]string, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func DistinctYms(db *sql.DB) ([]string, error) {
	return distinctStrings(db, `SELECT DISTINCT ym FROM expenses ORDER BY ym DESC`)
}

func DistinctCategories(db *sql.DB) ([]string, error) {
	return distinctStrings(db, `SELECT DISTINCT category FROM expenses ORDER BY category ASC`)
}

func DistinctDivisions(db *sql.DB) ([]string, error) {
	return distinctStrings(db, `SELECT DISTINCT division FROM expenses ORDER BY division ASC`)
}

func DistinctPurposes(db *sql.DB) ([]string, error) {
	return distinctStrings(db, `SELECT DISTINCT purpose FROM expenses WHERE purpose <> '' ORDER BY purpose ASC`)
}

func DistinctStoreNames(db *sql.DB) ([]string, error) {
	return distinctStrings(db, `SELECT DISTINCT store_name FROM expenses WHERE store_name <> '' ORDER BY store_name ASC`)
}

func DistinctDepartments(db *sql.DB) ([]string, error) {
	return distinctStrings(db, `SELECT DISTINCT department FROM expenses WHERE department <> '' ORDER BY department ASC`)
}

func DistinctTeams(db *sql.DB) ([]string, error) {
	return distinctStrings(db, `SELECT DISTINCT team FROM expenses WHERE team <> '' ORDER BY team ASC`)
}
