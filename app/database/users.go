package database

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/drager40/product-manager/app/models"
)

const userColumns = `id, username, password, role, enabled, company, department, team, created_at, updated_at`

func scanUser(row *sql.Row) (*models.AppUser, error) {
	u := &models.AppUser{}
	var role string
	err := row.Scan(&u.ID, &u.Username, &u.Password, &role, &u.Enabled,
		&u.Company, &u.Department, &u.Team, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = models.ParseRole(role)
	return u, nil
}

func GetUserByUsername(db *sql.DB, username string) (*models.AppUser, error) {
	query := `SELECT ` + userColumns + ` FROM app_users WHERE username = $1`
	return scanUser(db.QueryRow(query, username))
}

func GetUserByID(db *sql.DB, id string) (*models.AppUser, error) {
	query := `SELECT ` + userColumns + ` FROM app_users WHERE id = $1`
	return scanUser(db.QueryRow(query, id))
}

func GetAllUsers(db *sql.DB) ([]*models.AppUser, error) {
	query := `SELECT ` + userColumns + ` FROM app_users ORDER BY username ASC`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*models.AppUser{}
	for rows.Next() {
		u := &models.AppUser{}
		var role string
		err := rows.Scan(&u.ID, &u.Username, &u.Password, &role, &u.Enabled,
			&u.Company, &u.Department, &u.Team, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, err
		}
		u.Role = models.ParseRole(role)
		users = append(users, u)
	}
	return users, rows.Err()
}

func UsernameExists(db *sql.DB, username string) (bool, error) {
	var exists bool
	err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM app_users WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

// CreateUser inserts a new account. The password must already be hashed.
func CreateUser(db *sql.DB, u *models.AppUser) error {
	u.ID = uuid.NewString()
	query := `INSERT INTO app_users (id, username, password, role, enabled, company, department, team)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING created_at, updated_at`
	return db.QueryRow(query, u.ID, u.Username, u.Password, string(u.Role), u.Enabled,
		u.Company, u.Department, u.Team).Scan(&u.CreatedAt, &u.UpdatedAt)
}

// UpdateUser updates everything except the password.
func UpdateUser(db *sql.DB, u *models.AppUser) error {
	query := `UPDATE app_users
			  SET username = $1, role = $2, enabled = $3, company = $4, department = $5, team = $6, updated_at = NOW()
			  WHERE id = $7`
	_, err := db.Exec(query, u.Username, string(u.Role), u.Enabled, u.Company, u.Department, u.Team, u.ID)
	return err
}

func UpdateUserPassword(db *sql.DB, id, hashedPassword string) error {
	_, err := db.Exec(`UPDATE app_users SET password = $1, updated_at = NOW() WHERE id = $2`, hashedPassword, id)
	return err
}

func DeleteUser(db *sql.DB, id string) error {
	_, err := db.Exec(`DELETE FROM app_users WHERE id = $1`, id)
	return err
}
