package database

import (
	"database/sql"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RunMigrations ensures tables, constraints and indexes exist. All statements
// are idempotent so this runs on every startup.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	queries := []string{
		`CREATE TABLE IF NOT EXISTS app_users (
			id UUID PRIMARY KEY,
			username VARCHAR(50) UNIQUE NOT NULL,
			password VARCHAR(100) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'TEAM',
			enabled BOOLEAN NOT NULL DEFAULT true,
			company VARCHAR(50) NOT NULL DEFAULT '',
			department VARCHAR(50) NOT NULL DEFAULT '',
			team VARCHAR(50) NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id UUID PRIMARY KEY,
			ym VARCHAR(10) NOT NULL,
			category VARCHAR(20) NOT NULL,
			division VARCHAR(20) NOT NULL,
			department VARCHAR(50) NOT NULL DEFAULT '',
			team VARCHAR(50) NOT NULL DEFAULT '',
			expense_date DATE,
			purpose VARCHAR(200) NOT NULL DEFAULT '',
			store_name VARCHAR(200) NOT NULL DEFAULT '',
			amount BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS budgets (
			id UUID PRIMARY KEY,
			ym VARCHAR(10) NOT NULL,
			category VARCHAR(20) NOT NULL,
			division VARCHAR(20) NOT NULL,
			department VARCHAR(50) NOT NULL DEFAULT '',
			team VARCHAR(50) NOT NULL DEFAULT '',
			monthly_amount BIGINT NOT NULL DEFAULT 0,
			prev_remaining BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			CONSTRAINT budgets_scope_key UNIQUE (ym, category, division, department, team)
		)`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			log.Printf("Error creating tables: %v", err)
			return err
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_expenses_ym ON expenses(ym)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_expense_date ON expenses(expense_date)`,
		`CREATE INDEX IF NOT EXISTS idx_budgets_ym ON budgets(ym)`,
	}

	for _, q := range indexes {
		if _, err := db.Exec(q); err != nil {
			log.Printf("Error creating index: %v", err)
			// Continue, duplicate index errors are harmless
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultUsers creates the initial accounts when the users table is
// empty: an ADMIN and a sample DEPARTMENT user.
func SeedDefaultUsers(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM app_users`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seeds := []struct {
		username, password, company, department, team string
		role                                          string
	}{
		{"admin", "admin123", "", "", "", "ADMIN"},
		{"bugs", "bugs123", "BUGS", "BUGS Development", "", "DEPARTMENT"},
	}

	for _, s := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), 14)
		if err != nil {
			return err
		}
		_, err = db.Exec(`INSERT INTO app_users (id, username, password, role, enabled, company, department, team)
			VALUES ($1, $2, $3, $4, true, $5, $6, $7)`,
			uuid.NewString(), s.username, string(hash), s.role, s.company, s.department, s.team)
		if err != nil {
			return err
		}
	}

	log.Println("Seeded default users (admin, bugs)")
	return nil
}
