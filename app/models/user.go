package models

import "time"

// Role is the closed set of access levels. Each user has exactly one role;
// every role below ADMIN narrows the rows the user may see or change.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleCompany    Role = "COMPANY"
	RoleDepartment Role = "DEPARTMENT"
	RoleTeam       Role = "TEAM"
)

// ParseRole maps a stored role string to a Role, defaulting unknown
// values to the most restrictive level.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleCompany, RoleDepartment, RoleTeam:
		return Role(s)
	default:
		return RoleTeam
	}
}

// AppUser represents an application account. Company, Department and Team
// anchor the role's scope; they narrow progressively (a COMPANY user carries
// only Company, a TEAM user carries all three).
type AppUser struct {
	ID         string    `json:"id"`
	Username   string    `json:"username" form:"username"`
	Password   string    `json:"-" form:"password"`
	Role       Role      `json:"role" form:"role"`
	Enabled    bool      `json:"enabled" form:"enabled"`
	Company    string    `json:"company" form:"company"`
	Department string    `json:"department" form:"department"`
	Team       string    `json:"team" form:"team"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
