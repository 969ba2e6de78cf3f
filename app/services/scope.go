package services

import (
	"database/sql"

	"github.com/drager40/product-manager/app/models"
)

// The access scope resolver turns caller-supplied filter values into the
// values actually applied to a query, enforcing the role hierarchy:
// ADMIN sees everything, COMPANY is pinned to its company, DEPARTMENT to its
// company and department, TEAM to all three. The same resolution is applied
// on reads, writes and deletes.

// ResolveCategory forces the category (= company) filter for every role below
// ADMIN.
func ResolveCategory(u *models.AppUser, category string) string {
	switch u.Role {
	case models.RoleAdmin:
		return category
	case models.RoleCompany, models.RoleDepartment, models.RoleTeam:
		return u.Company
	}
	return u.Company
}

// ResolveDepartment forces the department filter for DEPARTMENT and TEAM
// roles; ADMIN and COMPANY keep their free choice.
func ResolveDepartment(u *models.AppUser, department string) string {
	switch u.Role {
	case models.RoleAdmin, models.RoleCompany:
		return department
	case models.RoleDepartment, models.RoleTeam:
		return u.Department
	}
	return u.Department
}

// ResolveTeams forces the team list to the user's own team for TEAM role;
// everyone else keeps the supplied list (empty entries dropped). The
// TeamDeptOnly sentinel passes through untouched.
func ResolveTeams(u *models.AppUser, teams []string) []string {
	if u.Role == models.RoleTeam {
		if u.Team != "" {
			return []string{u.Team}
		}
		return []string{}
	}
	out := []string{}
	for _, t := range teams {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// CanAccess reports whether the user may read or mutate a row with the given
// scope values. The check walks the hierarchy top-down; the first mismatched
// level denies access regardless of deeper matches.
func CanAccess(u *models.AppUser, category, department, team string) bool {
	if u.Role == models.RoleAdmin {
		return true
	}
	if u.Company != "" && u.Company != category {
		return false
	}
	if u.Role == models.RoleCompany {
		return true
	}
	if u.Department != "" && u.Department != department {
		return false
	}
	if u.Role == models.RoleDepartment {
		return true
	}
	return u.Team == team
}

// StampScope forces the user's scope values onto a record being created or
// updated, mirroring the read-side resolution: any non-admin gets their
// company, DEPARTMENT and TEAM get their department, TEAM gets its team.
func StampScope(u *models.AppUser, category, department, team *string) {
	if u.Role == models.RoleAdmin {
		return
	}
	if u.Company != "" {
		*category = u.Company
	}
	if u.Role == models.RoleDepartment || u.Role == models.RoleTeam {
		*department = u.Department
	}
	if u.Role == models.RoleTeam {
		*team = u.Team
	}
}

// FilterOptions are the dropdown value lists the list page offers, limited to
// what the user's role may select.
type FilterOptions struct {
	Categories  []string
	Departments []string
	Teams       []string
}

// ResolveFilterOptions narrows the distinct-value lists by role. Wider lists
// for COMPANY and DEPARTMENT are cascaded client-side.
func ResolveFilterOptions(db *sql.DB, u *models.AppUser) (*FilterOptions, error) {
	opts := &FilterOptions{}
	var err error

	switch u.Role {
	case models.RoleAdmin:
		if opts.Categories, err = DistinctCategories(db); err != nil {
			return nil, err
		}
		if opts.Departments, err = DistinctDepartments(db); err != nil {
			return nil, err
		}
		if opts.Teams, err = DistinctTeams(db); err != nil {
			return nil, err
		}
	case models.RoleCompany:
		opts.Categories = singletonOrEmpty(u.Company)
		if opts.Departments, err = DistinctDepartments(db); err != nil {
			return nil, err
		}
		if opts.Teams, err = DistinctTeams(db); err != nil {
			return nil, err
		}
	case models.RoleDepartment:
		opts.Categories = singletonOrEmpty(u.Company)
		opts.Departments = singletonOrEmpty(u.Department)
		if opts.Teams, err = DistinctTeams(db); err != nil {
			return nil, err
		}
	case models.RoleTeam:
		opts.Categories = singletonOrEmpty(u.Company)
		opts.Departments = singletonOrEmpty(u.Department)
		opts.Teams = singletonOrEmpty(u.Team)
	}
	return opts, nil
}

func singletonOrEmpty(v string) []string {
	if v == "" {
		return []string{}
	}
	return []string{v}
}
