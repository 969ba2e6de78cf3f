package database

import (
	"fmt"
	"strings"

	"github.com/drager40/product-manager/app/models"
)

// ExpenseFilter holds the optional dimensions a caller may constrain an
// expense query by. Empty slices and empty strings mean "no constraint on
// that dimension". Purpose and StoreName are substring searches; callers set
// at most one of them (the searchType discriminator picks which).
type ExpenseFilter struct {
	Yms        []string
	Category   string
	Divisions  []string
	Purpose    string
	StoreName  string
	Department string
	Teams      []string
}

// BudgetFilter is the budget-side subset of ExpenseFilter (budgets carry no
// purpose or store text).
type BudgetFilter struct {
	Yms        []string
	Category   string
	Divisions  []string
	Department string
	Teams      []string
}

// IsEmpty reports whether no dimension is constrained. The list page uses
// this to decide whether the default-month substitution applies.
func (f ExpenseFilter) IsEmpty() bool {
	return len(f.Yms) == 0 && f.Category == "" && len(f.Divisions) == 0 &&
		f.Purpose == "" && f.StoreName == "" && f.Department == "" && len(f.Teams) == 0
}

// condBuilder accumulates WHERE conditions with positional placeholders.
type condBuilder struct {
	conds []string
	args  []interface{}
}

func (b *condBuilder) next() string {
	return fmt.Sprintf("$%d", len(b.args)+1)
}

func (b *condBuilder) add(cond string, args ...interface{}) {
	b.conds = append(b.conds, cond)
	b.args = append(b.args, args...)
}

func (b *condBuilder) in(column string, values []string) {
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = b.next()
		b.args = append(b.args, v)
	}
	b.conds = append(b.conds, column+" IN ("+strings.Join(placeholders, ", ")+")")
}

// addTeamCondition applies the team-list semantics: the TeamDeptOnly sentinel
// selects rows with no team assigned, named teams select their own rows, and
// the two are ORed when both are present.
func (b *condBuilder) addTeamCondition(teams []string) {
	hasDeptOnly := false
	var realTeams []string
	for _, t := range teams {
		if t == models.TeamDeptOnly {
			hasDeptOnly = true
		} else if t != "" {
			realTeams = append(realTeams, t)
		}
	}

	switch {
	case hasDeptOnly && len(realTeams) > 0:
		placeholders := make([]string, len(realTeams))
		for i, t := range realTeams {
			placeholders[i] = b.next()
			b.args = append(b.args, t)
		}
		b.conds = append(b.conds, "(team = '' OR team IN ("+strings.Join(placeholders, ", ")+"))")
	case hasDeptOnly:
		b.conds = append(b.conds, "team = ''")
	case len(realTeams) > 0:
		b.in("team", realTeams)
	}
}

func (b *condBuilder) whereClause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// Where renders the filter as a SQL fragment (possibly empty) plus its
// positional arguments.
func (f ExpenseFilter) Where() (string, []interface{}) {
	b := &condBuilder{}
	if len(f.Yms) > 0 {
		b.in("ym", f.Yms)
	}
	if f.Category != "" {
		b.add("category = "+b.next(), f.Category)
	}
	if len(f.Divisions) > 0 {
		b.in("division", f.Divisions)
	}
	if f.Purpose != "" {
		b.add("purpose LIKE "+b.next(), "%"+f.Purpose+"%")
	}
	if f.StoreName != "" {
		b.add("store_name LIKE "+b.next(), "%"+f.StoreName+"%")
	}
	if f.Department != "" {
		b.add("department = "+b.next(), f.Department)
	}
	if len(f.Teams) > 0 {
		b.addTeamCondition(f.Teams)
	}
	return b.whereClause(), b.args
}

func (f BudgetFilter) Where() (string, []interface{}) {
	b := &condBuilder{}
	if len(f.Yms) > 0 {
		b.in("ym", f.Yms)
	}
	if f.Category != "" {
		b.add("category = "+b.next(), f.Category)
	}
	if len(f.Divisions) > 0 {
		b.in("division", f.Divisions)
	}
	if f.Department != "" {
		b.add("department = "+b.next(), f.Department)
	}
	if len(f.Teams) > 0 {
		b.addTeamCondition(f.Teams)
	}
	return b.whereClause(), b.args
}
