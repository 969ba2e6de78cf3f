package expenses

import (
	"testing"

	"github.com/drager40/product-manager/app/database"
	"github.com/drager40/product-manager/app/models"
)

func TestApplyScope(t *testing.T) {
	u := &models.AppUser{
		Role:       models.RoleDepartment,
		Company:    "LINK",
		Department: "Development",
	}

	f := applyScope(database.ExpenseFilter{Category: "BUGS", Department: "Sales"}, u)
	if f.Category != "LINK" || f.Department != "Development" {
		t.Errorf("scope = %s/%s, want LINK/Development", f.Category, f.Department)
	}
}

// Scope forcing must not introduce a month constraint: an unfiltered download
// under a narrow role still exports every month the role may see.
func TestApplyScopeKeepsMonthsUnconstrained(t *testing.T) {
	u := &models.AppUser{Role: models.RoleDepartment, Company: "LINK", Department: "Development"}

	f := applyScope(database.ExpenseFilter{}, u)
	if len(f.Yms) != 0 {
		t.Errorf("Yms = %v, want none", f.Yms)
	}

	explicit := applyScope(database.ExpenseFilter{Yms: []string{"2025-08"}}, u)
	if len(explicit.Yms) != 1 || explicit.Yms[0] != "2025-08" {
		t.Errorf("explicit Yms = %v, want [2025-08]", explicit.Yms)
	}
}

// The chart queries drop only the month selection; every other filter
// dimension carries into the series.
func TestChartFilterFrom(t *testing.T) {
	f := database.ExpenseFilter{
		Yms:        []string{"2025-08"},
		Category:   "LINK",
		Divisions:  []string{"General"},
		StoreName:  "cafe",
		Department: "Development",
		Teams:      []string{"Platform"},
	}

	chart := chartFilterFrom(f)
	if len(chart.Yms) != 0 {
		t.Errorf("chart Yms = %v, want none", chart.Yms)
	}
	if chart.Category != "LINK" || len(chart.Divisions) != 1 || chart.StoreName != "cafe" ||
		chart.Department != "Development" || len(chart.Teams) != 1 {
		t.Errorf("chart filter dropped dimensions: %+v", chart)
	}

	// The source filter keeps its months
	if len(f.Yms) != 1 {
		t.Errorf("source filter mutated: %v", f.Yms)
	}
}
