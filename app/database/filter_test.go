package database

import (
	"reflect"
	"testing"

	"github.com/drager40/product-manager/app/models"
)

func TestExpenseFilterIsEmpty(t *testing.T) {
	if !(ExpenseFilter{}).IsEmpty() {
		t.Error("zero filter should be empty")
	}

	nonEmpty := []ExpenseFilter{
		{Yms: []string{"2025-08"}},
		{Category: "LINK"},
		{Divisions: []string{"General"}},
		{Purpose: "lunch"},
		{StoreName: "cafe"},
		{Department: "Dev"},
		{Teams: []string{"Platform"}},
	}
	for i, f := range nonEmpty {
		if f.IsEmpty() {
			t.Errorf("filter %d should not be empty", i)
		}
	}
}

func TestExpenseFilterWhere(t *testing.T) {
	tests := []struct {
		name     string
		filter   ExpenseFilter
		want     string
		wantArgs []interface{}
	}{
		{
			name:   "empty filter has no clause",
			filter: ExpenseFilter{},
			want:   "",
		},
		{
			name:     "single month",
			filter:   ExpenseFilter{Yms: []string{"2025-08"}},
			want:     " WHERE ym IN ($1)",
			wantArgs: []interface{}{"2025-08"},
		},
		{
			name:     "category and store search",
			filter:   ExpenseFilter{Category: "LINK", StoreName: "cafe"},
			want:     " WHERE category = $1 AND store_name LIKE $2",
			wantArgs: []interface{}{"LINK", "%cafe%"},
		},
		{
			name:     "purpose search",
			filter:   ExpenseFilter{Purpose: "lunch"},
			want:     " WHERE purpose LIKE $1",
			wantArgs: []interface{}{"%lunch%"},
		},
		{
			name:     "named teams only",
			filter:   ExpenseFilter{Teams: []string{"Platform", "Infra"}},
			want:     " WHERE team IN ($1, $2)",
			wantArgs: []interface{}{"Platform", "Infra"},
		},
		{
			name:     "department-only sentinel alone",
			filter:   ExpenseFilter{Teams: []string{models.TeamDeptOnly}},
			want:     " WHERE team = ''",
			wantArgs: nil,
		},
		{
			name:     "sentinel ORed with named team",
			filter:   ExpenseFilter{Teams: []string{models.TeamDeptOnly, "Platform"}},
			want:     " WHERE (team = '' OR team IN ($1))",
			wantArgs: []interface{}{"Platform"},
		},
		{
			name:     "placeholders keep numbering across dimensions",
			filter:   ExpenseFilter{Yms: []string{"2025-07", "2025-08"}, Department: "Dev", Teams: []string{models.TeamDeptOnly, "Platform"}},
			want:     " WHERE ym IN ($1, $2) AND department = $3 AND (team = '' OR team IN ($4))",
			wantArgs: []interface{}{"2025-07", "2025-08", "Dev", "Platform"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, args := tt.filter.Where()
			if got != tt.want {
				t.Errorf("Where() = %q, want %q", got, tt.want)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("args = %v, want %v", args, tt.wantArgs)
			}
			if len(args) > 0 && !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestBudgetFilterWhere(t *testing.T) {
	f := BudgetFilter{
		Yms:      []string{"2025-08"},
		Category: "LINK",
		Teams:    []string{models.TeamDeptOnly},
	}
	got, args := f.Where()
	want := " WHERE ym IN ($1) AND category = $2 AND team = ''"
	if got != want {
		t.Errorf("Where() = %q, want %q", got, want)
	}
	if len(args) != 2 {
		t.Errorf("expected 2 args, got %d", len(args))
	}
}
