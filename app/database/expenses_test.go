package database

import (
	"strings"
	"testing"
)

func TestExpenseListQueryOrdering(t *testing.T) {
	query, args := expenseListQuery(ExpenseFilter{Category: "LINK"})

	wantOrder := " ORDER BY expense_date ASC, created_at ASC, id ASC"
	if !strings.HasSuffix(query, wantOrder) {
		t.Errorf("query %q does not end with %q", query, wantOrder)
	}
	if !strings.Contains(query, "WHERE category = $1") {
		t.Errorf("query %q is missing the filter clause", query)
	}
	if len(args) != 1 || args[0] != "LINK" {
		t.Errorf("args = %v, want [LINK]", args)
	}
}

func TestExpenseListQueryNoFilter(t *testing.T) {
	query, args := expenseListQuery(ExpenseFilter{})

	if strings.Contains(query, "WHERE") {
		t.Errorf("empty filter produced a WHERE clause: %q", query)
	}
	if len(args) != 0 {
		t.Errorf("empty filter produced args: %v", args)
	}
}
