package services

import (
	"testing"
	"time"

	"github.com/drager40/product-manager/app/models"
)

func TestMatchSection(t *testing.T) {
	tests := []struct {
		name         string
		label        string
		wantCategory string
		wantDivision string
		wantNil      bool
	}{
		{name: "link general", label: "LINK - General", wantCategory: "LINK", wantDivision: "General"},
		{name: "bugs executive", label: "BUGS Executive budget", wantCategory: "BUGS", wantDivision: "Executive"},
		{name: "link travel with noise", label: "** LINK Travel **", wantCategory: "LINK", wantDivision: "Travel"},
		{name: "plain text no match", label: "Date", wantNil: true},
		{name: "sum row no match", label: "SUM", wantNil: true},
		{name: "empty no match", label: "", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := matchSection(tt.label)
			if tt.wantNil {
				if rule != nil {
					t.Fatalf("matchSection(%q) = %+v, want nil", tt.label, rule)
				}
				return
			}
			if rule == nil {
				t.Fatalf("matchSection(%q) = nil", tt.label)
			}
			if rule.Category != tt.wantCategory || rule.Division != tt.wantDivision {
				t.Errorf("matchSection(%q) = %s/%s, want %s/%s",
					tt.label, rule.Category, rule.Division, tt.wantCategory, tt.wantDivision)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{in: "1,000,000", want: 1000000},
		{in: "300000", want: 300000},
		{in: " 200,000 ", want: 200000},
		{in: "", want: 0},
		{in: "n/a", want: 0},
	}

	for _, tt := range tests {
		if got := parseAmount(tt.in); got != tt.want {
			t.Errorf("parseAmount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseExpenseRowSkipsNonData(t *testing.T) {
	defaultDate := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		row  []string
		skip bool
	}{
		{name: "normal row", row: []string{"2025-08-15", "lunch", "cafe", "300,000"}, skip: false},
		{name: "zero amount", row: []string{"2025-08-15", "lunch", "cafe", "0"}, skip: true},
		{name: "sum label in date cell", row: []string{"SUM", "", "", "500,000"}, skip: true},
		{name: "sum label in purpose cell", row: []string{"", "sum", "", "500,000"}, skip: true},
		{name: "blank row", row: []string{}, skip: true},
		{name: "dateless row gets month end", row: []string{"", "supplies", "store", "50,000"}, skip: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := parseExpenseRow(tt.row, "2025-08", "LINK", "General", defaultDate)
			if tt.skip {
				if e != nil {
					t.Fatalf("expected skip, got %+v", e)
				}
				return
			}
			if e == nil {
				t.Fatal("expected an expense, got nil")
			}
			if e.Ym != "2025-08" || e.Category != "LINK" || e.Division != "General" {
				t.Errorf("scope = %s/%s/%s", e.Ym, e.Category, e.Division)
			}
		})
	}

	// Fallback date
	e := parseExpenseRow([]string{"", "supplies", "store", "50,000"}, "2025-08", "LINK", "General", defaultDate)
	if !e.ExpenseDate.Equal(defaultDate) {
		t.Errorf("fallback date = %v, want %v", e.ExpenseDate, defaultDate)
	}
}

// Export a section then read its rows back through the import parser.
func TestWorkbookRoundTrip(t *testing.T) {
	budgets := []*models.Budget{
		{Ym: "2025-08", Category: "LINK", Division: "General", MonthlyAmount: 1000000, PrevRemaining: 200000},
		{Ym: "2025-08", Category: "BUGS", Division: "General", MonthlyAmount: 400000},
	}
	expenses := []*models.Expense{
		{Ym: "2025-08", Category: "LINK", Division: "General", ExpenseDate: time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC), Purpose: "team lunch", StoreName: "cafe", Amount: 300000},
		{Ym: "2025-08", Category: "LINK", Division: "General", ExpenseDate: time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC), Purpose: "supplies", StoreName: "store", Amount: 150000},
		{Ym: "2025-08", Category: "LINK", Division: "General", ExpenseDate: time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC), Purpose: "transport", StoreName: "metro", Amount: 50000},
	}

	wb, err := ExportWorkbook(expenses, budgets)
	if err != nil {
		t.Fatalf("ExportWorkbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}

	sections := findSections(rows)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}

	link := sections[0]
	if link.rule.Category != "LINK" || link.rule.Division != "General" {
		t.Fatalf("first section = %s/%s", link.rule.Category, link.rule.Division)
	}
	if link.monthly != 1000000 || link.prevRem != 200000 {
		t.Errorf("header amounts = %d/%d, want 1000000/200000", link.monthly, link.prevRem)
	}

	// Budget-only group still appears
	if sections[1].rule.Category != "BUGS" {
		t.Errorf("second section = %s, want BUGS", sections[1].rule.Category)
	}

	// Data rows between the two section headers parse back to the three
	// expenses; SUM and blank rows are skipped.
	defaultDate := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)
	var parsed []*models.Expense
	for r := link.startRow + 2; r < sections[1].startRow; r++ {
		if e := parseExpenseRow(rows[r], "2025-08", link.rule.Category, link.rule.Division, defaultDate); e != nil {
			parsed = append(parsed, e)
		}
	}
	if len(parsed) != 3 {
		t.Fatalf("expected 3 expense rows, got %d", len(parsed))
	}
	if total := TotalAmount(parsed); total != 500000 {
		t.Errorf("round-trip total = %d, want 500000", total)
	}
	if parsed[0].Purpose != "team lunch" || parsed[0].StoreName != "cafe" {
		t.Errorf("first row = %q/%q", parsed[0].Purpose, parsed[0].StoreName)
	}

	// The SUM row carries the group total
	var sumAmount int64 = -1
	for r := link.startRow + 2; r < sections[1].startRow; r++ {
		if len(rows[r]) > 0 && rows[r][0] == "SUM" {
			sumAmount = parseAmount(cellAt(rows[r], 3))
		}
	}
	if sumAmount != 500000 {
		t.Errorf("SUM row amount = %d, want 500000", sumAmount)
	}
}
