package services

import (
	"testing"
	"time"

	"github.com/drager40/product-manager/app/models"
)

func TestUsagePercent(t *testing.T) {
	tests := []struct {
		name  string
		used  int64
		total int64
		want  int
	}{
		{name: "zero budget reports zero", used: 500000, total: 0, want: 0},
		{name: "negative budget reports zero", used: 100, total: -50, want: 0},
		{name: "exact half", used: 50, total: 100, want: 50},
		{name: "rounds half up", used: 1, total: 8, want: 13},       // 12.5
		{name: "rounds down below half", used: 124, total: 1000, want: 12}, // 12.4
		{name: "overspend goes past 100", used: 1500000, total: 1000000, want: 150},
		{name: "zero used", used: 0, total: 1000, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UsagePercent(tt.used, tt.total)
			if got != tt.want {
				t.Errorf("UsagePercent(%d, %d) = %d, want %d", tt.used, tt.total, got, tt.want)
			}
		})
	}
}

func TestUsedByBudgetKey(t *testing.T) {
	base := &models.Expense{Ym: "2025-08", Category: "LINK", Division: "General", Department: "Dev", Team: "Platform", Amount: 100}

	vary := func(mutate func(*models.Expense)) *models.Expense {
		e := *base
		mutate(&e)
		return &e
	}

	// Identical scope accumulates in one bucket
	used := UsedByBudgetKey([]*models.Expense{base, vary(func(e *models.Expense) { e.Amount = 50 })})
	if len(used) != 1 {
		t.Fatalf("expected one bucket, got %d", len(used))
	}
	key := models.BudgetKey("2025-08", "LINK", "General", "Dev", "Platform")
	if used[key] != 150 {
		t.Errorf("bucket total = %d, want 150", used[key])
	}

	// Any one differing field lands in a different bucket
	variants := []*models.Expense{
		vary(func(e *models.Expense) { e.Ym = "2025-09" }),
		vary(func(e *models.Expense) { e.Category = "BUGS" }),
		vary(func(e *models.Expense) { e.Division = "Travel" }),
		vary(func(e *models.Expense) { e.Department = "" }),
		vary(func(e *models.Expense) { e.Team = "" }),
	}
	for i, v := range variants {
		got := UsedByBudgetKey([]*models.Expense{base, v})
		if len(got) != 2 {
			t.Errorf("variant %d: expected two buckets, got %d", i, len(got))
		}
	}
}

func TestAmountByLabel(t *testing.T) {
	expenses := []*models.Expense{
		{Category: "LINK", Amount: 100},
		{Category: "BUGS", Amount: 50},
		{Category: "LINK", Amount: 25},
		{Category: "", Amount: 10},
	}

	labels, values := AmountByLabel(expenses, func(e *models.Expense) string { return e.Category })

	wantLabels := []string{"LINK", "BUGS", FallbackLabel}
	wantValues := []int64{125, 50, 10}
	if len(labels) != len(wantLabels) {
		t.Fatalf("labels = %v, want %v", labels, wantLabels)
	}
	for i := range labels {
		if labels[i] != wantLabels[i] || values[i] != wantValues[i] {
			t.Errorf("slot %d = %s/%d, want %s/%d", i, labels[i], values[i], wantLabels[i], wantValues[i])
		}
	}
}

func TestChartMonths(t *testing.T) {
	now := time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)
	months := ChartMonths(now)

	if len(months) != 13 {
		t.Fatalf("expected 13 months, got %d", len(months))
	}
	if months[0] != "2024-08" {
		t.Errorf("first month = %s, want 2024-08", months[0])
	}
	if months[12] != "2025-08" {
		t.Errorf("last month = %s, want 2025-08", months[12])
	}
}

func TestMinusOneYear(t *testing.T) {
	if got := MinusOneYear("2025-08"); got != "2024-08" {
		t.Errorf("MinusOneYear(2025-08) = %s, want 2024-08", got)
	}
	if got := MinusOneYear("garbage"); got != "garbage" {
		t.Errorf("MinusOneYear(garbage) = %s, want unchanged", got)
	}
}

func TestBudgetTotalByYm(t *testing.T) {
	budgets := []*models.Budget{
		{Ym: "2025-08", MonthlyAmount: 1000000, PrevRemaining: 200000},
		{Ym: "2025-08", MonthlyAmount: 500000, PrevRemaining: -100000},
		{Ym: "2025-07", MonthlyAmount: 300000},
	}

	byYm := BudgetTotalByYm(budgets)
	if byYm["2025-08"] != 1600000 {
		t.Errorf("2025-08 total = %d, want 1600000", byYm["2025-08"])
	}
	if byYm["2025-07"] != 300000 {
		t.Errorf("2025-07 total = %d, want 300000", byYm["2025-07"])
	}
}
