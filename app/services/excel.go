package services

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/drager40/product-manager/app/database"
	"github.com/drager40/product-manager/app/models"
)

// Workbook layout (import and export share it):
//   col A: date / section label,  col B: purpose,
//   col C: store name / monthly amount,  col D: amount / previous remaining.
// A section starts with a header row whose label matches one of the rules
// below, followed by two header rows, then data rows until the next section.

// SectionRule recognizes a section-header label and maps it to a scope.
// Match substrings must all appear in the label; Exclude substrings (compared
// case-insensitively) must not.
type SectionRule struct {
	Match    []string
	Exclude  []string
	Category string
	Division string
}

// SectionRules is the recognition table, first match wins. Extend it to teach
// the importer new company/division combinations.
var SectionRules = []SectionRule{
	{Match: []string{"LINK", "General"}, Category: "LINK", Division: "General"},
	{Match: []string{"LINK", "Project"}, Category: "LINK", Division: "Project"},
	{Match: []string{"LINK", "External"}, Category: "LINK", Division: "External"},
	{Match: []string{"LINK", "Travel"}, Category: "LINK", Division: "Travel"},
	{Match: []string{"BUGS", "General"}, Category: "BUGS", Division: "General"},
	{Match: []string{"BUGS", "External"}, Category: "BUGS", Division: "External"},
	{Match: []string{"BUGS", "Executive"}, Category: "BUGS", Division: "Executive"},
	{Match: []string{"LINK", "Executive"}, Exclude: []string{"BUGS", "DATE", "SUM"}, Category: "LINK", Division: "Executive"},
}

func matchSection(label string) *SectionRule {
	upper := strings.ToUpper(label)
	for i := range SectionRules {
		rule := &SectionRules[i]
		ok := true
		for _, m := range rule.Match {
			if !strings.Contains(label, m) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for _, x := range rule.Exclude {
			if strings.Contains(upper, x) {
				ok = false
				break
			}
		}
		if ok {
			return rule
		}
	}
	return nil
}

// UploadResult reports how many rows an import wrote.
type UploadResult struct {
	BudgetCount  int
	ExpenseCount int
}

type section struct {
	rule     *SectionRule
	monthly  int64
	prevRem  int64
	startRow int
}

var ErrNoSections = errors.New("no recognized sections in workbook")

// ImportWorkbook parses the first sheet of an uploaded workbook and writes
// one budget per recognized section plus its expense rows, stamped with the
// given month and scope. Rows are saved individually; an import error after
// some saves leaves those rows persisted.
func ImportWorkbook(db *sql.DB, r io.Reader, ym, department, team string) (*UploadResult, error) {
	month, err := time.Parse("2006-01", ym)
	if err != nil {
		return nil, fmt.Errorf("invalid year-month %q", ym)
	}
	// Last calendar day of the target month, for rows without a date cell.
	defaultDate := month.AddDate(0, 1, -1)

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}

	sections := findSections(rows)
	if len(sections) == 0 {
		return nil, ErrNoSections
	}

	result := &UploadResult{}
	for i, sec := range sections {
		budget := &models.Budget{
			Ym:            ym,
			Category:      sec.rule.Category,
			Division:      sec.rule.Division,
			Department:    department,
			Team:          team,
			MonthlyAmount: sec.monthly,
			PrevRemaining: sec.prevRem,
		}
		if err := database.UpsertBudget(db, budget); err != nil {
			return result, fmt.Errorf("save budget %s-%s: %w", budget.Category, budget.Division, err)
		}
		result.BudgetCount++

		// Skip the section header row and the column header row.
		dataStart := sec.startRow + 2
		dataEnd := len(rows) - 1
		if i+1 < len(sections) {
			dataEnd = sections[i+1].startRow - 1
		}

		for row := dataStart; row <= dataEnd; row++ {
			expense := parseExpenseRow(rows[row], ym, sec.rule.Category, sec.rule.Division, defaultDate)
			if expense == nil {
				continue
			}
			expense.Department = department
			expense.Team = team
			if err := database.CreateExpense(db, expense); err != nil {
				return result, fmt.Errorf("save expense row %d: %w", row+1, err)
			}
			result.ExpenseCount++
		}
	}

	InvalidateDistinctCache()
	return result, nil
}

func findSections(rows [][]string) []section {
	var sections []section
	for i, row := range rows {
		label := strings.TrimSpace(cellAt(row, 0))
		if label == "" {
			continue
		}
		rule := matchSection(label)
		if rule == nil {
			continue
		}
		sections = append(sections, section{
			rule:     rule,
			monthly:  parseAmount(cellAt(row, 2)),
			prevRem:  parseAmount(cellAt(row, 3)),
			startRow: i,
		})
	}
	return sections
}

// parseExpenseRow turns one data row into an expense, or nil for subtotal,
// SUM and blank rows.
func parseExpenseRow(row []string, ym, category, division string, defaultDate time.Time) *models.Expense {
	dateStr := strings.TrimSpace(cellAt(row, 0))
	purpose := strings.TrimSpace(cellAt(row, 1))
	store := strings.TrimSpace(cellAt(row, 2))
	amount := parseAmount(cellAt(row, 3))

	if amount == 0 {
		return nil
	}
	if strings.EqualFold(dateStr, "SUM") || strings.EqualFold(purpose, "SUM") {
		return nil
	}
	if dateStr == "" && purpose == "" && store == "" {
		return nil
	}

	date := defaultDate
	if d, ok := parseDate(dateStr); ok {
		date = d
	}

	return &models.Expense{
		Ym:          ym,
		Category:    category,
		Division:    division,
		ExpenseDate: date,
		Purpose:     purpose,
		StoreName:   store,
		Amount:      amount,
	}
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

var dateLayouts = []string{"2006-01-02", "01-02-06", "2006/01/02", "01/02/2006", "1/2/06"}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func parseAmount(s string) int64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(v)
}

// ==================== Export ====================

const exportSheet = "ExpenseBudget"

var exportHeaders = []string{"Date", "Purpose", "Store", "Amount"}

// ExportWorkbook renders a filtered expense and budget set as one worksheet:
// a styled section per category-division group in first-seen order, each with
// its budget amounts on the header row, the expense rows, and a bold SUM row.
// Groups that have a budget but no expenses still appear.
func ExportWorkbook(expenses []*models.Expense, budgets []*models.Budget) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	styles, err := newExportStyles(f)
	if err != nil {
		return nil, err
	}

	// Group expenses by "CATEGORY - DIVISION" in first-seen order, then append
	// budget-only groups.
	groupOrder := []string{}
	grouped := map[string][]*models.Expense{}
	for _, e := range expenses {
		key := e.Category + " - " + e.Division
		if _, ok := grouped[key]; !ok {
			groupOrder = append(groupOrder, key)
		}
		grouped[key] = append(grouped[key], e)
	}

	budgetByKey := map[string]*models.Budget{}
	for _, b := range budgets {
		key := b.Category + " - " + b.Division
		if _, ok := budgetByKey[key]; !ok {
			budgetByKey[key] = b
		}
		if _, ok := grouped[key]; !ok {
			grouped[key] = nil
			groupOrder = append(groupOrder, key)
		}
	}

	row := 1
	for _, key := range groupOrder {
		budget := budgetByKey[key]

		// Section header with the budget amounts
		setCell(f, 1, row, key, styles.section)
		setCell(f, 2, row, "", styles.section)
		var monthly, prevRem int64
		if budget != nil {
			monthly = budget.MonthlyAmount
			prevRem = budget.PrevRemaining
		}
		setCell(f, 3, row, monthly, styles.amount)
		setCell(f, 4, row, prevRem, styles.amount)
		row++

		// Column headers
		for i, h := range exportHeaders {
			setCell(f, i+1, row, h, styles.header)
		}
		row++

		// Data rows
		var total int64
		for _, e := range grouped[key] {
			if !e.ExpenseDate.IsZero() {
				setCell(f, 1, row, e.ExpenseDate, styles.date)
			}
			setCell(f, 2, row, e.Purpose, 0)
			setCell(f, 3, row, e.StoreName, 0)
			setCell(f, 4, row, e.Amount, styles.amount)
			total += e.Amount
			row++
		}

		// SUM row
		setCell(f, 1, row, "SUM", 0)
		setCell(f, 4, row, total, styles.sum)
		row += 2 // blank separator
	}

	// Fixed presentation widths
	f.SetColWidth(exportSheet, "A", "A", 14)
	f.SetColWidth(exportSheet, "B", "C", 20)
	f.SetColWidth(exportSheet, "D", "D", 15)

	return f, nil
}

type exportStyles struct {
	section, header, amount, sum, date int
}

func newExportStyles(f *excelize.File) (*exportStyles, error) {
	amountFmt := "#,##0"
	dateFmt := "yyyy-mm-dd"

	section, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#8EB4E3"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9D9D9"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	amount, err := f.NewStyle(&excelize.Style{CustomNumFmt: &amountFmt})
	if err != nil {
		return nil, err
	}
	sum, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &amountFmt,
	})
	if err != nil {
		return nil, err
	}
	date, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return nil, err
	}
	return &exportStyles{section: section, header: header, amount: amount, sum: sum, date: date}, nil
}

func setCell(f *excelize.File, col, row int, value interface{}, style int) {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	f.SetCellValue(exportSheet, cell, value)
	if style != 0 {
		f.SetCellStyle(exportSheet, cell, cell, style)
	}
}

// ExportFilename builds the download name from the applied filter.
func ExportFilename(yms []string, category string) string {
	name := "expense-budget"
	if len(yms) == 1 {
		name += "_" + strings.ReplaceAll(yms[0], "-", "")
	} else if len(yms) > 1 {
		name += fmt.Sprintf("_%d-months", len(yms))
	}
	if category != "" {
		name += "_" + category
	}
	return name + ".xlsx"
}
