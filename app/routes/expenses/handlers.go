package expenses

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/drager40/product-manager/app/config"
	"github.com/drager40/product-manager/app/database"
	"github.com/drager40/product-manager/app/models"
	"github.com/drager40/product-manager/app/services"
)

// budgetRow is one line of the per-budget usage table on the list page.
type budgetRow struct {
	Budget *models.Budget
	Used   int64
	Total  int64
	Usage  int
}

func ListPageHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)
	db := config.GetDB()

	distinctYms, err := services.DistinctYms(db)
	if err != nil {
		return err
	}

	f := resolveScopedFilter(c, user, distinctYms)

	expenses, err := database.GetFilteredExpenses(db, f)
	if err != nil {
		return err
	}
	budgets, err := database.GetFilteredBudgets(db, budgetFilterFrom(f))
	if err != nil {
		return err
	}

	// Headline numbers
	used := services.TotalAmount(expenses)
	total := services.MonthlyAmountTotal(budgets) + services.PrevRemainingTotal(budgets)

	// Per-budget usage table
	usedByKey := services.UsedByBudgetKey(expenses)
	rows := make([]budgetRow, 0, len(budgets))
	for _, b := range budgets {
		bUsed := usedByKey[b.ScopeKey()]
		bTotal := b.TotalBudget()
		rows = append(rows, budgetRow{
			Budget: b,
			Used:   bUsed,
			Total:  bTotal,
			Usage:  services.UsagePercent(bUsed, bTotal),
		})
	}

	// Chart series span a rolling window under the current filter, independent
	// of the month selection.
	chartFilter := chartFilterFrom(f)
	chartExpenses, err := database.GetFilteredExpenses(db, chartFilter)
	if err != nil {
		return err
	}
	chartBudgets, err := database.GetFilteredBudgets(db, budgetFilterFrom(chartFilter))
	if err != nil {
		return err
	}

	months := services.ChartMonths(time.Now())
	amountByYm := services.AmountByYm(chartExpenses)
	budgetByYm := services.BudgetTotalByYm(chartBudgets)

	usedSeries := make([]int64, len(months))
	prevYearSeries := make([]int64, len(months))
	remainingSeries := make([]int64, len(months))
	for i, m := range months {
		usedSeries[i] = amountByYm[m]
		prevYearSeries[i] = amountByYm[services.MinusOneYear(m)]
		remainingSeries[i] = budgetByYm[m] - amountByYm[m]
	}

	categoryLabels, categoryValues := services.AmountByLabel(expenses, func(e *models.Expense) string { return e.Category })
	divisionLabels, divisionValues := services.AmountByLabel(expenses, func(e *models.Expense) string { return e.Division })

	opts, err := services.ResolveFilterOptions(db, user)
	if err != nil {
		return err
	}
	divisions, err := services.DistinctDivisions(db)
	if err != nil {
		return err
	}

	return c.Render("expenses/index", fiber.Map{
		"Title":       "Expenses - Product Manager",
		"CurrentPage": "expenses",
		"user":        user,

		"Expenses":   expenses,
		"BudgetRows": rows,
		"Used":       used,
		"Total":      total,
		"Remaining":  total - used,
		"Usage":      services.UsagePercent(used, total),

		"ChartMonths":     months,
		"UsedSeries":      usedSeries,
		"PrevYearSeries":  prevYearSeries,
		"RemainingSeries": remainingSeries,
		"CategoryLabels":  categoryLabels,
		"CategoryValues":  categoryValues,
		"DivisionLabels":  divisionLabels,
		"DivisionValues":  divisionValues,

		"Yms":         distinctYms,
		"Categories":  opts.Categories,
		"Divisions":   divisions,
		"Departments": opts.Departments,
		"Teams":       opts.Teams,

		"Filter":       f,
		"SearchType":   c.Query("searchType", "storeName"),
		"Keyword":      c.Query("keyword"),
		"ReturnFilter": string(c.Request().URI().QueryString()),
		"Error":        c.Query("error"),
		"Uploaded":     c.Query("uploaded"),
	})
}

func NewExpensePageHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)
	db := config.GetDB()

	opts, err := services.ResolveFilterOptions(db, user)
	if err != nil {
		return err
	}
	divisions, err := services.DistinctDivisions(db)
	if err != nil {
		return err
	}

	return c.Render("expenses/form", fiber.Map{
		"Title":       "New Expense - Product Manager",
		"CurrentPage": "expenses",
		"user":        user,
		"Expense": &models.Expense{
			Ym:          time.Now().Format("2006-01"),
			ExpenseDate: time.Now(),
		},
		"Categories":   opts.Categories,
		"Divisions":    divisions,
		"Departments":  opts.Departments,
		"Teams":        opts.Teams,
		"ReturnFilter": c.Query("returnFilter"),
	})
}

func CreateExpenseHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)
	db := config.GetDB()

	e, err := expenseFromForm(c)
	if err != nil {
		return listRedirect(c)
	}
	services.StampScope(user, &e.Category, &e.Department, &e.Team)

	if err := database.CreateExpense(db, e); err != nil {
		return err
	}
	services.InvalidateDistinctCache()

	return listRedirect(c)
}

func EditExpensePageHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)
	db := config.GetDB()

	e, err := database.GetExpenseByID(db, c.Params("id"))
	if err != nil {
		return listRedirect(c)
	}
	if !services.CanAccess(user, e.Category, e.Department, e.Team) {
		return listRedirect(c)
	}

	opts, err := services.ResolveFilterOptions(db, user)
	if err != nil {
		return err
	}
	divisions, err := services.DistinctDivisions(db)
	if err != nil {
		return err
	}

	return c.Render("expenses/form", fiber.Map{
		"Title":        "Edit Expense - Product Manager",
		"CurrentPage":  "expenses",
		"user":         user,
		"Expense":      e,
		"Categories":   opts.Categories,
		"Divisions":    divisions,
		"Departments":  opts.Departments,
		"Teams":        opts.Teams,
		"ReturnFilter": c.Query("returnFilter"),
	})
}

func UpdateExpenseHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)
	db := config.GetDB()

	existing, err := database.GetExpenseByID(db, c.Params("id"))
	if err != nil {
		return listRedirect(c)
	}
	if !services.CanAccess(user, existing.Category, existing.Department, existing.Team) {
		return listRedirect(c)
	}

	e, err := expenseFromForm(c)
	if err != nil {
		return listRedirect(c)
	}
	e.ID = existing.ID
	services.StampScope(user, &e.Category, &e.Department, &e.Team)

	if err := database.UpdateExpense(db, e); err != nil {
		return err
	}
	services.InvalidateDistinctCache()

	return listRedirect(c)
}

func DeleteExpenseHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)
	db := config.GetDB()

	e, err := database.GetExpenseByID(db, c.Params("id"))
	if err != nil {
		return listRedirect(c)
	}
	if !services.CanAccess(user, e.Category, e.Department, e.Team) {
		return listRedirect(c)
	}

	if err := database.DeleteExpense(db, e.ID); err != nil {
		return err
	}
	services.InvalidateDistinctCache()

	return listRedirect(c)
}

func FilterOptionsAPI(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)
	db := config.GetDB()

	opts, err := services.ResolveFilterOptions(db, user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load filter options"})
	}
	yms, err := services.DistinctYms(db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load filter options"})
	}
	divisions, err := services.DistinctDivisions(db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load filter options"})
	}
	purposes, err := services.DistinctPurposes(db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load filter options"})
	}
	stores, err := services.DistinctStoreNames(db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load filter options"})
	}

	return c.JSON(fiber.Map{
		"yms":         yms,
		"categories":  opts.Categories,
		"divisions":   divisions,
		"departments": opts.Departments,
		"teams":       opts.Teams,
		"purposes":    purposes,
		"storeNames":  stores,
	})
}

// expenseFromForm reads the create/edit form into an expense. A bad date cell
// falls back to the last day of the expense month.
func expenseFromForm(c *fiber.Ctx) (*models.Expense, error) {
	ym := strings.TrimSpace(c.FormValue("ym"))
	month, err := time.Parse("2006-01", ym)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", c.FormValue("expense_date"))
	if err != nil {
		date = month.AddDate(0, 1, -1)
	}

	amount, _ := strconv.ParseInt(strings.ReplaceAll(c.FormValue("amount"), ",", ""), 10, 64)

	return &models.Expense{
		Ym:          ym,
		Category:    strings.TrimSpace(c.FormValue("category")),
		Division:    strings.TrimSpace(c.FormValue("division")),
		Department:  strings.TrimSpace(c.FormValue("department")),
		Team:        strings.TrimSpace(c.FormValue("team")),
		ExpenseDate: date,
		Purpose:     strings.TrimSpace(c.FormValue("purpose")),
		StoreName:   strings.TrimSpace(c.FormValue("store_name")),
		Amount:      amount,
	}, nil
}
