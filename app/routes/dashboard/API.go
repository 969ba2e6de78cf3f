package dashboard

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/drager40/product-manager/app/config"
	"github.com/drager40/product-manager/app/database"
	"github.com/drager40/product-manager/app/models"
	"github.com/drager40/product-manager/app/routes/auth"
	"github.com/drager40/product-manager/app/services"
)

func SetupDashboardRoutes(app *fiber.App) {
	app.Get("/", auth.AuthMiddleware, GetDashboard)
}

// GetDashboard renders the home page: this month's spend against budget,
// comparison months and the latest activity, all under the caller's scope.
func GetDashboard(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)
	db := config.GetDB()

	now := time.Now()
	ym, prevYm := services.CurrentAndPrevYm(now)
	prevYearYm := services.MinusOneYear(ym)

	scope := database.ExpenseFilter{
		Category:   services.ResolveCategory(user, ""),
		Department: services.ResolveDepartment(user, ""),
		Teams:      services.ResolveTeams(user, nil),
	}

	monthFilter := scope
	monthFilter.Yms = []string{ym}
	expenses, err := database.GetFilteredExpenses(db, monthFilter)
	if err != nil {
		return err
	}

	budgetFilter := database.BudgetFilter{
		Yms:        []string{ym},
		Category:   scope.Category,
		Department: scope.Department,
		Teams:      scope.Teams,
	}
	budgets, err := database.GetFilteredBudgets(db, budgetFilter)
	if err != nil {
		return err
	}

	used := services.TotalAmount(expenses)
	total := services.MonthlyAmountTotal(budgets) + services.PrevRemainingTotal(budgets)

	prevFilter := scope
	prevFilter.Yms = []string{prevYm}
	prevExpenses, err := database.GetFilteredExpenses(db, prevFilter)
	if err != nil {
		return err
	}

	prevYearFilter := scope
	prevYearFilter.Yms = []string{prevYearYm}
	prevYearExpenses, err := database.GetFilteredExpenses(db, prevYearFilter)
	if err != nil {
		return err
	}

	categoryLabels, categoryValues := services.AmountByLabel(expenses, func(e *models.Expense) string { return e.Category })

	// Five most recent entries; the query orders by date ascending
	recent := expenses
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}

	return c.Render("dashboard/index", fiber.Map{
		"Title":       "Dashboard - Product Manager",
		"CurrentPage": "dashboard",
		"user":        user,

		"Ym":           ym,
		"Used":         used,
		"Total":        total,
		"Remaining":    total - used,
		"Usage":        services.UsagePercent(used, total),
		"ExpenseCount": len(expenses),
		"PrevUsed":     services.TotalAmount(prevExpenses),
		"PrevYearUsed": services.TotalAmount(prevYearExpenses),

		"CategoryLabels": categoryLabels,
		"CategoryValues": categoryValues,
		"RecentExpenses": recent,
	})
}
