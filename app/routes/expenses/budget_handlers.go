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

func NewBudgetPageHandler(c *fiber.Ctx) error {
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

	return c.Render("budgets/form", fiber.Map{
		"Title":       "New Budget - Product Manager",
		"CurrentPage": "expenses",
		"user":        user,
		"Budget": &models.Budget{
			Ym: time.Now().Format("2006-01"),
		},
		"Categories":   opts.Categories,
		"Divisions":    divisions,
		"Departments":  opts.Departments,
		"Teams":        opts.Teams,
		"ReturnFilter": c.Query("returnFilter"),
	})
}

func CreateBudgetHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)
	db := config.GetDB()

	b, err := budgetFromForm(c)
	if err != nil {
		return listRedirect(c)
	}
	services.StampScope(user, &b.Category, &b.Department, &b.Team)

	// A second submit for the same month and scope updates the existing row
	// instead of tripping the uniqueness constraint.
	if err := database.UpsertBudget(db, b); err != nil {
		return err
	}
	services.InvalidateDistinctCache()

	return listRedirect(c)
}

func EditBudgetPageHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)
	db := config.GetDB()

	b, err := database.GetBudgetByID(db, c.Params("id"))
	if err != nil {
		return listRedirect(c)
	}
	if !services.CanAccess(user, b.Category, b.Department, b.Team) {
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

	return c.Render("budgets/form", fiber.Map{
		"Title":        "Edit Budget - Product Manager",
		"CurrentPage":  "expenses",
		"user":         user,
		"Budget":       b,
		"Categories":   opts.Categories,
		"Divisions":    divisions,
		"Departments":  opts.Departments,
		"Teams":        opts.Teams,
		"ReturnFilter": c.Query("returnFilter"),
	})
}

func UpdateBudgetHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)
	db := config.GetDB()

	existing, err := database.GetBudgetByID(db, c.Params("id"))
	if err != nil {
		return listRedirect(c)
	}
	if !services.CanAccess(user, existing.Category, existing.Department, existing.Team) {
		return listRedirect(c)
	}

	b, err := budgetFromForm(c)
	if err != nil {
		return listRedirect(c)
	}
	b.ID = existing.ID
	services.StampScope(user, &b.Category, &b.Department, &b.Team)

	if err := database.UpdateBudget(db, b); err != nil {
		return err
	}
	services.InvalidateDistinctCache()

	return listRedirect(c)
}

// Only admins may delete budgets; everyone else is sent back to the list
// without an error, the same way out-of-scope edits are handled.
func DeleteBudgetHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)
	if user.Role != models.RoleAdmin {
		return listRedirect(c)
	}

	db := config.GetDB()

	b, err := database.GetBudgetByID(db, c.Params("id"))
	if err != nil {
		return listRedirect(c)
	}

	if err := database.DeleteBudget(db, b.ID); err != nil {
		return err
	}
	services.InvalidateDistinctCache()

	return listRedirect(c)
}

func budgetFromForm(c *fiber.Ctx) (*models.Budget, error) {
	ym := strings.TrimSpace(c.FormValue("ym"))
	if _, err := time.Parse("2006-01", ym); err != nil {
		return nil, err
	}

	monthly, _ := strconv.ParseInt(strings.ReplaceAll(c.FormValue("monthly_amount"), ",", ""), 10, 64)
	prev, _ := strconv.ParseInt(strings.ReplaceAll(c.FormValue("prev_remaining"), ",", ""), 10, 64)

	return &models.Budget{
		Ym:            ym,
		Category:      strings.TrimSpace(c.FormValue("category")),
		Division:      strings.TrimSpace(c.FormValue("division")),
		Department:    strings.TrimSpace(c.FormValue("department")),
		Team:          strings.TrimSpace(c.FormValue("team")),
		MonthlyAmount: monthly,
		PrevRemaining: prev,
	}, nil
}
