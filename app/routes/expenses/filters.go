package expenses

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/drager40/product-manager/app/database"
	"github.com/drager40/product-manager/app/models"
	"github.com/drager40/product-manager/app/services"
)

// parseExpenseFilter reads the list page's query parameters into a filter.
// The single keyword box maps to exactly one of the two substring predicates,
// selected by searchType (store name unless "purpose" is asked for).
func parseExpenseFilter(c *fiber.Ctx) database.ExpenseFilter {
	f := database.ExpenseFilter{
		Yms:        queryValues(c, "ym"),
		Category:   strings.TrimSpace(c.Query("category")),
		Divisions:  queryValues(c, "division"),
		Department: strings.TrimSpace(c.Query("department")),
		Teams:      queryValues(c, "team"),
	}

	if keyword := strings.TrimSpace(c.Query("keyword")); keyword != "" {
		if c.Query("searchType") == "purpose" {
			f.Purpose = keyword
		} else {
			f.StoreName = keyword
		}
	}

	return f
}

// applyScope forces the role scope onto a filter. Categories, departments and
// teams come back narrowed; every other dimension passes through.
func applyScope(f database.ExpenseFilter, u *models.AppUser) database.ExpenseFilter {
	f.Category = services.ResolveCategory(u, f.Category)
	f.Department = services.ResolveDepartment(u, f.Department)
	f.Teams = services.ResolveTeams(u, f.Teams)
	return f
}

// resolveScopedFilter applies the default-month policy (on the raw filter,
// before any scope value is forced) and then the role scope. Only the list
// page uses the default month; downloads export everything when unfiltered.
func resolveScopedFilter(c *fiber.Ctx, u *models.AppUser, distinctYms []string) database.ExpenseFilter {
	f := parseExpenseFilter(c)
	f.Yms = services.ResolveDefaultYms(f, distinctYms)
	return applyScope(f, u)
}

// chartFilterFrom keeps every resolved dimension except the month list, so
// the chart series span their whole rolling window under the current filter.
func chartFilterFrom(f database.ExpenseFilter) database.ExpenseFilter {
	f.Yms = nil
	return f
}

// budgetFilterFrom narrows the budget query to the same dimensions; budgets
// carry no purpose or store name.
func budgetFilterFrom(f database.ExpenseFilter) database.BudgetFilter {
	return database.BudgetFilter{
		Yms:        f.Yms,
		Category:   f.Category,
		Divisions:  f.Divisions,
		Department: f.Department,
		Teams:      f.Teams,
	}
}

// scopeOnlyFilter keeps just the forced scope dimensions, for queries that
// span all months (charts, backup).
func scopeOnlyFilter(u *models.AppUser) database.ExpenseFilter {
	return database.ExpenseFilter{
		Category:   services.ResolveCategory(u, ""),
		Department: services.ResolveDepartment(u, ""),
		Teams:      services.ResolveTeams(u, nil),
	}
}

func queryValues(c *fiber.Ctx, key string) []string {
	var out []string
	for _, v := range c.Context().QueryArgs().PeekMulti(key) {
		if s := strings.TrimSpace(string(v)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// listRedirect sends the user back to the list page, restoring the filter
// state the form carried along.
func listRedirect(c *fiber.Ctx) error {
	if rf := c.FormValue("returnFilter"); rf != "" {
		return c.Redirect("/expenses?" + rf)
	}
	if rf := c.Query("returnFilter"); rf != "" {
		return c.Redirect("/expenses?" + rf)
	}
	return c.Redirect("/expenses")
}
