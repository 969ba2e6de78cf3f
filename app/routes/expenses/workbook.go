package expenses

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/drager40/product-manager/app/config"
	"github.com/drager40/product-manager/app/database"
	"github.com/drager40/product-manager/app/models"
	"github.com/drager40/product-manager/app/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func UploadHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)
	db := config.GetDB()

	ym := c.FormValue("ym")
	department := c.FormValue("department")
	team := c.FormValue("team")
	category := ""
	services.StampScope(user, &category, &department, &team)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return uploadFailure(c, "No file uploaded")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return uploadFailure(c, "Could not read uploaded file")
	}
	defer file.Close()

	result, err := services.ImportWorkbook(db, file, ym, department, team)
	if err != nil {
		return uploadFailure(c, err.Error())
	}

	return c.Redirect(fmt.Sprintf("/expenses?ym=%s&uploaded=%d", ym, result.ExpenseCount))
}

func uploadFailure(c *fiber.Ctx, message string) error {
	return c.Redirect("/expenses?error=" + url.QueryEscape(message))
}

// DownloadHandler exports the filtered rows. No default month applies here:
// an unfiltered download is an export of everything in scope.
func DownloadHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)

	f := applyScope(parseExpenseFilter(c), user)

	return writeWorkbook(c, f, services.ExportFilename(f.Yms, f.Category))
}

// BackupHandler exports everything the caller may see, no month filter.
func BackupHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)

	return writeWorkbook(c, scopeOnlyFilter(user), "expense-budget-backup.xlsx")
}

func writeWorkbook(c *fiber.Ctx, f database.ExpenseFilter, filename string) error {
	db := config.GetDB()

	expenses, err := database.GetFilteredExpenses(db, f)
	if err != nil {
		return err
	}
	budgets, err := database.GetFilteredBudgets(db, budgetFilterFrom(f))
	if err != nil {
		return err
	}

	wb, err := services.ExportWorkbook(expenses, budgets)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return wb.Write(c.Response().BodyWriter())
}
