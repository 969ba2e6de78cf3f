package expenses

import (
	"github.com/gofiber/fiber/v2"

	"github.com/drager40/product-manager/app/routes/auth"
)

func SetupExpensesRoutes(app *fiber.App) {
	// Web Routes
	web := app.Group("/expenses")
	web.Use(auth.AuthMiddleware)
	web.Get("/", ListPageHandler)
	web.Get("/new", NewExpensePageHandler)
	web.Post("/", CreateExpenseHandler)
	web.Get("/download", DownloadHandler)
	web.Get("/backup", BackupHandler)
	web.Post("/upload", UploadHandler)
	web.Get("/:id/edit", EditExpensePageHandler)
	web.Post("/:id/delete", DeleteExpenseHandler)
	web.Post("/:id", UpdateExpenseHandler)

	budgets := app.Group("/budgets")
	budgets.Use(auth.AuthMiddleware)
	budgets.Get("/new", NewBudgetPageHandler)
	budgets.Post("/", CreateBudgetHandler)
	budgets.Get("/:id/edit", EditBudgetPageHandler)
	budgets.Post("/:id/delete", DeleteBudgetHandler)
	budgets.Post("/:id", UpdateBudgetHandler)

	// API Routes
	api := app.Group("/api/expenses")
	api.Use(auth.AuthMiddleware)
	api.Get("/options", FilterOptionsAPI)
}
