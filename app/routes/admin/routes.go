package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/drager40/product-manager/app/models"
	"github.com/drager40/product-manager/app/routes/auth"
)

func SetupAdminRoutes(app *fiber.App) {
	users := app.Group("/admin/users")
	users.Use(auth.AuthMiddleware)
	users.Use(auth.RoleMiddleware(models.RoleAdmin))
	users.Get("/", UsersPageHandler)
	users.Get("/new", NewUserPageHandler)
	users.Post("/", CreateUserHandler)
	users.Get("/:id/edit", EditUserPageHandler)
	users.Post("/:id/delete", DeleteUserHandler)
	users.Post("/:id", UpdateUserHandler)
}
