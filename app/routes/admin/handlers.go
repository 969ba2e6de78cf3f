package admin

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/drager40/product-manager/app/config"
	"github.com/drager40/product-manager/app/database"
	"github.com/drager40/product-manager/app/models"
	"github.com/drager40/product-manager/app/routes/auth"
)

var allRoles = []models.Role{
	models.RoleAdmin,
	models.RoleCompany,
	models.RoleDepartment,
	models.RoleTeam,
}

func UsersPageHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)
	db := config.GetDB()

	users, err := database.GetAllUsers(db)
	if err != nil {
		return err
	}

	return c.Render("admin/users", fiber.Map{
		"Title":       "Users - Product Manager",
		"CurrentPage": "admin",
		"user":        user,
		"Users":       users,
		"Error":       c.Query("error"),
	})
}

func NewUserPageHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)

	return c.Render("admin/user_form", fiber.Map{
		"Title":       "New User - Product Manager",
		"CurrentPage": "admin",
		"user":        user,
		"Target":      &models.AppUser{Enabled: true, Role: models.RoleTeam},
		"Roles":       allRoles,
	})
}

func CreateUserHandler(c *fiber.Ctx) error {
	db := config.GetDB()

	target := userFromForm(c)
	if target.Username == "" || c.FormValue("password") == "" {
		return usersRedirect(c, "Username and password are required")
	}

	exists, err := database.UsernameExists(db, target.Username)
	if err != nil {
		return err
	}
	if exists {
		return usersRedirect(c, "Username already exists")
	}

	hashed, err := auth.HashPassword(c.FormValue("password"))
	if err != nil {
		return err
	}
	target.Password = hashed

	if err := database.CreateUser(db, target); err != nil {
		return err
	}

	return c.Redirect("/admin/users")
}

func EditUserPageHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)
	db := config.GetDB()

	target, err := database.GetUserByID(db, c.Params("id"))
	if err != nil {
		return c.Redirect("/admin/users")
	}

	return c.Render("admin/user_form", fiber.Map{
		"Title":       "Edit User - Product Manager",
		"CurrentPage": "admin",
		"user":        user,
		"Target":      target,
		"Roles":       allRoles,
	})
}

func UpdateUserHandler(c *fiber.Ctx) error {
	db := config.GetDB()

	existing, err := database.GetUserByID(db, c.Params("id"))
	if err != nil {
		return c.Redirect("/admin/users")
	}

	target := userFromForm(c)
	target.ID = existing.ID

	if err := database.UpdateUser(db, target); err != nil {
		return err
	}

	// A blank password keeps the old hash
	if password := c.FormValue("password"); password != "" {
		hashed, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		if err := database.UpdateUserPassword(db, target.ID, hashed); err != nil {
			return err
		}
	}

	return c.Redirect("/admin/users")
}

func DeleteUserHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)
	db := config.GetDB()

	id := c.Params("id")
	if id == user.ID {
		return usersRedirect(c, "You cannot delete your own account")
	}

	if err := database.DeleteUser(db, id); err != nil {
		return err
	}

	return c.Redirect("/admin/users")
}

func usersRedirect(c *fiber.Ctx, message string) error {
	return c.Redirect("/admin/users?error=" + url.QueryEscape(message))
}

func userFromForm(c *fiber.Ctx) *models.AppUser {
	return &models.AppUser{
		Username:   strings.TrimSpace(c.FormValue("username")),
		Role:       models.ParseRole(c.FormValue("role")),
		Enabled:    c.FormValue("enabled") != "" && c.FormValue("enabled") != "false",
		Company:    strings.TrimSpace(c.FormValue("company")),
		Department: strings.TrimSpace(c.FormValue("department")),
		Team:       strings.TrimSpace(c.FormValue("team")),
	}
}
