package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/drager40/product-manager/app/models"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Get("/login", ShowLoginPage)
	auth.Post("/login", LoginAPI)
	auth.Post("/logout", LogoutAPI)
	auth.Get("/logout", LogoutAPI)

	// Protected routes
	auth.Use(AuthMiddleware)
	auth.Get("/change-password", ShowChangePasswordPage)
	auth.Post("/change-password", ChangePasswordAPI)
}

func ShowLoginPage(c *fiber.Ctx) error {
	// Check if already logged in
	if tokenString := c.Cookies("jwt_token"); tokenString != "" {
		if _, err := ValidateJWT(tokenString); err == nil {
			return c.Redirect("/")
		}
	}

	return c.Render("auth/login", fiber.Map{
		"Title": "Login - Product Manager",
		"Error": c.Query("error"),
	}, "")
}

func ShowChangePasswordPage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)
	return c.Render("auth/change-password", fiber.Map{
		"Title": "Change Password - Product Manager",
		"user":  user,
	})
}

// AuthMiddleware validates the JWT cookie and sets the user context
func AuthMiddleware(c *fiber.Ctx) error {
	var tokenString string

	// First try cookie
	tokenString = c.Cookies("jwt_token")

	// If no cookie, try Authorization header
	if tokenString == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		}
	}

	isAPIRequest := strings.HasPrefix(c.Path(), "/api/")

	if tokenString == "" {
		if isAPIRequest {
			return c.Status(401).JSON(fiber.Map{"error": "No token found"})
		}
		return c.Redirect("/auth/login")
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		if isAPIRequest {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
		}
		return c.Redirect("/auth/login")
	}

	// Rebuild the user from claims; handlers never hit the database for it
	user := &models.AppUser{
		ID:         claims.UserID,
		Username:   claims.Username,
		Role:       models.ParseRole(claims.Role),
		Company:    claims.Company,
		Department: claims.Department,
		Team:       claims.Team,
		Enabled:    true,
	}

	c.Locals("user_id", user.ID)
	c.Locals("user", user)

	return c.Next()
}

// RoleMiddleware restricts a route group to the given roles
func RoleMiddleware(allowedRoles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.AppUser)

		for _, allowed := range allowedRoles {
			if user.Role == allowed {
				return c.Next()
			}
		}

		isAPIRequest := strings.HasPrefix(c.Path(), "/api/")

		if isAPIRequest {
			return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
		}

		return c.Status(403).Render("error", fiber.Map{
			"Title":        "Access Forbidden - Product Manager",
			"ErrorCode":    "403",
			"ErrorTitle":   "Access Forbidden",
			"ErrorMessage": "You don't have permission to access this resource.",
			"user":         user,
		})
	}
}
