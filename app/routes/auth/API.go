package auth

import (
	"database/sql"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/drager40/product-manager/app/config"
	"github.com/drager40/product-manager/app/database"
	"github.com/drager40/product-manager/app/models"
)

func LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return loginFailure(c, 400, "Invalid request")
	}

	user, err := database.GetUserByUsername(config.GetDB(), req.Username)
	if err != nil {
		if err == sql.ErrNoRows {
			return loginFailure(c, 401, "Invalid credentials")
		}
		return loginFailure(c, 500, "Database error")
	}

	if !user.Enabled {
		return loginFailure(c, 401, "Account is disabled")
	}

	if !CheckPasswordHash(req.Password, user.Password) {
		return loginFailure(c, 401, "Invalid credentials")
	}

	token, err := GenerateJWT(user)
	if err != nil {
		return loginFailure(c, 500, "Failed to generate token")
	}

	// Set JWT as HTTP-only cookie
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: "Lax",
	})

	if isFormRequest(c) {
		return c.Redirect("/")
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
	})
}

func LogoutAPI(c *fiber.Ctx) error {
	// Clear JWT cookie
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.Redirect("/auth/login")
}

func ChangePasswordAPI(c *fiber.Ctx) error {
	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password" form:"current_password"`
		NewPassword     string `json:"new_password" form:"new_password"`
		ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	if len(req.NewPassword) < 6 {
		return c.Status(400).JSON(fiber.Map{"error": "New password must be at least 6 characters"})
	}
	if req.NewPassword != req.ConfirmPassword {
		return c.Status(400).JSON(fiber.Map{"error": "Passwords do not match"})
	}

	sessionUser := c.Locals("user").(*models.AppUser)

	// Re-read the stored hash to verify the current password
	user, err := database.GetUserByUsername(config.GetDB(), sessionUser.Username)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	if !CheckPasswordHash(req.CurrentPassword, user.Password) {
		return c.Status(400).JSON(fiber.Map{"error": "Current password is incorrect"})
	}

	hashedPassword, err := HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	if err := database.UpdateUserPassword(config.GetDB(), user.ID, hashedPassword); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update password"})
	}

	if isFormRequest(c) {
		return c.Redirect("/")
	}

	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

func loginFailure(c *fiber.Ctx, status int, message string) error {
	if isFormRequest(c) {
		return c.Redirect("/auth/login?error=" + url.QueryEscape(message))
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func isFormRequest(c *fiber.Ctx) bool {
	ct := string(c.Request().Header.ContentType())
	return ct == "" ||
		strings.HasPrefix(ct, fiber.MIMEApplicationForm) ||
		strings.HasPrefix(ct, fiber.MIMEMultipartForm)
}
