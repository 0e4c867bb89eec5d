package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"teamboard/config"
	"teamboard/models"
	"teamboard/utils"
)

// Protected gates a route behind a valid session token. On success the
// authenticated user is attached to the request context as
// c.Locals("user") and c.Locals("userID"); no other side effect.
//
// The token is read from "Authorization: Bearer <token>", with a
// "token" query parameter fallback for websocket clients that cannot
// set headers.
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string
		authHeader := c.Get("Authorization")
		if authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" || tokenParts[1] == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Access Denied: Invalid token format",
				})
			}
			token = tokenParts[1]
		} else {
			token = c.Query("token")
			if token == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Access Denied: No token provided",
				})
			}
		}

		claims, err := utils.ParseJWTToken(token)
		if err != nil {
			if errors.Is(err, utils.ErrTokenExpired) {
				// Distinguishable so clients can prompt re-login.
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Token has expired",
					"expired": true,
				})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid Token",
			})
		}

		var user models.User
		if err := config.DB.First(&user, claims.UserID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid Token",
			})
		}

		c.Locals("user", &user)
		c.Locals("userID", user.ID)

		return c.Next()
	}
}
