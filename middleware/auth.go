package middleware

import (
	"strings"

	"captiveportal/repository"
	"captiveportal/utils"

	"github.com/gofiber/fiber/v2"
)

// Protected requires a valid access token belonging to the active session
func Protected(auth *repository.AuthRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Try to get token from Authorization header first
		var token string
		authHeader := c.Get("Authorization")
		if authHeader != "" {
			// Check if it's a Bearer token
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid authorization format", nil)
			}
			token = tokenParts[1]
		} else {
			// Fall back to cookie if header not present
			token = c.Cookies("access_token")
			if token == "" {
				return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authorization required", nil)
			}
		}

		// Parse and validate JWT
		claims, err := utils.ParseJWTToken(token)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired token", nil)
		}

		// A logout ends the session even while the token is unexpired
		active, err := auth.Active(c.UserContext(), claims.SessionID)
		if err != nil {
			utils.LogError("session_lookup_failed", err, map[string]interface{}{"path": c.Path()})
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to check session", err)
		}
		if !active {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Session expired", nil)
		}

		// Add user and session to context
		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("sessionID", claims.SessionID)

		return c.Next()
	}
}
