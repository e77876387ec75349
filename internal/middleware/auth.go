package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"pharma-service/pkg/jwtutil"
	"pharma-service/pkg/logger"
)

// AuthMiddleware validates the session token on protected routes and puts the
// caller's identity into the request context
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "Missing authorization token",
			})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "Invalid authorization format, expected Bearer token",
			})
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Warn("Invalid session token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "Invalid or expired token",
			})
		}

		// Store user info in context for later use
		c.Set("user_id", claims.Subject)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		return next(c)
	}
}
