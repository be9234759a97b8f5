package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware validates JWT tokens and extracts the user id.
func (s *Server) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing authorization header"})
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid authorization header"})
		}

		userID, err := s.authService.ValidateToken(parts[1])
		if err != nil {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
		}

		c.Set("user_id", userID)
		return next(c)
	}
}

// GetUserID extracts the authenticated user id from the echo context.
func GetUserID(c echo.Context) uuid.UUID {
	uid, _ := c.Get("user_id").(uuid.UUID)
	return uid
}
