package server

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/reignagency/reign/internal/config"
)

// AuthMiddleware verifies the bearer token and puts the caller's id and
// role into the downstream context.
func (s *Server) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			return c.JSON(401, map[string]string{"error": "Authorization header is required"})
		}

		ctx := c.Request().Context()

		claims, err := s.server.VerifyAccessToken(ctx, token)
		if err != nil {
			return c.JSON(401, map[string]string{
				"error":   err.Error(),
				"message": "Invalid token",
			})
		}

		ctx = context.WithValue(ctx, config.CTX_KEY_USER_ID, claims.UserID)
		ctx = context.WithValue(ctx, config.CTX_KEY_USER_ROLE, claims.Role)

		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// AdminMiddleware requires AuthMiddleware to have run first.
func (s *Server) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, _ := c.Request().Context().Value(config.CTX_KEY_USER_ROLE).(string)
		if role != "admin" {
			return c.JSON(403, map[string]string{"error": "admin access required"})
		}
		return next(c)
	}
}
