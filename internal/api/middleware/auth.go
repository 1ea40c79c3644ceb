package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

const tokenContextKey = "access-token"

// BearerToken extracts the access token from the Authorization header and
// stashes it in the request context. It accepts both "Bearer <token>" and a
// raw token value. The middleware never rejects: authentication happens per
// operation in the core, which turns an absent or unknown token into the
// proper coded error.
func BearerToken() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(tokenContextKey, extractToken(c.Request().Header.Get("Authorization")))
			return next(c)
		}
	}
}

// Token returns the access token stashed by BearerToken, or "" when the
// request carried none.
func Token(c echo.Context) string {
	token, _ := c.Get(tokenContextKey).(string)
	return token
}

func extractToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}
