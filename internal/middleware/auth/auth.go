package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ndthang/minimart/internal/models"
	"github.com/ndthang/minimart/internal/tokens"
)

const (
	usernameKey = "username"
	roleKey     = "role"
)

type Middleware struct {
	JWTSecret []byte
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func setUserContext(c echo.Context, username string, role models.Role) {
	c.Set(usernameKey, username)
	c.Set(roleKey, role)
}

// Username returns the authenticated username, or "" for guests.
func Username(c echo.Context) string {
	if v, ok := c.Get(usernameKey).(string); ok {
		return v
	}
	return ""
}

// RoleOf returns the caller's role; requests that never passed through
// the middleware count as guests.
func RoleOf(c echo.Context) models.Role {
	if v, ok := c.Get(roleKey).(models.Role); ok {
		return v
	}
	return models.RoleGuest
}

// RequireAuth rejects requests without a valid bearer token.
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, ok := bearerToken(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed authorization header")
		}
		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}
		role, _ := models.ParseRole(claims.Role)
		setUserContext(c, claims.Username, role)
		return next(c)
	}
}

// OptionalAuth resolves a bearer token when present; missing or invalid
// credentials degrade to the guest role instead of failing the request.
func (m *Middleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, ok := bearerToken(c)
		if !ok {
			setUserContext(c, "", models.RoleGuest)
			return next(c)
		}
		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil {
			setUserContext(c, "", models.RoleGuest)
			return next(c)
		}
		role, _ := models.ParseRole(claims.Role)
		setUserContext(c, claims.Username, role)
		return next(c)
	}
}

// RequireRole allows only the listed roles through. It assumes RequireAuth
// or OptionalAuth already ran.
func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := RoleOf(c)
			if role == models.RoleGuest && Username(c) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			for _, r := range roles {
				if role == r {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}
	}
}
