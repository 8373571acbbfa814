package middleware

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"
)

// RBAC admits callers whose role is one of allowedRoles. It must run after
// Auth; a request without a caller is treated as unauthenticated.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, ok := CallerFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if !slices.Contains(allowedRoles, caller.Role) {
				return echo.NewHTTPError(http.StatusForbidden, "role "+caller.Role+" may not access this resource")
			}
			return next(c)
		}
	}
}
