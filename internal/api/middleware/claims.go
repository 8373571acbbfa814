package middleware

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Roles allowed on the rating API. Admins may also manage the carrier cache.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

const callerKey = "rating.caller"

// Claims is the token payload issued by the identity service.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

// SetCaller stores the authenticated caller on the request context.
func SetCaller(c echo.Context, claims *Claims) {
	c.Set(callerKey, claims)
}

// CallerFrom returns the caller stored by Auth, if any.
func CallerFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(callerKey).(*Claims)
	return claims, ok && claims != nil
}
