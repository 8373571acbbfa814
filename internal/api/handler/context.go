package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/carrier-rating/internal/api/middleware"
)

// quoteCaller returns the authenticated caller of a quote route. Client tokens
// must carry a client_id: quotes are rate limited and audited per client, so a
// client token without one is rejected with 401 before any carrier is priced.
func quoteCaller(c echo.Context) (*middleware.Claims, error) {
	caller, ok := middleware.CallerFrom(c)
	if !ok || caller.Role == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if caller.Role == middleware.RoleClient && caller.ClientID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "token missing client identity")
	}
	return caller, nil
}
