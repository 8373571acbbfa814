package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CacheInvalidator drops cached configuration for one carrier.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, carrierID string) error
}

// CacheHandler lets operators force a reload after editing a carrier's data.
type CacheHandler struct {
	cache CacheInvalidator
}

func NewCacheHandler(cache CacheInvalidator) *CacheHandler {
	return &CacheHandler{cache: cache}
}

// Invalidate handles DELETE /v1/carriers/:carrier_id/cache.
//
// @Summary      Drop cached configuration for a carrier
// @Tags         carriers
// @Security     BearerAuth
// @Param        carrier_id  path  string  true  "Carrier identifier"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/carriers/{carrier_id}/cache [delete]
func (h *CacheHandler) Invalidate(c echo.Context) error {
	carrierID := strings.TrimSpace(c.Param("carrier_id"))
	if carrierID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "carrier_id is required")
	}
	if err := h.cache.Invalidate(c.Request().Context(), carrierID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
