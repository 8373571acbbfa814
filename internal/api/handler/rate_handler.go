package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/99minutos/carrier-rating/internal/api/metrics"
	"github.com/99minutos/carrier-rating/internal/core/domain"
	"github.com/99minutos/carrier-rating/internal/core/ports"
)

// Calculation outcomes recorded in metrics.
const (
	outcomePriced      = "priced"
	outcomeIneligible  = "ineligible"
	outcomeConfigError = "config_error"
	outcomeError       = "error"
)

// RateHandler handles HTTP requests for rate quotes.
type RateHandler struct {
	service ports.RatingService
	now     func() time.Time
	newID   func() string
}

func NewRateHandler(service ports.RatingService) *RateHandler {
	return &RateHandler{
		service: service,
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
}

// Calculate handles POST /v1/rates/:carrier_id.
//
// @Summary      Quote a shipment for one carrier
// @Description  Computes shipment metrics, checks the carrier's eligibility rules, selects
// @Description  the best rate card and returns an itemised quote. Ineligible shipments return
// @Description  200 with eligible=false and the reasons.
// @Tags         rates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        carrier_id  path      string           true  "Carrier identifier"
// @Param        body        body      shipmentRequest  true  "Shipment description"
// @Success      200         {object}  rateResponse
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Failure      422         {object}  errorResponse
// @Failure      429         {object}  errorResponse
// @Failure      500         {object}  errorResponse
// @Router       /v1/rates/{carrier_id} [post]
func (h *RateHandler) Calculate(c echo.Context) error {
	if _, err := quoteCaller(c); err != nil {
		return err
	}

	carrierID := strings.TrimSpace(c.Param("carrier_id"))
	if carrierID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "carrier_id is required")
	}

	var req shipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := h.now()
	quote, err := h.service.CalculateRates(c.Request().Context(), carrierID, toShipment(req))
	observeCalculation(quote, err, h.now().Sub(start))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, rateResponse{QuoteID: h.newID(), RateQuote: quote})
}

// Shop handles POST /v1/rates/shop.
//
// @Summary      Quote a shipment across carriers
// @Description  Prices the shipment for each requested carrier (all enabled carriers when
// @Description  carrier_ids is empty). One carrier's failure is reported on its entry and
// @Description  never fails the whole request.
// @Tags         rates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      shopRequest  true  "Shipment description and optional carrier ids"
// @Success      200   {object}  shopResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/rates/shop [post]
func (h *RateHandler) Shop(c echo.Context) error {
	if _, err := quoteCaller(c); err != nil {
		return err
	}

	var req shopRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := h.now()
	results, err := h.service.ShopRates(c.Request().Context(), dedupe(req.CarrierIDs), toShipment(req.shipmentRequest))
	if err != nil {
		return err
	}
	elapsed := h.now().Sub(start)
	metrics.ShopCarriers.Observe(float64(len(results)))
	for _, r := range results {
		observeCalculation(r.Quote, r.Err, elapsed)
	}

	entries, cheapest := toShopEntries(results)
	return c.JSON(http.StatusOK, shopResponse{
		QuoteID:      h.newID(),
		CalculatedAt: h.now().UTC(),
		Quotes:       entries,
		Cheapest:     cheapest,
	})
}

func observeCalculation(quote *domain.RateQuote, err error, elapsed time.Duration) {
	structure := "none"
	outcome := outcomePriced
	switch {
	case err != nil && (domain.IsConfigurationError(err) || errors.Is(err, domain.ErrCarrierNotFound)):
		outcome = outcomeConfigError
	case err != nil:
		outcome = outcomeError
	case !quote.Eligible:
		outcome = outcomeIneligible
	case quote.RateCard != nil:
		structure = string(quote.RateCard.RateStructure)
	}

	metrics.RateCalculationsTotal.WithLabelValues(structure, outcome).Inc()
	metrics.RateCalculationDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// dedupe trims ids and drops duplicates, keeping first-seen order.
func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
