package ports

import (
	"context"

	"github.com/99minutos/carrier-rating/internal/core/domain"
)

// RatingService prices shipments against carrier configuration.
type RatingService interface {
	// CalculateRates prices a shipment for one carrier. Ineligible shipments
	// return a quote with Eligible=false and no error.
	CalculateRates(ctx context.Context, carrierID string, shipment domain.ShipmentDescription) (*domain.RateQuote, error)
	// ShopRates prices a shipment for several carriers concurrently. An empty
	// carrierIDs list means every enabled carrier. Per-carrier failures are
	// reported on their entry; the returned error is only for failing to list
	// carriers.
	ShopRates(ctx context.Context, carrierIDs []string, shipment domain.ShipmentDescription) ([]domain.CarrierQuote, error)
}
