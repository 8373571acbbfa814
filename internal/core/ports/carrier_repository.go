package ports

import (
	"context"

	"github.com/99minutos/carrier-rating/internal/core/domain"
)

// CarrierRepository is the read-only view of carrier configuration the rating
// engine depends on. All lookups are keyed by carrier id.
type CarrierRepository interface {
	// GetCarrierProfile returns domain.ErrCarrierNotFound for unknown ids.
	GetCarrierProfile(ctx context.Context, carrierID string) (*domain.CarrierProfile, error)
	// ListRateCards returns only enabled rate cards, in storage order.
	ListRateCards(ctx context.Context, carrierID string) ([]domain.RateCard, error)
	// GetEligibilityRules returns an empty rule set when none is configured.
	GetEligibilityRules(ctx context.Context, carrierID string) (*domain.EligibilityRuleSet, error)
	// ListCarriers returns every enabled carrier.
	ListCarriers(ctx context.Context) ([]domain.CarrierProfile, error)
}
