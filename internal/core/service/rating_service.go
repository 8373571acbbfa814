package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/99minutos/carrier-rating/internal/core/domain"
	"github.com/99minutos/carrier-rating/internal/core/ports"
	"github.com/99minutos/carrier-rating/internal/core/rating"
)

const defaultShopConcurrency = 8

// RatingService loads carrier configuration and runs the rating engine on it.
type RatingService struct {
	repo            ports.CarrierRepository
	engine          *rating.Engine
	shopConcurrency int
	logger          zerolog.Logger
}

func NewRatingService(repo ports.CarrierRepository, engine *rating.Engine, shopConcurrency int, logger zerolog.Logger) *RatingService {
	if shopConcurrency <= 0 {
		shopConcurrency = defaultShopConcurrency
	}
	return &RatingService{repo: repo, engine: engine, shopConcurrency: shopConcurrency, logger: logger}
}

// CalculateRates fetches the carrier profile, rate cards and eligibility rules
// concurrently, then prices the shipment. A failed fetch is returned as is.
func (s *RatingService) CalculateRates(ctx context.Context, carrierID string, shipment domain.ShipmentDescription) (*domain.RateQuote, error) {
	var (
		carrier *domain.CarrierProfile
		cards   []domain.RateCard
		rules   *domain.EligibilityRuleSet
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.repo.GetCarrierProfile(gctx, carrierID)
		if err != nil {
			return fmt.Errorf("get carrier %s: %w", carrierID, err)
		}
		carrier = c
		return nil
	})
	g.Go(func() error {
		rc, err := s.repo.ListRateCards(gctx, carrierID)
		if err != nil {
			return fmt.Errorf("list rate cards for %s: %w", carrierID, err)
		}
		cards = rc
		return nil
	})
	g.Go(func() error {
		r, err := s.repo.GetEligibilityRules(gctx, carrierID)
		if err != nil {
			return fmt.Errorf("get eligibility rules for %s: %w", carrierID, err)
		}
		rules = r
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("carrier_id", carrierID).Msg("failed to load carrier configuration")
		return nil, err
	}

	quote, err := s.engine.Calculate(rating.Input{
		Carrier:   *carrier,
		RateCards: cards,
		Rules:     rules,
		Shipment:  shipment,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("carrier_id", carrierID).Int("rate_cards", len(cards)).Msg("rate calculation failed")
		return nil, err
	}

	if !quote.Eligible {
		s.logger.Info().Str("carrier_id", carrierID).Strs("reasons", quote.Reasons).Msg("carrier ineligible")
		return quote, nil
	}

	s.logger.Info().
		Str("carrier_id", carrierID).
		Str("rate_card_id", quote.RateCard.ID).
		Str("rate_structure", string(quote.RateCard.RateStructure)).
		Float64("final_total", quote.Result.FinalTotal).
		Msg("rate calculated")
	return quote, nil
}

// ShopRates prices the shipment for every requested carrier in parallel. One
// carrier's failure never cancels the others.
func (s *RatingService) ShopRates(ctx context.Context, carrierIDs []string, shipment domain.ShipmentDescription) ([]domain.CarrierQuote, error) {
	if len(carrierIDs) == 0 {
		carriers, err := s.repo.ListCarriers(ctx)
		if err != nil {
			return nil, fmt.Errorf("list carriers: %w", err)
		}
		carrierIDs = make([]string, 0, len(carriers))
		for _, c := range carriers {
			carrierIDs = append(carrierIDs, c.ID)
		}
	}

	results := make([]domain.CarrierQuote, len(carrierIDs))

	// Plain Group: workers never return an error, so nothing is cancelled.
	var g errgroup.Group
	g.SetLimit(s.shopConcurrency)
	for i, id := range carrierIDs {
		g.Go(func() error {
			q, err := s.CalculateRates(ctx, id, shipment)
			results[i] = domain.CarrierQuote{CarrierID: id, Quote: q, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Info().Int("carriers", len(carrierIDs)).Msg("rate shopping completed")
	return results, nil
}
