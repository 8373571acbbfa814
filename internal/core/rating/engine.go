// Package rating prices freight shipments against carrier rate cards.
//
// The pipeline is: metrics → eligibility → rate card selection → pricing
// strategy → accessorials → assembled quote. Engine is immutable after
// construction and safe for concurrent use.
package rating

import (
	"fmt"
	"time"

	"github.com/99minutos/carrier-rating/internal/core/domain"
)

const defaultCurrency = "CAD"

// Input carries everything one calculation needs. Rules may be nil.
type Input struct {
	Carrier   domain.CarrierProfile
	RateCards []domain.RateCard
	Rules     *domain.EligibilityRuleSet
	Shipment  domain.ShipmentDescription
}

// Engine runs the rating pipeline.
type Engine struct {
	tables   Tables
	currency string
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithTables replaces the built-in lookup tables.
func WithTables(t Tables) Option {
	return func(e *Engine) { e.tables = t }
}

// WithDefaultCurrency sets the currency used when a rate card declares none.
func WithDefaultCurrency(c string) Option {
	return func(e *Engine) {
		if c != "" {
			e.currency = c
		}
	}
}

// WithClock pins the time source used for recency scoring and timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		tables:   DefaultTables(),
		currency: defaultCurrency,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Tables returns the lookup tables the engine prices against.
func (e *Engine) Tables() Tables {
	return e.tables
}

// Calculate runs the full pipeline for one carrier. An ineligible shipment is
// reported on the quote, not as an error.
func (e *Engine) Calculate(in Input) (*domain.RateQuote, error) {
	now := e.now()
	metrics := CalculateMetrics(in.Shipment, e.tables)

	quote := &domain.RateQuote{
		Carrier:      in.Carrier,
		Metrics:      metrics,
		CalculatedAt: now,
	}

	verdict := CheckEligibility(metrics, in.Rules)
	if !verdict.Eligible {
		quote.Reasons = verdict.Reasons
		return quote, nil
	}
	quote.Eligible = true

	card, err := SelectRateCard(in.RateCards, metrics, in.Shipment, now)
	if err != nil {
		return nil, fmt.Errorf("carrier %s: %w", in.Carrier.ID, err)
	}

	currency := card.Currency
	if currency == "" {
		currency = e.currency
	}

	res, err := dispatch(card, metrics, currency)
	if err != nil {
		return nil, fmt.Errorf("carrier %s: rate card %s: %w", in.Carrier.ID, card.ID, err)
	}

	extra, extraTotal := AdditionalServices(in.Shipment.AdditionalServices, currency, e.tables)

	ref := card.Ref()
	ref.Currency = currency
	quote.RateCard = &ref
	quote.Result = assemble(res, extra, extraTotal)
	return quote, nil
}

func assemble(res strategyResult, extra []domain.RateBreakdownLine, extraTotal float64) *domain.RateCalculationResult {
	lines := make([]domain.RateBreakdownLine, 0, len(res.lines)+len(extra))
	lines = append(lines, res.lines...)
	lines = append(lines, extra...)
	return &domain.RateCalculationResult{
		RateBreakdown:           lines,
		BaseTotal:               res.baseTotal,
		AdditionalServicesTotal: extraTotal,
		FinalTotal:              round2(res.finalTotal + extraTotal),
		TransitTime:             res.transitTime,
		Notes:                   res.notes,
	}
}
