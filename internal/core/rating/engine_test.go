package rating

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/99minutos/carrier-rating/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func pinnedEngine() *Engine {
	return NewEngine(WithClock(func() time.Time { return fixedNow }))
}

func twoSkidShipment() domain.ShipmentDescription {
	return domain.ShipmentDescription{
		UnitSystem:   domain.UnitImperial,
		ServiceLevel: "standard",
		ShipmentType: "ltl",
		Origin:       domain.Address{PostalCode: "M5V 2T6"},
		Destination:  domain.Address{PostalCode: "H2X 1Y4"},
		Packages:     []domain.Package{{Weight: 400, Length: 48, Width: 48, Height: 40, Quantity: 2}},
	}
}

var acme = domain.CarrierProfile{ID: "acme", Name: "Acme Freight", Enabled: true}

// ---------------------------------------------------------------------------
// Pipeline tests
// ---------------------------------------------------------------------------

func TestEngine_SkidBasedScenario(t *testing.T) {
	card := domain.RateCard{
		ID:                   "rc-1",
		Name:                 "LTL 2026",
		RateStructure:        domain.StructureSkidBased,
		Currency:             "CAD",
		ServiceLevel:         "standard",
		SkidRates:            []domain.SkidRate{{SkidCount: 1, Rate: 150}, {SkidCount: 2, Rate: 280}},
		FuelSurchargePercent: ptr(15),
	}

	q, err := pinnedEngine().Calculate(Input{Carrier: acme, RateCards: []domain.RateCard{card}, Shipment: twoSkidShipment()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.Eligible || q.Result == nil {
		t.Fatalf("expected priced quote, got %+v", q)
	}
	if q.Metrics.SkidEquivalents != 2 {
		t.Fatalf("SkidEquivalents = %d, want 2", q.Metrics.SkidEquivalents)
	}
	lines := q.Result.RateBreakdown
	if len(lines) != 2 || lines[0].Charge != 280 || lines[1].Charge != 42 {
		t.Errorf("unexpected breakdown: %+v", lines)
	}
	if q.Result.FinalTotal != 322 {
		t.Errorf("FinalTotal = %v, want 322", q.Result.FinalTotal)
	}
	if q.RateCard == nil || q.RateCard.ID != "rc-1" || q.RateCard.RateStructure != domain.StructureSkidBased {
		t.Errorf("unexpected rate card ref: %+v", q.RateCard)
	}
	if q.Result.TransitTime != "3 business days" {
		t.Errorf("TransitTime = %q, want 3 business days for 350 mi", q.Result.TransitTime)
	}
	if !q.CalculatedAt.Equal(fixedNow) {
		t.Errorf("CalculatedAt = %v, want pinned clock", q.CalculatedAt)
	}
}

func TestEngine_IneligibleShortCircuits(t *testing.T) {
	s := twoSkidShipment()
	s.Packages = []domain.Package{{Weight: 100, Length: 120, Width: 40, Height: 40, Quantity: 1}}
	rules := &domain.EligibilityRuleSet{
		DimensionRules: []domain.DimensionRule{{MaxLength: ptr(96), DimensionUnit: "in", Enabled: true}},
	}

	// No rate cards at all: reaching selection would be an error.
	q, err := pinnedEngine().Calculate(Input{Carrier: acme, Rules: rules, Shipment: s})
	if err != nil {
		t.Fatalf("ineligible is not an error: %v", err)
	}
	if q.Eligible || q.Result != nil || q.RateCard != nil {
		t.Errorf("expected ineligible quote without a result, got %+v", q)
	}
	if !reflect.DeepEqual(q.Reasons, []string{"Length exceeds maximum: 96 in"}) {
		t.Errorf("Reasons = %q", q.Reasons)
	}
}

func TestEngine_FallbackScenario(t *testing.T) {
	s := twoSkidShipment()
	s.Packages = []domain.Package{{Weight: 100, Length: 10, Width: 10, Height: 10, Quantity: 1}}
	card := domain.RateCard{ID: "odd", RateStructure: "unknown_type", ServiceLevel: "standard"}

	q, err := pinnedEngine().Calculate(Input{Carrier: acme, RateCards: []domain.RateCard{card}, Shipment: s})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Metrics.ChargeableWeight != 100 {
		t.Fatalf("ChargeableWeight = %v, want 100", q.Metrics.ChargeableWeight)
	}
	if q.Result.FinalTotal != 200 || q.Result.RateBreakdown[0].Source != "fallback" {
		t.Errorf("unexpected fallback result: %+v", q.Result)
	}
	if q.Result.Notes == "" {
		t.Error("fallback should explain itself in notes")
	}
	if q.RateCard.Currency != "CAD" {
		t.Errorf("Currency = %q, want engine default", q.RateCard.Currency)
	}
}

func TestEngine_AdditionalServicesScenario(t *testing.T) {
	s := twoSkidShipment()
	s.AdditionalServices = []string{"liftgate", "RESIDENTIAL"}
	card := domain.RateCard{ID: "flat", RateStructure: domain.StructureFlatRate, ServiceLevel: "standard", Currency: "USD", FlatRate: ptr(300)}

	q, err := pinnedEngine().Calculate(Input{Carrier: acme, RateCards: []domain.RateCard{card}, Shipment: s})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := q.Result
	if len(r.RateBreakdown) != 3 {
		t.Fatalf("expected FRT + 2 ACC, got %+v", r.RateBreakdown)
	}
	acc := r.RateBreakdown[1:]
	if acc[0].Code != "ACC" || acc[0].Charge != 75 || acc[1].Charge != 25 {
		t.Errorf("unexpected accessorial lines: %+v", acc)
	}
	if acc[0].Currency != "USD" {
		t.Errorf("accessorial currency = %q, want card currency", acc[0].Currency)
	}
	if r.BaseTotal != 300 || r.AdditionalServicesTotal != 100 || r.FinalTotal != 400 {
		t.Errorf("totals = %v/%v/%v, want 300/100/400", r.BaseTotal, r.AdditionalServicesTotal, r.FinalTotal)
	}
}

func TestEngine_ConfigurationErrors(t *testing.T) {
	_, err := pinnedEngine().Calculate(Input{Carrier: acme, Shipment: twoSkidShipment()})
	if !errors.Is(err, domain.ErrNoApplicableRateCard) {
		t.Errorf("expected ErrNoApplicableRateCard, got %v", err)
	}

	card := domain.RateCard{ID: "zm", RateStructure: domain.StructureZoneMatrix, ServiceLevel: "standard"}
	_, err = pinnedEngine().Calculate(Input{Carrier: acme, RateCards: []domain.RateCard{card}, Shipment: twoSkidShipment()})
	if !errors.Is(err, domain.ErrMissingZoneMatrix) || !domain.IsConfigurationError(err) {
		t.Errorf("expected ErrMissingZoneMatrix, got %v", err)
	}
}

func TestEngine_Idempotent(t *testing.T) {
	in := Input{
		Carrier: acme,
		RateCards: []domain.RateCard{
			{ID: "a", RateStructure: domain.StructureDimensionalWeight, ServiceLevel: "standard", CreatedAt: fixedNow.AddDate(0, 0, -3)},
			{ID: "b", RateStructure: domain.StructureHybridComplex, ServiceLevel: "standard", CreatedAt: fixedNow.AddDate(0, 0, -1)},
		},
		Shipment: twoSkidShipment(),
	}
	in.Shipment.AdditionalServices = []string{"tailgate", "white_glove"}

	e := pinnedEngine()
	first, err := e.Calculate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := e.Calculate(in)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ:\n%+v\n%+v", first, second)
	}
}

func TestAdditionalServices_UnknownCode(t *testing.T) {
	lines, total := AdditionalServices([]string{"white_glove", " "}, "CAD", DefaultTables())
	if len(lines) != 1 {
		t.Fatalf("blank codes should be skipped, got %d lines", len(lines))
	}
	if lines[0].ChargeName != "white_glove" || lines[0].Charge != 25 || lines[0].Cost != 17.5 {
		t.Errorf("unexpected line: %+v", lines[0])
	}
	if total != 25 {
		t.Errorf("total = %v, want 25", total)
	}
}
