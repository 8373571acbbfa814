package rating

import (
	"fmt"
	"math"
	"sort"

	"github.com/99minutos/carrier-rating/internal/core/domain"
)

const (
	defaultSkidFuelPercent = 15.5
	defaultDimWeightRate   = 0.65
	defaultDimMinimum      = 150.0
	defaultHybridBase      = 200.0
	defaultFlatRate        = 100.0
	fallbackMinimum        = 200.0
	fallbackRatePerLb      = 0.65

	flatRateTransit = "2-3 business days"

	SourceFallback = "fallback"
)

// strategyResult is what a pricing algorithm hands back before accessorials.
type strategyResult struct {
	lines       []domain.RateBreakdownLine
	baseTotal   float64
	finalTotal  float64
	transitTime string
	notes       string
}

// dispatch prices the shipment with the algorithm the card declares. Unknown
// structures degrade to the fallback estimate.
func dispatch(card domain.RateCard, m domain.ShipmentMetrics, currency string) (strategyResult, error) {
	var (
		res strategyResult
		err error
	)
	switch card.RateStructure {
	case domain.StructureSkidBased:
		res, err = skidBased(card, m, currency)
	case domain.StructureWeightDistance:
		res, err = weightDistance(card, m, currency)
	case domain.StructureZoneMatrix:
		res, err = zoneMatrix(card, m, currency)
	case domain.StructureDimensionalWeight:
		res = dimensionalWeight(card, m, currency)
	case domain.StructureHybridComplex:
		res = hybridComplex(card, m, currency)
	case domain.StructureFlatRate:
		res = flatRate(card, currency)
	default:
		res = fallback(card, m, currency)
	}
	if err != nil {
		return strategyResult{}, err
	}
	if res.transitTime == "" {
		res.transitTime = card.TransitTime
	}
	if res.transitTime == "" {
		res.transitTime = TransitTime(m.Distance)
	}
	return res, nil
}

func newLine(code, name string, charge float64, currency, source string) domain.RateBreakdownLine {
	charge = round2(charge)
	return domain.RateBreakdownLine{
		Code:       code,
		ChargeName: name,
		Cost:       round2(charge * CostRatio),
		Charge:     charge,
		Currency:   currency,
		Source:     source,
	}
}

func fuelLine(base, percent float64, currency, source string) (domain.RateBreakdownLine, float64, bool) {
	fuel := round2(base * percent / 100)
	if fuel <= 0 {
		return domain.RateBreakdownLine{}, 0, false
	}
	name := fmt.Sprintf("Fuel Surcharge (%s%%)", formatNumber(percent))
	return newLine(domain.CodeFuel, name, fuel, currency, source), fuel, true
}

func skidBased(card domain.RateCard, m domain.ShipmentMetrics, currency string) (strategyResult, error) {
	if len(card.SkidRates) == 0 {
		return strategyResult{}, domain.ErrMissingSkidRates
	}
	entry := pickSkidRate(card.SkidRates, max(1, m.SkidEquivalents))
	source := string(domain.StructureSkidBased)
	base := round2(entry.Rate)

	lines := []domain.RateBreakdownLine{
		newLine(domain.CodeFreight, fmt.Sprintf("Freight Charge (%d skids)", entry.SkidCount), base, currency, source),
	}
	total := base
	if l, fuel, ok := fuelLine(base, valueOr(card.FuelSurchargePercent, defaultSkidFuelPercent), currency, source); ok {
		lines = append(lines, l)
		total += fuel
	}
	return strategyResult{lines: lines, baseTotal: base, finalTotal: round2(total)}, nil
}

// pickSkidRate returns the exact skid count, else the smallest larger one, else
// the largest configured entry.
func pickSkidRate(rates []domain.SkidRate, skids int) domain.SkidRate {
	sorted := append([]domain.SkidRate(nil), rates...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SkidCount < sorted[j].SkidCount })
	for _, r := range sorted {
		if r.SkidCount == skids {
			return r
		}
	}
	for _, r := range sorted {
		if r.SkidCount >= skids {
			return r
		}
	}
	return sorted[len(sorted)-1]
}

func weightDistance(card domain.RateCard, m domain.ShipmentMetrics, currency string) (strategyResult, error) {
	if len(card.WeightBreaks) == 0 {
		return strategyResult{}, domain.ErrMissingWeightBreaks
	}
	wb, ok := findWeightBreak(card.WeightBreaks, m.ChargeableWeight)
	if !ok {
		return strategyResult{}, fmt.Errorf("%w (%s)", domain.ErrNoMatchingWeightBreak, formatNumber(m.ChargeableWeight))
	}

	multiplier := 1.0
	if m.Distance > 0 {
		multiplier = math.Max(1, float64(m.Distance)/100*wb.DistanceFactor)
	}
	base := round2(math.Max(m.ChargeableWeight*wb.RatePerLb*multiplier, wb.MinimumCharge))

	source := string(domain.StructureWeightDistance)
	name := fmt.Sprintf("Freight Charge (%s %s, %d mi)", formatNumber(m.ChargeableWeight), m.UnitSystem.WeightUnit(), m.Distance)
	return strategyResult{
		lines:      []domain.RateBreakdownLine{newLine(domain.CodeFreight, name, base, currency, source)},
		baseTotal:  base,
		finalTotal: base,
	}, nil
}

// findWeightBreak returns the break containing w; the lowest MinWeight wins on
// overlap. A MaxWeight of zero leaves the break open-ended.
func findWeightBreak(breaks []domain.WeightBreak, w float64) (domain.WeightBreak, bool) {
	sorted := append([]domain.WeightBreak(nil), breaks...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].MinWeight < sorted[j].MinWeight })
	for _, b := range sorted {
		if w >= b.MinWeight && (b.MaxWeight <= 0 || w <= b.MaxWeight) {
			return b, true
		}
	}
	return domain.WeightBreak{}, false
}

func zoneMatrix(card domain.RateCard, m domain.ShipmentMetrics, currency string) (strategyResult, error) {
	if len(card.ZoneRates) == 0 {
		return strategyResult{}, domain.ErrMissingZoneMatrix
	}
	zr, ok := findZoneRate(card.ZoneRates, m.Route)
	if !ok {
		return strategyResult{}, fmt.Errorf("%w %s", domain.ErrZoneRateNotFound, m.Route.RouteKey)
	}

	source := string(domain.StructureZoneMatrix)
	base := round2(zr.Rate)
	lines := []domain.RateBreakdownLine{
		newLine(domain.CodeFreight, fmt.Sprintf("Freight Charge (%s)", m.Route.RouteKey), base, currency, source),
	}
	total := base
	if l, fuel, ok := fuelLine(base, valueOr(card.FuelSurchargePercent, 0), currency, source); ok {
		lines = append(lines, l)
		total += fuel
	}
	return strategyResult{lines: lines, baseTotal: base, finalTotal: round2(total)}, nil
}

// findZoneRate matches the exact pair, then the reversed pair, then the route
// key in either direction.
func findZoneRate(rates []domain.ZoneRate, r domain.Route) (domain.ZoneRate, bool) {
	for _, z := range rates {
		if z.OriginZone == r.OriginZone && z.DestinationZone == r.DestinationZone {
			return z, true
		}
	}
	for _, z := range rates {
		if z.OriginZone == r.DestinationZone && z.DestinationZone == r.OriginZone {
			return z, true
		}
	}
	reversed := r.DestinationZone + "-" + r.OriginZone
	for _, z := range rates {
		if z.RouteKey != "" && (z.RouteKey == r.RouteKey || z.RouteKey == reversed) {
			return z, true
		}
	}
	return domain.ZoneRate{}, false
}

func dimensionalWeight(card domain.RateCard, m domain.ShipmentMetrics, currency string) strategyResult {
	rate := valueOr(card.DimWeightRate, defaultDimWeightRate)
	base := round2(math.Max(m.ChargeableWeight*rate, valueOr(card.MinimumCharge, defaultDimMinimum)))
	name := fmt.Sprintf("Freight Charge (%s %s chargeable)", formatNumber(m.ChargeableWeight), m.UnitSystem.WeightUnit())
	return strategyResult{
		lines:      []domain.RateBreakdownLine{newLine(domain.CodeFreight, name, base, currency, string(domain.StructureDimensionalWeight))},
		baseTotal:  base,
		finalTotal: base,
	}
}

func hybridComplex(card domain.RateCard, m domain.ShipmentMetrics, currency string) strategyResult {
	source := string(domain.StructureHybridComplex)
	h := card.Hybrid

	base := round2(valueOr(h.BaseRate, defaultHybridBase))
	lines := []domain.RateBreakdownLine{newLine(domain.CodeBase, "Base Rate", base, currency, source)}
	total := base

	components := []struct {
		code, name string
		amount     float64
	}{
		{domain.CodeSkid, fmt.Sprintf("Skid Charge (%d skids)", m.SkidEquivalents), valueOr(h.SkidRate, 0) * float64(m.SkidEquivalents)},
		{domain.CodeWeight, fmt.Sprintf("Weight Charge (%s %s)", formatNumber(m.ChargeableWeight), m.UnitSystem.WeightUnit()), valueOr(h.WeightRate, 0) * m.ChargeableWeight},
		{domain.CodeDistance, fmt.Sprintf("Distance Charge (%d mi)", m.Distance), valueOr(h.DistanceRate, 0) * float64(m.Distance)},
	}
	for _, c := range components {
		amount := round2(c.amount)
		if amount <= 0 {
			continue
		}
		lines = append(lines, newLine(c.code, c.name, amount, currency, source))
		total += amount
	}

	total = round2(total)
	return strategyResult{lines: lines, baseTotal: total, finalTotal: total}
}

func flatRate(card domain.RateCard, currency string) strategyResult {
	rate := round2(valueOr(card.FlatRate, defaultFlatRate))
	return strategyResult{
		lines:       []domain.RateBreakdownLine{newLine(domain.CodeFreight, "Flat Rate", rate, currency, string(domain.StructureFlatRate))},
		baseTotal:   rate,
		finalTotal:  rate,
		transitTime: flatRateTransit,
	}
}

func fallback(card domain.RateCard, m domain.ShipmentMetrics, currency string) strategyResult {
	estimate := round2(math.Max(fallbackMinimum, m.ChargeableWeight*fallbackRatePerLb))
	return strategyResult{
		lines:      []domain.RateBreakdownLine{newLine(domain.CodeFreight, "Estimated Freight", estimate, currency, SourceFallback)},
		baseTotal:  estimate,
		finalTotal: estimate,
		notes: fmt.Sprintf("No pricing configuration matched rate structure %q; this is a weight-based estimate.",
			string(card.RateStructure)),
	}
}

// TransitTime maps a distance in miles to a business-day estimate.
func TransitTime(miles int) string {
	switch {
	case miles < 100:
		return "1 business day"
	case miles < 300:
		return "2 business days"
	case miles < 600:
		return "3 business days"
	case miles < 1000:
		return "4 business days"
	case miles < 1500:
		return "5 business days"
	default:
		return "5-7 business days"
	}
}
