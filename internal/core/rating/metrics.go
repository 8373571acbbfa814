package rating

import (
	"math"
	"strings"

	"github.com/99minutos/carrier-rating/internal/core/domain"
)

const (
	skidSideInches = 48.0
	skidSideCm     = 121.92

	// Dimensional divisors: courier express uses the tighter factor.
	dimFactorExpress  = 139.0
	dimFactorStandard = 166.0
)

// CalculateMetrics derives the physical facts about a shipment. It performs no
// I/O and is deterministic for a given Tables value.
func CalculateMetrics(s domain.ShipmentDescription, t Tables) domain.ShipmentMetrics {
	skidSide := skidSideInches
	if s.UnitSystem.IsMetric() {
		skidSide = skidSideCm
	}

	var (
		totalWeight, totalVolume, footprint float64
		maxL, maxW, maxH                    float64
		pieces                              int
	)
	for _, p := range s.Packages {
		qty := p.Quantity
		if qty <= 0 {
			qty = 1
		}
		q := float64(qty)
		l, w, h := nonNegative(p.Length), nonNegative(p.Width), nonNegative(p.Height)

		totalWeight += nonNegative(p.Weight) * q
		totalVolume += l * w * h * q
		pieces += qty

		maxL = math.Max(maxL, l)
		maxW = math.Max(maxW, w)
		maxH = math.Max(maxH, h)

		fl, fw := l, w
		if fl == 0 {
			fl = skidSide
		}
		if fw == 0 {
			fw = skidSide
		}
		footprint += fl * fw * q
	}

	skids := int(math.Ceil(footprint / (skidSide * skidSide)))
	if len(s.Packages) > 0 && skids < 1 {
		skids = 1
	}

	dimFactor := DimFactor(s.ShipmentType, s.ServiceLevel)
	dimWeight := totalVolume / dimFactor

	distance, route := ResolveRoute(s.Origin, s.Destination, t)

	return domain.ShipmentMetrics{
		TotalWeight:       round2(totalWeight),
		DimensionalWeight: round2(dimWeight),
		ChargeableWeight:  round2(math.Max(totalWeight, dimWeight)),
		TotalVolume:       round2(totalVolume),
		SkidEquivalents:   skids,
		MaxLength:         round2(maxL),
		MaxWidth:          round2(maxW),
		MaxHeight:         round2(maxH),
		TotalPieces:       pieces,
		Distance:          distance,
		Route:             route,
		DimFactor:         dimFactor,
		UnitSystem:        s.UnitSystem,
	}
}

// DimFactor returns the volume divisor for a shipment type and service level.
func DimFactor(shipmentType, serviceLevel string) float64 {
	if strings.EqualFold(shipmentType, domain.ShipmentTypeCourier) && strings.EqualFold(serviceLevel, domain.ServiceLevelExpress) {
		return dimFactorExpress
	}
	return dimFactorStandard
}
