package rating

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/99minutos/carrier-rating/internal/core/domain"
)

const (
	lbsPerKg = 2.20462
	cmPerIn  = 2.54
)

// CheckEligibility evaluates every enabled rule and collects a reason for each
// violation. It never fails; a nil rule set accepts everything.
func CheckEligibility(m domain.ShipmentMetrics, rules *domain.EligibilityRuleSet) domain.EligibilityVerdict {
	reasons := []string{}
	if rules == nil {
		return domain.EligibilityVerdict{Eligible: true, Reasons: reasons}
	}

	for _, r := range rules.WeightRules {
		if !r.Enabled {
			continue
		}
		unit := unitLabel(r.WeightUnit, m.UnitSystem.WeightUnit())
		if r.MaxWeight != nil && m.ChargeableWeight > toShipmentWeight(*r.MaxWeight, unit, m.UnitSystem) {
			reasons = append(reasons, fmt.Sprintf("Weight exceeds maximum: %s %s", formatNumber(*r.MaxWeight), unit))
		}
		if r.MinWeight != nil && m.ChargeableWeight < toShipmentWeight(*r.MinWeight, unit, m.UnitSystem) {
			reasons = append(reasons, fmt.Sprintf("Weight below minimum: %s %s", formatNumber(*r.MinWeight), unit))
		}
	}

	for _, r := range rules.DimensionRules {
		if !r.Enabled {
			continue
		}
		unit := unitLabel(r.DimensionUnit, m.UnitSystem.LengthUnit())
		checks := []struct {
			name  string
			limit *float64
			value float64
		}{
			{"Length", r.MaxLength, m.MaxLength},
			{"Width", r.MaxWidth, m.MaxWidth},
			{"Height", r.MaxHeight, m.MaxHeight},
		}
		for _, c := range checks {
			if c.limit != nil && c.value > toShipmentLength(*c.limit, unit, m.UnitSystem) {
				reasons = append(reasons, fmt.Sprintf("%s exceeds maximum: %s %s", c.name, formatNumber(*c.limit), unit))
			}
		}
	}

	return domain.EligibilityVerdict{Eligible: len(reasons) == 0, Reasons: reasons}
}

func unitLabel(configured, fallback string) string {
	if u := strings.TrimSpace(configured); u != "" {
		return u
	}
	return fallback
}

func isKg(unit string) bool {
	switch strings.ToLower(unit) {
	case "kg", "kgs", "kilogram", "kilograms":
		return true
	}
	return false
}

func isCm(unit string) bool {
	switch strings.ToLower(unit) {
	case "cm", "cms", "centimeter", "centimeters", "centimetre", "centimetres":
		return true
	}
	return false
}

// toShipmentWeight converts a rule limit into the shipment's weight unit.
func toShipmentWeight(v float64, unit string, us domain.UnitSystem) float64 {
	switch {
	case isKg(unit) && !us.IsMetric():
		return v * lbsPerKg
	case !isKg(unit) && us.IsMetric():
		return v / lbsPerKg
	}
	return v
}

// toShipmentLength converts a rule limit into the shipment's length unit.
func toShipmentLength(v float64, unit string, us domain.UnitSystem) float64 {
	switch {
	case isCm(unit) && !us.IsMetric():
		return v / cmPerIn
	case !isCm(unit) && us.IsMetric():
		return v * cmPerIn
	}
	return v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
