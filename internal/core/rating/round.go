package rating

import "math"

// CostRatio is the share of a charge reported as the carrier's own cost on every
// generated line. It is a placeholder business rule.
const CostRatio = 0.7

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// nonNegative coerces missing or nonsensical numeric input to zero.
func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
