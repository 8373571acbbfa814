package domain

// CarrierProfile identifies a carrier. It is read-only to the rating engine.
type CarrierProfile struct {
	ID      string `json:"id" bson:"_id"`
	Name    string `json:"name" bson:"name"`
	LogoURL string `json:"logo_url,omitempty" bson:"logo_url,omitempty"`
	Enabled bool   `json:"enabled" bson:"enabled"`
}

// WeightRule bounds the chargeable weight a carrier accepts. Nil bounds are open.
type WeightRule struct {
	MinWeight  *float64 `json:"min_weight,omitempty" bson:"min_weight,omitempty"`
	MaxWeight  *float64 `json:"max_weight,omitempty" bson:"max_weight,omitempty"`
	WeightUnit string   `json:"weight_unit" bson:"weight_unit"`
	Enabled    bool     `json:"enabled" bson:"enabled"`
}

// DimensionRule caps the largest single-package dimensions a carrier accepts.
type DimensionRule struct {
	MaxLength     *float64 `json:"max_length,omitempty" bson:"max_length,omitempty"`
	MaxWidth      *float64 `json:"max_width,omitempty" bson:"max_width,omitempty"`
	MaxHeight     *float64 `json:"max_height,omitempty" bson:"max_height,omitempty"`
	DimensionUnit string   `json:"dimension_unit" bson:"dimension_unit"`
	Enabled       bool     `json:"enabled" bson:"enabled"`
}

// EligibilityRuleSet groups every eligibility rule configured for a carrier.
type EligibilityRuleSet struct {
	CarrierID      string          `json:"carrier_id" bson:"carrier_id"`
	WeightRules    []WeightRule    `json:"weight_rules" bson:"weight_rules"`
	DimensionRules []DimensionRule `json:"dimension_rules" bson:"dimension_rules"`
}

// EligibilityVerdict is the outcome of checking a shipment against a rule set.
type EligibilityVerdict struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons"`
}
