package domain

import (
	"strings"
	"time"
)

// RateStructure tags the pricing algorithm a rate card uses.
type RateStructure string

const (
	StructureSkidBased         RateStructure = "skid_based"
	StructureWeightDistance    RateStructure = "weight_distance"
	StructureZoneMatrix        RateStructure = "zone_matrix"
	StructureDimensionalWeight RateStructure = "dimensional_weight"
	StructureHybridComplex     RateStructure = "hybrid_complex"
	StructureFlatRate          RateStructure = "flat_rate"
)

// ParseRateStructure normalises a stored structure name. Unknown names are kept
// as-is so the dispatcher can route them to the fallback estimate.
func ParseRateStructure(s string) RateStructure {
	return RateStructure(strings.ToLower(strings.TrimSpace(s)))
}

// SkidRate prices a shipment occupying exactly SkidCount skids.
type SkidRate struct {
	SkidCount int     `json:"skid_count"`
	Rate      float64 `json:"rate"`
}

// WeightBreak prices chargeable weight within [MinWeight, MaxWeight].
type WeightBreak struct {
	MinWeight      float64 `json:"min_weight"`
	MaxWeight      float64 `json:"max_weight"`
	RatePerLb      float64 `json:"rate_per_lb"`
	MinimumCharge  float64 `json:"minimum_charge"`
	DistanceFactor float64 `json:"distance_factor"`
}

// ZoneRate prices travel between two zones. RouteKey is an alternative match key.
type ZoneRate struct {
	OriginZone      string  `json:"origin_zone"`
	DestinationZone string  `json:"destination_zone"`
	RouteKey        string  `json:"route_key,omitempty"`
	Rate            float64 `json:"rate"`
}

// HybridRates holds the per-component rates of a hybrid_complex card.
type HybridRates struct {
	BaseRate     *float64 `json:"base_rate,omitempty"`
	SkidRate     *float64 `json:"skid_rate,omitempty"`
	WeightRate   *float64 `json:"weight_rate,omitempty"`
	DistanceRate *float64 `json:"distance_rate,omitempty"`
}

// RateCard is one pricing configuration belonging to a carrier.
type RateCard struct {
	ID            string        `json:"id"`
	CarrierID     string        `json:"carrier_id"`
	Name          string        `json:"name"`
	RateStructure RateStructure `json:"rate_structure"`
	Currency      string        `json:"currency"`
	ServiceLevel  string        `json:"service_level"`
	MaxWeight     *float64      `json:"max_weight,omitempty"`
	TransitTime   string        `json:"transit_time,omitempty"`
	Enabled       bool          `json:"enabled"`
	CreatedAt     time.Time     `json:"created_at"`

	SkidRates            []SkidRate    `json:"skid_rates,omitempty"`
	WeightBreaks         []WeightBreak `json:"weight_breaks,omitempty"`
	ZoneRates            []ZoneRate    `json:"zone_rates,omitempty"`
	FuelSurchargePercent *float64      `json:"fuel_surcharge_percent,omitempty"`
	DimWeightRate        *float64      `json:"dim_weight_rate,omitempty"`
	MinimumCharge        *float64      `json:"minimum_charge,omitempty"`
	Hybrid               HybridRates   `json:"hybrid,omitempty"`
	FlatRate             *float64      `json:"flat_rate,omitempty"`
}

// RateCardRef is the identity of the rate card a quote was priced from.
type RateCardRef struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	RateStructure RateStructure `json:"rate_structure"`
	Currency      string        `json:"currency"`
	ServiceLevel  string        `json:"service_level"`
}

// Ref returns the identity of the card.
func (c RateCard) Ref() RateCardRef {
	return RateCardRef{
		ID:            c.ID,
		Name:          c.Name,
		RateStructure: c.RateStructure,
		Currency:      c.Currency,
		ServiceLevel:  c.ServiceLevel,
	}
}
